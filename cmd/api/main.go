package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"patient-visit-history/internal/config"
	"patient-visit-history/internal/platform/logger"
	"patient-visit-history/internal/router"
)

// @title        WelcomeVision Visits API
// @version      1.0
// @description  Ciclo de vida de visitas del paciente: geofencing, notas pre-visita y feedback post-visita.
// @BasePath     /
func main() {
	cfg, err := config.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	log := logger.New("welcomevision-visits", cfg.LogLevel)

	r, err := router.NewRouter(router.Options{Config: cfg, Log: log})
	if err != nil {
		log.Fatal().Err(err).Msg("router setup failed")
	}

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info().
		Str("addr", addr).
		Str("storage", cfg.StorageDriver).
		Msg("starting server")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server error")
	}
}
