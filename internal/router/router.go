package router

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	memnotify "patient-visit-history/internal/adapters/notify/memory"
	"patient-visit-history/internal/adapters/notify/push"
	memstore "patient-visit-history/internal/adapters/storage/memory"
	pg "patient-visit-history/internal/adapters/storage/postgres"
	"patient-visit-history/internal/adapters/storage/sqlite"
	"patient-visit-history/internal/config"
	"patient-visit-history/internal/domain/feedback"
	"patient-visit-history/internal/domain/geofence"
	"patient-visit-history/internal/domain/visits"
	"patient-visit-history/internal/ports/notify"

	_ "patient-visit-history/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Config *config.Config
	Log    zerolog.Logger

	// Opcional: DB ya abierta (tests/handoff). Si no viene, se abre
	// según el driver de config.
	DB *sql.DB

	// Opcional: override del scheduler de notificaciones (tests).
	Scheduler notify.Scheduler
}

func NewRouter(opts Options) (http.Handler, error) {
	cfg := opts.Config
	if cfg == nil {
		return nil, fmt.Errorf("router: config is required")
	}
	log := opts.Log

	repo, err := buildRepo(opts)
	if err != nil {
		return nil, err
	}

	scheduler := opts.Scheduler
	if scheduler == nil {
		client := push.NewClient(push.Config{
			BaseURL:      cfg.PushGatewayURL,
			APIKey:       cfg.PushAPIKey,
			APIKeyHeader: cfg.PushAPIKeyHeader,
		})
		if client.IsConfigured() {
			scheduler = push.NewScheduler(client)
		} else {
			// dev: sin gateway configurado, las notificaciones solo se
			// loguean (y quedan consultables en memoria)
			log.Info().Msg("push gateway not configured, using in-memory scheduler")
			scheduler = memnotify.NewScheduler(log)
		}
	}

	// Services por módulo
	visitsSvc := visits.NewService(repo, scheduler, log)
	visitsSvc.SetFeedbackDelay(time.Duration(cfg.FeedbackDelaySeconds) * time.Second)

	feedbackSvc := feedback.NewService(visitsSvc)

	region := geofence.Region{
		ID:        cfg.ClinicID,
		Name:      cfg.ClinicName,
		Latitude:  cfg.ClinicLatitude,
		Longitude: cfg.ClinicLongitude,
		RadiusM:   cfg.ClinicRadiusM,
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// Rutas por módulo
	visits.RegisterRoutes(r, visitsSvc)
	feedback.RegisterRoutes(r, feedbackSvc)
	geofence.RegisterRoutes(r, visitsSvc, region, log)

	return r, nil
}

func buildRepo(opts Options) (visits.Repository, error) {
	cfg := opts.Config

	switch cfg.StorageDriver {
	case "memory":
		return memstore.NewVisitsRepo(), nil

	case "sqlite":
		db := opts.DB
		if db == nil {
			opened, err := sqlite.Open(cfg.SQLitePath)
			if err != nil {
				return nil, fmt.Errorf("open sqlite: %w", err)
			}
			db = opened
		}
		return sqlite.NewVisitsRepo(db), nil

	case "postgres":
		db := opts.DB
		if db == nil {
			opened, err := pg.Open(cfg.PostgresDSN)
			if err != nil {
				return nil, fmt.Errorf("open postgres: %w", err)
			}
			db = opened
		}
		return pg.NewVisitsRepo(db), nil

	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.StorageDriver)
	}
}
