// Package config centraliza la configuración del servicio.
// Las env vars se parsean con prefijo WELCOMEVISION_.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

const envPrefix = "welcomevision"

// Config del servicio de visitas.
type Config struct {
	HTTPPort int    `envconfig:"HTTP_PORT" default:"8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Storage: memory | sqlite | postgres. "auto" deriva según qué
	// venga configurado (ver ResolveDefaults).
	StorageDriver string `envconfig:"STORAGE_DRIVER" default:"auto"`
	SQLitePath    string `envconfig:"SQLITE_PATH" default:""`
	PostgresDSN   string `envconfig:"POSTGRES_DSN" default:""`

	// Gateway de push. Sin BaseURL+APIKey el router cae al scheduler
	// en memoria (solo loguea), útil en dev.
	PushGatewayURL   string `envconfig:"PUSH_GATEWAY_URL" default:""`
	PushAPIKey       string `envconfig:"PUSH_API_KEY" default:""`
	PushAPIKeyHeader string `envconfig:"PUSH_API_KEY_HEADER" default:""`

	// Delay del pedido de feedback después del cierre de la visita.
	FeedbackDelaySeconds int `envconfig:"FEEDBACK_DELAY_SECONDS" default:"5"`

	// Región monitoreada (una sola clínica por diseño).
	ClinicID        string  `envconfig:"CLINIC_ID" default:"clinic-nyc-001"`
	ClinicName      string  `envconfig:"CLINIC_NAME" default:"Your Ophthalmology Clinic"`
	ClinicLatitude  float64 `envconfig:"CLINIC_LATITUDE" default:"40.7561"`
	ClinicLongitude float64 `envconfig:"CLINIC_LONGITUDE" default:"-73.9869"`
	ClinicRadiusM   int     `envconfig:"CLINIC_RADIUS_M" default:"150"`
}

// New parsea env vars y resuelve defaults derivados.
func New() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ResolveDefaults deriva el driver de storage cuando viene "auto":
// postgres si hay DSN, sqlite si hay path, memoria si no hay nada.
func (c *Config) ResolveDefaults() error {
	if c.StorageDriver == "" || c.StorageDriver == "auto" {
		switch {
		case c.PostgresDSN != "":
			c.StorageDriver = "postgres"
		case c.SQLitePath != "":
			c.StorageDriver = "sqlite"
		default:
			c.StorageDriver = "memory"
		}
	}

	allowed := map[string]bool{"memory": true, "sqlite": true, "postgres": true}
	if !allowed[c.StorageDriver] {
		return fmt.Errorf("unsupported STORAGE_DRIVER: %s", c.StorageDriver)
	}
	if c.StorageDriver == "sqlite" && c.SQLitePath == "" {
		return fmt.Errorf("STORAGE_DRIVER=sqlite requires SQLITE_PATH")
	}
	if c.StorageDriver == "postgres" && c.PostgresDSN == "" {
		return fmt.Errorf("STORAGE_DRIVER=postgres requires POSTGRES_DSN")
	}

	if c.FeedbackDelaySeconds < 0 {
		c.FeedbackDelaySeconds = 0
	}
	return nil
}
