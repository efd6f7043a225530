// Package logger entrega el zerolog configurado de la app.
package logger

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// New devuelve un logger JSON a stdout con el nombre del servicio.
// level acepta debug|info|warn|error; vacío o desconocido cae en info.
func New(serviceName, level string) zerolog.Logger {
	lvl := parseLevel(level)
	return zerolog.New(os.Stdout).
		Level(lvl).
		With().
		Str("service", serviceName).
		Timestamp().
		Logger()
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
