package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config paramètres du logger applicatif
type Config struct {
	Level       string
	Format      string // json | console, déduit de l'environnement si vide
	Environment string
}

// NewLogger construit un logger zap : JSON en docker, console en développement
func NewLogger(cfg Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level)))
	if err != nil {
		return nil, fmt.Errorf("niveau de log invalide %q: %w", cfg.Level, err)
	}

	var zc zap.Config
	if cfg.Environment == "docker" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}

	switch cfg.Format {
	case "json":
		zc.Encoding = "json"
		zc.EncoderConfig = zap.NewProductionEncoderConfig()
	case "console":
		zc.Encoding = "console"
	case "":
	default:
		return nil, fmt.Errorf("format de log inconnu: %s", cfg.Format)
	}

	zc.Level = zap.NewAtomicLevelAt(level)
	zc.EncoderConfig.TimeKey = "ts"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := zc.Build(zap.Fields(zap.String("env", cfg.Environment)))
	if err != nil {
		return nil, fmt.Errorf("construction logger: %w", err)
	}
	return logger, nil
}
