package app

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	httpMW "github.com/astra-capstone/astra-backend/internal/http/middleware"
	"github.com/astra-capstone/astra-backend/internal/platform/envutil"
	"github.com/astra-capstone/astra-backend/internal/platform/logger"
)

type Config struct {
	Port        string
	LogMode     string
	CORSOrigins []string
}

type fileConfig struct {
	Port        string   `yaml:"port"`
	LogMode     string   `yaml:"log_mode"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// LoadConfig reads env vars, then lets an optional YAML file (ASTRA_CONFIG)
// override them.
func LoadConfig(log *logger.Logger) (Config, error) {
	cfg := Config{
		Port:        envutil.String("PORT", "8000", log),
		LogMode:     envutil.String("LOG_MODE", "development", log),
		CORSOrigins: envutil.CSV("CORS_ORIGINS", httpMW.DefaultOrigins, log),
	}

	path := envutil.String("ASTRA_CONFIG", "", log)
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return Config{}, fmt.Errorf("parse config file: %w", err)
	}
	if fc.Port != "" {
		cfg.Port = fc.Port
	}
	if fc.LogMode != "" {
		cfg.LogMode = fc.LogMode
	}
	if len(fc.CORSOrigins) > 0 {
		cfg.CORSOrigins = fc.CORSOrigins
	}
	log.Info("config loaded from file", "path", path)
	return cfg, nil
}
