package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that the configuration is usable. Development and
// test environments are allowed to run on the built-in defaults; production
// must not fall back to them for credentials.
func ValidateConfig(cfg *Config) error {
	var errs []string

	if cfg.ServerPort == "" {
		errs = append(errs, "server port is required")
	}
	if cfg.DBHost == "" || cfg.DBPort == "" || cfg.DBName == "" {
		errs = append(errs, "database host, port and name are required")
	}

	if IsProduction() {
		if cfg.DBPassword == "" || cfg.DBPassword == "postgres" {
			errs = append(errs, "db_password secret is required in production")
		}
		if cfg.JWTSecret == "" || cfg.JWTSecret == "your-secret-key" {
			errs = append(errs, "jwt_secret secret is required in production")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}
