package config

import (
	"fmt"
	"strings"

	"circbuf/internal/domain"
	"circbuf/internal/infra/telemetry"
)

// Normalize trims names and lowercases enumerated values.
func Normalize(cfg domain.BufferConfig) domain.BufferConfig {
	cfg.Name = strings.TrimSpace(cfg.Name)
	cfg.Drain.Path = domain.DrainPath(strings.ToLower(strings.TrimSpace(string(cfg.Drain.Path))))
	cfg.Observability.Namespace = strings.TrimSpace(cfg.Observability.Namespace)
	cfg.Observability.Subsystem = strings.TrimSpace(cfg.Observability.Subsystem)
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	return cfg
}

// Validate reports every problem in cfg as one INVALID_ARGUMENT error.
func Validate(cfg domain.BufferConfig) error {
	var errs []string
	if cfg.Name == "" {
		errs = append(errs, "name is required")
	}
	if cfg.Capacity <= 0 {
		errs = append(errs, fmt.Sprintf("capacity must be positive, got %d", cfg.Capacity))
	}
	switch cfg.Drain.Path {
	case domain.DrainPathFast, domain.DrainPathReference:
	default:
		errs = append(errs, fmt.Sprintf("drain.path must be %q or %q, got %q", domain.DrainPathFast, domain.DrainPathReference, cfg.Drain.Path))
	}
	if cfg.Drain.Batch <= 0 {
		errs = append(errs, fmt.Sprintf("drain.batch must be positive, got %d", cfg.Drain.Batch))
	}
	if cfg.Observability.Metrics && cfg.Observability.Namespace == "" {
		errs = append(errs, "observability.namespace is required when metrics are enabled")
	}
	if _, err := telemetry.ParseLevel(cfg.Log.Level); err != nil {
		errs = append(errs, fmt.Sprintf("log.level %q is unknown", cfg.Log.Level))
	}

	if len(errs) > 0 {
		return domain.E(domain.CodeInvalidArgument, "validate config", strings.Join(errs, "; "), domain.ErrInvalidConfig)
	}
	return nil
}
