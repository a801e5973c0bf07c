package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"circbuf/internal/domain"
)

// EnvPrefix is the prefix of environment overrides, e.g. CIRCBUF_CAPACITY.
const EnvPrefix = "CIRCBUF"

type Loader struct {
	logger *zap.Logger
}

func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		return &Loader{logger: zap.NewNop()}
	}
	return &Loader{logger: logger.Named("config")}
}

type rawBufferConfig struct {
	Name          string                 `mapstructure:"name"`
	Capacity      int                    `mapstructure:"capacity"`
	Drain         rawDrainConfig         `mapstructure:"drain"`
	Observability rawObservabilityConfig `mapstructure:"observability"`
	Log           rawLogConfig           `mapstructure:"log"`
}

type rawDrainConfig struct {
	Path  string `mapstructure:"path"`
	Batch int    `mapstructure:"batch"`
}

type rawObservabilityConfig struct {
	Metrics   bool   `mapstructure:"metrics"`
	Namespace string `mapstructure:"namespace"`
	Subsystem string `mapstructure:"subsystem"`
}

type rawLogConfig struct {
	Level string `mapstructure:"level"`
}

func newViper(configType string) *viper.Viper {
	v := viper.New()
	v.SetConfigType(configType)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("name", domain.DefaultBufferName)
	v.SetDefault("capacity", domain.DefaultCapacity)
	v.SetDefault("drain.path", string(domain.DefaultDrainPath))
	v.SetDefault("drain.batch", domain.DefaultDrainBatch)
	v.SetDefault("observability.metrics", domain.DefaultMetricsEnabled)
	v.SetDefault("observability.namespace", domain.DefaultMetricsNamespace)
	v.SetDefault("observability.subsystem", domain.DefaultMetricsSubsystem)
	v.SetDefault("log.level", domain.DefaultLogLevel)
}

func configTypeFor(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return "yaml", nil
	case ".toml":
		return "toml", nil
	default:
		return "", fmt.Errorf("unsupported config extension %q", ext)
	}
}

// Load reads a buffer config file, applies defaults and CIRCBUF_* environment
// overrides, and validates the result.
func (l *Loader) Load(ctx context.Context, path string) (domain.BufferConfig, error) {
	if path == "" {
		return domain.BufferConfig{}, errors.New("config path is required")
	}
	configType, err := configTypeFor(path)
	if err != nil {
		return domain.BufferConfig{}, domain.E(domain.CodeInvalidArgument, "load config", err.Error(), domain.ErrInvalidConfig)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return domain.BufferConfig{}, fmt.Errorf("read config: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return domain.BufferConfig{}, err
	}

	cfg, err := decode(configType, data)
	if err != nil {
		return domain.BufferConfig{}, err
	}
	cfg = Normalize(cfg)
	if err := Validate(cfg); err != nil {
		return domain.BufferConfig{}, err
	}

	l.logger.Debug("buffer config loaded",
		zap.String("path", path),
		zap.String("buffer", cfg.Name),
		zap.Int("capacity", cfg.Capacity),
		zap.String("drain_path", string(cfg.Drain.Path)),
	)
	return cfg, nil
}

// FromEnv builds a config from defaults and CIRCBUF_* environment variables
// alone.
func (l *Loader) FromEnv() (domain.BufferConfig, error) {
	cfg, err := decode("yaml", nil)
	if err != nil {
		return domain.BufferConfig{}, err
	}
	cfg = Normalize(cfg)
	if err := Validate(cfg); err != nil {
		return domain.BufferConfig{}, err
	}
	return cfg, nil
}

func decode(configType string, data []byte) (domain.BufferConfig, error) {
	v := newViper(configType)
	if len(data) > 0 {
		if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
			return domain.BufferConfig{}, fmt.Errorf("parse config: %w", err)
		}
	}

	var raw rawBufferConfig
	if err := v.Unmarshal(&raw); err != nil {
		return domain.BufferConfig{}, fmt.Errorf("decode config: %w", err)
	}
	return domain.BufferConfig{
		Name:     raw.Name,
		Capacity: raw.Capacity,
		Drain: domain.DrainConfig{
			Path:  domain.DrainPath(raw.Drain.Path),
			Batch: raw.Drain.Batch,
		},
		Observability: domain.ObservabilityConfig{
			Metrics:   raw.Observability.Metrics,
			Namespace: raw.Observability.Namespace,
			Subsystem: raw.Observability.Subsystem,
		},
		Log: domain.LogConfig{
			Level: raw.Log.Level,
		},
	}, nil
}
