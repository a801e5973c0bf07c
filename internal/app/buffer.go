package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"circbuf/internal/domain"
	"circbuf/internal/infra/config"
	"circbuf/internal/infra/telemetry"
	"circbuf/pkg/ring"
)

// Deps carries the shared infrastructure buffers are wired to.
type Deps struct {
	Logger     *zap.Logger
	Registerer prometheus.Registerer
}

func (d Deps) logger() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}

// NewBuffer builds a ring buffer from cfg. Invalid configs and metrics that
// cannot be registered, such as a second metrics-enabled buffer with the same
// name on one registerer, are returned as errors before the buffer is
// allocated.
func NewBuffer[T any](cfg domain.BufferConfig, deps Deps, opts ...ring.Option[T]) (*ring.Buffer[T], error) {
	cfg = config.Normalize(cfg)
	if err := config.Validate(cfg); err != nil {
		return nil, domain.Wrap(domain.CodeInvalidArgument, "new buffer", err)
	}

	logger := deps.logger().Named("ring").With(telemetry.BufferField(cfg.Name))
	options := make([]ring.Option[T], 0, len(opts)+2)
	options = append(options, ring.WithLogger[T](logger))
	if cfg.Observability.Metrics {
		observer, err := telemetry.NewPrometheusObserver(
			deps.Registerer,
			cfg.Observability.Namespace,
			cfg.Observability.Subsystem,
			cfg.Name,
		)
		if err != nil {
			return nil, domain.Wrap(domain.CodeFailedPrecond, "new buffer", err)
		}
		options = append(options, ring.WithObserver[T](observer))
	}
	options = append(options, opts...)

	b := ring.New(cfg.Capacity, options...)
	logger.Info("buffer ready",
		telemetry.EventField(telemetry.EventBufferCreated),
		telemetry.CapacityField(cfg.Capacity),
		telemetry.PathField(string(cfg.Drain.Path)),
	)
	return b, nil
}
