package domain

// DrainPath selects how a consumer empties a buffer.
type DrainPath string

const (
	// DrainPathFast copies occupied ranges in bulk.
	DrainPathFast DrainPath = "fast"
	// DrainPathReference moves values one at a time.
	DrainPathReference DrainPath = "reference"
)

// BufferConfig describes one ring buffer and its consumer.
type BufferConfig struct {
	Name          string
	Capacity      int
	Drain         DrainConfig
	Observability ObservabilityConfig
	Log           LogConfig
}

// DrainConfig controls batched draining.
type DrainConfig struct {
	Path  DrainPath
	Batch int
}

// ObservabilityConfig controls Prometheus export.
type ObservabilityConfig struct {
	Metrics   bool
	Namespace string
	Subsystem string
}

// LogConfig controls the log level.
type LogConfig struct {
	Level string
}

// DefaultBufferConfig returns the configuration used when nothing is set.
func DefaultBufferConfig() BufferConfig {
	return BufferConfig{
		Name:     DefaultBufferName,
		Capacity: DefaultCapacity,
		Drain: DrainConfig{
			Path:  DefaultDrainPath,
			Batch: DefaultDrainBatch,
		},
		Observability: ObservabilityConfig{
			Metrics:   DefaultMetricsEnabled,
			Namespace: DefaultMetricsNamespace,
			Subsystem: DefaultMetricsSubsystem,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}
