package domain

const (
	DefaultBufferName       = "default"
	DefaultCapacity         = 1024
	DefaultDrainPath        = DrainPathFast
	DefaultDrainBatch       = 256
	DefaultMetricsEnabled   = false
	DefaultMetricsNamespace = "circbuf"
	DefaultMetricsSubsystem = "ring"
	DefaultLogLevel         = "info"
)
