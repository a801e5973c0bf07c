package telemetry

import "go.uber.org/zap"

const (
	FieldEvent    = "event"
	FieldBuffer   = "buffer"
	FieldCapacity = "capacity"
	FieldCount    = "count"
	FieldPath     = "drain_path"
)

const (
	EventBufferCreated      = "buffer_created"
	EventSamplerFlush       = "sampler_flush"
	EventSamplerFlushFailed = "sampler_flush_failed"
	EventSamplerClosed      = "sampler_closed"
)

func EventField(event string) zap.Field {
	return zap.String(FieldEvent, event)
}

func BufferField(name string) zap.Field {
	return zap.String(FieldBuffer, name)
}

func CapacityField(capacity int) zap.Field {
	return zap.Int(FieldCapacity, capacity)
}

func CountField(count int) zap.Field {
	return zap.Int(FieldCount, count)
}

func PathField(path string) zap.Field {
	return zap.String(FieldPath, path)
}
