package telemetry

import "circbuf/pkg/ring"

type NoopObserver struct{}

func NewNoopObserver() *NoopObserver {
	return &NoopObserver{}
}

func (n *NoopObserver) ObservePush(_ bool) {}

func (n *NoopObserver) ObserveDrain(_ ring.DrainPath, _ int) {}

func (n *NoopObserver) ObserveOccupancy(_, _ int) {}

var _ ring.Observer = (*NoopObserver)(nil)
