package status

import "sync/atomic"

// Registry groups counters and gauges shared by simulations and optimizers
// Writers cache metric pointers at construction and update atomics directly
type Registry struct {
	Ints   *MetricMap[atomic.Int64]
	Floats *MetricMap[AtomicFloat]
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		Ints:   NewMetricMap[atomic.Int64](),
		Floats: NewMetricMap[AtomicFloat](),
	}
}

// Snapshot copies every metric into a plain map, suitable for encoding
func (r *Registry) Snapshot() map[string]float64 {
	out := make(map[string]float64, r.Ints.Len()+r.Floats.Len())
	r.Ints.Range(func(k string, v *atomic.Int64) {
		out[k] = float64(v.Load())
	})
	r.Floats.Range(func(k string, v *AtomicFloat) {
		out[k] = v.Load()
	})
	return out
}
