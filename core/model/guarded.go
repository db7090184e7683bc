package model

import "sync"

// Guarded wraps a TrafficModel with a read-write lock so that predictions and
// snapshots may run concurrently while no measure is being added.
type Guarded struct {
	mu sync.RWMutex
	m  *TrafficModel
}

// NewGuarded wraps m. A nil m is replaced by an empty model.
func NewGuarded(m *TrafficModel) *Guarded {
	if m == nil {
		m = New()
	}
	return &Guarded{m: m}
}

func (g *Guarded) AddMeasure(hour int, value float64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.m.AddMeasure(hour, value)
}

func (g *Guarded) Predict(t float64) (float64, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.m.Predict(t)
}

func (g *Guarded) Bucket(hour int) (HourlyBucket, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.m.Bucket(hour)
}

func (g *Guarded) Snapshot() [HoursPerDay]HourlyBucket {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.m.Snapshot()
}

func (g *Guarded) Total() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.m.Total()
}
