package model

// Accumulator receives measures during ingestion.
type Accumulator interface {
	AddMeasure(hour int, value float64) error
}

// Predictor returns the expected traffic at a fractional hour.
type Predictor interface {
	Predict(t float64) (float64, error)
}

// Reader exposes the learned baseline.
type Reader interface {
	Predictor
	Bucket(hour int) (HourlyBucket, error)
	Snapshot() [HoursPerDay]HourlyBucket
	Total() int
}

var (
	_ Accumulator = (*TrafficModel)(nil)
	_ Reader      = (*TrafficModel)(nil)
	_ Accumulator = (*Guarded)(nil)
	_ Reader      = (*Guarded)(nil)
)
