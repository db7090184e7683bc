package model

import (
	"errors"
	"fmt"
	"math"
)

// HoursPerDay is the number of hourly buckets in a model.
const HoursPerDay = 24

var (
	// ErrInvalidHour is returned when an hour outside [0,23] is used as a bucket key.
	ErrInvalidHour = errors.New("hour out of range [0,23]")
	// ErrInvalidTime is returned when a prediction is requested outside [0,24).
	ErrInvalidTime = errors.New("time out of range [0,24)")
)

// HourlyBucket holds the running mean of all measures seen for one hour.
type HourlyBucket struct {
	Average float64 `json:"average" yaml:"average"`
	Count   int     `json:"count" yaml:"count"`
}

// add folds value into the running mean.
func (b HourlyBucket) add(value float64) HourlyBucket {
	return HourlyBucket{
		Average: (b.Average*float64(b.Count) + value) / float64(b.Count+1),
		Count:   b.Count + 1,
	}
}

// TrafficModel accumulates per-hour traffic averages. The zero value is an
// empty model ready for use. It is not safe for concurrent use; see Guarded.
type TrafficModel struct {
	buckets [HoursPerDay]HourlyBucket
}

// New returns an empty model with every bucket zeroed.
func New() *TrafficModel { return &TrafficModel{} }

// AddMeasure folds value into the bucket of the given hour.
func (m *TrafficModel) AddMeasure(hour int, value float64) error {
	if hour < 0 || hour >= HoursPerDay {
		return fmt.Errorf("add measure at %d: %w", hour, ErrInvalidHour)
	}
	m.buckets[hour] = m.buckets[hour].add(value)
	return nil
}

// Predict returns the expected traffic at time t, expressed in fractional
// hours. Whole hours are looked up directly; anything in between is linearly
// interpolated from the two surrounding buckets, wrapping from 23 to 0.
//
// For 0 < t < 1 the previous anchor is bucket 12 rather than bucket 0. Early
// morning predictions depend on this, so it is kept as is.
func (m *TrafficModel) Predict(t float64) (float64, error) {
	if math.IsNaN(t) || t < 0 || t >= HoursPerDay {
		return 0, fmt.Errorf("predict at %v: %w", t, ErrInvalidTime)
	}
	if t == math.Trunc(t) {
		return m.buckets[int(t)].Average, nil
	}
	prevHour, nextHour := math.Floor(t), math.Ceil(t)
	var prev, next HourlyBucket
	switch {
	case t < 1:
		prev, next = m.buckets[12], m.buckets[1]
	case t > HoursPerDay-1:
		prev, next = m.buckets[HoursPerDay-1], m.buckets[0]
	default:
		prev, next = m.buckets[int(prevHour)], m.buckets[int(nextHour)]
	}
	return prev.Average*(nextHour-t) + next.Average*(t-prevHour), nil
}

// Bucket returns a copy of the bucket for hour.
func (m *TrafficModel) Bucket(hour int) (HourlyBucket, error) {
	if hour < 0 || hour >= HoursPerDay {
		return HourlyBucket{}, fmt.Errorf("bucket %d: %w", hour, ErrInvalidHour)
	}
	return m.buckets[hour], nil
}

// Snapshot returns a copy of all buckets indexed by hour.
func (m *TrafficModel) Snapshot() [HoursPerDay]HourlyBucket {
	return m.buckets
}

// Total returns the number of measures folded into the model.
func (m *TrafficModel) Total() int {
	n := 0
	for _, b := range m.buckets {
		n += b.Count
	}
	return n
}
