// Package classify compares an observed traffic value with the predicted
// baseline and labels it below, within or above the normal band.
package classify

import (
	"errors"
	"fmt"
)

// Level is the outcome of a classification.
type Level int

const (
	Normal Level = iota
	Below
	Above
)

// String returns the lower-case name of the level.
func (l Level) String() string {
	switch l {
	case Normal:
		return "normal"
	case Below:
		return "below"
	case Above:
		return "above"
	default:
		return "unknown"
	}
}

// Default multipliers applied to the predicted value.
const (
	DefaultLow  = 0.9
	DefaultHigh = 1.3
)

// ErrInvalidThresholds is returned by Validate.
var ErrInvalidThresholds = errors.New("invalid thresholds")

// Thresholds bound the normal band as multiples of the prediction.
type Thresholds struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// DefaultThresholds returns the 0.9 / 1.3 band.
func DefaultThresholds() Thresholds {
	return Thresholds{Low: DefaultLow, High: DefaultHigh}
}

// SetDefaults fills unset multipliers.
func (t *Thresholds) SetDefaults() {
	if t.Low == 0 {
		t.Low = DefaultLow
	}
	if t.High == 0 {
		t.High = DefaultHigh
	}
}

// Validate requires 0 < Low <= High.
func (t Thresholds) Validate() error {
	if t.Low <= 0 || t.High < t.Low {
		return fmt.Errorf("%w: low=%v high=%v", ErrInvalidThresholds, t.Low, t.High)
	}
	return nil
}

// Verdict pairs an observation with its prediction and level.
type Verdict struct {
	Observed  float64
	Predicted float64
	Level     Level
}

// Classify labels observed against predicted.
func (t Thresholds) Classify(observed, predicted float64) Verdict {
	v := Verdict{Observed: observed, Predicted: predicted, Level: Normal}
	switch {
	case observed < predicted*t.Low:
		v.Level = Below
	case observed > predicted*t.High:
		v.Level = Above
	}
	return v
}
