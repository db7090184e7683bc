package metrics

import (
	"time"

	"github.com/kilianp07/trafficwatch/core/classify"
)

// MeasureEvent is one measure folded into the baseline during ingestion.
type MeasureEvent struct {
	Hour  int
	Value float64
	Time  time.Time
}

// Sink records ingested measures.
type Sink interface {
	RecordMeasure(ev MeasureEvent) error
}

// IngestSummary describes a completed ingestion run.
type IngestSummary struct {
	Source   string
	Lines    int
	Accepted int
	Rejected int
	Duration time.Duration
	Time     time.Time
}

// IngestRecorder records ingestion summaries.
type IngestRecorder interface {
	RecordIngest(sum IngestSummary) error
}

// VerdictEvent is a classified interactive query.
type VerdictEvent struct {
	SessionID string
	// Hour is the fractional hour the prediction was made for.
	Hour      float64
	Observed  float64
	Predicted float64
	Level     classify.Level
	// Timestamp is the time written on the query line.
	Timestamp time.Time
	Time      time.Time
}

// VerdictRecorder records classified queries.
type VerdictRecorder interface {
	RecordVerdict(ev VerdictEvent) error
}

// NopSink implements every recorder with no-op methods.
type NopSink struct{}

func (NopSink) RecordMeasure(MeasureEvent) error { return nil }
func (NopSink) RecordIngest(IngestSummary) error { return nil }
func (NopSink) RecordVerdict(VerdictEvent) error { return nil }
