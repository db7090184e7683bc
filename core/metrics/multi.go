package metrics

import "errors"

// MultiSink fans events out to multiple sinks.
type MultiSink struct {
	Sinks []Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordMeasure forwards the measure to all sinks and joins their errors.
func (m *MultiSink) RecordMeasure(ev MeasureEvent) error {
	var errs []error
	for _, s := range m.Sinks {
		errs = append(errs, s.RecordMeasure(ev))
	}
	return errors.Join(errs...)
}

// RecordIngest forwards ingestion summaries to sinks supporting them.
func (m *MultiSink) RecordIngest(sum IngestSummary) error {
	var errs []error
	for _, s := range m.Sinks {
		if rec, ok := s.(IngestRecorder); ok {
			errs = append(errs, rec.RecordIngest(sum))
		}
	}
	return errors.Join(errs...)
}

// RecordVerdict forwards verdicts to sinks supporting them.
func (m *MultiSink) RecordVerdict(ev VerdictEvent) error {
	var errs []error
	for _, s := range m.Sinks {
		if rec, ok := s.(VerdictRecorder); ok {
			errs = append(errs, rec.RecordVerdict(ev))
		}
	}
	return errors.Join(errs...)
}

// Close closes sinks implementing io.Closer.
func (m *MultiSink) Close() error {
	var errs []error
	for _, s := range m.Sinks {
		if c, ok := s.(interface{ Close() error }); ok {
			errs = append(errs, c.Close())
		}
	}
	return errors.Join(errs...)
}
