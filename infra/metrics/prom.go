package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/trafficwatch/core/metrics"
)

// PromSink records baseline and verdict events in Prometheus metrics.
type PromSink struct {
	measures *prometheus.CounterVec
	rejected prometheus.Counter
	verdicts *prometheus.CounterVec
	ratio    prometheus.Histogram
}

// NewPromSink registers the metrics on the default Prometheus registerer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	measures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "traffic_measures_ingested_total",
		Help: "Number of measures folded into the hourly baseline",
	}, []string{"hour"})
	rejected := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "traffic_ingest_rejected_lines_total",
		Help: "Number of log lines rejected during ingestion",
	})
	verdicts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "traffic_verdicts_total",
		Help: "Number of classified queries by level",
	}, []string{"level"})
	ratio := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "traffic_observed_predicted_ratio",
		Help:    "Observed traffic divided by the predicted baseline",
		Buckets: []float64{0.5, 0.7, 0.9, 1, 1.1, 1.3, 1.5, 2, 3},
	})

	var err error
	if measures, err = register(reg, measures); err != nil {
		return nil, err
	}
	if rejected, err = register(reg, rejected); err != nil {
		return nil, err
	}
	if verdicts, err = register(reg, verdicts); err != nil {
		return nil, err
	}
	if ratio, err = register(reg, ratio); err != nil {
		return nil, err
	}
	return &PromSink{measures: measures, rejected: rejected, verdicts: verdicts, ratio: ratio}, nil
}

// register adds c to reg, reusing an identical collector registered earlier.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordMeasure increments the per-hour measure counter.
func (s *PromSink) RecordMeasure(ev coremetrics.MeasureEvent) error {
	s.measures.WithLabelValues(strconv.Itoa(ev.Hour)).Inc()
	return nil
}

// RecordIngest adds the rejected lines of a run.
func (s *PromSink) RecordIngest(sum coremetrics.IngestSummary) error {
	s.rejected.Add(float64(sum.Rejected))
	return nil
}

// RecordVerdict counts the verdict and observes the observed/predicted ratio
// when the prediction is non-zero.
func (s *PromSink) RecordVerdict(ev coremetrics.VerdictEvent) error {
	s.verdicts.WithLabelValues(ev.Level.String()).Inc()
	if ev.Predicted != 0 {
		s.ratio.Observe(ev.Observed / ev.Predicted)
	}
	return nil
}
