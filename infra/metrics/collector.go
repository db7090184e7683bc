package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kilianp07/trafficwatch/core/model"
)

// BaselineCollector exposes the current hourly baseline on every scrape.
type BaselineCollector struct {
	src     model.Reader
	average *prometheus.Desc
	samples *prometheus.Desc
}

// NewBaselineCollector reads buckets from src at collection time. src is
// read from the HTTP goroutine, so it should be a model.Guarded when
// ingestion may still be running.
func NewBaselineCollector(src model.Reader) *BaselineCollector {
	return &BaselineCollector{
		src: src,
		average: prometheus.NewDesc("traffic_baseline_average",
			"Running average of traffic for the hour of day", []string{"hour"}, nil),
		samples: prometheus.NewDesc("traffic_baseline_samples",
			"Number of measures behind the hourly average", []string{"hour"}, nil),
	}
}

func (c *BaselineCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.average
	ch <- c.samples
}

func (c *BaselineCollector) Collect(ch chan<- prometheus.Metric) {
	snap := c.src.Snapshot()
	for h, b := range snap {
		hour := strconv.Itoa(h)
		ch <- prometheus.MustNewConstMetric(c.average, prometheus.GaugeValue, b.Average, hour)
		ch <- prometheus.MustNewConstMetric(c.samples, prometheus.GaugeValue, float64(b.Count), hour)
	}
}
