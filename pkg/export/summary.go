package export

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes the hours that received at least one measure.
type Summary struct {
	Hours         int     `json:"hours" yaml:"hours"`
	Measures      int     `json:"measures" yaml:"measures"`
	PeakHour      int     `json:"peak_hour" yaml:"peak_hour"`
	PeakAverage   float64 `json:"peak_average" yaml:"peak_average"`
	TroughHour    int     `json:"trough_hour" yaml:"trough_hour"`
	TroughAverage float64 `json:"trough_average" yaml:"trough_average"`
	// Mean is the unweighted mean of the hourly averages.
	Mean float64 `json:"mean" yaml:"mean"`
}

// Summarize ignores hours without measures. Ties resolve to the earliest hour.
func Summarize(rows []Row) Summary {
	var (
		hours []int
		avgs  []float64
		total int
	)
	for _, r := range rows {
		if r.Count == 0 {
			continue
		}
		hours = append(hours, r.Hour)
		avgs = append(avgs, r.Average)
		total += r.Count
	}
	if len(avgs) == 0 {
		return Summary{}
	}
	peak, trough := floats.MaxIdx(avgs), floats.MinIdx(avgs)
	return Summary{
		Hours:         len(avgs),
		Measures:      total,
		PeakHour:      hours[peak],
		PeakAverage:   avgs[peak],
		TroughHour:    hours[trough],
		TroughAverage: avgs[trough],
		Mean:          stat.Mean(avgs, nil),
	}
}
