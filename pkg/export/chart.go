package export

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/kilianp07/trafficwatch/core/model"
)

// StepsPerHour is the resolution of the interpolated curve.
const StepsPerHour = 4

// WriteChart renders an HTML line chart of the baseline: the hourly averages
// and the curve predicted every quarter of an hour.
func WriteChart(w io.Writer, src model.Reader, title string) error {
	snap := src.Snapshot()
	n := model.HoursPerDay * StepsPerHour
	xAxis := make([]string, 0, n)
	hourly := make([]opts.LineData, 0, n)
	curve := make([]opts.LineData, 0, n)
	for i := 0; i < n; i++ {
		h, m := i/StepsPerHour, (i%StepsPerHour)*60/StepsPerHour
		xAxis = append(xAxis, fmt.Sprintf("%02d:%02d", h, m))
		t := float64(i) / StepsPerHour
		p, err := src.Predict(t)
		if err != nil {
			return fmt.Errorf("predict %.2f: %w", t, err)
		}
		curve = append(curve, opts.LineData{Value: p})
		if m == 0 {
			hourly = append(hourly, opts.LineData{Value: snap[h].Average})
		} else {
			hourly = append(hourly, opts.LineData{Value: nil})
		}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: fmt.Sprintf("%d measures", src.Total())}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Time of day"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Traffic"}),
	)
	line.SetXAxis(xAxis).
		AddSeries("Hourly average", hourly).
		AddSeries("Predicted", curve)
	if err := line.Render(w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}
