// Package export renders an hourly traffic baseline as text, data files or
// an HTML chart.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/trafficwatch/core/model"
)

// Row is one hour of the baseline.
type Row struct {
	Hour    int     `json:"hour" yaml:"hour"`
	Average float64 `json:"average" yaml:"average"`
	Count   int     `json:"count" yaml:"count"`
}

// Rows flattens a snapshot in hour order.
func Rows(snap [model.HoursPerDay]model.HourlyBucket) []Row {
	rows := make([]Row, len(snap))
	for h, b := range snap {
		rows[h] = Row{Hour: h, Average: b.Average, Count: b.Count}
	}
	return rows
}

// WriteTable writes an aligned text table followed by the summary line.
func WriteTable(w io.Writer, rows []Row) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "HOUR\tAVERAGE\tCOUNT\t")
	for _, r := range rows {
		fmt.Fprintf(tw, "%02d\t%.3f\t%d\t\n", r.Hour, r.Average, r.Count)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	s := Summarize(rows)
	if s.Hours == 0 {
		_, err := fmt.Fprintln(w, "no measures")
		return err
	}
	_, err := fmt.Fprintf(w, "\npeak %02d:00 (%.3f)  trough %02d:00 (%.3f)  mean %.3f over %d hours, %d measures\n",
		s.PeakHour, s.PeakAverage, s.TroughHour, s.TroughAverage, s.Mean, s.Hours, s.Measures)
	return err
}

// WriteCSV writes rows with a header line.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"hour", "average", "count"}); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			strconv.Itoa(r.Hour),
			strconv.FormatFloat(r.Average, 'f', -1, 64),
			strconv.Itoa(r.Count),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes rows as an indented JSON array.
func WriteJSON(w io.Writer, rows []Row) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

// WriteYAML writes rows as a YAML sequence.
func WriteYAML(w io.Writer, rows []Row) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rows); err != nil {
		return err
	}
	return enc.Close()
}

// Formats lists the names accepted by Write.
var Formats = []string{"table", "csv", "json", "yaml"}

// Write dispatches to the writer for format.
func Write(w io.Writer, format string, rows []Row) error {
	switch format {
	case "table":
		return WriteTable(w, rows)
	case "csv":
		return WriteCSV(w, rows)
	case "json":
		return WriteJSON(w, rows)
	case "yaml", "yml":
		return WriteYAML(w, rows)
	default:
		return fmt.Errorf("unknown format %q (known: %v)", format, Formats)
	}
}
