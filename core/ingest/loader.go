package ingest

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/kilianp07/trafficwatch/core/logger"
	"github.com/kilianp07/trafficwatch/core/metrics"
	"github.com/kilianp07/trafficwatch/core/model"
)

// maxLineSize bounds a single log line.
const maxLineSize = 1 << 20

// Stats summarizes one Load call.
type Stats struct {
	Lines    int
	Accepted int
	Rejected int
	Blank    int
	Duration time.Duration
}

// Loader folds traffic log lines into a model.
type Loader struct {
	target model.Accumulator
	sink   metrics.Sink
	log    logger.Logger
	// Strict aborts on the first malformed line instead of skipping it.
	Strict bool
	// Source names the input in logs and ingestion summaries.
	Source string
}

// NewLoader returns a lenient loader. A nil sink is replaced by a NopSink.
func NewLoader(target model.Accumulator, sink metrics.Sink, log logger.Logger) *Loader {
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &Loader{target: target, sink: sink, log: log, Source: "input"}
}

// Load reads r line by line. Only the hour of each line is used as the bucket
// key; minutes are ignored. Blank lines are skipped.
func (l *Loader) Load(ctx context.Context, r io.Reader) (Stats, error) {
	start := time.Now()
	var st Stats
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return l.finish(st, start), err
		}
		st.Lines++
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			st.Blank++
			continue
		}
		rec, err := ParseLine(line)
		if err != nil {
			var pe *ParseError
			if errors.As(err, &pe) {
				pe.Line = st.Lines
			}
			st.Rejected++
			if l.Strict {
				return l.finish(st, start), fmt.Errorf("%s: %w", l.Source, err)
			}
			l.log.Warnf("%s: skipping %v", l.Source, err)
			continue
		}
		if err := l.target.AddMeasure(rec.Hour, rec.Value); err != nil {
			return l.finish(st, start), fmt.Errorf("%s line %d: %w", l.Source, st.Lines, err)
		}
		st.Accepted++
		if err := l.sink.RecordMeasure(metrics.MeasureEvent{Hour: rec.Hour, Value: rec.Value, Time: rec.Timestamp}); err != nil {
			l.log.Warnf("record measure: %v", err)
		}
	}
	if err := sc.Err(); err != nil {
		return l.finish(st, start), fmt.Errorf("read %s: %w", l.Source, err)
	}
	st = l.finish(st, start)
	l.log.Infow("ingestion complete", map[string]any{
		"source":   l.Source,
		"lines":    st.Lines,
		"accepted": st.Accepted,
		"rejected": st.Rejected,
	})
	return st, nil
}

func (l *Loader) finish(st Stats, start time.Time) Stats {
	st.Duration = time.Since(start)
	if rec, ok := l.sink.(metrics.IngestRecorder); ok {
		err := rec.RecordIngest(metrics.IngestSummary{
			Source:   l.Source,
			Lines:    st.Lines,
			Accepted: st.Accepted,
			Rejected: st.Rejected,
			Duration: st.Duration,
			Time:     time.Now(),
		})
		if err != nil {
			l.log.Warnf("record ingest: %v", err)
		}
	}
	return st
}
