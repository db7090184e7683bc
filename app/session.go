package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/trafficwatch/core/classify"
	"github.com/kilianp07/trafficwatch/core/ingest"
	"github.com/kilianp07/trafficwatch/core/logger"
	"github.com/kilianp07/trafficwatch/core/metrics"
	"github.com/kilianp07/trafficwatch/core/model"
)

// Session answers traffic queries typed one per line against a baseline.
type Session struct {
	// ID tags every verdict recorded by this session.
	ID string
	// Debug prints the predicted value before each verdict.
	Debug bool

	model      model.Predictor
	thresholds classify.Thresholds
	msgs       Messages
	sink       metrics.Sink
	log        logger.Logger
	now        func() time.Time
}

// NewSession returns a session with a fresh ID. A nil sink is replaced by a
// NopSink.
func NewSession(p model.Predictor, th classify.Thresholds, msgs Messages, sink metrics.Sink, log logger.Logger) *Session {
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &Session{
		ID:         uuid.NewString(),
		model:      p,
		thresholds: th,
		msgs:       msgs,
		sink:       sink,
		log:        log,
		now:        time.Now,
	}
}

// Evaluate parses one query line and classifies it. The model is never
// mutated.
func (s *Session) Evaluate(line string) (classify.Verdict, error) {
	rec, err := ingest.ParseLine(line)
	if err != nil {
		return classify.Verdict{}, err
	}
	hour := rec.FractionalHour()
	predicted, err := s.model.Predict(hour)
	if err != nil {
		return classify.Verdict{}, fmt.Errorf("predict %.3f: %w", hour, err)
	}
	v := s.thresholds.Classify(rec.Value, predicted)
	s.record(rec, hour, v)
	return v, nil
}

func (s *Session) record(rec ingest.Record, hour float64, v classify.Verdict) {
	r, ok := s.sink.(metrics.VerdictRecorder)
	if !ok {
		return
	}
	err := r.RecordVerdict(metrics.VerdictEvent{
		SessionID: s.ID,
		Hour:      hour,
		Observed:  v.Observed,
		Predicted: v.Predicted,
		Level:     v.Level,
		Timestamp: rec.Timestamp,
		Time:      s.now(),
	})
	if err != nil {
		s.log.Warnf("record verdict: %v", err)
	}
}

// Run prints the prompt, then answers each line of in on out until an empty
// line or EOF. Malformed lines print the retry message and the loop goes on.
// A canceled ctx returns ctx.Err(). The reading goroutine stops when Run
// returns.
func (s *Session) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if _, err := fmt.Fprintln(out, s.msgs.Prompt); err != nil {
		return err
	}
	lines, errc := readLines(ctx, in)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				if err := <-errc; err != nil {
					return err
				}
				_, err := fmt.Fprintln(out, s.msgs.Exit)
				return err
			}
			line = strings.TrimSuffix(line, "\r")
			if line == "" {
				_, err := fmt.Fprintln(out, s.msgs.Exit)
				return err
			}
			if err := s.answer(line, out); err != nil {
				return err
			}
		}
	}
}

func (s *Session) answer(line string, out io.Writer) error {
	v, err := s.Evaluate(line)
	if err != nil {
		s.log.Debugw("query rejected", map[string]any{"session": s.ID, "error": err.Error()})
		_, err = fmt.Fprintln(out, s.msgs.Retry)
		return err
	}
	if s.Debug {
		if _, err := fmt.Fprintf(out, s.msgs.Predicted+"\n", v.Predicted); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintln(out, s.msgs.Verdict(v.Level))
	return err
}

// readLines scans in on its own goroutine so that Run can observe ctx while
// a read is blocked. errc receives exactly one value before lines closes.
func readLines(ctx context.Context, in io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
		errc <- sc.Err()
	}()
	return lines, errc
}
