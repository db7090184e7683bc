package ingest

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrMalformedLine is wrapped by every *ParseError.
var ErrMalformedLine = errors.New("malformed traffic line")

// ParseError describes why a line could not be parsed.
type ParseError struct {
	// Line is the 1-based line number, or 0 for interactive input.
	Line   int
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Input)
	}
	return fmt.Sprintf("%s: %q", e.Reason, e.Input)
}

func (e *ParseError) Unwrap() error { return ErrMalformedLine }

// Record is one parsed traffic line.
type Record struct {
	// Timestamp carries the date of the line when its first token is a
	// recognized date, otherwise only the time of day on a zero date.
	Timestamp time.Time
	Hour      int
	Minute    int
	Device    string
	Value     float64
}

// FractionalHour returns the time of day as hour + minute/60.
func (r Record) FractionalHour() float64 {
	return float64(r.Hour) + float64(r.Minute)/60
}

// The first token is a date of any shape; only the time and the last token
// feed the baseline.
var lineRe = regexp.MustCompile(`^\s*(\S+)\s+(\d{1,2}):(\d{1,2})(?::(\d{1,2}))?\s+(?:(.*?)\s+)?(\S+)\s*$`)

// dateLayouts are tried in order on the first token.
var dateLayouts = []string{"02.01.2006", "2.1.2006", "02.01.06", "2006-01-02", "02/01/2006"}

// ParseLine parses a single traffic line of the form
// "<date> HH:MM[:SS] [device] <value>".
func ParseLine(line string) (Record, error) {
	m := lineRe.FindStringSubmatch(line)
	if m == nil {
		return Record{}, &ParseError{Input: line, Reason: "expected \"<date> HH:MM <device> <value>\""}
	}
	hour, _ := strconv.Atoi(m[2])
	minute, _ := strconv.Atoi(m[3])
	second := 0
	if m[4] != "" {
		second, _ = strconv.Atoi(m[4])
	}
	if hour > 23 || minute > 59 || second > 59 {
		return Record{}, &ParseError{Input: line, Reason: fmt.Sprintf("invalid time %s:%s", m[2], m[3])}
	}
	value, err := strconv.ParseFloat(m[6], 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return Record{}, &ParseError{Input: line, Reason: fmt.Sprintf("invalid traffic value %q", m[6])}
	}
	return Record{
		Timestamp: timestamp(m[1], hour, minute, second),
		Hour:      hour,
		Minute:    minute,
		Device:    strings.TrimSpace(m[5]),
		Value:     value,
	}, nil
}

func timestamp(date string, hour, minute, second int) time.Time {
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, date); err == nil {
			return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, second, 0, time.UTC)
		}
	}
	return time.Date(0, time.January, 1, hour, minute, second, 0, time.UTC)
}
