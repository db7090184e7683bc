package metrics_test

import (
	"errors"
	"testing"

	"github.com/kilianp07/trafficwatch/core/factory"
	metrics "github.com/kilianp07/trafficwatch/core/metrics"
	_ "github.com/kilianp07/trafficwatch/infra/metrics"
)

/*
TestMetricsFactory_Builtins verifies registration via infra/metrics/factory.go.

	Cases:
	- instantiate builtin nop sink
	- unknown type returns error
*/
func TestMetricsFactory_Builtins(t *testing.T) {
	s, err := metrics.NewSink([]factory.ModuleConfig{{Type: "nop"}})
	if err != nil {
		t.Fatalf("create nop: %v", err)
	}
	if s == nil {
		t.Fatal("expected sink instance")
	}
	if _, err := metrics.NewSink([]factory.ModuleConfig{{Type: "missing"}}); !errors.Is(err, factory.ErrUnknownType) {
		t.Fatalf("expected unknown type error, got %v", err)
	}
	types := metrics.SinkTypes()
	for _, want := range []string{"influx", "nop", "prometheus"} {
		found := false
		for _, got := range types {
			if got == want {
				found = true
			}
		}
		if !found {
			t.Errorf("sink type %q not registered: %v", want, types)
		}
	}
}

/*
TestNewSink_Multi validates NewSink behavior with zero, one, and multiple configs.
Cases:
  - no config -> NopSink
  - two configs -> MultiSink with two sub-sinks
*/
func TestNewSink_Multi(t *testing.T) {
	s, err := metrics.NewSink(nil)
	if err != nil {
		t.Fatalf("nil config: %v", err)
	}
	if _, ok := s.(metrics.NopSink); !ok {
		t.Fatalf("expected NopSink, got %T", s)
	}
	s, err = metrics.NewSink([]factory.ModuleConfig{{Type: "nop"}, {Type: "nop"}})
	if err != nil {
		t.Fatalf("multi: %v", err)
	}
	ms, ok := s.(*metrics.MultiSink)
	if !ok || len(ms.Sinks) != 2 {
		t.Fatalf("expected MultiSink with two sinks, got %#v", s)
	}
}

type closingSink struct {
	metrics.NopSink
	closed *int
}

func (c closingSink) Close() error {
	*c.closed++
	return nil
}

// Sinks built before a failing one are closed.
func TestNewSink_ClosesBuiltSinksOnError(t *testing.T) {
	closed := 0
	if err := metrics.RegisterSink("closing-test", func(map[string]any) (metrics.Sink, error) {
		return closingSink{closed: &closed}, nil
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, err := metrics.NewSink([]factory.ModuleConfig{
		{Type: "closing-test"},
		{Type: "closing-test"},
		{Type: "missing"},
	})
	if !errors.Is(err, factory.ErrUnknownType) {
		t.Fatalf("expected unknown type error, got %v", err)
	}
	if closed != 2 {
		t.Fatalf("expected 2 sinks closed, got %d", closed)
	}
}
