package classify

import (
	"errors"
	"testing"
)

func TestClassify(t *testing.T) {
	th := DefaultThresholds()
	cases := []struct {
		name      string
		observed  float64
		predicted float64
		want      Level
	}{
		{"well below", 600, 708, Below},
		{"well above", 950, 708, Above},
		{"normal", 700, 708, Normal},
		{"just inside low edge", 638, 708, Normal},
		{"just inside high edge", 920, 708, Normal},
		{"zero baseline", 0, 0, Normal},
		{"traffic on empty baseline", 1, 0, Above},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			v := th.Classify(c.observed, c.predicted)
			if v.Level != c.want {
				t.Fatalf("expected %s got %s", c.want, v.Level)
			}
			if v.Observed != c.observed || v.Predicted != c.predicted {
				t.Fatalf("verdict does not carry inputs: %+v", v)
			}
		})
	}
}

func TestThresholdsDefaultsAndValidate(t *testing.T) {
	var th Thresholds
	th.SetDefaults()
	if th != DefaultThresholds() {
		t.Fatalf("unexpected defaults %+v", th)
	}
	if err := th.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
	for _, bad := range []Thresholds{{Low: 1.5, High: 1.2}, {Low: -1, High: 1.2}} {
		if err := bad.Validate(); !errors.Is(err, ErrInvalidThresholds) {
			t.Errorf("%+v: expected ErrInvalidThresholds, got %v", bad, err)
		}
	}
}

func TestLevelString(t *testing.T) {
	for l, want := range map[Level]string{Below: "below", Normal: "normal", Above: "above", Level(9): "unknown"} {
		if got := l.String(); got != want {
			t.Errorf("Level(%d).String() = %q, want %q", int(l), got, want)
		}
	}
}
