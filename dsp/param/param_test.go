package param

import (
	"errors"
	"math"
	"sync"
	"testing"
)

func TestCurveMappings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		curve    Curve
		n        float64
		min, max float64
		want     float64
	}{
		{name: "linear-mid", curve: Linear, n: 0.5, min: 0, max: 1, want: 0.5},
		{name: "linear-range", curve: Linear, n: 0.25, min: -60, max: 6, want: -43.5},
		{name: "exp-low", curve: Exponential, n: 0, min: 475, max: 32000, want: 475},
		{name: "exp-high", curve: Exponential, n: 1, min: 475, max: 32000, want: 32000},
		{name: "exp-mid", curve: Exponential, n: 0.5, min: 0.05, max: 6, want: math.Sqrt(0.05 * 6)},
		{name: "clamped", curve: Linear, n: 3, min: 0, max: 2, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := tt.curve.Denormalize(tt.n, tt.min, tt.max)
			if math.Abs(got-tt.want) > 1e-9*math.Max(1, math.Abs(tt.want)) {
				t.Fatalf("Denormalize = %v, want %v", got, tt.want)
			}

			back := tt.curve.Normalize(got, tt.min, tt.max)
			if math.Abs(back-clamp01(tt.n)) > 1e-9 {
				t.Fatalf("Normalize(Denormalize(%v)) = %v", tt.n, back)
			}
		})
	}
}

func TestCurveMonotonic(t *testing.T) {
	for _, c := range []Curve{Linear, Exponential} {
		prev := math.Inf(-1)
		for n := 0.0; n <= 1; n += 0.001 {
			v := c.Denormalize(n, 20, 650)
			if v < prev {
				t.Fatalf("%v not monotonic at %v", c, n)
			}
			prev = v
		}
	}
}

func TestAffineDB(t *testing.T) {
	if got := AffineDB(0.5, 36, -6); got != 12 {
		t.Fatalf("AffineDB = %v, want 12", got)
	}

	if got := AffineGain(0, 66, -60); math.Abs(got-0.001) > 1e-15 {
		t.Fatalf("AffineGain = %v, want 0.001", got)
	}

	if got := AffineDB(math.NaN(), 66, -60); got != -60 {
		t.Fatalf("AffineDB(NaN) = %v, want -60", got)
	}
}

func TestParamDefaultsAndClamp(t *testing.T) {
	p := New("rate").Range(0.05, 6).Default(0.6).Unit("Hz").Curve(Exponential).Build()

	if math.Abs(p.Plain()-0.6) > 1e-12 {
		t.Fatalf("Plain = %v, want 0.6", p.Plain())
	}

	p.SetNormalized(2)
	if p.Normalized() != 1 {
		t.Fatalf("Normalized = %v, want 1", p.Normalized())
	}

	p.SetNormalized(math.NaN())
	if p.Normalized() != 1 {
		t.Fatalf("NaN changed value to %v", p.Normalized())
	}

	p.SetPlain(100)
	if math.Abs(p.Plain()-6) > 1e-12 {
		t.Fatalf("Plain = %v, want clamp to 6", p.Plain())
	}

	if got := p.Format(); got != "6.00 Hz" {
		t.Fatalf("Format = %q", got)
	}
}

func TestBoolParam(t *testing.T) {
	b := Bool("up1", false)

	b.SetNormalized(0.7)
	if !b.On() || b.Normalized() != 1 || b.Plain() != 1 {
		t.Fatalf("bool after 0.7: on=%v n=%v plain=%v", b.On(), b.Normalized(), b.Plain())
	}

	b.SetPlain(0.2)
	if b.On() {
		t.Fatal("bool should be off after SetPlain(0.2)")
	}

	if got := b.Format(); got != "off" {
		t.Fatalf("Format = %q, want off", got)
	}

	if !Bypass().IsBypass() || b.IsBypass() {
		t.Fatal("bypass flag misreported")
	}
}

func TestSetLookup(t *testing.T) {
	s := MustSet(
		New("drive").Default(0.5).Build(),
		New("volume").Default(0.8).Build(),
		Bypass(),
	)

	if s.Len() != 3 {
		t.Fatalf("Len = %d, want 3", s.Len())
	}

	if got := s.Names(); got[0] != "drive" || got[2] != "bypass" {
		t.Fatalf("Names = %v", got)
	}

	if s.Bypass() == nil || s.Bypass() != s.At(2) {
		t.Fatal("Bypass not found")
	}

	if !s.SetNormalized("drive", 0.25) {
		t.Fatal("SetNormalized(drive) = false")
	}

	if v, ok := s.Normalized("drive"); !ok || v != 0.25 {
		t.Fatalf("Normalized(drive) = %v, %v", v, ok)
	}

	if _, ok := s.Normalized("tone"); ok {
		t.Fatal("unknown parameter reported as present")
	}

	err := s.Apply(map[string]float64{"volume": 0.1, "tone": 0.3})
	if !errors.Is(err, ErrUnknownParameter) {
		t.Fatalf("Apply error = %v, want ErrUnknownParameter", err)
	}

	if v, _ := s.Normalized("volume"); v != 0.1 {
		t.Fatalf("known name not applied: volume = %v", v)
	}

	s.Reset()
	if v, _ := s.Normalized("volume"); v != 0.8 {
		t.Fatalf("after Reset volume = %v, want 0.8", v)
	}
}

func TestNewSetRejectsDuplicates(t *testing.T) {
	_, err := NewSet(New("a").Build(), New("a").Build())
	if !errors.Is(err, ErrDuplicateParameter) {
		t.Fatalf("err = %v, want ErrDuplicateParameter", err)
	}

	if _, err := NewSet(New("").Build()); err == nil {
		t.Fatal("expected error for empty name")
	}
}

func TestConcurrentAccess(t *testing.T) {
	p := New("depth").Build()

	var wg sync.WaitGroup

	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < 10000; i++ {
			p.SetNormalized(float64(i%100) / 100)
		}
	}()

	go func() {
		defer wg.Done()
		for i := 0; i < 10000; i++ {
			if v := p.Normalized(); v < 0 || v > 1 {
				t.Errorf("torn read %v", v)
				return
			}
		}
	}()

	wg.Wait()
}
