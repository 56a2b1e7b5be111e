package selection

import (
	"math/rand"
	"testing"
)

func TestFormat(t *testing.T) {
	cases := []struct {
		e    Emphasis
		want string
	}{
		{Plain(), "cat"},
		{Emphasis{Mode: Strong, Value: 1.0}, "(cat)"},
		{Emphasis{Mode: Strong, Value: 1.4}, "(cat:1.4)"},
		{Emphasis{Mode: Weak, Value: 1.0}, "[cat]"},
		{Emphasis{Mode: Weak, Value: 2.0}, "[cat:2.0]"},
		{Emphasis{Mode: Mode("bogus"), Value: 1.6}, "cat"},
	}
	for _, c := range cases {
		if got := Format("cat", c.e); got != c.want {
			t.Fatalf("Format(%+v) = %q, want %q", c.e, got, c.want)
		}
	}
}

func TestIncreaseSteps(t *testing.T) {
	e := Plain()
	want := []Emphasis{
		{Strong, 1.0}, {Strong, 1.2}, {Strong, 1.4}, {Strong, 1.6}, {Strong, 1.8}, {Strong, 2.0},
	}
	for i, w := range want {
		var ok bool
		e, ok = e.Increase()
		if !ok || e != w {
			t.Fatalf("step %d: got %+v ok=%v, want %+v", i, e, ok, w)
		}
	}
	if _, ok := e.Increase(); ok {
		t.Fatal("increase must be disabled at strong max")
	}
}

func TestDecreaseSteps(t *testing.T) {
	e := Plain()
	want := []Emphasis{
		{Weak, 1.0}, {Weak, 1.2}, {Weak, 1.4}, {Weak, 1.6}, {Weak, 1.8}, {Weak, 2.0},
	}
	for i, w := range want {
		var ok bool
		e, ok = e.Decrease()
		if !ok || e != w {
			t.Fatalf("step %d: got %+v ok=%v, want %+v", i, e, ok, w)
		}
	}
	if _, ok := e.Decrease(); ok {
		t.Fatal("decrease must be disabled at weak max")
	}
}

func TestCollapseToNormal(t *testing.T) {
	got, ok := Emphasis{Mode: Strong, Value: 1.2}.Decrease()
	if !ok || got != Plain() {
		t.Fatalf("strong 1.2 decrease: got %+v", got)
	}
	got, ok = Emphasis{Mode: Weak, Value: 1.2}.Increase()
	if !ok || got != Plain() {
		t.Fatalf("weak 1.2 increase: got %+v", got)
	}
}

func TestDisabledControlsAreNoOps(t *testing.T) {
	cases := []struct {
		e      Emphasis
		canInc bool
		canDec bool
	}{
		{Plain(), true, true},
		{Emphasis{Strong, 1.0}, true, false},
		{Emphasis{Strong, 2.0}, false, true},
		{Emphasis{Weak, 1.0}, false, true},
		{Emphasis{Weak, 2.0}, true, false},
		{Emphasis{Strong, 1.6}, true, true},
	}
	for _, c := range cases {
		if c.e.CanIncrease() != c.canInc || c.e.CanDecrease() != c.canDec {
			t.Fatalf("%+v: CanIncrease=%v CanDecrease=%v", c.e, c.e.CanIncrease(), c.e.CanDecrease())
		}
		if !c.canInc {
			if got, ok := c.e.Increase(); ok || got != c.e {
				t.Fatalf("%+v: disabled increase changed state to %+v", c.e, got)
			}
		}
		if !c.canDec {
			if got, ok := c.e.Decrease(); ok || got != c.e {
				t.Fatalf("%+v: disabled decrease changed state to %+v", c.e, got)
			}
		}
	}
}

func TestRoundTripAwayFromNormal(t *testing.T) {
	for _, v := range []float64{1.2, 1.4, 1.6, 1.8} {
		strong := Emphasis{Strong, v}
		up, _ := strong.Increase()
		back, _ := up.Decrease()
		if back != strong {
			t.Fatalf("strong %.1f: increase then decrease gave %+v", v, back)
		}

		weak := Emphasis{Weak, v}
		down, _ := weak.Decrease()
		back, _ = down.Increase()
		if back != weak {
			t.Fatalf("weak %.1f: decrease then increase gave %+v", v, back)
		}
	}
}

func TestRoundTripTowardNormal(t *testing.T) {
	for _, v := range []float64{1.4, 1.6, 1.8, 2.0} {
		strong := Emphasis{Strong, v}
		down, _ := strong.Decrease()
		back, _ := down.Increase()
		if back != strong {
			t.Fatalf("strong %.1f: decrease then increase gave %+v", v, back)
		}

		weak := Emphasis{Weak, v}
		up, _ := weak.Increase()
		back, _ = up.Decrease()
		if back != weak {
			t.Fatalf("weak %.1f: increase then decrease gave %+v", v, back)
		}
	}
}

func TestNormalBoundary(t *testing.T) {
	// normal -> strong 1.0 is reachable, but strong 1.0 cannot be weakened.
	up, _ := Plain().Increase()
	if back, ok := up.Decrease(); ok || back != up {
		t.Fatalf("strong 1.0 decrease should be disabled, got %+v", back)
	}
	// strong 1.0 -> 1.2 -> collapses straight back to normal.
	up2, _ := up.Increase()
	if back, _ := up2.Decrease(); back != Plain() {
		t.Fatalf("expected collapse to normal, got %+v", back)
	}
	// Mirror on the weak side.
	down, _ := Plain().Decrease()
	if back, ok := down.Increase(); ok || back != down {
		t.Fatalf("weak 1.0 increase should be disabled, got %+v", back)
	}
	down2, _ := down.Decrease()
	if back, _ := down2.Increase(); back != Plain() {
		t.Fatalf("expected collapse to normal, got %+v", back)
	}
}

func TestGridInvariant(t *testing.T) {
	grid := map[float64]bool{1.0: true, 1.2: true, 1.4: true, 1.6: true, 1.8: true, 2.0: true}
	rng := rand.New(rand.NewSource(7))
	e := Plain()
	for i := 0; i < 5000; i++ {
		if rng.Intn(2) == 0 {
			e, _ = e.Increase()
		} else {
			e, _ = e.Decrease()
		}
		if !grid[e.Value] {
			t.Fatalf("step %d: value %v left the grid", i, e.Value)
		}
		if e.Mode == Normal && e.Value != EmphasisMin {
			t.Fatalf("step %d: normal with value %v", i, e.Value)
		}
	}
}

func TestNewEmphasisSnapsValues(t *testing.T) {
	cases := []struct {
		mode  Mode
		value float64
		want  Emphasis
	}{
		{Normal, 1.6, Plain()},
		{Strong, 1.3, Emphasis{Strong, 1.4}},
		{Strong, 5, Emphasis{Strong, 2.0}},
		{Weak, 0.2, Emphasis{Weak, 1.0}},
		{Weak, 1.5999999, Emphasis{Weak, 1.6}},
		{Mode(""), 1.8, Plain()},
	}
	for _, c := range cases {
		if got := NewEmphasis(c.mode, c.value); got != c.want {
			t.Fatalf("NewEmphasis(%q, %v) = %+v, want %+v", c.mode, c.value, got, c.want)
		}
	}
}
