package selection

import (
	"math"
	"strconv"
)

// Emphasis bounds and step. Values always land on the 0.2 grid from 1.0 to 2.0.
const (
	EmphasisMin  = 1.0
	EmphasisMax  = 2.0
	EmphasisStep = 0.2
)

// Mode is the kind of weighting applied to a selected keyword.
type Mode string

const (
	Normal Mode = "normal"
	Strong Mode = "strong"
	Weak   Mode = "weak"
)

// ParseMode maps a stored emphasis type to a Mode; anything unknown is Normal.
func ParseMode(s string) Mode {
	switch Mode(s) {
	case Strong:
		return Strong
	case Weak:
		return Weak
	}
	return Normal
}

// Emphasis is the weighting of one selected keyword.
type Emphasis struct {
	Mode  Mode    `json:"emphasisType"`
	Value float64 `json:"emphasisValue"`
}

// Plain is the unweighted emphasis every new selection starts with.
func Plain() Emphasis {
	return Emphasis{Mode: Normal, Value: EmphasisMin}
}

// NewEmphasis builds a valid emphasis from stored values: the value is
// clamped to the allowed range and snapped to the grid, and Normal forces 1.0.
func NewEmphasis(mode Mode, value float64) Emphasis {
	mode = ParseMode(string(mode))
	if mode == Normal || math.IsNaN(value) {
		return Plain()
	}
	value = math.Max(EmphasisMin, math.Min(EmphasisMax, value))
	steps := math.Round((value - EmphasisMin) / EmphasisStep)
	return Emphasis{Mode: mode, Value: round1(EmphasisMin + steps*EmphasisStep)}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// CanIncrease reports whether the strengthen control is enabled.
func (e Emphasis) CanIncrease() bool {
	switch e.Mode {
	case Strong:
		return e.Value < EmphasisMax
	case Weak:
		return e.Value > EmphasisMin
	}
	return true
}

// CanDecrease reports whether the weaken control is enabled.
func (e Emphasis) CanDecrease() bool {
	switch e.Mode {
	case Strong:
		return e.Value > EmphasisMin
	case Weak:
		return e.Value < EmphasisMax
	}
	return true
}

// Increase strengthens the emphasis by one step. A disabled control leaves
// the emphasis unchanged and reports false.
func (e Emphasis) Increase() (Emphasis, bool) {
	if !e.CanIncrease() {
		return e, false
	}
	switch e.Mode {
	case Strong:
		return Emphasis{Mode: Strong, Value: math.Min(EmphasisMax, round1(e.Value+EmphasisStep))}, true
	case Weak:
		return shrink(Weak, e.Value), true
	}
	return Emphasis{Mode: Strong, Value: EmphasisMin}, true
}

// Decrease weakens the emphasis by one step, mirroring Increase.
func (e Emphasis) Decrease() (Emphasis, bool) {
	if !e.CanDecrease() {
		return e, false
	}
	switch e.Mode {
	case Weak:
		return Emphasis{Mode: Weak, Value: math.Min(EmphasisMax, round1(e.Value+EmphasisStep))}, true
	case Strong:
		return shrink(Strong, e.Value), true
	}
	return Emphasis{Mode: Weak, Value: EmphasisMin}, true
}

// shrink reduces the magnitude of a weighted emphasis, collapsing to Normal
// once it reaches the minimum.
func shrink(mode Mode, value float64) Emphasis {
	v := math.Max(EmphasisMin, round1(value-EmphasisStep))
	if v <= EmphasisMin {
		return Plain()
	}
	return Emphasis{Mode: mode, Value: v}
}

// Format renders a keyword with its emphasis annotation.
func Format(key string, e Emphasis) string {
	var lb, rb string
	switch e.Mode {
	case Strong:
		lb, rb = "(", ")"
	case Weak:
		lb, rb = "[", "]"
	default:
		return key
	}
	if e.Value == EmphasisMin {
		return lb + key + rb
	}
	return lb + key + ":" + strconv.FormatFloat(e.Value, 'f', 1, 64) + rb
}
