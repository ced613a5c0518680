package outlier

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/timbretag/patch"
)

// Direction selects the comparison a Rule applies.
type Direction int

const (
	// AtMost flags values less than or equal to the threshold.
	AtMost Direction = iota

	// AtLeast flags values greater than or equal to the threshold.
	AtLeast
)

// String returns the comparison operator.
func (d Direction) String() string {
	switch d {
	case AtMost:
		return "<="
	case AtLeast:
		return ">="
	}
	return fmt.Sprintf("direction(%d)", int(d))
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	switch d {
	case AtMost, AtLeast:
		return []byte(d.String()), nil
	}
	return nil, fmt.Errorf("outlier: %w: direction %d", patch.ErrInvalidConfiguration, int(d))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(b []byte) error {
	parsed, err := ParseDirection(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDirection accepts "<=", "le", "at_most" and ">=", "ge", "at_least".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "<=", "le", "at_most", "atmost":
		return AtMost, nil
	case ">=", "ge", "at_least", "atleast":
		return AtLeast, nil
	}
	return 0, fmt.Errorf("outlier: %w: direction %q", patch.ErrInvalidConfiguration, s)
}

// Rule governs one channel of a category.
type Rule struct {
	Channel   int
	Threshold float64
	Direction Direction
}

// Fails reports whether v fails the rule's test and must be replaced.
func (r Rule) Fails(v float64) bool {
	if r.Direction == AtLeast {
		return v >= r.Threshold
	}
	return v <= r.Threshold
}

// Correction records what one rule did to a category.
type Correction struct {
	Rule     Rule
	Mean     float64 // pre-correction channel mean
	Replaced int     // number of vectors whose value was replaced
}

// Report summarises one Correct call.
type Report struct {
	Corrections []Correction
}

// Replaced returns the total number of replaced values.
func (r Report) Replaced() int {
	n := 0
	for _, c := range r.Corrections {
		n += c.Replaced
	}
	return n
}
