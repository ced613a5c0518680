package outlier

import (
	"fmt"

	"github.com/katalvlaran/timbretag/patch"
)

// Table maps each category to the rules that govern it.
//
// A Table is treated as immutable once built: With returns a modified
// copy and Rules returns a copy of the stored slice, so a table shared by
// several engines can never be altered through one of them.
type Table struct {
	rules map[patch.Category][]Rule
}

// NewTable builds a table from explicit rules (copied).
func NewTable(rules map[patch.Category][]Rule) Table {
	t := Table{rules: make(map[patch.Category][]Rule, len(rules))}
	for c, rs := range rules {
		t.rules[c] = append([]Rule(nil), rs...)
	}
	return t
}

// DefaultTable returns the thresholds the patch library was curated with.
// Channel positions follow patch.Channels.
func DefaultTable() Table {
	spec := func(name string) int { return mustIndex(patch.Spectral, name) }
	temp := func(name string) int { return mustIndex(patch.Temporal, name) }

	return NewTable(map[patch.Category][]Rule{
		patch.Bright: {
			{Channel: spec(patch.FilterFrequency), Threshold: 0.2, Direction: AtMost},
		},
		patch.Dark: {
			{Channel: spec(patch.FilterFrequency), Threshold: 0.1, Direction: AtMost},
		},
		patch.Resonant: {
			{Channel: spec(patch.FilterEmphasis), Threshold: 0.5, Direction: AtMost},
		},
		patch.Soft: {
			{Channel: spec(patch.FilterFrequency), Threshold: 0.1, Direction: AtMost},
			{Channel: spec(patch.FilterEmphasis), Threshold: 0.1, Direction: AtMost},
		},
		patch.Pluck: {
			{Channel: temp(patch.FilterAttack), Threshold: 0.1, Direction: AtLeast},
			{Channel: temp(patch.VcaAttack), Threshold: 0.1, Direction: AtLeast},
		},
		patch.LongRelease: {
			{Channel: temp(patch.FilterRelease), Threshold: 0.3, Direction: AtMost},
			{Channel: temp(patch.VcaRelease), Threshold: 0.3, Direction: AtMost},
		},
		patch.Swell: {
			{Channel: temp(patch.FilterAttack), Threshold: 0.4, Direction: AtMost},
			{Channel: temp(patch.VcaAttack), Threshold: 0.2, Direction: AtMost},
		},
		patch.Short: {
			{Channel: temp(patch.VcaAttack), Threshold: 0.1, Direction: AtLeast},
			{Channel: temp(patch.VcaSustain), Threshold: 0.1, Direction: AtLeast},
		},
	})
}

// Rules returns a copy of the rules governing c (nil when none).
func (t Table) Rules(c patch.Category) []Rule {
	rs, ok := t.rules[c]
	if !ok {
		return nil
	}
	return append([]Rule(nil), rs...)
}

// With returns a copy of t whose rules for c are replaced by rules.
// Passing no rules leaves c ungoverned.
func (t Table) With(c patch.Category, rules ...Rule) Table {
	out := NewTable(t.rules)
	if len(rules) == 0 {
		delete(out.rules, c)
		return out
	}
	out.rules[c] = append([]Rule(nil), rules...)
	return out
}

// Categories returns the governed categories in pipeline order.
func (t Table) Categories() []patch.Category {
	var out []patch.Category
	for _, c := range patch.Categories() {
		if _, ok := t.rules[c]; ok {
			out = append(out, c)
		}
	}
	return out
}

// Validate checks every rule against the stored width of its category's
// domain schema.
func (t Table) Validate() error {
	for c, rs := range t.rules {
		if !c.Valid() {
			return fmt.Errorf("outlier: %w: %d", patch.ErrUnknownCategory, int(c))
		}
		w := patch.Width(c.Domain())
		for _, r := range rs {
			if r.Channel < 0 || r.Channel >= w {
				return fmt.Errorf("outlier: %w: %s rule on channel %d, %s schema has %d",
					patch.ErrInvalidConfiguration, c, r.Channel, c.Domain(), w)
			}
			if r.Direction != AtMost && r.Direction != AtLeast {
				return fmt.Errorf("outlier: %w: %s rule direction %d",
					patch.ErrInvalidConfiguration, c, int(r.Direction))
			}
		}
	}
	return nil
}

func mustIndex(d patch.Domain, name string) int {
	idx, err := patch.ChannelIndex(d, name)
	if err != nil {
		panic(err)
	}
	return idx
}
