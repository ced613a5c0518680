package outlier

import (
	"fmt"

	"github.com/katalvlaran/timbretag/patch"
)

// Correct applies rules to vs in place.
//
// Implementation:
//   - Stage 1: empty category ⇒ no-op (mean of nothing is never taken).
//   - Stage 2: validate widths and that every rule's channel exists.
//   - Stage 3: compute every governed channel's mean before touching data.
//   - Stage 4: replace failing values with the precomputed mean.
//
// Errors:
//   - patch.ErrChannelMismatch: mixed widths or a rule beyond the width.
//     Nothing is modified when an error is returned.
//
// Complexity: O(n·r) for n vectors and r rules.
func Correct(vs []patch.Vector, rules []Rule) (Report, error) {
	if len(vs) == 0 || len(rules) == 0 {
		return Report{}, nil
	}

	w, err := patch.UniformWidth(vs)
	if err != nil {
		return Report{}, fmt.Errorf("outlier: %w", err)
	}
	for _, r := range rules {
		if r.Channel < 0 || r.Channel >= w {
			return Report{}, fmt.Errorf("outlier: %w: rule on channel %d, vectors have %d channels",
				patch.ErrChannelMismatch, r.Channel, w)
		}
	}

	means := make([]float64, len(rules))
	for i, r := range rules {
		means[i] = channelMean(vs, r.Channel)
	}

	rep := Report{Corrections: make([]Correction, len(rules))}
	for i, r := range rules {
		rep.Corrections[i] = Correction{Rule: r, Mean: means[i]}
		for _, v := range vs {
			if r.Fails(v[r.Channel]) {
				v[r.Channel] = means[i]
				rep.Corrections[i].Replaced++
			}
		}
	}
	return rep, nil
}

// channelMean averages channel ch over a non-empty collection.
func channelMean(vs []patch.Vector, ch int) float64 {
	var sum float64
	for _, v := range vs {
		sum += v[ch]
	}
	return sum / float64(len(vs))
}
