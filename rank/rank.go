// SPDX-License-Identifier: MIT

// Package rank computes patch magnitudes and orders a category by them.
//
// Magnitude is the Euclidean norm of every channel except the last two:
//
//	magnitude(v) = sqrt( Σ v[i]²,  i ∈ [0, len(v)-2) )
//
// The last two channels (release-style parameters in both domains) never
// contribute to similarity ranking. Magnitude is recomputed on demand and
// never stored on the vector.
//
// Ranking performs ONE stable sort over an index permutation and derives
// both the reordered vectors and their magnitudes from that single order,
// so the two sequences cannot drift apart. Equal magnitudes keep their
// insertion order.
package rank

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/timbretag/patch"
)

// MinChannels is the smallest vector width for which magnitude is defined.
const MinChannels = 3

// excludedTail is the number of trailing channels left out of the norm.
const excludedTail = 2

// Ranking is a category ordered by descending magnitude.
// Vectors[i] and Magnitudes[i] always describe the same patch.
type Ranking struct {
	Vectors    []patch.Vector
	Magnitudes []float64
}

// Len returns the number of ranked vectors.
func (r Ranking) Len() int { return len(r.Vectors) }

// Magnitude returns the norm of v without its last two channels.
// Vectors narrower than MinChannels yield 0; Rank rejects them up front.
func Magnitude(v patch.Vector) float64 {
	var sum float64
	for i := 0; i < len(v)-excludedTail; i++ {
		sum += v[i] * v[i]
	}
	return math.Sqrt(sum)
}

// Magnitudes returns the magnitude of each vector, in input order.
func Magnitudes(vs []patch.Vector) []float64 {
	out := make([]float64, len(vs))
	for i, v := range vs {
		out[i] = Magnitude(v)
	}
	return out
}

// MeanMagnitude returns the average magnitude of vs, 0 for an empty set.
func MeanMagnitude(vs []patch.Vector) float64 {
	if len(vs) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vs {
		sum += Magnitude(v)
	}
	return sum / float64(len(vs))
}

// Rank orders vs by descending magnitude.
//
// Implementation:
//   - Stage 1: validate uniform width ≥ MinChannels.
//   - Stage 2: compute each magnitude once, keyed by input position.
//   - Stage 3: stable-sort the position permutation (ties keep input order).
//   - Stage 4: gather vectors and magnitudes through the same permutation.
//
// The input slice is not reordered; the returned Ranking shares the
// underlying vectors (no deep copy). An empty input yields an empty Ranking.
//
// Errors:
//   - patch.ErrChannelMismatch : vectors of different widths.
//   - patch.ErrInsufficientData: width below MinChannels.
//
// Complexity: O(n log n) time, O(n) extra space.
func Rank(vs []patch.Vector) (Ranking, error) {
	w, err := patch.UniformWidth(vs)
	if err != nil {
		return Ranking{}, fmt.Errorf("rank: %w", err)
	}
	if len(vs) > 0 && w < MinChannels {
		return Ranking{}, fmt.Errorf("rank: %w: vectors have %d channels, magnitude needs %d",
			patch.ErrInsufficientData, w, MinChannels)
	}

	mags := Magnitudes(vs)
	order := make([]int, len(vs))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return mags[order[a]] > mags[order[b]]
	})

	r := Ranking{
		Vectors:    make([]patch.Vector, len(vs)),
		Magnitudes: make([]float64, len(vs)),
	}
	for pos, src := range order {
		r.Vectors[pos] = vs[src]
		r.Magnitudes[pos] = mags[src]
	}
	return r, nil
}
