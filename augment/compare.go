package augment

import (
	"github.com/katalvlaran/timbretag/patch"
	"github.com/katalvlaran/timbretag/rank"
)

// Comparison holds the mean magnitude of a category before and after
// augmentation. It is observational only.
type Comparison struct {
	Original       float64
	Augmented      float64 // originals and generated vectors together
	Generated      float64 // generated vectors only
	OriginalCount  int
	AugmentedCount int
	GeneratedCount int
}

// Delta returns Augmented - Original.
func (c Comparison) Delta() float64 { return c.Augmented - c.Original }

// GeneratedDelta returns Generated - Original. It is 0 when nothing was
// generated.
func (c Comparison) GeneratedDelta() float64 {
	if c.GeneratedCount == 0 {
		return 0
	}
	return c.Generated - c.Original
}

// Compare computes the mean magnitude of both full collections; an empty
// collection reports 0. augmented is never truncated to len(original).
// Vectors of augmented past len(original) count as generated, since the
// engine only ever appends.
func Compare(original, augmented []patch.Vector) Comparison {
	var generated []patch.Vector
	if len(augmented) > len(original) {
		generated = augmented[len(original):]
	}
	return Comparison{
		Original:       rank.MeanMagnitude(original),
		Augmented:      rank.MeanMagnitude(augmented),
		Generated:      rank.MeanMagnitude(generated),
		OriginalCount:  len(original),
		AugmentedCount: len(augmented),
		GeneratedCount: len(generated),
	}
}
