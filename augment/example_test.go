package augment_test

import (
	"fmt"

	"github.com/katalvlaran/timbretag/augment"
	"github.com/katalvlaran/timbretag/patch"
)

// ExampleEngine_Run multiplies a single populated category with noise.
func ExampleEngine_Run() {
	store := patch.NewStore()
	if err := store.Append(patch.Bright,
		patch.Vector{0.8, 0.2, 0.1, 0.1},
		patch.Vector{0.1, 0.1, 0.1, 0.1},
	); err != nil {
		panic(err)
	}

	rep, err := augment.New(
		augment.WithMode(augment.InjectNoise),
		augment.WithSeed(42),
	).Run(store)
	if err != nil {
		panic(err)
	}
	for _, cr := range rep.Categories {
		if cr.Before == 0 {
			continue
		}
		fmt.Printf("%s: %d -> %d (%d corrected)\n", cr.Category, cr.Before, cr.After, cr.Corrections.Replaced())
	}
	fmt.Printf("%.2f\n", store.Vectors(patch.Bright)[1][0])
	// Output:
	// Bright: 2 -> 8 (1 corrected)
	// 0.45
}
