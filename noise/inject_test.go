package noise_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/timbretag/noise"
	"github.com/katalvlaran/timbretag/patch"
)

func category() []patch.Vector {
	return []patch.Vector{
		{0.00, 0.50, 1.00, 0.20, 0.10},
		{0.95, 0.05, 0.30, 0.70, 0.60},
		{0.40, 0.40, 0.40, 0.40, 0.40},
	}
}

// TestExpand_CountAndBound checks k full copies, each value within the
// amplitude of its source.
func TestExpand_CountAndBound(t *testing.T) {
	t.Parallel()

	vs := category()
	before := patch.CloneAll(vs)
	in := noise.NewInjector(noise.NewSource(99))

	const k = 4
	out, err := in.Expand(vs, k)
	require.NoError(t, err)
	require.Len(t, out, k*len(vs))
	assert.Equal(t, before, vs, "sources must not be mutated")

	for i, v := range out {
		src := vs[i%len(vs)]
		require.Len(t, v, len(src))
		for ch := range v {
			assert.LessOrEqual(t, math.Abs(v[ch]-src[ch]), noise.DefaultAmplitude+1e-12,
				"copy %d channel %d", i, ch)
		}
	}
}

// TestExpand_Unclamped shows that out-of-range values are kept: a channel at
// exactly 0 must dip below zero at least once over many draws.
func TestExpand_Unclamped(t *testing.T) {
	t.Parallel()

	in := noise.NewInjector(noise.NewSource(3))
	out, err := in.Expand([]patch.Vector{{0, 1, 0.5}}, 200)
	require.NoError(t, err)

	var below, above bool
	for _, v := range out {
		below = below || v[0] < 0
		above = above || v[1] > 1
	}
	assert.True(t, below, "no value fell below 0")
	assert.True(t, above, "no value rose above 1")
}

// TestExpand_SeedDeterminism: same seed ⇒ identical output.
func TestExpand_SeedDeterminism(t *testing.T) {
	t.Parallel()

	a, err := noise.NewInjector(noise.NewSource(11)).Expand(category(), 3)
	require.NoError(t, err)
	b, err := noise.NewInjector(noise.NewSource(11)).Expand(category(), 3)
	require.NoError(t, err)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("same seed produced different output (-first +second):\n%s", diff)
	}

	c, err := noise.NewInjector(noise.NewSource(12)).Expand(category(), 3)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestExpand_EmptyAndInvalid(t *testing.T) {
	t.Parallel()

	in := noise.NewInjector(nil)
	out, err := in.Expand(nil, 3)
	require.NoError(t, err)
	assert.Empty(t, out)

	_, err = in.Expand(category(), 0)
	assert.ErrorIs(t, err, patch.ErrInvalidConfiguration)
}

func TestWithAmplitude(t *testing.T) {
	t.Parallel()

	in := noise.NewInjector(noise.NewSource(5), noise.WithAmplitude(0))
	out := in.Perturb(category())
	assert.Equal(t, category(), out, "zero amplitude is the identity")
	assert.Zero(t, in.Amplitude())

	assert.Panics(t, func() { noise.WithAmplitude(-0.1) })
	assert.Panics(t, func() { noise.WithAmplitude(math.NaN()) })
}

func TestNewSource_ZeroSeedPolicy(t *testing.T) {
	t.Parallel()

	assert.Equal(t, noise.NewSource(1).Float64(), noise.NewSource(0).Float64())
}
