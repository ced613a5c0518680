package patch_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/timbretag/patch"
)

// TestCategoriesOf_Partition verifies that the two domains split the eight
// labels into two ordered groups of four.
func TestCategoriesOf_Partition(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []patch.Category{patch.Bright, patch.Dark, patch.Resonant, patch.Soft},
		patch.CategoriesOf(patch.Spectral))
	assert.Equal(t, []patch.Category{patch.Pluck, patch.LongRelease, patch.Swell, patch.Short},
		patch.CategoriesOf(patch.Temporal))

	for _, c := range patch.Categories() {
		assert.Contains(t, patch.CategoriesOf(c.Domain()), c, "category %s must belong to its own domain", c)
	}
	assert.Equal(t, 3, patch.Short.Index())
	assert.Equal(t, 0, patch.Pluck.Index())
}

// TestParseCategory_Normalisation checks the label spellings used by patch
// libraries and config files.
func TestParseCategory_Normalisation(t *testing.T) {
	t.Parallel()

	cases := map[string]patch.Category{
		"Bright":       patch.Bright,
		"bright":       patch.Bright,
		"Long Release": patch.LongRelease,
		"long_release": patch.LongRelease,
		"LongRelease":  patch.LongRelease,
		" short ":      patch.Short,
	}
	for in, want := range cases {
		got, err := patch.ParseCategory(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := patch.ParseCategory("Warm")
	assert.ErrorIs(t, err, patch.ErrUnknownCategory)
}

func TestCategory_TextRoundTrip(t *testing.T) {
	t.Parallel()

	b, err := patch.Swell.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "Swell", string(b))

	var c patch.Category
	require.NoError(t, c.UnmarshalText([]byte("long release")))
	assert.Equal(t, patch.LongRelease, c)

	_, err = patch.Category(42).MarshalText()
	assert.ErrorIs(t, err, patch.ErrUnknownCategory)
}

func TestChannelIndex(t *testing.T) {
	t.Parallel()

	idx, err := patch.ChannelIndex(patch.Temporal, patch.VcaSustain)
	require.NoError(t, err)
	assert.Equal(t, 6, idx)

	idx, err = patch.ChannelIndex(patch.Spectral, patch.FilterContour)
	require.NoError(t, err)
	assert.Equal(t, 2, idx)

	_, err = patch.ChannelIndex(patch.Spectral, patch.VcaAttack)
	assert.ErrorIs(t, err, patch.ErrChannelMismatch)

	assert.Equal(t, 5, patch.Width(patch.Spectral))
	assert.Equal(t, 9, patch.Width(patch.Temporal))
	assert.Equal(t, patch.VcaRelease, patch.ChannelName(patch.Temporal, 7))
	assert.Empty(t, patch.ChannelName(patch.Temporal, 9))
}

// TestStore_AppendRejectsWidthMismatch ensures a failed append leaves the
// category untouched.
func TestStore_AppendRejectsWidthMismatch(t *testing.T) {
	t.Parallel()

	s := patch.NewStore()
	require.NoError(t, s.Append(patch.Dark, patch.Vector{0.1, 0.2, 0.3}))

	err := s.Append(patch.Dark, patch.Vector{0.1, 0.2, 0.3}, patch.Vector{0.1, 0.2})
	assert.ErrorIs(t, err, patch.ErrChannelMismatch)
	assert.Equal(t, 1, s.Len(patch.Dark), "nothing may be appended on error")

	err = s.Append(patch.Category(-1), patch.Vector{1})
	assert.ErrorIs(t, err, patch.ErrUnknownCategory)
}

func TestStore_ValidateAndClone(t *testing.T) {
	t.Parallel()

	s := patch.NewStore()
	require.NoError(t, s.Set(patch.Pluck, []patch.Vector{{0.1, 0.2, 0.3}, {0.4, 0.5, 0.6}}))
	require.NoError(t, s.Validate())

	c := s.Clone()
	c.Vectors(patch.Pluck)[0][0] = 0.9
	assert.Equal(t, 0.1, s.Vectors(patch.Pluck)[0][0], "clone must not alias the original")
	assert.Equal(t, 2, s.Total(patch.Temporal))
	assert.Equal(t, 0, s.Total(patch.Spectral))

	// Bypass Append's guard through the live slice to simulate an ingestion defect.
	vs := s.Vectors(patch.Pluck)
	vs[1] = patch.Vector{0.4}
	assert.ErrorIs(t, s.Validate(), patch.ErrChannelMismatch)

	assert.ErrorIs(t, s.Set(patch.Soft, []patch.Vector{{1, 2}, {1}}), patch.ErrChannelMismatch)
}

func TestColumnAndUniformWidth(t *testing.T) {
	t.Parallel()

	vs := []patch.Vector{{1, 2, 3}, {4, 5, 6}}
	assert.Equal(t, []float64{2, 5}, patch.Column(vs, 1))

	w, err := patch.UniformWidth(vs)
	require.NoError(t, err)
	assert.Equal(t, 3, w)

	w, err = patch.UniformWidth(nil)
	require.NoError(t, err)
	assert.Zero(t, w)
}
