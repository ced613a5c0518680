package fetch_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/timbretag/fetch"
	"github.com/katalvlaran/timbretag/patch"
)

func TestParsePatch_Tags(t *testing.T) {
	t.Parallel()

	doc := `<MM2Patch>
  <metadata name=" Organ " timbres="Dark; bright | Dark / Warm" types="long release, Pluck, Bright"/>
  <parameter_data><param id="FilterFrequency" value=" 0.25 "/></parameter_data>
</MM2Patch>`
	p, err := fetch.ParsePatch(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, "Organ", p.Name)
	assert.Equal(t, []patch.Category{patch.Bright, patch.Dark}, p.Spectral, "category order, duplicates dropped")
	assert.Equal(t, []patch.Category{patch.Pluck, patch.LongRelease}, p.Temporal, "spectral labels in types are ignored")
	assert.Equal(t, []patch.Category{patch.Bright, patch.Dark, patch.Pluck, patch.LongRelease}, p.Categories())
	assert.True(t, p.Tagged())

	v, ok := p.Value(patch.FilterFrequency)
	assert.True(t, ok)
	assert.Equal(t, 0.25, v)
}

func TestParsePatch_TagsInFreeText(t *testing.T) {
	t.Parallel()

	cases := []struct {
		timbres, types string
		spectral       []patch.Category
		temporal       []patch.Category
	}{
		{"Bright Resonant Lead", "Pluck Bass", []patch.Category{patch.Bright, patch.Resonant}, []patch.Category{patch.Pluck}},
		{"SoftPad", "Long-Release Swelling", []patch.Category{patch.Soft}, []patch.Category{patch.LongRelease, patch.Swell}},
		{"darkish", "SHORT stab", []patch.Category{patch.Dark}, []patch.Category{patch.Short}},
		{"Warm", "Texture", nil, nil},
	}
	for _, tc := range cases {
		doc := `<patch><metadata name="T" timbres="` + tc.timbres + `" types="` + tc.types + `"/></patch>`
		p, err := fetch.ParsePatch(strings.NewReader(doc))
		require.NoError(t, err)
		assert.Equal(t, tc.spectral, p.Spectral, tc.timbres)
		assert.Equal(t, tc.temporal, p.Temporal, tc.types)
	}
}

func TestParsePatch_OscillatorIDs(t *testing.T) {
	t.Parallel()

	doc := `<patch><metadata name="Legacy" timbres="Bright"/><parameter_data>` +
		`<param id="FilterFrequency" value="0.5"/><param id="FilterEmphasis" value="0.4"/>` +
		`<param id="FilterContour" value="0.3"/><param id="Osc2Detune" value="0.2"/>` +
		`<param id="Osc3Detune" value="0.1"/></parameter_data></patch>`
	p, err := fetch.ParsePatch(strings.NewReader(doc))
	require.NoError(t, err)

	v, err := p.Vector(patch.Spectral)
	require.NoError(t, err)
	assert.Equal(t, patch.Vector{0.5, 0.4, 0.3, 0.2, 0.1}, v)
}

func TestParsePatch_MacroIgnoresUnknownTargets(t *testing.T) {
	t.Parallel()

	doc := `<patch>
  <metadata name="M" timbres="" types=""/>
  <parameter_data><param id="OscDetune" value="0.5"/></parameter_data>
  <macro_data>
    <m1 amount="0.25"><t id="OscDetune"/><t id="Nowhere"/></m1>
    <m2><t id="OscDetune"/></m2>
  </macro_data>
</patch>`
	p, err := fetch.ParsePatch(strings.NewReader(doc))
	require.NoError(t, err)
	assert.False(t, p.Tagged())

	v, _ := p.Value(patch.OscDetune)
	assert.Equal(t, 0.75, v)
	_, ok := p.Value("Nowhere")
	assert.False(t, ok)
}

func TestParsePatch_BadAmount(t *testing.T) {
	t.Parallel()

	doc := `<patch><parameter_data><param id="A" value="0.1"/></parameter_data>` +
		`<macro_data><macro amount="lots"><t id="A"/></macro></macro_data></patch>`
	_, err := fetch.ParsePatch(strings.NewReader(doc))
	assert.ErrorIs(t, err, fetch.ErrMalformedPatch)
}
