package fetch_test

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/timbretag/fetch"
	"github.com/katalvlaran/timbretag/outlier"
	"github.com/katalvlaran/timbretag/patch"
)

const libDir = "/library"

// patchXML renders a patch whose parameters all equal base unless listed in
// over. The "drop" id is left out entirely.
func patchXML(name, timbres, types string, base float64, over map[string]float64, macros string, drop string) string {
	ids := append(patch.Channels(patch.Spectral), patch.Channels(patch.Temporal)...)
	ids = append(ids, fetch.EnvType)

	var b strings.Builder
	fmt.Fprintf(&b, "<patch>\n  <metadata name=%q timbres=%q types=%q/>\n  <parameter_data>\n", name, timbres, types)
	seen := map[string]bool{}
	for _, id := range ids {
		if seen[id] || id == drop {
			continue
		}
		seen[id] = true
		v := base
		if x, ok := over[id]; ok {
			v = x
		}
		fmt.Fprintf(&b, "    <param id=%q value=\"%g\"/>\n", id, v)
	}
	fmt.Fprintf(&b, "  </parameter_data>\n  <macro_data>%s</macro_data>\n</patch>\n", macros)
	return b.String()
}

func write(t *testing.T, fs afero.Fs, name, body string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, filepath.Join(libDir, name), []byte(body), 0o644))
}

func TestLoad_Library(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(libDir, 0o755))
	write(t, fs, "b_bell.xml", patchXML("Bell", "Bright, Resonant", "Pluck", 0.5, map[string]float64{fetch.EnvType: 1}, "", ""))
	write(t, fs, "a_pad.xml", patchXML("Pad", "Soft", "Long Release, Swell", 0.3, map[string]float64{fetch.EnvType: 1}, "", ""))
	write(t, fs, "c_noise.xml", patchXML("Noise", "Gritty", "Texture", 0.2, nil, "", ""))
	write(t, fs, "notes.txt", "not a patch")
	require.NoError(t, fs.MkdirAll(filepath.Join(libDir, "nested"), 0o755))
	write(t, fs, "nested/d_hidden.xml", patchXML("Hidden", "Dark", "", 0.4, nil, "", ""))

	store, sum, err := fetch.NewLoader(fs, libDir).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, sum.Files)
	assert.Equal(t, 2, sum.Tagged)
	assert.Equal(t, []string{"c_noise.xml"}, sum.Untagged)
	assert.Equal(t, map[patch.Category]int{
		patch.Bright: 1, patch.Resonant: 1, patch.Pluck: 1,
		patch.Soft: 1, patch.LongRelease: 1, patch.Swell: 1,
	}, sum.PerCategory)

	assert.Zero(t, store.Len(patch.Dark), "subdirectories are not scanned")
	require.Equal(t, 1, store.Len(patch.Bright))
	assert.Len(t, store.Vectors(patch.Bright)[0], patch.Width(patch.Spectral))
	require.Equal(t, 1, store.Len(patch.Swell))
	assert.Len(t, store.Vectors(patch.Swell)[0], patch.Width(patch.Temporal))
	assert.Equal(t, 3, store.Total(patch.Temporal))
}

func TestLoad_MacroAndEnvType(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	macros := `<macro amount="0.3"><target id="FilterEmphasis"/><target id="FilterFrequency"/></macro>` +
		`<macro amount="0.1"><target id="FilterEmphasis"/></macro>`
	write(t, fs, "p.xml", patchXML("Zap", "Bright", "Short", 0.2,
		map[string]float64{patch.FilterFrequency: 0.9, fetch.EnvType: 0, patch.FilterRelease: 0.7, patch.VcaRelease: 0.8},
		macros, ""))

	store, _, err := fetch.NewLoader(fs, libDir).Load(context.Background())
	require.NoError(t, err)

	spec := store.Vectors(patch.Bright)[0]
	freq, _ := patch.ChannelIndex(patch.Spectral, patch.FilterFrequency)
	emph, _ := patch.ChannelIndex(patch.Spectral, patch.FilterEmphasis)
	assert.Equal(t, 1.0, spec[freq], "capped at 1")
	assert.InDelta(t, 0.6, spec[emph], 1e-12)

	temp := store.Vectors(patch.Short)[0]
	fr, _ := patch.ChannelIndex(patch.Temporal, patch.FilterRelease)
	vr, _ := patch.ChannelIndex(patch.Temporal, patch.VcaRelease)
	assert.Zero(t, temp[fr])
	assert.Zero(t, temp[vr])
	assert.InDelta(t, 0.2, temp[0], 1e-12)
}

func TestLoad_OscillatorIDs(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	body := patchXML("Legacy", "Bright", "", 0.2,
		map[string]float64{patch.OscModMix: 0.3, patch.OscDetune: 0.4}, "", "")
	body = strings.NewReplacer(`id="OscModMix"`, `id="Osc2Detune"`, `id="OscDetune"`, `id="Osc3Detune"`).Replace(body)
	require.NotContains(t, body, `id="OscModMix"`)
	write(t, fs, "legacy.xml", body)

	store, _, err := fetch.NewLoader(fs, libDir).Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, store.Len(patch.Bright))

	v := store.Vectors(patch.Bright)[0]
	mix, _ := patch.ChannelIndex(patch.Spectral, patch.OscModMix)
	det, _ := patch.ChannelIndex(patch.Spectral, patch.OscDetune)
	assert.InDelta(t, 0.3, v[mix], 1e-12)
	assert.InDelta(t, 0.4, v[det], 1e-12)
}

func TestLoad_EnvTypeSparesLongRelease(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	write(t, fs, "p.xml", patchXML("Drone", "", "Long Release, Short", 0.2,
		map[string]float64{fetch.EnvType: 0, patch.FilterRelease: 0.9, patch.VcaRelease: 0.9}, "", ""))

	store, _, err := fetch.NewLoader(fs, libDir).Load(context.Background())
	require.NoError(t, err)

	fr, _ := patch.ChannelIndex(patch.Temporal, patch.FilterRelease)
	vr, _ := patch.ChannelIndex(patch.Temporal, patch.VcaRelease)

	long := store.Vectors(patch.LongRelease)[0]
	assert.Equal(t, 0.9, long[fr])
	assert.Equal(t, 0.9, long[vr])

	short := store.Vectors(patch.Short)[0]
	assert.Zero(t, short[fr])
	assert.Zero(t, short[vr])

	rep, err := outlier.Correct(store.Vectors(patch.LongRelease), outlier.DefaultTable().Rules(patch.LongRelease))
	require.NoError(t, err)
	assert.Zero(t, rep.Replaced(), "releases above the LongRelease thresholds stay")
	assert.Equal(t, 0.9, store.Vectors(patch.LongRelease)[0][fr])
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	_, _, err := fetch.NewLoader(afero.NewMemMapFs(), "/nowhere").Load(context.Background())
	assert.ErrorIs(t, err, fetch.ErrNoLibrary)

	fs := afero.NewMemMapFs()
	write(t, fs, "broken.xml", "<patch><metadata")
	_, _, err = fetch.NewLoader(fs, libDir).Load(context.Background())
	assert.ErrorIs(t, err, fetch.ErrMalformedPatch)
	assert.Contains(t, err.Error(), "broken.xml")

	fs = afero.NewMemMapFs()
	write(t, fs, "nan.xml", strings.Replace(
		patchXML("X", "Dark", "", 0.5, nil, "", ""), `value="0.5"`, `value="loud"`, 1))
	_, _, err = fetch.NewLoader(fs, libDir).Load(context.Background())
	assert.ErrorIs(t, err, fetch.ErrMalformedPatch)

	fs = afero.NewMemMapFs()
	write(t, fs, "short.xml", patchXML("X", "Dark", "", 0.5, nil, "", patch.FilterContour))
	_, _, err = fetch.NewLoader(fs, libDir).Load(context.Background())
	assert.ErrorIs(t, err, fetch.ErrMissingParameter)

	fs = afero.NewMemMapFs()
	write(t, fs, "noenv.xml", patchXML("X", "", "Pluck", 0.5, nil, "", fetch.EnvType))
	_, _, err = fetch.NewLoader(fs, libDir).Load(context.Background())
	assert.ErrorIs(t, err, fetch.ErrMissingParameter)
}

func TestLoad_Cancelled(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	write(t, fs, "a.xml", patchXML("A", "Dark", "", 0.5, nil, "", ""))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := fetch.NewLoader(fs, libDir).Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFiles_SortedAndFiltered(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	for _, n := range []string{"z.xml", "a.XML", "m.xml", "readme.md"} {
		write(t, fs, n, "<patch/>")
	}
	files, err := fetch.NewLoader(fs, libDir).Files()
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(libDir, "a.XML"),
		filepath.Join(libDir, "m.xml"),
		filepath.Join(libDir, "z.xml"),
	}, files)
}
