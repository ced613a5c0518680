package fetch

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/timbretag/patch"
)

// EnvType is the temporal-only parameter that gates the release channels.
const EnvType = "EnvType"

// maxValue caps a parameter after macro amounts are added.
const maxValue = 1.0

// Patch is one parsed library file.
type Patch struct {
	Name     string
	Spectral []patch.Category // categories named by "timbres"
	Temporal []patch.Category // categories named by "types"

	values map[string]float64 // by parameter id, macros applied
}

// Tagged reports whether the patch belongs to at least one category.
func (p Patch) Tagged() bool { return len(p.Spectral)+len(p.Temporal) > 0 }

// Categories returns every category the patch is tagged with, spectral first.
func (p Patch) Categories() []patch.Category {
	out := make([]patch.Category, 0, len(p.Spectral)+len(p.Temporal))
	out = append(out, p.Spectral...)
	return append(out, p.Temporal...)
}

// Value returns a parameter with macros applied.
func (p Patch) Value(id string) (float64, bool) {
	v, ok := p.values[id]
	return v, ok
}

// paramIDs lists the XML ids accepted for a channel, first match wins.
// Library files name the oscillator channels Osc2Detune and Osc3Detune.
var paramIDs = map[string][]string{
	patch.OscModMix: {"Osc2Detune", patch.OscModMix},
	patch.OscDetune: {"Osc3Detune", patch.OscDetune},
}

// releaseGated lists the categories whose release channels follow EnvType.
// LongRelease is judged on its releases and keeps them.
var releaseGated = map[patch.Category]bool{
	patch.Pluck: true,
	patch.Swell: true,
	patch.Short: true,
}

// channel returns the value of a schema channel under any of its ids.
func (p Patch) channel(name string) (float64, bool) {
	ids, ok := paramIDs[name]
	if !ok {
		ids = []string{name}
	}
	for _, id := range ids {
		if v, ok := p.values[id]; ok {
			return v, true
		}
	}
	return 0, false
}

// Vector builds the raw vector of domain d in schema order. Temporal
// patches must carry EnvType even though it is not stored.
func (p Patch) Vector(d patch.Domain) (patch.Vector, error) {
	names := patch.Channels(d)
	v := make(patch.Vector, len(names))
	for i, n := range names {
		x, ok := p.channel(n)
		if !ok {
			return nil, fmt.Errorf("%w: %q (%s)", ErrMissingParameter, n, d)
		}
		v[i] = x
	}
	if d == patch.Temporal {
		if _, ok := p.values[EnvType]; !ok {
			return nil, fmt.Errorf("%w: %q (%s)", ErrMissingParameter, EnvType, d)
		}
	}
	return v, nil
}

// VectorFor builds the vector stored under c. In Pluck, Swell and Short an
// EnvType of 0 zeroes FilterRelease and VcaRelease.
func (p Patch) VectorFor(c patch.Category) (patch.Vector, error) {
	v, err := p.Vector(c.Domain())
	if err != nil {
		return nil, err
	}
	if !releaseGated[c] || p.values[EnvType] != 0 {
		return v, nil
	}
	for _, n := range []string{patch.FilterRelease, patch.VcaRelease} {
		idx, err := patch.ChannelIndex(patch.Temporal, n)
		if err != nil {
			return nil, err
		}
		v[idx] = 0
	}
	return v, nil
}

// ---------- XML document ----------

type xmlDoc struct {
	Metadata xmlMetadata `xml:"metadata"`
	Params   xmlParams   `xml:"parameter_data"`
	Macros   xmlMacros   `xml:"macro_data"`
}

type xmlMetadata struct {
	Name    string `xml:"name,attr"`
	Timbres string `xml:"timbres,attr"`
	Types   string `xml:"types,attr"`
}

type xmlParams struct {
	Items []xmlParam `xml:",any"`
}

type xmlParam struct {
	ID    string `xml:"id,attr"`
	Value string `xml:"value,attr"`
}

type xmlMacros struct {
	Items []xmlMacro `xml:",any"`
}

type xmlMacro struct {
	Amount  string      `xml:"amount,attr"`
	Targets []xmlTarget `xml:",any"`
}

type xmlTarget struct {
	ID string `xml:"id,attr"`
}

// ParsePatch decodes one patch document.
//
// Errors:
//   - ErrMalformedPatch: invalid XML, or a value/amount that is not a number.
func ParsePatch(r io.Reader) (Patch, error) {
	var doc xmlDoc
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return Patch{}, fmt.Errorf("%w: %v", ErrMalformedPatch, err)
	}

	p := Patch{
		Name:     strings.TrimSpace(doc.Metadata.Name),
		Spectral: tagsOf(doc.Metadata.Timbres, patch.Spectral),
		Temporal: tagsOf(doc.Metadata.Types, patch.Temporal),
		values:   make(map[string]float64, len(doc.Params.Items)),
	}

	for _, it := range doc.Params.Items {
		if it.ID == "" {
			continue
		}
		v, err := parseNumber(it.Value)
		if err != nil {
			return Patch{}, fmt.Errorf("%w: param %q: %v", ErrMalformedPatch, it.ID, err)
		}
		p.values[it.ID] = v
	}

	for _, m := range doc.Macros.Items {
		amount := 0.0
		if strings.TrimSpace(m.Amount) != "" {
			a, err := parseNumber(m.Amount)
			if err != nil {
				return Patch{}, fmt.Errorf("%w: macro amount: %v", ErrMalformedPatch, err)
			}
			amount = a
		}
		for _, t := range m.Targets {
			cur, ok := p.values[t.ID]
			if !ok {
				continue
			}
			p.values[t.ID] = min(cur+amount, maxValue)
		}
	}
	return p, nil
}

func parseNumber(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

// tagsOf returns the categories of d whose label occurs anywhere in the
// free-text attribute, in category order. Matching ignores case, spaces,
// hyphens and underscores, so "Pluck Bass" tags Pluck and "long-release"
// tags LongRelease.
func tagsOf(attr string, d patch.Domain) []patch.Category {
	text := patch.NormalizeLabel(attr)
	if text == "" {
		return nil
	}
	var out []patch.Category
	for _, c := range patch.CategoriesOf(d) {
		if strings.Contains(text, patch.NormalizeLabel(c.String())) {
			out = append(out, c)
		}
	}
	return out
}
