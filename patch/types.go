package patch

import (
	"fmt"
	"strings"
)

// Domain is one of the two parallel parameter spaces.
type Domain int

const (
	// Spectral covers the filter/oscillator timbre parameters.
	Spectral Domain = iota

	// Temporal covers the filter and VCA envelope parameters.
	Temporal
)

// Domains lists every domain in pipeline order.
var Domains = []Domain{Spectral, Temporal}

// String returns the lower-case domain name.
func (d Domain) String() string {
	switch d {
	case Spectral:
		return "spectral"
	case Temporal:
		return "temporal"
	default:
		return fmt.Sprintf("domain(%d)", int(d))
	}
}

// ParseDomain resolves a domain name (case-insensitive).
func ParseDomain(s string) (Domain, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "spectral":
		return Spectral, nil
	case "temporal":
		return Temporal, nil
	}
	return 0, fmt.Errorf("%w: domain %q", ErrUnknownCategory, s)
}

// Category is a semantic label partitioning the vectors of a domain.
// Values are ordered: the four spectral labels first, then the four
// temporal ones; that order is the iteration order of the pipeline and the
// one-hot label order of the formatter.
type Category int

const (
	Bright Category = iota
	Dark
	Resonant
	Soft
	Pluck
	LongRelease
	Swell
	Short

	numCategories = int(Short) + 1
)

// categoriesPerDomain is fixed: four labels in each domain.
const categoriesPerDomain = 4

var categoryNames = [numCategories]string{
	Bright:      "Bright",
	Dark:        "Dark",
	Resonant:    "Resonant",
	Soft:        "Soft",
	Pluck:       "Pluck",
	LongRelease: "LongRelease",
	Swell:       "Swell",
	Short:       "Short",
}

// Categories lists all eight categories in pipeline order.
func Categories() []Category {
	out := make([]Category, numCategories)
	for i := range out {
		out[i] = Category(i)
	}
	return out
}

// CategoriesOf lists the four categories of d in pipeline order.
func CategoriesOf(d Domain) []Category {
	first := Category(int(d) * categoriesPerDomain)
	return []Category{first, first + 1, first + 2, first + 3}
}

// Valid reports whether c is one of the eight fixed labels.
func (c Category) Valid() bool { return c >= 0 && int(c) < numCategories }

// Domain returns the domain c belongs to.
func (c Category) Domain() Domain {
	if c >= Pluck {
		return Temporal
	}
	return Spectral
}

// Index returns the position of c within its own domain (0..3).
func (c Category) Index() int { return int(c) % categoriesPerDomain }

// String returns the canonical label.
func (c Category) String() string {
	if !c.Valid() {
		return fmt.Sprintf("category(%d)", int(c))
	}
	return categoryNames[c]
}

// MarshalText implements encoding.TextMarshaler so categories can key YAML maps.
func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCategory, int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(b []byte) error {
	parsed, err := ParseCategory(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCategory resolves a label. Matching ignores case, spaces, dashes and
// underscores, so "Long Release", "long_release" and "LongRelease" agree.
func ParseCategory(s string) (Category, error) {
	key := NormalizeLabel(s)
	for i, name := range categoryNames {
		if NormalizeLabel(name) == key {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// NormalizeLabel lowercases s and drops spaces, dashes and underscores.
func NormalizeLabel(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(s)))
}
