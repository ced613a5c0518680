package patch

import "fmt"

// Store is the Category Store: domain → category → ordered vectors.
//
// All eight categories always exist (possibly empty) and are never removed.
// Vectors handed to Append are owned by the store afterwards; Vectors
// returns the live slice, so callers that mutate it in place (outlier
// correction) affect the store, which is the intended ownership model.
type Store struct {
	categories [numCategories][]Vector
}

// NewStore returns a store with eight empty categories.
func NewStore() *Store {
	return &Store{}
}

// Vectors returns the live vector slice of c (nil for an unknown category).
func (s *Store) Vectors(c Category) []Vector {
	if !c.Valid() {
		return nil
	}
	return s.categories[c]
}

// Len returns the number of vectors in c.
func (s *Store) Len(c Category) int {
	return len(s.Vectors(c))
}

// Total returns the number of vectors held by every category of d.
func (s *Store) Total(d Domain) int {
	n := 0
	for _, c := range CategoriesOf(d) {
		n += len(s.categories[c])
	}
	return n
}

// Append adds vs to the end of c. Vectors whose width differs from the
// category's current width are rejected and nothing is appended.
func (s *Store) Append(c Category, vs ...Vector) error {
	if !c.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownCategory, int(c))
	}
	if len(vs) == 0 {
		return nil
	}
	want := len(vs[0])
	if cur := s.categories[c]; len(cur) > 0 {
		want = len(cur[0])
	}
	for i, v := range vs {
		if len(v) != want {
			return fmt.Errorf("%w: %s: appended vector %d has %d channels, want %d",
				ErrChannelMismatch, c, i, len(v), want)
		}
	}
	s.categories[c] = append(s.categories[c], vs...)
	return nil
}

// Set replaces the contents of c.
func (s *Store) Set(c Category, vs []Vector) error {
	if !c.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownCategory, int(c))
	}
	if _, err := UniformWidth(vs); err != nil {
		return fmt.Errorf("%s: %w", c, err)
	}
	s.categories[c] = vs
	return nil
}

// Clone deep-copies the store.
func (s *Store) Clone() *Store {
	out := NewStore()
	for i := range s.categories {
		out.categories[i] = CloneAll(s.categories[i])
	}
	return out
}

// Validate checks that every category has a uniform width. Widths are not
// compared with the domain schema here: ingestion guarantees schema width,
// and the core only depends on consistency within a category.
func (s *Store) Validate() error {
	for _, c := range Categories() {
		if _, err := UniformWidth(s.categories[c]); err != nil {
			return fmt.Errorf("%s: %w", c, err)
		}
	}
	return nil
}
