package patch

import "fmt"

// Vector is one patch: a value per channel, identified only by position.
type Vector []float64

// Clone returns an independent copy of v.
func (v Vector) Clone() Vector {
	if v == nil {
		return nil
	}
	out := make(Vector, len(v))
	copy(out, v)
	return out
}

// CloneAll deep-copies a vector collection.
func CloneAll(vs []Vector) []Vector {
	if vs == nil {
		return nil
	}
	out := make([]Vector, len(vs))
	for i, v := range vs {
		out[i] = v.Clone()
	}
	return out
}

// UniformWidth returns the common channel count of vs, or ErrChannelMismatch
// naming the first offending vector. An empty collection has width 0.
func UniformWidth(vs []Vector) (int, error) {
	if len(vs) == 0 {
		return 0, nil
	}
	w := len(vs[0])
	for i := 1; i < len(vs); i++ {
		if len(vs[i]) != w {
			return 0, fmt.Errorf("%w: vector %d has %d channels, want %d",
				ErrChannelMismatch, i, len(vs[i]), w)
		}
	}
	return w, nil
}

// Column extracts channel ch of every vector, preserving order.
// The caller guarantees ch is within the width of every vector.
func Column(vs []Vector, ch int) []float64 {
	out := make([]float64, len(vs))
	for i, v := range vs {
		out[i] = v[ch]
	}
	return out
}
