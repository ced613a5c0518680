// Package interp implements Interpolative Expansion: new patches are
// synthesised along the magnitude axis between every pair of
// magnitude-adjacent patches of a category.
//
// Algorithm Outline:
//  1. Split the ranked vectors into one scalar sequence per selected
//     channel, keeping the descending-magnitude order.
//  2. For each channel and each adjacent pair (i, i+1), i ∈ [0, n-2]:
//     x_k = m[i] + (m[i+1]-m[i]) · k/(s-1),  k ∈ [0, s-1]
//     y_k = straight line through (m[i], c[i]) and (m[i+1], c[i+1]) at x_k
//     y_k clamped to [min c, max c] over the WHOLE category.
//  3. Reassemble the channel sequences into vectors, one per (pair, k),
//     pair-major, channel order preserved.
//
// Output length is (n-1)·s for n input vectors and scale factor s.
//
// Edge cases:
//   - n < 2                  → patch.ErrInsufficientData (no anchor pair).
//   - s == 1                 → each pair yields its leading anchor.
//   - m[i] == m[i+1]         → the line is parametrised by k/(s-1) instead
//     of the (zero-width) magnitude span.
//   - unselected channels    → copied from the pair's leading anchor so the
//     output keeps the category width.
//
// Two domain variants exist (NewSpectral, NewTemporal). They share one
// implementation and differ only in their default channel selection.
package interp
