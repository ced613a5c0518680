// Package outlier repairs statistically extreme channel values inside a
// category using per-category threshold rules.
//
// For every rule governing a category, the corrector first computes the
// arithmetic mean of the governed channel over the whole category, then
// replaces each value that fails the rule's test with that mean:
//
//	AtMost  rule: value ≤ threshold ⇒ value = mean
//	AtLeast rule: value ≥ threshold ⇒ value = mean
//
// All means are taken before any replacement, so a single pass is final
// and rules on different channels never see each other's output.
//
// The default Table reproduces the thresholds the patch library was
// curated with; tests and configuration can substitute their own Table.
package outlier
