// Package patch holds the data model shared by every timbretag package:
// parameter vectors, the two parameter domains, their eight semantic
// categories, the per-domain channel schema and the Category Store.
//
// 🚀 What is a patch?
//
//	A patch is one synthesizer preset reduced to a fixed-width vector of
//	normalised parameter values in [0,1]. A value carries no name of its
//	own; its position in the vector is its identity, and the position →
//	name mapping is fixed per domain (see Channels).
//
// ✨ Domains and categories:
//
//	Spectral: Bright, Dark, Resonant, Soft
//	           channels: FilterFrequency, FilterEmphasis, FilterContour,
//	                     OscModMix, OscDetune
//	Temporal: Pluck, LongRelease, Swell, Short
//	           channels: FilterAttack, FilterDecay, FilterSustain,
//	                     FilterRelease, VcaAttack, VcaDecay, VcaSustain,
//	                     VcaRelease, FilterContour
//
// ⚙️ Usage:
//
//	store := patch.NewStore()
//	_ = store.Append(patch.Bright, patch.Vector{0.8, 0.2, 0.1, 0.1, 0.0})
//	if err := store.Validate(); err != nil {
//	  // errors.Is(err, patch.ErrChannelMismatch)
//	}
//
// The Store is a single mutable aggregate. It is not safe for concurrent
// use; the augmentation pipeline owns it for the duration of a run.
package patch
