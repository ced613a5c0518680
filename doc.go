// Package timbretag prepares tagged synth-patch libraries for training
// timbre and envelope classifiers: it repairs parameter values that
// contradict their tags and grows every category to a usable size.
//
// 🚀 What is timbretag?
//
//	A small pipeline of deterministic, single-threaded packages:
//		• Data model: categories, channel schemas and the per-category store
//		• Outlier correction: threshold rules replaced by the category mean
//		• Ranking: vectors ordered by magnitude over all but the last two channels
//		• Interpolation: new vectors between consecutive ranked anchors
//		• Noise injection: seeded ±amplitude copies of every vector
//		• Orchestration: correct → rank → augment → compare, per category
//
// ✨ Why timbretag?
//
//   - Reproducible – every random draw comes from an injectable seeded source
//   - Atomic – a run validates everything before the store is touched
//   - Configurable – threshold tables, channel selection and modes are data
//
// Packages:
//
//	patch/   : categories, channel schemas, Vector and Store
//	outlier/ : rules, threshold tables and mean replacement
//	rank/    : magnitude and stable descending ranking
//	interp/  : spectral and temporal interpolators
//	noise/   : seeded sources and the noise injector
//	augment/ : the engine, its options and reports
//	fetch/   : XML patch library ingestion (afero)
//	format/  : one-hot datasets, shuffling and train/validation split
//	export/  : SQLite dataset store
//	config/  : YAML + environment configuration
//	cmd/timbretag: the command line front end
//
// Quick pipeline:
//
//	library/*.xml ─fetch─▶ Store ─augment─▶ Store' ─format─▶ Dataset ─export─▶ SQLite
//
//	go install github.com/katalvlaran/timbretag/cmd/timbretag@latest
package timbretag
