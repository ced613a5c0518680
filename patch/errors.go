// SPDX-License-Identifier: MIT
// Package patch: sentinel error set shared across timbretag.
// Every package that reports one of these conditions wraps the sentinel
// with its own prefix (fmt.Errorf("interp: ...: %w", ErrX)); callers match
// with errors.Is. None of these conditions is recoverable locally and
// nothing in the pipeline retries: the computation is deterministic given
// its inputs, so a retry without new inputs would fail the same way.

package patch

import "errors"

var (
	// ErrInsufficientData indicates that a category holds too few vectors
	// (or a vector too few channels) for the requested operation, e.g.
	// fewer than two vectors for interpolation.
	ErrInsufficientData = errors.New("patch: insufficient data")

	// ErrInvalidConfiguration indicates a run setting outside its domain:
	// scale factor below the minimum, unknown mode, channel selection out
	// of range.
	ErrInvalidConfiguration = errors.New("patch: invalid configuration")

	// ErrChannelMismatch indicates vectors of one category with different
	// widths, or a channel index outside the vector width. It points at an
	// ingestion defect and is surfaced rather than tolerated.
	ErrChannelMismatch = errors.New("patch: channel mismatch")

	// ErrUnknownCategory indicates a category or domain value outside the
	// fixed label set.
	ErrUnknownCategory = errors.New("patch: unknown category")
)
