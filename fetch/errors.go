// SPDX-License-Identifier: MIT

package fetch

import "errors"

var (
	// ErrMissingParameter indicates a patch without a value for a channel of
	// a domain it is tagged with.
	ErrMissingParameter = errors.New("fetch: missing parameter")

	// ErrMalformedPatch indicates unreadable XML or a non-numeric value.
	ErrMalformedPatch = errors.New("fetch: malformed patch")

	// ErrNoLibrary indicates that the library directory does not exist.
	ErrNoLibrary = errors.New("fetch: library directory not found")
)
