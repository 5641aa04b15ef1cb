package hashchain

import "errors"

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// This file defines the package's error values; callers match them with errors.Is.

var (
	// ErrUnknownAlgorithm is returned when a digest name cannot be resolved against the registry
	// in use, or when an operation receives the zero Algorithm value.
	ErrUnknownAlgorithm = errors.New("hashchain: unknown algorithm")
	// ErrLength is returned for non-positive chain lengths, extension counts, search depths, and
	// seed sizes.
	ErrLength = errors.New("hashchain: length must be positive")
	// ErrDigestSize is returned when a supplied digest buffer is not exactly the algorithm's
	// output size. Mis-sized buffers are rejected before any bytes are read or compared.
	ErrDigestSize = errors.New("hashchain: digest size mismatch")
	// ErrChainSize is returned when a chain's backing buffer would exceed the addressable space.
	ErrChainSize = errors.New("hashchain: chain too large")
	// ErrBrokenChain is returned by Validate when a digest is not the hash of its predecessor.
	ErrBrokenChain = errors.New("hashchain: broken link")
)
