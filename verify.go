package hashchain

import (
	"crypto/subtle"
	"fmt"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// This file implements the adjacency predicate and its two generalizations: bounded forward
// search and whole-sequence validation. Comparisons are constant-time throughout.

// Verify reports whether candidate is the immediate predecessor of tip, that is, whether
// H(candidate) == tip. The relation is asymmetric: swapping the operands asks a different
// question. A mismatch is a normal false result, never an error; errors are reserved for an
// unresolved algorithm and for operands that are not exactly alg.Size() bytes.
func Verify(alg Algorithm, candidate, tip []byte) (bool, error) {
	if !alg.resolved() {
		return false, ErrUnknownAlgorithm
	}
	if len(candidate) != alg.size || len(tip) != alg.size {
		return false, fmt.Errorf("%w: want %d bytes, got %d and %d",
			ErrDigestSize, alg.size, len(candidate), len(tip))
	}
	sum := step(alg.fn(), candidate, make([]byte, 0, alg.size))
	return subtle.ConstantTimeCompare(sum, tip) == 1, nil
}

// Distance searches forward from candidate for tip, hashing at most max times. It returns the
// number of steps taken and whether tip was reached; a found result at 1 is exactly adjacency.
// Deployments that let clients skip credentials verify with a small max instead of 1.
func Distance(alg Algorithm, candidate, tip []byte, max int) (int, bool, error) {
	if !alg.resolved() {
		return 0, false, ErrUnknownAlgorithm
	}
	if max < 1 {
		return 0, false, fmt.Errorf("%w: max %d", ErrLength, max)
	}
	if len(candidate) != alg.size || len(tip) != alg.size {
		return 0, false, fmt.Errorf("%w: want %d bytes, got %d and %d",
			ErrDigestSize, alg.size, len(candidate), len(tip))
	}

	h, cur := alg.fn(), append(make([]byte, 0, alg.size), candidate...)
	for i := 1; i <= max; i++ {
		/* The state is consumed by Write before Sum overwrites it in place. */
		cur = step(h, cur, cur[:0])
		if subtle.ConstantTimeCompare(cur, tip) == 1 {
			return i, true, nil
		}
	}
	return max, false, nil
}

// Validate walks a decoded digest sequence, such as one read back from a chain dump, and confirms
// that every element is the hash of its predecessor. It returns the number of links verified and,
// on the first mis-sized digest or broken link, an error naming its index. Sequences shorter than
// two digests contain no links and validate trivially.
func Validate(alg Algorithm, digests [][]byte) (int, error) {
	if !alg.resolved() {
		return 0, ErrUnknownAlgorithm
	}
	if len(digests) == 0 {
		return 0, nil
	}
	for i, d := range digests {
		if len(d) != alg.size {
			return 0, fmt.Errorf("%w: digest %d is %d bytes, want %d",
				ErrDigestSize, i, len(d), alg.size)
		}
	}

	h, sum := alg.fn(), make([]byte, 0, alg.size)
	for i := 1; i < len(digests); i++ {
		sum = step(h, digests[i-1], sum[:0])
		if subtle.ConstantTimeCompare(sum, digests[i]) != 1 {
			return i - 1, fmt.Errorf("%w: digest %d is not the hash of digest %d",
				ErrBrokenChain, i, i-1)
		}
	}
	return len(digests) - 1, nil
}
