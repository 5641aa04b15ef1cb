// Package hashchain derives and verifies linear chains of cryptographic digests, where each link
// is the hash of its predecessor and the first link is the hash of an arbitrary seed. Every
// operation is a pure function over bytes: nothing is persisted, nothing is shared between calls,
// and concurrent callers need no coordination.
package hashchain

import "fmt"

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// This file implements chain construction over a flat backing buffer.

const maxInt = int(^uint(0) >> 1)

// Chain is an immutable sequence of digests satisfying digests[i] = H(digests[i-1]), with
// digests[0] = H(seed). The backing buffer is exclusively owned; accessors return copies.
type Chain struct {
	alg  Algorithm
	data []byte /* ln*alg.size bytes; digest i occupies data[i*size : (i+1)*size]. */
	ln   int
}

// New builds a chain of length digests from seed, which may be empty. Construction is
// deterministic: identical inputs always yield byte-identical chains.
func New(alg Algorithm, seed []byte, length int) (*Chain, error) {
	if !alg.resolved() {
		return nil, ErrUnknownAlgorithm
	}
	if length < 1 {
		return nil, fmt.Errorf("%w: %d", ErrLength, length)
	}
	if length > maxInt/alg.size {
		return nil, fmt.Errorf("%w: %d digests of %d bytes", ErrChainSize, length, alg.size)
	}

	size, h := alg.size, alg.fn()
	data := step(h, seed, make([]byte, 0, length*size))
	for i := 1; i < length; i++ {
		/* Each link hashes exactly the raw bytes of its predecessor; the append lands past them
		in the preallocated buffer. */
		data = step(h, data[(i-1)*size:i*size], data)
	}
	return &Chain{alg: alg, data: data, ln: length}, nil
}

// Len returns the number of digests in the chain.
func (c *Chain) Len() int { return c.ln }

// DigestSize returns the byte length of one digest.
func (c *Chain) DigestSize() int { return c.alg.size }

// Algorithm returns the resolved digest algorithm the chain was built with.
func (c *Chain) Algorithm() Algorithm { return c.alg }

// At returns a copy of digest i. It panics like a slice access if i is out of range.
func (c *Chain) At(i int) []byte {
	d := make([]byte, c.alg.size)
	copy(d, c.data[i*c.alg.size:(i+1)*c.alg.size])
	return d
}

// Tip returns a copy of the last digest.
func (c *Chain) Tip() []byte { return c.At(c.ln - 1) }

// Extend returns a new chain of Len()+n digests continuing from the tip; the receiver is left
// untouched. Extend(n) of a length-k chain equals New with length k+n.
func (c *Chain) Extend(n int) (*Chain, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: %d", ErrLength, n)
	}
	if n > maxInt/c.alg.size-c.ln {
		return nil, fmt.Errorf("%w: %d digests of %d bytes", ErrChainSize, c.ln+n, c.alg.size)
	}

	size, h := c.alg.size, c.alg.fn()
	data := append(make([]byte, 0, (c.ln+n)*size), c.data...)
	for i := c.ln; i < c.ln+n; i++ {
		data = step(h, data[(i-1)*size:i*size], data)
	}
	return &Chain{alg: c.alg, data: data, ln: c.ln + n}, nil
}
