package hashchain

import (
	"crypto/sha512"
	"fmt"
	"hash"
	"sort"
	"strings"

	"github.com/minio/sha256-simd"
	"github.com/zeebo/blake3"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// This file resolves digest algorithms by name and implements the single hashing step that chain
// construction and adjacency verification share.

// Algorithm is an immutable capability value identifying a supported digest function: a canonical
// lowercase name, a fixed output size in bytes, and a constructor for fresh hashing states. The
// zero value is unresolved and is rejected by every operation in this package. Algorithm values
// are read-only and safe to share between concurrent calls.
type Algorithm struct {
	name string
	size int
	fn   func() hash.Hash
}

// NewAlgorithm describes a digest function for registration in a custom Registry. The constructor
// must return states whose Size matches size; a size below one leaves the Algorithm unresolved.
func NewAlgorithm(name string, size int, fn func() hash.Hash) Algorithm {
	return Algorithm{name: normalize(name), size: size, fn: fn}
}

// Name returns the canonical lowercase name, or "" for the zero Algorithm.
func (a Algorithm) Name() string { return a.name }

// Size returns the digest output size in bytes, or 0 for the zero Algorithm.
func (a Algorithm) Size() int { return a.size }

func (a Algorithm) resolved() bool { return a.fn != nil && a.size > 0 }

// Registry maps digest names to Algorithms. Custom registries satisfy callers that must restrict
// or extend the built-in table; nothing in this package consults ambient global state.
type Registry struct {
	algs map[string]Algorithm
}

// NewRegistry returns a Registry holding exactly the given Algorithms.
func NewRegistry(algs ...Algorithm) *Registry {
	r := &Registry{algs: make(map[string]Algorithm, len(algs))}
	for _, a := range algs {
		r.algs[a.name] = a
	}
	return r
}

// Lookup resolves a digest name, ignoring case and surrounding space. It fails with
// ErrUnknownAlgorithm for names outside the registry.
func (r *Registry) Lookup(name string) (Algorithm, error) {
	if a, ok := r.algs[normalize(name)]; ok {
		return a, nil
	}
	return Algorithm{}, fmt.Errorf("%w %q", ErrUnknownAlgorithm, name)
}

// Names returns the registry's digest names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.algs))
	for name := range r.algs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func normalize(name string) string { return strings.ToLower(strings.TrimSpace(name)) }

/* md5 and sha1 are deliberately absent: chain links are preimage claims, and the registry admits
only digests still considered preimage-resistant. */
var builtin = NewRegistry(
	NewAlgorithm("sha256", sha256.Size, sha256.New),
	NewAlgorithm("sha384", sha512.Size384, sha512.New384),
	NewAlgorithm("sha512", sha512.Size, sha512.New),
	NewAlgorithm("sha512-256", sha512.Size256, sha512.New512_256),
	NewAlgorithm("sha3-256", 32, sha3.New256),
	NewAlgorithm("sha3-512", 64, sha3.New512),
	NewAlgorithm("blake2b-256", blake2b.Size256, func() hash.Hash { h, _ := blake2b.New256(nil); return h }),
	NewAlgorithm("blake2b-512", blake2b.Size, func() hash.Hash { h, _ := blake2b.New512(nil); return h }),
	NewAlgorithm("blake3", 32, func() hash.Hash { return blake3.New() }),
	NewAlgorithm("blake3-512", 64, newBlake3XOF512),
)

// Default returns the built-in registry of modern digest algorithms.
func Default() *Registry { return builtin }

// Lookup resolves a digest name against the built-in registry.
func Lookup(name string) (Algorithm, error) { return builtin.Lookup(name) }

// Algorithms returns the built-in registry's digest names in sorted order.
func Algorithms() []string { return builtin.Names() }

// step performs one hashing step: a fresh state, a single write of in, one finalization appended
// to dst. Every digest this package computes funnels through it, so construction and verification
// can never diverge in how they invoke the underlying function.
func step(h hash.Hash, in, dst []byte) []byte {
	h.Reset()
	h.Write(in)
	return h.Sum(dst)
}

// blake3xof512 presents the extendable output of zeebo/blake3 as a fixed 64-byte hash.Hash; its
// first 32 bytes coincide with the plain blake3 digest.
type blake3xof512 struct{ h *blake3.Hasher }

func newBlake3XOF512() hash.Hash { return &blake3xof512{h: blake3.New()} }

func (x *blake3xof512) Write(p []byte) (int, error) { return x.h.Write(p) }

func (x *blake3xof512) Sum(b []byte) []byte {
	var out [64]byte
	x.h.Digest().Read(out[:])
	return append(b, out[:]...)
}

func (x *blake3xof512) Reset() { x.h.Reset() }

func (x *blake3xof512) Size() int { return 64 }

func (x *blake3xof512) BlockSize() int { return x.h.BlockSize() }
