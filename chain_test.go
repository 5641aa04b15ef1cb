package hashchain

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

func mustLookup(t *testing.T, name string) Algorithm {
	t.Helper()
	alg, err := Lookup(name)
	if err != nil {
		t.Fatalf("Lookup(%q): %v", name, err)
	}
	return alg
}

func TestNewFirstDigest(t *testing.T) {
	seed := []byte("an arbitrary seed")
	for _, name := range Algorithms() {
		alg := mustLookup(t, name)
		c, err := New(alg, seed, 1)
		if err != nil {
			t.Fatalf("%s: New: %v", name, err)
		}
		want := step(alg.fn(), seed, nil)
		if got := c.At(0); !bytes.Equal(got, want) {
			t.Errorf("%s: digest 0 = %x, want H(seed) = %x", name, got, want)
		}
	}
}

func TestChainInvariant(t *testing.T) {
	for _, name := range Algorithms() {
		alg := mustLookup(t, name)
		c, err := New(alg, []byte("base"), 17)
		if err != nil {
			t.Fatalf("%s: New: %v", name, err)
		}
		h := alg.fn()
		for i := 1; i < c.Len(); i++ {
			if want := step(h, c.At(i-1), nil); !bytes.Equal(c.At(i), want) {
				t.Fatalf("%s: digest %d = %x, want H(digest %d) = %x",
					name, i, c.At(i), i-1, want)
			}
		}
	}
}

func TestDeterminism(t *testing.T) {
	alg := mustLookup(t, "blake3")
	a, err := New(alg, []byte("same inputs"), 64)
	if err != nil {
		t.Fatal(err)
	}
	b, err := New(alg, []byte("same inputs"), 64)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < a.Len(); i++ {
		if !bytes.Equal(a.At(i), b.At(i)) {
			t.Fatalf("digest %d differs between identical builds", i)
		}
	}
}

func TestEmptySeed(t *testing.T) {
	alg := mustLookup(t, "sha256")
	c, err := New(alg, nil, 2)
	if err != nil {
		t.Fatalf("New with empty seed: %v", err)
	}
	if want := step(alg.fn(), nil, nil); !bytes.Equal(c.At(0), want) {
		t.Errorf("digest 0 = %x, want H(\"\") = %x", c.At(0), want)
	}
}

func TestLengthOne(t *testing.T) {
	alg := mustLookup(t, "sha512")
	c, err := New(alg, []byte("solo"), 1)
	if err != nil {
		t.Fatal(err)
	}
	if c.Len() != 1 {
		t.Fatalf("got length %d, want 1", c.Len())
	}
	if !bytes.Equal(c.Tip(), c.At(0)) {
		t.Error("tip of a length-1 chain is not its only digest")
	}
}

func TestInvalidLength(t *testing.T) {
	alg := mustLookup(t, "sha256")
	for _, ln := range []int{0, -1, -128} {
		if _, err := New(alg, []byte("seed"), ln); !errors.Is(err, ErrLength) {
			t.Errorf("New(length %d): got %v, want ErrLength", ln, err)
		}
	}
	if _, err := New(alg, []byte("seed"), maxInt); !errors.Is(err, ErrChainSize) {
		t.Errorf("New(length maxInt): got %v, want ErrChainSize", err)
	}
}

func TestUnresolvedAlgorithm(t *testing.T) {
	if _, err := Lookup("not-a-real-algo"); !errors.Is(err, ErrUnknownAlgorithm) {
		t.Errorf("Lookup: got %v, want ErrUnknownAlgorithm", err)
	}
	if _, err := New(Algorithm{}, []byte("seed"), 5); !errors.Is(err, ErrUnknownAlgorithm) {
		t.Errorf("New: got %v, want ErrUnknownAlgorithm", err)
	}
}

func TestAtReturnsCopies(t *testing.T) {
	alg := mustLookup(t, "sha256")
	c, err := New(alg, []byte("owned"), 3)
	if err != nil {
		t.Fatal(err)
	}
	d := c.At(1)
	for i := range d {
		d[i] = 0
	}
	if bytes.Equal(c.At(1), d) {
		t.Error("mutating an accessor's result reached the backing buffer")
	}
}

func TestAtOutOfRange(t *testing.T) {
	alg := mustLookup(t, "sha256")
	c, err := New(alg, []byte("short"), 2)
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		if recover() == nil {
			t.Error("At(2) on a length-2 chain did not panic")
		}
	}()
	c.At(2)
}

func TestExtend(t *testing.T) {
	alg := mustLookup(t, "blake2b-256")
	base, err := New(alg, []byte("grow"), 4)
	if err != nil {
		t.Fatal(err)
	}
	grown, err := base.Extend(6)
	if err != nil {
		t.Fatal(err)
	}
	whole, err := New(alg, []byte("grow"), 10)
	if err != nil {
		t.Fatal(err)
	}
	if grown.Len() != 10 {
		t.Fatalf("got length %d, want 10", grown.Len())
	}
	for i := 0; i < 10; i++ {
		if !bytes.Equal(grown.At(i), whole.At(i)) {
			t.Fatalf("digest %d of Extend(6) differs from a direct length-10 build", i)
		}
	}
	if base.Len() != 4 {
		t.Errorf("receiver length changed to %d", base.Len())
	}
	if _, err = base.Extend(0); !errors.Is(err, ErrLength) {
		t.Errorf("Extend(0): got %v, want ErrLength", err)
	}
}

// The worked example: sha256("hello") is the well-known
// 2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824.
func TestKnownVector(t *testing.T) {
	alg := mustLookup(t, "sha256")
	c, err := New(alg, []byte("hello"), 3)
	if err != nil {
		t.Fatal(err)
	}
	want, _ := hex.DecodeString("2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824")
	if !bytes.Equal(c.At(0), want) {
		t.Fatalf("digest 0 = %x, want %x", c.At(0), want)
	}

	if ok, err := Verify(alg, c.At(1), c.At(2)); err != nil || !ok {
		t.Errorf("Verify(digest 1, digest 2) = %v, %v; want true", ok, err)
	}
	if ok, err := Verify(alg, c.At(0), c.At(2)); err != nil || ok {
		t.Errorf("Verify(digest 0, digest 2) = %v, %v; want false", ok, err)
	}
}
