package hashchain

import (
	"bytes"
	"errors"
	"testing"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

func TestDeriveSeedDeterminism(t *testing.T) {
	a, err := DeriveSeed([]byte("correct horse"), []byte("sha256"), 32)
	if err != nil {
		t.Fatal(err)
	}
	b, err := DeriveSeed([]byte("correct horse"), []byte("sha256"), 32)
	if err != nil {
		t.Fatal(err)
	}
	if len(a) != 32 {
		t.Fatalf("got %d bytes, want 32", len(a))
	}
	if !bytes.Equal(a, b) {
		t.Error("identical inputs yielded different seeds")
	}
}

func TestDeriveSeedSeparation(t *testing.T) {
	base, err := DeriveSeed([]byte("passphrase"), []byte("ctx"), 64)
	if err != nil {
		t.Fatal(err)
	}
	other, err := DeriveSeed([]byte("passphrase2"), []byte("ctx"), 64)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(base, other) {
		t.Error("distinct passphrases yielded the same seed")
	}
	other, err = DeriveSeed([]byte("passphrase"), []byte("ctx2"), 64)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(base, other) {
		t.Error("distinct contexts yielded the same seed")
	}
}

// A longer request extends, never reshuffles, a shorter one from the same inputs.
func TestDeriveSeedPrefixStable(t *testing.T) {
	long, err := DeriveSeed([]byte("stable"), []byte("ctx"), 96)
	if err != nil {
		t.Fatal(err)
	}
	short, err := DeriveSeed([]byte("stable"), []byte("ctx"), 32)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(long[:32], short) {
		t.Error("shorter derivation is not a prefix of the longer one")
	}
}

func TestDeriveSeedLength(t *testing.T) {
	for _, n := range []int{0, -1} {
		if _, err := DeriveSeed([]byte("p"), nil, n); !errors.Is(err, ErrLength) {
			t.Errorf("n = %d: got %v, want ErrLength", n, err)
		}
	}
	if seed, err := DeriveSeed(nil, nil, 1); err != nil || len(seed) != 1 {
		t.Errorf("minimal derivation: got (%d bytes, %v)", len(seed), err)
	}
}
