package hashchain

import (
	"fmt"

	"github.com/aead/chacha20/chacha"
	"github.com/minio/sha256-simd"
	"github.com/zeebo/blake3"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// This file derives reproducible seed material for chains rooted in a passphrase.

const deriveContext = "github.com/p7r0x7/hashchain seed derivation"

// DeriveSeed expands passphrase into n bytes of deterministic seed material, domain-separated by
// context. BLAKE3 key derivation turns the passphrase into a 32-byte stream key, SHA-256 of
// context supplies the XChaCha20 nonce, and the keystream yields the output. Identical inputs
// always yield identical seeds; distinct contexts yield unrelated ones.
func DeriveSeed(passphrase, context []byte, n int) ([]byte, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: %d", ErrLength, n)
	}

	var key [chacha.KeySize]byte
	blake3.DeriveKey(deriveContext, passphrase, key[:])
	nonce := sha256.Sum256(context)

	seed := make([]byte, n)
	chacha.XORKeyStream(seed, seed, nonce[:chacha.XNonceSize], key[:], 20)
	return seed, nil
}
