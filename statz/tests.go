package main

import (
	. "fmt"
	"math/big"

	"github.com/p7r0x7/hashchain"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// A healthy digest leaves every output bit set in half the links of a long chain; a visible mean
// bias here would indicate a wiring fault in the registry or the step.

const biasLinks = 1 << 14

func meanBias(c *hashchain.Chain) float64 {
	bits := c.DigestSize() * 8
	tally, v := make([]int32, bits), new(big.Int)
	for i := c.Len() - 1; i >= 0; i-- {
		v.SetBytes(c.At(i))
		for i2 := bits - 1; i2 >= 0; i2-- {
			if v.Bit(i2) == 1 {
				tally[i2]++
			}
		}
	}
	var total int32
	for i := range tally {
		tally[i] = tally[i] - biasLinks>>1
		if tally[i] < 0 {
			total += tally[i] * -1
		} else {
			total += tally[i]
		}
	}
	return (float64(total) / float64(bits)) / float64(biasLinks>>1) * 100
}

func biasTest() {
	for _, name := range [2]string{"sha256", "blake3"} {
		alg, err := hashchain.Lookup(name)
		if err != nil {
			panic(err)
		}
		c, err := hashchain.New(alg, seed, biasLinks)
		if err != nil {
			panic(err)
		}
		Printf("%-12s Monobit test:  %5.3f%%\n", name, meanBias(c))
	}
	Println()
}
