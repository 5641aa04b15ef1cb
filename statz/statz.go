package main

import (
	"encoding/binary"
	. "fmt"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/dterei/gotsc"
	"github.com/p7r0x7/hashchain"
	"github.com/zeebo/xxh3"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// Statz compares chain-construction throughput across the registry's digest algorithms, with a
// non-cryptographic xxh3 step as the floor.

var lengths = [...]int{16, 1 << 10, 32 << 10, 1 << 20}
var alg, length, calltime = hashchain.Algorithm{}, 0, gotsc.TSCOverhead()

var seed = []byte("statz")

func benchmarkChain(b *testing.B) {
	b.SetBytes(int64(length * alg.Size()))
	b.ResetTimer()
	for i := b.N; i > 0; i-- {
		if _, err := hashchain.New(alg, seed, length); err != nil {
			panic(err)
		}
	}
}

func benchmarkXXH3(b *testing.B) {
	var buf [16]byte
	b.SetBytes(int64(length) * 16)
	b.ResetTimer()
	for i := b.N; i > 0; i-- {
		for j := length; j > 0; j-- {
			s := xxh3.Hash128(buf[:])
			binary.LittleEndian.PutUint64(buf[:8], s.Lo)
			binary.LittleEndian.PutUint64(buf[8:], s.Hi)
		}
	}
}

func benchAlg(label string, fn func(b *testing.B)) {
	const s = len(lengths)
	Println(label)
	Println("Chain         16        1K       32K        1M")
	throughputs, speeds, usages := make([]float64, s), make([]float64, s), make([]float64, s)

	for i, v := range lengths {
		length = v

		totalHz, polls, mut := uint64(0), uint64(0), &sync.Mutex{}
		if calltime > 0 {
			go func() {
				for {
					tsc1 := gotsc.BenchStart()
					time.Sleep(time.Millisecond)
					tsc2 := gotsc.BenchEnd()

					mut.Lock()
					totalHz += tsc2 - tsc1 - calltime
					polls++
					mut.Unlock()

					time.Sleep(time.Millisecond * 9)
				}
			}()
		}
		r := testing.Benchmark(fn)
		mut.Lock()
		totalHz *= 1000

		throughputs[i] = float64(r.Bytes*int64(r.N)) / r.T.Seconds() /* B/s */
		speeds[i] = float64(totalHz) / float64(polls) / throughputs[i]
		throughputs[i] /= 1e6 /* MB/s */
		usages[i] = float64(r.AllocedBytesPerOp())
	}

	Println("Speed " + fmtFloats(throughputs...) + "   MB/s")
	if calltime > 0 {
		Println("      " + fmtFloats(speeds...) + "   cpb")
	}
	Println("Usage " + fmtFloats(usages...) + "   B/op\n")
}

func fmtFloats(f ...float64) string {
	var str, style string
	for _, v := range f {
		switch whole := float64(int64(v)) == v; {
		case v > 1e8 || (v < 1e-6 && !whole):
			style = "%8.3g"
		case v <= 1e1 && !whole:
			style = "%8.6f"
		case v <= 1e2 && !whole:
			style = "%8.5f"
		case v <= 1e3 && !whole:
			style = "%8.4f"
		case v <= 1e4 && !whole:
			style = "%8.3f"
		case v <= 1e5 && !whole:
			style = "%8.2f"
		case v <= 1e6 && !whole:
			style = "%8.1f"
		default:
			style = "%8.f"
		}
		str += "  " + Sprintf(style, v)
	}
	return str
}

func main() {
	Printf("Running Statz on %d CPUs!\n%s/%s\n\n",
		runtime.NumCPU(), runtime.GOOS, runtime.GOARCH)
	t := time.Now()

	biasTest()
	Println(" ============================================= ")

	for _, name := range [4]string{"sha256", "blake3", "sha3-256", "blake2b-256"} {
		var err error
		if alg, err = hashchain.Lookup(name); err != nil {
			panic(err)
		}
		benchAlg(name, benchmarkChain)
	}

	benchAlg("github.com/zeebo/xxh3 (baseline, not in the registry)", benchmarkXXH3)

	Println("Finished in " + time.Since(t).Truncate(time.Millisecond).String() + ".")
}
