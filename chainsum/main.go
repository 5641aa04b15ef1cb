package main

import (
	"bufio"
	"encoding/base64"
	. "fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/p7r0x7/hashchain"
	"github.com/p7r0x7/vainpath"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// This program is a command-line interface for hashchain: it builds digest chains, checks
// adjacency claims, and audits chain dumps, rendering digests in standard base64 one per line.

const n = "\n"
const success, failure, invalid = 0, 1, 2

var warnings = 0

func main() { os.Exit(program()) }

// help prints a usage menu. To consistently correctly render this menu in most terminal windows,
// its content should be no wider than 80 columns.
func help() {
	origin, err := os.Executable()
	if err != nil {
		origin = "chainsum" /* Default binary name */
	} else {
		origin = filepath.Base(origin)
	}
	name := vainpath.Trim(origin, "…", 12)
	spaces := strings.Repeat(" ", utf8.RuneCountInString(name)+3)
	Fprint(os.Stderr, yell, "Deterministic hash chains: build, verify, and audit digest sequences.", zero, n+n+
		"Usage:"+n+
		"  ", name, " [-h]"+n,
		spaces, "create [-dt] [--quiet|no-codes] ALGO LENGTH BASE"+n,
		spaces, "verify [--depth <uint>] [--quiet|no-codes] ALGO CANDIDATE TIP"+n,
		spaces, "check  [-n] [--quiet|no-codes] [--strict] ALGO -|PATH..."+n+n+
			"Options:"+n)
	Fprint(os.Stderr, createFlags.FlagUsages(), verifyFlags.FlagUsages(), checkFlags.FlagUsages())
	Fprint(os.Stderr, n+"ALGO is one of:"+n+"  ",
		strings.Join(hashchain.Algorithms(), ", "), n+n+
			"CANDIDATE and TIP are base64 digests; verification succeeds when hashing"+n+
			"CANDIDATE reaches TIP. `-` is treated as a reference to ", os.Stdin.Name(),
		" on this"+n+"platform."+n)
}

func program() int {
	if pHelp || len(os.Args) < 2 {
		help()
		return success
	}

	switch cmd := os.Args[1]; cmd {
	case "create":
		return create(os.Args[2:])
	case "verify":
		return verify(os.Args[2:])
	case "check":
		return check(os.Args[2:])
	default:
		Fprint(os.Stderr, purp, "Unknown command ", zero, `"`, cmd, `"`, purp, ".", zero, n)
		help()
		return invalid
	}
}

// create builds a chain from ALGO LENGTH BASE and writes it to STDOUT, one base64 digest per
// line, in chain order.
func create(args []string) int {
	if createFlags.Parse(args) != nil {
		return invalid
	}
	args = createFlags.Args()
	if len(args) != 3 {
		Fprint(os.Stderr, purp, "create takes exactly ALGO LENGTH BASE.", zero, n)
		return invalid
	}

	alg, err := hashchain.Lookup(args[0])
	if err != nil {
		return complain(err)
	}
	length, err := strconv.Atoi(args[1])
	if err != nil || length < 1 {
		Fprint(os.Stderr, purp, "Chain length must be a positive integer, not ", zero, `"`, args[1], `"`, purp, ".", zero, n)
		return invalid
	}

	seed := []byte(args[2])
	if pDerive {
		if seed, err = hashchain.DeriveSeed(seed, []byte(alg.Name()), alg.Size()); err != nil {
			return complain(err)
		}
	}

	start := time.Now()
	chain, err := hashchain.New(alg, seed, length)
	if err != nil {
		return complain(err)
	}
	if pTime {
		d := time.Since(start)
		if d.Microseconds() > 99 {
			d = d.Truncate(10 * time.Microsecond)
		}
		Fprint(os.Stderr, yell, d.String(), zero, n)
	}

	w := bufio.NewWriter(os.Stdout)
	for i := 0; i < chain.Len(); i++ {
		w.WriteString(base64.StdEncoding.EncodeToString(chain.At(i)))
		w.WriteString(n)
	}
	if w.Flush() != nil {
		return failure
	}
	return success
}

// verify decodes ALGO CANDIDATE TIP and reports whether hashing CANDIDATE reaches TIP, within
// --depth steps. A mismatch prints "failure" and exits 1; it is a result, not an input error.
func verify(args []string) int {
	if verifyFlags.Parse(args) != nil {
		return invalid
	}
	args = verifyFlags.Args()
	if len(args) != 3 {
		Fprint(os.Stderr, purp, "verify takes exactly ALGO CANDIDATE TIP.", zero, n)
		return invalid
	}

	alg, err := hashchain.Lookup(args[0])
	if err != nil {
		return complain(err)
	}
	candidate, err := decode(args[1])
	if err != nil {
		return complain(err)
	}
	tip, err := decode(args[2])
	if err != nil {
		return complain(err)
	}

	ok := false
	if pDepth > 1 {
		_, ok, err = hashchain.Distance(alg, candidate, tip, int(pDepth))
	} else {
		ok, err = hashchain.Verify(alg, candidate, tip)
	}
	if err != nil {
		return complain(err)
	}
	if !ok {
		Print("failure" + n)
		return failure
	}
	Print("success" + n)
	return success
}

// check audits chain dumps: each target is read as base64 digests one per line and every
// consecutive pair is checked for adjacency, the way `create`'s output would be re-verified
// after storage.
func check(args []string) int {
	if checkFlags.Parse(args) != nil {
		return invalid
	}
	args = checkFlags.Args()
	if len(args) < 2 {
		Fprint(os.Stderr, purp, "check takes ALGO and at least one target.", zero, n)
		return invalid
	}

	alg, err := hashchain.Lookup(args[0])
	if err != nil {
		return complain(err)
	}

	broken := 0
	for _, target := range args[1:] {
		var in io.ReadCloser
		if target == "-" || target == os.Stdin.Name() {
			in = os.Stdin
		} else if in, err = os.Open(target); err != nil {
			warn(err)
			continue
		}

		digests, err := readDigests(in)
		in.Close()
		if err != nil {
			warn(err)
			continue
		}

		links, err := hashchain.Validate(alg, digests)
		if err != nil {
			broken++
			if !pQuiet {
				Print(zero, `  `, und, vainpath.Simplify(target), zero, ": ", err, n)
			}
			continue
		}
		if pQuiet {
			continue
		}
		Print(zero, `  `, und, vainpath.Simplify(target), zero, ": ", links, " links verified", n)
		if len(digests) > 0 {
			Print(yell, "    tip  ", zero, base64.StdEncoding.EncodeToString(digests[len(digests)-1]), n)
		}
		if pNext && len(digests) > 1 {
			Print(yell, "    next ", zero, base64.StdEncoding.EncodeToString(digests[len(digests)-2]), n)
		}
	}

	if !pQuiet {
		if warnings == 1 {
			Fprint(os.Stderr, "1 ", purp, "target is unreadable or is not a base64 chain dump.", zero, n)
		} else if warnings > 1 {
			Fprint(os.Stderr, warnings, " ", purp, "targets are unreadable or are not base64 chain dumps.", zero, n)
		}
	}
	if warnings > 0 {
		return invalid
	}
	if broken > 0 {
		return failure
	}
	return success
}

// readDigests reads base64 digests one per line, skipping blank lines.
func readDigests(r io.Reader) ([][]byte, error) {
	var digests [][]byte
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		d, err := decode(line)
		if err != nil {
			return nil, err
		}
		digests = append(digests, d)
	}
	return digests, scanner.Err()
}

func decode(s string) ([]byte, error) {
	d, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, Errorf("not valid base64: %q", s)
	}
	return d, nil
}

// complain reports an input error; these, unlike failed verifications, exit with status 2.
func complain(err error) int {
	Fprint(os.Stderr, purp, err, zero, n)
	return invalid
}

func warn(err ...interface{}) {
	if pStrict {
		panic(err)
	}
	warnings++
}
