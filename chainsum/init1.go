package main

import (
	"os"

	. "github.com/spf13/pflag"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// This file defines the per-command flag sets and the terminal formatting variables.

var pNoCodesDefault = false
var pDerive, pHelp, pNext, pNoCodes, pQuiet, pStrict, pTime bool
var pDepth = uint(0)
var yell, purp, und, zero = "\033[33m", "\033[35m", "\033[4m", "\033[0m"

var createFlags = NewFlagSet("create", ContinueOnError)
var verifyFlags = NewFlagSet("verify", ContinueOnError)
var checkFlags = NewFlagSet("check", ContinueOnError)

func init() {
	for _, arg := range os.Args[1:] {
		switch arg {
		case "--quiet", "--quiet=true":
			pNoCodes, pQuiet = true, true
		case "--no-codes", "--no-codes=true":
			pNoCodes = true
		case "-h", "--help", "help":
			pHelp = true
		}
	}
	if pNoCodes || pNoCodesDefault {
		yell, purp, und, zero = "", "", "", ""
	}

	createFlags.BoolVarP(&pDerive, "derive", "d", false,
		purp+"treat BASE as a passphrase and derive the seed from it"+zero)

	createFlags.BoolVarP(&pTime, "time", "t", false,
		purp+"print time taken to build the chain"+zero)

	verifyFlags.UintVar(&pDepth, "depth", 1,
		purp+"accept CANDIDATE up to this many hash steps before TIP"+zero)

	checkFlags.BoolVarP(&pNext, "next", "n", false,
		purp+"also print the next spendable digest (the tip's"+zero+
			n+purp+"predecessor)"+zero)

	checkFlags.BoolVar(&pStrict, "strict", false,
		purp+"cause chainsum to panic on any error"+zero)

	for _, set := range [3]*FlagSet{createFlags, verifyFlags, checkFlags} {
		set.Bool("no-codes", pNoCodesDefault,
			purp+"print to console w/o formatting codes or simplified"+zero+
				n+purp+"filepaths"+zero)

		set.Bool("quiet", false,
			purp+"suppress non-breaking errors and decorations"+zero+
				n+"(enables --no-codes)")

		/* Order flags alphabetically; the scan above already consumed help. */
		set.SortFlags = false
		set.SetOutput(os.Stderr)
	}
}
