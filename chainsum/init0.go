//go:build windows

package main

import (
	"os"

	. "golang.org/x/sys/windows"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// Consoles on this platform require virtual terminal processing to be enabled explicitly before
// ANSI formatting codes render; failing that, the codes are dropped.

func init() {
	for _, v := range [2]Handle{
		Handle(os.Stdout.Fd()),
		Handle(os.Stderr.Fd()),
	} {
		var mode uint32
		if GetConsoleMode(v, &mode) != nil {
			pNoCodesDefault = true
			break
		}
		if mode&ENABLE_VIRTUAL_TERMINAL_PROCESSING == 0 {
			if SetConsoleMode(v, mode|ENABLE_VIRTUAL_TERMINAL_PROCESSING) != nil {
				pNoCodesDefault = true
				break
			}
		}
	}
	pNoCodes = pNoCodes || pNoCodesDefault
}
