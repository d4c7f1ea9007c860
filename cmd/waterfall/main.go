// Package main provides the waterfall CLI.
//
// Usage:
//
//	waterfall view [fixture.toml]      Browse a fixture in the terminal
//	waterfall simulate [fixture.toml]  Lay out a fixture headlessly and report each step
//	waterfall bench                    Time full layouts across column counts
//	waterfall gen <fixture.toml>       Write a random fixture
//	waterfall version                  Print version information
package main

import (
	"log"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatalf("error during command execution: %v", err)
	}
}
