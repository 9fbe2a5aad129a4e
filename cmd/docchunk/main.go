// Package main is the entry point for the docchunk CLI.
package main

import (
	"os"
)

var (
	version   = "1.0.0"
	buildTime = "unknown"
)

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
