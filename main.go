// Copyright (c) 2026 AdAway Team
// AdAway - hosts sources store
// This source code is licensed under the MIT license found in the LICENSE file.

// Command-line entrypoint for AdAway.
//
// Usage:
//
//	go run . [flags]
//	./adaway [flags]
//
// See --help for options.
package main

import (
	"os"

	"github.com/adaway/adaway/ui/cli"
)

func main() {
	// Cobra already printed the error.
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
