// Copyright (c) 2026 AdAway Team
// AdAway - hosts sources store
// This source code is licensed under the MIT license found in the LICENSE file.

// Command adaway manages the hosts sources used to build AdAway's
// blocking list.
package main

import (
	"os"

	"github.com/adaway/adaway/ui/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
