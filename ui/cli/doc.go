// Copyright (c) 2026 AdAway Team
// AdAway - hosts sources store
// This source code is licensed under the MIT license found in the LICENSE file.
//
// Package cli implements the command-line interface for AdAway using Cobra.
// It loads configuration, opens the hosts sources store for the duration of
// one command and delegates the actual work to internal packages. Commands
// should stay thin.
package cli
