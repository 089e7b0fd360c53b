// Copyright (c) 2026 AdAway Team
// AdAway - hosts sources store
// This source code is licensed under the MIT license found in the LICENSE file.

// Package buildvars holds values injected at link time, e.g.
//
//	go build -ldflags "-X github.com/adaway/adaway/buildvars.Version=1.2.3"
package buildvars

// Version is empty for local or development builds.
var Version string

// VersionOrDefault returns Version if set, otherwise def.
func VersionOrDefault(def string) string {
	if Version != "" {
		return Version
	}
	return def
}
