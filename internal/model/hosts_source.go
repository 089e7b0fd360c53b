// Copyright (c) 2026 AdAway Team
// AdAway - hosts sources store
// This source code is licensed under the MIT license found in the LICENSE file.

// package model defines the core data structures used throughout AdAway.
package model // import "github.com/adaway/adaway/internal/model"

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// HostsSource is one remote hosts file location and whether it is used
// when the hosts list is rebuilt.
type HostsSource struct {
	ID      int64  `json:"id"`      // Primary key, assigned by the database.
	URL     string `json:"url"`     // Location of the remote hosts file.
	Enabled bool   `json:"enabled"` // Whether the source is included in ListEnabledURLs.
}

// DefaultHostsSources are the sources seeded into a freshly created schema.
var DefaultHostsSources = []string{
	// http://winhelp2002.mvps.org/hosts.htm
	"http://www.mvps.org/winhelp2002/hosts.txt",
	// hpHosts ad/tracking servers
	"http://hosts-file.net/ad_servers.asp",
}

// BackupData holds a full export of the hosts sources table.
type BackupData struct {
	SchemaVersion int64         `json:"schema_version"`
	HostsSources  []HostsSource `json:"hosts_sources"`
}

// ErrInvalidURL is returned by ValidateURL.
var ErrInvalidURL = errors.New("invalid hosts source url")

// ValidateURL checks that raw is an absolute http, https or ftp url. The
// store accepts any text; the CLI and TUI validate before writing.
func ValidateURL(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https", "ftp":
	default:
		return fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: missing host", ErrInvalidURL)
	}
	return nil
}
