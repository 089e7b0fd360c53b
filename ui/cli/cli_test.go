// Copyright (c) 2026 AdAway Team
// AdAway - hosts sources store
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"testing"

	"github.com/adaway/adaway/internal/db"
	"github.com/adaway/adaway/internal/i18n"
)

const (
	mvpsURL      = "http://www.mvps.org/winhelp2002/hosts.txt"
	hostsFileURL = "http://hosts-file.net/ad_servers.asp"
)

// testEnv isolates config lookup and returns the database path to use.
func testEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Chdir(dir)
	i18n.Init("en")
	t.Cleanup(func() { i18n.Init("en") })
	return filepath.Join(dir, "adaway.db")
}

// executeCommand runs a fresh root command against dbPath and returns its
// stdout.
func executeCommand(t *testing.T, dbPath, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--db", dbPath}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func mustExecute(t *testing.T, dbPath string, args ...string) string {
	t.Helper()
	out, err := executeCommand(t, dbPath, "", args...)
	if err != nil {
		t.Fatalf("adaway %s failed: %v", strings.Join(args, " "), err)
	}
	return out
}

func withTerminal(t *testing.T, isTTY bool) {
	t.Helper()
	prev := stdinIsTerminal
	stdinIsTerminal = func() bool { return isTTY }
	t.Cleanup(func() { stdinIsTerminal = prev })
}

func lines(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func TestSourcesEnabled_FreshDatabaseListsDefaultsDescending(t *testing.T) {
	dbPath := testEnv(t)
	got := lines(mustExecute(t, dbPath, "sources", "enabled"))
	if len(got) != 2 || got[0] != mvpsURL || got[1] != hostsFileURL {
		t.Fatalf("unexpected enabled urls: %q", got)
	}
}

func TestSourcesAddListDisable(t *testing.T) {
	dbPath := testEnv(t)

	out := mustExecute(t, dbPath, "sources", "add", "http://a.example/hosts")
	if !strings.Contains(out, "Added hosts source 3: http://a.example/hosts") {
		t.Fatalf("unexpected add output: %q", out)
	}

	list := mustExecute(t, dbPath, "sources", "list")
	for _, want := range []string{"http://a.example/hosts", mvpsURL, hostsFileURL, "ENABLED"} {
		if !strings.Contains(list, want) {
			t.Fatalf("list output missing %q:\n%s", want, list)
		}
	}
	if strings.Index(list, "http://a.example/hosts") > strings.Index(list, mvpsURL) {
		t.Fatalf("list should be ascending by url:\n%s", list)
	}

	searched := mustExecute(t, dbPath, "sources", "list", "--search", "A.EXAMPLE")
	if !strings.Contains(searched, "http://a.example/hosts") || strings.Contains(searched, mvpsURL) {
		t.Fatalf("unexpected search output:\n%s", searched)
	}

	mustExecute(t, dbPath, "sources", "disable", "3")
	for _, u := range lines(mustExecute(t, dbPath, "sources", "enabled")) {
		if u == "http://a.example/hosts" {
			t.Fatalf("disabled source still listed as enabled")
		}
	}
	if !strings.Contains(mustExecute(t, dbPath, "sources", "list"), "http://a.example/hosts") {
		t.Fatalf("disabled source must stay in list")
	}

	mustExecute(t, dbPath, "sources", "enable", "3")
	if got := lines(mustExecute(t, dbPath, "sources", "enabled")); len(got) != 3 {
		t.Fatalf("expected 3 enabled urls after re-enable, got %q", got)
	}
}

func TestSourcesUpdateAndDelete(t *testing.T) {
	dbPath := testEnv(t)
	mustExecute(t, dbPath, "sources", "update", "1", "https://renamed.example/hosts")
	if !strings.Contains(mustExecute(t, dbPath, "sources", "enabled"), "https://renamed.example/hosts") {
		t.Fatalf("update not visible")
	}

	mustExecute(t, dbPath, "sources", "delete", "1")
	got := lines(mustExecute(t, dbPath, "sources", "enabled"))
	if len(got) != 1 {
		t.Fatalf("expected 1 source after delete, got %q", got)
	}

	// Unknown ids are a no-op, not an error.
	mustExecute(t, dbPath, "sources", "delete", "999")
	mustExecute(t, dbPath, "sources", "enable", "999")
}

func TestSources_RejectsBadInput(t *testing.T) {
	dbPath := testEnv(t)
	cases := [][]string{
		{"sources", "add", "not-a-url"},
		{"sources", "add", "file:///etc/hosts"},
		{"sources", "delete", "abc"},
		{"sources", "enable", "0"},
		{"sources", "update", "-1", "http://x.example"},
		{"sources", "add"},
	}
	for _, args := range cases {
		if _, err := executeCommand(t, dbPath, "", args...); err == nil {
			t.Errorf("expected error for %q", args)
		}
	}
}

func TestSourcesClear_Confirmation(t *testing.T) {
	dbPath := testEnv(t)

	withTerminal(t, false)
	if _, err := executeCommand(t, dbPath, "", "sources", "clear"); err == nil {
		t.Fatalf("expected clear without --yes on non-terminal stdin to fail")
	}

	withTerminal(t, true)
	out, err := executeCommand(t, dbPath, "n\n", "sources", "clear")
	if err != nil || !strings.Contains(out, "Aborted.") {
		t.Fatalf("expected abort, got %q (%v)", out, err)
	}
	if got := lines(mustExecute(t, dbPath, "sources", "enabled")); len(got) != 2 {
		t.Fatalf("sources changed after abort: %q", got)
	}

	out, err = executeCommand(t, dbPath, "y\n", "sources", "clear")
	if err != nil || !strings.Contains(out, "Deleted all hosts sources") {
		t.Fatalf("expected clear, got %q (%v)", out, err)
	}
	if out := mustExecute(t, dbPath, "sources", "list"); !strings.Contains(out, "No hosts sources configured.") {
		t.Fatalf("expected empty list, got %q", out)
	}

	// Reopening after clear must not reseed.
	if got := lines(mustExecute(t, dbPath, "sources", "enabled")); len(got) != 0 {
		t.Fatalf("defaults reseeded after clear: %q", got)
	}
}

func TestDBCommands(t *testing.T) {
	dbPath := testEnv(t)

	out := mustExecute(t, dbPath, "db", "migrate")
	if !strings.Contains(out, "Schema at version 1 (policy: additive)") {
		t.Fatalf("unexpected first migrate output: %q", out)
	}
	out = mustExecute(t, dbPath, "db", "migrate")
	if !strings.Contains(out, "Schema already at version 1") {
		t.Fatalf("unexpected second migrate output: %q", out)
	}
	if _, err := executeCommand(t, dbPath, "", "db", "migrate", "--to", "7"); err == nil {
		t.Fatalf("expected error for unknown target version")
	}

	if out := mustExecute(t, dbPath, "db", "version"); !strings.Contains(out, "Schema version 1 (latest 1)") {
		t.Fatalf("unexpected version output: %q", out)
	}

	mustExecute(t, dbPath, "sources", "add", "https://extra.example/hosts")
	mustExecute(t, dbPath, "db", "reset", "--yes")
	got := lines(mustExecute(t, dbPath, "sources", "enabled"))
	if len(got) != 2 || got[0] != mvpsURL {
		t.Fatalf("expected defaults after reset, got %q", got)
	}

	if out := mustExecute(t, dbPath, "db", "maintenance"); !strings.Contains(out, "Database maintenance completed") {
		t.Fatalf("unexpected maintenance output: %q", out)
	}
}

func TestDBVersion_DoesNotInitialize(t *testing.T) {
	dbPath := testEnv(t)
	if out := mustExecute(t, dbPath, "db", "version"); !strings.Contains(out, "Schema version 0 (latest 1)") {
		t.Fatalf("unexpected version output on a fresh file: %q", out)
	}
}

func TestBackupAndRestore(t *testing.T) {
	dbPath := testEnv(t)
	mustExecute(t, dbPath, "sources", "add", "https://mine.example/hosts")
	mustExecute(t, dbPath, "sources", "disable", "3")

	backupFile := filepath.Join(t.TempDir(), "sources.json")
	out := mustExecute(t, dbPath, "backup", backupFile)
	if !strings.Contains(out, backupFile+".zst") || !strings.Contains(out, "3 sources") {
		t.Fatalf("unexpected backup output: %q", out)
	}
	if _, err := os.Stat(backupFile + ".zst"); err != nil {
		t.Fatalf("backup file missing: %v", err)
	}
	before := mustExecute(t, dbPath, "sources", "list")

	mustExecute(t, dbPath, "sources", "clear", "--yes")
	mustExecute(t, dbPath, "sources", "add", "https://other.example/hosts")

	out = mustExecute(t, dbPath, "restore", "--full", backupFile+".zst")
	if !strings.Contains(out, "Restored 3 hosts sources") {
		t.Fatalf("unexpected restore output: %q", out)
	}
	if after := mustExecute(t, dbPath, "sources", "list"); after != before {
		t.Fatalf("full restore did not reproduce rows:\nbefore:\n%s\nafter:\n%s", before, after)
	}

	mustExecute(t, dbPath, "sources", "delete", "3")
	out = mustExecute(t, dbPath, "restore", backupFile+".zst")
	if !strings.Contains(out, "Added 1 new hosts sources") {
		t.Fatalf("unexpected integrate output: %q", out)
	}

	if _, err := executeCommand(t, dbPath, "", "restore", filepath.Join(t.TempDir(), "missing.zst")); err == nil {
		t.Fatalf("expected error for missing backup file")
	}
}

func TestConfigInit_WritesFile(t *testing.T) {
	dbPath := testEnv(t)
	path := filepath.Join(t.TempDir(), "cfg", "adaway.yaml")
	out := mustExecute(t, dbPath, "config", "init", "-o", path)
	if !strings.Contains(out, path) {
		t.Fatalf("unexpected output: %q", out)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	for _, want := range []string{"upgrade_policy: additive", "language: en", dbPath} {
		if !strings.Contains(string(data), want) {
			t.Fatalf("config missing %q:\n%s", want, data)
		}
	}

	// The written file is accepted by --config.
	if _, err := executeCommand(t, dbPath, "", "--config", path, "sources", "enabled"); err != nil {
		t.Fatalf("written config rejected: %v", err)
	}
}

func TestRoot_MissingConfigFileFails(t *testing.T) {
	dbPath := testEnv(t)
	if _, err := executeCommand(t, dbPath, "", "--config", filepath.Join(t.TempDir(), "nope.yaml"), "sources", "list"); err == nil {
		t.Fatalf("expected error for missing --config file")
	}
}

func TestRoot_UnknownUpgradePolicyFails(t *testing.T) {
	dbPath := testEnv(t)
	if _, err := executeCommand(t, dbPath, "", "--upgrade-policy", "yolo", "sources", "list"); err == nil {
		t.Fatalf("expected error for unknown upgrade policy")
	}
}

func TestRoot_LanguageFlag(t *testing.T) {
	dbPath := testEnv(t)
	out := mustExecute(t, dbPath, "--lang", "de", "sources", "add", "https://de.example/hosts")
	if !strings.Contains(out, "Hosts-Quelle 3 hinzugefügt") {
		t.Fatalf("expected German output, got %q", out)
	}
}

func TestRoot_NoArgsLaunchesTUI(t *testing.T) {
	dbPath := testEnv(t)
	var got db.Store
	prev := runTUI
	runTUI = func(ctx context.Context, st db.Store) error {
		got = st
		all, err := st.ListAll(ctx)
		if err != nil || len(all) != 2 {
			t.Errorf("TUI got unexpected store contents: %+v (%v)", all, err)
		}
		return nil
	}
	defer func() { runTUI = prev }()

	mustExecute(t, dbPath)
	if got == nil {
		t.Fatalf("TUI was not started")
	}
	if _, err := got.Count(context.Background()); err == nil {
		t.Fatalf("store should be closed after the TUI exits")
	}
}

func TestParseID(t *testing.T) {
	if id, err := parseID(" 42 "); err != nil || id != 42 {
		t.Fatalf("parseID(42) = %d, %v", id, err)
	}
	for _, s := range []string{"", "x", "0", "-3", "1.5"} {
		if _, err := parseID(s); err == nil {
			t.Errorf("parseID(%q) should fail", s)
		}
	}
}

func TestVersionString(t *testing.T) {
	info := &debug.BuildInfo{
		Main: debug.Module{Version: "v1.4.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef"},
			{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
		},
	}
	if got := versionString(info); got != "v1.4.0 (0123456) built: 2026-01-02T03:04:05Z" {
		t.Fatalf("unexpected version string %q", got)
	}
}
