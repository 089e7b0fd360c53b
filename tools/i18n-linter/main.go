// Copyright (c) 2026 AdAway Team
// AdAway - hosts sources store
// This source code is licensed under the MIT license found in the LICENSE file.

// i18n-linter checks translation keys for consistency. It scans the Go
// sources for i18n.T calls and compares them with the YAML locale files.
//
// Usage:
//
//	go run ./tools/i18n-linter
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	localesDir    = "internal/i18n/locales"
	primaryLocale = "en.yaml"
	projectRoot   = "."
)

var (
	// i18n.T("some.key", ...)
	callRe = regexp.MustCompile(`i18n\.T\("([^"]+)"`)
	// Keys selected at runtime, e.g. msg := "backup.restored".
	literalKeyRe = regexp.MustCompile(`"([a-z]+\.[a-z_]+)"`)
)

// report is the outcome of one lint run.
type report struct {
	// Unknown keys are passed to i18n.T but absent from the primary locale.
	Unknown []string
	// Orphaned keys are in the primary locale but never referenced.
	Orphaned []string
	// Missing maps a secondary locale file to the primary keys it lacks.
	Missing map[string][]string
}

func (r report) failed() bool {
	return len(r.Unknown) > 0 || len(r.Missing) > 0
}

func main() {
	r, err := lint(projectRoot, localesDir, primaryLocale)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}
	printReport(os.Stdout, r)
	if r.failed() {
		os.Exit(1)
	}
}

func lint(root, locales, primary string) (report, error) {
	r := report{Missing: map[string][]string{}}

	called, referenced, err := findUsedKeys(root)
	if err != nil {
		return r, fmt.Errorf("scan sources: %w", err)
	}
	primaryKeys, err := loadKeysFromLocale(filepath.Join(locales, primary))
	if err != nil {
		return r, fmt.Errorf("load primary locale %s: %w", primary, err)
	}

	for key := range called {
		if _, ok := primaryKeys[key]; !ok {
			r.Unknown = append(r.Unknown, key)
		}
	}
	for key := range primaryKeys {
		if _, ok := referenced[key]; !ok {
			r.Orphaned = append(r.Orphaned, key)
		}
	}
	sort.Strings(r.Unknown)
	sort.Strings(r.Orphaned)

	files, err := filepath.Glob(filepath.Join(locales, "*.yaml"))
	if err != nil {
		return r, err
	}
	for _, file := range files {
		if filepath.Base(file) == primary {
			continue
		}
		keys, err := loadKeysFromLocale(file)
		if err != nil {
			return r, fmt.Errorf("load %s: %w", file, err)
		}
		var missing []string
		for key := range primaryKeys {
			if _, ok := keys[key]; !ok {
				missing = append(missing, key)
			}
		}
		if len(missing) > 0 {
			sort.Strings(missing)
			r.Missing[filepath.Base(file)] = missing
		}
	}
	return r, nil
}

func printReport(w io.Writer, r report) {
	section := func(title string, items []string, prefix string) {
		fmt.Fprintf(w, "--- %s ---\n", title)
		if len(items) == 0 {
			fmt.Fprintln(w, "  ✨ None found.")
		}
		for _, it := range items {
			fmt.Fprintf(w, "  - %s: %s\n", prefix, it)
		}
		fmt.Fprintln(w)
	}
	section("Keys used in code but not translated", r.Unknown, "Unknown")
	section("Keys translated but never used", r.Orphaned, "Orphaned")

	var files []string
	for f := range r.Missing {
		files = append(files, f)
	}
	sort.Strings(files)
	for _, f := range files {
		section("Missing in "+f, r.Missing[f], "Missing")
	}

	switch {
	case r.failed():
		fmt.Fprintln(w, "❌ Found issues that need to be addressed.")
	case len(r.Orphaned) > 0:
		fmt.Fprintln(w, "⚠️  Found orphaned keys. Please consider removing them.")
	default:
		fmt.Fprintln(w, "✅ All translation files are consistent!")
	}
}

// findUsedKeys returns the keys passed directly to i18n.T, and every
// key-shaped string literal, in non-test Go files outside tools/.
func findUsedKeys(root string) (called, referenced map[string]struct{}, err error) {
	called = map[string]struct{}{}
	referenced = map[string]struct{}{}
	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			switch info.Name() {
			case "tools", "_examples", ".git":
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		for _, m := range callRe.FindAllStringSubmatch(string(content), -1) {
			called[m[1]] = struct{}{}
			referenced[m[1]] = struct{}{}
		}
		for _, m := range literalKeyRe.FindAllStringSubmatch(string(content), -1) {
			referenced[m[1]] = struct{}{}
		}
		return nil
	})
	return called, referenced, err
}

// loadKeysFromLocale reads a YAML file and returns a flat map of its keys.
func loadKeysFromLocale(path string) (map[string]struct{}, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var data map[string]interface{}
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, err
	}
	keys := make(map[string]struct{})
	flattenYAML("", data, keys)
	return keys, nil
}

// flattenYAML converts a nested map into dot-separated keys.
func flattenYAML(prefix string, node interface{}, keys map[string]struct{}) {
	switch v := node.(type) {
	case map[string]interface{}:
		for k, val := range v {
			next := k
			if prefix != "" {
				next = prefix + "." + k
			}
			flattenYAML(next, val, keys)
		}
	default:
		if prefix != "" {
			keys[prefix] = struct{}{}
		}
	}
}
