// Copyright (c) 2026 AdAway Team
// AdAway - hosts sources store
// This source code is licensed under the MIT license found in the LICENSE file.

// Package db contains shared database errors and helpers.
package db

import (
	"errors"
	"strings"
)

// ErrDuplicate is returned when attempting to insert a record that already exists.
var ErrDuplicate = errors.New("duplicate record")

// ErrSchemaTooNew is returned when the database was written by a newer
// version of AdAway than the one opening it.
var ErrSchemaTooNew = errors.New("database schema is newer than this build supports")

// ErrClosed is returned by operations on a store after Close.
var ErrClosed = errors.New("store is closed")

// MapDBError inspects low-level driver errors and maps constraint
// violations to package-level sentinel errors (like ErrDuplicate). The
// mapping is string based so callers never need the driver's error types.
func MapDBError(err error) error {
	if err == nil {
		return nil
	}
	le := strings.ToLower(err.Error())
	// SQLITE_CONSTRAINT_UNIQUE / SQLITE_CONSTRAINT_PRIMARYKEY
	if strings.Contains(le, "unique constraint") || strings.Contains(le, "constraint failed: unique") ||
		strings.Contains(le, "primary key") || strings.Contains(le, "(1555)") || strings.Contains(le, "(2067)") {
		return ErrDuplicate
	}
	return err
}
