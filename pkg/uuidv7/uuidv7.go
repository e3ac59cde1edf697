// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package uuidv7 wraps google/uuid to generate time-ordered UUIDv7 values.
//
// Generation records use these as identifiers: they are derived from the
// creation time and unique within (and across) process runs.
package uuidv7

import (
	"time"

	"github.com/google/uuid"
)

// New generates a new UUIDv7 string.
//
// # Safety
//
// It panics only if the OS random source is unavailable.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		panic("uuidv7: failed to generate UUID: " + err.Error())
	}

	return id.String()
}

// Time extracts the creation time embedded in a UUIDv7 string.
// It returns false for malformed or non-v7 values.
func Time(id string) (time.Time, bool) {
	parsed, err := uuid.Parse(id)
	if err != nil || parsed.Version() != 7 {
		return time.Time{}, false
	}
	sec, nsec := parsed.Time().UnixTime()
	return time.Unix(sec, nsec), true
}

// Valid reports whether id is a well-formed UUID string.
func Valid(id string) bool {
	return uuid.Validate(id) == nil
}
