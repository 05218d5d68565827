// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Persisted keys.
const (
	KeyTheme       = "theme"
	KeyChatHistory = "chatHistory"
)

// =============================================================================
// ERRORS
// =============================================================================

// ErrNotFound is returned by Get when the key has no value.
var ErrNotFound = &StoreError{Message: "key not found"}

// StoreError represents a storage failure.
// It can be compared using errors.Is.
type StoreError struct {
	Message string
	Key     string
	Cause   error
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	msg := e.Message
	if e.Key != "" {
		msg += " (" + e.Key + ")"
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *StoreError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is support for comparing storage errors.
func (e *StoreError) Is(target error) bool {
	t, ok := target.(*StoreError)
	if !ok {
		return false
	}
	return e.Message == t.Message
}

func notFound(key string) error {
	return &StoreError{Message: ErrNotFound.Message, Key: key}
}

// =============================================================================
// KV INTERFACE
// =============================================================================

// KV is a string-keyed value store. Implementations are safe for
// concurrent use.
type KV interface {
	// Get returns the value for key, or an error matching ErrNotFound.
	Get(key string) (string, error)
	// Set stores value under key, replacing any previous value.
	Set(key, value string) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error
	// Close releases the backend.
	Close() error
}

// Backend names accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

// DefaultDir returns ~/.plainlaw.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".plainlaw"
	}
	return filepath.Join(home, ".plainlaw")
}

// DefaultPath returns the default location for backend.
func DefaultPath(backend string) string {
	switch backend {
	case BackendFile:
		return filepath.Join(DefaultDir(), "state.json")
	default:
		return filepath.Join(DefaultDir(), "state.db")
	}
}

// Open opens the named backend at path. An empty path selects
// DefaultPath(backend); an empty backend selects sqlite.
func Open(backend, path string) (KV, error) {
	backend = strings.ToLower(strings.TrimSpace(backend))
	if backend == "" {
		backend = BackendSQLite
	}
	if path == "" {
		path = DefaultPath(backend)
	}

	switch backend {
	case BackendSQLite:
		return OpenSQLite(path)
	case BackendFile:
		return OpenFile(path)
	case BackendMemory:
		return NewMemoryKV(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q (want sqlite, file or memory)", backend)
	}
}
