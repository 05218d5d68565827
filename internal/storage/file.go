// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"encoding/json"
	"errors"
	"os"
	"sync"

	"github.com/jeranaias/plainlaw/internal/util"
)

// FileKV keeps every key in one JSON object on disk. Each write replaces
// the file atomically.
type FileKV struct {
	mu     sync.Mutex
	path   string
	values map[string]string
}

// OpenFile loads the document at path. A missing file is an empty store.
func OpenFile(path string) (*FileKV, error) {
	f := &FileKV{path: path, values: make(map[string]string)}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return f, nil
	}
	if err != nil {
		return nil, &StoreError{Message: "open failed", Cause: err}
	}
	if len(data) == 0 {
		return f, nil
	}
	if err := json.Unmarshal(data, &f.values); err != nil {
		return nil, &StoreError{Message: "corrupt state file", Cause: err}
	}
	return f, nil
}

// Path returns the document path.
func (f *FileKV) Path() string {
	return f.path
}

// Get implements KV.
func (f *FileKV) Get(key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.values[key]
	if !ok {
		return "", notFound(key)
	}
	return v, nil
}

// Set implements KV.
func (f *FileKV) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	prev, had := f.values[key]
	f.values[key] = value
	if err := f.flush(); err != nil {
		if had {
			f.values[key] = prev
		} else {
			delete(f.values, key)
		}
		return &StoreError{Message: "write failed", Key: key, Cause: err}
	}
	return nil
}

// Delete implements KV.
func (f *FileKV) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	prev, had := f.values[key]
	if !had {
		return nil
	}
	delete(f.values, key)
	if err := f.flush(); err != nil {
		f.values[key] = prev
		return &StoreError{Message: "delete failed", Key: key, Cause: err}
	}
	return nil
}

// Close implements KV.
func (f *FileKV) Close() error {
	return nil
}

func (f *FileKV) flush() error {
	data, err := json.MarshalIndent(f.values, "", "  ")
	if err != nil {
		return err
	}
	return util.AtomicWriteFile(f.path, data, 0600)
}
