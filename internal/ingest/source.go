// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ingest

import (
	"bytes"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// DefaultMediaType is used when nothing better can be determined.
const DefaultMediaType = "application/octet-stream"

// Source is one file selected for upload.
type Source interface {
	// Name is the display name used in the "Uploaded file" message.
	Name() string
	// MediaType is the declared type without parameters, e.g. "image/png".
	MediaType() string
	// Open returns the file content.
	Open() (io.ReadCloser, error)
}

// =============================================================================
// FILE SOURCE
// =============================================================================

type fileSource struct {
	path      string
	mediaType string
}

// FromPath returns a Source for a file on disk. The media type is sniffed
// from content, falling back to the extension. A missing file is not an
// error here; it surfaces from Read.
func FromPath(path string) Source {
	return &fileSource{path: path, mediaType: detect(path)}
}

func (f *fileSource) Name() string      { return filepath.Base(f.path) }
func (f *fileSource) MediaType() string { return f.mediaType }

func (f *fileSource) Open() (io.ReadCloser, error) {
	return os.Open(f.path)
}

func detect(path string) string {
	if m, err := mimetype.DetectFile(path); err == nil {
		if t := baseType(m.String()); t != DefaultMediaType {
			return t
		}
	}
	if t := mime.TypeByExtension(filepath.Ext(path)); t != "" {
		return baseType(t)
	}
	return DefaultMediaType
}

func baseType(t string) string {
	if i := strings.IndexByte(t, ';'); i >= 0 {
		t = t[:i]
	}
	return strings.ToLower(strings.TrimSpace(t))
}

// =============================================================================
// IN-MEMORY SOURCES
// =============================================================================

type funcSource struct {
	name      string
	mediaType string
	open      func() (io.ReadCloser, error)
}

// NewSource builds a Source from an open function. Used for piped input
// and tests.
func NewSource(name, mediaType string, open func() (io.ReadCloser, error)) Source {
	if mediaType == "" {
		mediaType = DefaultMediaType
	}
	return &funcSource{name: name, mediaType: baseType(mediaType), open: open}
}

// BytesSource returns a Source over data. An empty mediaType is sniffed.
func BytesSource(name, mediaType string, data []byte) Source {
	if mediaType == "" {
		mediaType = mimetype.Detect(data).String()
	}
	return NewSource(name, mediaType, func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(data)), nil
	})
}

func (s *funcSource) Name() string                 { return s.name }
func (s *funcSource) MediaType() string            { return s.mediaType }
func (s *funcSource) Open() (io.ReadCloser, error) { return s.open() }

// =============================================================================
// PATH EXPANSION
// =============================================================================

// ExpandPaths resolves a leading ~ and glob patterns in args, preserving
// argument order. A pattern with no matches is kept literally so that the
// missing file is reported when it is read.
func ExpandPaths(args []string) []string {
	var out []string
	for _, arg := range args {
		arg = expandHome(arg)
		if !strings.ContainsAny(arg, "*?[") {
			out = append(out, arg)
			continue
		}
		matches, err := filepath.Glob(arg)
		if err != nil || len(matches) == 0 {
			out = append(out, arg)
			continue
		}
		out = append(out, matches...)
	}
	return out
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
