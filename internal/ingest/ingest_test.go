// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ingest

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0600))
	return path
}

// =============================================================================
// MEDIA TYPE
// =============================================================================

func TestFromPath_MediaType(t *testing.T) {
	dir := t.TempDir()

	txt := FromPath(writeFile(t, dir, "lease.txt", []byte("The Tenant shall pay rent.")))
	assert.Equal(t, "lease.txt", txt.Name())
	assert.Equal(t, "text/plain", txt.MediaType())

	img := FromPath(writeFile(t, dir, "scan.bin", pngHeader))
	assert.Equal(t, "image/png", img.MediaType())
	assert.True(t, IsImage(img.MediaType()))

	missing := FromPath(filepath.Join(dir, "gone.jpg"))
	assert.Equal(t, "image/jpeg", missing.MediaType(), "falls back to extension")

	unknown := FromPath(filepath.Join(dir, "gone"))
	assert.Equal(t, DefaultMediaType, unknown.MediaType())
}

// =============================================================================
// READ
// =============================================================================

func TestRead_Text(t *testing.T) {
	src := BytesSource("a.txt", "text/plain", []byte("Clause 1.\nClause 2."))
	got, err := Read(src)
	require.NoError(t, err)
	assert.Equal(t, "Clause 1.\nClause 2.", got)
}

func TestRead_TextBOM(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"utf8 bom stripped", []byte("\xef\xbb\xbfWHEREAS"), "WHEREAS"},
		{"utf16le", []byte{0xff, 0xfe, 'O', 0, 'K', 0}, "OK"},
		{"utf16be", []byte{0xfe, 0xff, 0, 'O', 0, 'K'}, "OK"},
		{"no bom", []byte("§ 4(b)"), "§ 4(b)"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Read(BytesSource("f", "text/plain", tc.data))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRead_ImageDataURI(t *testing.T) {
	got, err := Read(BytesSource("x.png", "image/png", []byte{1, 2, 3}))
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,AQID", got)
}

func TestRead_ImageFromDisk(t *testing.T) {
	path := writeFile(t, t.TempDir(), "page.png", pngHeader)
	got, err := Read(FromPath(path))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, "data:image/png;base64,iVBORw0KGgo"), got)
}

func TestRead_Errors(t *testing.T) {
	_, err := Read(FromPath(filepath.Join(t.TempDir(), "missing.txt")))
	var readErr *ReadError
	require.True(t, errors.As(err, &readErr))
	assert.Equal(t, "missing.txt", readErr.Name)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	boom := errors.New("device not ready")
	failing := NewSource("f2.txt", "text/plain", func() (io.ReadCloser, error) {
		return io.NopCloser(&failingReader{err: boom}), nil
	})
	_, err = Read(failing)
	require.True(t, errors.As(err, &readErr))
	assert.True(t, errors.Is(err, boom))
	assert.Contains(t, err.Error(), "failed to read f2.txt")
}

type failingReader struct{ err error }

func (r *failingReader) Read([]byte) (int, error) { return 0, r.err }

// =============================================================================
// PATH EXPANSION
// =============================================================================

func TestExpandPaths(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.txt", nil)
	writeFile(t, dir, "a.txt", nil)
	writeFile(t, dir, "c.md", nil)

	got := ExpandPaths([]string{
		filepath.Join(dir, "c.md"),
		filepath.Join(dir, "*.txt"),
		filepath.Join(dir, "*.pdf"),
	})
	assert.Equal(t, []string{
		filepath.Join(dir, "c.md"),
		filepath.Join(dir, "a.txt"),
		filepath.Join(dir, "b.txt"),
		filepath.Join(dir, "*.pdf"),
	}, got)
}
