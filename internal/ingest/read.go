// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ingest

import (
	"encoding/base64"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ReadError reports that a source could not be read.
type ReadError struct {
	Name  string
	Cause error
}

func (e *ReadError) Error() string {
	return "failed to read " + e.Name + ": " + e.Cause.Error()
}

func (e *ReadError) Unwrap() error {
	return e.Cause
}

// IsImage reports whether mediaType is an image type.
func IsImage(mediaType string) bool {
	return strings.HasPrefix(mediaType, "image/")
}

// Read returns the request input for src: a data URI for images, the
// decoded text otherwise.
func Read(src Source) (string, error) {
	if IsImage(src.MediaType()) {
		return readDataURI(src)
	}
	return readText(src)
}

func readDataURI(src Source) (string, error) {
	data, err := readAll(src, nil)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.Grow(len("data:;base64,") + len(src.MediaType()) + base64.StdEncoding.EncodedLen(len(data)))
	b.WriteString("data:")
	b.WriteString(src.MediaType())
	b.WriteString(";base64,")
	b.WriteString(base64.StdEncoding.EncodeToString(data))
	return b.String(), nil
}

// readText decodes as UTF-8, honouring a UTF-8 or UTF-16 byte order mark.
func readText(src Source) (string, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	data, err := readAll(src, decoder)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func readAll(src Source, t transform.Transformer) ([]byte, error) {
	rc, err := src.Open()
	if err != nil {
		return nil, &ReadError{Name: src.Name(), Cause: err}
	}
	defer rc.Close()

	var r io.Reader = rc
	if t != nil {
		r = transform.NewReader(rc, t)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &ReadError{Name: src.Name(), Cause: err}
	}
	return data, nil
}
