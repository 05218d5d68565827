// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gemini

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/plainlaw/internal/prompt"
)

// =============================================================================
// HELPERS
// =============================================================================

type captured struct {
	method      string
	key         string
	contentType string
	body        GenerateRequest
	hits        int
}

func newServer(t *testing.T, status int, respBody string) (*httptest.Server, *captured) {
	t.Helper()
	c := &captured{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.hits++
		c.method = r.Method
		c.key = r.URL.Query().Get("key")
		c.contentType = r.Header.Get("Content-Type")
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &c.body)
		w.WriteHeader(status)
		_, _ = io.WriteString(w, respBody)
	}))
	t.Cleanup(srv.Close)
	return srv, c
}

func newTestClient(endpoint, key string) *Client {
	return NewClientWithConfig(&ClientConfig{Endpoint: endpoint, APIKey: key})
}

const okBody = `{"candidates":[{"content":{"parts":[{"text":"You must pay rent on time."}]},"finishReason":"STOP"}]}`

// =============================================================================
// GENERATE TESTS
// =============================================================================

func TestGenerate_Success(t *testing.T) {
	srv, got := newServer(t, http.StatusOK, okBody)
	client := newTestClient(srv.URL, "secret")

	text, err := client.Generate(context.Background(), "Rent is due forthwith.")
	require.NoError(t, err)
	assert.Equal(t, "You must pay rent on time.", text)

	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "secret", got.key)
	assert.Equal(t, "application/json", got.contentType)
	require.Len(t, got.body.Contents, 1)
	require.Len(t, got.body.Contents[0].Parts, 1)
	assert.Equal(t, prompt.Compose("Rent is due forthwith."), got.body.Contents[0].Parts[0].Text)
	assert.Equal(t, GenerationConfig{Temperature: 0.3, TopK: 40, TopP: 0.95, MaxOutputTokens: 2048}, got.body.GenerationConfig)
	assert.EqualValues(t, 1, client.Calls())
}

func TestGenerate_NotConfigured(t *testing.T) {
	for _, key := range []string{"", "   ", PlaceholderKey} {
		srv, got := newServer(t, http.StatusOK, okBody)
		client := newTestClient(srv.URL, key)

		_, err := client.Generate(context.Background(), "text")
		require.Error(t, err, "key %q", key)
		assert.True(t, IsNotConfigured(err))
		assert.True(t, errors.Is(err, ErrNotConfigured))
		assert.Zero(t, got.hits, "no request expected for key %q", key)
		assert.Zero(t, client.Calls())
	}
}

func TestGenerate_NonSuccessStatus(t *testing.T) {
	tests := []struct {
		status int
		want   string
	}{
		{http.StatusBadRequest, "API request failed: 400 Bad Request"},
		{http.StatusForbidden, "API request failed: 403 Forbidden"},
		{http.StatusTooManyRequests, "API request failed: 429 Too Many Requests"},
		{http.StatusInternalServerError, "API request failed: 500 Internal Server Error"},
	}

	for _, tc := range tests {
		t.Run(http.StatusText(tc.status), func(t *testing.T) {
			srv, got := newServer(t, tc.status, `{"error":{"message":"nope"}}`)
			client := newTestClient(srv.URL, "secret")

			_, err := client.Generate(context.Background(), "text")
			require.Error(t, err)
			assert.True(t, IsTransport(err))
			assert.Equal(t, tc.status, StatusCode(err))
			assert.Equal(t, tc.want, err.Error())
			assert.Equal(t, 1, got.hits, "no retry expected")
		})
	}
}

// rawStatusServer answers every request with statusLine verbatim so the
// reason phrase can differ from the standard text.
func rawStatusServer(t *testing.T, statusLine string) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go func(conn net.Conn) {
				defer conn.Close()
				req, err := http.ReadRequest(bufio.NewReader(conn))
				if err != nil {
					return
				}
				_, _ = io.Copy(io.Discard, req.Body)
				_, _ = io.WriteString(conn, statusLine+"\r\nContent-Length: 0\r\nConnection: close\r\n\r\n")
			}(conn)
		}
	}()
	return "http://" + ln.Addr().String() + "/generate"
}

func TestGenerate_ServerReasonPhrase(t *testing.T) {
	tests := []struct {
		statusLine string
		want       string
	}{
		{"HTTP/1.1 429 Quota Exhausted For Project", "API request failed: 429 Quota Exhausted For Project"},
		{"HTTP/1.1 503", "API request failed: 503 Service Unavailable"},
	}

	for _, tc := range tests {
		t.Run(tc.statusLine, func(t *testing.T) {
			client := newTestClient(rawStatusServer(t, tc.statusLine), "secret")

			_, err := client.Generate(context.Background(), "text")
			require.Error(t, err)
			assert.True(t, IsTransport(err))
			assert.Equal(t, tc.want, err.Error())

			var clientErr *ClientError
			require.True(t, errors.As(err, &clientErr))
			assert.Equal(t, strings.TrimPrefix(tc.want, "API request failed: "+strings.Fields(tc.statusLine)[1]+" "), clientErr.Status)
		})
	}
}

func TestGenerate_InvalidEndpoint(t *testing.T) {
	client := newTestClient("://no-scheme", "secret")

	_, err := client.Generate(context.Background(), "text")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidEndpoint))
	assert.False(t, errors.Is(err, ErrNotConfigured))
	assert.False(t, IsNotConfigured(err))
	assert.Zero(t, client.Calls())
}

func TestGenerate_MalformedBody(t *testing.T) {
	tests := map[string]string{
		"missing candidates": `{}`,
		"empty candidates":   `{"candidates":[]}`,
		"missing content":    `{"candidates":[{"finishReason":"SAFETY"}]}`,
		"empty parts":        `{"candidates":[{"content":{"parts":[]}}]}`,
		"missing text":       `{"candidates":[{"content":{"parts":[{}]}}]}`,
		"not json":           `<html>oops</html>`,
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			srv, _ := newServer(t, http.StatusOK, body)
			client := newTestClient(srv.URL, "secret")

			_, err := client.Generate(context.Background(), "text")
			require.Error(t, err)
			assert.True(t, IsResponseFormat(err))
			assert.True(t, errors.Is(err, ErrInvalidResponse))
			assert.Contains(t, err.Error(), "Invalid API response format")
		})
	}
}

func TestGenerate_EmptyTextIsValid(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `{"candidates":[{"content":{"parts":[{"text":""}]}}]}`)
	client := newTestClient(srv.URL, "secret")

	text, err := client.Generate(context.Background(), "text")
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestGenerate_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := srv.URL
	srv.Close()

	client := newTestClient(endpoint, "topsecret")
	_, err := client.Generate(context.Background(), "text")
	require.Error(t, err)
	assert.True(t, IsTransport(err))
	assert.Zero(t, StatusCode(err))
	assert.NotContains(t, err.Error(), "topsecret")
	assert.EqualValues(t, 1, client.Calls())
}

func TestGenerate_ContextCanceled(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, okBody)
	client := newTestClient(srv.URL, "secret")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Generate(ctx, "text")
	require.Error(t, err)
	assert.True(t, IsTransport(err))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestGenerate_PreservesEndpointQuery(t *testing.T) {
	var rawQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		_, _ = io.WriteString(w, okBody)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL+"?alt=json", "k")
	_, err := client.Generate(context.Background(), "x")
	require.NoError(t, err)
	assert.True(t, strings.Contains(rawQuery, "alt=json") && strings.Contains(rawQuery, "key=k"), rawQuery)
}

func TestSetAPIKey(t *testing.T) {
	srv, got := newServer(t, http.StatusOK, okBody)
	client := newTestClient(srv.URL, "")
	assert.False(t, client.Configured())

	client.SetAPIKey("rotated")
	assert.True(t, client.Configured())

	_, err := client.Generate(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, "rotated", got.key)
}

// =============================================================================
// CONFIG TESTS
// =============================================================================

func TestNewClientWithConfig_Defaults(t *testing.T) {
	client := NewClientWithConfig(nil)
	assert.Equal(t, DefaultEndpoint, client.Endpoint())
	assert.False(t, client.Configured())
	assert.Zero(t, client.httpClient.Timeout)
}

func TestErrorType_String(t *testing.T) {
	assert.Equal(t, "Configuration", ErrTypeConfiguration.String())
	assert.Equal(t, "Transport", ErrTypeTransport.String())
	assert.Equal(t, "ResponseFormat", ErrTypeResponseFormat.String())
	assert.Equal(t, "Unknown", ErrTypeUnknown.String())
}
