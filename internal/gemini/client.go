// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/jeranaias/plainlaw/internal/logger"
	"github.com/jeranaias/plainlaw/internal/prompt"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents a failed generation.
type ClientError struct {
	Type    ErrorType
	Message string

	// StatusCode and Status are set for Transport errors that received a
	// response. StatusCode is 0 when the request never got one.
	StatusCode int
	Status     string

	Cause error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// Is matches sentinel errors by type and message.
func (e *ClientError) Is(target error) bool {
	t, ok := target.(*ClientError)
	if !ok {
		return false
	}
	switch t {
	case ErrNotConfigured, ErrInvalidEndpoint, ErrInvalidResponse:
		return t.Type == e.Type && t.Message == e.Message
	}
	return false
}

// ErrorType categorizes client errors.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeConfiguration
	ErrTypeTransport
	ErrTypeResponseFormat
)

// String returns the error type name.
func (t ErrorType) String() string {
	switch t {
	case ErrTypeConfiguration:
		return "Configuration"
	case ErrTypeTransport:
		return "Transport"
	case ErrTypeResponseFormat:
		return "ResponseFormat"
	default:
		return "Unknown"
	}
}

// PlaceholderKey is the value shipped in sample configs. It counts as unset.
const PlaceholderKey = "YOUR_API_KEY_HERE"

// Sentinel errors for easy checking.
var (
	ErrNotConfigured = &ClientError{
		Type:    ErrTypeConfiguration,
		Message: "API key not configured: set PLAINLAW_API_KEY or [api] key in config.toml",
	}
	ErrInvalidEndpoint = &ClientError{
		Type:    ErrTypeConfiguration,
		Message: "invalid endpoint",
	}
	ErrInvalidResponse = &ClientError{
		Type:    ErrTypeResponseFormat,
		Message: "Invalid API response format",
	}
)

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// DefaultEndpoint is the generateContent URL used when none is configured.
const DefaultEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.0-flash:generateContent"

// ClientConfig holds configuration options for the client.
type ClientConfig struct {
	// Endpoint is the full generateContent URL.
	Endpoint string

	// APIKey is sent as the "key" query parameter.
	APIKey string

	// HTTPClient overrides the transport. Its Timeout should stay zero.
	HTTPClient *http.Client
}

// DefaultConfig returns the default client configuration. The key is empty.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		Endpoint: DefaultEndpoint,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client issues generateContent requests. Safe for concurrent use.
type Client struct {
	endpoint   string
	httpClient *http.Client
	log        *log.Logger

	mu     sync.RWMutex
	apiKey string

	calls atomic.Int64
}

// NewClient creates a client with the default endpoint and no key.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a client from config, filling zero values.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	endpoint := config.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &Client{
		endpoint:   endpoint,
		httpClient: httpClient,
		apiKey:     config.APIKey,
		log:        logger.NewStyledLogger("gemini"),
	}
}

// SetAPIKey replaces the credential used by subsequent calls.
func (c *Client) SetAPIKey(key string) {
	c.mu.Lock()
	c.apiKey = key
	c.mu.Unlock()
}

// Configured reports whether a usable credential is set.
func (c *Client) Configured() bool {
	return usableKey(c.key())
}

// Endpoint returns the configured endpoint URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Calls returns the number of HTTP requests issued so far.
func (c *Client) Calls() int64 {
	return c.calls.Load()
}

func (c *Client) key() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.apiKey
}

func usableKey(key string) bool {
	key = strings.TrimSpace(key)
	return key != "" && key != PlaceholderKey
}

// =============================================================================
// GENERATE
// =============================================================================

// Generate asks the endpoint to simplify input and returns the reply text
// verbatim. It makes at most one HTTP request.
func (c *Client) Generate(ctx context.Context, input string) (string, error) {
	key := c.key()
	if !usableKey(key) {
		return "", ErrNotConfigured
	}

	body, err := json.Marshal(NewGenerateRequest(prompt.Compose(input)))
	if err != nil {
		return "", &ClientError{Type: ErrTypeUnknown, Message: "failed to marshal request", Cause: err}
	}

	reqURL, err := withKey(c.endpoint, key)
	if err != nil {
		return "", &ClientError{Type: ErrTypeConfiguration, Message: ErrInvalidEndpoint.Message, Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return "", &ClientError{Type: ErrTypeTransport, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	c.calls.Add(1)
	c.log.Debug("sending request", "bytes", len(body))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("request failed", "err", redact(err, key))
		return "", &ClientError{Type: ErrTypeTransport, Message: "API request failed", Cause: redact(err, key)}
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusText := reasonPhrase(resp)
		c.log.Warn("non-success status", "status", resp.StatusCode)
		return "", &ClientError{
			Type:       ErrTypeTransport,
			Message:    strings.TrimSpace(fmt.Sprintf("API request failed: %d %s", resp.StatusCode, statusText)),
			StatusCode: resp.StatusCode,
			Status:     statusText,
		}
	}

	var result GenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", &ClientError{Type: ErrTypeResponseFormat, Message: ErrInvalidResponse.Message, Cause: err}
	}

	text, ok := result.FirstText()
	if !ok {
		return "", ErrInvalidResponse
	}

	c.log.Debug("response received", "chars", len(text))
	return text, nil
}

// reasonPhrase returns the status text the server sent, falling back to
// the standard text for the code.
func reasonPhrase(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		return http.StatusText(resp.StatusCode)
	}
	return text
}

// withKey appends the key query parameter, keeping any existing query.
func withKey(endpoint, key string) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("key", key)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// redact strips the credential from transport errors, which embed the URL.
func redact(err error, key string) error {
	if err == nil || key == "" {
		return err
	}
	msg := err.Error()
	if !strings.Contains(msg, key) {
		return err
	}
	return &redactedError{msg: strings.ReplaceAll(msg, key, "REDACTED"), err: err}
}

type redactedError struct {
	msg string
	err error
}

func (e *redactedError) Error() string { return e.msg }
func (e *redactedError) Unwrap() error { return e.err }

// =============================================================================
// UTILITY METHODS
// =============================================================================

// IsNotConfigured checks if an error is a missing-credential error.
func IsNotConfigured(err error) bool {
	return errors.Is(err, ErrNotConfigured)
}

// IsTransport checks if an error is a transport or HTTP status error.
func IsTransport(err error) bool {
	return hasType(err, ErrTypeTransport)
}

// IsResponseFormat checks if an error is a malformed-response error.
func IsResponseFormat(err error) bool {
	return hasType(err, ErrTypeResponseFormat)
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.StatusCode
	}
	return 0
}

func hasType(err error, t ErrorType) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == t
	}
	return false
}

func drainAndClose(r io.ReadCloser) {
	io.Copy(io.Discard, r)
	r.Close()
}
