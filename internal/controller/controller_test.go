// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package controller

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/plainlaw/internal/gemini"
	"github.com/jeranaias/plainlaw/internal/ingest"
	"github.com/jeranaias/plainlaw/internal/model"
	"github.com/jeranaias/plainlaw/internal/session"
	"github.com/jeranaias/plainlaw/internal/storage"
)

// =============================================================================
// HELPERS
// =============================================================================

type fakeGenerator struct {
	mu     sync.Mutex
	inputs []string
	reply  func(input string) (string, error)
}

func (f *fakeGenerator) Generate(_ context.Context, input string) (string, error) {
	f.mu.Lock()
	f.inputs = append(f.inputs, input)
	f.mu.Unlock()
	if f.reply == nil {
		return "plain: " + input, nil
	}
	return f.reply(input)
}

func (f *fakeGenerator) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.inputs)
}

func newController(t *testing.T, gen Generator) (*Controller, *session.State, *storage.MemoryKV) {
	t.Helper()
	kv := storage.NewMemoryKV()
	st := session.Load(kv, model.ThemeLight)
	return New(gen, st), st, kv
}

func geminiServer(t *testing.T, status int, body string) (*httptest.Server, *atomic.Int64) {
	t.Helper()
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func texts(msgs []model.Message) []string {
	out := make([]string, len(msgs))
	for i, m := range msgs {
		prefix := "bot:"
		if m.IsUser {
			prefix = "user:"
		}
		out[i] = prefix + m.Text
	}
	return out
}

// =============================================================================
// SUBMIT
// =============================================================================

func TestSubmit_AppendsUserThenBot(t *testing.T) {
	gen := &fakeGenerator{}
	ctl, _, _ := newController(t, gen)

	reply, err := ctl.Submit(context.Background(), "  The party of the first part.  ")
	require.NoError(t, err)
	assert.False(t, reply.IsUser)

	assert.Equal(t, []string{
		"user:The party of the first part.",
		"bot:plain: The party of the first part.",
	}, texts(ctl.Messages()))
	assert.Equal(t, PhaseIdle, ctl.Phase())
}

func TestSubmit_EmptyInput(t *testing.T) {
	for _, in := range []string{"", "   ", "\n\t "} {
		gen := &fakeGenerator{}
		ctl, _, kv := newController(t, gen)

		_, err := ctl.Submit(context.Background(), in)
		assert.ErrorIs(t, err, ErrEmptyInput)
		assert.Empty(t, ctl.Messages())
		assert.Zero(t, gen.calls())
		assert.False(t, kv.Has(storage.KeyChatHistory))
		assert.Equal(t, PhaseIdle, ctl.Phase())
	}
}

func TestSubmit_MissingCredential_NoNetwork(t *testing.T) {
	for _, key := range []string{"", gemini.PlaceholderKey} {
		srv, hits := geminiServer(t, http.StatusOK, `{}`)
		client := gemini.NewClientWithConfig(&gemini.ClientConfig{Endpoint: srv.URL, APIKey: key})
		ctl, _, _ := newController(t, client)

		reply, err := ctl.Submit(context.Background(), "Indemnify and hold harmless.")
		require.NoError(t, err)
		assert.Contains(t, reply.Text, "API key not configured")
		assert.True(t, strings.HasPrefix(reply.Text, "Sorry, I encountered an error: "))
		assert.Zero(t, hits.Load())
		assert.Zero(t, client.Calls())
		assert.Len(t, ctl.Messages(), 2)
	}
}

func TestSubmit_NonSuccessStatus(t *testing.T) {
	srv, hits := geminiServer(t, http.StatusServiceUnavailable, `overloaded`)
	client := gemini.NewClientWithConfig(&gemini.ClientConfig{Endpoint: srv.URL, APIKey: "k"})
	ctl, _, _ := newController(t, client)

	var reply model.Message
	require.NotPanics(t, func() {
		var err error
		reply, err = ctl.Submit(context.Background(), "text")
		require.NoError(t, err)
	})
	assert.Equal(t, "Sorry, I encountered an error: API request failed: 503 Service Unavailable. Please try again.", reply.Text)
	assert.EqualValues(t, 1, hits.Load())
	assert.Equal(t, PhaseIdle, ctl.Phase())
}

func TestSubmit_MalformedResponse(t *testing.T) {
	srv, _ := geminiServer(t, http.StatusOK, `{"promptFeedback":{}}`)
	client := gemini.NewClientWithConfig(&gemini.ClientConfig{Endpoint: srv.URL, APIKey: "k"})
	ctl, _, _ := newController(t, client)

	reply, err := ctl.Submit(context.Background(), "text")
	require.NoError(t, err)
	assert.Contains(t, reply.Text, "Invalid API response format")
}

func TestSubmit_Success_RealClient(t *testing.T) {
	srv, _ := geminiServer(t, http.StatusOK, `{"candidates":[{"content":{"parts":[{"text":"**You** must pay."}]}}]}`)
	client := gemini.NewClientWithConfig(&gemini.ClientConfig{Endpoint: srv.URL, APIKey: "k"})
	ctl, _, _ := newController(t, client)

	reply, err := ctl.Submit(context.Background(), "text")
	require.NoError(t, err)
	assert.Equal(t, "**You** must pay.", reply.Text, "reply is stored verbatim")
}

// =============================================================================
// PHASE AND BUSY GUARD
// =============================================================================

func TestBegin_BusyGuard(t *testing.T) {
	gen := &fakeGenerator{}
	ctl, _, _ := newController(t, gen)

	_, err := ctl.Begin("first")
	require.NoError(t, err)
	assert.Equal(t, PhaseAwaiting, ctl.Phase())
	assert.True(t, ctl.Busy())

	_, err = ctl.Begin("second")
	assert.ErrorIs(t, err, ErrBusy)
	err = ctl.Upload(context.Background(), []ingest.Source{ingest.BytesSource("a.txt", "text/plain", []byte("x"))})
	assert.ErrorIs(t, err, ErrBusy)
	assert.Len(t, ctl.Messages(), 1, "rejected submissions must not append")

	ctl.Finish(context.Background(), "first")
	assert.Equal(t, PhaseIdle, ctl.Phase())

	_, err = ctl.Begin("second")
	assert.NoError(t, err)
}

func TestBegin_PersistsUserMessage(t *testing.T) {
	ctl, _, kv := newController(t, &fakeGenerator{})
	_, err := ctl.Begin("pending")
	require.NoError(t, err)

	raw, err := kv.Get(storage.KeyChatHistory)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"text":"pending","isUser":true}]`, raw)
}

func TestConcurrentSubmit_SerializedOrder(t *testing.T) {
	release := make(chan struct{})
	gen := &fakeGenerator{reply: func(in string) (string, error) {
		<-release
		return "re:" + in, nil
	}}
	ctl, _, _ := newController(t, gen)

	_, err := ctl.Begin("a")
	require.NoError(t, err)

	var wg sync.WaitGroup
	var busy atomic.Int32
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := ctl.Submit(context.Background(), "b"); errors.Is(err, ErrBusy) {
				busy.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.EqualValues(t, 10, busy.Load())

	close(release)
	ctl.Finish(context.Background(), "a")
	assert.Equal(t, []string{"user:a", "bot:re:a"}, texts(ctl.Messages()))
}

func TestOnAppend(t *testing.T) {
	ctl, _, _ := newController(t, &fakeGenerator{})
	var seen []string
	ctl.OnAppend(func(m model.Message) { seen = append(seen, m.Text) })

	_, err := ctl.Submit(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, []string{"hi", "plain: hi"}, seen)
}

// =============================================================================
// UPLOAD
// =============================================================================

func TestUpload_ReadFailureAbortsBatch(t *testing.T) {
	gen := &fakeGenerator{}
	ctl, _, kv := newController(t, gen)

	f3Opened := false
	sources := []ingest.Source{
		ingest.BytesSource("f1.txt", "text/plain", []byte("Clause one.")),
		ingest.NewSource("f2.txt", "text/plain", func() (io.ReadCloser, error) {
			return nil, errors.New("permission denied")
		}),
		ingest.NewSource("f3.txt", "text/plain", func() (io.ReadCloser, error) {
			f3Opened = true
			return io.NopCloser(strings.NewReader("Clause three.")), nil
		}),
	}

	require.NoError(t, ctl.Upload(context.Background(), sources))

	assert.Equal(t, []string{
		"user:Uploaded file: f1.txt",
		"bot:plain: Clause one.",
		"bot:Sorry, I encountered an error: failed to read f2.txt: permission denied. Please try again.",
	}, texts(ctl.Messages()))
	assert.Equal(t, 1, gen.calls(), "only F1 reaches the generator")
	assert.False(t, f3Opened, "F3 must never be read")
	assert.Equal(t, PhaseIdle, ctl.Phase())

	raw, err := kv.Get(storage.KeyChatHistory)
	require.NoError(t, err)
	saved, err := storage.DecodeHistory(raw)
	require.NoError(t, err)
	assert.Len(t, saved, 3)
}

func TestUpload_APIFailureDoesNotAbort(t *testing.T) {
	gen := &fakeGenerator{reply: func(in string) (string, error) {
		if strings.Contains(in, "bad") {
			return "", errors.New("API request failed: 500 Internal Server Error")
		}
		return "ok", nil
	}}
	ctl, _, _ := newController(t, gen)

	err := ctl.Upload(context.Background(), []ingest.Source{
		ingest.BytesSource("a.txt", "text/plain", []byte("bad")),
		ingest.BytesSource("b.txt", "text/plain", []byte("good")),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"user:Uploaded file: a.txt",
		"bot:Sorry, I encountered an error: API request failed: 500 Internal Server Error. Please try again.",
		"user:Uploaded file: b.txt",
		"bot:ok",
	}, texts(ctl.Messages()))
}

func TestUpload_ImageSentAsDataURI(t *testing.T) {
	gen := &fakeGenerator{}
	ctl, _, _ := newController(t, gen)

	err := ctl.Upload(context.Background(), []ingest.Source{
		ingest.BytesSource("scan.png", "image/png", []byte{0xde, 0xad}),
	})
	require.NoError(t, err)
	require.Equal(t, 1, gen.calls())
	assert.Equal(t, "data:image/png;base64,3q0=", gen.inputs[0])
	assert.Equal(t, "user:Uploaded file: scan.png", texts(ctl.Messages())[0])
}

func TestUpload_NoFiles(t *testing.T) {
	ctl, _, _ := newController(t, &fakeGenerator{})
	assert.ErrorIs(t, ctl.Upload(context.Background(), nil), ErrNoFiles)
	assert.Equal(t, PhaseIdle, ctl.Phase())
}

func TestUpload_CanceledContextStops(t *testing.T) {
	gen := &fakeGenerator{}
	ctl, _, _ := newController(t, gen)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := ctl.Upload(ctx, []ingest.Source{ingest.BytesSource("a.txt", "text/plain", []byte("x"))})
	require.NoError(t, err)
	assert.Zero(t, gen.calls())
	assert.Empty(t, ctl.Messages())
	assert.Equal(t, PhaseIdle, ctl.Phase())
}

// =============================================================================
// CLEAR AND RELOAD
// =============================================================================

func TestClear_RemovesPersistedHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	kv, err := storage.OpenSQLite(path)
	require.NoError(t, err)
	st := session.Load(kv, model.ThemeLight)
	ctl := New(&fakeGenerator{}, st)

	for _, in := range []string{"one", "two", "three"} {
		_, err := ctl.Submit(context.Background(), in)
		require.NoError(t, err)
	}
	require.Len(t, ctl.Messages(), 6)

	require.NoError(t, ctl.Clear())
	assert.Empty(t, ctl.Messages())
	_, err = kv.Get(storage.KeyChatHistory)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	require.NoError(t, st.Close())

	kv, err = storage.OpenSQLite(path)
	require.NoError(t, err)
	reloaded := session.Load(kv, model.ThemeLight)
	defer reloaded.Close()
	assert.Zero(t, reloaded.Conversation().Len())
}

func TestReload_RestoresTranscript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	kv, err := storage.OpenFile(path)
	require.NoError(t, err)
	ctl := New(&fakeGenerator{}, session.Load(kv, model.ThemeLight))

	for _, in := range []string{"alpha", "beta"} {
		_, err := ctl.Submit(context.Background(), in)
		require.NoError(t, err)
	}
	want := texts(ctl.Messages())

	kv2, err := storage.OpenFile(path)
	require.NoError(t, err)
	reloaded := New(&fakeGenerator{}, session.Load(kv2, model.ThemeLight))
	assert.Equal(t, want, texts(reloaded.Messages()))
}

// =============================================================================
// CHARACTER COUNT
// =============================================================================

func TestCharLevel(t *testing.T) {
	tests := []struct {
		n    int
		want CountLevel
	}{
		{0, CountNormal},
		{8000, CountNormal},
		{8001, CountWarning},
		{9000, CountWarning},
		{9001, CountError},
		{15000, CountError},
	}
	for _, tc := range tests {
		if got := CharLevel(tc.n); got != tc.want {
			t.Errorf("CharLevel(%d) = %v, want %v", tc.n, got, tc.want)
		}
	}

	n, level := CharCount(strings.Repeat("§", 8500))
	assert.Equal(t, 8500, n)
	assert.Equal(t, CountWarning, level)
}

func TestCharCount_IgnoresSurroundingWhitespace(t *testing.T) {
	n, level := CharCount("\n  Lessee shall pay.  \n\n")
	assert.Equal(t, 17, n)
	assert.Equal(t, CountNormal, level)

	padded := strings.Repeat(" ", 600) + strings.Repeat("a", 7990) + strings.Repeat("\n", 600)
	n, level = CharCount(padded)
	assert.Equal(t, 7990, n)
	assert.Equal(t, CountNormal, level)

	n, _ = CharCount(" \t\n ")
	assert.Zero(t, n)
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "idle", PhaseIdle.String())
	assert.Equal(t, "awaiting", PhaseAwaiting.String())
}

func TestIsApology(t *testing.T) {
	apology := model.NewBotMessage(Apology(errors.New("boom")))
	assert.Equal(t, "Sorry, I encountered an error: boom. Please try again.", apology.Text)
	assert.True(t, IsApology(apology))
	assert.False(t, IsApology(model.NewUserMessage(apology.Text)))
	assert.False(t, IsApology(model.NewBotMessage("All good.")))
}
