// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"errors"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/jeranaias/plainlaw/internal/logger"
	"github.com/jeranaias/plainlaw/internal/model"
	"github.com/jeranaias/plainlaw/internal/storage"
)

// =============================================================================
// STATE
// =============================================================================

// State is the explicit owner of the transcript and theme.
type State struct {
	mu    sync.Mutex
	kv    storage.KV
	conv  *model.Conversation
	theme model.Theme
	log   *log.Logger
}

// Load builds the state from kv. A missing or corrupt entry yields the
// default for that entry; the failure is logged, never returned.
func Load(kv storage.KV, defaultTheme model.Theme) *State {
	s := &State{
		kv:    kv,
		conv:  model.NewConversation(),
		theme: defaultTheme,
		log:   logger.NewStyledLogger("session"),
	}

	if raw, err := kv.Get(storage.KeyTheme); err == nil {
		if t, perr := model.ParseTheme(raw); perr == nil {
			s.theme = t
		} else {
			s.log.Warn("ignoring stored theme", "value", raw)
		}
	} else if !errors.Is(err, storage.ErrNotFound) {
		s.log.Warn("theme unavailable", "err", err)
	}

	if raw, err := kv.Get(storage.KeyChatHistory); err == nil {
		msgs, derr := storage.DecodeHistory(raw)
		if derr != nil {
			s.log.Warn("discarding unreadable chat history", "err", derr)
		} else {
			s.conv = model.NewConversationFrom(msgs)
			s.log.Debug("history loaded", "messages", len(msgs))
		}
	} else if !errors.Is(err, storage.ErrNotFound) {
		s.log.Warn("chat history unavailable", "err", err)
	}

	return s
}

// Conversation returns the live transcript.
func (s *State) Conversation() *model.Conversation {
	return s.conv
}

// Theme returns the current theme.
func (s *State) Theme() model.Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

// SaveHistory overwrites the persisted transcript with the current one.
func (s *State) SaveHistory() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := storage.EncodeHistory(s.conv.Messages())
	if err != nil {
		return err
	}
	return s.kv.Set(storage.KeyChatHistory, data)
}

// ClearHistory empties the transcript and removes the persisted copy.
func (s *State) ClearHistory() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conv.Clear()
	return s.kv.Delete(storage.KeyChatHistory)
}

// SetTheme changes and persists the theme.
func (s *State) SetTheme(t model.Theme) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = t
	return s.kv.Set(storage.KeyTheme, t.String())
}

// ToggleTheme flips and persists the theme, returning the new value.
func (s *State) ToggleTheme() (model.Theme, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = s.theme.Toggle()
	return s.theme, s.kv.Set(storage.KeyTheme, s.theme.String())
}

// Close releases the underlying store.
func (s *State) Close() error {
	return s.kv.Close()
}
