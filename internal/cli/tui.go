// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/plainlaw/internal/config"
	"github.com/jeranaias/plainlaw/internal/gemini"
	"github.com/jeranaias/plainlaw/internal/logger"
	"github.com/jeranaias/plainlaw/internal/ui/chat"
)

// runTUI starts the chat UI. Logs go to a file while it owns the screen.
func (a *App) runTUI(ctx context.Context) error {
	if err := a.requireTTY("plainlaw", "cat lease.txt | plainlaw simplify"); err != nil {
		return err
	}

	rt, err := a.open(true)
	if err != nil {
		return err
	}
	defer rt.Close()

	var notice string
	if !rt.Client.Configured() {
		notice = gemini.ErrNotConfigured.Error()
	}

	m := chat.New(rt.Controller, rt.State, chat.Options{
		Markdown: rt.Config.UI.Markdown,
		Context:  ctx,
		Notice:   notice,
	})
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	rt.Controller.OnAppend(chat.AppendNotifier(p.Send))

	if w := a.watchConfig(rt, p); w != nil {
		defer w.Close()
	}

	logger.Info("tui started", "theme", rt.State.Theme())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("terminal UI failed: %w", err)
	}
	logger.Info("tui stopped")
	return nil
}

// watchConfig reloads the API key when the config file changes. A watcher
// that cannot start is logged and skipped.
func (a *App) watchConfig(rt *Runtime, p *tea.Program) *config.Watcher {
	if err := os.MkdirAll(filepath.Dir(rt.ConfigPath), 0700); err != nil {
		logger.Warn("config watcher unavailable", "err", err)
		return nil
	}

	w, err := config.Watch(rt.ConfigPath,
		func(cfg *config.Config) {
			rt.Client.SetAPIKey(cfg.API.Key)
			logger.Info("config reloaded", "configured", rt.Client.Configured())
			p.Send(chat.ConfigReloadedMsg{Configured: rt.Client.Configured()})
		},
		func(err error) {
			logger.Warn("config reload failed", "err", err)
		},
	)
	if err != nil {
		logger.Warn("config watcher unavailable", "err", err)
		return nil
	}
	return w
}
