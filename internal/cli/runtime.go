// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"github.com/jeranaias/plainlaw/internal/config"
	"github.com/jeranaias/plainlaw/internal/controller"
	"github.com/jeranaias/plainlaw/internal/gemini"
	"github.com/jeranaias/plainlaw/internal/logger"
	"github.com/jeranaias/plainlaw/internal/session"
	"github.com/jeranaias/plainlaw/internal/storage"
)

// =============================================================================
// RUNTIME WIRING
// =============================================================================

// Runtime is the wired object graph behind every command.
type Runtime struct {
	ConfigPath string
	Config     *config.Config
	Client     *gemini.Client
	State      *session.State
	Controller *controller.Controller
}

// loadConfig resolves the config file and applies the global flags over it.
func (a *App) loadConfig() (*config.Config, string, error) {
	path := a.Options.ConfigPath
	if path == "" {
		p, err := config.ConfigPath()
		if err != nil {
			return nil, "", NewConfigError(err)
		}
		path = p
	}

	cfg, err := config.LoadFromPath(path)
	if err != nil {
		return nil, path, NewConfigError(err)
	}
	if a.Options.Store != "" {
		cfg.Storage.Backend = a.Options.Store
	}
	if a.Options.LogLevel != "" {
		cfg.Log.Level = a.Options.LogLevel
	}
	if a.Options.LogFile != "" {
		cfg.Log.File = a.Options.LogFile
	}
	return cfg, path, nil
}

// configureLogging points the logger at stderr, or at a file for the TUI,
// which owns the screen.
func configureLogging(cfg *config.Config, interactive bool) error {
	file := cfg.Log.File
	if interactive && file == "" {
		file = config.DefaultLogFile()
	}
	return logger.Configure(logger.Options{
		Level:      cfg.Log.Level,
		File:       file,
		Timestamps: file != "",
	})
}

// open loads config, configures logging and wires store, session, client
// and controller. Component loggers are created after logging is set up.
func (a *App) open(interactive bool) (*Runtime, error) {
	cfg, path, err := a.loadConfig()
	if err != nil {
		return nil, err
	}
	if err := configureLogging(cfg, interactive); err != nil {
		return nil, NewCommandError("logging", "configure", "cannot open log file", err)
	}

	kv, err := storage.Open(cfg.Storage.Backend, cfg.Storage.Path)
	if err != nil {
		logger.Close()
		return nil, NewCommandError("storage", "open", "cannot open state store", err)
	}

	state := session.Load(kv, cfg.Theme())
	client := gemini.NewClientWithConfig(&gemini.ClientConfig{
		Endpoint: cfg.API.Endpoint,
		APIKey:   cfg.API.Key,
	})

	logger.Debug("runtime ready",
		"config", path,
		"store", cfg.Storage.Backend,
		"configured", client.Configured())

	return &Runtime{
		ConfigPath: path,
		Config:     cfg,
		Client:     client,
		State:      state,
		Controller: controller.New(client, state),
	}, nil
}

// Close releases the store and any log file.
func (r *Runtime) Close() error {
	err := r.State.Close()
	logger.Close()
	return err
}
