// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for plainlaw.
//
// # Key Types
//
//   - Config: all settings
//   - APIConfig: generation endpoint and credential
//   - StorageConfig: state backend and location
//   - UIConfig: theme default and markdown rendering
//   - LogConfig: log level and file
//   - Watcher: reloads the file when it changes on disk
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Command-line flags (applied by the cli package)
//   - Environment variables (PLAINLAW_*)
//   - .env files (./.env, then ~/.plainlaw/.env); never override the environment
//   - ~/.plainlaw/config.toml
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client := gemini.NewClientWithConfig(&gemini.ClientConfig{
//	    Endpoint: cfg.API.Endpoint,
//	    APIKey:   cfg.API.Key,
//	})
package config
