// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session holds the process-wide plainlaw state: the transcript and
// the theme, mirrored to a storage.KV.
//
// State is created once at startup with Load, which reads whatever was
// persisted and falls back to defaults for anything missing or unreadable.
// After that there are explicit save points: SaveHistory after every
// transcript change, SetTheme/ToggleTheme on every theme change, and
// ClearHistory to drop the transcript entirely.
//
// # Usage
//
//	kv, _ := storage.Open(storage.BackendSQLite, "")
//	st := session.Load(kv, model.ThemeLight)
//	st.Conversation().Append(model.NewUserMessage("hi"))
//	if err := st.SaveHistory(); err != nil {
//	    logger.Warn("save failed", "err", err)
//	}
package session
