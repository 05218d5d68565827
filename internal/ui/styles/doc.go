// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the plainlaw TUI.
//
// All colors are Lip Gloss AdaptiveColors. Instead of trusting the
// terminal's background, the user's persisted light/dark preference is
// pushed into Lip Gloss with Apply, so every style resolves to the chosen
// palette at render time and a theme toggle needs no style rebuild.
//
// # Key Types
//
//   - Theme: all component styles plus layout dimensions
//
// # Usage
//
//	theme := styles.NewTheme(model.ThemeDark)
//	fmt.Println(theme.UserBubble.Render("hello"))
//	theme.Apply(model.ThemeLight)
package styles
