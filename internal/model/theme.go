// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"fmt"
	"strings"
)

// Theme is the presentation preference. The zero value is ThemeLight.
type Theme int

const (
	ThemeLight Theme = iota
	ThemeDark
)

// DefaultTheme is used when nothing has been persisted.
const DefaultTheme = ThemeLight

// String returns the persisted form: "light" or "dark".
func (t Theme) String() string {
	if t == ThemeDark {
		return "dark"
	}
	return "light"
}

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// IsDark reports whether t is the dark theme.
func (t Theme) IsDark() bool {
	return t == ThemeDark
}

// ParseTheme converts "light" or "dark" (case-insensitive) to a Theme.
func ParseTheme(s string) (Theme, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "light":
		return ThemeLight, nil
	case "dark":
		return ThemeDark, nil
	default:
		return DefaultTheme, fmt.Errorf("unknown theme %q (want light or dark)", s)
	}
}
