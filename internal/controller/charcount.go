// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package controller

import (
	"strings"

	"github.com/jeranaias/plainlaw/internal/util"
)

// Character counter thresholds. They only change how the counter is drawn;
// submission is never blocked.
const (
	CharDisplayCap     = 10000
	CharWarnThreshold  = 8000
	CharErrorThreshold = 9000
)

// CountLevel is the styling tier of the character counter.
type CountLevel int

const (
	CountNormal CountLevel = iota
	CountWarning
	CountError
)

// CharLevel returns the tier for a count of n characters.
func CharLevel(n int) CountLevel {
	switch {
	case n > CharErrorThreshold:
		return CountError
	case n > CharWarnThreshold:
		return CountWarning
	default:
		return CountNormal
	}
}

// CharCount returns the character count of the trimmed text and its tier.
// Surrounding whitespace is not sent, so it is not counted.
func CharCount(text string) (int, CountLevel) {
	n := util.RuneLen(strings.TrimSpace(text))
	return n, CharLevel(n)
}
