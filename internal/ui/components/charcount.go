// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"

	"github.com/jeranaias/plainlaw/internal/controller"
	"github.com/jeranaias/plainlaw/internal/ui/styles"
)

// CharCounter renders "n / 10000" styled by controller.CharLevel.
func CharCounter(text string, theme *styles.Theme) string {
	n, level := controller.CharCount(text)
	label := strconv.Itoa(n) + " / " + strconv.Itoa(controller.CharDisplayCap)
	switch level {
	case controller.CountError:
		return theme.CharCountDanger.Render(label)
	case controller.CountWarning:
		return theme.CharCountWarning.Render(label)
	default:
		return theme.CharCount.Render(label)
	}
}
