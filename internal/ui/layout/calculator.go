// Package layout provides pure functions for UI dimension calculations.
package layout

import "github.com/llehouerou/tilawa/internal/ui"

// MinTextWidth is the narrowest column verse text is wrapped to.
const MinTextWidth = 10

// ContentOpts contains the parameters needed to calculate content height.
type ContentOpts struct {
	PlayerBarHeight int // 0 when no chapter is bound to the player
	StatusHeight    int
}

// ContentHeight calculates the available height for the list or reader:
// the terminal height minus the player bar and the status line.
func ContentHeight(windowHeight int, opts ContentOpts) int {
	return max(windowHeight-opts.PlayerBarHeight-opts.StatusHeight, 0)
}

// TextWidth calculates the wrap width for verse text given a left and right
// margin, capped at ui.MaxTextWidth.
func TextWidth(windowWidth, margin int) int {
	return max(min(windowWidth-2*margin, ui.MaxTextWidth), MinTextWidth)
}
