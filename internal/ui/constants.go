// Package ui provides shared UI constants and utilities.
package ui

// Layout constants for consistent sizing across views.
const (
	// ScrollMargin is the number of rows kept visible above/below the list cursor.
	ScrollMargin = 3

	// HeaderHeight is the space for a view title + separator.
	HeaderHeight = 2

	// PlayerBarHeight is the height of the transport bar including its border.
	PlayerBarHeight = 4

	// StatusHeight is the single status/error line at the bottom of the screen.
	StatusHeight = 1

	// MinProgressBarWidth is the minimum width for a usable progress bar.
	MinProgressBarWidth = 5

	// MaxTextWidth caps the width of verse text so long lines stay readable.
	MaxTextWidth = 100
)
