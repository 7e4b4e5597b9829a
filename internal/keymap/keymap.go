// Package keymap defines key bindings for the application.
package keymap

// Binding maps keys to an action, with a description for the help view.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global", "list", "reader", "playback"
}

// Bindings contains all key bindings.
var Bindings = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit application", "global"},
	{ActionBack, []string{"esc", "backspace"}, "Back to chapter list", "global"},
	{ActionHelp, []string{"?"}, "Show help", "global"},

	// Chapter list
	{ActionSearch, []string{"/"}, "Search chapters", "list"},
	{ActionMoveUp, []string{"k", "up"}, "Move up", "list"},
	{ActionMoveDown, []string{"j", "down"}, "Move down", "list"},
	{ActionJumpStart, []string{"g", "home"}, "First chapter", "list"},
	{ActionJumpEnd, []string{"G", "end"}, "Last chapter", "list"},
	{ActionPageUp, []string{"pgup", "ctrl+u"}, "Page up", "list"},
	{ActionPageDown, []string{"pgdown", "ctrl+d"}, "Page down", "list"},
	{ActionSelect, []string{"enter"}, "Open chapter", "list"},
	{ActionContinueReading, []string{"c"}, "Continue reading", "list"},

	// Reader
	{ActionMoveUp, []string{"k", "up"}, "Scroll up", "reader"},
	{ActionMoveDown, []string{"j", "down"}, "Scroll down", "reader"},
	{ActionPageUp, []string{"pgup", "ctrl+u"}, "Page up", "reader"},
	{ActionPageDown, []string{"pgdown", "ctrl+d"}, "Page down", "reader"},
	{ActionJumpStart, []string{"g", "home"}, "Top of chapter", "reader"},
	{ActionJumpEnd, []string{"G", "end"}, "End of chapter", "reader"},
	{ActionPrevChapter, []string{"["}, "Previous chapter", "reader"},
	{ActionNextChapter, []string{"]"}, "Next chapter", "reader"},
	{ActionToggleEnglish, []string{"e"}, "Toggle English translation", "reader"},
	{ActionToggleUrdu, []string{"u"}, "Toggle Urdu translation", "reader"},
	{ActionDownload, []string{"d"}, "Download recitation", "reader"},
	{ActionFollowVerse, []string{"f"}, "Jump to current ayah", "reader"},

	// Playback
	{ActionPlayPause, []string{" "}, "Play/pause", "playback"},
	{ActionSeekBack, []string{"left", "h"}, "Skip back", "playback"},
	{ActionSeekForward, []string{"right", "l"}, "Skip forward", "playback"},
	{ActionVolumeUp, []string{"+", "="}, "Volume up", "playback"},
	{ActionVolumeDown, []string{"-"}, "Volume down", "playback"},
	{ActionToggleMute, []string{"m"}, "Mute/unmute", "playback"},
	{ActionToggleRepeat, []string{"r"}, "Toggle repeat", "playback"},
	{ActionNextReciter, []string{"n"}, "Next reciter", "playback"},
	{ActionPrevReciter, []string{"N"}, "Previous reciter", "playback"},
	{ActionSeekPercent, []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9"}, "Jump to 0%-90% of the recitation", "playback"},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range Bindings {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}

// Contexts returns the help sections in display order.
func Contexts() []string {
	return []string{"global", "list", "reader", "playback"}
}
