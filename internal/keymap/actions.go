// Package keymap defines key bindings and action dispatch for the application.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit   Action = "quit"
	ActionBack   Action = "back"
	ActionSearch Action = "search"
	ActionHelp   Action = "help"

	// Navigation actions
	ActionMoveUp    Action = "move_up"
	ActionMoveDown  Action = "move_down"
	ActionJumpStart Action = "jump_start"
	ActionJumpEnd   Action = "jump_end"
	ActionPageUp    Action = "page_up"
	ActionPageDown  Action = "page_down"

	// Chapter list actions
	ActionSelect          Action = "select"           // enter - open chapter
	ActionContinueReading Action = "continue_reading" // c - reopen last chapter

	// Playback actions
	ActionPlayPause    Action = "play_pause"
	ActionSeekForward  Action = "seek_forward"
	ActionSeekBack     Action = "seek_back"
	ActionVolumeUp     Action = "volume_up"
	ActionVolumeDown   Action = "volume_down"
	ActionToggleMute   Action = "toggle_mute"
	ActionToggleRepeat Action = "toggle_repeat"
	ActionNextReciter  Action = "next_reciter"
	ActionPrevReciter  Action = "prev_reciter"
	ActionSeekPercent  Action = "seek_percent" // 0-9 - jump to a tenth of the recitation

	// Reader actions
	ActionNextChapter   Action = "next_chapter"
	ActionPrevChapter   Action = "prev_chapter"
	ActionToggleEnglish Action = "toggle_english"
	ActionToggleUrdu    Action = "toggle_urdu"
	ActionDownload      Action = "download"
	ActionFollowVerse   Action = "follow_verse" // f - jump back to the highlighted verse
)
