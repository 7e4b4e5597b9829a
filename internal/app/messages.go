package app

import (
	"github.com/llehouerou/tilawa/internal/mpris"
	"github.com/llehouerou/tilawa/internal/playback"
	"github.com/llehouerou/tilawa/internal/player"
	"github.com/llehouerou/tilawa/internal/quran"
	"github.com/llehouerou/tilawa/internal/session"
)

// ChapterListMsg carries the result of loading the chapter index.
type ChapterListMsg struct {
	Chapters []quran.ChapterSummary
	Err      error
}

// ChapterLoadedMsg carries the result of a chapter fetch started by Open.
type ChapterLoadedMsg session.Result

// PlayerEventMsg wraps an audio element event.
type PlayerEventMsg player.Event

// PlayerClosedMsg is sent when the audio element's event channel closes.
type PlayerClosedMsg struct{}

// StateChangedMsg is sent when the playback machine changes state.
type StateChangedMsg playback.StateChange

// VerseChangedMsg is sent when the recited verse changes.
type VerseChangedMsg playback.VerseChange

// PlaybackErrorMsg is sent when the audio element fails.
type PlaybackErrorMsg playback.ErrorEvent

// PlaybackClosedMsg is sent when the playback subscription ends.
type PlaybackClosedMsg struct{}

// DownloadDoneMsg reports the outcome of a download.
type DownloadDoneMsg struct {
	Path string
	Size int64
	Err  error
}

// NotifiedMsg carries the id of the last desktop notification.
type NotifiedMsg struct {
	ID uint32
}

// StatusClearMsg clears the status line if it still shows message Seq.
type StatusClearMsg struct {
	Seq int
}

// MPRISMsg is a media key or desktop widget request forwarded from D-Bus.
type MPRISMsg mpris.Request
