// Package errmsg turns errors into the one-line messages shown in the status
// bar.
package errmsg

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Op names the operation that failed, phrased to follow "Failed to".
type Op string

const (
	OpChapterListLoad Op = "load chapter list"
	OpChapterLoad     Op = "load chapter"
	OpPlaybackLoad    Op = "load recitation"
	OpPlaybackStart   Op = "start playback"
	OpDownload        Op = "download recitation"
)

// Format returns "Failed to <op>: <cause>", or "" for a nil err.
func Format(op Op, err error) string {
	return FormatWith(op, "", err)
}

// FormatWith is Format naming the subject of the operation, such as the
// chapter being loaded.
func FormatWith(op Op, subject string, err error) string {
	if err == nil {
		return ""
	}
	if subject == "" {
		return fmt.Sprintf("Failed to %s: %s", op, cause(err))
	}
	return fmt.Sprintf("Failed to %s '%s': %s", op, subject, cause(err))
}

// cause replaces timeout and cancellation chains, which read poorly in a
// status line, with a short phrase.
func cause(err error) string {
	var ne net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &ne) && ne.Timeout():
		return "request timed out"
	case errors.Is(err, context.Canceled):
		return "cancelled"
	}
	return err.Error()
}
