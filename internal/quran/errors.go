package quran

import (
	"errors"
	"fmt"
)

// ErrInvalidChapter is returned when a chapter payload breaks the data model invariants.
var ErrInvalidChapter = errors.New("invalid chapter")

// FetchError reports an unreachable data source or a non-success response.
type FetchError struct {
	Op     string // "chapter list" or "chapter 5"
	Status int    // HTTP status, 0 when the request never completed
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is a FetchError for a missing resource.
func IsNotFound(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.Status == 404
}
