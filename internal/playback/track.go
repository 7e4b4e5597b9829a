package playback

import (
	"errors"

	"github.com/llehouerou/tilawa/internal/quran"
)

// ErrTrackNotFound is returned when a chapter has no audio for a narrator.
var ErrTrackNotFound = errors.New("track not found")

// Resolve returns the audio URL of narratorID's recitation of ch.
func Resolve(ch *quran.Chapter, narratorID string) (string, error) {
	if ch == nil {
		return "", ErrTrackNotFound
	}
	track, ok := ch.Narrator(narratorID)
	if !ok || track.URL == "" {
		return "", ErrTrackNotFound
	}
	return track.URL, nil
}

// DefaultNarrator returns the first narrator of ch in source order.
func DefaultNarrator(ch *quran.Chapter) (string, bool) {
	if ch == nil || len(ch.Narrators) == 0 {
		return "", false
	}
	return ch.Narrators[0].ID, true
}

// ResolveOrDefault resolves narratorID, falling back to the chapter's first
// narrator when narratorID has no track. It returns the narrator actually
// used along with its URL.
func ResolveOrDefault(ch *quran.Chapter, narratorID string) (string, string, error) {
	if url, err := Resolve(ch, narratorID); err == nil {
		return narratorID, url, nil
	}
	id, ok := DefaultNarrator(ch)
	if !ok {
		return "", "", ErrTrackNotFound
	}
	url, err := Resolve(ch, id)
	if err != nil {
		return "", "", err
	}
	return id, url, nil
}
