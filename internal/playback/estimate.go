package playback

import (
	"sort"
	"time"
)

// EstimateVerse maps a playback position onto a verse index by placing verse
// boundaries at equal fractions of the track duration. The last verse absorbs
// the end of the track. Returns -1 when duration or verseCount is not
// positive.
func EstimateVerse(currentTime, duration time.Duration, verseCount int) int {
	if duration <= 0 || verseCount <= 0 {
		return -1
	}
	progress := float64(currentTime) / float64(duration)
	progress = max(0, min(progress, 1))
	return min(int(progress*float64(verseCount)), verseCount-1)
}

// Estimator maps a playback position to a verse index.
type Estimator interface {
	Estimate(currentTime, duration time.Duration, verseCount int) int
}

// Proportional is the default Estimator, see EstimateVerse.
type Proportional struct{}

// Estimate implements Estimator.
func (Proportional) Estimate(currentTime, duration time.Duration, verseCount int) int {
	return EstimateVerse(currentTime, duration, verseCount)
}

// Boundaries holds explicit verse start offsets, sorted ascending. The verse
// at a position is the last one starting at or before it.
type Boundaries []time.Duration

// Estimate implements Estimator. Positions before the first boundary map to
// verse 0. Without boundaries it falls back to EstimateVerse.
func (b Boundaries) Estimate(currentTime, duration time.Duration, verseCount int) int {
	if verseCount <= 0 {
		return -1
	}
	if len(b) == 0 {
		return EstimateVerse(currentTime, duration, verseCount)
	}
	// First boundary strictly after currentTime.
	i := sort.Search(len(b), func(i int) bool { return b[i] > currentTime })
	return max(0, min(i-1, verseCount-1))
}
