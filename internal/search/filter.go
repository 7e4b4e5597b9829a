// Package search filters the chapter index.
package search

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/llehouerou/tilawa/internal/quran"
)

// Filter returns the chapters matching query, in their original order.
// An empty query matches every chapter.
func Filter(chapters []quran.ChapterSummary, query string) []quran.ChapterSummary {
	q := fold(strings.TrimSpace(query))
	if q == "" {
		return chapters
	}

	out := make([]quran.ChapterSummary, 0, len(chapters))
	for _, c := range chapters {
		if matchesFolded(c, q) {
			out = append(out, c)
		}
	}
	return out
}

func matchesFolded(c quran.ChapterSummary, q string) bool {
	return strings.Contains(fold(c.Name), q) ||
		strings.Contains(fold(c.NameArabic), q) ||
		strings.Contains(fold(c.NameTranslation), q)
}

// fold normalizes s for caseless comparison. Casers are stateful, so a new
// one is made per call.
func fold(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}
