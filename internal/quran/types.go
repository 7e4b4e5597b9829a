// Package quran provides the chapter data model and the quranapi.pages.dev data source.
package quran

// ChapterCount is the size of the fixed chapter universe.
const ChapterCount = 114

// ChapterSummary is a chapter as listed in the chapter index.
type ChapterSummary struct {
	Number          int    `json:"-"`
	Name            string `json:"surahName"`
	NameArabic      string `json:"surahNameArabic"`
	NameArabicLong  string `json:"surahNameArabicLong"`
	NameTranslation string `json:"surahNameTranslation"`
	RevelationPlace string `json:"revelationPlace"`
	TotalVerses     int    `json:"totalAyah"`
}

// NarratorTrack is one complete recitation of a chapter.
type NarratorTrack struct {
	ID          string `json:"-" validate:"required"`
	Name        string `json:"reciter"`
	URL         string `json:"url"`
	OriginalURL string `json:"originalUrl"`
}

// Chapter is the full detail of a single chapter.
// Immutable once decoded.
type Chapter struct {
	Number          int          `json:"surahNo" validate:"min=1,max=114"`
	Name            string       `json:"surahName" validate:"required"`
	NameArabic      string       `json:"surahNameArabic"`
	NameArabicLong  string       `json:"surahNameArabicLong"`
	NameTranslation string       `json:"surahNameTranslation"`
	RevelationPlace string       `json:"revelationPlace"`
	TotalVerses     int          `json:"totalAyah" validate:"min=1"`
	Narrators       NarratorList `json:"audio" validate:"dive"`
	English         []string     `json:"english"`
	Arabic1         []string     `json:"arabic1"`
	Arabic2         []string     `json:"arabic2"`
	Urdu            []string     `json:"urdu"`
}

// Summary returns the index entry for the chapter.
func (c *Chapter) Summary() ChapterSummary {
	return ChapterSummary{
		Number:          c.Number,
		Name:            c.Name,
		NameArabic:      c.NameArabic,
		NameArabicLong:  c.NameArabicLong,
		NameTranslation: c.NameTranslation,
		RevelationPlace: c.RevelationPlace,
		TotalVerses:     c.TotalVerses,
	}
}

// Verse returns the texts of verse i (0-based). Missing translations are empty.
func (c *Chapter) Verse(i int) Verse {
	return Verse{
		Index:   i,
		Arabic:  at(c.Arabic1, i),
		English: at(c.English, i),
		Urdu:    at(c.Urdu, i),
	}
}

// Verse is a single addressable verse of a chapter.
type Verse struct {
	Index   int
	Arabic  string
	English string
	Urdu    string
}

// Narrator returns the narrator with the given id.
func (c *Chapter) Narrator(id string) (NarratorTrack, bool) {
	for _, n := range c.Narrators {
		if n.ID == id {
			return n, true
		}
	}
	return NarratorTrack{}, false
}

// ValidNumber reports whether n is inside the chapter universe.
func ValidNumber(n int) bool {
	return n >= 1 && n <= ChapterCount
}

func at(s []string, i int) string {
	if i < 0 || i >= len(s) {
		return ""
	}
	return s[i]
}
