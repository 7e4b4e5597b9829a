package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/llehouerou/tilawa/internal/quran"
)

var chapters = []quran.ChapterSummary{
	{Number: 1, Name: "Al-Fatiha", NameArabic: "سورة الفاتحة", NameTranslation: "The Opening"},
	{Number: 2, Name: "Al-Baqarah", NameArabic: "سورة البقرة", NameTranslation: "The Cow"},
	{Number: 18, Name: "Al-Kahf", NameArabic: "سورة الكهف", NameTranslation: "The Cave"},
	{Number: 36, Name: "Ya-Sin", NameArabic: "سورة يس", NameTranslation: "Ya Sin"},
}

func numbers(cs []quran.ChapterSummary) []int {
	out := make([]int, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.Number)
	}
	return out
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []int
	}{
		{"empty matches all", "", []int{1, 2, 18, 36}},
		{"whitespace matches all", "   ", []int{1, 2, 18, 36}},
		{"display name", "kahf", []int{18}},
		{"case insensitive", "AL-FAT", []int{1}},
		{"translated name", "cow", []int{2}},
		{"translated name shared word", "the ca", []int{18}},
		{"native name", "البقرة", []int{2}},
		{"substring in several", "al-", []int{1, 2, 18}},
		{"no match", "zzz", []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, numbers(Filter(chapters, tt.query)))
		})
	}
}

func TestFilter_PreservesInput(t *testing.T) {
	got := Filter(chapters, "the")
	assert.Equal(t, []int{1, 2, 18}, numbers(got))
	assert.Len(t, chapters, 4)
}

