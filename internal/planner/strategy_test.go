package planner

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func windows(learning, review int) Windows {
	days := consecutive(date(2024, 6, 1), learning+review)
	return Windows{Learning: days[:learning], Review: days[learning:]}
}

func byKind(entries []Entry, k Kind) []Entry {
	var out []Entry
	for _, e := range entries {
		if e.Kind == k {
			out = append(out, e)
		}
	}
	return out
}

// ── chapters ──

func TestChapterStrategy_Count(t *testing.T) {
	item := Item{ID: "o1", Content: Chapters{Count: 5}}
	w := windows(3, 1)

	entries := ChapterStrategy{}.Allocate(item, w, "t1")

	require.Len(t, entries, 4)
	assert.Equal(t, "Lees Hoofdstuk 1, Hoofdstuk 2", entries[0].Description)
	assert.Equal(t, []int{1, 2}, entries[0].Chapters)
	assert.Equal(t, "Lees Hoofdstuk 5", entries[2].Description)
	assert.Equal(t, w.Learning[2], entries[2].Date)
	for _, e := range entries[:3] {
		assert.Equal(t, KindLearn, e.Kind)
		assert.Equal(t, 45, e.Minutes)
		assert.Equal(t, "t1", e.TestID)
		assert.Equal(t, "o1", e.ItemID)
	}

	review := entries[3]
	assert.Equal(t, KindReview, review.Kind)
	assert.Equal(t, "Herhaal alle hoofdstukken", review.Description)
	assert.Equal(t, 23, review.Minutes)
	assert.Equal(t, w.Review[0], review.Date)
}

func TestChapterStrategy_ExplicitEstimate(t *testing.T) {
	item := Item{ID: "o1", EstimatedMinutes: 60, Content: Chapters{List: []Chapter{{Name: "Thema 1"}, {Name: "Thema 2"}}}}

	entries := ChapterStrategy{}.Allocate(item, windows(2, 1), "t1")

	require.Len(t, entries, 3)
	assert.Equal(t, "Lees Thema 1", entries[0].Description)
	assert.Equal(t, 60, entries[0].Minutes)
	assert.Equal(t, 30, entries[2].Minutes)
}

func TestChapterStrategy_FewerDaysThanChapters(t *testing.T) {
	item := Item{ID: "o1", Content: Chapters{Count: 7}}

	entries := ChapterStrategy{}.Allocate(item, windows(3, 0), "t1")

	// ceil(7/3) = 3 per day: 3, 3, 1
	require.Len(t, entries, 3)
	assert.Equal(t, []int{7}, entries[2].Chapters)
}

func TestChapterStrategy_Pages(t *testing.T) {
	item := Item{ID: "o1", Content: Chapters{List: []Chapter{
		{Name: "H1", PageFrom: 1, PageTo: 6},
		{Name: "H2", PageFrom: 7, PageTo: 8},
		{Name: "H3", PageFrom: 9, PageTo: 10},
	}}}
	w := windows(3, 1)

	entries := ChapterStrategy{}.Allocate(item, w, "t1")

	// 10 pages over 3 days: quota 4
	require.Len(t, entries, 5)
	assert.Equal(t, "Lees H1, pag 1-4", entries[0].Description)
	assert.Equal(t, 8, entries[0].Minutes)
	assert.Equal(t, w.Learning[0], entries[0].Date)

	assert.Equal(t, "Lees H1, pag 5-6", entries[1].Description)
	assert.Equal(t, w.Learning[1], entries[1].Date)
	assert.Equal(t, "Lees H2, pag 7-8", entries[2].Description)
	assert.Equal(t, w.Learning[1], entries[2].Date)
	assert.Equal(t, []int{2}, entries[2].Chapters)

	assert.Equal(t, "Lees H3, pag 9-10", entries[3].Description)
	assert.Equal(t, w.Learning[2], entries[3].Date)

	assert.Equal(t, "Herhaal alle hoofdstukken", entries[4].Description)
	assert.Equal(t, 10, entries[4].Minutes)
}

func TestChapterStrategy_PagesDailyQuota(t *testing.T) {
	item := Item{ID: "o1", Content: Chapters{List: []Chapter{
		{Name: "H1", PageFrom: 1, PageTo: 13},
		{Name: "H2", PageFrom: 14, PageTo: 15},
		{Name: "H3", PageFrom: 16, PageTo: 30},
		{Name: "H4", PageFrom: 31, PageTo: 33},
	}}}
	w := windows(5, 0)
	quota := ceilDiv(33, 5)

	perDay := map[string]int{}
	total := 0
	for _, e := range (ChapterStrategy{}).Allocate(item, w, "t1") {
		if e.Kind != KindLearn {
			continue
		}
		perDay[e.Date.Format("2006-01-02")] += e.Minutes / minutesPerPage
		total += e.Minutes / minutesPerPage
	}
	for day, pages := range perDay {
		assert.LessOrEqual(t, pages, quota, day)
	}
	assert.Equal(t, 33, total)
}

// pagesOf returns the pages each learn entry covers, keyed by page number.
func pagesOf(t *testing.T, entries []Entry) map[int]int {
	t.Helper()
	seen := map[int]int{}
	for _, e := range entries {
		if e.Kind != KindLearn {
			continue
		}
		var name string
		var from, to int
		_, err := fmt.Sscanf(e.Description, "Lees %s pag %d-%d", &name, &from, &to)
		require.NoError(t, err, e.Description)
		for p := from; p <= to; p++ {
			seen[p]++
		}
	}
	return seen
}

func TestChapterStrategy_PagesNeverLost(t *testing.T) {
	item := Item{ID: "o1", Content: Chapters{List: []Chapter{
		{Name: "H1", PageFrom: 1, PageTo: 7},
		{Name: "H2", PageFrom: 8, PageTo: 9},
		{Name: "H3", PageFrom: 10, PageTo: 20},
	}}}

	for days := 1; days <= 25; days++ {
		t.Run(fmt.Sprintf("%d days", days), func(t *testing.T) {
			w := windows(days, 1)
			entries := ChapterStrategy{}.Allocate(item, w, "t1")

			seen := pagesOf(t, entries)
			require.Len(t, seen, 20)
			for p := 1; p <= 20; p++ {
				assert.Equal(t, 1, seen[p], "page %d", p)
			}

			learnDays := map[string]bool{}
			for _, d := range w.Learning {
				learnDays[d.Format("2006-01-02")] = true
			}
			for _, e := range byKind(entries, KindLearn) {
				assert.True(t, learnDays[e.Date.Format("2006-01-02")], e.Description)
			}
		})
	}
}

func TestChapterStrategy_PagesWithUnpagedChapter(t *testing.T) {
	item := Item{ID: "o1", Content: Chapters{List: []Chapter{
		{Name: "Inleiding"},
		{Name: "H1", PageFrom: 1, PageTo: 4},
	}}}
	w := windows(2, 0)

	entries := ChapterStrategy{}.Allocate(item, w, "t1")

	require.Len(t, entries, 2)
	assert.Equal(t, "Lees Inleiding", entries[0].Description)
	assert.Equal(t, 30, entries[0].Minutes)
	assert.Equal(t, "Lees H1, pag 1-4", entries[1].Description)
	assert.Equal(t, w.Learning[1], entries[1].Date)
}

func TestChapterStrategy_NoLearningDays(t *testing.T) {
	item := Item{ID: "o1", Content: Chapters{Count: 3}}

	assert.Empty(t, ChapterStrategy{}.Allocate(item, Windows{}, "t1"))
}

// ── vocabulary ──

func TestVocabularyStrategy_SixtyWordsTenDays(t *testing.T) {
	item := Item{ID: "w1", Content: Vocabulary{Words: 60}}
	w := windows(10, 2)

	entries := VocabularyStrategy{}.Allocate(item, w, "t1")

	learn := byKind(entries, KindLearn)
	require.Len(t, learn, 3)
	assert.Equal(t, "Leer woordjes 1-25", learn[0].Description)
	assert.Equal(t, "Leer woordjes 26-50", learn[1].Description)
	assert.Equal(t, "Leer woordjes 51-60", learn[2].Description)
	assert.Equal(t, &Range{From: 51, To: 60}, learn[2].Words)
	for i, e := range learn {
		assert.Equal(t, w.Learning[i], e.Date)
		assert.Equal(t, 20, e.Minutes)
	}

	review := byKind(entries, KindReview)
	require.Len(t, review, 4)
	assert.Equal(t, "Herhaal woordjes 1-60", review[0].Description)
	assert.Equal(t, w.Learning[5], review[0].Date)
	assert.Equal(t, "Herhaal woordjes 26-60", review[1].Description)
	assert.Equal(t, "Herhaal woordjes 51-60", review[2].Description)
	assert.Equal(t, w.Learning[7], review[2].Date)
	assert.Equal(t, 15, review[2].Minutes)

	final := review[3]
	assert.Equal(t, "Herhaal alle woordjes (1-60)", final.Description)
	assert.Equal(t, w.Review[1], final.Date)
	assert.Equal(t, 25, final.Minutes)
	assert.Equal(t, &Range{From: 1, To: 60}, final.Words)
}

func TestVocabularyStrategy_SpacingInvariant(t *testing.T) {
	for words := 10; words <= 300; words += 35 {
		for days := 1; days <= 14; days++ {
			w := windows(days, 2)
			entries := VocabularyStrategy{}.Allocate(Item{ID: "w", Content: Vocabulary{Words: words}}, w, "t")

			learn := byKind(entries, KindLearn)
			review := byKind(entries, KindReview)
			require.NotEmpty(t, review)
			for _, r := range review[:len(review)-1] {
				for _, l := range learn {
					if l.Words.From < r.Words.From || l.Words.To > r.Words.To {
						continue
					}
					age := DaysBetween(l.Date, r.Date)
					assert.True(t, age >= 2 && age <= 5, "words=%d days=%d age=%d", words, days, age)
				}
			}
		}
	}
}

func TestVocabularyStrategy_AllWordsLearned(t *testing.T) {
	entries := VocabularyStrategy{}.Allocate(Item{ID: "w", Content: Vocabulary{Words: 130}}, windows(4, 0), "t")

	learned := 0
	for _, e := range byKind(entries, KindLearn) {
		learned += e.Words.Len()
	}
	assert.Equal(t, 130, learned)
}

func TestVocabularyStrategy_NoWords(t *testing.T) {
	assert.Empty(t, VocabularyStrategy{}.Allocate(Item{ID: "w", Content: Vocabulary{}}, windows(5, 1), "t"))
}

// ── exercises ──

func TestExerciseStrategy(t *testing.T) {
	item := Item{ID: "x", Content: Exercises{From: 1, To: 23, Section: "§2.1"}}
	w := windows(5, 1)

	entries := ExerciseStrategy{}.Allocate(item, w, "t")

	require.Len(t, entries, 6)
	assert.Equal(t, "Maak opgave 1-5 (§2.1)", entries[0].Description)
	assert.Equal(t, &Range{From: 1, To: 5}, entries[0].Exercises)
	assert.Equal(t, "Maak opgave 21-23 (§2.1)", entries[4].Description)
	assert.Equal(t, 40, entries[4].Minutes)
	assert.Equal(t, "Oefen moeilijke opgaven opnieuw", entries[5].Description)
	assert.Equal(t, 20, entries[5].Minutes)
}

func TestExerciseStrategy_MissingBound(t *testing.T) {
	assert.Empty(t, ExerciseStrategy{}.Allocate(Item{ID: "x", Content: Exercises{From: 4}}, windows(5, 1), "t"))
}

// ── grammar ──

func TestGrammarStrategy(t *testing.T) {
	item := Item{ID: "g", Content: Grammar{Topics: []string{"passé composé", "imparfait", "futur"}}}

	entries := GrammarStrategy{}.Allocate(item, windows(2, 1), "t")

	require.Len(t, entries, 3)
	assert.Equal(t, "Leer passé composé, imparfait", entries[0].Description)
	assert.Equal(t, "Leer futur", entries[1].Description)
	assert.Equal(t, 30, entries[1].Minutes)
	assert.Equal(t, "Herhaal alle grammatica", entries[2].Description)
	assert.Equal(t, 18, entries[2].Minutes)
}

// ── formulas ──

func TestFormulaStrategy(t *testing.T) {
	item := Item{ID: "f", Content: Formulas{Count: 12, Sections: "§3"}}
	w := windows(4, 1)

	entries := FormulaStrategy{}.Allocate(item, w, "t")

	learn := byKind(entries, KindLearn)
	require.Len(t, learn, 3)
	assert.Equal(t, "Leer formules 1-5 (§3)", learn[0].Description)
	assert.Equal(t, "Leer formules 6-10 (§3)", learn[1].Description)
	assert.Equal(t, w.Learning[0], learn[1].Date)
	assert.Equal(t, "Leer formules 11-12 (§3)", learn[2].Description)
	assert.Equal(t, w.Learning[1], learn[2].Date)

	review := byKind(entries, KindReview)
	require.Len(t, review, 3)
	for _, e := range review {
		assert.Equal(t, "Herhaal alle formules", e.Description)
		assert.Equal(t, 20, e.Minutes)
	}
	assert.Equal(t, w.Review[0], review[2].Date)
}

// ── text ──

func TestTextStrategy(t *testing.T) {
	item := Item{ID: "p", Content: Text{Pages: 25, BookChapters: "H1-H3"}}

	entries := TextStrategy{}.Allocate(item, windows(3, 1), "t")

	require.Len(t, entries, 4)
	assert.Equal(t, "Lees pagina 1-9 (H1-H3)", entries[0].Description)
	assert.Equal(t, 18, entries[0].Minutes)
	assert.Equal(t, "Lees pagina 19-25 (H1-H3)", entries[2].Description)
	assert.Equal(t, 14, entries[2].Minutes)
	assert.Equal(t, "Herlees belangrijke passages", entries[3].Description)
	assert.Equal(t, 18, entries[3].Minutes)
}

func TestTextStrategy_ExplicitEstimate(t *testing.T) {
	item := Item{ID: "p", EstimatedMinutes: 30, Content: Text{Pages: 10}}

	entries := TextStrategy{}.Allocate(item, windows(2, 1), "t")

	require.Len(t, entries, 3)
	assert.Equal(t, 30, entries[0].Minutes)
	assert.Equal(t, 9, entries[2].Minutes)
}

// ── coverage ──

func TestStrategies_Coverage(t *testing.T) {
	quantity := func(e Entry, c Content) int {
		switch c.(type) {
		case Chapters:
			return len(e.Chapters)
		case Exercises:
			return e.Exercises.Len()
		case Grammar:
			return len(strings.Split(strings.TrimPrefix(e.Description, "Leer "), ", "))
		case Text:
			var from, to int
			_, _ = fmt.Sscanf(e.Description, "Lees pagina %d-%d", &from, &to)
			return to - from + 1
		}
		return 0
	}

	for q := 1; q <= 30; q++ {
		topics := make([]string, q)
		for i := range topics {
			topics[i] = fmt.Sprintf("t%d", i)
		}
		contents := []Content{
			Chapters{Count: q},
			Exercises{From: 1, To: q},
			Grammar{Topics: topics},
			Text{Pages: q},
		}
		for d := 1; d <= 12; d++ {
			for _, c := range contents {
				s := DefaultStrategies()[c.Type()]
				entries := byKind(s.Allocate(Item{ID: "i", Content: c}, windows(d, 1), "t"), KindLearn)

				sum := 0
				for _, e := range entries {
					sum += quantity(e, c)
				}
				assert.Equal(t, min(q, d*ceilDiv(q, d)), sum, "type=%s q=%d d=%d", c.Type(), q, d)
				assert.LessOrEqual(t, len(entries), d)
			}
		}
	}
}
