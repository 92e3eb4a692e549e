package planner

import (
	"fmt"
	"time"
)

const (
	minutesWordReview      = 15
	minutesWordFinalReview = 25

	// A learned range is due for review this many days after learning.
	reviewMinAge = 2
	reviewMaxAge = 5
)

// VocabularyStrategy learns words in sessions of 25 during the first half of
// the learning days and reviews each session 2 to 5 days later.
type VocabularyStrategy struct{}

type learnedRange struct {
	Range
	on time.Time
}

func (VocabularyStrategy) Allocate(item Item, w Windows, testID string) []Entry {
	v, ok := item.Content.(Vocabulary)
	if !ok || !v.complete() || len(w.Learning) == 0 {
		return nil
	}
	b := newBuilder(item, testID)

	sessions := ceilDiv(v.Words, wordsPerSession)
	newDays := ceilDiv(len(w.Learning), 2)
	perDay := ceilDiv(sessions, newDays)

	var learned []learnedRange
	next := 1
	for _, day := range w.Learning[:newDays] {
		for s := 0; s < perDay && next <= v.Words; s++ {
			r := Range{From: next, To: min(next+wordsPerSession-1, v.Words)}
			e := b.learn(day, fmt.Sprintf("Leer woordjes %d-%d", r.From, r.To), minutesPerWordSession)
			e.Words = &Range{From: r.From, To: r.To}
			learned = append(learned, learnedRange{Range: r, on: day})
			next = r.To + 1
		}
	}

	for _, day := range restDays(w, newDays) {
		due, ok := dueRange(learned, day)
		if !ok {
			continue
		}
		e := b.review(day, "Herhaal woordjes "+rangeText(due.From, due.To), minutesWordReview)
		e.Words = &due
	}

	if n := len(w.Review); n > 0 {
		e := b.review(w.Review[n-1], fmt.Sprintf("Herhaal alle woordjes (1-%d)", v.Words), minutesWordFinalReview)
		e.Words = &Range{From: 1, To: v.Words}
	}
	return b.out
}

// dueRange merges every range learned 2 to 5 days before day into one span.
func dueRange(learned []learnedRange, day time.Time) (Range, bool) {
	var out Range
	found := false
	for _, l := range learned {
		age := DaysBetween(l.on, day)
		if age < reviewMinAge || age > reviewMaxAge {
			continue
		}
		if !found {
			out, found = l.Range, true
			continue
		}
		out.From = min(out.From, l.From)
		out.To = max(out.To, l.To)
	}
	return out, found
}
