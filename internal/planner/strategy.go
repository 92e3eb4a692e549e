package planner

import (
	"strconv"
	"strings"
	"time"
)

// Strategy allocates one content item over the planning windows. A strategy
// returns nil when the windows have no learning days or the item is not its
// type.
type Strategy interface {
	Allocate(item Item, w Windows, testID string) []Entry
}

// StrategyFunc adapts a function to Strategy.
type StrategyFunc func(item Item, w Windows, testID string) []Entry

func (f StrategyFunc) Allocate(item Item, w Windows, testID string) []Entry {
	return f(item, w, testID)
}

// DefaultStrategies returns a fresh registry with one strategy per type.
func DefaultStrategies() map[ContentType]Strategy {
	return map[ContentType]Strategy{
		TypeChapters:   ChapterStrategy{},
		TypeVocabulary: VocabularyStrategy{},
		TypeExercises:  ExerciseStrategy{},
		TypeGrammar:    GrammarStrategy{},
		TypeFormulas:   FormulaStrategy{},
		TypeText:       TextStrategy{},
	}
}

// entryBuilder stamps the item and test references on every entry.
type entryBuilder struct {
	testID string
	itemID string
	out    []Entry
}

func newBuilder(item Item, testID string) *entryBuilder {
	return &entryBuilder{testID: testID, itemID: item.ID}
}

func (b *entryBuilder) add(date time.Time, kind Kind, desc string, minutes int) *Entry {
	b.out = append(b.out, Entry{
		Date:        date,
		Kind:        kind,
		Description: desc,
		Minutes:     minutes,
		TestID:      b.testID,
		ItemID:      b.itemID,
	})
	return &b.out[len(b.out)-1]
}

func (b *entryBuilder) learn(date time.Time, desc string, minutes int) *Entry {
	return b.add(date, KindLearn, desc, minutes)
}

func (b *entryBuilder) review(date time.Time, desc string, minutes int) *Entry {
	return b.add(date, KindReview, desc, minutes)
}

// firstReview adds a review entry on the first review day, if there is one.
func (b *entryBuilder) firstReview(w Windows, desc string, minutes int) {
	if len(w.Review) > 0 {
		b.review(w.Review[0], desc, minutes)
	}
}

// restDays are the learning days after the first newDays plus all review
// days, in order.
func restDays(w Windows, newDays int) []time.Time {
	rest := make([]time.Time, 0, len(w.Learning)-newDays+len(w.Review))
	rest = append(rest, w.Learning[newDays:]...)
	return append(rest, w.Review...)
}

func chapterName(n int) string {
	return "Hoofdstuk " + strconv.Itoa(n)
}

func rangeText(from, to int) string {
	return strconv.Itoa(from) + "-" + strconv.Itoa(to)
}

// withNote appends " (note)" when note is set.
func withNote(s, note string) string {
	note = strings.TrimSpace(note)
	if note == "" {
		return s
	}
	return s + " (" + note + ")"
}
