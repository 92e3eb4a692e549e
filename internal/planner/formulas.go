package planner

import "fmt"

const (
	formulasPerSession    = 5
	minutesFormulaSession = 25
	minutesFormulaReview  = 20
)

// FormulaStrategy learns formulas in sessions of 5 during the first half of
// the learning days. Every later day reviews the whole set.
type FormulaStrategy struct{}

func (FormulaStrategy) Allocate(item Item, w Windows, testID string) []Entry {
	f, ok := item.Content.(Formulas)
	if !ok || !f.complete() || len(w.Learning) == 0 {
		return nil
	}
	b := newBuilder(item, testID)

	newDays := ceilDiv(len(w.Learning), 2)
	perDay := ceilDiv(ceilDiv(f.Count, formulasPerSession), newDays)

	next := 1
	for _, day := range w.Learning[:newDays] {
		for s := 0; s < perDay && next <= f.Count; s++ {
			to := min(next+formulasPerSession-1, f.Count)
			b.learn(day, withNote(fmt.Sprintf("Leer formules %d-%d", next, to), f.Sections), minutesFormulaSession)
			next = to + 1
		}
	}

	for _, day := range restDays(w, newDays) {
		b.review(day, "Herhaal alle formules", minutesFormulaReview)
	}
	return b.out
}
