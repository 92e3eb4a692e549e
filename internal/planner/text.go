package planner

const (
	reviewTextPercent = 30
	// reviewTextBase is the reread estimate base when no explicit estimate
	// is given.
	reviewTextBase = 60
)

// TextStrategy splits a page count evenly over the learning days.
type TextStrategy struct{}

func (TextStrategy) Allocate(item Item, w Windows, testID string) []Entry {
	t, ok := item.Content.(Text)
	if !ok || !t.complete() || len(w.Learning) == 0 {
		return nil
	}
	b := newBuilder(item, testID)
	perDay := ceilDiv(t.Pages, len(w.Learning))

	next := 1
	for _, day := range w.Learning {
		if next > t.Pages {
			break
		}
		to := min(next+perDay-1, t.Pages)
		minutes := orDefault(item.EstimatedMinutes, (to-next+1)*minutesPerPage)
		b.learn(day, withNote("Lees pagina "+rangeText(next, to), t.BookChapters), minutes)
		next = to + 1
	}

	b.firstReview(w, "Herlees belangrijke passages",
		ceilPercent(orDefault(item.EstimatedMinutes, reviewTextBase), reviewTextPercent))
	return b.out
}
