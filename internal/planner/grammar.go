package planner

import "strings"

const reviewGrammarPercent = 60

// GrammarStrategy spreads grammar topics over the learning days, several per
// entry when there are more topics than days.
type GrammarStrategy struct{}

func (GrammarStrategy) Allocate(item Item, w Windows, testID string) []Entry {
	g, ok := item.Content.(Grammar)
	if !ok || !g.complete() || len(w.Learning) == 0 {
		return nil
	}
	b := newBuilder(item, testID)
	minutes := orDefault(item.EstimatedMinutes, minutesPerGrammarTopic)
	perDay := ceilDiv(len(g.Topics), len(w.Learning))

	for i, day := range w.Learning {
		start := i * perDay
		if start >= len(g.Topics) {
			break
		}
		end := min(start+perDay, len(g.Topics))
		b.learn(day, "Leer "+strings.Join(g.Topics[start:end], ", "), minutes)
	}

	b.firstReview(w, "Herhaal alle grammatica", ceilPercent(minutes, reviewGrammarPercent))
	return b.out
}
