package planner

const (
	minutesExerciseEntry   = 40
	reviewExercisesPercent = 50
)

// ExerciseStrategy splits the exercise range evenly over the learning days.
type ExerciseStrategy struct{}

func (ExerciseStrategy) Allocate(item Item, w Windows, testID string) []Entry {
	x, ok := item.Content.(Exercises)
	if !ok || !x.complete() || len(w.Learning) == 0 {
		return nil
	}
	b := newBuilder(item, testID)
	minutes := orDefault(item.EstimatedMinutes, minutesExerciseEntry)
	perDay := ceilDiv(x.Count(), len(w.Learning))

	next := x.From
	for _, day := range w.Learning {
		if next > x.To {
			break
		}
		r := Range{From: next, To: min(next+perDay-1, x.To)}
		e := b.learn(day, withNote("Maak opgave "+rangeText(r.From, r.To), x.Section), minutes)
		e.Exercises = &r
		next = r.To + 1
	}

	b.firstReview(w, "Oefen moeilijke opgaven opnieuw", ceilPercent(minutes, reviewExercisesPercent))
	return b.out
}
