package planner

// Per-type defaults used by the workload estimator.
const (
	minutesPerChapter       = 45
	wordsPerSession         = 25
	minutesPerWordSession   = 20
	exercisesPerBlock       = 10
	minutesPerExerciseBlock = 40
	minutesPerGrammarTopic  = 30
	minutesPerFormula       = 5
	minutesPerPage          = 2

	defaultEstimateWords    = 50
	defaultEstimateFormulas = 5
	defaultEstimatePages    = 10
)

// EstimateItem returns the expected study time of one item in minutes.
// An explicit estimate wins; otherwise a per-type formula applies.
func EstimateItem(it Item) int {
	if it.EstimatedMinutes > 0 {
		return it.EstimatedMinutes
	}
	switch c := it.Content.(type) {
	case Chapters:
		n := c.Count
		if n == 0 {
			n = len(c.List)
		}
		if n == 0 {
			n = 1
		}
		return n * minutesPerChapter
	case Vocabulary:
		return ceilDiv(orDefault(c.Words, defaultEstimateWords), wordsPerSession) * minutesPerWordSession
	case Exercises:
		return ceilDiv(orDefault(c.Count(), 1), exercisesPerBlock) * minutesPerExerciseBlock
	case Grammar:
		return orDefault(len(c.Topics), 1) * minutesPerGrammarTopic
	case Formulas:
		return orDefault(c.Count, defaultEstimateFormulas) * minutesPerFormula
	case Text:
		return orDefault(c.Pages, defaultEstimatePages) * minutesPerPage
	}
	return 0
}

// EstimateMinutes sums EstimateItem over items.
func EstimateMinutes(items []Item) int {
	total := 0
	for _, it := range items {
		total += EstimateItem(it)
	}
	return total
}

func orDefault(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}

func ceilDiv(a, b int) int {
	if a <= 0 || b <= 0 {
		return 0
	}
	return (a + b - 1) / b
}

// ceilPercent returns ceil(v * pct / 100).
func ceilPercent(v, pct int) int {
	return (v*pct + 99) / 100
}
