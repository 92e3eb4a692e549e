// Package planner turns a test and its content items into a dated study
// schedule. It performs no I/O and never reads the system clock; callers pass
// "today" explicitly.
package planner

import (
	"fmt"
	"time"
)

// Defaults for Settings, matching a freshly created user.
const (
	DefaultDailyMinutes        = 120
	DefaultStudyOnWeekends     = true
	DefaultBufferDays          = 2
	DefaultRepetitionFrequency = 3
)

// Test is a dated assessment with its content items ("toets").
type Test struct {
	ID        string
	Date      time.Time
	SubjectID string
	Items     []Item
}

// Settings are the per-user planning preferences.
type Settings struct {
	DailyMinutes    int
	StudyOnWeekends bool
	BufferDays      int
	// RepetitionFrequency is stored with the settings but not used when
	// scheduling.
	RepetitionFrequency int
}

// DefaultSettings returns the settings used when a user has none stored.
func DefaultSettings() Settings {
	return Settings{
		DailyMinutes:        DefaultDailyMinutes,
		StudyOnWeekends:     DefaultStudyOnWeekends,
		BufferDays:          DefaultBufferDays,
		RepetitionFrequency: DefaultRepetitionFrequency,
	}
}

// Kind distinguishes first exposure from review.
type Kind string

const (
	KindLearn  Kind = "leren"
	KindReview Kind = "herhalen"
)

// Range is an inclusive numeric range.
type Range struct {
	From int `json:"van"`
	To   int `json:"tot"`
}

// Len returns the number of units in r.
func (r Range) Len() int { return r.To - r.From + 1 }

// Entry is one dated, time-boxed study task.
type Entry struct {
	Date        time.Time
	Kind        Kind
	Description string
	Minutes     int
	TestID      string
	ItemID      string

	Chapters  []int
	Words     *Range
	Exercises *Range
}

// Warning codes reported on a Plan.
const (
	WarnNoAvailability = "no_availability"
	WarnIncompleteItem = "incomplete_item"
	WarnNoStrategy     = "no_strategy"
)

// Warning is a non-fatal problem found while planning.
type Warning struct {
	Code    string `json:"code"`
	ItemID  string `json:"item_id,omitempty"`
	Message string `json:"message"`
}

// Plan is the result of one generation run.
type Plan struct {
	Entries      []Entry
	LearningDays []time.Time
	ReviewDays   []time.Time
	// TotalMinutes is the estimated workload of all items.
	TotalMinutes int
	Warnings     []Warning
}

// ════════════════════════════════════════════════════════════
// Planner
// ════════════════════════════════════════════════════════════

// Planner generates plans. The zero value is not usable; call New.
// A Planner is immutable after construction and safe for concurrent use.
type Planner struct {
	policy     StartPolicy
	strategies map[ContentType]Strategy
}

// Option configures a Planner.
type Option func(*Planner)

// WithStartPolicy selects how much of the availability window is used.
func WithStartPolicy(p StartPolicy) Option {
	return func(pl *Planner) { pl.policy = p }
}

// WithStrategy replaces the strategy for one content type.
func WithStrategy(t ContentType, s Strategy) Option {
	return func(pl *Planner) { pl.strategies[t] = s }
}

// New returns a Planner with the built-in strategies and the deferred start
// policy.
func New(opts ...Option) *Planner {
	p := &Planner{
		policy:     StartDeferred,
		strategies: DefaultStrategies(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Policy returns the configured start policy.
func (p *Planner) Policy() StartPolicy { return p.policy }

// Generate schedules every item of test between today and the test date.
func (p *Planner) Generate(test Test, settings Settings, today time.Time) Plan {
	plan := Plan{TotalMinutes: EstimateMinutes(test.Items)}

	all := AvailableDays(today, test.Date, settings.StudyOnWeekends)
	if len(all) == 0 {
		plan.Warnings = append(plan.Warnings, Warning{
			Code:    WarnNoAvailability,
			Message: "geen beschikbare studiedagen voor de toetsdatum",
		})
		return plan
	}

	days := p.policy.leadIn(all, plan.TotalMinutes, settings.DailyMinutes)
	w := SplitWindows(days, settings.BufferDays)
	plan.LearningDays = w.Learning
	plan.ReviewDays = w.Review

	for _, item := range test.Items {
		if !item.Complete() {
			plan.Warnings = append(plan.Warnings, Warning{
				Code:    WarnIncompleteItem,
				ItemID:  item.ID,
				Message: "onderdeel mist verplichte velden en is overgeslagen",
			})
			continue
		}
		s, ok := p.strategies[item.Content.Type()]
		if !ok {
			plan.Warnings = append(plan.Warnings, Warning{
				Code:    WarnNoStrategy,
				ItemID:  item.ID,
				Message: fmt.Sprintf("geen planner voor type %q", item.Content.Type()),
			})
			continue
		}
		plan.Entries = append(plan.Entries, s.Allocate(item, w, test.ID)...)
	}
	return plan
}
