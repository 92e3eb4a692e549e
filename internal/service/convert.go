package service

import (
	"time"

	"studie-planner/internal/dto"
	"studie-planner/internal/model"
	"studie-planner/internal/planner"
)

// ── request → model ──

func testItemFromRequest(req dto.TestItemRequest, position int) model.TestItem {
	item := model.TestItem{
		Type:             req.Type,
		Position:         position,
		EstimatedMinutes: req.EstimatedMinutes,
	}
	switch planner.ContentType(req.Type) {
	case planner.TypeChapters:
		for _, ch := range req.Chapters {
			item.Chapters = append(item.Chapters, model.ChapterRef{Name: ch.Name, PageFrom: ch.PageFrom, PageTo: ch.PageTo})
		}
		item.ChapterCount = req.ChapterCount
	case planner.TypeVocabulary:
		item.Words = req.Words
		item.WordLists = req.WordLists
	case planner.TypeExercises:
		item.ExerciseFrom = req.ExerciseFrom
		item.ExerciseTo = req.ExerciseTo
		item.Section = req.Section
	case planner.TypeGrammar:
		item.GrammarTopics = model.JSONList[string](req.GrammarTopics)
	case planner.TypeFormulas:
		item.FormulaCount = req.FormulaCount
		item.FormulaSections = req.FormulaSections
	case planner.TypeText:
		item.Pages = req.Pages
		item.BookChapters = req.BookChapters
	}
	return item
}

func testItemsFromRequest(reqs []dto.TestItemRequest) []model.TestItem {
	items := make([]model.TestItem, len(reqs))
	for i, r := range reqs {
		items[i] = testItemFromRequest(r, i)
	}
	return items
}

// ── model → planner ──

func plannerItem(it *model.TestItem) planner.Item {
	out := planner.Item{ID: it.TestItemID, EstimatedMinutes: it.EstimatedMinutes}
	switch planner.ContentType(it.Type) {
	case planner.TypeChapters:
		c := planner.Chapters{Count: it.ChapterCount}
		for _, ch := range it.Chapters {
			c.List = append(c.List, planner.Chapter{Name: ch.Name, PageFrom: ch.PageFrom, PageTo: ch.PageTo})
		}
		out.Content = c
	case planner.TypeVocabulary:
		out.Content = planner.Vocabulary{Words: it.Words, Lists: it.WordLists}
	case planner.TypeExercises:
		out.Content = planner.Exercises{From: it.ExerciseFrom, To: it.ExerciseTo, Section: it.Section}
	case planner.TypeGrammar:
		out.Content = planner.Grammar{Topics: []string(it.GrammarTopics)}
	case planner.TypeFormulas:
		out.Content = planner.Formulas{Count: it.FormulaCount, Sections: it.FormulaSections}
	case planner.TypeText:
		out.Content = planner.Text{Pages: it.Pages, BookChapters: it.BookChapters}
	}
	return out
}

func plannerTest(t *model.Test) planner.Test {
	pt := planner.Test{
		ID:        t.TestID,
		Date:      planner.Day(t.Date),
		SubjectID: t.SubjectID,
		Items:     make([]planner.Item, len(t.Items)),
	}
	for i := range t.Items {
		pt.Items[i] = plannerItem(&t.Items[i])
	}
	return pt
}

func plannerSettings(s *model.UserSettings) planner.Settings {
	if s == nil {
		return planner.DefaultSettings()
	}
	return planner.Settings{
		DailyMinutes:        s.DailyMinutes,
		StudyOnWeekends:     s.StudyOnWeekends,
		BufferDays:          s.BufferDays,
		RepetitionFrequency: s.RepetitionFrequency,
	}
}

func plannerHomework(hw *model.Homework) planner.Homework {
	return planner.Homework{
		ID:               hw.HomeworkID,
		Type:             planner.HomeworkType(hw.Type),
		Description:      hw.Description,
		Deadline:         planner.Day(hw.Deadline),
		EstimatedMinutes: hw.EstimatedMinutes,
	}
}

// ── planner → model ──

func planningItemFromEntry(userID string, e planner.Entry) model.PlanningItem {
	item := model.PlanningItem{
		UserID:           userID,
		Date:             e.Date,
		Kind:             string(e.Kind),
		Description:      e.Description,
		EstimatedMinutes: e.Minutes,
		ChapterNumbers:   model.IntArray(e.Chapters),
	}
	if e.TestID != "" {
		item.TestID = strPtr(e.TestID)
	}
	if e.ItemID != "" {
		item.TestItemID = strPtr(e.ItemID)
	}
	if e.Words != nil {
		item.WordsFrom, item.WordsTo = intPtr(e.Words.From), intPtr(e.Words.To)
	}
	if e.Exercises != nil {
		item.ExercisesFrom, item.ExercisesTo = intPtr(e.Exercises.From), intPtr(e.Exercises.To)
	}
	return item
}

func planningItemsFromEntries(userID string, entries []planner.Entry) []model.PlanningItem {
	items := make([]model.PlanningItem, len(entries))
	for i, e := range entries {
		items[i] = planningItemFromEntry(userID, e)
	}
	return items
}

// ── → response ──

func subjectBrief(s *model.Subject) *dto.SubjectBrief {
	if s == nil {
		return nil
	}
	return &dto.SubjectBrief{ID: s.SubjectID, Name: s.Name, Color: s.Color}
}

func userBrief(u *model.User) *dto.UserBrief {
	if u == nil {
		return nil
	}
	return &dto.UserBrief{ID: u.UserID, Name: u.Name, Role: u.Role}
}

func testItemToResponse(it *model.TestItem) dto.TestItemResponse {
	req := dto.TestItemRequest{
		Type:             it.Type,
		EstimatedMinutes: it.EstimatedMinutes,
		ChapterCount:     it.ChapterCount,
		Words:            it.Words,
		WordLists:        it.WordLists,
		ExerciseFrom:     it.ExerciseFrom,
		ExerciseTo:       it.ExerciseTo,
		Section:          it.Section,
		GrammarTopics:    []string(it.GrammarTopics),
		FormulaCount:     it.FormulaCount,
		FormulaSections:  it.FormulaSections,
		Pages:            it.Pages,
		BookChapters:     it.BookChapters,
	}
	for _, ch := range it.Chapters {
		req.Chapters = append(req.Chapters, dto.ChapterRequest{Name: ch.Name, PageFrom: ch.PageFrom, PageTo: ch.PageTo})
	}
	return dto.TestItemResponse{ID: it.TestItemID, Position: it.Position, TestItemRequest: req}
}

func planningItemToResponse(p *model.PlanningItem) dto.PlanningItemResponse {
	r := dto.PlanningItemResponse{
		ID:          p.PlanningItemID,
		Date:        dto.FormatDate(p.Date),
		Kind:        p.Kind,
		Source:      "toets",
		Description: p.Description,
		Minutes:     p.EstimatedMinutes,
		Done:        p.Done,
		CarriedOver: p.CarriedOver,
		TestID:      deref(p.TestID),
		TestItemID:  deref(p.TestItemID),
		HomeworkID:  deref(p.HomeworkID),
		Chapters:    []int(p.ChapterNumbers),
	}
	if p.HomeworkID != nil {
		r.Source = "huiswerk"
	}
	if p.DoneAt != nil {
		r.DoneAt = p.DoneAt.Format(time.RFC3339)
	}
	switch {
	case p.Test != nil:
		r.Subject = subjectBrief(p.Test.Subject)
	case p.Homework != nil:
		r.Subject = subjectBrief(p.Homework.Subject)
	}
	if p.WordsFrom != nil && p.WordsTo != nil {
		r.Words = &dto.RangeResponse{From: *p.WordsFrom, To: *p.WordsTo}
	}
	if p.ExercisesFrom != nil && p.ExercisesTo != nil {
		r.Exercises = &dto.RangeResponse{From: *p.ExercisesFrom, To: *p.ExercisesTo}
	}
	return r
}

func entryToResponse(e planner.Entry) dto.PlanningItemResponse {
	r := dto.PlanningItemResponse{
		Date:        dto.FormatDate(e.Date),
		Kind:        string(e.Kind),
		Source:      "toets",
		Description: e.Description,
		Minutes:     e.Minutes,
		TestItemID:  e.ItemID,
		Chapters:    e.Chapters,
	}
	if e.Words != nil {
		r.Words = &dto.RangeResponse{From: e.Words.From, To: e.Words.To}
	}
	if e.Exercises != nil {
		r.Exercises = &dto.RangeResponse{From: e.Exercises.From, To: e.Exercises.To}
	}
	return r
}

func planSummary(plan planner.Plan) dto.PlanSummary {
	s := dto.PlanSummary{
		LearningDays: formatDates(plan.LearningDays),
		ReviewDays:   formatDates(plan.ReviewDays),
		EntryCount:   len(plan.Entries),
		TotalMinutes: plan.TotalMinutes,
		Warnings:     make([]dto.WarningResponse, 0, len(plan.Warnings)),
	}
	for _, w := range plan.Warnings {
		s.Warnings = append(s.Warnings, dto.WarningResponse{Code: w.Code, ItemID: w.ItemID, Message: w.Message})
	}
	return s
}

// ── helpers ──

func formatDates(days []time.Time) []string {
	out := make([]string, len(days))
	for i, d := range days {
		out[i] = dto.FormatDate(d)
	}
	return out
}

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
