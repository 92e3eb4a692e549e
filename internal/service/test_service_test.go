package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"studie-planner/internal/dto"
	"studie-planner/internal/model"
	"studie-planner/internal/planner"
	"studie-planner/internal/repository"
)

// ── helpers ──

func setupTestTestService() (TestService, *mocks) {
	repo, m := newMockRepository()
	m.users.add("user-1", "Sanne", model.RoleStudent, "house-1")
	_ = m.subjects.Create(context.Background(), &model.Subject{SubjectID: "subject-bio", UserID: "user-1", Name: "Biologie", Color: "#22c55e"})
	svc := NewTestService(repo, newTestGenerator(fixedClock(testMonday)), zap.NewNop())
	return svc, m
}

func chaptersRequest(date string, count int) *dto.CreateTestRequest {
	return &dto.CreateTestRequest{
		SubjectID: "subject-bio",
		Date:      date,
		Items:     []dto.TestItemRequest{{Type: string(planner.TypeChapters), ChapterCount: count}},
	}
}

// ── Create ──

func TestTestService_Create_GeneratesPlan(t *testing.T) {
	svc, m := setupTestTestService()

	resp, err := svc.Create(context.Background(), "user-1", chaptersRequest("2024-06-13", 6))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Test.Title != "Biologie" {
		t.Errorf("title should default to the subject name, got %q", resp.Test.Title)
	}
	if resp.Plan.EntryCount == 0 {
		t.Fatal("expected planning entries")
	}
	if len(resp.Plan.Warnings) != 0 {
		t.Errorf("expected no warnings, got %+v", resp.Plan.Warnings)
	}

	stored := m.planning.byTest(resp.Test.ID)
	if len(stored) != resp.Plan.EntryCount {
		t.Fatalf("stored %d entries, summary reports %d", len(stored), resp.Plan.EntryCount)
	}
	for _, p := range stored {
		if p.UserID != "user-1" {
			t.Errorf("entry belongs to %q", p.UserID)
		}
		if p.Date.Before(day("2024-06-03")) || !p.Date.Before(day("2024-06-13")) {
			t.Errorf("entry on %s is outside the planning range", p.Date.Format("2006-01-02"))
		}
		if p.TestItemID == nil || *p.TestItemID == "" {
			t.Error("entry should reference its test item")
		}
	}
}

func TestTestService_Create_SubjectNotFound(t *testing.T) {
	svc, _ := setupTestTestService()

	req := chaptersRequest("2024-06-13", 3)
	req.SubjectID = "missing"
	_, err := svc.Create(context.Background(), "user-1", req)
	if !errors.Is(err, ErrSubjectNotFound) {
		t.Errorf("expected ErrSubjectNotFound, got %v", err)
	}
}

func TestTestService_Create_OtherUsersSubject(t *testing.T) {
	svc, _ := setupTestTestService()

	_, err := svc.Create(context.Background(), "user-2", chaptersRequest("2024-06-13", 3))
	if !errors.Is(err, ErrSubjectNotFound) {
		t.Errorf("expected ErrSubjectNotFound, got %v", err)
	}
}

func TestTestService_Create_InvalidDate(t *testing.T) {
	svc, _ := setupTestTestService()

	_, err := svc.Create(context.Background(), "user-1", chaptersRequest("13-06-2024", 3))
	if !errors.Is(err, ErrTestDateInvalid) {
		t.Errorf("expected ErrTestDateInvalid, got %v", err)
	}
}

func TestTestService_Create_NoAvailabilityStillSaves(t *testing.T) {
	svc, m := setupTestTestService()

	resp, err := svc.Create(context.Background(), "user-1", chaptersRequest("2024-06-03", 4))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := m.tests.tests[resp.Test.ID]; !ok {
		t.Fatal("test should be stored")
	}
	if resp.Plan.EntryCount != 0 {
		t.Errorf("expected no entries, got %d", resp.Plan.EntryCount)
	}
	if len(resp.Plan.Warnings) != 1 || resp.Plan.Warnings[0].Code != planner.WarnNoAvailability {
		t.Errorf("expected a no_availability warning, got %+v", resp.Plan.Warnings)
	}
}

func TestTestService_Create_IncompleteItemWarns(t *testing.T) {
	svc, _ := setupTestTestService()

	req := chaptersRequest("2024-06-13", 2)
	req.Items = append(req.Items, dto.TestItemRequest{Type: string(planner.TypeExercises), ExerciseFrom: 1})
	resp, err := svc.Create(context.Background(), "user-1", req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Plan.Warnings) != 1 || resp.Plan.Warnings[0].Code != planner.WarnIncompleteItem {
		t.Fatalf("expected one incomplete_item warning, got %+v", resp.Plan.Warnings)
	}
	if resp.Plan.Warnings[0].ItemID != resp.Test.Items[1].ID {
		t.Errorf("warning should point at the exercises item")
	}
}

// ── Regenerate ──

func TestTestService_Regenerate_ReplacesEntries(t *testing.T) {
	svc, m := setupTestTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "user-1", chaptersRequest("2024-06-13", 6))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	before := len(m.planning.byTest(created.Test.ID))

	for i := 0; i < 3; i++ {
		if _, err := svc.Regenerate(ctx, "user-1", created.Test.ID); err != nil {
			t.Fatalf("regenerate %d: %v", i, err)
		}
	}
	if after := len(m.planning.byTest(created.Test.ID)); after != before {
		t.Errorf("regenerating should replace entries: before %d, after %d", before, after)
	}
}

func TestTestService_Regenerate_NotOwner(t *testing.T) {
	svc, _ := setupTestTestService()
	ctx := context.Background()

	created, _ := svc.Create(ctx, "user-1", chaptersRequest("2024-06-13", 2))
	_, err := svc.Regenerate(ctx, "user-2", created.Test.ID)
	if !errors.Is(err, ErrTestNotFound) {
		t.Errorf("expected ErrTestNotFound, got %v", err)
	}
}

// spyLocker records whether the regeneration lock is held.
type spyLocker struct {
	held    bool
	locks   int
	unlocks int
}

func (l *spyLocker) Lock(_ context.Context, _ string, _ time.Duration) (func(), error) {
	l.held = true
	l.locks++
	return func() {
		l.held = false
		l.unlocks++
	}, nil
}

func TestPlanGenerator_LockedTx_UnlocksAfterTransaction(t *testing.T) {
	repo, m := newMockRepository()
	m.users.add("user-1", "Sanne", model.RoleStudent, "house-1")
	_ = m.subjects.Create(context.Background(), &model.Subject{SubjectID: "subject-bio", UserID: "user-1", Name: "Biologie"})
	ctx := context.Background()

	spy := &spyLocker{}
	gen := newTestGenerator(fixedClock(testMonday))
	gen.locker = spy
	svc := NewTestService(repo, gen, zap.NewNop())

	created, err := svc.Create(ctx, "user-1", chaptersRequest("2024-06-13", 3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	heldAtEnd := false
	err = gen.lockedTx(ctx, repo, created.Test.ID, func(tx *repository.Repository) error {
		test, err := tx.Test.GetByID(ctx, created.Test.ID)
		if err != nil {
			return err
		}
		if _, err := gen.regenerate(ctx, tx, test); err != nil {
			return err
		}
		heldAtEnd = spy.held
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !heldAtEnd {
		t.Error("lock should still be held when the transaction body returns")
	}
	if spy.held || spy.unlocks != 1 {
		t.Errorf("lock should be released once after the transaction, held=%v unlocks=%d", spy.held, spy.unlocks)
	}
}

func TestPlanGenerator_LockedTx_UnknownTest(t *testing.T) {
	repo, _ := newMockRepository()
	spy := &spyLocker{}
	gen := newTestGenerator(fixedClock(testMonday))
	gen.locker = spy

	called := false
	err := gen.lockedTx(context.Background(), repo, "missing", func(*repository.Repository) error {
		called = true
		return nil
	})
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("expected ErrRecordNotFound from the row lock, got %v", err)
	}
	if called {
		t.Error("body should not run without the row lock")
	}
	if spy.unlocks != 1 {
		t.Errorf("lock should be released on failure, unlocks=%d", spy.unlocks)
	}
}

func TestTestService_Regenerate_TakesBothLocks(t *testing.T) {
	repo, m := newMockRepository()
	m.users.add("user-1", "Sanne", model.RoleStudent, "house-1")
	_ = m.subjects.Create(context.Background(), &model.Subject{SubjectID: "subject-bio", UserID: "user-1", Name: "Biologie"})
	ctx := context.Background()

	spy := &spyLocker{}
	gen := newTestGenerator(fixedClock(testMonday))
	gen.locker = spy
	svc := NewTestService(repo, gen, zap.NewNop())

	created, err := svc.Create(ctx, "user-1", chaptersRequest("2024-06-13", 3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Regenerate(ctx, "user-1", created.Test.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.ReplaceItems(ctx, "user-1", created.Test.ID, &dto.ReplaceItemsRequest{
		Items: []dto.TestItemRequest{{Type: string(planner.TypeChapters), ChapterCount: 2}},
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if spy.locks != 2 || spy.unlocks != 2 || spy.held {
		t.Errorf("expected 2 balanced locks, locks=%d unlocks=%d held=%v", spy.locks, spy.unlocks, spy.held)
	}
	if len(m.tests.rowLocks) != 2 || m.tests.rowLocks[0] != created.Test.ID {
		t.Errorf("expected a row lock per change, got %v", m.tests.rowLocks)
	}
}

// ── ReplaceItems ──

func TestTestService_ReplaceItems(t *testing.T) {
	svc, m := setupTestTestService()
	ctx := context.Background()

	created, _ := svc.Create(ctx, "user-1", chaptersRequest("2024-06-13", 6))
	resp, err := svc.ReplaceItems(ctx, "user-1", created.Test.ID, &dto.ReplaceItemsRequest{
		Items: []dto.TestItemRequest{{Type: string(planner.TypeGrammar), GrammarTopics: []string{"passé composé"}}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Test.Items) != 1 || resp.Test.Items[0].Type != string(planner.TypeGrammar) {
		t.Fatalf("items not replaced: %+v", resp.Test.Items)
	}
	for _, p := range m.planning.byTest(created.Test.ID) {
		if *p.TestItemID != resp.Test.Items[0].ID {
			t.Errorf("entry %s still references an old item", p.PlanningItemID)
		}
	}
}

// ── List / Get / Delete ──

func TestTestService_List_Progress(t *testing.T) {
	svc, m := setupTestTestService()
	ctx := context.Background()

	created, _ := svc.Create(ctx, "user-1", chaptersRequest("2024-06-13", 6))
	entries := m.planning.byTest(created.Test.ID)
	entries[0].Done = true

	list, err := svc.List(ctx, "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 test, got %d", len(list))
	}
	p := list[0].Progress
	if p == nil || p.Total != len(entries) || p.Done != 1 {
		t.Errorf("unexpected progress %+v", p)
	}
	if list[0].DaysLeft != 10 {
		t.Errorf("expected 10 days left, got %d", list[0].DaysLeft)
	}
}

func TestTestService_Get_NotFound(t *testing.T) {
	svc, _ := setupTestTestService()

	_, err := svc.Get(context.Background(), "user-1", "nonexistent")
	if !errors.Is(err, ErrTestNotFound) {
		t.Errorf("expected ErrTestNotFound, got %v", err)
	}
}

func TestTestService_Delete(t *testing.T) {
	svc, m := setupTestTestService()
	ctx := context.Background()

	created, _ := svc.Create(ctx, "user-1", chaptersRequest("2024-06-13", 2))
	if err := svc.Delete(ctx, "user-1", created.Test.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := m.tests.tests[created.Test.ID]; ok {
		t.Error("test should be deleted")
	}
}

// ── Preview ──

func TestTestService_Preview_StoresNothing(t *testing.T) {
	svc, m := setupTestTestService()

	minutes := 60
	resp, err := svc.Preview(context.Background(), "user-1", &dto.PreviewRequest{
		Date:     "2024-06-13",
		Items:    []dto.TestItemRequest{{Type: string(planner.TypeVocabulary), Words: 60}},
		Settings: &dto.UpdateSettingsRequest{DailyMinutes: &minutes},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Entries) == 0 || resp.EntryCount != len(resp.Entries) {
		t.Fatalf("expected preview entries, got %d (summary %d)", len(resp.Entries), resp.EntryCount)
	}
	if resp.Entries[0].TestItemID != "onderdeel-1" {
		t.Errorf("preview items should be numbered, got %q", resp.Entries[0].TestItemID)
	}
	if len(m.planning.items) != 0 || len(m.tests.tests) != 0 {
		t.Error("preview must not store anything")
	}
}

func TestTestService_Preview_ExplicitToday(t *testing.T) {
	svc, _ := setupTestTestService()

	resp, err := svc.Preview(context.Background(), "user-1", &dto.PreviewRequest{
		Date:  "2024-06-13",
		Today: "2024-06-13",
		Items: []dto.TestItemRequest{{Type: string(planner.TypeChapters), ChapterCount: 2}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Entries) != 0 {
		t.Errorf("a test on today has nothing to plan, got %d entries", len(resp.Entries))
	}
}
