package dto

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

func newValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	v.SetTagName("binding")
	if err := Register(v); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	return v
}

func TestItemTypeValidation(t *testing.T) {
	v := newValidator(t)

	ok := TestItemRequest{Type: "woordjes", Words: 60}
	if err := v.Struct(ok); err != nil {
		t.Errorf("expected valid item, got %v", err)
	}

	bad := TestItemRequest{Type: "liedjes"}
	err := v.Struct(bad)
	if err == nil {
		t.Fatal("expected unknown type to fail")
	}
	if msg := FirstError(err); msg != "type is geen bekend onderdeeltype" {
		t.Errorf("unexpected message: %s", msg)
	}
}

func TestExerciseRangeValidation(t *testing.T) {
	v := newValidator(t)

	// A missing upper bound is allowed; planning reports it as a warning.
	if err := v.Struct(TestItemRequest{Type: "opgaven", ExerciseFrom: 1}); err != nil {
		t.Errorf("expected missing opgaven_tot to pass validation, got %v", err)
	}
	if err := v.Struct(TestItemRequest{Type: "opgaven", ExerciseFrom: 10, ExerciseTo: 5}); err == nil {
		t.Error("expected reversed range to fail")
	}
}

func TestCreateTestRequestValidation(t *testing.T) {
	v := newValidator(t)

	req := CreateTestRequest{
		SubjectID: "0b7e8f0e-8f6c-4c7e-9a39-8d1f4b0b6a11",
		Date:      "2024-06-13",
		Items:     []TestItemRequest{{Type: "hoofdstukken", ChapterCount: 6}},
	}
	if err := v.Struct(req); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}

	req.Date = "13-06-2024"
	if err := v.Struct(req); err == nil {
		t.Error("expected bad date to fail")
	}

	req.Date = "2024-06-13"
	req.Items = nil
	if err := v.Struct(req); err == nil {
		t.Error("expected empty item list to fail")
	}
}

func TestNotBlankAndGame(t *testing.T) {
	v := newValidator(t)

	if err := v.Struct(CreateAnswerRequest{Body: "   "}); err == nil {
		t.Error("expected blank answer to fail")
	}
	if err := v.Struct(SaveScoreRequest{Game: "tetris", Score: 10}); err == nil {
		t.Error("expected unknown game to fail")
	}
	if err := v.Struct(SaveScoreRequest{Game: "paratrooper", Score: 10}); err != nil {
		t.Errorf("expected paratrooper to pass, got %v", err)
	}
}

func TestPagination(t *testing.T) {
	p := PaginationRequest{}
	if p.GetPage() != 1 || p.GetPageSize() != 20 || p.GetOffset() != 0 {
		t.Errorf("unexpected defaults: %d %d %d", p.GetPage(), p.GetPageSize(), p.GetOffset())
	}
	p = PaginationRequest{Page: 3, PageSize: 10}
	if p.GetOffset() != 20 {
		t.Errorf("expected offset 20, got %d", p.GetOffset())
	}
}
