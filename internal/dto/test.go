package dto

// ── tests ("toetsen") ──

// ChapterRequest is one chapter of a chapters item. Page bounds are optional.
type ChapterRequest struct {
	Name     string `json:"naam"       yaml:"naam"       binding:"required,notblank,max=200"`
	PageFrom int    `json:"pagina_van" yaml:"pagina_van" binding:"omitempty,min=1"`
	PageTo   int    `json:"pagina_tot" yaml:"pagina_tot" binding:"omitempty,gtefield=PageFrom"`
}

// TestItemRequest is one content item ("onderdeel"). Only the fields that
// belong to Type are read; an item missing its quantity is stored and
// reported as a planning warning instead of being rejected.
type TestItemRequest struct {
	Type             string `json:"type"           yaml:"type"           binding:"required,itemtype"`
	EstimatedMinutes int    `json:"geschatte_tijd" yaml:"geschatte_tijd" binding:"omitempty,min=1,max=1440"`

	Chapters     []ChapterRequest `json:"hoofdstukken,omitempty"        yaml:"hoofdstukken"        binding:"omitempty,max=100,dive"`
	ChapterCount int              `json:"aantal_hoofdstukken,omitempty" yaml:"aantal_hoofdstukken" binding:"omitempty,min=1,max=100"`

	Words     int    `json:"aantal_woorden,omitempty"       yaml:"aantal_woorden"       binding:"omitempty,min=1,max=10000"`
	WordLists string `json:"woordenlijst_nummers,omitempty" yaml:"woordenlijst_nummers" binding:"omitempty,max=100"`

	ExerciseFrom int    `json:"opgaven_van,omitempty" yaml:"opgaven_van" binding:"omitempty,min=1"`
	ExerciseTo   int    `json:"opgaven_tot,omitempty" yaml:"opgaven_tot" binding:"omitempty,gtefield=ExerciseFrom"`
	Section      string `json:"paragraaf,omitempty"   yaml:"paragraaf"   binding:"omitempty,max=100"`

	GrammarTopics []string `json:"grammatica_onderwerpen,omitempty" yaml:"grammatica_onderwerpen" binding:"omitempty,max=50,dive,notblank,max=200"`

	FormulaCount    int    `json:"aantal_formules,omitempty"    yaml:"aantal_formules"    binding:"omitempty,min=1,max=500"`
	FormulaSections string `json:"formule_paragrafen,omitempty" yaml:"formule_paragrafen" binding:"omitempty,max=100"`

	Pages        int    `json:"aantal_paginas,omitempty"    yaml:"aantal_paginas"    binding:"omitempty,min=1,max=2000"`
	BookChapters string `json:"boek_hoofdstukken,omitempty" yaml:"boek_hoofdstukken" binding:"omitempty,max=100"`
}

// CreateTestRequest creates a test with its items and plans it.
type CreateTestRequest struct {
	SubjectID string            `json:"vak_id"     binding:"required,uuid"`
	Title     string            `json:"titel"      binding:"omitempty,max=200"`
	Date      string            `json:"datum"      binding:"required,datetime=2006-01-02"`
	Items     []TestItemRequest `json:"onderdelen" binding:"required,min=1,max=50,dive"`
}

// ReplaceItemsRequest replaces the whole item set of a test.
type ReplaceItemsRequest struct {
	Items []TestItemRequest `json:"onderdelen" binding:"required,min=1,max=50,dive"`
}

// PreviewRequest plans a test without storing anything. Today defaults to
// the current date.
type PreviewRequest struct {
	Date  string            `json:"datum"      yaml:"datum"      binding:"required,datetime=2006-01-02"`
	Today string            `json:"vandaag"    yaml:"vandaag"    binding:"omitempty,datetime=2006-01-02"`
	Items []TestItemRequest `json:"onderdelen" yaml:"onderdelen" binding:"required,min=1,max=50,dive"`
	// Settings override the stored settings for this preview only.
	Settings *UpdateSettingsRequest `json:"instellingen,omitempty" yaml:"instellingen"`
}

// ── responses ──

// TestItemResponse is a stored content item.
type TestItemResponse struct {
	ID       string `json:"id"`
	Position int    `json:"positie"`
	TestItemRequest
}

// ProgressResponse counts the planning entries of a test.
type ProgressResponse struct {
	Total   int `json:"totaal"`
	Done    int `json:"voltooid"`
	Percent int `json:"percentage"`
}

// TestResponse is one test.
type TestResponse struct {
	ID        string             `json:"id"`
	SubjectID string             `json:"vak_id"`
	Subject   *SubjectBrief      `json:"vak,omitempty"`
	Title     string             `json:"titel"`
	Date      string             `json:"datum"`
	DaysLeft  int                `json:"dagen_te_gaan"`
	Items     []TestItemResponse `json:"onderdelen,omitempty"`
	Progress  *ProgressResponse  `json:"voortgang,omitempty"`
	CreatedAt string             `json:"created_at"`
}

// WarningResponse is a non-fatal planning problem.
type WarningResponse struct {
	Code    string `json:"code"`
	ItemID  string `json:"onderdeel_id,omitempty"`
	Message string `json:"bericht"`
}

// PlanSummary describes the outcome of one plan generation.
type PlanSummary struct {
	LearningDays []string          `json:"leerdagen"`
	ReviewDays   []string          `json:"herhalingsdagen"`
	EntryCount   int               `json:"aantal_items"`
	TotalMinutes int               `json:"totale_tijd"`
	Warnings     []WarningResponse `json:"waarschuwingen"`
}

// TestPlanResponse is returned when a test is created or re-planned.
type TestPlanResponse struct {
	Test TestResponse `json:"toets"`
	Plan PlanSummary  `json:"planning"`
}

// PreviewResponse is a plan that was not stored.
type PreviewResponse struct {
	PlanSummary
	Entries []PlanningItemResponse `json:"items"`
}
