package model

import "time"

// Test is a dated assessment ("toets"). Table tests.
type Test struct {
	TestID    string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"test_id"`
	UserID    string    `gorm:"type:uuid;not null;index"                       json:"user_id"`
	SubjectID string    `gorm:"type:uuid;not null"                             json:"subject_id"`
	Title     string    `gorm:"type:varchar(200);not null"                     json:"title"`
	Date      time.Time `gorm:"type:date;not null"                             json:"date"`
	BaseModel

	Subject *Subject   `gorm:"foreignKey:SubjectID;references:SubjectID" json:"subject,omitempty"`
	Items   []TestItem `gorm:"foreignKey:TestID"                         json:"items,omitempty"`
}

func (Test) TableName() string { return "tests" }

// ChapterRef is one chapter of a chapters item, stored inside JSONB.
type ChapterRef struct {
	Name     string `json:"naam"`
	PageFrom int    `json:"pagina_van,omitempty"`
	PageTo   int    `json:"pagina_tot,omitempty"`
}

// TestItem is one content item ("onderdeel") of a test. Table test_items.
// Only the columns belonging to Type are meaningful.
type TestItem struct {
	TestItemID       string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"test_item_id"`
	TestID           string    `gorm:"type:uuid;not null;index"                       json:"test_id"`
	Type             string    `gorm:"type:varchar(20);not null"                      json:"type"`
	Position         int       `gorm:"not null;default:0"                             json:"position"`
	EstimatedMinutes int       `gorm:"not null;default:0"                             json:"estimated_minutes"`
	CreatedAt        time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`

	// hoofdstukken
	Chapters     JSONList[ChapterRef] `gorm:"type:jsonb" json:"chapters,omitempty"`
	ChapterCount int                  `gorm:"not null;default:0" json:"chapter_count,omitempty"`
	// woordjes
	Words     int    `gorm:"not null;default:0"  json:"words,omitempty"`
	WordLists string `gorm:"type:varchar(100)"    json:"word_lists,omitempty"`
	// opgaven
	ExerciseFrom int    `gorm:"not null;default:0" json:"exercise_from,omitempty"`
	ExerciseTo   int    `gorm:"not null;default:0" json:"exercise_to,omitempty"`
	Section      string `gorm:"type:varchar(100)"   json:"section,omitempty"`
	// grammatica
	GrammarTopics JSONList[string] `gorm:"type:jsonb" json:"grammar_topics,omitempty"`
	// formules
	FormulaCount    int    `gorm:"not null;default:0" json:"formula_count,omitempty"`
	FormulaSections string `gorm:"type:varchar(100)"   json:"formula_sections,omitempty"`
	// tekst
	Pages        int    `gorm:"not null;default:0" json:"pages,omitempty"`
	BookChapters string `gorm:"type:varchar(100)"   json:"book_chapters,omitempty"`
}

func (TestItem) TableName() string { return "test_items" }
