package planner

// ContentType tags the kind of material a content item holds.
type ContentType string

const (
	TypeChapters   ContentType = "hoofdstukken"
	TypeVocabulary ContentType = "woordjes"
	TypeExercises  ContentType = "opgaven"
	TypeGrammar    ContentType = "grammatica"
	TypeFormulas   ContentType = "formules"
	TypeText       ContentType = "tekst"
)

// ContentTypes lists every supported type in display order.
var ContentTypes = []ContentType{
	TypeChapters, TypeVocabulary, TypeExercises, TypeGrammar, TypeFormulas, TypeText,
}

// Valid reports whether t is one of the known content types.
func (t ContentType) Valid() bool {
	for _, ct := range ContentTypes {
		if ct == t {
			return true
		}
	}
	return false
}

// Content is the type-specific payload of an Item. The set of variants is
// closed: only the types in this package implement it.
type Content interface {
	Type() ContentType
	// complete reports whether the variant carries the quantity fields its
	// strategy needs.
	complete() bool
}

// Item is one unit of material to learn for a test ("onderdeel").
type Item struct {
	ID string
	// EstimatedMinutes overrides the type default when > 0.
	EstimatedMinutes int
	Content          Content
}

// Complete reports whether the item can be scheduled.
func (it Item) Complete() bool {
	return it.Content != nil && it.Content.complete()
}

// ── variants ──

// Chapter is a named chapter with an optional page range. Zero means the
// page bound is unknown.
type Chapter struct {
	Name     string `json:"naam" yaml:"naam"`
	PageFrom int    `json:"pagina_van,omitempty" yaml:"pagina_van,omitempty"`
	PageTo   int    `json:"pagina_tot,omitempty" yaml:"pagina_tot,omitempty"`
}

// HasPages reports whether both page bounds are known.
func (c Chapter) HasPages() bool {
	return c.PageFrom > 0 && c.PageTo >= c.PageFrom
}

// Pages returns the number of pages in the chapter, or 0 when unknown.
func (c Chapter) Pages() int {
	if !c.HasPages() {
		return 0
	}
	return c.PageTo - c.PageFrom + 1
}

// Chapters is either an explicit chapter list or a bare chapter count.
type Chapters struct {
	List  []Chapter
	Count int
}

func (Chapters) Type() ContentType { return TypeChapters }
func (c Chapters) complete() bool  { return len(c.List) > 0 || c.Count > 0 }

// resolved returns the chapter list, synthesizing "Hoofdstuk n" names when
// only a count is known.
func (c Chapters) resolved() []Chapter {
	if len(c.List) > 0 {
		return c.List
	}
	list := make([]Chapter, c.Count)
	for i := range list {
		list[i] = Chapter{Name: chapterName(i + 1)}
	}
	return list
}

// Vocabulary is a word list to memorize.
type Vocabulary struct {
	Words int
	// Lists is a free-form reference to the word lists, e.g. "1-3".
	Lists string
}

func (Vocabulary) Type() ContentType { return TypeVocabulary }
func (v Vocabulary) complete() bool  { return v.Words > 0 }

// Exercises is an inclusive exercise number range.
type Exercises struct {
	From    int
	To      int
	Section string
}

func (Exercises) Type() ContentType { return TypeExercises }
func (e Exercises) complete() bool  { return e.From > 0 && e.To >= e.From }

// Count returns the number of exercises in the range.
func (e Exercises) Count() int {
	if !e.complete() {
		return 0
	}
	return e.To - e.From + 1
}

// Grammar is a list of grammar topics.
type Grammar struct {
	Topics []string
}

func (Grammar) Type() ContentType { return TypeGrammar }
func (g Grammar) complete() bool  { return len(g.Topics) > 0 }

// Formulas is a number of formulas to memorize.
type Formulas struct {
	Count    int
	Sections string
}

func (Formulas) Type() ContentType { return TypeFormulas }
func (f Formulas) complete() bool  { return f.Count > 0 }

// Text is a number of pages to read.
type Text struct {
	Pages        int
	BookChapters string
}

func (Text) Type() ContentType { return TypeText }
func (t Text) complete() bool  { return t.Pages > 0 }
