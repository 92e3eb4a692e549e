package dto

import "time"

// DateLayout is the wire format of every calendar date.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date as UTC midnight.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ── shared briefs ──

// SubjectBrief is the subject shown next to a task.
type SubjectBrief struct {
	ID    string `json:"id"`
	Name  string `json:"naam"`
	Color string `json:"kleur"`
}

// UserBrief is a household member shown next to a message or score.
type UserBrief struct {
	ID   string `json:"id"`
	Name string `json:"naam"`
	Role string `json:"rol"`
}

// ── pagination ──

// PaginationRequest are the common paging query parameters.
type PaginationRequest struct {
	Page     int `form:"page"      binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// GetPage returns the page number, defaulting to 1.
func (p *PaginationRequest) GetPage() int {
	if p.Page <= 0 {
		return 1
	}
	return p.Page
}

// GetPageSize returns the page size, defaulting to 20.
func (p *PaginationRequest) GetPageSize() int {
	if p.PageSize <= 0 {
		return 20
	}
	return p.PageSize
}

// GetOffset returns the row offset of the page.
func (p *PaginationRequest) GetOffset() int {
	return (p.GetPage() - 1) * p.GetPageSize()
}
