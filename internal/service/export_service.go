package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"studie-planner/internal/dto"
	"studie-planner/internal/model"
	"studie-planner/internal/planner"
	"studie-planner/internal/repository"
	"studie-planner/pkg/pdf"
)

var ErrExportGenerateFail = errors.New("failed to generate export")

const (
	defaultCalendarDays = 28
	fallbackSubject     = "Algemeen"
)

// ExportService renders the stored planning as files.
type ExportService interface {
	// WeekXLSX returns the week containing start as an Excel workbook and its
	// suggested filename.
	WeekXLSX(ctx context.Context, userID, start string) (*bytes.Buffer, string, error)
	// WeekPDF returns the same week as a printable PDF.
	WeekPDF(ctx context.Context, userID, start string) (*bytes.Buffer, string, error)
	// Calendar returns the upcoming entries as an iCalendar feed.
	Calendar(ctx context.Context, userID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo         *repository.Repository
	gen          *planGenerator
	calendarDays int
	pdfTempDir   string
	logger       *zap.Logger
}

// NewExportService creates an ExportService. calendarDays bounds the feed;
// pdfTempDir is where PDFs are rendered (the system default when empty).
func NewExportService(repo *repository.Repository, gen *planGenerator, calendarDays int, pdfTempDir string, logger *zap.Logger) ExportService {
	if calendarDays <= 0 {
		calendarDays = defaultCalendarDays
	}
	return &exportService{repo: repo, gen: gen, calendarDays: calendarDays, pdfTempDir: pdfTempDir, logger: logger}
}

// exportRow is one line of the week exports.
type exportRow struct {
	Subject string
	Type    string
	Task    string
	Minutes int
	Done    bool
}

type exportDay struct {
	Date time.Time
	Rows []exportRow
}

// week loads the Monday based week containing start, one exportDay per day.
func (s *exportService) week(ctx context.Context, userID, start string) (time.Time, []exportDay, error) {
	day := s.gen.today()
	if start != "" {
		d, err := dto.ParseDate(start)
		if err != nil {
			return time.Time{}, nil, ErrDateInvalid
		}
		day = d
	}
	monday := weekStart(day)

	items, err := s.repo.Planning.ListByUserBetween(ctx, userID, monday, monday.AddDate(0, 0, 7))
	if err != nil {
		s.logger.Error("list week planning failed", zap.String("user_id", userID), zap.Error(err))
		return time.Time{}, nil, err
	}

	byDate := make(map[string][]exportRow, 7)
	for i := range items {
		k := dto.FormatDate(items[i].Date)
		byDate[k] = append(byDate[k], toExportRow(&items[i]))
	}
	days := make([]exportDay, 7)
	for i := range days {
		d := monday.AddDate(0, 0, i)
		days[i] = exportDay{Date: d, Rows: byDate[dto.FormatDate(d)]}
	}
	return monday, days, nil
}

func toExportRow(p *model.PlanningItem) exportRow {
	r := exportRow{
		Subject: p.SubjectName(),
		Task:    p.Description,
		Minutes: p.EstimatedMinutes,
		Done:    p.Done,
	}
	if r.Subject == "" {
		r.Subject = fallbackSubject
	}
	switch {
	case p.HomeworkID != nil:
		r.Type = "Huiswerk"
	case p.Kind == string(planner.KindReview):
		r.Type = "Herhalen"
	default:
		r.Type = "Leren"
	}
	return r
}

func isoWeek(d time.Time) int {
	_, w := d.ISOWeek()
	return w
}

func yesNo(b bool) string {
	if b {
		return "Ja"
	}
	return "Nee"
}

var dutchDays = [...]string{"Zondag", "Maandag", "Dinsdag", "Woensdag", "Donderdag", "Vrijdag", "Zaterdag"}

var dutchMonths = [...]string{"", "januari", "februari", "maart", "april", "mei", "juni",
	"juli", "augustus", "september", "oktober", "november", "december"}

func dutchDate(d time.Time) string {
	return fmt.Sprintf("%s %d %s", dutchDays[d.Weekday()], d.Day(), dutchMonths[d.Month()])
}

// ────────────────────── WeekXLSX ──────────────────────

func (s *exportService) WeekXLSX(ctx context.Context, userID, start string) (*bytes.Buffer, string, error) {
	monday, days, err := s.week(ctx, userID, start)
	if err != nil {
		return nil, "", err
	}
	week := isoWeek(monday)

	f := excelize.NewFile()
	defer f.Close()

	sheet := fmt.Sprintf("Week %d", week)
	idx, err := f.NewSheet(sheet)
	if err != nil {
		s.logger.Error("create sheet failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheet, "A", "A", 22)
	f.SetColWidth(sheet, "B", "B", 12)
	f.SetColWidth(sheet, "C", "C", 60)
	f.SetColWidth(sheet, "D", "D", 10)
	f.SetColWidth(sheet, "E", "E", 8)

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	dayStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#3B82F6"}, Pattern: 1},
	})
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "left"},
	})

	f.SetCellValue(sheet, "A1", fmt.Sprintf("Weekplanning week %d (%s t/m %s)",
		week, dto.FormatDate(monday), dto.FormatDate(monday.AddDate(0, 0, 6))))
	f.SetCellStyle(sheet, "A1", "A1", titleStyle)

	row := 3
	for _, d := range days {
		f.SetCellValue(sheet, cell("A", row), dutchDate(d.Date))
		f.MergeCell(sheet, cell("A", row), cell("E", row))
		f.SetCellStyle(sheet, cell("A", row), cell("E", row), dayStyle)
		row++

		if len(d.Rows) == 0 {
			f.SetCellValue(sheet, cell("A", row), "Geen taken")
			row += 2
			continue
		}

		for i, h := range []string{"Vak", "Type", "Taak", "Tijd (min)", "Klaar"} {
			f.SetCellValue(sheet, cell(colName(i), row), h)
		}
		f.SetCellStyle(sheet, cell("A", row), cell("E", row), headerStyle)
		row++

		total := 0
		for _, r := range d.Rows {
			f.SetCellValue(sheet, cell("A", row), r.Subject)
			f.SetCellValue(sheet, cell("B", row), r.Type)
			f.SetCellValue(sheet, cell("C", row), r.Task)
			f.SetCellValue(sheet, cell("D", row), r.Minutes)
			f.SetCellValue(sheet, cell("E", row), yesNo(r.Done))
			total += r.Minutes
			row++
		}
		f.SetCellValue(sheet, cell("C", row), "Totaal")
		f.SetCellValue(sheet, cell("D", row), total)
		f.SetCellStyle(sheet, cell("C", row), cell("D", row), headerStyle)
		row += 2
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("write xlsx failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	return buf, fmt.Sprintf("weekplanning-week%d.xlsx", week), nil
}

// ────────────────────── WeekPDF ──────────────────────

func (s *exportService) WeekPDF(ctx context.Context, userID, start string) (*bytes.Buffer, string, error) {
	monday, days, err := s.week(ctx, userID, start)
	if err != nil {
		return nil, "", err
	}
	week := isoWeek(monday)

	out, err := pdf.Render(weekMarkdown(monday, days, s.gen.clock().In(s.gen.loc)), s.pdfTempDir)
	if err != nil {
		s.logger.Error("render pdf failed", zap.Int("week", week), zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	return bytes.NewBuffer(out), fmt.Sprintf("weekplanning-week%d.pdf", week), nil
}

// weekMarkdown lays the week out as one table per day. The PDF fonts have
// no emoji, so the carry-over marker is written out.
func weekMarkdown(monday time.Time, days []exportDay, generated time.Time) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "# Weekplanning week %d\n\n", isoWeek(monday))
	fmt.Fprintf(&b, "%s t/m %s\n\n", dutchDate(monday), dutchDate(monday.AddDate(0, 0, 6)))

	for _, d := range days {
		fmt.Fprintf(&b, "## %s\n\n", dutchDate(d.Date))
		if len(d.Rows) == 0 {
			b.WriteString("Geen taken\n\n")
			continue
		}
		b.WriteString("| Vak | Type | Taak | Tijd | Klaar |\n")
		b.WriteString("|-----|------|------|------|-------|\n")
		total := 0
		for _, r := range d.Rows {
			task := r.Task
			if strings.HasPrefix(task, carryOverPrefix) {
				task = strings.TrimPrefix(task, carryOverPrefix) + " (doorgeschoven)"
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %d min | %s |\n",
				mdCell(r.Subject), r.Type, mdCell(task), r.Minutes, yesNo(r.Done))
			total += r.Minutes
		}
		fmt.Fprintf(&b, "\nTotaal: %d minuten\n\n", total)
	}

	fmt.Fprintf(&b, "---\n\nGegenereerd op %s - Studie Planner\n", generated.Format("02-01-2006 15:04"))
	return []byte(b.String())
}

func mdCell(s string) string {
	return strings.ReplaceAll(s, "|", "/")
}

// ────────────────────── Calendar ──────────────────────

func (s *exportService) Calendar(ctx context.Context, userID string) (*bytes.Buffer, string, error) {
	today := s.gen.today()
	items, err := s.repo.Planning.ListByUserBetween(ctx, userID, today, today.AddDate(0, 0, s.calendarDays))
	if err != nil {
		s.logger.Error("list calendar planning failed", zap.String("user_id", userID), zap.Error(err))
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//Studie Planner//Planning//NL")
	cal.SetXWRCalName("Studie Planner")

	stamp := s.gen.clock().UTC()
	for i := range items {
		p := &items[i]
		ev := cal.AddEvent(p.PlanningItemID + "@studie-planner")
		ev.SetDtStampTime(stamp)
		ev.SetAllDayStartAt(p.Date)
		ev.SetAllDayEndAt(p.Date.AddDate(0, 0, 1))

		summary := p.Description
		if subject := p.SubjectName(); subject != "" {
			summary = subject + ": " + summary
		}
		if p.Done {
			summary = "✓ " + summary
		}
		ev.SetSummary(summary)
		ev.SetDescription(fmt.Sprintf("%s, %d minuten", toExportRow(p).Type, p.EstimatedMinutes))
		ev.SetStatus(ics.ObjectStatusConfirmed)
	}

	return bytes.NewBufferString(cal.Serialize()), "studie-planner.ics", nil
}

// ── helpers ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
