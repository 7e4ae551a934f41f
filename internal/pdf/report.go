package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"devflow/internal/models"
)

// Generator renders analytics into a PDF document.
type Generator interface {
	GenerateSprintReport(data ReportData) ([]byte, error)
}

type ReportData struct {
	GeneratedAt time.Time
	Metrics     *models.TeamMetrics
	Velocity    []models.SprintVelocity
}

// ReportGenerator is the gofpdf-backed implementation.
type ReportGenerator struct {
	fontName string
}

func NewReportGenerator() *ReportGenerator {
	return &ReportGenerator{fontName: "Helvetica"}
}

func (g *ReportGenerator) GenerateSprintReport(data ReportData) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetTitle("DevFlow Sprint Report", false)
	doc.SetAuthor("DevFlow", false)
	doc.SetMargins(20, 20, 20)
	doc.SetAutoPageBreak(true, 20)
	doc.AddPage()

	doc.SetFont(g.fontName, "B", 18)
	doc.CellFormat(0, 10, "SPRINT REPORT", "", 1, "C", false, 0, "")

	doc.SetFont(g.fontName, "", 12)
	doc.CellFormat(0, 7, "Generated "+data.GeneratedAt.Format("2006-01-02 15:04"), "", 1, "C", false, 0, "")
	g.hr(doc)
	doc.Ln(3)

	g.sectionTitle(doc, "Team Overview")
	ov := data.Metrics.Overview
	g.kvLine(doc, "Total tasks", fmt.Sprintf("%d", ov.TotalTasks))
	g.kvLine(doc, "Completed tasks", fmt.Sprintf("%d", ov.CompletedTasks))
	g.kvLine(doc, "In progress", fmt.Sprintf("%d", ov.InProgressTasks))
	g.kvLine(doc, "Developers", fmt.Sprintf("%d", ov.TotalDevelopers))
	g.kvLine(doc, "Completion rate", fmt.Sprintf("%.2f%%", ov.CompletionRate))
	doc.Ln(2)
	g.hr(doc)

	g.sectionTitle(doc, "Performance")
	perf := data.Metrics.Performance
	g.kvLine(doc, "Avg completion time", fmt.Sprintf("%.2f h", perf.AvgCompletionTime))
	g.kvLine(doc, "Total hours logged", fmt.Sprintf("%.1f h", perf.TotalHoursLogged))
	doc.Ln(2)
	g.hr(doc)

	g.sectionTitle(doc, "Tasks by Status")
	for _, row := range data.Metrics.TasksByStatus {
		g.kvLine(doc, string(row.Status), fmt.Sprintf("%d", row.Count))
	}
	doc.Ln(2)
	g.hr(doc)

	g.sectionTitle(doc, "Sprint Velocity")
	if len(data.Velocity) == 0 {
		doc.SetFont(g.fontName, "I", 11)
		doc.CellFormat(0, 6, "No sprint data yet", "", 1, "L", false, 0, "")
	} else {
		g.velocityTable(doc, data.Velocity)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering sprint report: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *ReportGenerator) velocityTable(doc *gofpdf.Fpdf, velocity []models.SprintVelocity) {
	headers := []string{"Sprint", "Tasks", "Done", "Points done", "Points total"}
	widths := []float64{30, 30, 30, 40, 40}

	doc.SetFont(g.fontName, "B", 11)
	for i, h := range headers {
		doc.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	doc.Ln(-1)

	doc.SetFont(g.fontName, "", 11)
	for _, row := range velocity {
		cells := []string{
			fmt.Sprintf("%d", row.SprintNumber),
			fmt.Sprintf("%d", row.TotalTasks),
			fmt.Sprintf("%d", row.CompletedTasks),
			fmt.Sprintf("%d", row.StoryPointsCompleted),
			fmt.Sprintf("%d", row.TotalStoryPoints),
		}
		for i, cell := range cells {
			doc.CellFormat(widths[i], 7, cell, "1", 0, "C", false, 0, "")
		}
		doc.Ln(-1)
	}
}

func (g *ReportGenerator) sectionTitle(doc *gofpdf.Fpdf, title string) {
	doc.SetFont(g.fontName, "B", 13)
	doc.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
}

func (g *ReportGenerator) kvLine(doc *gofpdf.Fpdf, key, value string) {
	doc.SetFont(g.fontName, "", 11)
	doc.CellFormat(60, 6, key, "", 0, "L", false, 0, "")
	doc.SetFont(g.fontName, "B", 11)
	doc.CellFormat(0, 6, value, "", 1, "L", false, 0, "")
}

func (g *ReportGenerator) hr(doc *gofpdf.Fpdf) {
	x, y := doc.GetXY()
	pageWidth, _ := doc.GetPageSize()
	doc.SetDrawColor(180, 180, 180)
	doc.Line(20, y, pageWidth-20, y)
	doc.SetXY(x, y+2)
}
