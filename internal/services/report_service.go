package services

import (
	"context"
	"time"

	"devflow/internal/pdf"
)

// ReportService renders the current analytics into a downloadable
// sprint report. Pure read path: it composes the Aggregation Engine's
// output and hands it to the PDF generator.
type ReportService struct {
	analytics AnalyticsService
	generator pdf.Generator
}

func NewReportService(analytics AnalyticsService, generator pdf.Generator) *ReportService {
	return &ReportService{analytics: analytics, generator: generator}
}

func (s *ReportService) SprintReport(ctx context.Context) ([]byte, error) {
	metrics, err := s.analytics.TeamMetrics(ctx)
	if err != nil {
		return nil, err
	}
	velocity, err := s.analytics.Velocity(ctx)
	if err != nil {
		return nil, err
	}

	return s.generator.GenerateSprintReport(pdf.ReportData{
		GeneratedAt: time.Now(),
		Metrics:     metrics,
		Velocity:    velocity,
	})
}
