package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"devflow/internal/services"
)

type AnalyticsHandler struct {
	service services.AnalyticsService
	reports *services.ReportService
}

func NewAnalyticsHandler(service services.AnalyticsService, reports *services.ReportService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service, reports: reports}
}

// @Summary      Team metrics
// @Description  Overview counts, grouped breakdowns and performance numbers for the whole team
// @Tags         Analytics
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /analytics/team [get]
func (h *AnalyticsHandler) TeamMetrics(c *gin.Context) {
	metrics, err := h.service.TeamMetrics(c.Request.Context())
	if err != nil {
		respondServiceError(c, "analytics", "team", err)
		return
	}
	respondOK(c, metrics)
}

// @Summary      Sprint velocity
// @Description  Per-sprint task and story point totals, ascending by sprint number
// @Tags         Analytics
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /analytics/velocity [get]
func (h *AnalyticsHandler) Velocity(c *gin.Context) {
	rows, err := h.service.Velocity(c.Request.Context())
	if err != nil {
		respondServiceError(c, "analytics", "velocity", err)
		return
	}
	respondOK(c, rows)
}

// @Summary      Bottlenecks
// @Description  Tasks stuck in review or testing past the day threshold, oldest first
// @Tags         Analytics
// @Produce      json
// @Param        threshold_days  query     int  false  "Days before a task counts as stuck"  default(2)
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /analytics/bottlenecks [get]
func (h *AnalyticsHandler) Bottlenecks(c *gin.Context) {
	thresholdDays := services.DefaultBottleneckThresholdDays
	if v, ok := c.GetQuery("threshold_days"); ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			thresholdDays = n
		} else {
			log.Printf("[analytics][bottlenecks][warn] bad threshold_days=%q", v)
		}
	}

	rows, err := h.service.Bottlenecks(c.Request.Context(), thresholdDays)
	if err != nil {
		respondServiceError(c, "analytics", "bottlenecks", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": rows, "count": len(rows)})
}

// @Summary      Leaderboard
// @Description  Developers ranked by all-time completed tasks, ties broken by streak
// @Tags         Analytics
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /analytics/leaderboard [get]
func (h *AnalyticsHandler) Leaderboard(c *gin.Context) {
	rows, err := h.service.Leaderboard(c.Request.Context())
	if err != nil {
		respondServiceError(c, "analytics", "leaderboard", err)
		return
	}
	respondOK(c, rows)
}

// @Summary      Task distribution
// @Description  Per-developer workload breakdown
// @Tags         Analytics
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /analytics/distribution [get]
func (h *AnalyticsHandler) Distribution(c *gin.Context) {
	rows, err := h.service.Distribution(c.Request.Context())
	if err != nil {
		respondServiceError(c, "analytics", "distribution", err)
		return
	}
	respondOK(c, rows)
}

// @Summary      Sprint report
// @Description  Current team metrics and velocity rendered as a PDF
// @Tags         Analytics
// @Produce      application/pdf
// @Success      200  {file}    binary
// @Failure      500  {object}  map[string]string
// @Router       /analytics/report [get]
func (h *AnalyticsHandler) SprintReport(c *gin.Context) {
	report, err := h.reports.SprintReport(c.Request.Context())
	if err != nil {
		respondServiceError(c, "analytics", "report", err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="sprint-report.pdf"`)
	c.Data(http.StatusOK, "application/pdf", report)
}
