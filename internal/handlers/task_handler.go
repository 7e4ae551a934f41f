package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"devflow/internal/models"
	"devflow/internal/services"
)

type TaskHandler struct {
	service services.TaskService
}

func NewTaskHandler(service services.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// GET /api/tasks
func (h *TaskHandler) GetAll(c *gin.Context) {
	var filter models.TaskFilter
	if v, ok := c.GetQuery("status"); ok {
		st := models.TaskStatus(v)
		filter.Status = &st
	}
	if v, ok := c.GetQuery("priority"); ok {
		p := models.TaskPriority(v)
		filter.Priority = &p
	}
	if v, ok := c.GetQuery("assigned_to"); ok {
		filter.AssignedTo = &v
	}
	if v, ok := c.GetQuery("sprint_number"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			filter.SprintNumber = &n
		} else {
			log.Printf("[task][list][warn] bad sprint_number=%q: %v", v, err)
		}
	}

	tasks, err := h.service.GetAll(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, "task", "list", err)
		return
	}
	respondOK(c, tasks)
}

// GET /api/tasks/:id
func (h *TaskHandler) GetByID(c *gin.Context) {
	task, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, "task", "get", err)
		return
	}
	respondOK(c, task)
}

// POST /api/tasks
func (h *TaskHandler) Create(c *gin.Context) {
	var req struct {
		Title          string              `json:"title"`
		Description    string              `json:"description"`
		Status         models.TaskStatus   `json:"status"`
		Priority       models.TaskPriority `json:"priority"`
		Difficulty     int                 `json:"difficulty"`
		TechStack      models.TechStack    `json:"tech_stack"`
		AssignedTo     *string             `json:"assigned_to"`
		CreatedBy      *string             `json:"created_by"`
		EstimatedHours float64             `json:"estimated_hours"`
		DueDate        *time.Time          `json:"due_date"`
		CodeSnippet    string              `json:"code_snippet"`
		SprintNumber   *int                `json:"sprint_number"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[task][create][bind][err] %v", err)
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	task := &models.Task{
		Title:          req.Title,
		Description:    req.Description,
		Status:         req.Status,
		Priority:       req.Priority,
		Difficulty:     req.Difficulty,
		TechStack:      req.TechStack,
		AssignedTo:     req.AssignedTo,
		CreatedBy:      req.CreatedBy,
		EstimatedHours: req.EstimatedHours,
		DueDate:        req.DueDate,
		CodeSnippet:    req.CodeSnippet,
		SprintNumber:   req.SprintNumber,
	}
	created, err := h.service.Create(c.Request.Context(), task)
	if err != nil {
		respondServiceError(c, "task", "create", err)
		return
	}
	log.Printf("[task][create][ok] id=%s title=%q", created.ID, created.Title)
	respondCreated(c, created)
}

// PUT /api/tasks/:id
func (h *TaskHandler) Update(c *gin.Context) {
	var patch models.TaskPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		log.Printf("[task][update][bind][err] %v", err)
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.Update(c.Request.Context(), c.Param("id"), patch); err != nil {
		respondServiceError(c, "task", "update", err)
		return
	}
	log.Printf("[task][update][ok] id=%s", c.Param("id"))
	respondMessage(c, "Task updated successfully")
}

// PATCH /api/tasks/:id/status
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	var req struct {
		Status      models.TaskStatus `json:"status"`
		PerformedBy *string           `json:"performed_by"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[task][status][bind][err] %v", err)
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status, req.PerformedBy); err != nil {
		respondServiceError(c, "task", "status", err)
		return
	}
	log.Printf("[task][status][ok] id=%s new=%q", c.Param("id"), req.Status)
	respondMessage(c, "Task status updated successfully")
}

// PATCH /api/tasks/:id/assign
func (h *TaskHandler) Assign(c *gin.Context) {
	var req struct {
		AssignedTo  string  `json:"assigned_to"`
		PerformedBy *string `json:"performed_by"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[task][assign][bind][err] %v", err)
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.Assign(c.Request.Context(), c.Param("id"), req.AssignedTo, req.PerformedBy); err != nil {
		respondServiceError(c, "task", "assign", err)
		return
	}
	log.Printf("[task][assign][ok] id=%s assignee=%s", c.Param("id"), req.AssignedTo)
	respondMessage(c, "Task assigned successfully")
}

// DELETE /api/tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, "task", "delete", err)
		return
	}
	log.Printf("[task][delete][ok] id=%s", c.Param("id"))
	respondMessage(c, "Task deleted successfully")
}

// GET /api/tasks/:id/history
func (h *TaskHandler) History(c *gin.Context) {
	entries, err := h.service.History(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, "task", "history", err)
		return
	}
	respondOK(c, entries)
}
