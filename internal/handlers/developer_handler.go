package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"devflow/internal/models"
	"devflow/internal/services"
)

type DeveloperHandler struct {
	service services.DeveloperService
}

func NewDeveloperHandler(service services.DeveloperService) *DeveloperHandler {
	return &DeveloperHandler{service: service}
}

// GET /api/developers
func (h *DeveloperHandler) GetAll(c *gin.Context) {
	devs, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		respondServiceError(c, "developer", "list", err)
		return
	}
	respondOK(c, devs)
}

// GET /api/developers/:id
func (h *DeveloperHandler) GetByID(c *gin.Context) {
	dev, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, "developer", "get", err)
		return
	}
	respondOK(c, dev)
}

// POST /api/developers
func (h *DeveloperHandler) Create(c *gin.Context) {
	var req struct {
		Name      string               `json:"name"`
		Email     string               `json:"email"`
		AvatarURL string               `json:"avatar_url"`
		Role      models.DeveloperRole `json:"role"`
		Skills    models.SkillMap      `json:"skills"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[developer][create][bind][err] %v", err)
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	dev := &models.Developer{
		Name:      req.Name,
		Email:     req.Email,
		AvatarURL: req.AvatarURL,
		Role:      req.Role,
		Skills:    req.Skills,
	}
	created, err := h.service.Create(c.Request.Context(), dev)
	if err != nil {
		respondServiceError(c, "developer", "create", err)
		return
	}
	log.Printf("[developer][create][ok] id=%s email=%s", created.ID, created.Email)
	respondCreated(c, created)
}

// PUT /api/developers/:id
func (h *DeveloperHandler) Update(c *gin.Context) {
	var patch models.DeveloperPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		log.Printf("[developer][update][bind][err] %v", err)
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.Update(c.Request.Context(), c.Param("id"), patch); err != nil {
		respondServiceError(c, "developer", "update", err)
		return
	}
	log.Printf("[developer][update][ok] id=%s", c.Param("id"))
	respondMessage(c, "Developer updated successfully")
}

// DELETE /api/developers/:id
func (h *DeveloperHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, "developer", "delete", err)
		return
	}
	log.Printf("[developer][delete][ok] id=%s", c.Param("id"))
	respondMessage(c, "Developer deleted successfully")
}

// GET /api/developers/:id/stats
func (h *DeveloperHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, "developer", "stats", err)
		return
	}
	respondOK(c, stats)
}

// GET /api/developers/:id/tasks
func (h *DeveloperHandler) Tasks(c *gin.Context) {
	var status *models.TaskStatus
	if v, ok := c.GetQuery("status"); ok {
		st := models.TaskStatus(v)
		status = &st
	}

	tasks, err := h.service.Tasks(c.Request.Context(), c.Param("id"), status)
	if err != nil {
		respondServiceError(c, "developer", "tasks", err)
		return
	}
	respondOK(c, tasks)
}
