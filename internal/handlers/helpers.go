package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"devflow/internal/services"
)

// Every response uses the same envelope: {success, data?, error?}.

func respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func respondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": data})
}

func respondMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "error": message})
}

// respondServiceError maps service errors onto the HTTP taxonomy:
// validation → 400, missing reference → 404, duplicate email → 400,
// anything else (storage failure) → 500 with the message passed
// through verbatim.
func respondServiceError(c *gin.Context, component, op string, err error) {
	var vErr *services.ValidationError
	switch {
	case errors.As(err, &vErr):
		log.Printf("[%s][%s][deny] %v", component, op, err)
		respondError(c, http.StatusBadRequest, vErr.Error())
	case errors.Is(err, services.ErrTaskNotFound), errors.Is(err, services.ErrDeveloperNotFound):
		log.Printf("[%s][%s][404] %v", component, op, err)
		respondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrEmailExists):
		log.Printf("[%s][%s][conflict] %v", component, op, err)
		respondError(c, http.StatusBadRequest, err.Error())
	default:
		log.Printf("[%s][%s][err] %v", component, op, err)
		respondError(c, http.StatusInternalServerError, err.Error())
	}
}
