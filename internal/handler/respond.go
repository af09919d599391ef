package handler

import (
	"errors"
	"log"
	"net/http"

	"propcore/internal/model"

	"github.com/gin-gonic/gin"
)

// respondError maps the error taxonomy onto HTTP statuses. Validation
// errors carry their specific message; dependency failures get a generic
// retry message and never leak the upstream error body.
func respondError(c *gin.Context, err error) {
	var validationErr *model.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": validationErr.Message})
		return
	}

	var dependencyErr *model.DependencyError
	if errors.As(err, &dependencyErr) {
		log.Printf("dependency failure: %v", dependencyErr)
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"error":   "The listing service is temporarily unavailable. Please try again.",
		})
		return
	}

	log.Printf("unexpected error: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal server error"})
}
