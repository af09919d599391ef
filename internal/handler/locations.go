package handler

import (
	"net/http"
	"strings"

	"propcore/internal/service"

	"github.com/gin-gonic/gin"
)

// LocationHandler handles location autocomplete HTTP requests
type LocationHandler struct {
	searchService *service.SearchService
}

// NewLocationHandler creates a new location handler
func NewLocationHandler(searchService *service.SearchService) *LocationHandler {
	return &LocationHandler{
		searchService: searchService,
	}
}

// Autocomplete handles GET /api/v1/locations
func (h *LocationHandler) Autocomplete(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "q must be a non-empty string"})
		return
	}

	candidates, err := h.searchService.ResolveLocations(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "locations": candidates})
}
