package handler

import (
	"net/http"

	"propcore/internal/model"
	"propcore/internal/service"

	"github.com/gin-gonic/gin"
)

// FeedbackHandler handles feedback-related HTTP requests
type FeedbackHandler struct {
	searchService *service.SearchService
}

// NewFeedbackHandler creates a new feedback handler
func NewFeedbackHandler(searchService *service.SearchService) *FeedbackHandler {
	return &FeedbackHandler{
		searchService: searchService,
	}
}

var validActions = map[string]bool{
	"click":        true,
	"contact":      true,
	"view_details": true,
}

// Submit handles POST /api/v1/feedback
func (h *FeedbackHandler) Submit(c *gin.Context) {
	var req model.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request: " + err.Error()})
		return
	}

	if !validActions[req.Action] {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid action: must be click, contact, or view_details",
		})
		return
	}

	if err := h.searchService.LogFeedback(c.Request.Context(), req.SearchID, req.ListingID, req.Action); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to record feedback"})
		return
	}

	c.JSON(http.StatusOK, model.FeedbackResponse{
		Success: true,
		Message: "Feedback recorded",
	})
}
