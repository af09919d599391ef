package handler

import (
	"net/http"

	"propcore/internal/model"
	"propcore/internal/service"

	"github.com/gin-gonic/gin"
)

// InterpretHandler handles query-interpretation HTTP requests
type InterpretHandler struct {
	interpreter *service.Interpreter
}

// NewInterpretHandler creates a new interpret handler
func NewInterpretHandler(interpreter *service.Interpreter) *InterpretHandler {
	return &InterpretHandler{
		interpreter: interpreter,
	}
}

// Interpret handles POST /api/v1/interpret
func (h *InterpretHandler) Interpret(c *gin.Context) {
	var req model.InterpretRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request: " + err.Error()})
		return
	}

	result, err := h.interpreter.Interpret(c.Request.Context(), req.Query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"summary": result.Summary,
		"url":     result.URL,
		"filters": result.Filters,
	})
}
