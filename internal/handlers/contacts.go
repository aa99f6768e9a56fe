package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"atelier/internal/models"

	"github.com/gin-gonic/gin"
)

// CreateContact - POST /api/contact
// Public contact form submission
func (h *Handlers) CreateContact(c *gin.Context) {
	var req models.CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.services.Contacts.Create(c.Request.Context(), &req)
	if err != nil {
		slog.Error("Failed to save contact message", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save contact message"})
		return
	}

	c.JSON(http.StatusCreated, response)
}

// ListContacts - GET /api/contacts
// Admin inbox for contact form submissions
func (h *Handlers) ListContacts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	if page < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "page must be >= 1"})
		return
	}

	if pageSize < 1 || pageSize > 50 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "pageSize must be between 1 and 50"})
		return
	}

	response, err := h.services.Contacts.List(c.Request.Context(), page, pageSize)
	if err != nil {
		slog.Error("Failed to list contact messages", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list contact messages"})
		return
	}

	c.JSON(http.StatusOK, response)
}
