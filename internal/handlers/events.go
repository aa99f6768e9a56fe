package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"atelier/internal/models"

	"github.com/gin-gonic/gin"
)

// CreateEvent - POST /api/events
// Create an academy event (staff only)
func (h *Handlers) CreateEvent(c *gin.Context) {
	var req models.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.services.Events.Create(c.Request.Context(), &req)
	if err != nil {
		slog.Error("Failed to create event", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create event"})
		return
	}

	c.JSON(http.StatusCreated, response)
}

// GetEvent - GET /api/events/:id
// Public event detail
func (h *Handlers) GetEvent(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be an integer"})
		return
	}

	event, err := h.services.Events.Get(c.Request.Context(), id)
	if err != nil {
		slog.Error("Failed to get event", "error", err, "event_id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get event"})
		return
	}
	if event == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	c.JSON(http.StatusOK, event)
}

// ListEvents - GET /api/events
// Public events catalog with text and date filters
func (h *Handlers) ListEvents(c *gin.Context) {
	query := c.Query("query")
	date := c.Query("date")

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

	// Only unfiltered pages are cached; filtered results go straight to search
	shouldCache := query == "" && date == ""

	if shouldCache && h.valkeyClient != nil {
		rawJSON, err := h.valkeyClient.GetEventsListRaw(c.Request.Context(), page, pageSize)
		if err == nil {
			c.Data(http.StatusOK, "application/json", rawJSON)
			return
		}
	}

	response, err := h.services.Events.List(c.Request.Context(), query, date, page, pageSize)
	if err != nil {
		slog.Error("Failed to list events", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list events"})
		return
	}

	if shouldCache && h.valkeyClient != nil {
		if err := h.valkeyClient.SetEventsList(c.Request.Context(), page, pageSize, response); err != nil {
			slog.Warn("Failed to cache events list", "error", err, "page", page, "page_size", pageSize)
		}
	}

	c.JSON(http.StatusOK, response)
}
