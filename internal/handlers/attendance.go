package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ListAttendance - GET /api/attendance
// Admission ledger, newest first, optionally filtered by event
func (h *Handlers) ListAttendance(c *gin.Context) {
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

	var eventID int64
	if eventParam := c.Query("event_id"); eventParam != "" {
		parsed, err := strconv.ParseInt(eventParam, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "event_id must be an integer"})
			return
		}
		eventID = parsed
	}

	response, err := h.services.Attendance.List(c.Request.Context(), eventID, page, pageSize)
	if err != nil {
		slog.Error("Failed to list attendance records", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list attendance records"})
		return
	}

	c.JSON(http.StatusOK, response)
}

// AttendanceStats - GET /api/attendance/stats
// Validated vs paid bookings per event
func (h *Handlers) AttendanceStats(c *gin.Context) {
	response, err := h.services.Attendance.Stats(c.Request.Context())
	if err != nil {
		slog.Error("Failed to load attendance stats", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load attendance stats"})
		return
	}

	c.JSON(http.StatusOK, response)
}
