package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"atelier/internal/models"

	"github.com/gin-gonic/gin"
)

// ListBookings - GET /api/bookings
// Admin list of bookings with payment-status filter
func (h *Handlers) ListBookings(c *gin.Context) {
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

	paymentStatus := c.Query("payment_status")
	switch paymentStatus {
	case "", models.PaymentStatusPending, models.PaymentStatusPaid, models.PaymentStatusFailed:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "payment_status must be pending, paid or failed"})
		return
	}

	response, err := h.services.Attendance.ListBookings(c.Request.Context(), paymentStatus, page, pageSize)
	if err != nil {
		slog.Error("Failed to list bookings", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list bookings"})
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetBooking - GET /api/bookings/:code
// Admin detail for a single booking, attendance state included
func (h *Handlers) GetBooking(c *gin.Context) {
	code := c.Param("code")

	response, err := h.services.Attendance.BookingDetail(c.Request.Context(), code)
	if err != nil {
		slog.Error("Failed to get booking", "error", err, "code", code)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get booking"})
		return
	}
	if response == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		return
	}

	c.JSON(http.StatusOK, response)
}
