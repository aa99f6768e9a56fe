package handlers

import (
	"errors"
	"net/http"

	apperrors "atelier/internal/errors"
	"atelier/internal/logger"
	"atelier/internal/models"

	"github.com/gin-gonic/gin"
)

// ValidateCode - POST /api/validate
// Validate a booking code at the door and record the admission
func (h *Handlers) ValidateCode(c *gin.Context) {
	var req models.ValidateCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	validatedBy := "unknown"
	if v, exists := c.Get("staff_email"); exists {
		if email, ok := v.(string); ok {
			validatedBy = email
		}
	}

	meta := models.RequestMeta{
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}

	result, err := h.services.Validator.Validate(c.Request.Context(), req.Code, validatedBy, meta)
	if err != nil {
		if errors.Is(err, apperrors.ErrStoreUnavailable) {
			logger.WithContext(c.Request.Context()).Error("Validation failed against backing store", "error", err)
			c.JSON(http.StatusServiceUnavailable, models.ValidationResult{
				Outcome: models.OutcomeStoreUnavailable,
				Message: "validation store unavailable, safe to retry",
			})
			return
		}
		logger.WithContext(c.Request.Context()).Error("Validation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate code"})
		return
	}

	c.JSON(statusForOutcome(result.Outcome), result)
}

// statusForOutcome maps the outcome taxonomy to HTTP statuses so the
// console can branch on either
func statusForOutcome(outcome models.ValidationOutcome) int {
	switch outcome {
	case models.OutcomeSuccess:
		return http.StatusOK
	case models.OutcomeInvalidInput:
		return http.StatusBadRequest
	case models.OutcomeNotFound:
		return http.StatusNotFound
	case models.OutcomeNotEligible:
		return http.StatusUnprocessableEntity
	case models.OutcomeAlreadyUsed:
		return http.StatusConflict
	default:
		return http.StatusServiceUnavailable
	}
}
