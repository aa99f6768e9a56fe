package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"atelier/internal/models"
	"atelier/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubBookingStore struct {
	bookings map[string]*models.Booking
	err      error
}

func (s *stubBookingStore) GetByCode(ctx context.Context, code string) (*models.Booking, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.bookings[code], nil
}

type stubLedger struct {
	mu      sync.Mutex
	records map[string]*models.AttendanceRecord
}

func (s *stubLedger) Claim(ctx context.Context, record *models.AttendanceRecord) (*models.ClaimResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.records[record.BookingCode]; ok {
		return &models.ClaimResult{Inserted: false, Record: existing}, nil
	}
	record.ID = int64(len(s.records) + 1)
	record.ValidatedAt = time.Now()
	s.records[record.BookingCode] = record
	return &models.ClaimResult{Inserted: true, Record: record}, nil
}

type stubPublisher struct{}

func (s *stubPublisher) Publish(subject string, data interface{}) error { return nil }

func setupValidateRouter(store *stubBookingStore, ledger *stubLedger) *gin.Engine {
	gin.SetMode(gin.TestMode)

	services := &service.Services{
		Validator: service.NewValidatorService(store, ledger, &stubPublisher{}, nil),
	}
	h := NewHandlers(services, nil)

	router := gin.New()
	router.POST("/api/validate", func(c *gin.Context) {
		c.Set("staff_email", "gate-1@atelier.example")
		h.ValidateCode(c)
	})
	return router
}

func postValidate(router *gin.Engine, code string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(models.ValidateCodeRequest{Code: code})
	req := httptest.NewRequest(http.MethodPost, "/api/validate", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestValidateCodeStatusMapping(t *testing.T) {
	store := &stubBookingStore{bookings: map[string]*models.Booking{
		"XJ9K2P": {
			ID:            1,
			Code:          "XJ9K2P",
			EventID:       10,
			EventTitle:    "Spring Showcase",
			PaymentStatus: models.PaymentStatusPaid,
			Members:       []models.Member{{Name: "Aigerim", Email: "a@example.com"}},
		},
		"PEND01": {
			ID:            2,
			Code:          "PEND01",
			EventID:       10,
			EventTitle:    "Spring Showcase",
			PaymentStatus: models.PaymentStatusPending,
		},
	}}
	ledger := &stubLedger{records: make(map[string]*models.AttendanceRecord)}
	router := setupValidateRouter(store, ledger)

	w := postValidate(router, "xj9k2p")
	assert.Equal(t, http.StatusOK, w.Code)
	var result models.ValidationResult
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, models.OutcomeSuccess, result.Outcome)
	assert.Equal(t, "XJ9K2P", result.Booking.Code)

	// Replay of the same code
	w = postValidate(router, "XJ9K2P")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, models.OutcomeAlreadyUsed, result.Outcome)
	assert.Equal(t, "gate-1@atelier.example", result.AlreadyUsed.ValidatedBy)

	w = postValidate(router, "PEND01")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, models.OutcomeNotEligible, result.Outcome)

	w = postValidate(router, "ZZZZZZ")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, models.OutcomeNotFound, result.Outcome)

	w = postValidate(router, "   ")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, models.OutcomeInvalidInput, result.Outcome)
}

func TestValidateCodeStoreUnavailable(t *testing.T) {
	store := &stubBookingStore{err: assert.AnError}
	ledger := &stubLedger{records: make(map[string]*models.AttendanceRecord)}
	router := setupValidateRouter(store, ledger)

	w := postValidate(router, "XJ9K2P")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	var result models.ValidationResult
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, models.OutcomeStoreUnavailable, result.Outcome)
}

func TestValidateCodeMalformedBody(t *testing.T) {
	store := &stubBookingStore{bookings: map[string]*models.Booking{}}
	ledger := &stubLedger{records: make(map[string]*models.AttendanceRecord)}
	router := setupValidateRouter(store, ledger)

	req := httptest.NewRequest(http.MethodPost, "/api/validate", bytes.NewReader([]byte(`{"code":`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
