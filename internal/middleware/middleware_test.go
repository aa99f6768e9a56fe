package middleware

import (
	"context"
	"crypto/sha256"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"atelier/internal/logger"
	"atelier/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeStaffFinder struct {
	staff map[string]*models.Staff
}

func (f *fakeStaffFinder) GetByEmail(ctx context.Context, email string) (*models.Staff, error) {
	return f.staff[email], nil
}

func hashPassword(password string) string {
	hash := sha256.Sum256([]byte(password))
	return fmt.Sprintf("%x", hash)
}

func setupAuthRouter(finder *fakeStaffFinder) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(StaffAuth(finder))
	router.GET("/protected", func(c *gin.Context) {
		email, _ := c.Get("staff_email")
		c.JSON(http.StatusOK, gin.H{"staff_email": email})
	})
	return router
}

func TestStaffAuth(t *testing.T) {
	finder := &fakeStaffFinder{staff: map[string]*models.Staff{
		"gate-1@atelier.example": {
			Email:        "gate-1@atelier.example",
			PasswordHash: hashPassword("gate123"),
			IsActive:     true,
		},
		"former@atelier.example": {
			Email:        "former@atelier.example",
			PasswordHash: hashPassword("gate123"),
			IsActive:     false,
		},
	}}
	router := setupAuthRouter(finder)

	// No credentials
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Header().Get("WWW-Authenticate"), "Basic")

	// Valid credentials
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.SetBasicAuth("gate-1@atelier.example", "gate123")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "gate-1@atelier.example")

	// Wrong password
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.SetBasicAuth("gate-1@atelier.example", "wrong")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Unknown account
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.SetBasicAuth("nobody@atelier.example", "gate123")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Deactivated account
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.SetBasicAuth("former@atelier.example", "gate123")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())

	var ctxRequestID string
	router.GET("/ping", func(c *gin.Context) {
		ctxRequestID, _ = logger.RequestIDFromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})

	// Generated when the client sends none
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, w.Header().Get("X-Request-ID"), ctxRequestID)

	// Propagated when the client supplies one
	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "req-123")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
	assert.Equal(t, "req-123", ctxRequestID)
}

func TestStaffAuthSetsContextIdentity(t *testing.T) {
	finder := &fakeStaffFinder{staff: map[string]*models.Staff{
		"gate-1@atelier.example": {
			Email:        "gate-1@atelier.example",
			PasswordHash: hashPassword("gate123"),
			IsActive:     true,
		},
	}}

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(StaffAuth(finder))

	var ctxEmail string
	router.GET("/protected", func(c *gin.Context) {
		ctxEmail, _ = logger.StaffEmailFromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.SetBasicAuth("gate-1@atelier.example", "gate123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "gate-1@atelier.example", ctxEmail)
}
