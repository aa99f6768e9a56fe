package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"atelier/internal/models"
	"atelier/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubEventStore struct {
	events map[int64]*models.Event
}

func (s *stubEventStore) Create(ctx context.Context, event *models.Event) error {
	s.events[event.ID] = event
	return nil
}

func (s *stubEventStore) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	return s.events[id], nil
}

func (s *stubEventStore) List(ctx context.Context, query, date string, page, pageSize int) ([]models.Event, error) {
	var out []models.Event
	for _, event := range s.events {
		out = append(out, *event)
	}
	return out, nil
}

func setupEventsRouter(store *stubEventStore) *gin.Engine {
	gin.SetMode(gin.TestMode)

	services := &service.Services{
		Events: service.NewEventService(store, nil),
	}
	h := NewHandlers(services, nil)

	router := gin.New()
	router.GET("/api/events/:id", h.GetEvent)
	return router
}

func TestGetEvent(t *testing.T) {
	location := "Main Hall"
	store := &stubEventStore{events: map[int64]*models.Event{
		7: {
			ID:        7,
			Title:     "Spring Showcase",
			Location:  &location,
			EventDate: "2026-09-12",
			EventTime: "19:00",
			Capacity:  120,
		},
	}}
	router := setupEventsRouter(store)

	req := httptest.NewRequest(http.MethodGet, "/api/events/7", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var event models.Event
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &event))
	assert.Equal(t, int64(7), event.ID)
	assert.Equal(t, "Spring Showcase", event.Title)
}

func TestGetEventNotFound(t *testing.T) {
	store := &stubEventStore{events: map[int64]*models.Event{}}
	router := setupEventsRouter(store)

	req := httptest.NewRequest(http.MethodGet, "/api/events/99", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetEventBadID(t *testing.T) {
	store := &stubEventStore{events: map[int64]*models.Event{}}
	router := setupEventsRouter(store)

	req := httptest.NewRequest(http.MethodGet, "/api/events/abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
