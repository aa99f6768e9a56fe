package service

import (
	"context"
	"fmt"

	"atelier/internal/logger"
	"atelier/internal/models"
	"atelier/internal/search"
)

// EventStore is the persistence surface the events service needs
type EventStore interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id int64) (*models.Event, error)
	List(ctx context.Context, query, date string, page, pageSize int) ([]models.Event, error)
}

type EventService struct {
	eventRepo EventStore
	esClient  *search.ElasticsearchClient
}

func NewEventService(eventRepo EventStore, esClient *search.ElasticsearchClient) *EventService {
	return &EventService{
		eventRepo: eventRepo,
		esClient:  esClient,
	}
}

func (s *EventService) Create(ctx context.Context, req *models.CreateEventRequest) (*models.CreateEventResponse, error) {
	event := &models.Event{
		Title:     req.Title,
		EventDate: req.EventDate,
		EventTime: req.EventTime,
		Capacity:  req.Capacity,
	}
	if req.Description != "" {
		event.Description = &req.Description
	}
	if req.Location != "" {
		event.Location = &req.Location
	}

	err := s.eventRepo.Create(ctx, event)
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	// Index for the public catalog search. The database row is the source
	// of truth; an indexing failure is logged, not surfaced.
	if s.esClient != nil {
		if err := s.esClient.IndexEvent(ctx, event); err != nil {
			logger.WithContext(ctx).Error("Failed to index event",
				"error", err,
				"event_id", event.ID)
		}
	}

	return &models.CreateEventResponse{ID: event.ID}, nil
}

// Get resolves a single event for the public detail page. Returns
// (nil, nil) when the event does not exist.
func (s *EventService) Get(ctx context.Context, id int64) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return event, nil
}

func (s *EventService) List(ctx context.Context, query, date string, page, pageSize int) (models.ListEventsResponse, error) {
	events, err := s.listEvents(ctx, query, date, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	result := make(models.ListEventsResponse, len(events))
	for i, event := range events {
		item := models.ListEventsResponseItem{
			ID:        event.ID,
			Title:     event.Title,
			EventDate: event.EventDate,
			EventTime: event.EventTime,
		}
		if event.Location != nil {
			item.Location = *event.Location
		}
		result[i] = item
	}

	return result, nil
}

func (s *EventService) listEvents(ctx context.Context, query, date string, page, pageSize int) ([]models.Event, error) {
	if s.esClient != nil {
		events, err := s.esClient.Search(ctx, query, date, page, pageSize)
		if err == nil {
			return events, nil
		}
		logger.WithContext(ctx).Warn("Events search failed, falling back to database", "error", err)
	}

	return s.eventRepo.List(ctx, query, date, page, pageSize)
}
