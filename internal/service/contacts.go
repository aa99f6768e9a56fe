package service

import (
	"context"
	"fmt"
	"time"

	"atelier/internal/logger"
	"atelier/internal/models"
	"atelier/internal/repository"
)

type ContactService struct {
	contactRepo *repository.ContactRepository
	publisher   Publisher
}

func NewContactService(contactRepo *repository.ContactRepository, publisher Publisher) *ContactService {
	return &ContactService{
		contactRepo: contactRepo,
		publisher:   publisher,
	}
}

func (s *ContactService) Create(ctx context.Context, req *models.CreateContactRequest) (*models.CreateContactResponse, error) {
	msg := &models.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
	}

	err := s.contactRepo.Create(ctx, msg)
	if err != nil {
		return nil, fmt.Errorf("failed to save contact message: %w", err)
	}

	event := models.ContactReceivedEvent{
		ContactID: msg.ID,
		Email:     msg.Email,
		Subject:   msg.Subject,
		Timestamp: time.Now(),
	}

	if err := s.publisher.Publish(models.EventContactReceived, event); err != nil {
		logger.WithContext(ctx).Error("Failed to publish contact received event",
			"error", err,
			"contact_id", msg.ID,
			"event_type", models.EventContactReceived)
	}

	return &models.CreateContactResponse{ID: msg.ID}, nil
}

func (s *ContactService) List(ctx context.Context, page, pageSize int) ([]models.ContactMessage, error) {
	messages, err := s.contactRepo.List(ctx, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list contact messages: %w", err)
	}
	return messages, nil
}
