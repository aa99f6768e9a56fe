package service

import (
	"atelier/internal/cache"
	"atelier/internal/messaging"
	"atelier/internal/repository"
	"atelier/internal/search"
)

type Services struct {
	Validator  *ValidatorService
	Events     *EventService
	Attendance *AttendanceService
	Contacts   *ContactService
}

func NewServices(repos *repository.Repositories, natsClient *messaging.NATSClient, valkeyClient *cache.ValkeyClient, esClient *search.ElasticsearchClient) *Services {
	validatorService := NewValidatorService(repos.Bookings, repos.Attendance, natsClient, valkeyClient)
	eventService := NewEventService(repos.Events, esClient)
	attendanceService := NewAttendanceService(repos.Attendance, repos.Bookings)
	contactService := NewContactService(repos.Contacts, natsClient)

	return &Services{
		Validator:  validatorService,
		Events:     eventService,
		Attendance: attendanceService,
		Contacts:   contactService,
	}
}
