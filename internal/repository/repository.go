package repository

import (
	"atelier/internal/database"
)

type Repositories struct {
	Bookings   *BookingRepository
	Attendance *AttendanceRepository
	Events     *EventRepository
	Staff      *StaffRepository
	Contacts   *ContactRepository
}

func NewRepositories(db *database.DB) *Repositories {
	return &Repositories{
		Bookings:   NewBookingRepository(db),
		Attendance: NewAttendanceRepository(db),
		Events:     NewEventRepository(db),
		Staff:      NewStaffRepository(db),
		Contacts:   NewContactRepository(db),
	}
}
