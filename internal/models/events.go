package models

import "time"

// NATS Event Types
const (
	EventAttendanceValidated = "attendance.validated"
	EventContactReceived     = "contact.received"
)

// AttendanceValidatedEvent is published after a successful ledger claim.
// The notification consumer turns it into welcome emails; failures there
// never affect the admission decision already committed.
type AttendanceValidatedEvent struct {
	BookingID   int64     `json:"booking_id"`
	BookingCode string    `json:"booking_code"`
	EventID     int64     `json:"event_id"`
	EventTitle  string    `json:"event_title"`
	EventDate   string    `json:"event_date"`
	EventTime   string    `json:"event_time"`
	Members     []Member  `json:"members"`
	ValidatedBy string    `json:"validated_by"`
	Timestamp   time.Time `json:"timestamp"`
}

// ContactReceivedEvent is published when the public contact form is submitted
type ContactReceivedEvent struct {
	ContactID int64     `json:"contact_id"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Timestamp time.Time `json:"timestamp"`
}
