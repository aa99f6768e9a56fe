package models

import (
	"time"
)

// Staff represents a staff member allowed to operate the validator console
type Staff struct {
	ID           int64     `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FullName     string    `json:"full_name" db:"full_name"`
	Role         string    `json:"role" db:"role"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Event represents a class, workshop or showcase hosted by the academy
type Event struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description *string   `json:"description" db:"description"`
	Location    *string   `json:"location" db:"location"`
	EventDate   string    `json:"event_date" db:"event_date"`
	EventTime   string    `json:"event_time" db:"event_time"`
	Capacity    int       `json:"capacity" db:"capacity"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Booking is a paid (or pending) reservation identified by a short
// human-typed code. Bookings are created by the upstream payment flow
// and are read-only to this service.
type Booking struct {
	ID            int64     `json:"id" db:"id"`
	Code          string    `json:"code" db:"code"`
	EventID       int64     `json:"event_id" db:"event_id"`
	EventTitle    string    `json:"event_title" db:"event_title"`
	EventDate     string    `json:"event_date" db:"event_date"`
	EventTime     string    `json:"event_time" db:"event_time"`
	PaymentStatus string    `json:"payment_status" db:"payment_status"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	Members       []Member  `json:"members,omitempty"` // Not from DB, filled separately
}

// Member is a single attendee listed on a booking
type Member struct {
	ID    int64  `json:"id,omitempty" db:"id"`
	Name  string `json:"name" db:"name"`
	Email string `json:"email" db:"email"`
	Phone string `json:"phone,omitempty" db:"phone"`
}

// AttendanceRecord is written exactly once per successfully validated
// booking code. The ledger is append-only: rows are never updated or
// deleted by this service.
type AttendanceRecord struct {
	ID          int64     `json:"id" db:"id"`
	BookingID   int64     `json:"booking_id" db:"booking_id"`
	BookingCode string    `json:"booking_code" db:"booking_code"`
	EventID     int64     `json:"event_id" db:"event_id"`
	EventTitle  string    `json:"event_title" db:"event_title"`
	MemberName  string    `json:"member_name" db:"member_name"`
	MemberEmail string    `json:"member_email" db:"member_email"`
	MemberPhone string    `json:"member_phone" db:"member_phone"`
	MemberCount int       `json:"member_count" db:"member_count"`
	ValidatedAt time.Time `json:"validated_at" db:"validated_at"`
	ValidatedBy string    `json:"validated_by" db:"validated_by"`
	IPAddress   string    `json:"ip_address,omitempty" db:"ip_address"`
	UserAgent   string    `json:"user_agent,omitempty" db:"user_agent"`
}

// ContactMessage is a submission from the public contact form
type ContactMessage struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Phone     string    `json:"phone,omitempty" db:"phone"`
	Subject   string    `json:"subject,omitempty" db:"subject"`
	Message   string    `json:"message" db:"message"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Payment statuses a booking can carry. Only paid bookings are admissible.
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
)
