package models

import (
	"strings"
	"time"
)

// MaxCodeLength bounds a normalized booking code. Codes are short
// human-entered tokens; anything longer is a client bug, not a lookup miss.
const MaxCodeLength = 10

// NormalizeCode trims surrounding whitespace and uppercases a submitted
// booking code so that " abc123 " and "ABC123" resolve identically.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidationOutcome classifies the result of a validation attempt.
// Each outcome is distinct so the console can render a tailored message.
type ValidationOutcome string

const (
	OutcomeSuccess          ValidationOutcome = "success"
	OutcomeInvalidInput     ValidationOutcome = "invalid_input"
	OutcomeNotFound         ValidationOutcome = "not_found"
	OutcomeNotEligible      ValidationOutcome = "not_eligible"
	OutcomeAlreadyUsed      ValidationOutcome = "already_used"
	OutcomeStoreUnavailable ValidationOutcome = "store_unavailable"
)

// ValidateCodeRequest is the console's validation request
type ValidateCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// RequestMeta carries optional provenance recorded with a claim
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

// ValidationResult is returned for every validation attempt, success or not
type ValidationResult struct {
	Outcome ValidationOutcome `json:"outcome"`
	Message string            `json:"message"`

	// Booking is present for success and not_eligible outcomes so the
	// operator can explain the decision to the attendee.
	Booking *BookingDetails `json:"booking,omitempty"`

	// AlreadyUsed is present only for the already_used outcome.
	AlreadyUsed *ReplayDetails `json:"already_used,omitempty"`
}

// BookingDetails is the booking metadata echoed back to the console
type BookingDetails struct {
	Code          string    `json:"code"`
	EventTitle    string    `json:"event_title"`
	EventDate     string    `json:"event_date"`
	EventTime     string    `json:"event_time"`
	PaymentStatus string    `json:"payment_status"`
	MemberCount   int       `json:"member_count"`
	Members       []Member  `json:"members,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// ReplayDetails tells the operator who already used a code and when
type ReplayDetails struct {
	ValidatedAt time.Time `json:"validated_at"`
	ValidatedBy string    `json:"validated_by"`
	MemberName  string    `json:"member_name"`
}

// ClaimResult is the tagged result of the atomic ledger claim
type ClaimResult struct {
	Inserted bool
	Record   *AttendanceRecord // the winning record: new on insert, prior on conflict
}

// CreateEventRequest - model for creating an event
type CreateEventRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Location    string `json:"location"`
	EventDate   string `json:"event_date" binding:"required"`
	EventTime   string `json:"event_time" binding:"required"`
	Capacity    int    `json:"capacity"`
}

// CreateEventResponse - response model for event creation
type CreateEventResponse struct {
	ID int64 `json:"id"`
}

// ListEventsResponseItem - events list element
type ListEventsResponseItem struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Location  string `json:"location,omitempty"`
	EventDate string `json:"event_date"`
	EventTime string `json:"event_time"`
}

// ListEventsResponse - events list
type ListEventsResponse []ListEventsResponseItem

// ListBookingsResponseItem - bookings list element for the admin surface
type ListBookingsResponseItem struct {
	ID            int64     `json:"id"`
	Code          string    `json:"code"`
	EventTitle    string    `json:"event_title"`
	PaymentStatus string    `json:"payment_status"`
	MemberCount   int       `json:"member_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// BookingDetailResponse - single booking with members and attendance state
type BookingDetailResponse struct {
	Booking    *Booking          `json:"booking"`
	Attendance *AttendanceRecord `json:"attendance,omitempty"`
}

// AttendanceStatsItem - per-event admission counters
type AttendanceStatsItem struct {
	EventID      int64  `json:"event_id"`
	EventTitle   string `json:"event_title"`
	PaidBookings int    `json:"paid_bookings"`
	Validated    int    `json:"validated"`
}

// CreateContactRequest - public contact form submission
type CreateContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message" binding:"required"`
}

// CreateContactResponse - response model for contact form submission
type CreateContactResponse struct {
	ID int64 `json:"id"`
}
