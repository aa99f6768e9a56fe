package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"atelier/internal/cache"
	apperrors "atelier/internal/errors"
	"atelier/internal/logger"
	"atelier/internal/metrics"
	"atelier/internal/models"
)

// BookingStore is the read-only lookup the validator performs against
// the upstream booking data.
type BookingStore interface {
	GetByCode(ctx context.Context, code string) (*models.Booking, error)
}

// AttendanceLedger is the single write path for admissions. Claim must be
// atomic: it either inserts the record or reports the one that beat it.
type AttendanceLedger interface {
	Claim(ctx context.Context, record *models.AttendanceRecord) (*models.ClaimResult, error)
}

// Publisher hands successful validations off to the notification pipeline
type Publisher interface {
	Publish(subject string, data interface{}) error
}

// ValidatorService implements the booking-code validation workflow:
// normalize, look up, check eligibility, claim atomically, notify.
// The service itself is stateless between calls; the ledger's claim is
// the only arbiter of who validated first.
type ValidatorService struct {
	bookings   BookingStore
	attendance AttendanceLedger
	publisher  Publisher
	valkey     *cache.ValkeyClient
}

func NewValidatorService(bookings BookingStore, attendance AttendanceLedger, publisher Publisher, valkey *cache.ValkeyClient) *ValidatorService {
	return &ValidatorService{
		bookings:   bookings,
		attendance: attendance,
		publisher:  publisher,
		valkey:     valkey,
	}
}

// Validate checks a submitted code on behalf of an authenticated staff
// member. Every business outcome comes back as a ValidationResult; a
// non-nil error means the backing store was unavailable and the caller
// may retry (the claim is idempotent, a retry of a claimed code yields
// already_used rather than a second success).
func (s *ValidatorService) Validate(ctx context.Context, submittedCode, validatedBy string, meta models.RequestMeta) (*models.ValidationResult, error) {
	code := models.NormalizeCode(submittedCode)
	if code == "" || len(code) > models.MaxCodeLength {
		metrics.RecordValidation(string(models.OutcomeInvalidInput))
		return &models.ValidationResult{
			Outcome: models.OutcomeInvalidInput,
			Message: fmt.Sprintf("booking code must be 1-%d characters", models.MaxCodeLength),
		}, nil
	}

	booking, err := s.lookupBooking(ctx, code)
	if err != nil {
		metrics.RecordValidation(string(models.OutcomeStoreUnavailable))
		return nil, fmt.Errorf("failed to look up booking: %w", errors.Join(apperrors.ErrStoreUnavailable, err))
	}
	if booking == nil {
		metrics.RecordValidation(string(models.OutcomeNotFound))
		return &models.ValidationResult{
			Outcome: models.OutcomeNotFound,
			Message: "invalid booking code",
		}, nil
	}

	if booking.PaymentStatus != models.PaymentStatusPaid {
		metrics.RecordValidation(string(models.OutcomeNotEligible))
		return &models.ValidationResult{
			Outcome: models.OutcomeNotEligible,
			Message: fmt.Sprintf("booking is not admission-eligible: payment is %s", booking.PaymentStatus),
			Booking: bookingDetails(booking, false),
		}, nil
	}

	record := &models.AttendanceRecord{
		BookingID:   booking.ID,
		BookingCode: booking.Code,
		EventID:     booking.EventID,
		EventTitle:  booking.EventTitle,
		MemberCount: len(booking.Members),
		ValidatedBy: validatedBy,
		IPAddress:   meta.IPAddress,
		UserAgent:   meta.UserAgent,
	}
	if len(booking.Members) > 0 {
		record.MemberName = booking.Members[0].Name
		record.MemberEmail = booking.Members[0].Email
		record.MemberPhone = booking.Members[0].Phone
	}

	claim, err := s.attendance.Claim(ctx, record)
	if err != nil {
		metrics.RecordValidation(string(models.OutcomeStoreUnavailable))
		return nil, fmt.Errorf("failed to claim attendance: %w", errors.Join(apperrors.ErrStoreUnavailable, err))
	}

	if !claim.Inserted {
		metrics.RecordValidation(string(models.OutcomeAlreadyUsed))
		return &models.ValidationResult{
			Outcome: models.OutcomeAlreadyUsed,
			Message: "booking code has already been used",
			AlreadyUsed: &models.ReplayDetails{
				ValidatedAt: claim.Record.ValidatedAt,
				ValidatedBy: claim.Record.ValidatedBy,
				MemberName:  claim.Record.MemberName,
			},
		}, nil
	}

	// Admission is final once the claim lands. Notification is best-effort:
	// a publish failure is logged and swallowed, never rolled back.
	s.publishValidated(ctx, booking, validatedBy)

	metrics.RecordValidation(string(models.OutcomeSuccess))
	return &models.ValidationResult{
		Outcome: models.OutcomeSuccess,
		Message: "welcome",
		Booking: bookingDetails(booking, true),
	}, nil
}

// lookupBooking checks the cache before Postgres. Only paid bookings are
// cached so a stale entry cannot mask a pending-to-paid transition.
func (s *ValidatorService) lookupBooking(ctx context.Context, code string) (*models.Booking, error) {
	if s.valkey != nil {
		if booking, err := s.valkey.GetBookingByCode(ctx, code); err == nil && booking != nil {
			return booking, nil
		}
	}

	booking, err := s.bookings.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if booking != nil && booking.PaymentStatus == models.PaymentStatusPaid && s.valkey != nil {
		if err := s.valkey.SetBookingByCode(ctx, booking); err != nil {
			logger.WithContext(ctx).Warn("Failed to cache booking", "code", code, "error", err)
		}
	}

	return booking, nil
}

func (s *ValidatorService) publishValidated(ctx context.Context, booking *models.Booking, validatedBy string) {
	event := models.AttendanceValidatedEvent{
		BookingID:   booking.ID,
		BookingCode: booking.Code,
		EventID:     booking.EventID,
		EventTitle:  booking.EventTitle,
		EventDate:   booking.EventDate,
		EventTime:   booking.EventTime,
		Members:     booking.Members,
		ValidatedBy: validatedBy,
		Timestamp:   time.Now(),
	}

	if err := s.publisher.Publish(models.EventAttendanceValidated, event); err != nil {
		logger.WithContext(ctx).Error("Failed to publish attendance validated event",
			"error", err,
			"booking_code", booking.Code,
			"event_type", models.EventAttendanceValidated)
	}
}

func bookingDetails(booking *models.Booking, includeMembers bool) *models.BookingDetails {
	details := &models.BookingDetails{
		Code:          booking.Code,
		EventTitle:    booking.EventTitle,
		EventDate:     booking.EventDate,
		EventTime:     booking.EventTime,
		PaymentStatus: booking.PaymentStatus,
		MemberCount:   len(booking.Members),
		CreatedAt:     booking.CreatedAt,
	}
	if includeMembers {
		details.Members = booking.Members
	}
	return details
}
