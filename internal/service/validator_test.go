package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	apperrors "atelier/internal/errors"
	"atelier/internal/models"

	"github.com/stretchr/testify/assert"
)

type fakeBookingStore struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking
	lookups  int
	err      error
}

func (f *fakeBookingStore) GetByCode(ctx context.Context, code string) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups++
	if f.err != nil {
		return nil, f.err
	}
	return f.bookings[code], nil
}

type fakeLedger struct {
	mu      sync.Mutex
	records map[string]*models.AttendanceRecord
	nextID  int64
	err     error
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{records: make(map[string]*models.AttendanceRecord)}
}

// Claim mirrors the conditional-insert semantics of the real ledger:
// first writer wins, later writers observe the winning record.
func (f *fakeLedger) Claim(ctx context.Context, record *models.AttendanceRecord) (*models.ClaimResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}

	if existing, ok := f.records[record.BookingCode]; ok {
		return &models.ClaimResult{Inserted: false, Record: existing}, nil
	}

	f.nextID++
	record.ID = f.nextID
	record.ValidatedAt = time.Now()
	stored := *record
	f.records[record.BookingCode] = &stored

	return &models.ClaimResult{Inserted: true, Record: record}, nil
}

func (f *fakeLedger) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.records)
}

type fakePublisher struct {
	mu       sync.Mutex
	subjects []string
	err      error
}

func (f *fakePublisher) Publish(subject string, data interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subjects = append(f.subjects, subject)
	return f.err
}

func paidBooking(code string, memberCount int) *models.Booking {
	members := make([]models.Member, memberCount)
	for i := range members {
		members[i] = models.Member{
			Name:  "Guest " + string(rune('A'+i)),
			Email: "guest@example.com",
		}
	}
	return &models.Booking{
		ID:            1,
		Code:          code,
		EventID:       10,
		EventTitle:    "Spring Showcase",
		EventDate:     "2026-09-12",
		EventTime:     "19:00",
		PaymentStatus: models.PaymentStatusPaid,
		CreatedAt:     time.Now().Add(-48 * time.Hour),
		Members:       members,
	}
}

func newTestValidator(store *fakeBookingStore, ledger *fakeLedger, pub *fakePublisher) *ValidatorService {
	return NewValidatorService(store, ledger, pub, nil)
}

func TestValidateSuccess(t *testing.T) {
	store := &fakeBookingStore{bookings: map[string]*models.Booking{
		"XJ9K2P": paidBooking("XJ9K2P", 3),
	}}
	ledger := newFakeLedger()
	pub := &fakePublisher{}
	svc := newTestValidator(store, ledger, pub)

	result, err := svc.Validate(context.Background(), "xj9k2p", "gate-1", models.RequestMeta{IPAddress: "10.0.0.5"})
	assert.NoError(t, err)
	assert.Equal(t, models.OutcomeSuccess, result.Outcome)
	assert.NotNil(t, result.Booking)
	assert.Equal(t, "XJ9K2P", result.Booking.Code)
	assert.Equal(t, 3, result.Booking.MemberCount)
	assert.Len(t, result.Booking.Members, 3)

	assert.Equal(t, 1, ledger.count())
	record := ledger.records["XJ9K2P"]
	assert.Equal(t, "gate-1", record.ValidatedBy)
	assert.Equal(t, "Guest A", record.MemberName)
	assert.Equal(t, "10.0.0.5", record.IPAddress)

	assert.Equal(t, []string{models.EventAttendanceValidated}, pub.subjects)
}

func TestValidateAlreadyUsed(t *testing.T) {
	store := &fakeBookingStore{bookings: map[string]*models.Booking{
		"XJ9K2P": paidBooking("XJ9K2P", 3),
	}}
	ledger := newFakeLedger()
	svc := newTestValidator(store, ledger, &fakePublisher{})

	first, err := svc.Validate(context.Background(), "XJ9K2P", "gate-1", models.RequestMeta{})
	assert.NoError(t, err)
	assert.Equal(t, models.OutcomeSuccess, first.Outcome)

	second, err := svc.Validate(context.Background(), "XJ9K2P", "gate-2", models.RequestMeta{})
	assert.NoError(t, err)
	assert.Equal(t, models.OutcomeAlreadyUsed, second.Outcome)
	assert.NotNil(t, second.AlreadyUsed)
	assert.Equal(t, "gate-1", second.AlreadyUsed.ValidatedBy)
	assert.Equal(t, "Guest A", second.AlreadyUsed.MemberName)
	assert.False(t, second.AlreadyUsed.ValidatedAt.IsZero())

	// Still exactly one record
	assert.Equal(t, 1, ledger.count())
}

func TestValidateNotEligible(t *testing.T) {
	booking := paidBooking("PEND01", 2)
	booking.PaymentStatus = models.PaymentStatusPending
	store := &fakeBookingStore{bookings: map[string]*models.Booking{"PEND01": booking}}
	ledger := newFakeLedger()
	svc := newTestValidator(store, ledger, &fakePublisher{})

	result, err := svc.Validate(context.Background(), "PEND01", "gate-1", models.RequestMeta{})
	assert.NoError(t, err)
	assert.Equal(t, models.OutcomeNotEligible, result.Outcome)

	// Enough metadata for the operator to explain the denial
	assert.NotNil(t, result.Booking)
	assert.Equal(t, "Spring Showcase", result.Booking.EventTitle)
	assert.Equal(t, models.PaymentStatusPending, result.Booking.PaymentStatus)
	assert.False(t, result.Booking.CreatedAt.IsZero())

	// Member list is not echoed on denial
	assert.Empty(t, result.Booking.Members)

	assert.Equal(t, 0, ledger.count())
}

func TestValidateNotFound(t *testing.T) {
	store := &fakeBookingStore{bookings: map[string]*models.Booking{}}
	ledger := newFakeLedger()
	svc := newTestValidator(store, ledger, &fakePublisher{})

	result, err := svc.Validate(context.Background(), "ZZZZZZ", "gate-1", models.RequestMeta{})
	assert.NoError(t, err)
	assert.Equal(t, models.OutcomeNotFound, result.Outcome)
	assert.Nil(t, result.Booking)
	assert.Equal(t, 0, ledger.count())
}

func TestValidateInvalidInput(t *testing.T) {
	store := &fakeBookingStore{bookings: map[string]*models.Booking{}}
	ledger := newFakeLedger()
	svc := newTestValidator(store, ledger, &fakePublisher{})

	cases := []string{"", "   ", strings.Repeat("A", 11)}
	for _, code := range cases {
		result, err := svc.Validate(context.Background(), code, "gate-1", models.RequestMeta{})
		assert.NoError(t, err)
		assert.Equal(t, models.OutcomeInvalidInput, result.Outcome, "code %q", code)
	}

	// Malformed input never reaches the store
	assert.Equal(t, 0, store.lookups)
	assert.Equal(t, 0, ledger.count())
}

func TestValidateNormalization(t *testing.T) {
	store := &fakeBookingStore{bookings: map[string]*models.Booking{
		"ABC123": paidBooking("ABC123", 1),
	}}
	ledger := newFakeLedger()
	svc := newTestValidator(store, ledger, &fakePublisher{})

	result, err := svc.Validate(context.Background(), " abc123 ", "gate-1", models.RequestMeta{})
	assert.NoError(t, err)
	assert.Equal(t, models.OutcomeSuccess, result.Outcome)

	// The other spellings hit the same claim
	for _, code := range []string{"ABC123", "abc123"} {
		result, err := svc.Validate(context.Background(), code, "gate-2", models.RequestMeta{})
		assert.NoError(t, err)
		assert.Equal(t, models.OutcomeAlreadyUsed, result.Outcome)
	}

	assert.Equal(t, 1, ledger.count())
}

func TestValidateConcurrentSingleUse(t *testing.T) {
	store := &fakeBookingStore{bookings: map[string]*models.Booking{
		"NEWONE": paidBooking("NEWONE", 2),
	}}
	ledger := newFakeLedger()
	svc := newTestValidator(store, ledger, &fakePublisher{})

	const attempts = 50
	results := make([]*models.ValidationResult, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			result, err := svc.Validate(context.Background(), "NEWONE", "gate-1", models.RequestMeta{})
			assert.NoError(t, err)
			results[i] = result
		}(i)
	}
	wg.Wait()

	successes := 0
	replays := 0
	winner := ledger.records["NEWONE"]
	for _, result := range results {
		switch result.Outcome {
		case models.OutcomeSuccess:
			successes++
		case models.OutcomeAlreadyUsed:
			replays++
			assert.Equal(t, winner.ValidatedBy, result.AlreadyUsed.ValidatedBy)
			assert.Equal(t, winner.ValidatedAt, result.AlreadyUsed.ValidatedAt)
		default:
			t.Fatalf("unexpected outcome %s", result.Outcome)
		}
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, replays)
	assert.Equal(t, 1, ledger.count())
}

func TestValidateStoreUnavailable(t *testing.T) {
	store := &fakeBookingStore{err: assert.AnError}
	ledger := newFakeLedger()
	svc := newTestValidator(store, ledger, &fakePublisher{})

	result, err := svc.Validate(context.Background(), "XJ9K2P", "gate-1", models.RequestMeta{})
	assert.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrStoreUnavailable)
	assert.Nil(t, result)

	claimStore := &fakeBookingStore{bookings: map[string]*models.Booking{
		"XJ9K2P": paidBooking("XJ9K2P", 1),
	}}
	failingLedger := newFakeLedger()
	failingLedger.err = assert.AnError
	svc = newTestValidator(claimStore, failingLedger, &fakePublisher{})

	result, err = svc.Validate(context.Background(), "XJ9K2P", "gate-1", models.RequestMeta{})
	assert.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrStoreUnavailable)
	assert.Nil(t, result)
}

func TestValidatePublishFailureDoesNotChangeOutcome(t *testing.T) {
	store := &fakeBookingStore{bookings: map[string]*models.Booking{
		"XJ9K2P": paidBooking("XJ9K2P", 2),
	}}
	ledger := newFakeLedger()
	pub := &fakePublisher{err: assert.AnError}
	svc := newTestValidator(store, ledger, pub)

	result, err := svc.Validate(context.Background(), "XJ9K2P", "gate-1", models.RequestMeta{})
	assert.NoError(t, err)
	assert.Equal(t, models.OutcomeSuccess, result.Outcome)
	assert.Equal(t, 1, ledger.count())
}
