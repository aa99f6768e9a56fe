package repository

import (
	"context"
	"database/sql"
	"fmt"

	"atelier/internal/database"
	"atelier/internal/models"
)

type BookingRepository struct {
	db *database.DB
}

func NewBookingRepository(db *database.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// GetByCode looks up a booking by its normalized code, members included.
// The caller is expected to have normalized the code already.
func (r *BookingRepository) GetByCode(ctx context.Context, code string) (*models.Booking, error) {
	booking := &models.Booking{}
	query := `
		SELECT id, code, event_id, event_title, event_date, event_time, payment_status, created_at
		FROM bookings
		WHERE code = $1`

	err := r.db.QueryRowContext(ctx, query, code).Scan(
		&booking.ID,
		&booking.Code,
		&booking.EventID,
		&booking.EventTitle,
		&booking.EventDate,
		&booking.EventTime,
		&booking.PaymentStatus,
		&booking.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	members, err := r.GetMembers(ctx, booking.ID)
	if err != nil {
		return nil, err
	}
	booking.Members = members

	return booking, nil
}

func (r *BookingRepository) GetMembers(ctx context.Context, bookingID int64) ([]models.Member, error) {
	var members []models.Member
	query := `
		SELECT id, name, email, COALESCE(phone, '')
		FROM booking_members
		WHERE booking_id = $1
		ORDER BY position`

	rows, err := r.db.QueryContext(ctx, query, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var member models.Member
		err := rows.Scan(
			&member.ID,
			&member.Name,
			&member.Email,
			&member.Phone,
		)
		if err != nil {
			return nil, err
		}
		members = append(members, member)
	}

	return members, rows.Err()
}

func (r *BookingRepository) List(ctx context.Context, paymentStatus string, page, pageSize int) ([]models.ListBookingsResponseItem, error) {
	var args []interface{}
	argIndex := 1

	query := `
		SELECT b.id, b.code, b.event_title, b.payment_status, b.created_at,
		       (SELECT COUNT(*) FROM booking_members m WHERE m.booking_id = b.id)
		FROM bookings b`

	if paymentStatus != "" {
		query += fmt.Sprintf(" WHERE b.payment_status = $%d", argIndex)
		args = append(args, paymentStatus)
		argIndex++
	}

	query += " ORDER BY b.created_at DESC"

	if page > 0 && pageSize > 0 {
		offset := (page - 1) * pageSize
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
		args = append(args, pageSize, offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []models.ListBookingsResponseItem
	for rows.Next() {
		var item models.ListBookingsResponseItem
		err := rows.Scan(
			&item.ID,
			&item.Code,
			&item.EventTitle,
			&item.PaymentStatus,
			&item.CreatedAt,
			&item.MemberCount,
		)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, item)
	}

	return bookings, rows.Err()
}

// Create inserts a booking with its members. Used by the seed command only:
// in production bookings arrive from the upstream payment flow.
func (r *BookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO bookings (code, event_id, event_title, event_date, event_time, payment_status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err = tx.QueryRowContext(ctx, query,
		booking.Code,
		booking.EventID,
		booking.EventTitle,
		booking.EventDate,
		booking.EventTime,
		booking.PaymentStatus,
	).Scan(&booking.ID, &booking.CreatedAt)
	if err != nil {
		return err
	}

	memberQuery := `
		INSERT INTO booking_members (booking_id, position, name, email, phone)
		VALUES ($1, $2, $3, $4, $5)`

	for i, member := range booking.Members {
		if _, err := tx.ExecContext(ctx, memberQuery, booking.ID, i, member.Name, member.Email, member.Phone); err != nil {
			return err
		}
	}

	return tx.Commit()
}
