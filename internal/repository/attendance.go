package repository

import (
	"context"
	"database/sql"
	"fmt"

	"atelier/internal/database"
	"atelier/internal/models"
)

type AttendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// Claim attempts to admit a booking code by inserting its attendance
// record. The insert is conditional on the UNIQUE booking_code column:
// whichever concurrent claim reaches the database first wins, the loser
// observes the conflict. There is deliberately no check-then-insert here.
func (r *AttendanceRepository) Claim(ctx context.Context, record *models.AttendanceRecord) (*models.ClaimResult, error) {
	query := `
		INSERT INTO attendance_records
			(booking_id, booking_code, event_id, event_title,
			 member_name, member_email, member_phone, member_count,
			 validated_by, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (booking_code) DO NOTHING
		RETURNING id, validated_at`

	err := r.db.QueryRowContext(ctx, query,
		record.BookingID,
		record.BookingCode,
		record.EventID,
		record.EventTitle,
		record.MemberName,
		record.MemberEmail,
		record.MemberPhone,
		record.MemberCount,
		record.ValidatedBy,
		record.IPAddress,
		record.UserAgent,
	).Scan(&record.ID, &record.ValidatedAt)

	if err == sql.ErrNoRows {
		// Conflict: a record already exists for this code. The ledger is
		// append-only, so the row read here is the one that won.
		existing, err := r.GetByBookingCode(ctx, record.BookingCode)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, fmt.Errorf("claim conflict for code %s but no existing record", record.BookingCode)
		}
		return &models.ClaimResult{Inserted: false, Record: existing}, nil
	}
	if err != nil {
		return nil, err
	}

	return &models.ClaimResult{Inserted: true, Record: record}, nil
}

func (r *AttendanceRepository) GetByBookingCode(ctx context.Context, code string) (*models.AttendanceRecord, error) {
	record := &models.AttendanceRecord{}
	query := `
		SELECT id, booking_id, booking_code, event_id, event_title,
		       member_name, member_email, COALESCE(member_phone, ''), member_count,
		       validated_at, validated_by, COALESCE(ip_address, ''), COALESCE(user_agent, '')
		FROM attendance_records
		WHERE booking_code = $1`

	err := r.db.QueryRowContext(ctx, query, code).Scan(
		&record.ID,
		&record.BookingID,
		&record.BookingCode,
		&record.EventID,
		&record.EventTitle,
		&record.MemberName,
		&record.MemberEmail,
		&record.MemberPhone,
		&record.MemberCount,
		&record.ValidatedAt,
		&record.ValidatedBy,
		&record.IPAddress,
		&record.UserAgent,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return record, err
}

func (r *AttendanceRepository) List(ctx context.Context, eventID int64, page, pageSize int) ([]models.AttendanceRecord, error) {
	var args []interface{}
	argIndex := 1

	query := `
		SELECT id, booking_id, booking_code, event_id, event_title,
		       member_name, member_email, COALESCE(member_phone, ''), member_count,
		       validated_at, validated_by, COALESCE(ip_address, ''), COALESCE(user_agent, '')
		FROM attendance_records`

	if eventID != 0 {
		query += fmt.Sprintf(" WHERE event_id = $%d", argIndex)
		args = append(args, eventID)
		argIndex++
	}

	query += " ORDER BY validated_at DESC"

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

	var records []models.AttendanceRecord
	for rows.Next() {
		var record models.AttendanceRecord
		err := rows.Scan(
			&record.ID,
			&record.BookingID,
			&record.BookingCode,
			&record.EventID,
			&record.EventTitle,
			&record.MemberName,
			&record.MemberEmail,
			&record.MemberPhone,
			&record.MemberCount,
			&record.ValidatedAt,
			&record.ValidatedBy,
			&record.IPAddress,
			&record.UserAgent,
		)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

// StatsByEvent reports validated counts against paid bookings per event
func (r *AttendanceRepository) StatsByEvent(ctx context.Context) ([]models.AttendanceStatsItem, error) {
	query := `
		SELECT e.id, e.title,
		       COUNT(DISTINCT b.id) FILTER (WHERE b.payment_status = 'paid'),
		       COUNT(DISTINCT a.id)
		FROM events e
		LEFT JOIN bookings b ON b.event_id = e.id
		LEFT JOIN attendance_records a ON a.event_id = e.id
		GROUP BY e.id, e.title
		ORDER BY e.id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []models.AttendanceStatsItem
	for rows.Next() {
		var item models.AttendanceStatsItem
		err := rows.Scan(
			&item.EventID,
			&item.EventTitle,
			&item.PaidBookings,
			&item.Validated,
		)
		if err != nil {
			return nil, err
		}
		stats = append(stats, item)
	}

	return stats, rows.Err()
}
