package database

import (
	"fmt"
	"log/slog"
)

func (db *DB) RunMigrations() error {
	slog.Info("Running database migrations...")

	migrations := []string{
		createStaffTable,
		createEventsTable,
		createBookingsTable,
		createBookingMembersTable,
		createAttendanceRecordsTable,
		createContactMessagesTable,
		createBookingsEventIndex,
		createAttendanceEventIndex,
	}

	for i, migration := range migrations {
		slog.Info("Running migration", "step", i+1)
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	slog.Info("All migrations completed successfully")
	return nil
}

const createStaffTable = `
CREATE TABLE IF NOT EXISTS staff (
    id SERIAL PRIMARY KEY,
    email VARCHAR(255) UNIQUE NOT NULL,
    password_hash VARCHAR(64) NOT NULL,
    full_name VARCHAR(200) NOT NULL,
    role VARCHAR(50) NOT NULL DEFAULT 'validator',
    is_active BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);`

const createEventsTable = `
CREATE TABLE IF NOT EXISTS events (
    id SERIAL PRIMARY KEY,
    title VARCHAR(500) NOT NULL,
    description TEXT,
    location VARCHAR(255),
    event_date VARCHAR(10) NOT NULL,
    event_time VARCHAR(8) NOT NULL,
    capacity INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP NOT NULL DEFAULT NOW()
);`

const createBookingsTable = `
CREATE TABLE IF NOT EXISTS bookings (
    id SERIAL PRIMARY KEY,
    code VARCHAR(10) UNIQUE NOT NULL,
    event_id INTEGER NOT NULL REFERENCES events(id) ON DELETE CASCADE,
    event_title VARCHAR(500) NOT NULL,
    event_date VARCHAR(10) NOT NULL,
    event_time VARCHAR(8) NOT NULL,
    payment_status VARCHAR(10) NOT NULL DEFAULT 'pending',
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),

    CHECK (payment_status IN ('pending', 'paid', 'failed'))
);`

const createBookingMembersTable = `
CREATE TABLE IF NOT EXISTS booking_members (
    id SERIAL PRIMARY KEY,
    booking_id INTEGER NOT NULL REFERENCES bookings(id) ON DELETE CASCADE,
    position INTEGER NOT NULL DEFAULT 0,
    name VARCHAR(200) NOT NULL,
    email VARCHAR(255) NOT NULL,
    phone VARCHAR(50),

    UNIQUE(booking_id, position)
);`

// The UNIQUE constraint on booking_code is the single arbiter for admission:
// the conditional insert in AttendanceRepository.Claim relies on it.
const createAttendanceRecordsTable = `
CREATE TABLE IF NOT EXISTS attendance_records (
    id SERIAL PRIMARY KEY,
    booking_id INTEGER NOT NULL REFERENCES bookings(id),
    booking_code VARCHAR(10) UNIQUE NOT NULL,
    event_id INTEGER NOT NULL,
    event_title VARCHAR(500) NOT NULL,
    member_name VARCHAR(200) NOT NULL,
    member_email VARCHAR(255) NOT NULL,
    member_phone VARCHAR(50),
    member_count INTEGER NOT NULL DEFAULT 1,
    validated_at TIMESTAMP NOT NULL DEFAULT NOW(),
    validated_by VARCHAR(255) NOT NULL,
    ip_address VARCHAR(45),
    user_agent TEXT
);`

const createContactMessagesTable = `
CREATE TABLE IF NOT EXISTS contact_messages (
    id SERIAL PRIMARY KEY,
    name VARCHAR(200) NOT NULL,
    email VARCHAR(255) NOT NULL,
    phone VARCHAR(50),
    subject VARCHAR(255),
    message TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);`

const createBookingsEventIndex = `
CREATE INDEX IF NOT EXISTS idx_bookings_event_id ON bookings(event_id);`

const createAttendanceEventIndex = `
CREATE INDEX IF NOT EXISTS idx_attendance_event_id ON attendance_records(event_id);`
