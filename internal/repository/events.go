package repository

import (
	"context"
	"database/sql"
	"fmt"

	"atelier/internal/database"
	"atelier/internal/models"
)

type EventRepository struct {
	db *database.DB
}

func NewEventRepository(db *database.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	query := `
		INSERT INTO events (title, description, location, event_date, event_time, capacity)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		event.Title,
		event.Description,
		event.Location,
		event.EventDate,
		event.EventTime,
		event.Capacity,
	).Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt)

	return err
}

func (r *EventRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	event := &models.Event{}
	query := `
		SELECT id, title, description, location, event_date, event_time, capacity, created_at, updated_at
		FROM events
		WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.Location,
		&event.EventDate,
		&event.EventTime,
		&event.Capacity,
		&event.CreatedAt,
		&event.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return event, err
}

// List is the Postgres fallback used when the search index is unavailable.
// Text matching here is a plain ILIKE, not the analyzer-backed search.
func (r *EventRepository) List(ctx context.Context, query, date string, page, pageSize int) ([]models.Event, error) {
	var args []interface{}
	argIndex := 1

	sqlQuery := `
		SELECT id, title, description, location, event_date, event_time, capacity, created_at, updated_at
		FROM events`

	where := ""
	if query != "" {
		where = fmt.Sprintf(" WHERE (title ILIKE $%d OR description ILIKE $%d)", argIndex, argIndex)
		args = append(args, "%"+query+"%")
		argIndex++
	}
	if date != "" {
		if where == "" {
			where = fmt.Sprintf(" WHERE event_date = $%d", argIndex)
		} else {
			where += fmt.Sprintf(" AND event_date = $%d", argIndex)
		}
		args = append(args, date)
		argIndex++
	}
	sqlQuery += where

	sqlQuery += " ORDER BY event_date, id"

	if page > 0 && pageSize > 0 {
		offset := (page - 1) * pageSize
		sqlQuery += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
		args = append(args, pageSize, offset)
	}

	rows, err := r.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var event models.Event
		err := rows.Scan(
			&event.ID,
			&event.Title,
			&event.Description,
			&event.Location,
			&event.EventDate,
			&event.EventTime,
			&event.Capacity,
			&event.CreatedAt,
			&event.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	return events, rows.Err()
}
