package repository

import (
	"context"
	"fmt"

	"atelier/internal/database"
	"atelier/internal/models"
)

type ContactRepository struct {
	db *database.DB
}

func NewContactRepository(db *database.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) Create(ctx context.Context, msg *models.ContactMessage) error {
	query := `
		INSERT INTO contact_messages (name, email, phone, subject, message)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		msg.Name,
		msg.Email,
		msg.Phone,
		msg.Subject,
		msg.Message,
	).Scan(&msg.ID, &msg.CreatedAt)

	return err
}

func (r *ContactRepository) List(ctx context.Context, page, pageSize int) ([]models.ContactMessage, error) {
	var args []interface{}
	argIndex := 1

	query := `
		SELECT id, name, email, COALESCE(phone, ''), COALESCE(subject, ''), message, created_at
		FROM contact_messages
		ORDER BY created_at DESC`

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

	var messages []models.ContactMessage
	for rows.Next() {
		var msg models.ContactMessage
		err := rows.Scan(
			&msg.ID,
			&msg.Name,
			&msg.Email,
			&msg.Phone,
			&msg.Subject,
			&msg.Message,
			&msg.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}

	return messages, rows.Err()
}
