package repository

import (
	"context"
	"database/sql"

	"atelier/internal/database"
	"atelier/internal/models"
)

type StaffRepository struct {
	db *database.DB
}

func NewStaffRepository(db *database.DB) *StaffRepository {
	return &StaffRepository{db: db}
}

func (r *StaffRepository) GetByEmail(ctx context.Context, email string) (*models.Staff, error) {
	staff := &models.Staff{}
	query := `
		SELECT id, email, password_hash, full_name, role, is_active, created_at
		FROM staff
		WHERE email = $1`

	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&staff.ID,
		&staff.Email,
		&staff.PasswordHash,
		&staff.FullName,
		&staff.Role,
		&staff.IsActive,
		&staff.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return staff, err
}

func (r *StaffRepository) Create(ctx context.Context, staff *models.Staff) error {
	query := `
		INSERT INTO staff (email, password_hash, full_name, role, is_active)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO NOTHING
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		staff.Email,
		staff.PasswordHash,
		staff.FullName,
		staff.Role,
		staff.IsActive,
	).Scan(&staff.ID, &staff.CreatedAt)

	if err == sql.ErrNoRows {
		// Already seeded
		return nil
	}

	return err
}
