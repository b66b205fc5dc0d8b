package inquiry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// ErrNotFound is returned when an inquiry or plan does not exist.
var ErrNotFound = errors.New("not found")

// Repository stores contact inquiries.
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates an inquiry repository.
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// Create validates the form and stores it under a new ID.
func (r *Repository) Create(ctx context.Context, f Form) (*Inquiry, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO inquiries (id, name, contact_number, email, budget, message)
		VALUES (?, ?, ?, ?, ?, ?)`,
		id, f.Name, f.ContactNumber, f.Email, f.Budget, f.Message,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting inquiry: %w", err)
	}

	return r.Get(ctx, id)
}

// Get returns one inquiry.
func (r *Repository) Get(ctx context.Context, id string) (*Inquiry, error) {
	var inq Inquiry
	err := r.db.GetContext(ctx, &inq,
		`SELECT id, name, contact_number, email, budget, message, created_at
		FROM inquiries WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("inquiry %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reading inquiry: %w", err)
	}
	return &inq, nil
}

// List returns inquiries newest first. limit <= 0 returns all.
func (r *Repository) List(ctx context.Context, limit int) ([]*Inquiry, error) {
	query := `SELECT id, name, contact_number, email, budget, message, created_at
		FROM inquiries ORDER BY created_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	var inquiries []*Inquiry
	if err := r.db.SelectContext(ctx, &inquiries, query, args...); err != nil {
		return nil, fmt.Errorf("listing inquiries: %w", err)
	}
	return inquiries, nil
}

// Delete removes an inquiry.
func (r *Repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM inquiries WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting inquiry: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("inquiry %s: %w", id, ErrNotFound)
	}
	return nil
}
