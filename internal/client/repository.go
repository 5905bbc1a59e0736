package client

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"gymdesk/internal/db"
)

var (
	ErrClientNotFound      = errors.New("client not found")
	ErrPhoneTaken          = errors.New("client with this phone already exists")
	ErrHasActiveMembership = errors.New("client has an active membership")
	ErrHasLinkedRecords    = errors.New("client has linked records")
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(database *sqlx.DB) Repository {
	return &repository{db: database}
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23503"
}

func (r *repository) Create(ctx context.Context, fullName string, birthDate *time.Time, phone string, email *string, status Status) (*Client, error) {
	query := `
		INSERT INTO clients (full_name, birth_date, phone, email, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, full_name, birth_date, phone, email, status, created_at
	`

	var client Client
	err := r.db.GetContext(ctx, &client, query, fullName, birthDate, phone, email, status)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrPhoneTaken
		}
		return nil, err
	}

	return &client, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Client, error) {
	query := `
		SELECT id, full_name, birth_date, phone, email, status, created_at
		FROM clients
		WHERE id = $1
	`

	var client Client
	err := r.db.GetContext(ctx, &client, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}

	return &client, nil
}

func (r *repository) List(ctx context.Context, search, status string, expiresOn *time.Time) ([]Client, error) {
	query := `
		SELECT id, full_name, birth_date, phone, email, status, created_at
		FROM clients
		WHERE ($1 = '' OR full_name ILIKE '%' || $1 || '%' OR phone LIKE '%' || $1 || '%' OR email ILIKE '%' || $1 || '%')
		  AND ($2 = '' OR status = $2)
		  AND ($3::date IS NULL OR EXISTS (
			SELECT 1 FROM memberships m
			WHERE m.client_id = clients.id AND m.is_active AND m.end_date = $3::date
		  ))
		ORDER BY full_name ASC
	`

	clients := []Client{}
	err := r.db.SelectContext(ctx, &clients, query, search, status, expiresOn)
	if err != nil {
		return nil, err
	}

	return clients, nil
}

func (r *repository) Update(ctx context.Context, id int, fullName string, birthDate *time.Time, phone string, email *string, status Status) (*Client, error) {
	query := `
		UPDATE clients
		SET full_name = $2, birth_date = $3, phone = $4, email = $5, status = $6
		WHERE id = $1
		RETURNING id, full_name, birth_date, phone, email, status, created_at
	`

	var client Client
	err := r.db.GetContext(ctx, &client, query, id, fullName, birthDate, phone, email, status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrClientNotFound
		}
		if isUniqueViolation(err) {
			return nil, ErrPhoneTaken
		}
		return nil, err
	}

	return &client, nil
}

func (r *repository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrHasLinkedRecords
		}
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrClientNotFound
	}

	return nil
}

func (r *repository) PhoneExists(ctx context.Context, phone string, excludeID int) (bool, error) {
	return db.Exists(ctx, r.db, `
		SELECT EXISTS(
			SELECT 1 FROM clients
			WHERE phone = $1 AND id <> $2
		)
	`, phone, excludeID)
}

func (r *repository) HasActiveMembership(ctx context.Context, clientID int) (bool, error) {
	return db.Exists(ctx, r.db, `
		SELECT EXISTS(
			SELECT 1 FROM memberships
			WHERE client_id = $1 AND is_active = true
		)
	`, clientID)
}
