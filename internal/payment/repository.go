package payment

import (
	"context"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	ErrClientNotFound     = errors.New("client not found")
	ErrMembershipNotFound = errors.New("membership not found")
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(database *sqlx.DB) Repository {
	return &repository{db: database}
}

func (r *repository) Create(ctx context.Context, clientID int, membershipID *int, amountCents int64, method Method, notes *string) (*Payment, error) {
	query := `
		INSERT INTO payments (client_id, membership_id, amount_cents, method, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, client_id, membership_id, amount_cents, method, paid_at, notes
	`

	var p Payment
	err := r.db.GetContext(ctx, &p, query, clientID, membershipID, amountCents, method, notes)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			if pqErr.Constraint == "payments_membership_id_fkey" {
				return nil, ErrMembershipNotFound
			}
			return nil, ErrClientNotFound
		}
		return nil, err
	}

	return &p, nil
}

func (r *repository) ListByClient(ctx context.Context, clientID int) ([]Payment, error) {
	query := `
		SELECT id, client_id, membership_id, amount_cents, method, paid_at, notes
		FROM payments
		WHERE client_id = $1
		ORDER BY paid_at DESC
	`

	payments := []Payment{}
	err := r.db.SelectContext(ctx, &payments, query, clientID)
	if err != nil {
		return nil, err
	}

	return payments, nil
}

func (r *repository) ListByRange(ctx context.Context, from, to time.Time) ([]PaymentWithClient, error) {
	query := `
		SELECT
			p.id,
			p.client_id,
			p.membership_id,
			p.amount_cents,
			p.method,
			p.paid_at,
			p.notes,
			c.full_name AS client_name
		FROM payments p
		JOIN clients c ON p.client_id = c.id
		WHERE p.paid_at::date BETWEEN $1::date AND $2::date
		ORDER BY p.paid_at DESC
	`

	payments := []PaymentWithClient{}
	err := r.db.SelectContext(ctx, &payments, query, from, to)
	if err != nil {
		return nil, err
	}

	return payments, nil
}
