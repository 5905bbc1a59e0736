package membership

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"gymdesk/internal/payment"
)

var (
	ErrTypeNotFound        = errors.New("membership type not found")
	ErrTypeInUse           = errors.New("membership type is referenced by memberships")
	ErrMembershipNotFound  = errors.New("membership not found or not active")
	ErrClientNotFound      = errors.New("client not found")
	ErrAmountBelowPrice    = errors.New("amount is below the membership type price")
	ErrFreezePeriodInvalid = errors.New("freeze period must be at least one day")
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(database *sqlx.DB) Repository {
	return &repository{db: database}
}

func (r *repository) CreateType(ctx context.Context, name string, priceCents int64, category Category, durationDays, visitCount *int, isActive bool) (*MembershipType, error) {
	query := `
		INSERT INTO membership_types (name, price_cents, category, duration_days, visit_count, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, name, price_cents, category, duration_days, visit_count, is_active, created_at
	`

	var mt MembershipType
	err := r.db.GetContext(ctx, &mt, query, name, priceCents, category, durationDays, visitCount, isActive)
	if err != nil {
		return nil, err
	}

	return &mt, nil
}

func (r *repository) GetTypeByID(ctx context.Context, id int) (*MembershipType, error) {
	query := `
		SELECT id, name, price_cents, category, duration_days, visit_count, is_active, created_at
		FROM membership_types
		WHERE id = $1
	`

	var mt MembershipType
	err := r.db.GetContext(ctx, &mt, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTypeNotFound
		}
		return nil, err
	}

	return &mt, nil
}

func (r *repository) ListTypes(ctx context.Context, activeOnly bool) ([]MembershipType, error) {
	query := `
		SELECT id, name, price_cents, category, duration_days, visit_count, is_active, created_at
		FROM membership_types
	`
	if activeOnly {
		query += ` WHERE is_active = true`
	}
	query += ` ORDER BY name ASC`

	types := []MembershipType{}
	err := r.db.SelectContext(ctx, &types, query)
	if err != nil {
		return nil, err
	}

	return types, nil
}

func (r *repository) UpdateType(ctx context.Context, id int, name string, priceCents int64, category Category, durationDays, visitCount *int, isActive bool) (*MembershipType, error) {
	query := `
		UPDATE membership_types
		SET name = $2, price_cents = $3, category = $4, duration_days = $5, visit_count = $6, is_active = $7
		WHERE id = $1
		RETURNING id, name, price_cents, category, duration_days, visit_count, is_active, created_at
	`

	var mt MembershipType
	err := r.db.GetContext(ctx, &mt, query, id, name, priceCents, category, durationDays, visitCount, isActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTypeNotFound
		}
		return nil, err
	}

	return &mt, nil
}

func (r *repository) DeleteType(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM membership_types WHERE id = $1`, id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return ErrTypeInUse
		}
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrTypeNotFound
	}

	return nil
}

// Sell runs the whole sale as one transaction: price check, deactivation of
// any previously active memberships of the client, the new membership, its
// payment row and the client status flip commit together or not at all.
func (r *repository) Sell(ctx context.Context, clientID, typeID int, startDate time.Time, amountCents int64, method payment.Method) (*SellResult, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var mt MembershipType
	err = tx.GetContext(ctx, &mt, `
		SELECT id, name, price_cents, category, duration_days, visit_count, is_active, created_at
		FROM membership_types
		WHERE id = $1
		FOR SHARE
	`, typeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTypeNotFound
		}
		return nil, err
	}

	if amountCents < mt.PriceCents {
		return nil, ErrAmountBelowPrice
	}

	// Neutralize any active memberships the client already has, however many.
	_, err = tx.ExecContext(ctx, `
		UPDATE memberships
		SET is_active = false
		WHERE client_id = $1 AND is_active = true
	`, clientID)
	if err != nil {
		return nil, err
	}

	var endDate *time.Time
	var remainingVisits *int
	switch {
	case mt.Category == CategoryTimeBased && mt.DurationDays != nil:
		d := startDate.AddDate(0, 0, *mt.DurationDays)
		endDate = &d
	case mt.Category == CategoryVisitBased && mt.VisitCount != nil:
		v := *mt.VisitCount
		remainingVisits = &v
	}
	// A type with neither duration nor visit count yields an open-ended
	// membership with both fields unset.

	var m Membership
	err = tx.QueryRowxContext(ctx, `
		INSERT INTO memberships (client_id, membership_type_id, start_date, end_date, remaining_visits, is_active)
		VALUES ($1, $2, $3, $4, $5, true)
		RETURNING id, client_id, membership_type_id, start_date, end_date, remaining_visits, is_active, created_at
	`, clientID, typeID, startDate, endDate, remainingVisits).StructScan(&m)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return nil, ErrClientNotFound
		}
		return nil, err
	}

	var p payment.Payment
	err = tx.QueryRowxContext(ctx, `
		INSERT INTO payments (client_id, membership_id, amount_cents, method)
		VALUES ($1, $2, $3, $4)
		RETURNING id, client_id, membership_id, amount_cents, method, paid_at, notes
	`, clientID, m.ID, amountCents, method).StructScan(&p)
	if err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE clients
		SET status = 'active'
		WHERE id = $1
	`, clientID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &SellResult{Membership: &m, Payment: &p, Type: &mt}, nil
}

// Freeze stores the freeze window and pushes the membership end date forward
// by the whole-day freeze length. Overlapping freezes are not merged; they
// compound additively.
func (r *repository) Freeze(ctx context.Context, membershipID int, freezeStart, freezeEnd time.Time, reason *string) (*Freeze, error) {
	freezeDays := int(freezeEnd.Sub(freezeStart).Hours() / 24)
	if freezeDays <= 0 {
		return nil, ErrFreezePeriodInvalid
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var m Membership
	err = tx.GetContext(ctx, &m, `
		SELECT id, client_id, membership_type_id, start_date, end_date, remaining_visits, is_active, created_at
		FROM memberships
		WHERE id = $1
		FOR UPDATE
	`, membershipID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMembershipNotFound
		}
		return nil, err
	}

	if !m.IsActive {
		return nil, ErrMembershipNotFound
	}

	var f Freeze
	err = tx.QueryRowxContext(ctx, `
		INSERT INTO membership_freezes (membership_id, start_date, end_date, reason)
		VALUES ($1, $2, $3, $4)
		RETURNING id, membership_id, start_date, end_date, reason, created_at
	`, membershipID, freezeStart, freezeEnd, reason).StructScan(&f)
	if err != nil {
		return nil, err
	}

	if m.EndDate != nil {
		_, err = tx.ExecContext(ctx, `
			UPDATE memberships
			SET end_date = end_date + make_interval(days => $2)
			WHERE id = $1
		`, membershipID, freezeDays)
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &f, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Membership, error) {
	query := `
		SELECT id, client_id, membership_type_id, start_date, end_date, remaining_visits, is_active, created_at
		FROM memberships
		WHERE id = $1
	`

	var m Membership
	err := r.db.GetContext(ctx, &m, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMembershipNotFound
		}
		return nil, err
	}

	return &m, nil
}

func (r *repository) ListAll(ctx context.Context) ([]MembershipWithDetails, error) {
	query := `
		SELECT
			m.id,
			m.client_id,
			m.membership_type_id,
			m.start_date,
			m.end_date,
			m.remaining_visits,
			m.is_active,
			m.created_at,
			c.full_name AS client_name,
			mt.name AS type_name,
			mt.category
		FROM memberships m
		JOIN clients c ON m.client_id = c.id
		JOIN membership_types mt ON m.membership_type_id = mt.id
		ORDER BY m.created_at DESC
	`

	memberships := []MembershipWithDetails{}
	err := r.db.SelectContext(ctx, &memberships, query)
	if err != nil {
		return nil, err
	}

	return memberships, nil
}

func (r *repository) ListByClient(ctx context.Context, clientID int) ([]Membership, error) {
	query := `
		SELECT id, client_id, membership_type_id, start_date, end_date, remaining_visits, is_active, created_at
		FROM memberships
		WHERE client_id = $1
		ORDER BY start_date DESC
	`

	memberships := []Membership{}
	err := r.db.SelectContext(ctx, &memberships, query, clientID)
	if err != nil {
		return nil, err
	}

	return memberships, nil
}

func (r *repository) ListFreezes(ctx context.Context, membershipID int) ([]Freeze, error) {
	query := `
		SELECT id, membership_id, start_date, end_date, reason, created_at
		FROM membership_freezes
		WHERE membership_id = $1
		ORDER BY start_date ASC
	`

	freezes := []Freeze{}
	err := r.db.SelectContext(ctx, &freezes, query, membershipID)
	if err != nil {
		return nil, err
	}

	return freezes, nil
}
