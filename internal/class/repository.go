package class

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	ErrClassNotFound        = errors.New("class not found")
	ErrTrainerNotFound      = errors.New("trainer not found")
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrAlreadyRegistered    = errors.New("client is already registered for this class")
	ErrClassFull            = errors.New("class is at capacity")
	ErrNoActiveMembership   = errors.New("client has no active membership")
	ErrNoVisitsLeft         = errors.New("no remaining visits on the membership")
)

const classColumns = `id, title, description, class_type, trainer_id, hall, start_time, end_time, max_participants, created_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(database *sqlx.DB) Repository {
	return &repository{db: database}
}

func (r *repository) Create(ctx context.Context, title string, description *string, classType ClassType, trainerID *int, hall *string, startTime, endTime time.Time, maxParticipants *int) (*FitnessClass, error) {
	query := `
		INSERT INTO fitness_classes (title, description, class_type, trainer_id, hall, start_time, end_time, max_participants)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + classColumns

	var fc FitnessClass
	err := r.db.GetContext(ctx, &fc, query, title, description, classType, trainerID, hall, startTime, endTime, maxParticipants)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return nil, ErrTrainerNotFound
		}
		return nil, err
	}

	return &fc, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*ClassDetails, error) {
	query := `
		SELECT
			fc.id, fc.title, fc.description, fc.class_type, fc.trainer_id, fc.hall,
			fc.start_time, fc.end_time, fc.max_participants, fc.created_at,
			t.full_name AS trainer_name,
			(SELECT COUNT(*) FROM class_registrations cr WHERE cr.class_id = fc.id) AS registered_count
		FROM fitness_classes fc
		LEFT JOIN trainers t ON fc.trainer_id = t.id
		WHERE fc.id = $1
	`

	var cd ClassDetails
	err := r.db.GetContext(ctx, &cd, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}

	return &cd, nil
}

func (r *repository) Update(ctx context.Context, id int, title string, description *string, classType ClassType, trainerID *int, hall *string, startTime, endTime time.Time, maxParticipants *int) (*FitnessClass, error) {
	query := `
		UPDATE fitness_classes
		SET title = $2, description = $3, class_type = $4, trainer_id = $5, hall = $6,
		    start_time = $7, end_time = $8, max_participants = $9
		WHERE id = $1
		RETURNING ` + classColumns

	var fc FitnessClass
	err := r.db.GetContext(ctx, &fc, query, id, title, description, classType, trainerID, hall, startTime, endTime, maxParticipants)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrClassNotFound
		}
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return nil, ErrTrainerNotFound
		}
		return nil, err
	}

	return &fc, nil
}

func (r *repository) Reschedule(ctx context.Context, id int, startTime, endTime time.Time) (*FitnessClass, error) {
	query := `
		UPDATE fitness_classes
		SET start_time = $2, end_time = $3
		WHERE id = $1
		RETURNING ` + classColumns

	var fc FitnessClass
	err := r.db.GetContext(ctx, &fc, query, id, startTime, endTime)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}

	return &fc, nil
}

func (r *repository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM fitness_classes WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrClassNotFound
	}

	return nil
}

// Register runs the eligibility checks and the insert in one transaction.
// The class row is locked first so concurrent registrations for the same
// class serialize and the capacity count stays accurate.
func (r *repository) Register(ctx context.Context, classID, clientID int) (*Registration, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var fc FitnessClass
	err = tx.GetContext(ctx, &fc, `
		SELECT `+classColumns+`
		FROM fitness_classes
		WHERE id = $1
		FOR UPDATE
	`, classID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}

	var hasMembership bool
	err = tx.GetContext(ctx, &hasMembership, `
		SELECT EXISTS (
			SELECT 1 FROM memberships
			WHERE client_id = $1 AND is_active = true
		)
	`, clientID)
	if err != nil {
		return nil, err
	}
	if !hasMembership {
		return nil, ErrNoActiveMembership
	}

	if fc.MaxParticipants != nil {
		var registered int
		err = tx.GetContext(ctx, &registered, `
			SELECT COUNT(*) FROM class_registrations WHERE class_id = $1
		`, classID)
		if err != nil {
			return nil, err
		}
		if registered >= *fc.MaxParticipants {
			return nil, ErrClassFull
		}
	}

	var reg Registration
	err = tx.QueryRowxContext(ctx, `
		INSERT INTO class_registrations (class_id, client_id, attended)
		VALUES ($1, $2, false)
		RETURNING id, class_id, client_id, attended, registered_at, attendance_marked_at
	`, classID, clientID).StructScan(&reg)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrAlreadyRegistered
		}
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &reg, nil
}

func (r *repository) Unregister(ctx context.Context, classID, clientID int) error {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM class_registrations
		WHERE class_id = $1 AND client_id = $2
	`, classID, clientID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrRegistrationNotFound
	}

	return nil
}

// SetAttendance updates the attendance flag and, only on the false to true
// transition, deducts one visit from the client's active visit-based
// membership. The registration and membership rows are locked so the flag
// update and the deduction commit or roll back together.
func (r *repository) SetAttendance(ctx context.Context, registrationID int, attended bool) (*Registration, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var reg Registration
	err = tx.GetContext(ctx, &reg, `
		SELECT id, class_id, client_id, attended, registered_at, attendance_marked_at
		FROM class_registrations
		WHERE id = $1
		FOR UPDATE
	`, registrationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRegistrationNotFound
		}
		return nil, err
	}

	if attended && !reg.Attended {
		var membershipID int
		var remainingVisits *int
		err = tx.QueryRowxContext(ctx, `
			SELECT m.id, m.remaining_visits
			FROM memberships m
			JOIN membership_types mt ON m.membership_type_id = mt.id
			WHERE m.client_id = $1 AND m.is_active = true AND mt.category = 'visit_based'
			ORDER BY m.created_at DESC
			LIMIT 1
			FOR UPDATE OF m
		`, reg.ClientID).Scan(&membershipID, &remainingVisits)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}

		// Time-based memberships deduct nothing.
		if err == nil && remainingVisits != nil {
			if *remainingVisits <= 0 {
				return nil, ErrNoVisitsLeft
			}
			_, err = tx.ExecContext(ctx, `
				UPDATE memberships
				SET remaining_visits = remaining_visits - 1
				WHERE id = $1
			`, membershipID)
			if err != nil {
				return nil, err
			}
		}
	}

	err = tx.QueryRowxContext(ctx, `
		UPDATE class_registrations
		SET attended = $2,
		    attendance_marked_at = CASE WHEN $2 THEN NOW() ELSE NULL END
		WHERE id = $1
		RETURNING id, class_id, client_id, attended, registered_at, attendance_marked_at
	`, registrationID, attended).StructScan(&reg)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &reg, nil
}

func (r *repository) ListCalendar(ctx context.Context, from, to time.Time) ([]CalendarEvent, error) {
	query := `
		SELECT
			fc.id, fc.title, fc.class_type, fc.start_time, fc.end_time,
			t.full_name AS trainer_name, fc.hall, fc.max_participants
		FROM fitness_classes fc
		LEFT JOIN trainers t ON fc.trainer_id = t.id
		WHERE fc.start_time >= $1 AND fc.start_time <= $2
		ORDER BY fc.start_time ASC
	`

	events := []CalendarEvent{}
	err := r.db.SelectContext(ctx, &events, query, from, to)
	if err != nil {
		return nil, err
	}

	return events, nil
}

func (r *repository) ListRegistrations(ctx context.Context, classID int) ([]RegistrationWithClient, error) {
	query := `
		SELECT
			cr.id, cr.class_id, cr.client_id, cr.attended, cr.registered_at, cr.attendance_marked_at,
			c.full_name AS client_name
		FROM class_registrations cr
		JOIN clients c ON cr.client_id = c.id
		WHERE cr.class_id = $1
		ORDER BY cr.registered_at ASC
	`

	registrations := []RegistrationWithClient{}
	err := r.db.SelectContext(ctx, &registrations, query, classID)
	if err != nil {
		return nil, err
	}

	return registrations, nil
}
