package trainer

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"gymdesk/internal/db"
)

var (
	ErrTrainerNotFound    = errors.New("trainer not found")
	ErrEmailTaken         = errors.New("trainer with this email already exists")
	ErrHasAssignedClasses = errors.New("trainer has assigned classes")
	ErrEntryNotFound      = errors.New("schedule entry not found")
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

func (r *repository) Create(ctx context.Context, fullName string, specialization *string, phone, email string, status Status) (*Trainer, error) {
	query := `
		INSERT INTO trainers (full_name, specialization, phone, email, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, full_name, specialization, phone, email, status, created_at
	`

	var trainer Trainer
	err := r.db.GetContext(ctx, &trainer, query, fullName, specialization, phone, email, status)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return &trainer, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Trainer, error) {
	query := `
		SELECT id, full_name, specialization, phone, email, status, created_at
		FROM trainers
		WHERE id = $1
	`

	var trainer Trainer
	err := r.db.GetContext(ctx, &trainer, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTrainerNotFound
		}
		return nil, err
	}

	return &trainer, nil
}

func (r *repository) List(ctx context.Context, activeOnly bool) ([]Trainer, error) {
	query := `
		SELECT id, full_name, specialization, phone, email, status, created_at
		FROM trainers
	`
	if activeOnly {
		query += ` WHERE status = 'active'`
	}
	query += ` ORDER BY full_name ASC`

	trainers := []Trainer{}
	err := r.db.SelectContext(ctx, &trainers, query)
	if err != nil {
		return nil, err
	}

	return trainers, nil
}

func (r *repository) Update(ctx context.Context, id int, fullName string, specialization *string, phone, email string, status Status) (*Trainer, error) {
	query := `
		UPDATE trainers
		SET full_name = $2, specialization = $3, phone = $4, email = $5, status = $6
		WHERE id = $1
		RETURNING id, full_name, specialization, phone, email, status, created_at
	`

	var trainer Trainer
	err := r.db.GetContext(ctx, &trainer, query, id, fullName, specialization, phone, email, status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTrainerNotFound
		}
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return &trainer, nil
}

func (r *repository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM trainers WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrTrainerNotFound
	}

	return nil
}

func (r *repository) EmailExists(ctx context.Context, email string, excludeID int) (bool, error) {
	return db.Exists(ctx, r.db, `
		SELECT EXISTS(
			SELECT 1 FROM trainers
			WHERE email = $1 AND id <> $2
		)
	`, email, excludeID)
}

func (r *repository) HasAssignedClasses(ctx context.Context, trainerID int) (bool, error) {
	return db.Exists(ctx, r.db, `
		SELECT EXISTS(
			SELECT 1 FROM fitness_classes
			WHERE trainer_id = $1
		)
	`, trainerID)
}

func (r *repository) CreateScheduleEntry(ctx context.Context, trainerID, weekday int, startTime, endTime string) (*ScheduleEntry, error) {
	query := `
		INSERT INTO trainer_schedules (trainer_id, weekday, start_time, end_time)
		VALUES ($1, $2, $3, $4)
		RETURNING id, trainer_id, weekday, start_time, end_time
	`

	var entry ScheduleEntry
	err := r.db.GetContext(ctx, &entry, query, trainerID, weekday, startTime, endTime)
	if err != nil {
		return nil, err
	}

	return &entry, nil
}

func (r *repository) ListScheduleEntries(ctx context.Context, trainerID int) ([]ScheduleEntry, error) {
	query := `
		SELECT id, trainer_id, weekday, start_time, end_time
		FROM trainer_schedules
		WHERE trainer_id = $1
		ORDER BY weekday ASC, start_time ASC
	`

	entries := []ScheduleEntry{}
	err := r.db.SelectContext(ctx, &entries, query, trainerID)
	if err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *repository) DeleteScheduleEntry(ctx context.Context, trainerID, entryID int) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM trainer_schedules WHERE id = $1 AND trainer_id = $2`,
		entryID, trainerID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrEntryNotFound
	}

	return nil
}
