package report

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(database *sqlx.DB) Repository {
	return &repository{db: database}
}

func (r *repository) Financial(ctx context.Context, start, end time.Time) (*FinancialReport, error) {
	report := &FinancialReport{
		Period:   Period{StartDate: start, EndDate: end},
		ByMethod: []MethodTotal{},
		ByType:   []TypeTotal{},
	}

	err := r.db.GetContext(ctx, &report.TotalCents, `
		SELECT COALESCE(SUM(amount_cents), 0)
		FROM payments
		WHERE paid_at::date BETWEEN $1::date AND $2::date
	`, start, end)
	if err != nil {
		return nil, err
	}

	err = r.db.SelectContext(ctx, &report.ByMethod, `
		SELECT method, SUM(amount_cents) AS total_cents, COUNT(*) AS count
		FROM payments
		WHERE paid_at::date BETWEEN $1::date AND $2::date
		GROUP BY method
		ORDER BY total_cents DESC
	`, start, end)
	if err != nil {
		return nil, err
	}

	// Payments without a membership link count in the total only.
	err = r.db.SelectContext(ctx, &report.ByType, `
		SELECT mt.name AS type_name, SUM(p.amount_cents) AS total_cents, COUNT(*) AS count
		FROM payments p
		JOIN memberships m ON p.membership_id = m.id
		JOIN membership_types mt ON m.membership_type_id = mt.id
		WHERE p.paid_at::date BETWEEN $1::date AND $2::date
		GROUP BY mt.name
		ORDER BY total_cents DESC
	`, start, end)
	if err != nil {
		return nil, err
	}

	return report, nil
}

func (r *repository) Attendance(ctx context.Context, start, end time.Time) (*AttendanceReport, error) {
	report := &AttendanceReport{
		Period:     Period{StartDate: start, EndDate: end},
		TopClasses: []ClassAttendance{},
	}

	err := r.db.QueryRowxContext(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE cr.attended),
			COUNT(DISTINCT cr.client_id) FILTER (WHERE cr.attended)
		FROM class_registrations cr
		JOIN fitness_classes fc ON cr.class_id = fc.id
		WHERE fc.start_time::date BETWEEN $1::date AND $2::date
	`, start, end).Scan(&report.AttendedCount, &report.DistinctClients)
	if err != nil {
		return nil, err
	}

	err = r.db.GetContext(ctx, &report.TotalClasses, `
		SELECT COUNT(*)
		FROM fitness_classes
		WHERE start_time::date BETWEEN $1::date AND $2::date
	`, start, end)
	if err != nil {
		return nil, err
	}

	err = r.db.SelectContext(ctx, &report.TopClasses, `
		SELECT fc.title, COUNT(*) AS attended_count
		FROM class_registrations cr
		JOIN fitness_classes fc ON cr.class_id = fc.id
		WHERE cr.attended AND fc.start_time::date BETWEEN $1::date AND $2::date
		GROUP BY fc.title
		ORDER BY attended_count DESC, fc.title ASC
		LIMIT 10
	`, start, end)
	if err != nil {
		return nil, err
	}

	return report, nil
}

func (r *repository) TrainerLoad(ctx context.Context, start, end time.Time) (*TrainerLoadReport, error) {
	report := &TrainerLoadReport{
		Period:   Period{StartDate: start, EndDate: end},
		Trainers: []TrainerLoad{},
	}

	err := r.db.SelectContext(ctx, &report.Trainers, `
		SELECT
			t.id AS trainer_id,
			t.full_name AS trainer_name,
			COUNT(fc.id) AS class_count,
			SUM(EXTRACT(EPOCH FROM (fc.end_time - fc.start_time)) / 3600) AS total_hours
		FROM fitness_classes fc
		JOIN trainers t ON fc.trainer_id = t.id
		WHERE fc.start_time::date BETWEEN $1::date AND $2::date
		GROUP BY t.id, t.full_name
		ORDER BY total_hours DESC
	`, start, end)
	if err != nil {
		return nil, err
	}

	return report, nil
}

func (r *repository) ClubLoad(ctx context.Context, start, end time.Time) (*ClubLoadReport, error) {
	report := &ClubLoadReport{
		Period:   Period{StartDate: start, EndDate: end},
		TopDays:  []DayLoad{},
		TopHours: []HourLoad{},
	}

	err := r.db.SelectContext(ctx, &report.TopDays, `
		SELECT to_char(fc.start_time, 'YYYY-MM-DD') AS day, COUNT(*) AS attended_count
		FROM class_registrations cr
		JOIN fitness_classes fc ON cr.class_id = fc.id
		WHERE cr.attended AND fc.start_time::date BETWEEN $1::date AND $2::date
		GROUP BY day
		ORDER BY attended_count DESC, day ASC
		LIMIT 10
	`, start, end)
	if err != nil {
		return nil, err
	}

	err = r.db.SelectContext(ctx, &report.TopHours, `
		SELECT EXTRACT(HOUR FROM fc.start_time)::int AS hour, COUNT(*) AS attended_count
		FROM class_registrations cr
		JOIN fitness_classes fc ON cr.class_id = fc.id
		WHERE cr.attended AND fc.start_time::date BETWEEN $1::date AND $2::date
		GROUP BY hour
		ORDER BY attended_count DESC, hour ASC
		LIMIT 10
	`, start, end)
	if err != nil {
		return nil, err
	}

	return report, nil
}

func (r *repository) Dashboard(ctx context.Context, today time.Time) (*Dashboard, error) {
	dashboard := &Dashboard{
		Date:                today,
		TodayClasses:        []DashboardClass{},
		WorkingTrainers:     []WorkingTrainer{},
		ExpiringMemberships: []ExpiringMembership{},
	}

	err := r.db.SelectContext(ctx, &dashboard.TodayClasses, `
		SELECT
			fc.id,
			fc.title,
			fc.class_type,
			fc.hall,
			fc.start_time,
			fc.end_time,
			t.full_name AS trainer_name
		FROM fitness_classes fc
		LEFT JOIN trainers t ON fc.trainer_id = t.id
		WHERE fc.start_time::date = $1::date
		ORDER BY fc.start_time ASC
	`, today)
	if err != nil {
		return nil, err
	}

	err = r.db.SelectContext(ctx, &dashboard.WorkingTrainers, `
		SELECT t.id, t.full_name, t.specialization, COUNT(fc.id) AS class_count
		FROM trainers t
		JOIN fitness_classes fc ON fc.trainer_id = t.id
		WHERE t.status = 'active' AND fc.start_time::date = $1::date
		GROUP BY t.id, t.full_name, t.specialization
		ORDER BY t.full_name ASC
	`, today)
	if err != nil {
		return nil, err
	}

	err = r.db.SelectContext(ctx, &dashboard.ExpiringMemberships, `
		SELECT
			m.id AS membership_id,
			m.client_id,
			c.full_name AS client_name,
			mt.name AS type_name,
			m.end_date
		FROM memberships m
		JOIN clients c ON m.client_id = c.id
		JOIN membership_types mt ON m.membership_type_id = mt.id
		WHERE m.is_active AND m.end_date BETWEEN $1::date AND $1::date + 3
		ORDER BY m.end_date ASC
	`, today)
	if err != nil {
		return nil, err
	}

	return dashboard, nil
}
