package report

import (
	"context"
	"time"
)

type Repository interface {
	Financial(ctx context.Context, start, end time.Time) (*FinancialReport, error)
	Attendance(ctx context.Context, start, end time.Time) (*AttendanceReport, error)
	TrainerLoad(ctx context.Context, start, end time.Time) (*TrainerLoadReport, error)
	ClubLoad(ctx context.Context, start, end time.Time) (*ClubLoadReport, error)
	Dashboard(ctx context.Context, today time.Time) (*Dashboard, error)
}
