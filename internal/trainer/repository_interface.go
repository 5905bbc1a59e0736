package trainer

import "context"

type Repository interface {
	Create(ctx context.Context, fullName string, specialization *string, phone, email string, status Status) (*Trainer, error)
	GetByID(ctx context.Context, id int) (*Trainer, error)
	List(ctx context.Context, activeOnly bool) ([]Trainer, error)
	Update(ctx context.Context, id int, fullName string, specialization *string, phone, email string, status Status) (*Trainer, error)
	Delete(ctx context.Context, id int) error
	EmailExists(ctx context.Context, email string, excludeID int) (bool, error)
	HasAssignedClasses(ctx context.Context, trainerID int) (bool, error)

	CreateScheduleEntry(ctx context.Context, trainerID, weekday int, startTime, endTime string) (*ScheduleEntry, error)
	ListScheduleEntries(ctx context.Context, trainerID int) ([]ScheduleEntry, error)
	DeleteScheduleEntry(ctx context.Context, trainerID, entryID int) error
}
