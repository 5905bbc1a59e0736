package trainer

import (
	"context"
	"errors"
	"time"
)

var ErrInvalidTimeWindow = errors.New("invalid schedule time window")

type Service interface {
	Create(ctx context.Context, req TrainerRequest) (*Trainer, error)
	GetByID(ctx context.Context, id int) (*Trainer, error)
	List(ctx context.Context, activeOnly bool) ([]Trainer, error)
	Update(ctx context.Context, id int, req TrainerRequest) (*Trainer, error)
	Delete(ctx context.Context, id int) error

	AddScheduleEntry(ctx context.Context, trainerID int, req ScheduleEntryRequest) (*ScheduleEntry, error)
	GetSchedule(ctx context.Context, trainerID int) ([]ScheduleEntry, error)
	RemoveScheduleEntry(ctx context.Context, trainerID, entryID int) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req TrainerRequest) (*Trainer, error) {
	exists, err := s.repo.EmailExists(ctx, req.Email, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	status := Status(req.Status)
	if req.Status == "" {
		status = StatusActive
	}

	return s.repo.Create(ctx, req.FullName, req.Specialization, req.Phone, req.Email, status)
}

func (s *service) GetByID(ctx context.Context, id int) (*Trainer, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, activeOnly bool) ([]Trainer, error) {
	return s.repo.List(ctx, activeOnly)
}

func (s *service) Update(ctx context.Context, id int, req TrainerRequest) (*Trainer, error) {
	exists, err := s.repo.EmailExists(ctx, req.Email, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	status := Status(req.Status)
	if req.Status == "" {
		status = StatusActive
	}

	return s.repo.Update(ctx, id, req.FullName, req.Specialization, req.Phone, req.Email, status)
}

func (s *service) Delete(ctx context.Context, id int) error {
	hasClasses, err := s.repo.HasAssignedClasses(ctx, id)
	if err != nil {
		return err
	}
	if hasClasses {
		return ErrHasAssignedClasses
	}

	return s.repo.Delete(ctx, id)
}

func (s *service) AddScheduleEntry(ctx context.Context, trainerID int, req ScheduleEntryRequest) (*ScheduleEntry, error) {
	if _, err := s.repo.GetByID(ctx, trainerID); err != nil {
		return nil, err
	}

	start, err := time.Parse("15:04", req.StartTime)
	if err != nil {
		return nil, ErrInvalidTimeWindow
	}
	end, err := time.Parse("15:04", req.EndTime)
	if err != nil {
		return nil, ErrInvalidTimeWindow
	}
	if !end.After(start) {
		return nil, ErrInvalidTimeWindow
	}

	return s.repo.CreateScheduleEntry(ctx, trainerID, req.Weekday, req.StartTime, req.EndTime)
}

func (s *service) GetSchedule(ctx context.Context, trainerID int) ([]ScheduleEntry, error) {
	if _, err := s.repo.GetByID(ctx, trainerID); err != nil {
		return nil, err
	}

	return s.repo.ListScheduleEntries(ctx, trainerID)
}

func (s *service) RemoveScheduleEntry(ctx context.Context, trainerID, entryID int) error {
	return s.repo.DeleteScheduleEntry(ctx, trainerID, entryID)
}
