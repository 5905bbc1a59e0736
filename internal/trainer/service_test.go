package trainer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTrainerRepo struct{ mock.Mock }

func (m *MockTrainerRepo) Create(ctx context.Context, fullName string, specialization *string, phone, email string, status Status) (*Trainer, error) {
	args := m.Called(ctx, fullName, specialization, phone, email, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Trainer), args.Error(1)
}

func (m *MockTrainerRepo) GetByID(ctx context.Context, id int) (*Trainer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Trainer), args.Error(1)
}

func (m *MockTrainerRepo) List(ctx context.Context, activeOnly bool) ([]Trainer, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Trainer), args.Error(1)
}

func (m *MockTrainerRepo) Update(ctx context.Context, id int, fullName string, specialization *string, phone, email string, status Status) (*Trainer, error) {
	args := m.Called(ctx, id, fullName, specialization, phone, email, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Trainer), args.Error(1)
}

func (m *MockTrainerRepo) Delete(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockTrainerRepo) EmailExists(ctx context.Context, email string, excludeID int) (bool, error) {
	args := m.Called(ctx, email, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTrainerRepo) HasAssignedClasses(ctx context.Context, trainerID int) (bool, error) {
	args := m.Called(ctx, trainerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTrainerRepo) CreateScheduleEntry(ctx context.Context, trainerID, weekday int, startTime, endTime string) (*ScheduleEntry, error) {
	args := m.Called(ctx, trainerID, weekday, startTime, endTime)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ScheduleEntry), args.Error(1)
}

func (m *MockTrainerRepo) ListScheduleEntries(ctx context.Context, trainerID int) ([]ScheduleEntry, error) {
	args := m.Called(ctx, trainerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ScheduleEntry), args.Error(1)
}

func (m *MockTrainerRepo) DeleteScheduleEntry(ctx context.Context, trainerID, entryID int) error {
	return m.Called(ctx, trainerID, entryID).Error(0)
}

func TestCreateTrainer_EmailTaken(t *testing.T) {
	repo := new(MockTrainerRepo)
	svc := NewService(repo)

	repo.On("EmailExists", mock.Anything, "coach@club.com", 0).Return(true, nil)

	_, err := svc.Create(context.Background(), TrainerRequest{
		FullName: "Ivan",
		Phone:    "+79001112233",
		Email:    "coach@club.com",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
	repo.AssertNotCalled(t, "Create")
}

func TestCreateTrainer_DefaultsToActive(t *testing.T) {
	repo := new(MockTrainerRepo)
	svc := NewService(repo)

	repo.On("EmailExists", mock.Anything, "coach@club.com", 0).Return(false, nil)
	repo.On("Create", mock.Anything, "Ivan", (*string)(nil), "+79001112233", "coach@club.com", StatusActive).
		Return(&Trainer{ID: 2, FullName: "Ivan", Status: StatusActive}, nil)

	created, err := svc.Create(context.Background(), TrainerRequest{
		FullName: "Ivan",
		Phone:    "+79001112233",
		Email:    "coach@club.com",
	})
	require.NoError(t, err)
	assert.Equal(t, StatusActive, created.Status)
	repo.AssertExpectations(t)
}

func TestDeleteTrainer_WithAssignedClasses(t *testing.T) {
	repo := new(MockTrainerRepo)
	svc := NewService(repo)

	repo.On("HasAssignedClasses", mock.Anything, 2).Return(true, nil)

	err := svc.Delete(context.Background(), 2)
	assert.ErrorIs(t, err, ErrHasAssignedClasses)
	repo.AssertNotCalled(t, "Delete")
}

func TestAddScheduleEntry_Valid(t *testing.T) {
	repo := new(MockTrainerRepo)
	svc := NewService(repo)

	repo.On("GetByID", mock.Anything, 2).Return(&Trainer{ID: 2}, nil)
	repo.On("CreateScheduleEntry", mock.Anything, 2, 1, "09:00", "13:00").
		Return(&ScheduleEntry{ID: 1, TrainerID: 2, Weekday: 1, StartTime: "09:00", EndTime: "13:00"}, nil)

	entry, err := svc.AddScheduleEntry(context.Background(), 2, ScheduleEntryRequest{
		Weekday:   1,
		StartTime: "09:00",
		EndTime:   "13:00",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, entry.Weekday)
	repo.AssertExpectations(t)
}

func TestAddScheduleEntry_InvalidWindows(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
	}{
		{"End before start", "13:00", "09:00"},
		{"Equal times", "09:00", "09:00"},
		{"Bad start format", "9am", "13:00"},
		{"Bad end format", "09:00", "later"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockTrainerRepo)
			svc := NewService(repo)

			repo.On("GetByID", mock.Anything, 2).Return(&Trainer{ID: 2}, nil)

			_, err := svc.AddScheduleEntry(context.Background(), 2, ScheduleEntryRequest{
				Weekday:   1,
				StartTime: tt.start,
				EndTime:   tt.end,
			})
			assert.ErrorIs(t, err, ErrInvalidTimeWindow)
			repo.AssertNotCalled(t, "CreateScheduleEntry")
		})
	}
}

func TestAddScheduleEntry_TrainerMissing(t *testing.T) {
	repo := new(MockTrainerRepo)
	svc := NewService(repo)

	repo.On("GetByID", mock.Anything, 99).Return(nil, ErrTrainerNotFound)

	_, err := svc.AddScheduleEntry(context.Background(), 99, ScheduleEntryRequest{
		Weekday:   1,
		StartTime: "09:00",
		EndTime:   "13:00",
	})
	assert.ErrorIs(t, err, ErrTrainerNotFound)
}
