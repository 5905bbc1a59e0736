package class

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, title string, description *string, classType ClassType, trainerID *int, hall *string, startTime, endTime time.Time, maxParticipants *int) (*FitnessClass, error)
	GetByID(ctx context.Context, id int) (*ClassDetails, error)
	Update(ctx context.Context, id int, title string, description *string, classType ClassType, trainerID *int, hall *string, startTime, endTime time.Time, maxParticipants *int) (*FitnessClass, error)
	Reschedule(ctx context.Context, id int, startTime, endTime time.Time) (*FitnessClass, error)
	Delete(ctx context.Context, id int) error

	Register(ctx context.Context, classID, clientID int) (*Registration, error)
	Unregister(ctx context.Context, classID, clientID int) error
	SetAttendance(ctx context.Context, registrationID int, attended bool) (*Registration, error)

	ListCalendar(ctx context.Context, from, to time.Time) ([]CalendarEvent, error)
	ListRegistrations(ctx context.Context, classID int) ([]RegistrationWithClient, error)
}
