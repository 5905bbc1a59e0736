package class

import (
	"context"
	"errors"
	"time"

	"gymdesk/internal/client"
	"gymdesk/internal/email"
	"gymdesk/internal/metrics"
)

var (
	ErrStartInPast      = errors.New("class start time is in the past")
	ErrInvalidTimeRange = errors.New("class end time must be after start time")
)

type Service interface {
	Create(ctx context.Context, req CreateClassRequest) (*FitnessClass, error)
	GetByID(ctx context.Context, id int) (*ClassDetails, error)
	Update(ctx context.Context, id int, req UpdateClassRequest) (*FitnessClass, error)
	Reschedule(ctx context.Context, id int, req RescheduleRequest) (*FitnessClass, error)
	Delete(ctx context.Context, id int) error

	Register(ctx context.Context, classID int, req RegisterRequest) (*Registration, error)
	Unregister(ctx context.Context, classID, clientID int) error
	SetAttendance(ctx context.Context, registrationID int, req AttendanceRequest) (*Registration, error)

	Calendar(ctx context.Context, from, to time.Time) ([]CalendarEvent, error)
	ListRegistrations(ctx context.Context, classID int) ([]RegistrationWithClient, error)
}

type service struct {
	repo         Repository
	clientRepo   client.Repository
	emailService *email.Service
}

func NewService(repo Repository, clientRepo client.Repository, emailService *email.Service) Service {
	return &service{
		repo:         repo,
		clientRepo:   clientRepo,
		emailService: emailService,
	}
}

func validateWindow(startTime, endTime time.Time, allowPast bool) error {
	if !endTime.After(startTime) {
		return ErrInvalidTimeRange
	}
	if !allowPast && startTime.Before(time.Now()) {
		return ErrStartInPast
	}
	return nil
}

func (s *service) Create(ctx context.Context, req CreateClassRequest) (*FitnessClass, error) {
	if err := validateWindow(req.StartTime, req.EndTime, false); err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, req.Title, req.Description, ClassType(req.ClassType), req.TrainerID, req.Hall, req.StartTime, req.EndTime, req.MaxParticipants)
}

func (s *service) GetByID(ctx context.Context, id int) (*ClassDetails, error) {
	return s.repo.GetByID(ctx, id)
}

// Update allows edits to classes that already started so attendance can be
// corrected after the fact, but still rejects inverted time windows.
func (s *service) Update(ctx context.Context, id int, req UpdateClassRequest) (*FitnessClass, error) {
	if err := validateWindow(req.StartTime, req.EndTime, true); err != nil {
		return nil, err
	}

	return s.repo.Update(ctx, id, req.Title, req.Description, ClassType(req.ClassType), req.TrainerID, req.Hall, req.StartTime, req.EndTime, req.MaxParticipants)
}

func (s *service) Reschedule(ctx context.Context, id int, req RescheduleRequest) (*FitnessClass, error) {
	if err := validateWindow(req.StartTime, req.EndTime, false); err != nil {
		return nil, err
	}

	return s.repo.Reschedule(ctx, id, req.StartTime, req.EndTime)
}

func (s *service) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) Register(ctx context.Context, classID int, req RegisterRequest) (*Registration, error) {
	reg, err := s.repo.Register(ctx, classID, req.ClientID)
	if err != nil {
		return nil, err
	}

	details, detailsErr := s.repo.GetByID(ctx, classID)
	if detailsErr == nil {
		metrics.RecordClassRegistration(string(details.ClassType))
	}

	// Confirmation email is best effort; the registration already committed.
	if s.emailService != nil && detailsErr == nil {
		attendee, _ := s.clientRepo.GetByID(ctx, req.ClientID)
		if attendee != nil && attendee.Email != nil {
			s.emailService.SendRegistrationConfirmation(ctx, *attendee.Email, attendee.FullName, details.Title, details.StartTime)
		}
	}

	return reg, nil
}

func (s *service) Unregister(ctx context.Context, classID, clientID int) error {
	return s.repo.Unregister(ctx, classID, clientID)
}

func (s *service) SetAttendance(ctx context.Context, registrationID int, req AttendanceRequest) (*Registration, error) {
	reg, err := s.repo.SetAttendance(ctx, registrationID, *req.Attended)
	if err != nil {
		return nil, err
	}

	metrics.RecordAttendanceMark(reg.Attended)

	return reg, nil
}

func (s *service) Calendar(ctx context.Context, from, to time.Time) ([]CalendarEvent, error) {
	return s.repo.ListCalendar(ctx, from, to)
}

func (s *service) ListRegistrations(ctx context.Context, classID int) ([]RegistrationWithClient, error) {
	return s.repo.ListRegistrations(ctx, classID)
}
