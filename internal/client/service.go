package client

import (
	"context"
	"errors"
	"time"
)

var (
	ErrInvalidBirthDate  = errors.New("invalid birth date")
	ErrInvalidStatus     = errors.New("invalid status filter")
	ErrInvalidExpiryDate = errors.New("invalid expiration date filter")
)

type Service interface {
	Create(ctx context.Context, req CreateClientRequest) (*Client, error)
	GetByID(ctx context.Context, id int) (*Client, error)
	List(ctx context.Context, search, status, expiresOn string) ([]Client, error)
	Update(ctx context.Context, id int, req UpdateClientRequest) (*Client, error)
	Delete(ctx context.Context, id int) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func parseBirthDate(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}

	parsed, err := time.Parse("2006-01-02", *raw)
	if err != nil {
		return nil, ErrInvalidBirthDate
	}
	return &parsed, nil
}

func (s *service) Create(ctx context.Context, req CreateClientRequest) (*Client, error) {
	birthDate, err := parseBirthDate(req.BirthDate)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.PhoneExists(ctx, req.Phone, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrPhoneTaken
	}

	status := Status(req.Status)
	if req.Status == "" {
		status = StatusPotential
	}

	return s.repo.Create(ctx, req.FullName, birthDate, req.Phone, req.Email, status)
}

func (s *service) GetByID(ctx context.Context, id int) (*Client, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, search, status, expiresOn string) ([]Client, error) {
	switch Status(status) {
	case "", StatusActive, StatusInactive, StatusPotential:
	default:
		return nil, ErrInvalidStatus
	}

	var expiry *time.Time
	if expiresOn != "" {
		parsed, err := time.Parse("2006-01-02", expiresOn)
		if err != nil {
			return nil, ErrInvalidExpiryDate
		}
		expiry = &parsed
	}

	return s.repo.List(ctx, search, status, expiry)
}

func (s *service) Update(ctx context.Context, id int, req UpdateClientRequest) (*Client, error) {
	birthDate, err := parseBirthDate(req.BirthDate)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.PhoneExists(ctx, req.Phone, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrPhoneTaken
	}

	return s.repo.Update(ctx, id, req.FullName, birthDate, req.Phone, req.Email, Status(req.Status))
}

func (s *service) Delete(ctx context.Context, id int) error {
	hasActive, err := s.repo.HasActiveMembership(ctx, id)
	if err != nil {
		return err
	}
	if hasActive {
		return ErrHasActiveMembership
	}

	return s.repo.Delete(ctx, id)
}
