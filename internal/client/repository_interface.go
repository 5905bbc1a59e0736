package client

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, fullName string, birthDate *time.Time, phone string, email *string, status Status) (*Client, error)
	GetByID(ctx context.Context, id int) (*Client, error)
	List(ctx context.Context, search, status string, expiresOn *time.Time) ([]Client, error)
	Update(ctx context.Context, id int, fullName string, birthDate *time.Time, phone string, email *string, status Status) (*Client, error)
	Delete(ctx context.Context, id int) error
	PhoneExists(ctx context.Context, phone string, excludeID int) (bool, error)
	HasActiveMembership(ctx context.Context, clientID int) (bool, error)
}
