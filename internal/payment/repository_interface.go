package payment

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, clientID int, membershipID *int, amountCents int64, method Method, notes *string) (*Payment, error)
	ListByClient(ctx context.Context, clientID int) ([]Payment, error)
	ListByRange(ctx context.Context, from, to time.Time) ([]PaymentWithClient, error)
}
