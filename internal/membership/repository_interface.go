package membership

import (
	"context"
	"time"

	"gymdesk/internal/payment"
)

type Repository interface {
	CreateType(ctx context.Context, name string, priceCents int64, category Category, durationDays, visitCount *int, isActive bool) (*MembershipType, error)
	GetTypeByID(ctx context.Context, id int) (*MembershipType, error)
	ListTypes(ctx context.Context, activeOnly bool) ([]MembershipType, error)
	UpdateType(ctx context.Context, id int, name string, priceCents int64, category Category, durationDays, visitCount *int, isActive bool) (*MembershipType, error)
	DeleteType(ctx context.Context, id int) error

	Sell(ctx context.Context, clientID, typeID int, startDate time.Time, amountCents int64, method payment.Method) (*SellResult, error)
	Freeze(ctx context.Context, membershipID int, freezeStart, freezeEnd time.Time, reason *string) (*Freeze, error)

	GetByID(ctx context.Context, id int) (*Membership, error)
	ListAll(ctx context.Context) ([]MembershipWithDetails, error)
	ListByClient(ctx context.Context, clientID int) ([]Membership, error)
	ListFreezes(ctx context.Context, membershipID int) ([]Freeze, error)
}
