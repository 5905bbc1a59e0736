package membership

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gymdesk/internal/client"
	"gymdesk/internal/email"
	"gymdesk/internal/metrics"
	"gymdesk/internal/payment"
)

var (
	ErrInvalidStartDate   = errors.New("invalid start date")
	ErrInvalidFreezeDates = errors.New("invalid freeze dates")
)

type Service interface {
	CreateType(ctx context.Context, req TypeRequest) (*MembershipType, error)
	GetType(ctx context.Context, id int) (*MembershipType, error)
	ListTypes(ctx context.Context, activeOnly bool) ([]MembershipType, error)
	UpdateType(ctx context.Context, id int, req TypeRequest) (*MembershipType, error)
	DeleteType(ctx context.Context, id int) error

	Sell(ctx context.Context, req SellRequest) (*SellResult, error)
	FreezeMembership(ctx context.Context, membershipID int, req FreezeRequest) (*Freeze, error)

	ListAll(ctx context.Context) ([]MembershipWithDetails, error)
	ListByClient(ctx context.Context, clientID int) ([]Membership, error)
	ListFreezes(ctx context.Context, membershipID int) ([]Freeze, error)
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

func (s *service) CreateType(ctx context.Context, req TypeRequest) (*MembershipType, error) {
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	return s.repo.CreateType(ctx, req.Name, req.PriceCents, Category(req.Category), req.DurationDays, req.VisitCount, isActive)
}

func (s *service) GetType(ctx context.Context, id int) (*MembershipType, error) {
	return s.repo.GetTypeByID(ctx, id)
}

func (s *service) ListTypes(ctx context.Context, activeOnly bool) ([]MembershipType, error) {
	return s.repo.ListTypes(ctx, activeOnly)
}

func (s *service) UpdateType(ctx context.Context, id int, req TypeRequest) (*MembershipType, error) {
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	return s.repo.UpdateType(ctx, id, req.Name, req.PriceCents, Category(req.Category), req.DurationDays, req.VisitCount, isActive)
}

func (s *service) DeleteType(ctx context.Context, id int) error {
	return s.repo.DeleteType(ctx, id)
}

func (s *service) Sell(ctx context.Context, req SellRequest) (*SellResult, error) {
	startDate := time.Now().Truncate(24 * time.Hour)
	if req.StartDate != "" {
		parsed, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			return nil, ErrInvalidStartDate
		}
		startDate = parsed
	}

	result, err := s.repo.Sell(ctx, req.ClientID, req.MembershipTypeID, startDate, req.AmountCents, payment.Method(req.Method))
	if err != nil {
		return nil, err
	}

	metrics.RecordMembershipSale(string(result.Type.Category), req.Method)

	// Receipt email is best effort; the sale already committed.
	if s.emailService != nil {
		buyer, _ := s.clientRepo.GetByID(ctx, req.ClientID)
		if buyer != nil && buyer.Email != nil {
			s.emailService.SendMembershipReceipt(
				ctx,
				*buyer.Email,
				buyer.FullName,
				result.Type.Name,
				req.AmountCents,
				entitlementLine(result.Membership),
			)
		}
	}

	return result, nil
}

func entitlementLine(m *Membership) string {
	switch {
	case m.EndDate != nil:
		return "Valid until: " + m.EndDate.Format("Jan 2, 2006")
	case m.RemainingVisits != nil:
		return fmt.Sprintf("Visits included: %d", *m.RemainingVisits)
	default:
		return "Open-ended membership"
	}
}

func (s *service) FreezeMembership(ctx context.Context, membershipID int, req FreezeRequest) (*Freeze, error) {
	freezeStart, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, ErrInvalidFreezeDates
	}

	freezeEnd, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return nil, ErrInvalidFreezeDates
	}

	frozen, err := s.repo.Freeze(ctx, membershipID, freezeStart, freezeEnd, req.Reason)
	if err != nil {
		return nil, err
	}

	metrics.RecordFreeze()

	if s.emailService != nil {
		if m, err := s.repo.GetByID(ctx, membershipID); err == nil {
			owner, _ := s.clientRepo.GetByID(ctx, m.ClientID)
			if owner != nil && owner.Email != nil {
				s.emailService.SendFreezeConfirmation(ctx, *owner.Email, owner.FullName, freezeStart, freezeEnd)
			}
		}
	}

	return frozen, nil
}

func (s *service) ListAll(ctx context.Context) ([]MembershipWithDetails, error) {
	return s.repo.ListAll(ctx)
}

func (s *service) ListByClient(ctx context.Context, clientID int) ([]Membership, error) {
	return s.repo.ListByClient(ctx, clientID)
}

func (s *service) ListFreezes(ctx context.Context, membershipID int) ([]Freeze, error) {
	return s.repo.ListFreezes(ctx, membershipID)
}
