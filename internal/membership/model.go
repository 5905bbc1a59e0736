package membership

import (
	"time"

	"gymdesk/internal/payment"
)

type Category string

const (
	CategoryTimeBased  Category = "time_based"
	CategoryVisitBased Category = "visit_based"
)

type MembershipType struct {
	ID           int       `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	PriceCents   int64     `db:"price_cents" json:"price_cents"`
	Category     Category  `db:"category" json:"category"`
	DurationDays *int      `db:"duration_days" json:"duration_days,omitempty"`
	VisitCount   *int      `db:"visit_count" json:"visit_count,omitempty"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type Membership struct {
	ID               int        `db:"id" json:"id"`
	ClientID         int        `db:"client_id" json:"client_id"`
	MembershipTypeID int        `db:"membership_type_id" json:"membership_type_id"`
	StartDate        time.Time  `db:"start_date" json:"start_date"`
	EndDate          *time.Time `db:"end_date" json:"end_date,omitempty"`
	RemainingVisits  *int       `db:"remaining_visits" json:"remaining_visits,omitempty"`
	IsActive         bool       `db:"is_active" json:"is_active"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
}

type MembershipWithDetails struct {
	Membership
	ClientName string   `db:"client_name" json:"client_name"`
	TypeName   string   `db:"type_name" json:"type_name"`
	Category   Category `db:"category" json:"category"`
}

type Freeze struct {
	ID           int       `db:"id" json:"id"`
	MembershipID int       `db:"membership_id" json:"membership_id"`
	StartDate    time.Time `db:"start_date" json:"start_date"`
	EndDate      time.Time `db:"end_date" json:"end_date"`
	Reason       *string   `db:"reason" json:"reason,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type TypeRequest struct {
	Name         string `json:"name" binding:"required,max=255"`
	PriceCents   int64  `json:"price_cents" binding:"min=0"`
	Category     string `json:"category" binding:"required,oneof=time_based visit_based"`
	DurationDays *int   `json:"duration_days,omitempty" binding:"omitempty,min=1"`
	VisitCount   *int   `json:"visit_count,omitempty" binding:"omitempty,min=1"`
	IsActive     *bool  `json:"is_active,omitempty"`
}

type SellRequest struct {
	ClientID         int    `json:"client_id" binding:"required"`
	MembershipTypeID int    `json:"membership_type_id" binding:"required"`
	StartDate        string `json:"start_date,omitempty"`
	AmountCents      int64  `json:"amount_cents" binding:"required,gt=0"`
	Method           string `json:"method" binding:"required,oneof=cash card sbp"`
}

type FreezeRequest struct {
	StartDate string  `json:"start_date" binding:"required"`
	EndDate   string  `json:"end_date" binding:"required"`
	Reason    *string `json:"reason,omitempty" binding:"omitempty,max=500"`
}

// SellResult is the full outcome of a sale: the new membership, the payment
// row it produced and the terms it was purchased under.
type SellResult struct {
	Membership *Membership      `json:"membership"`
	Payment    *payment.Payment `json:"payment"`
	Type       *MembershipType  `json:"membership_type"`
}
