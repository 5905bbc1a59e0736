package payment

import "time"

type Method string

const (
	MethodCash Method = "cash"
	MethodCard Method = "card"
	MethodSBP  Method = "sbp"
)

type Payment struct {
	ID           int       `db:"id" json:"id"`
	ClientID     int       `db:"client_id" json:"client_id"`
	MembershipID *int      `db:"membership_id" json:"membership_id,omitempty"`
	AmountCents  int64     `db:"amount_cents" json:"amount_cents"`
	Method       Method    `db:"method" json:"method"`
	PaidAt       time.Time `db:"paid_at" json:"paid_at"`
	Notes        *string   `db:"notes" json:"notes,omitempty"`
}

type PaymentWithClient struct {
	Payment
	ClientName string `db:"client_name" json:"client_name"`
}

type RecordPaymentRequest struct {
	ClientID     int     `json:"client_id" binding:"required"`
	MembershipID *int    `json:"membership_id,omitempty"`
	AmountCents  int64   `json:"amount_cents" binding:"required,gt=0"`
	Method       string  `json:"method" binding:"required,oneof=cash card sbp"`
	Notes        *string `json:"notes,omitempty" binding:"omitempty,max=500"`
}
