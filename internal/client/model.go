package client

import "time"

type Status string

const (
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusPotential Status = "potential"
)

type Client struct {
	ID        int        `db:"id" json:"id"`
	FullName  string     `db:"full_name" json:"full_name"`
	BirthDate *time.Time `db:"birth_date" json:"birth_date,omitempty"`
	Phone     string     `db:"phone" json:"phone"`
	Email     *string    `db:"email" json:"email,omitempty"`
	Status    Status     `db:"status" json:"status"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}

type CreateClientRequest struct {
	FullName  string  `json:"full_name" binding:"required,max=255"`
	BirthDate *string `json:"birth_date,omitempty"`
	Phone     string  `json:"phone" binding:"required,max=20"`
	Email     *string `json:"email,omitempty" binding:"omitempty,email"`
	Status    string  `json:"status" binding:"omitempty,oneof=active inactive potential"`
}

type UpdateClientRequest struct {
	FullName  string  `json:"full_name" binding:"required,max=255"`
	BirthDate *string `json:"birth_date,omitempty"`
	Phone     string  `json:"phone" binding:"required,max=20"`
	Email     *string `json:"email,omitempty" binding:"omitempty,email"`
	Status    string  `json:"status" binding:"required,oneof=active inactive potential"`
}
