package class

import "time"

type ClassType string

const (
	TypeGroup    ClassType = "group"
	TypePersonal ClassType = "personal"
)

type FitnessClass struct {
	ID              int       `db:"id" json:"id"`
	Title           string    `db:"title" json:"title"`
	Description     *string   `db:"description" json:"description,omitempty"`
	ClassType       ClassType `db:"class_type" json:"class_type"`
	TrainerID       *int      `db:"trainer_id" json:"trainer_id,omitempty"`
	Hall            *string   `db:"hall" json:"hall,omitempty"`
	StartTime       time.Time `db:"start_time" json:"start_time"`
	EndTime         time.Time `db:"end_time" json:"end_time"`
	MaxParticipants *int      `db:"max_participants" json:"max_participants,omitempty"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

// ClassDetails is a class row joined with its trainer name and the current
// registration count.
type ClassDetails struct {
	FitnessClass
	TrainerName     *string `db:"trainer_name" json:"trainer_name,omitempty"`
	RegisteredCount int     `db:"registered_count" json:"registered_count"`
}

type Registration struct {
	ID                 int        `db:"id" json:"id"`
	ClassID            int        `db:"class_id" json:"class_id"`
	ClientID           int        `db:"client_id" json:"client_id"`
	Attended           bool       `db:"attended" json:"attended"`
	RegisteredAt       time.Time  `db:"registered_at" json:"registered_at"`
	AttendanceMarkedAt *time.Time `db:"attendance_marked_at" json:"attendance_marked_at,omitempty"`
}

type RegistrationWithClient struct {
	Registration
	ClientName string `db:"client_name" json:"client_name"`
}

// CalendarEvent is the shape the schedule view consumes.
type CalendarEvent struct {
	ID              int       `db:"id" json:"id"`
	Title           string    `db:"title" json:"title"`
	ClassType       ClassType `db:"class_type" json:"class_type"`
	StartTime       time.Time `db:"start_time" json:"start"`
	EndTime         time.Time `db:"end_time" json:"end"`
	TrainerName     *string   `db:"trainer_name" json:"trainer_name,omitempty"`
	Hall            *string   `db:"hall" json:"hall,omitempty"`
	MaxParticipants *int      `db:"max_participants" json:"max_participants,omitempty"`
}

type CreateClassRequest struct {
	Title           string    `json:"title" binding:"required,max=255"`
	Description     *string   `json:"description,omitempty" binding:"omitempty,max=2000"`
	ClassType       string    `json:"class_type" binding:"required,oneof=group personal"`
	TrainerID       *int      `json:"trainer_id,omitempty"`
	Hall            *string   `json:"hall,omitempty" binding:"omitempty,max=255"`
	StartTime       time.Time `json:"start_time" binding:"required"`
	EndTime         time.Time `json:"end_time" binding:"required"`
	MaxParticipants *int      `json:"max_participants,omitempty" binding:"omitempty,min=1"`
}

type UpdateClassRequest struct {
	Title           string    `json:"title" binding:"required,max=255"`
	Description     *string   `json:"description,omitempty" binding:"omitempty,max=2000"`
	ClassType       string    `json:"class_type" binding:"required,oneof=group personal"`
	TrainerID       *int      `json:"trainer_id,omitempty"`
	Hall            *string   `json:"hall,omitempty" binding:"omitempty,max=255"`
	StartTime       time.Time `json:"start_time" binding:"required"`
	EndTime         time.Time `json:"end_time" binding:"required"`
	MaxParticipants *int      `json:"max_participants,omitempty" binding:"omitempty,min=1"`
}

type RescheduleRequest struct {
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
}

type RegisterRequest struct {
	ClientID int `json:"client_id" binding:"required"`
}

type AttendanceRequest struct {
	Attended *bool `json:"attended" binding:"required"`
}
