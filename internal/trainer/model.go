package trainer

import "time"

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

type Trainer struct {
	ID             int       `db:"id" json:"id"`
	FullName       string    `db:"full_name" json:"full_name"`
	Specialization *string   `db:"specialization" json:"specialization,omitempty"`
	Phone          string    `db:"phone" json:"phone"`
	Email          string    `db:"email" json:"email"`
	Status         Status    `db:"status" json:"status"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// ScheduleEntry is a weekly working window. Weekday follows time.Weekday
// numbering (0 = Sunday).
type ScheduleEntry struct {
	ID        int    `db:"id" json:"id"`
	TrainerID int    `db:"trainer_id" json:"trainer_id"`
	Weekday   int    `db:"weekday" json:"weekday"`
	StartTime string `db:"start_time" json:"start_time"`
	EndTime   string `db:"end_time" json:"end_time"`
}

type TrainerRequest struct {
	FullName       string  `json:"full_name" binding:"required,max=255"`
	Specialization *string `json:"specialization,omitempty" binding:"omitempty,max=500"`
	Phone          string  `json:"phone" binding:"required,max=20"`
	Email          string  `json:"email" binding:"required,email"`
	Status         string  `json:"status" binding:"omitempty,oneof=active inactive"`
}

type ScheduleEntryRequest struct {
	Weekday   int    `json:"weekday" binding:"min=0,max=6"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}
