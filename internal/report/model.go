package report

import "time"

// Period is the inclusive date range a report was computed over.
type Period struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

type MethodTotal struct {
	Method     string `db:"method" json:"method"`
	TotalCents int64  `db:"total_cents" json:"total_cents"`
	Count      int    `db:"count" json:"count"`
}

type TypeTotal struct {
	TypeName   string `db:"type_name" json:"type_name"`
	TotalCents int64  `db:"total_cents" json:"total_cents"`
	Count      int    `db:"count" json:"count"`
}

type FinancialReport struct {
	Period     Period        `json:"period"`
	TotalCents int64         `json:"total_cents"`
	ByMethod   []MethodTotal `json:"by_method"`
	ByType     []TypeTotal   `json:"by_type"`
}

type ClassAttendance struct {
	Title         string `db:"title" json:"title"`
	AttendedCount int    `db:"attended_count" json:"attended_count"`
}

type AttendanceReport struct {
	Period          Period            `json:"period"`
	AttendedCount   int               `json:"attended_count"`
	DistinctClients int               `json:"distinct_clients"`
	TotalClasses    int               `json:"total_classes"`
	TopClasses      []ClassAttendance `json:"top_classes"`
}

type TrainerLoad struct {
	TrainerID   int     `db:"trainer_id" json:"trainer_id"`
	TrainerName string  `db:"trainer_name" json:"trainer_name"`
	ClassCount  int     `db:"class_count" json:"class_count"`
	TotalHours  float64 `db:"total_hours" json:"total_hours"`
}

type TrainerLoadReport struct {
	Period   Period        `json:"period"`
	Trainers []TrainerLoad `json:"trainers"`
}

type DayLoad struct {
	Day           string `db:"day" json:"day"`
	AttendedCount int    `db:"attended_count" json:"attended_count"`
}

type HourLoad struct {
	Hour          int `db:"hour" json:"hour"`
	AttendedCount int `db:"attended_count" json:"attended_count"`
}

type ClubLoadReport struct {
	Period   Period     `json:"period"`
	TopDays  []DayLoad  `json:"top_days"`
	TopHours []HourLoad `json:"top_hours"`
}

type DashboardClass struct {
	ID          int       `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	ClassType   string    `db:"class_type" json:"class_type"`
	Hall        *string   `db:"hall" json:"hall"`
	StartTime   time.Time `db:"start_time" json:"start_time"`
	EndTime     time.Time `db:"end_time" json:"end_time"`
	TrainerName *string   `db:"trainer_name" json:"trainer_name"`
}

type WorkingTrainer struct {
	ID             int     `db:"id" json:"id"`
	FullName       string  `db:"full_name" json:"full_name"`
	Specialization *string `db:"specialization" json:"specialization"`
	ClassCount     int     `db:"class_count" json:"class_count"`
}

type ExpiringMembership struct {
	MembershipID int       `db:"membership_id" json:"membership_id"`
	ClientID     int       `db:"client_id" json:"client_id"`
	ClientName   string    `db:"client_name" json:"client_name"`
	TypeName     string    `db:"type_name" json:"type_name"`
	EndDate      time.Time `db:"end_date" json:"end_date"`
}

// Dashboard is the front-desk summary for a single day.
type Dashboard struct {
	Date                time.Time            `json:"date"`
	TodayClasses        []DashboardClass     `json:"today_classes"`
	WorkingTrainers     []WorkingTrainer     `json:"working_trainers"`
	ExpiringMemberships []ExpiringMembership `json:"expiring_memberships"`
}
