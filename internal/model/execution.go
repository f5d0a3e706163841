package model

import "time"

// Execution statuses.
const (
	ExecutionPending    = "pending"
	ExecutionInProgress = "in_progress"
	ExecutionCompleted  = "completed"
	ExecutionSkipped    = "skipped"
	ExecutionCancelled  = "cancelled"
)

// MaintenanceExecution records one attempt (or plan) to perform a
// schedule's work. A schedule may accumulate several executions; only the
// most recently created one is authoritative for the schedule's state.
type MaintenanceExecution struct {
	ExecutionID       string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"execution_id"`
	ScheduleID        string     `gorm:"type:uuid;not null;index:idx_executions_schedule" json:"schedule_id"`
	ScheduledDate     time.Time  `gorm:"type:date;not null"                             json:"scheduled_date"`
	Status            string     `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"`
	MeasuredValue     *float64   `gorm:"type:numeric(12,3)"                             json:"measured_value,omitempty"`
	MeasurementStatus *string    `gorm:"type:varchar(20)"                               json:"measurement_status,omitempty"`
	PerformedBy       *string    `gorm:"type:uuid"                                      json:"performed_by,omitempty"`
	ActualStartTime   *time.Time `json:"actual_start_time,omitempty"`
	ActualEndTime     *time.Time `json:"actual_end_time,omitempty"`
	Findings          *string    `gorm:"type:text"                                      json:"findings,omitempty"`
	ActionsTaken      *string    `gorm:"type:text"                                      json:"actions_taken,omitempty"`
	Notes             *string    `gorm:"type:text"                                      json:"notes,omitempty"`
	Cost              *float64   `gorm:"type:numeric(14,2)"                             json:"cost,omitempty"`
	BaseModel

	Schedule  *MaintenanceSchedule `gorm:"foreignKey:ScheduleID;references:ScheduleID" json:"schedule,omitempty"`
	Performer *User                `gorm:"foreignKey:PerformedBy;references:UserID"    json:"performer,omitempty"`
}

func (MaintenanceExecution) TableName() string { return "maintenance_executions" }
