package model

import "time"

// Schedule statuses.
const (
	ScheduleActive    = "active"
	ScheduleInactive  = "inactive"
	ScheduleCompleted = "completed"
	ScheduleCancelled = "cancelled"
)

// MaintenanceSchedule is one dated maintenance obligation for a machine,
// produced in a batch by schedule generation. Title, description and
// frequency are copied from the maintenance point at creation time and
// never re-derived. Many rows may share (machine, start date); that pair
// is the unit the day-group rollup re-aggregates.
type MaintenanceSchedule struct {
	ScheduleID         string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"schedule_id"`
	MachineID          string     `gorm:"type:uuid;not null;index:idx_schedules_machine_date" json:"machine_id"`
	MaintenancePointID string     `gorm:"type:uuid;not null"                             json:"maintenance_point_id"`
	StandardID         string     `gorm:"type:uuid;not null"                             json:"standard_id"`
	Title              string     `gorm:"type:varchar(100);not null"                     json:"title"`
	Description        string     `gorm:"type:text"                                      json:"description"`
	Category           string     `gorm:"type:varchar(20);not null"                      json:"category"`
	FrequencyType      string     `gorm:"type:varchar(20);not null"                      json:"frequency_type"`
	FrequencyValue     int        `gorm:"not null"                                       json:"frequency_value"`
	StartDate          time.Time  `gorm:"type:date;not null;index:idx_schedules_machine_date" json:"start_date"`
	EndDate            time.Time  `gorm:"type:date;not null"                             json:"end_date"`
	PreferredTime      *string    `gorm:"type:varchar(5)"                                json:"preferred_time,omitempty"`
	EstimatedDuration  *int       `json:"estimated_duration,omitempty"`
	Status             string     `gorm:"type:varchar(20);not null;default:'active'"     json:"status"`
	AssignedTo         *string    `gorm:"type:uuid"                                      json:"assigned_to,omitempty"`
	Notes              *string    `gorm:"type:text"                                      json:"notes,omitempty"`
	Version            int        `gorm:"not null;default:1"                             json:"version"`
	BaseModel

	Machine          *Machine               `gorm:"foreignKey:MachineID;references:MachineID"                            json:"machine,omitempty"`
	MaintenancePoint *MaintenancePoint      `gorm:"foreignKey:MaintenancePointID;references:MaintenancePointID"         json:"maintenance_point,omitempty"`
	Standard         *Standard              `gorm:"foreignKey:StandardID;references:StandardID"                          json:"standard,omitempty"`
	AssignedUser     *User                  `gorm:"foreignKey:AssignedTo;references:UserID"                              json:"assigned_user,omitempty"`
	Executions       []MaintenanceExecution `gorm:"foreignKey:ScheduleID;references:ScheduleID"                          json:"executions,omitempty"`
}

func (MaintenanceSchedule) TableName() string { return "maintenance_schedules" }
