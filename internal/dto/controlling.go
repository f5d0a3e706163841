package dto

// PeriodQuery selects the reporting period for the controlling dashboard.
// Type is "month" or "year"; Month is ignored for year periods.
type PeriodQuery struct {
	Type  string `form:"period_type"`
	Month int    `form:"month"`
	Year  int    `form:"year"`
}

// DashboardStats are the fleet KPI counters. The execution counters count
// execution rows, the completed/plan counters count machines, and overdue
// counts individual schedule instances; the mixed granularity is the
// dashboard's contract.
type DashboardStats struct {
	Pending    int `json:"pending"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
	Plan       int `json:"plan"`
	Overdue    int `json:"overdue"`
}

// MachineCompliance summarizes one machine's obligations in the period.
type MachineCompliance struct {
	Machine              MachineResponse `json:"machine"`
	TotalSchedules       int             `json:"total_schedules"`
	CompletedSchedules   int             `json:"completed_schedules"`
	PendingSchedules     int             `json:"pending_schedules"`
	OverdueSchedules     int             `json:"overdue_schedules"`
	ScheduleDates        []string        `json:"schedule_dates"`
	TotalDayGroups       int             `json:"total_day_groups"`
	CompletedDayGroups   int             `json:"completed_day_groups"`
	CompletionPercentage float64         `json:"completion_percentage"`
}

// DashboardResponse is the controlling index payload.
type DashboardResponse struct {
	PeriodType string              `json:"period_type"`
	Month      int                 `json:"month"`
	Year       int                 `json:"year"`
	Stats      DashboardStats      `json:"stats"`
	Machines   []MachineCompliance `json:"machines"`
}

// BatchExecutionItem records one execution row in the batch form. A set
// ExecutionID updates that row instead of creating a new execution.
type BatchExecutionItem struct {
	ScheduleID    string   `json:"schedule_id" binding:"required,uuid"`
	ExecutionID   *string  `json:"execution_id,omitempty" binding:"omitempty,uuid"`
	Status        string   `json:"status" binding:"required,oneof=pending in_progress completed skipped cancelled"`
	MeasuredValue *float64 `json:"measured_value,omitempty"`
}

// BatchExecutionRequest submits the controlling form for one machine-day.
type BatchExecutionRequest struct {
	MachineID     string               `json:"machine_id" binding:"required,uuid"`
	ScheduledDate string               `json:"scheduled_date" binding:"required"`
	PerformedBy   *string              `json:"performed_by,omitempty" binding:"omitempty,uuid"`
	Executions    []BatchExecutionItem `json:"executions" binding:"required,min=1,dive"`
}

// BatchExecutionResponse reports how many rows were written.
type BatchExecutionResponse struct {
	ExecutionsWritten int `json:"executions_written"`
}

// UpdateExecutionRequest edits one execution; nil means unchanged.
type UpdateExecutionRequest struct {
	Status          *string  `json:"status,omitempty" binding:"omitempty,oneof=pending in_progress completed skipped cancelled"`
	MeasuredValue   *float64 `json:"measured_value,omitempty"`
	ActualStartTime *string  `json:"actual_start_time,omitempty"`
	ActualEndTime   *string  `json:"actual_end_time,omitempty"`
	PerformedBy     *string  `json:"performed_by,omitempty" binding:"omitempty,uuid"`
	Findings        *string  `json:"findings,omitempty"`
	ActionsTaken    *string  `json:"actions_taken,omitempty"`
	Notes           *string  `json:"notes,omitempty"`
	Cost            *float64 `json:"cost,omitempty" binding:"omitempty,min=0"`
}

// ExecutionResponse is the detail shape of one execution.
type ExecutionResponse struct {
	ExecutionID       string   `json:"execution_id"`
	ScheduleID        string   `json:"schedule_id"`
	ScheduledDate     string   `json:"scheduled_date"`
	Status            string   `json:"status"`
	MeasuredValue     *float64 `json:"measured_value,omitempty"`
	MeasurementStatus *string  `json:"measurement_status,omitempty"`
	PerformedBy       *string  `json:"performed_by,omitempty"`
	PerformerName     string   `json:"performer_name,omitempty"`
	Findings          *string  `json:"findings,omitempty"`
	ActionsTaken      *string  `json:"actions_taken,omitempty"`
	Notes             *string  `json:"notes,omitempty"`
	Cost              *float64 `json:"cost,omitempty"`
	CreatedAt         string   `json:"created_at"`
}
