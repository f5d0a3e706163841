package dto

// GenerateScheduleRequest asks for a schedule batch to be generated for a
// machine. StartDate and EndDate use YYYY-MM-DD; EndDate empty means the
// default horizon (December 31 of the start year).
type GenerateScheduleRequest struct {
	MachineID         string  `json:"machine_id" binding:"required,uuid"`
	Category          string  `json:"category" binding:"required,oneof=autonomous preventive predictive"`
	StandardID        string  `json:"standard_id" binding:"required,uuid"`
	StartDate         string  `json:"start_date" binding:"required"`
	EndDate           string  `json:"end_date"`
	PreferredTime     *string `json:"preferred_time,omitempty"`
	EstimatedDuration *int    `json:"estimated_duration,omitempty" binding:"omitempty,min=1"`
	Status            string  `json:"status" binding:"required,oneof=active inactive completed cancelled"`
	AssignedTo        *string `json:"assigned_to,omitempty" binding:"omitempty,uuid"`
	Notes             *string `json:"notes,omitempty"`
	// Force skips the regeneration guard and generates even when
	// instances already exist for the machine, category and date range.
	Force bool `json:"force"`
}

// GenerateScheduleResponse reports what one generation run produced.
type GenerateScheduleResponse struct {
	PointsProcessed  int    `json:"points_processed"`
	InstancesCreated int    `json:"instances_created"`
	Capped           bool   `json:"capped"`
	Warning          string `json:"warning,omitempty"`
}

// UpdateScheduleRequest edits one schedule instance; nil means unchanged.
type UpdateScheduleRequest struct {
	StandardID        *string `json:"standard_id,omitempty" binding:"omitempty,uuid"`
	StartDate         *string `json:"start_date,omitempty"`
	EndDate           *string `json:"end_date,omitempty"`
	PreferredTime     *string `json:"preferred_time,omitempty"`
	EstimatedDuration *int    `json:"estimated_duration,omitempty" binding:"omitempty,min=1"`
	Status            *string `json:"status,omitempty" binding:"omitempty,oneof=active inactive completed cancelled"`
	AssignedTo        *string `json:"assigned_to,omitempty" binding:"omitempty,uuid"`
	Notes             *string `json:"notes,omitempty"`
	Version           int     `json:"version" binding:"required,min=1"`
}

// ScheduleEntry is one schedule row on the board, with its standard range
// and the status of its latest execution.
type ScheduleEntry struct {
	ScheduleID           string   `json:"schedule_id"`
	MaintenancePointName string   `json:"maintenance_point_name"`
	StandardName         string   `json:"standard_name"`
	StandardUnit         string   `json:"standard_unit"`
	StandardMin          *float64 `json:"standard_min"`
	StandardMax          *float64 `json:"standard_max"`
	StandardTarget       *float64 `json:"standard_target"`
	ExecutionStatus      string   `json:"execution_status"`
	ExecutionID          *string  `json:"execution_id"`
}

// ScheduleDayGroup is one machine-day on the scheduling board: every
// schedule row sharing the machine and calendar date.
type ScheduleDayGroup struct {
	Machine MachineResponse `json:"machine"`
	Date    string          `json:"date"`
	Entries []ScheduleEntry `json:"entries"`
}

// ScheduleBoardResponse is the scheduling index, grouped by machine and date.
type ScheduleBoardResponse struct {
	Groups []ScheduleDayGroup `json:"groups"`
}

// ScheduleResponse is the detail shape of one schedule instance.
type ScheduleResponse struct {
	ScheduleID        string              `json:"schedule_id"`
	Machine           MachineResponse     `json:"machine"`
	Title             string              `json:"title"`
	Description       string              `json:"description"`
	Category          string              `json:"category"`
	FrequencyType     string              `json:"frequency_type"`
	FrequencyValue    int                 `json:"frequency_value"`
	StartDate         string              `json:"start_date"`
	EndDate           string              `json:"end_date"`
	PreferredTime     *string             `json:"preferred_time,omitempty"`
	EstimatedDuration *int                `json:"estimated_duration,omitempty"`
	Status            string              `json:"status"`
	AssignedTo        *string             `json:"assigned_to,omitempty"`
	AssignedName      string              `json:"assigned_name,omitempty"`
	Notes             *string             `json:"notes,omitempty"`
	Version           int                 `json:"version"`
	Executions        []ExecutionResponse `json:"executions,omitempty"`
}
