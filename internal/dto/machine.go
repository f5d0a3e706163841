package dto

// CreateMachineRequest registers a new machine.
type CreateMachineRequest struct {
	Code          string `json:"code" binding:"required"`
	Name          string `json:"name" binding:"required"`
	MachineTypeID string `json:"machine_type_id" binding:"required,uuid"`
	PlantID       string `json:"plant_id" binding:"required,uuid"`
	LineID        string `json:"line_id" binding:"required,uuid"`
}

// UpdateMachineRequest patches machine fields; nil means unchanged.
type UpdateMachineRequest struct {
	Code   *string `json:"code,omitempty"`
	Name   *string `json:"name,omitempty"`
	LineID *string `json:"line_id,omitempty"`
	Status *string `json:"status,omitempty" binding:"omitempty,oneof=active inactive"`
}

// MachineResponse is the machine shape with resolved lookups.
type MachineResponse struct {
	MachineID   string `json:"machine_id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	MachineType string `json:"machine_type"`
	Plant       string `json:"plant"`
	Line        string `json:"line"`
	Status      string `json:"status"`
}

// CreateMaintenancePointRequest adds one task template to a machine-type catalog.
type CreateMaintenancePointRequest struct {
	MachineTypeID  string `json:"machine_type_id" binding:"required,uuid"`
	Category       string `json:"category" binding:"required,oneof=autonomous preventive predictive"`
	Name           string `json:"name" binding:"required"`
	Instruction    string `json:"instruction"`
	Sequence       int    `json:"sequence"`
	FrequencyType  string `json:"frequency_type" binding:"required"`
	FrequencyValue int    `json:"frequency_value" binding:"required,min=1"`
}

// CreateStandardRequest adds a measurement standard.
type CreateStandardRequest struct {
	Name        string   `json:"name" binding:"required"`
	Unit        string   `json:"unit"`
	MinValue    *float64 `json:"min_value"`
	MaxValue    *float64 `json:"max_value"`
	TargetValue *float64 `json:"target_value"`
}
