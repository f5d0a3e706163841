package model

// Maintenance categories.
const (
	CategoryAutonomous = "autonomous"
	CategoryPreventive = "preventive"
	CategoryPredictive = "predictive"
)

// Frequency units for maintenance-point recurrence.
const (
	FrequencyDaily     = "daily"
	FrequencyWeekly    = "weekly"
	FrequencyMonthly   = "monthly"
	FrequencyQuarterly = "quarterly"
	FrequencyYearly    = "yearly"
)

// MaintenancePoint is one inspection/measurement task template belonging
// to a machine type and category, with its own recurrence. Points are not
// mutated once schedules reference them; generated schedules copy the
// fields they need at creation time.
type MaintenancePoint struct {
	MaintenancePointID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"maintenance_point_id"`
	MachineTypeID      string `gorm:"type:uuid;not null;index:idx_points_type_category" json:"machine_type_id"`
	Category           string `gorm:"type:varchar(20);not null;index:idx_points_type_category" json:"category"`
	Name               string `gorm:"type:varchar(100);not null"                     json:"name"`
	Instruction        string `gorm:"type:text"                                      json:"instruction"`
	Sequence           int    `gorm:"not null;default:0"                             json:"sequence"`
	FrequencyType      string `gorm:"type:varchar(20);not null;default:'monthly'"    json:"frequency_type"`
	FrequencyValue     int    `gorm:"not null;default:1"                             json:"frequency_value"`
	BaseModel

	MachineType *MachineType `gorm:"foreignKey:MachineTypeID;references:MachineTypeID" json:"machine_type,omitempty"`
}

func (MaintenancePoint) TableName() string { return "maintenance_points" }
