package model

// Measurement classification labels.
const (
	MeasurementBelowStandard  = "below_standard"
	MeasurementWithinStandard = "within_standard"
	MeasurementAboveStandard  = "above_standard"
)

// Standard defines the acceptable range for a measured value.
type Standard struct {
	StandardID  string   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"standard_id"`
	Name        string   `gorm:"type:varchar(100);not null"                     json:"name"`
	Unit        string   `gorm:"type:varchar(30)"                               json:"unit"`
	MinValue    *float64 `gorm:"type:numeric(12,3)"                             json:"min_value"`
	MaxValue    *float64 `gorm:"type:numeric(12,3)"                             json:"max_value"`
	TargetValue *float64 `gorm:"type:numeric(12,3)"                             json:"target_value"`
	Status      string   `gorm:"type:varchar(20);not null;default:'active'"     json:"status"`
	BaseModel
}

func (Standard) TableName() string { return "standards" }

// MeasurementStatus classifies a measured value against the standard's range.
// Bounds that are not configured do not constrain the value.
func (s *Standard) MeasurementStatus(value float64) string {
	if s.MinValue != nil && value < *s.MinValue {
		return MeasurementBelowStandard
	}
	if s.MaxValue != nil && value > *s.MaxValue {
		return MeasurementAboveStandard
	}
	return MeasurementWithinStandard
}
