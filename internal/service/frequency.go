package service

import (
	"time"

	"github.com/cmms120187/pratamair/internal/model"
)

// NextOccurrence returns the next obligation date after current for a
// frequency unit and multiplier. Month-based units use calendar-month
// arithmetic, so day-of-month is preserved across months of different
// length (with Go's AddDate normalization at month ends) and across leap
// years. An unrecognized unit is normalized to monthly rather than
// rejected.
func NextOccurrence(current time.Time, unit string, multiplier int) time.Time {
	switch unit {
	case model.FrequencyDaily:
		return current.AddDate(0, 0, multiplier)
	case model.FrequencyWeekly:
		return current.AddDate(0, 0, 7*multiplier)
	case model.FrequencyMonthly:
		return current.AddDate(0, multiplier, 0)
	case model.FrequencyQuarterly:
		return current.AddDate(0, 3*multiplier, 0)
	case model.FrequencyYearly:
		return current.AddDate(multiplier, 0, 0)
	default:
		return current.AddDate(0, multiplier, 0)
	}
}
