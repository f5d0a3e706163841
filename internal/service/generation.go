package service

import (
	"sort"
	"time"

	"github.com/cmms120187/pratamair/internal/model"
)

// GenerationCap is the hard limit on instances one generation call may
// produce. It is a runaway guard against misconfigured frequencies (a
// zero multiplier, or a unit that repeats the same date) and applies to
// the whole call, not per point.
const GenerationCap = 1000

// DefaultHorizon returns the default generation horizon for a start date:
// December 31 of the start date's calendar year.
func DefaultHorizon(start time.Time) time.Time {
	return time.Date(start.Year(), time.December, 31, 0, 0, 0, 0, start.Location())
}

// GenerationSpec carries the per-batch inputs copied onto every generated
// instance.
type GenerationSpec struct {
	MachineID         string
	Category          string
	StandardID        string
	StartDate         time.Time
	HorizonEnd        time.Time
	PreferredTime     *string
	EstimatedDuration *int
	Status            string
	AssignedTo        *string
	Notes             *string
}

// ExpansionResult is what one generation call produced.
type ExpansionResult struct {
	Schedules       []model.MaintenanceSchedule
	PointsProcessed int
	// Capped is true when GenerationCap stopped the expansion before the
	// horizon was reached; the instances already produced remain valid.
	Capped bool
}

// ExpandSchedules expands a set of maintenance points into dated schedule
// instances for one machine through the horizon. Points are processed in
// sequence order and each point's dates are emitted chronologically, so
// the output preserves point sequence first, date second. Title,
// description and frequency are copied from the point at expansion time.
//
// The function is pure: it neither reads the clock nor touches storage.
// Persisting the result is the caller's concern.
func ExpandSchedules(spec GenerationSpec, points []model.MaintenancePoint) ExpansionResult {
	ordered := make([]model.MaintenancePoint, len(points))
	copy(ordered, points)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Sequence < ordered[j].Sequence
	})

	horizonKey := dateKey(spec.HorizonEnd)

	result := ExpansionResult{}
	for _, point := range ordered {
		result.PointsProcessed++

		current := spec.StartDate
		for dateKey(current) <= horizonKey {
			if len(result.Schedules) >= GenerationCap {
				result.Capped = true
				return result
			}

			result.Schedules = append(result.Schedules, model.MaintenanceSchedule{
				MachineID:          spec.MachineID,
				MaintenancePointID: point.MaintenancePointID,
				StandardID:         spec.StandardID,
				Title:              point.Name,
				Description:        point.Instruction,
				Category:           spec.Category,
				FrequencyType:      point.FrequencyType,
				FrequencyValue:     point.FrequencyValue,
				StartDate:          current,
				EndDate:            spec.HorizonEnd,
				PreferredTime:      spec.PreferredTime,
				EstimatedDuration:  spec.EstimatedDuration,
				Status:             spec.Status,
				AssignedTo:         spec.AssignedTo,
				Notes:              spec.Notes,
			})

			current = NextOccurrence(current, point.FrequencyType, point.FrequencyValue)
		}
	}

	return result
}
