package service

import (
	"math"
	"sort"
	"time"

	"github.com/cmms120187/pratamair/internal/model"
)

// Disposition is the resolved current state of a schedule instance,
// derived from its latest execution.
type Disposition string

const (
	DispositionNoExecution Disposition = "no_execution"
	DispositionPending     Disposition = "pending"
	DispositionInProgress  Disposition = "in_progress"
	DispositionCompleted   Disposition = "completed"
	DispositionSkipped     Disposition = "skipped"
	DispositionCancelled   Disposition = "cancelled"
)

// LatestExecution returns the most recently created execution of the
// schedule, or nil when none exists. Selection is by creation time with
// slice position breaking ties, so re-attempts recorded in the same
// instant resolve to the last row written.
func LatestExecution(s *model.MaintenanceSchedule) *model.MaintenanceExecution {
	var latest *model.MaintenanceExecution
	for i := range s.Executions {
		e := &s.Executions[i]
		if latest == nil || !e.CreatedAt.Before(latest.CreatedAt) {
			latest = e
		}
	}
	return latest
}

// Resolve maps a schedule instance to its disposition. Only the latest
// execution counts; earlier attempts are never merged or averaged.
func Resolve(s *model.MaintenanceSchedule) Disposition {
	latest := LatestExecution(s)
	if latest == nil {
		return DispositionNoExecution
	}
	switch latest.Status {
	case model.ExecutionInProgress:
		return DispositionInProgress
	case model.ExecutionCompleted:
		return DispositionCompleted
	case model.ExecutionSkipped:
		return DispositionSkipped
	case model.ExecutionCancelled:
		return DispositionCancelled
	default:
		return DispositionPending
	}
}

// IsOverdue reports the caller-side overdue judgment for an untouched
// instance: no execution yet, the obligation date has passed, and the
// schedule is still active. It is not a disposition of the instance.
func IsOverdue(s *model.MaintenanceSchedule, today time.Time) bool {
	return Resolve(s) == DispositionNoExecution &&
		dateKey(s.StartDate) < dateKey(today) &&
		s.Status == model.ScheduleActive
}

// DayGroupKey identifies one machine-day.
type DayGroupKey struct {
	MachineID string
	Date      string // YYYY-MM-DD
}

// DayGroup is every schedule instance sharing one machine and one
// calendar date, treated as a single unit of that day's work.
type DayGroup struct {
	MachineID string
	Date      string
	Schedules []*model.MaintenanceSchedule
	// IsComplete is true iff every member resolves to Completed. A member
	// without any execution can never count as completed.
	IsComplete bool
	// IsAllPending is true iff no member's work has started: every
	// disposition is NoExecution or Pending.
	IsAllPending bool
}

// RollupDayGroups groups schedule instances by (machine, calendar date)
// and derives each group's completeness verdict. It folds over whatever
// subset the caller loaded (for example one reporting month) and keeps
// input order within each group, so generator order survives into
// rendering.
func RollupDayGroups(schedules []model.MaintenanceSchedule) map[DayGroupKey]*DayGroup {
	groups := make(map[DayGroupKey]*DayGroup)
	for i := range schedules {
		s := &schedules[i]
		key := DayGroupKey{MachineID: s.MachineID, Date: dateKey(s.StartDate)}
		group, ok := groups[key]
		if !ok {
			group = &DayGroup{
				MachineID:    s.MachineID,
				Date:         key.Date,
				IsComplete:   true,
				IsAllPending: true,
			}
			groups[key] = group
		}
		group.Schedules = append(group.Schedules, s)

		switch Resolve(s) {
		case DispositionCompleted:
			group.IsAllPending = false
		case DispositionNoExecution, DispositionPending:
			group.IsComplete = false
		default:
			group.IsComplete = false
			group.IsAllPending = false
		}
	}
	return groups
}

// SortedDayGroups flattens a rollup into date-ascending render order,
// machine ID breaking date ties.
func SortedDayGroups(groups map[DayGroupKey]*DayGroup) []*DayGroup {
	sorted := make([]*DayGroup, 0, len(groups))
	for _, g := range groups {
		sorted = append(sorted, g)
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Date != sorted[j].Date {
			return sorted[i].Date < sorted[j].Date
		}
		return sorted[i].MachineID < sorted[j].MachineID
	})
	return sorted
}

// CompletionPercentage is completed day-groups over total day-groups as a
// percentage rounded to one decimal, and 0 when there are no groups.
func CompletionPercentage(completed, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(completed)/float64(total)*1000) / 10
}

// Stats are the fleet KPI counters for one reporting period. The counters
// deliberately mix granularities: pending/in-progress count execution
// rows, completed/plan count machines, and overdue counts individual
// schedule instances.
type Stats struct {
	PendingExecutions    int
	InProgressExecutions int
	CompletedMachines    int
	PlanMachines         int
	OverdueCount         int
}

// AggregateStats folds the period's active schedule instances (with their
// executions preloaded) into the dashboard counters. The caller filters
// the input to the reporting period and active status; today is passed
// explicitly so the computation is deterministic.
//
// Machine-level counters qualify instances by start date <= today and
// skip machines with no qualifying instance; the instance-level overdue
// counter uses start date < today. The differing date filters match the
// dashboard's historical numbers and are kept on purpose.
func AggregateStats(schedules []model.MaintenanceSchedule, today time.Time) Stats {
	todayKey := dateKey(today)
	stats := Stats{}

	// Execution-row counters over every recorded attempt, not just the
	// latest one.
	for i := range schedules {
		for _, e := range schedules[i].Executions {
			switch e.Status {
			case model.ExecutionPending:
				stats.PendingExecutions++
			case model.ExecutionInProgress:
				stats.InProgressExecutions++
			}
		}
	}

	// Instance-level overdue: date passed, latest execution (if any) not
	// completed.
	for i := range schedules {
		s := &schedules[i]
		if dateKey(s.StartDate) < todayKey && Resolve(s) != DispositionCompleted {
			stats.OverdueCount++
		}
	}

	// Machine-level counters over instances due up to today.
	type machineState struct {
		qualifying   int
		allCompleted bool
		allPending   bool
	}
	machines := make(map[string]*machineState)
	for i := range schedules {
		s := &schedules[i]
		if dateKey(s.StartDate) > todayKey {
			continue
		}
		state, ok := machines[s.MachineID]
		if !ok {
			state = &machineState{allCompleted: true, allPending: true}
			machines[s.MachineID] = state
		}
		state.qualifying++

		switch Resolve(s) {
		case DispositionCompleted:
			state.allPending = false
		case DispositionNoExecution, DispositionPending:
			state.allCompleted = false
		default:
			state.allCompleted = false
			state.allPending = false
		}
	}
	for _, state := range machines {
		if state.qualifying == 0 {
			continue
		}
		if state.allCompleted {
			stats.CompletedMachines++
		}
		if state.allPending {
			stats.PlanMachines++
		}
	}

	return stats
}
