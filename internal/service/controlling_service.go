package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/cmms120187/pratamair/internal/dto"
	"github.com/cmms120187/pratamair/internal/model"
	"github.com/cmms120187/pratamair/internal/repository"
)

var (
	ErrExecutionNotFound = errors.New("execution not found")
	// ErrExecutionScheduleMismatch means a batch row named an execution
	// that belongs to a different schedule than the row claims.
	ErrExecutionScheduleMismatch = errors.New("execution does not belong to the given schedule")
)

// ControllingService owns the compliance dashboard and execution recording.
type ControllingService interface {
	Dashboard(ctx context.Context, period Period, today time.Time, filter repository.ScheduleFilter) (*dto.DashboardResponse, error)
	BatchUpsertExecutions(ctx context.Context, req *dto.BatchExecutionRequest) (*dto.BatchExecutionResponse, error)
	GetExecution(ctx context.Context, id string) (*dto.ExecutionResponse, error)
	UpdateExecution(ctx context.Context, id string, req *dto.UpdateExecutionRequest) (*dto.ExecutionResponse, error)
	DeleteExecution(ctx context.Context, id string) error
}

type controllingService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewControllingService creates the ControllingService.
func NewControllingService(repo *repository.Repository, logger *zap.Logger) ControllingService {
	return &controllingService{repo: repo, logger: logger}
}

// Dashboard builds the compliance view for one period: fleet KPI counters
// plus a per-machine compliance summary. Only active schedules
// participate; everything is recomputed from the schedule instances and
// their executions on every call.
func (s *controllingService) Dashboard(ctx context.Context, period Period, today time.Time, filter repository.ScheduleFilter) (*dto.DashboardResponse, error) {
	filter.PeriodStart = period.Start
	filter.PeriodEnd = period.End
	filter.Status = model.ScheduleActive

	schedules, err := s.repo.Schedule.List(ctx, filter)
	if err != nil {
		s.logger.Error("list schedules for dashboard failed", zap.Error(err))
		return nil, err
	}

	stats := AggregateStats(schedules, today)

	resp := &dto.DashboardResponse{
		PeriodType: period.Type,
		Month:      int(period.Start.Month()),
		Year:       period.Start.Year(),
		Stats: dto.DashboardStats{
			Pending:    stats.PendingExecutions,
			InProgress: stats.InProgressExecutions,
			Completed:  stats.CompletedMachines,
			Plan:       stats.PlanMachines,
			Overdue:    stats.OverdueCount,
		},
		Machines: []dto.MachineCompliance{},
	}

	byMachine := make(map[string][]model.MaintenanceSchedule)
	machineOrder := make([]string, 0)
	for _, sch := range schedules {
		if _, seen := byMachine[sch.MachineID]; !seen {
			machineOrder = append(machineOrder, sch.MachineID)
		}
		byMachine[sch.MachineID] = append(byMachine[sch.MachineID], sch)
	}

	for _, machineID := range machineOrder {
		group := byMachine[machineID]
		if group[0].Machine == nil {
			continue
		}
		resp.Machines = append(resp.Machines, s.machineCompliance(group, today))
	}

	sort.SliceStable(resp.Machines, func(i, j int) bool {
		return resp.Machines[i].Machine.Code < resp.Machines[j].Machine.Code
	})

	return resp, nil
}

// machineCompliance folds one machine's schedule instances into its
// compliance summary. Instance counters classify each instance by its
// latest execution; the day-group counters re-aggregate the same
// instances by calendar date.
func (s *controllingService) machineCompliance(schedules []model.MaintenanceSchedule, today time.Time) dto.MachineCompliance {
	compliance := dto.MachineCompliance{
		Machine:        toMachineResponse(schedules[0].Machine),
		TotalSchedules: len(schedules),
	}

	seenDates := make(map[string]bool)
	for i := range schedules {
		sch := &schedules[i]

		date := dateKey(sch.StartDate)
		if !seenDates[date] {
			seenDates[date] = true
			compliance.ScheduleDates = append(compliance.ScheduleDates, date)
		}

		switch Resolve(sch) {
		case DispositionCompleted:
			compliance.CompletedSchedules++
		case DispositionNoExecution:
			if IsOverdue(sch, today) {
				compliance.OverdueSchedules++
			} else {
				compliance.PendingSchedules++
			}
		default:
			compliance.PendingSchedules++
		}
	}
	sort.Strings(compliance.ScheduleDates)

	groups := RollupDayGroups(schedules)
	compliance.TotalDayGroups = len(groups)
	for _, group := range groups {
		if group.IsComplete {
			compliance.CompletedDayGroups++
		}
	}
	compliance.CompletionPercentage = CompletionPercentage(compliance.CompletedDayGroups, compliance.TotalDayGroups)

	return compliance
}

// BatchUpsertExecutions writes the controlling form for one machine-day.
// Rows carrying an execution id update that execution in place; rows
// without one create a new execution. The measurement status is
// classified against the schedule's standard at write time, and an
// update without an explicit performer keeps the row's existing one.
func (s *controllingService) BatchUpsertExecutions(ctx context.Context, req *dto.BatchExecutionRequest) (*dto.BatchExecutionResponse, error) {
	scheduledDate, err := parseDate(req.ScheduledDate)
	if err != nil {
		return nil, ErrInvalidDate
	}

	written := 0
	for _, item := range req.Executions {
		schedule, err := s.repo.Schedule.GetByID(ctx, item.ScheduleID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrScheduleNotFound
			}
			return nil, err
		}

		measurementStatus := classifyMeasurement(schedule.Standard, item.MeasuredValue)

		if item.ExecutionID != nil {
			execution, err := s.repo.Execution.GetByID(ctx, *item.ExecutionID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, ErrExecutionNotFound
				}
				return nil, err
			}
			if execution.ScheduleID != item.ScheduleID {
				return nil, ErrExecutionScheduleMismatch
			}

			execution.ScheduledDate = scheduledDate
			execution.Status = item.Status
			execution.MeasuredValue = item.MeasuredValue
			execution.MeasurementStatus = measurementStatus
			if req.PerformedBy != nil {
				execution.PerformedBy = req.PerformedBy
			}

			if err := s.repo.Execution.Update(ctx, execution); err != nil {
				s.logger.Error("update execution failed", zap.Error(err), zap.String("execution_id", execution.ExecutionID))
				return nil, err
			}
			written++
			continue
		}

		execution := &model.MaintenanceExecution{
			ScheduleID:        item.ScheduleID,
			ScheduledDate:     scheduledDate,
			Status:            item.Status,
			MeasuredValue:     item.MeasuredValue,
			MeasurementStatus: measurementStatus,
			PerformedBy:       req.PerformedBy,
		}
		if err := s.repo.Execution.Create(ctx, execution); err != nil {
			s.logger.Error("create execution failed", zap.Error(err), zap.String("schedule_id", item.ScheduleID))
			return nil, err
		}
		written++
	}

	s.logger.Info("execution batch written",
		zap.String("machine_id", req.MachineID),
		zap.String("scheduled_date", req.ScheduledDate),
		zap.Int("rows", written),
	)

	return &dto.BatchExecutionResponse{ExecutionsWritten: written}, nil
}

func (s *controllingService) GetExecution(ctx context.Context, id string) (*dto.ExecutionResponse, error) {
	execution, err := s.repo.Execution.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExecutionNotFound
		}
		return nil, err
	}
	resp := toExecutionResponse(execution)
	return &resp, nil
}

func (s *controllingService) UpdateExecution(ctx context.Context, id string, req *dto.UpdateExecutionRequest) (*dto.ExecutionResponse, error) {
	execution, err := s.repo.Execution.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExecutionNotFound
		}
		return nil, err
	}

	if req.Status != nil {
		execution.Status = *req.Status
	}
	if req.MeasuredValue != nil {
		execution.MeasuredValue = req.MeasuredValue
		var standard *model.Standard
		if execution.Schedule != nil {
			standard = execution.Schedule.Standard
		}
		execution.MeasurementStatus = classifyMeasurement(standard, req.MeasuredValue)
	}
	if req.ActualStartTime != nil {
		t, err := time.Parse(time.RFC3339, *req.ActualStartTime)
		if err != nil {
			return nil, ErrInvalidDate
		}
		execution.ActualStartTime = &t
	}
	if req.ActualEndTime != nil {
		t, err := time.Parse(time.RFC3339, *req.ActualEndTime)
		if err != nil {
			return nil, ErrInvalidDate
		}
		execution.ActualEndTime = &t
	}
	if req.PerformedBy != nil {
		execution.PerformedBy = req.PerformedBy
	}
	if req.Findings != nil {
		execution.Findings = req.Findings
	}
	if req.ActionsTaken != nil {
		execution.ActionsTaken = req.ActionsTaken
	}
	if req.Notes != nil {
		execution.Notes = req.Notes
	}
	if req.Cost != nil {
		execution.Cost = req.Cost
	}

	if err := s.repo.Execution.Update(ctx, execution); err != nil {
		s.logger.Error("update execution failed", zap.Error(err), zap.String("execution_id", id))
		return nil, err
	}

	return s.GetExecution(ctx, id)
}

func (s *controllingService) DeleteExecution(ctx context.Context, id string) error {
	if _, err := s.repo.Execution.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrExecutionNotFound
		}
		return err
	}
	return s.repo.Execution.Delete(ctx, id)
}

// classifyMeasurement grades a measured value against a standard's range.
// No value or no standard means no grade.
func classifyMeasurement(standard *model.Standard, value *float64) *string {
	if standard == nil || value == nil {
		return nil
	}
	status := standard.MeasurementStatus(*value)
	return &status
}

func toExecutionResponse(e *model.MaintenanceExecution) dto.ExecutionResponse {
	resp := dto.ExecutionResponse{
		ExecutionID:       e.ExecutionID,
		ScheduleID:        e.ScheduleID,
		ScheduledDate:     dateKey(e.ScheduledDate),
		Status:            e.Status,
		MeasuredValue:     e.MeasuredValue,
		MeasurementStatus: e.MeasurementStatus,
		PerformedBy:       e.PerformedBy,
		Findings:          e.Findings,
		ActionsTaken:      e.ActionsTaken,
		Notes:             e.Notes,
		Cost:              e.Cost,
		CreatedAt:         e.CreatedAt.Format(time.RFC3339),
	}
	if e.Performer != nil {
		resp.PerformerName = e.Performer.Name
	}
	return resp
}
