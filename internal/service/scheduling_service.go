package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/cmms120187/pratamair/internal/dto"
	"github.com/cmms120187/pratamair/internal/model"
	"github.com/cmms120187/pratamair/internal/repository"
)

var (
	ErrScheduleNotFound = errors.New("schedule not found")
	// ErrNoMaintenancePoints means the requested machine type and
	// category have no point catalog; define points first, then generate.
	ErrNoMaintenancePoints = errors.New("no maintenance points defined for this machine type and category")
	// ErrSchedulesExist guards against accidental regeneration: instances
	// already cover the requested range. Submit with force to generate
	// anyway.
	ErrSchedulesExist = errors.New("schedules already exist for this machine, category and date range")
	ErrInvalidDate    = errors.New("invalid date, expected YYYY-MM-DD")
)

// ── SchedulingService ────────────────────────────────────────
//
// Generation flow:
//  1. resolve machine (its type selects the point catalog) and standard
//  2. load the ordered point catalog; empty catalog fails before any write
//  3. regeneration guard (unless forced) keeps the batch at-most-once
//  4. expand points into dated instances (pure, capped at GenerationCap)
//  5. persist the batch and report points/instances counts
//
// The board listing re-groups persisted instances by (machine, date) on
// every read; completeness is never stored.
// ─────────────────────────────────────────────────────────────

// SchedulingService owns schedule generation and the scheduling board.
type SchedulingService interface {
	Generate(ctx context.Context, req *dto.GenerateScheduleRequest) (*dto.GenerateScheduleResponse, error)
	Board(ctx context.Context, period Period, filter repository.ScheduleFilter) (*dto.ScheduleBoardResponse, error)
	Get(ctx context.Context, id string) (*dto.ScheduleResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateScheduleRequest) (*dto.ScheduleResponse, error)
	Delete(ctx context.Context, id string) error
}

type schedulingService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSchedulingService creates the SchedulingService.
func NewSchedulingService(repo *repository.Repository, logger *zap.Logger) SchedulingService {
	return &schedulingService{repo: repo, logger: logger}
}

func (s *schedulingService) Generate(ctx context.Context, req *dto.GenerateScheduleRequest) (*dto.GenerateScheduleResponse, error) {
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	horizon := DefaultHorizon(startDate)
	if req.EndDate != "" {
		horizon, err = parseDate(req.EndDate)
		if err != nil {
			return nil, ErrInvalidDate
		}
	}

	machine, err := s.repo.Machine.GetByID(ctx, req.MachineID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMachineNotFound
		}
		return nil, err
	}
	if _, err := s.repo.Standard.GetByID(ctx, req.StandardID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStandardNotFound
		}
		return nil, err
	}

	points, err := s.repo.MaintenancePoint.ListByTypeAndCategory(ctx, machine.MachineTypeID, req.Category)
	if err != nil {
		return nil, err
	}
	if len(points) == 0 {
		return nil, ErrNoMaintenancePoints
	}

	if !req.Force {
		existing, err := s.repo.Schedule.CountByMachineAndRange(ctx, req.MachineID, req.Category, startDate, horizon)
		if err != nil {
			return nil, err
		}
		if existing > 0 {
			return nil, ErrSchedulesExist
		}
	}

	expansion := ExpandSchedules(GenerationSpec{
		MachineID:         req.MachineID,
		Category:          req.Category,
		StandardID:        req.StandardID,
		StartDate:         startDate,
		HorizonEnd:        horizon,
		PreferredTime:     req.PreferredTime,
		EstimatedDuration: req.EstimatedDuration,
		Status:            req.Status,
		AssignedTo:        req.AssignedTo,
		Notes:             req.Notes,
	}, points)

	if err := s.repo.Schedule.BatchCreate(ctx, expansion.Schedules); err != nil {
		s.logger.Error("persist schedule batch failed",
			zap.Error(err),
			zap.String("machine_id", req.MachineID),
			zap.Int("instances", len(expansion.Schedules)),
		)
		return nil, fmt.Errorf("persist schedule batch: %w", err)
	}

	resp := &dto.GenerateScheduleResponse{
		PointsProcessed:  expansion.PointsProcessed,
		InstancesCreated: len(expansion.Schedules),
		Capped:           expansion.Capped,
	}
	if expansion.Capped {
		resp.Warning = fmt.Sprintf("generation stopped at the %d-instance safety cap; check the point frequencies", GenerationCap)
		s.logger.Warn("schedule generation capped",
			zap.String("machine_id", req.MachineID),
			zap.String("category", req.Category),
			zap.Int("instances", len(expansion.Schedules)),
		)
	}

	s.logger.Info("schedules generated",
		zap.String("machine_id", req.MachineID),
		zap.String("category", req.Category),
		zap.Int("points", resp.PointsProcessed),
		zap.Int("instances", resp.InstancesCreated),
	)

	return resp, nil
}

func (s *schedulingService) Board(ctx context.Context, period Period, filter repository.ScheduleFilter) (*dto.ScheduleBoardResponse, error) {
	filter.PeriodStart = period.Start
	filter.PeriodEnd = period.End

	schedules, err := s.repo.Schedule.List(ctx, filter)
	if err != nil {
		s.logger.Error("list schedules failed", zap.Error(err))
		return nil, err
	}

	groups := SortedDayGroups(RollupDayGroups(schedules))

	resp := &dto.ScheduleBoardResponse{Groups: make([]dto.ScheduleDayGroup, 0, len(groups))}
	for _, group := range groups {
		if len(group.Schedules) == 0 {
			continue
		}
		first := group.Schedules[0]
		if first.Machine == nil {
			continue // dangling machine reference, nothing to render
		}

		entries := make([]dto.ScheduleEntry, 0, len(group.Schedules))
		for _, sch := range group.Schedules {
			entries = append(entries, toScheduleEntry(sch))
		}

		resp.Groups = append(resp.Groups, dto.ScheduleDayGroup{
			Machine: toMachineResponse(first.Machine),
			Date:    group.Date,
			Entries: entries,
		})
	}

	return resp, nil
}

func (s *schedulingService) Get(ctx context.Context, id string) (*dto.ScheduleResponse, error) {
	schedule, err := s.repo.Schedule.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}
	resp := toScheduleResponse(schedule)
	return &resp, nil
}

func (s *schedulingService) Update(ctx context.Context, id string, req *dto.UpdateScheduleRequest) (*dto.ScheduleResponse, error) {
	schedule, err := s.repo.Schedule.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}

	if req.StandardID != nil {
		if _, err := s.repo.Standard.GetByID(ctx, *req.StandardID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrStandardNotFound
			}
			return nil, err
		}
		schedule.StandardID = *req.StandardID
	}
	if req.StartDate != nil {
		d, err := parseDate(*req.StartDate)
		if err != nil {
			return nil, ErrInvalidDate
		}
		schedule.StartDate = d
	}
	if req.EndDate != nil {
		d, err := parseDate(*req.EndDate)
		if err != nil {
			return nil, ErrInvalidDate
		}
		schedule.EndDate = d
	}
	if req.PreferredTime != nil {
		schedule.PreferredTime = req.PreferredTime
	}
	if req.EstimatedDuration != nil {
		schedule.EstimatedDuration = req.EstimatedDuration
	}
	if req.Status != nil {
		schedule.Status = *req.Status
	}
	if req.AssignedTo != nil {
		schedule.AssignedTo = req.AssignedTo
	}
	if req.Notes != nil {
		schedule.Notes = req.Notes
	}
	schedule.Version = req.Version

	if err := s.repo.Schedule.Update(ctx, schedule); err != nil {
		s.logger.Error("update schedule failed", zap.Error(err), zap.String("schedule_id", id))
		return nil, err
	}

	return s.Get(ctx, id)
}

func (s *schedulingService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Schedule.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrScheduleNotFound
		}
		return err
	}
	return s.repo.Schedule.Delete(ctx, id)
}

// ── converters ──

func toScheduleEntry(s *model.MaintenanceSchedule) dto.ScheduleEntry {
	entry := dto.ScheduleEntry{
		ScheduleID:           s.ScheduleID,
		MaintenancePointName: s.Title,
		StandardName:         "-",
		StandardUnit:         "-",
		ExecutionStatus:      string(DispositionPending),
	}
	if s.MaintenancePoint != nil {
		entry.MaintenancePointName = s.MaintenancePoint.Name
	}
	if s.Standard != nil {
		entry.StandardName = s.Standard.Name
		entry.StandardUnit = s.Standard.Unit
		entry.StandardMin = s.Standard.MinValue
		entry.StandardMax = s.Standard.MaxValue
		entry.StandardTarget = s.Standard.TargetValue
	}
	if latest := LatestExecution(s); latest != nil {
		entry.ExecutionStatus = latest.Status
		entry.ExecutionID = &latest.ExecutionID
	}
	return entry
}

func toScheduleResponse(s *model.MaintenanceSchedule) dto.ScheduleResponse {
	resp := dto.ScheduleResponse{
		ScheduleID:        s.ScheduleID,
		Title:             s.Title,
		Description:       s.Description,
		Category:          s.Category,
		FrequencyType:     s.FrequencyType,
		FrequencyValue:    s.FrequencyValue,
		StartDate:         dateKey(s.StartDate),
		EndDate:           dateKey(s.EndDate),
		PreferredTime:     s.PreferredTime,
		EstimatedDuration: s.EstimatedDuration,
		Status:            s.Status,
		AssignedTo:        s.AssignedTo,
		Notes:             s.Notes,
		Version:           s.Version,
	}
	if s.Machine != nil {
		resp.Machine = toMachineResponse(s.Machine)
	}
	if s.AssignedUser != nil {
		resp.AssignedName = s.AssignedUser.Name
	}
	for i := range s.Executions {
		resp.Executions = append(resp.Executions, toExecutionResponse(&s.Executions[i]))
	}
	return resp
}

func parseDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}
