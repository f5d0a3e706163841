package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/cmms120187/pratamair/internal/model"
	pkgerrors "github.com/cmms120187/pratamair/pkg/errors"
)

// ScheduleFilter narrows schedule listings. Zero values mean "no filter".
type ScheduleFilter struct {
	PeriodStart   time.Time
	PeriodEnd     time.Time
	Status        string
	MachineID     string
	PlantID       string
	LineID        string
	MachineTypeID string
	MachineCode   string // substring match on machine code
}

// ScheduleRepository accesses maintenance schedules. List queries preload
// executions ordered by creation time so downstream computation folds over
// fully loaded rows instead of re-querying per schedule.
type ScheduleRepository interface {
	BatchCreate(ctx context.Context, schedules []model.MaintenanceSchedule) error
	GetByID(ctx context.Context, id string) (*model.MaintenanceSchedule, error)
	List(ctx context.Context, filter ScheduleFilter) ([]model.MaintenanceSchedule, error)
	// CountByMachineAndRange counts existing instances for a machine and
	// category whose start date falls in [from, to]; the regeneration
	// guard uses it.
	CountByMachineAndRange(ctx context.Context, machineID, category string, from, to time.Time) (int64, error)
	Update(ctx context.Context, schedule *model.MaintenanceSchedule) error
	Delete(ctx context.Context, id string) error
}

type scheduleRepo struct{ db *gorm.DB }

func NewScheduleRepo(db *gorm.DB) ScheduleRepository { return &scheduleRepo{db: db} }

func (r *scheduleRepo) BatchCreate(ctx context.Context, schedules []model.MaintenanceSchedule) error {
	if len(schedules) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(schedules, 200).Error
}

func (r *scheduleRepo) GetByID(ctx context.Context, id string) (*model.MaintenanceSchedule, error) {
	var schedule model.MaintenanceSchedule
	err := r.db.WithContext(ctx).
		Preload("Machine.Plant").
		Preload("Machine.Line").
		Preload("Machine.MachineType").
		Preload("MaintenancePoint").
		Preload("Standard").
		Preload("AssignedUser").
		Preload("Executions", executionOrder).
		Preload("Executions.Performer").
		Where("schedule_id = ?", id).
		First(&schedule).Error
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *scheduleRepo) List(ctx context.Context, filter ScheduleFilter) ([]model.MaintenanceSchedule, error) {
	q := r.db.WithContext(ctx).
		Preload("Machine.Plant").
		Preload("Machine.Line").
		Preload("Machine.MachineType").
		Preload("MaintenancePoint").
		Preload("Standard").
		Preload("AssignedUser").
		Preload("Executions", executionOrder)

	if !filter.PeriodStart.IsZero() {
		q = q.Where("start_date >= ?", filter.PeriodStart.Format("2006-01-02"))
	}
	if !filter.PeriodEnd.IsZero() {
		q = q.Where("start_date <= ?", filter.PeriodEnd.Format("2006-01-02"))
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.MachineID != "" {
		q = q.Where("machine_id = ?", filter.MachineID)
	}
	if filter.PlantID != "" || filter.LineID != "" || filter.MachineTypeID != "" || filter.MachineCode != "" {
		sub := r.db.Model(&model.Machine{}).Select("machine_id")
		if filter.PlantID != "" {
			sub = sub.Where("plant_id = ?", filter.PlantID)
		}
		if filter.LineID != "" {
			sub = sub.Where("line_id = ?", filter.LineID)
		}
		if filter.MachineTypeID != "" {
			sub = sub.Where("machine_type_id = ?", filter.MachineTypeID)
		}
		if filter.MachineCode != "" {
			sub = sub.Where("code ILIKE ?", "%"+filter.MachineCode+"%")
		}
		q = q.Where("machine_id IN (?)", sub)
	}

	var schedules []model.MaintenanceSchedule
	err := q.Order("start_date ASC, created_at ASC").Find(&schedules).Error
	return schedules, err
}

func (r *scheduleRepo) CountByMachineAndRange(ctx context.Context, machineID, category string, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.MaintenanceSchedule{}).
		Where("machine_id = ? AND category = ?", machineID, category).
		Where("start_date BETWEEN ? AND ?", from.Format("2006-01-02"), to.Format("2006-01-02")).
		Count(&count).Error
	return count, err
}

func (r *scheduleRepo) Update(ctx context.Context, schedule *model.MaintenanceSchedule) error {
	oldVersion := schedule.Version
	result := r.db.WithContext(ctx).
		Model(schedule).
		Where("schedule_id = ? AND version = ?", schedule.ScheduleID, oldVersion).
		Updates(map[string]interface{}{
			"standard_id":        schedule.StandardID,
			"start_date":         schedule.StartDate,
			"end_date":           schedule.EndDate,
			"preferred_time":     schedule.PreferredTime,
			"estimated_duration": schedule.EstimatedDuration,
			"status":             schedule.Status,
			"assigned_to":        schedule.AssignedTo,
			"notes":              schedule.Notes,
			"version":            oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	schedule.Version = oldVersion + 1
	return nil
}

func (r *scheduleRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("schedule_id = ?", id).Delete(&model.MaintenanceSchedule{}).Error
}

// executionOrder preloads executions oldest-first; latest-execution
// selection over the loaded slice is then an explicit rule, not an
// accident of query order.
func executionOrder(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC")
}
