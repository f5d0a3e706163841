package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/cmms120187/pratamair/internal/model"
)

// ExecutionRepository accesses maintenance executions.
type ExecutionRepository interface {
	Create(ctx context.Context, execution *model.MaintenanceExecution) error
	GetByID(ctx context.Context, id string) (*model.MaintenanceExecution, error)
	ListBySchedule(ctx context.Context, scheduleID string) ([]model.MaintenanceExecution, error)
	Update(ctx context.Context, execution *model.MaintenanceExecution) error
	Delete(ctx context.Context, id string) error
}

type executionRepo struct{ db *gorm.DB }

func NewExecutionRepo(db *gorm.DB) ExecutionRepository { return &executionRepo{db: db} }

func (r *executionRepo) Create(ctx context.Context, execution *model.MaintenanceExecution) error {
	return r.db.WithContext(ctx).Create(execution).Error
}

func (r *executionRepo) GetByID(ctx context.Context, id string) (*model.MaintenanceExecution, error) {
	var execution model.MaintenanceExecution
	err := r.db.WithContext(ctx).
		Preload("Schedule.Machine").
		Preload("Schedule.Standard").
		Preload("Performer").
		Where("execution_id = ?", id).
		First(&execution).Error
	if err != nil {
		return nil, err
	}
	return &execution, nil
}

func (r *executionRepo) ListBySchedule(ctx context.Context, scheduleID string) ([]model.MaintenanceExecution, error) {
	var executions []model.MaintenanceExecution
	err := r.db.WithContext(ctx).
		Where("schedule_id = ?", scheduleID).
		Order("created_at ASC").
		Find(&executions).Error
	return executions, err
}

func (r *executionRepo) Update(ctx context.Context, execution *model.MaintenanceExecution) error {
	return r.db.WithContext(ctx).Save(execution).Error
}

func (r *executionRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("execution_id = ?", id).Delete(&model.MaintenanceExecution{}).Error
}
