package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/cmms120187/pratamair/internal/model"
)

// MaintenancePointRepository accesses the maintenance-point catalog.
type MaintenancePointRepository interface {
	Create(ctx context.Context, point *model.MaintenancePoint) error
	GetByID(ctx context.Context, id string) (*model.MaintenancePoint, error)
	// ListByTypeAndCategory returns the points for a machine type and
	// category ordered by sequence, the order schedule generation expands
	// them in.
	ListByTypeAndCategory(ctx context.Context, machineTypeID, category string) ([]model.MaintenancePoint, error)
	Update(ctx context.Context, point *model.MaintenancePoint) error
	Delete(ctx context.Context, id string) error
}

type maintenancePointRepo struct{ db *gorm.DB }

func NewMaintenancePointRepo(db *gorm.DB) MaintenancePointRepository {
	return &maintenancePointRepo{db: db}
}

func (r *maintenancePointRepo) Create(ctx context.Context, point *model.MaintenancePoint) error {
	return r.db.WithContext(ctx).Create(point).Error
}

func (r *maintenancePointRepo) GetByID(ctx context.Context, id string) (*model.MaintenancePoint, error) {
	var point model.MaintenancePoint
	if err := r.db.WithContext(ctx).Where("maintenance_point_id = ?", id).First(&point).Error; err != nil {
		return nil, err
	}
	return &point, nil
}

func (r *maintenancePointRepo) ListByTypeAndCategory(ctx context.Context, machineTypeID, category string) ([]model.MaintenancePoint, error) {
	var points []model.MaintenancePoint
	err := r.db.WithContext(ctx).
		Where("machine_type_id = ? AND category = ?", machineTypeID, category).
		Order("sequence ASC").
		Find(&points).Error
	return points, err
}

func (r *maintenancePointRepo) Update(ctx context.Context, point *model.MaintenancePoint) error {
	return r.db.WithContext(ctx).Save(point).Error
}

func (r *maintenancePointRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("maintenance_point_id = ?", id).Delete(&model.MaintenancePoint{}).Error
}
