package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/cmms120187/pratamair/internal/model"
)

// StandardRepository accesses the measurement-standard catalog.
type StandardRepository interface {
	Create(ctx context.Context, standard *model.Standard) error
	GetByID(ctx context.Context, id string) (*model.Standard, error)
	ListActive(ctx context.Context) ([]model.Standard, error)
	Update(ctx context.Context, standard *model.Standard) error
}

type standardRepo struct{ db *gorm.DB }

func NewStandardRepo(db *gorm.DB) StandardRepository { return &standardRepo{db: db} }

func (r *standardRepo) Create(ctx context.Context, standard *model.Standard) error {
	return r.db.WithContext(ctx).Create(standard).Error
}

func (r *standardRepo) GetByID(ctx context.Context, id string) (*model.Standard, error) {
	var standard model.Standard
	if err := r.db.WithContext(ctx).Where("standard_id = ?", id).First(&standard).Error; err != nil {
		return nil, err
	}
	return &standard, nil
}

func (r *standardRepo) ListActive(ctx context.Context) ([]model.Standard, error) {
	var standards []model.Standard
	err := r.db.WithContext(ctx).Where("status = ?", "active").Order("name").Find(&standards).Error
	return standards, err
}

func (r *standardRepo) Update(ctx context.Context, standard *model.Standard) error {
	return r.db.WithContext(ctx).Save(standard).Error
}
