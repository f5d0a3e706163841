package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/cmms120187/pratamair/internal/model"
)

// PlantRepository reads the plant catalog.
type PlantRepository interface {
	List(ctx context.Context) ([]model.Plant, error)
	GetByID(ctx context.Context, id string) (*model.Plant, error)
}

// LineRepository reads the line catalog.
type LineRepository interface {
	List(ctx context.Context) ([]model.Line, error)
	GetByID(ctx context.Context, id string) (*model.Line, error)
}

// MachineTypeRepository reads the machine-type catalog.
type MachineTypeRepository interface {
	List(ctx context.Context) ([]model.MachineType, error)
	GetByID(ctx context.Context, id string) (*model.MachineType, error)
}

// MachineFilter narrows machine listings.
type MachineFilter struct {
	PlantID       string
	LineID        string
	MachineTypeID string
	Code          string // substring match
}

// MachineRepository accesses the machine catalog.
type MachineRepository interface {
	Create(ctx context.Context, machine *model.Machine) error
	GetByID(ctx context.Context, id string) (*model.Machine, error)
	List(ctx context.Context, filter MachineFilter) ([]model.Machine, error)
	Update(ctx context.Context, machine *model.Machine) error
	Delete(ctx context.Context, id string) error
}

// ── implementations ──

type plantRepo struct{ db *gorm.DB }

func NewPlantRepo(db *gorm.DB) PlantRepository { return &plantRepo{db: db} }

func (r *plantRepo) List(ctx context.Context) ([]model.Plant, error) {
	var plants []model.Plant
	err := r.db.WithContext(ctx).Order("name").Find(&plants).Error
	return plants, err
}

func (r *plantRepo) GetByID(ctx context.Context, id string) (*model.Plant, error) {
	var plant model.Plant
	if err := r.db.WithContext(ctx).Where("plant_id = ?", id).First(&plant).Error; err != nil {
		return nil, err
	}
	return &plant, nil
}

type lineRepo struct{ db *gorm.DB }

func NewLineRepo(db *gorm.DB) LineRepository { return &lineRepo{db: db} }

func (r *lineRepo) List(ctx context.Context) ([]model.Line, error) {
	var lines []model.Line
	err := r.db.WithContext(ctx).Preload("Plant").Order("name").Find(&lines).Error
	return lines, err
}

func (r *lineRepo) GetByID(ctx context.Context, id string) (*model.Line, error) {
	var line model.Line
	if err := r.db.WithContext(ctx).Preload("Plant").Where("line_id = ?", id).First(&line).Error; err != nil {
		return nil, err
	}
	return &line, nil
}

type machineTypeRepo struct{ db *gorm.DB }

func NewMachineTypeRepo(db *gorm.DB) MachineTypeRepository { return &machineTypeRepo{db: db} }

func (r *machineTypeRepo) List(ctx context.Context) ([]model.MachineType, error) {
	var types []model.MachineType
	err := r.db.WithContext(ctx).Order("name").Find(&types).Error
	return types, err
}

func (r *machineTypeRepo) GetByID(ctx context.Context, id string) (*model.MachineType, error) {
	var mt model.MachineType
	if err := r.db.WithContext(ctx).Where("machine_type_id = ?", id).First(&mt).Error; err != nil {
		return nil, err
	}
	return &mt, nil
}

type machineRepo struct{ db *gorm.DB }

func NewMachineRepo(db *gorm.DB) MachineRepository { return &machineRepo{db: db} }

func (r *machineRepo) Create(ctx context.Context, machine *model.Machine) error {
	return r.db.WithContext(ctx).Create(machine).Error
}

func (r *machineRepo) GetByID(ctx context.Context, id string) (*model.Machine, error) {
	var machine model.Machine
	err := r.db.WithContext(ctx).
		Preload("MachineType").
		Preload("Plant").
		Preload("Line").
		Where("machine_id = ?", id).
		First(&machine).Error
	if err != nil {
		return nil, err
	}
	return &machine, nil
}

func (r *machineRepo) List(ctx context.Context, filter MachineFilter) ([]model.Machine, error) {
	q := r.db.WithContext(ctx).
		Preload("MachineType").
		Preload("Plant").
		Preload("Line")
	if filter.PlantID != "" {
		q = q.Where("plant_id = ?", filter.PlantID)
	}
	if filter.LineID != "" {
		q = q.Where("line_id = ?", filter.LineID)
	}
	if filter.MachineTypeID != "" {
		q = q.Where("machine_type_id = ?", filter.MachineTypeID)
	}
	if filter.Code != "" {
		q = q.Where("code ILIKE ?", "%"+filter.Code+"%")
	}

	var machines []model.Machine
	err := q.Order("code").Find(&machines).Error
	return machines, err
}

func (r *machineRepo) Update(ctx context.Context, machine *model.Machine) error {
	return r.db.WithContext(ctx).Save(machine).Error
}

func (r *machineRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("machine_id = ?", id).Delete(&model.Machine{}).Error
}
