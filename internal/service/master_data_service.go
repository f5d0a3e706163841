package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/cmms120187/pratamair/internal/dto"
	"github.com/cmms120187/pratamair/internal/model"
	"github.com/cmms120187/pratamair/internal/repository"
)

var (
	ErrMachineNotFound     = errors.New("machine not found")
	ErrMachineTypeNotFound = errors.New("machine type not found")
	ErrStandardNotFound    = errors.New("measurement standard not found")
	ErrPointNotFound       = errors.New("maintenance point not found")
)

// MasterDataService covers the catalogs the maintenance engine consumes:
// machines (with plant/line/type lookups), measurement standards,
// maintenance points and the mechanic user directory.
type MasterDataService interface {
	ListPlants(ctx context.Context) ([]model.Plant, error)
	ListLines(ctx context.Context) ([]model.Line, error)
	ListMachineTypes(ctx context.Context) ([]model.MachineType, error)

	CreateMachine(ctx context.Context, req *dto.CreateMachineRequest) (*dto.MachineResponse, error)
	GetMachine(ctx context.Context, id string) (*dto.MachineResponse, error)
	ListMachines(ctx context.Context, filter repository.MachineFilter) ([]dto.MachineResponse, error)
	UpdateMachine(ctx context.Context, id string, req *dto.UpdateMachineRequest) (*dto.MachineResponse, error)
	DeleteMachine(ctx context.Context, id string) error

	CreateStandard(ctx context.Context, req *dto.CreateStandardRequest) (*model.Standard, error)
	ListStandards(ctx context.Context) ([]model.Standard, error)

	CreateMaintenancePoint(ctx context.Context, req *dto.CreateMaintenancePointRequest) (*model.MaintenancePoint, error)
	ListMaintenancePoints(ctx context.Context, machineTypeID, category string) ([]model.MaintenancePoint, error)
	DeleteMaintenancePoint(ctx context.Context, id string) error

	ListMechanics(ctx context.Context) ([]dto.UserResponse, error)
}

type masterDataService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewMasterDataService creates the MasterDataService.
func NewMasterDataService(repo *repository.Repository, logger *zap.Logger) MasterDataService {
	return &masterDataService{repo: repo, logger: logger}
}

func (s *masterDataService) ListPlants(ctx context.Context) ([]model.Plant, error) {
	return s.repo.Plant.List(ctx)
}

func (s *masterDataService) ListLines(ctx context.Context) ([]model.Line, error) {
	return s.repo.Line.List(ctx)
}

func (s *masterDataService) ListMachineTypes(ctx context.Context) ([]model.MachineType, error) {
	return s.repo.MachineType.List(ctx)
}

func (s *masterDataService) CreateMachine(ctx context.Context, req *dto.CreateMachineRequest) (*dto.MachineResponse, error) {
	if _, err := s.repo.MachineType.GetByID(ctx, req.MachineTypeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMachineTypeNotFound
		}
		return nil, err
	}

	machine := model.Machine{
		Code:          req.Code,
		Name:          req.Name,
		MachineTypeID: req.MachineTypeID,
		PlantID:       req.PlantID,
		LineID:        req.LineID,
		Status:        model.MachineActive,
	}
	if err := s.repo.Machine.Create(ctx, &machine); err != nil {
		s.logger.Error("create machine failed", zap.Error(err))
		return nil, err
	}

	return s.GetMachine(ctx, machine.MachineID)
}

func (s *masterDataService) GetMachine(ctx context.Context, id string) (*dto.MachineResponse, error) {
	machine, err := s.repo.Machine.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMachineNotFound
		}
		return nil, err
	}
	resp := toMachineResponse(machine)
	return &resp, nil
}

func (s *masterDataService) ListMachines(ctx context.Context, filter repository.MachineFilter) ([]dto.MachineResponse, error) {
	machines, err := s.repo.Machine.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	result := make([]dto.MachineResponse, 0, len(machines))
	for i := range machines {
		result = append(result, toMachineResponse(&machines[i]))
	}
	return result, nil
}

func (s *masterDataService) UpdateMachine(ctx context.Context, id string, req *dto.UpdateMachineRequest) (*dto.MachineResponse, error) {
	machine, err := s.repo.Machine.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMachineNotFound
		}
		return nil, err
	}

	if req.Code != nil {
		machine.Code = *req.Code
	}
	if req.Name != nil {
		machine.Name = *req.Name
	}
	if req.LineID != nil {
		machine.LineID = *req.LineID
	}
	if req.Status != nil {
		machine.Status = *req.Status
	}

	if err := s.repo.Machine.Update(ctx, machine); err != nil {
		s.logger.Error("update machine failed", zap.Error(err))
		return nil, err
	}

	return s.GetMachine(ctx, id)
}

func (s *masterDataService) DeleteMachine(ctx context.Context, id string) error {
	if _, err := s.repo.Machine.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMachineNotFound
		}
		return err
	}
	return s.repo.Machine.Delete(ctx, id)
}

func (s *masterDataService) CreateStandard(ctx context.Context, req *dto.CreateStandardRequest) (*model.Standard, error) {
	standard := model.Standard{
		Name:        req.Name,
		Unit:        req.Unit,
		MinValue:    req.MinValue,
		MaxValue:    req.MaxValue,
		TargetValue: req.TargetValue,
		Status:      "active",
	}
	if err := s.repo.Standard.Create(ctx, &standard); err != nil {
		s.logger.Error("create standard failed", zap.Error(err))
		return nil, err
	}
	return &standard, nil
}

func (s *masterDataService) ListStandards(ctx context.Context) ([]model.Standard, error) {
	return s.repo.Standard.ListActive(ctx)
}

func (s *masterDataService) CreateMaintenancePoint(ctx context.Context, req *dto.CreateMaintenancePointRequest) (*model.MaintenancePoint, error) {
	if _, err := s.repo.MachineType.GetByID(ctx, req.MachineTypeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMachineTypeNotFound
		}
		return nil, err
	}

	point := model.MaintenancePoint{
		MachineTypeID:  req.MachineTypeID,
		Category:       req.Category,
		Name:           req.Name,
		Instruction:    req.Instruction,
		Sequence:       req.Sequence,
		FrequencyType:  req.FrequencyType,
		FrequencyValue: req.FrequencyValue,
	}
	if err := s.repo.MaintenancePoint.Create(ctx, &point); err != nil {
		s.logger.Error("create maintenance point failed", zap.Error(err))
		return nil, err
	}
	return &point, nil
}

func (s *masterDataService) ListMaintenancePoints(ctx context.Context, machineTypeID, category string) ([]model.MaintenancePoint, error) {
	return s.repo.MaintenancePoint.ListByTypeAndCategory(ctx, machineTypeID, category)
}

func (s *masterDataService) DeleteMaintenancePoint(ctx context.Context, id string) error {
	if _, err := s.repo.MaintenancePoint.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPointNotFound
		}
		return err
	}
	return s.repo.MaintenancePoint.Delete(ctx, id)
}

func (s *masterDataService) ListMechanics(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.repo.User.ListByRoles(ctx, model.MechanicRoles)
	if err != nil {
		return nil, err
	}
	result := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		result = append(result, toUserResponse(&users[i]))
	}
	return result, nil
}

func toMachineResponse(m *model.Machine) dto.MachineResponse {
	resp := dto.MachineResponse{
		MachineID: m.MachineID,
		Code:      m.Code,
		Name:      m.Name,
		Status:    m.Status,
	}
	if m.MachineType != nil {
		resp.MachineType = m.MachineType.Name
	}
	if m.Plant != nil {
		resp.Plant = m.Plant.Name
	}
	if m.Line != nil {
		resp.Line = m.Line.Name
	}
	return resp
}
