package service

import (
	"go.uber.org/zap"

	"github.com/cmms120187/pratamair/config"
	"github.com/cmms120187/pratamair/internal/repository"
	"github.com/cmms120187/pratamair/pkg/jwt"
	"github.com/cmms120187/pratamair/pkg/redis"
)

// Service aggregates all business services.
type Service struct {
	Auth        AuthService
	MasterData  MasterDataService
	Scheduling  SchedulingService
	Controlling ControllingService
	Export      ExportService
}

// NewService wires the service layer.
func NewService(cfg *config.Config, repo *repository.Repository, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *Service {
	scheduling := NewSchedulingService(repo, logger)
	controlling := NewControllingService(repo, logger)
	return &Service{
		Auth:        NewAuthService(repo, jwtMgr, rdb, logger),
		MasterData:  NewMasterDataService(repo, logger),
		Scheduling:  scheduling,
		Controlling: controlling,
		Export:      NewExportService(cfg, repo, controlling, logger),
	}
}
