package handler

import "github.com/cmms120187/pratamair/internal/service"

// Handler aggregates all HTTP handlers.
type Handler struct {
	Auth        *AuthHandler
	MasterData  *MasterDataHandler
	Scheduling  *SchedulingHandler
	Controlling *ControllingHandler
	Export      *ExportHandler
}

// NewHandler creates the Handler aggregate.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:        NewAuthHandler(svc.Auth),
		MasterData:  NewMasterDataHandler(svc.MasterData),
		Scheduling:  NewSchedulingHandler(svc.Scheduling),
		Controlling: NewControllingHandler(svc.Controlling),
		Export:      NewExportHandler(svc.Export),
	}
}
