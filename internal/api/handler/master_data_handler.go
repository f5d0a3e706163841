package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/cmms120187/pratamair/internal/dto"
	"github.com/cmms120187/pratamair/internal/repository"
	"github.com/cmms120187/pratamair/internal/service"
	"github.com/cmms120187/pratamair/pkg/response"
)

// MasterDataHandler serves the catalog endpoints: machines and their
// lookups, measurement standards, maintenance points and the mechanic
// directory.
type MasterDataHandler struct {
	masterSvc service.MasterDataService
}

// NewMasterDataHandler creates the MasterDataHandler.
func NewMasterDataHandler(masterSvc service.MasterDataService) *MasterDataHandler {
	return &MasterDataHandler{masterSvc: masterSvc}
}

// ── lookups ──

// ListPlants lists the plant catalog.
// GET /api/v1/plants
func (h *MasterDataHandler) ListPlants(c *gin.Context) {
	plants, err := h.masterSvc.ListPlants(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, plants)
}

// ListLines lists the line catalog.
// GET /api/v1/lines
func (h *MasterDataHandler) ListLines(c *gin.Context) {
	lines, err := h.masterSvc.ListLines(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, lines)
}

// ListMachineTypes lists the machine-type catalog.
// GET /api/v1/machine-types
func (h *MasterDataHandler) ListMachineTypes(c *gin.Context) {
	types, err := h.masterSvc.ListMachineTypes(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, types)
}

// ListMechanics lists users eligible as assignees and performers.
// GET /api/v1/users/mechanics
func (h *MasterDataHandler) ListMechanics(c *gin.Context) {
	users, err := h.masterSvc.ListMechanics(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, users)
}

// ── machines ──

// CreateMachine registers a machine.
// POST /api/v1/machines
func (h *MasterDataHandler) CreateMachine(c *gin.Context) {
	var req dto.CreateMachineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request parameters")
		return
	}

	machine, err := h.masterSvc.CreateMachine(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrMachineTypeNotFound) {
			response.NotFound(c, 12001, "machine type not found")
			return
		}
		response.InternalError(c)
		return
	}
	response.Created(c, machine)
}

// GetMachine fetches one machine.
// GET /api/v1/machines/:id
func (h *MasterDataHandler) GetMachine(c *gin.Context) {
	machine, err := h.masterSvc.GetMachine(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrMachineNotFound) {
			response.NotFound(c, 12002, "machine not found")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, machine)
}

// ListMachines lists machines with optional filters.
// GET /api/v1/machines?plant_id=&line_id=&machine_type_id=&code=
func (h *MasterDataHandler) ListMachines(c *gin.Context) {
	filter := repository.MachineFilter{
		PlantID:       c.Query("plant_id"),
		LineID:        c.Query("line_id"),
		MachineTypeID: c.Query("machine_type_id"),
		Code:          c.Query("code"),
	}

	machines, err := h.masterSvc.ListMachines(c.Request.Context(), filter)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, machines)
}

// UpdateMachine patches a machine.
// PUT /api/v1/machines/:id
func (h *MasterDataHandler) UpdateMachine(c *gin.Context) {
	var req dto.UpdateMachineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request parameters")
		return
	}

	machine, err := h.masterSvc.UpdateMachine(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, service.ErrMachineNotFound) {
			response.NotFound(c, 12002, "machine not found")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, machine)
}

// DeleteMachine removes a machine.
// DELETE /api/v1/machines/:id
func (h *MasterDataHandler) DeleteMachine(c *gin.Context) {
	if err := h.masterSvc.DeleteMachine(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrMachineNotFound) {
			response.NotFound(c, 12002, "machine not found")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// ── standards ──

// CreateStandard adds a measurement standard.
// POST /api/v1/standards
func (h *MasterDataHandler) CreateStandard(c *gin.Context) {
	var req dto.CreateStandardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request parameters")
		return
	}

	standard, err := h.masterSvc.CreateStandard(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.Created(c, standard)
}

// ListStandards lists active standards.
// GET /api/v1/standards
func (h *MasterDataHandler) ListStandards(c *gin.Context) {
	standards, err := h.masterSvc.ListStandards(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, standards)
}

// ── maintenance points ──

// CreateMaintenancePoint adds a task template to a machine-type catalog.
// POST /api/v1/maintenance-points
func (h *MasterDataHandler) CreateMaintenancePoint(c *gin.Context) {
	var req dto.CreateMaintenancePointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request parameters")
		return
	}

	point, err := h.masterSvc.CreateMaintenancePoint(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrMachineTypeNotFound) {
			response.NotFound(c, 12001, "machine type not found")
			return
		}
		response.InternalError(c)
		return
	}
	response.Created(c, point)
}

// ListMaintenancePoints lists a machine type's points for one category.
// GET /api/v1/maintenance-points?machine_type_id=&category=
func (h *MasterDataHandler) ListMaintenancePoints(c *gin.Context) {
	machineTypeID := c.Query("machine_type_id")
	category := c.Query("category")
	if machineTypeID == "" || category == "" {
		response.BadRequest(c, 10001, "machine_type_id and category are required")
		return
	}

	points, err := h.masterSvc.ListMaintenancePoints(c.Request.Context(), machineTypeID, category)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, points)
}

// DeleteMaintenancePoint removes a task template.
// DELETE /api/v1/maintenance-points/:id
func (h *MasterDataHandler) DeleteMaintenancePoint(c *gin.Context) {
	if err := h.masterSvc.DeleteMaintenancePoint(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrPointNotFound) {
			response.NotFound(c, 12003, "maintenance point not found")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}
