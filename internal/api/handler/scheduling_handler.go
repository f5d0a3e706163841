package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/cmms120187/pratamair/internal/dto"
	"github.com/cmms120187/pratamair/internal/repository"
	"github.com/cmms120187/pratamair/internal/service"
	pkgerrors "github.com/cmms120187/pratamair/pkg/errors"
	"github.com/cmms120187/pratamair/pkg/response"
)

// SchedulingHandler serves schedule generation and the scheduling board.
type SchedulingHandler struct {
	schedulingSvc service.SchedulingService
}

// NewSchedulingHandler creates the SchedulingHandler.
func NewSchedulingHandler(schedulingSvc service.SchedulingService) *SchedulingHandler {
	return &SchedulingHandler{schedulingSvc: schedulingSvc}
}

// Generate expands a machine's point catalog into schedule instances.
// POST /api/v1/schedules/generate
func (h *SchedulingHandler) Generate(c *gin.Context) {
	var req dto.GenerateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request parameters")
		return
	}

	result, err := h.schedulingSvc.Generate(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMachineNotFound):
			response.NotFound(c, 12002, "machine not found")
		case errors.Is(err, service.ErrStandardNotFound):
			response.NotFound(c, 12004, "measurement standard not found")
		case errors.Is(err, service.ErrNoMaintenancePoints):
			response.BadRequest(c, 13001, "no maintenance points defined for this machine type and category")
		case errors.Is(err, service.ErrSchedulesExist):
			response.Conflict(c, 13002, "schedules already exist for this range; use force to regenerate")
		case errors.Is(err, service.ErrInvalidDate):
			response.BadRequest(c, 10001, "dates must use the YYYY-MM-DD format")
		default:
			response.InternalError(c)
		}
		return
	}
	response.Created(c, result)
}

// Board lists the period's schedules grouped by machine and date.
// GET /api/v1/schedules
func (h *SchedulingHandler) Board(c *gin.Context) {
	period, ok := bindPeriod(c)
	if !ok {
		return
	}

	filter := repository.ScheduleFilter{
		Status:        c.Query("status"),
		MachineID:     c.Query("machine_id"),
		PlantID:       c.Query("plant_id"),
		LineID:        c.Query("line_id"),
		MachineTypeID: c.Query("machine_type_id"),
		MachineCode:   c.Query("machine_code"),
	}

	board, err := h.schedulingSvc.Board(c.Request.Context(), period, filter)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, board)
}

// Get fetches one schedule instance with its executions.
// GET /api/v1/schedules/:id
func (h *SchedulingHandler) Get(c *gin.Context) {
	schedule, err := h.schedulingSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrScheduleNotFound) {
			response.NotFound(c, 13003, "schedule not found")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, schedule)
}

// Update edits one schedule instance under optimistic locking.
// PUT /api/v1/schedules/:id
func (h *SchedulingHandler) Update(c *gin.Context) {
	var req dto.UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request parameters")
		return
	}

	schedule, err := h.schedulingSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrScheduleNotFound):
			response.NotFound(c, 13003, "schedule not found")
		case errors.Is(err, service.ErrStandardNotFound):
			response.NotFound(c, 12004, "measurement standard not found")
		case errors.Is(err, service.ErrInvalidDate):
			response.BadRequest(c, 10001, "dates must use the YYYY-MM-DD format")
		case errors.Is(err, pkgerrors.ErrOptimisticLock):
			response.Conflict(c, 13004, "schedule was modified concurrently, reload and retry")
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, schedule)
}

// Delete removes one schedule instance.
// DELETE /api/v1/schedules/:id
func (h *SchedulingHandler) Delete(c *gin.Context) {
	if err := h.schedulingSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrScheduleNotFound) {
			response.NotFound(c, 13003, "schedule not found")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}
