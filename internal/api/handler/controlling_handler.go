package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cmms120187/pratamair/internal/dto"
	"github.com/cmms120187/pratamair/internal/repository"
	"github.com/cmms120187/pratamair/internal/service"
	"github.com/cmms120187/pratamair/pkg/response"
)

// ControllingHandler serves the compliance dashboard and execution
// recording endpoints.
type ControllingHandler struct {
	controllingSvc service.ControllingService
}

// NewControllingHandler creates the ControllingHandler.
func NewControllingHandler(controllingSvc service.ControllingService) *ControllingHandler {
	return &ControllingHandler{controllingSvc: controllingSvc}
}

// Dashboard returns the period's KPI counters and per-machine compliance.
// GET /api/v1/controlling
func (h *ControllingHandler) Dashboard(c *gin.Context) {
	period, ok := bindPeriod(c)
	if !ok {
		return
	}

	filter := repository.ScheduleFilter{
		MachineID:     c.Query("machine_id"),
		PlantID:       c.Query("plant_id"),
		LineID:        c.Query("line_id"),
		MachineTypeID: c.Query("machine_type_id"),
		MachineCode:   c.Query("machine_code"),
	}

	dashboard, err := h.controllingSvc.Dashboard(c.Request.Context(), period, time.Now(), filter)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, dashboard)
}

// BatchUpsertExecutions writes the controlling form for one machine-day.
// POST /api/v1/executions/batch
func (h *ControllingHandler) BatchUpsertExecutions(c *gin.Context) {
	var req dto.BatchExecutionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request parameters")
		return
	}

	result, err := h.controllingSvc.BatchUpsertExecutions(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrScheduleNotFound):
			response.NotFound(c, 13003, "schedule not found")
		case errors.Is(err, service.ErrExecutionNotFound):
			response.NotFound(c, 14001, "execution not found")
		case errors.Is(err, service.ErrExecutionScheduleMismatch):
			response.BadRequest(c, 14002, "execution does not belong to the given schedule")
		case errors.Is(err, service.ErrInvalidDate):
			response.BadRequest(c, 10001, "dates must use the YYYY-MM-DD format")
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, result)
}

// GetExecution fetches one execution.
// GET /api/v1/executions/:id
func (h *ControllingHandler) GetExecution(c *gin.Context) {
	execution, err := h.controllingSvc.GetExecution(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrExecutionNotFound) {
			response.NotFound(c, 14001, "execution not found")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, execution)
}

// UpdateExecution edits one execution.
// PUT /api/v1/executions/:id
func (h *ControllingHandler) UpdateExecution(c *gin.Context) {
	var req dto.UpdateExecutionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request parameters")
		return
	}

	execution, err := h.controllingSvc.UpdateExecution(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExecutionNotFound):
			response.NotFound(c, 14001, "execution not found")
		case errors.Is(err, service.ErrInvalidDate):
			response.BadRequest(c, 10001, "timestamps must use the RFC 3339 format")
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, execution)
}

// DeleteExecution removes one execution.
// DELETE /api/v1/executions/:id
func (h *ControllingHandler) DeleteExecution(c *gin.Context) {
	if err := h.controllingSvc.DeleteExecution(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrExecutionNotFound) {
			response.NotFound(c, 14001, "execution not found")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}
