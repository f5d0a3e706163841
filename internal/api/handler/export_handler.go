package handler

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cmms120187/pratamair/internal/repository"
	"github.com/cmms120187/pratamair/internal/service"
	"github.com/cmms120187/pratamair/pkg/response"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	icsContentType  = "text/calendar; charset=utf-8"
)

// ExportHandler serves file downloads of controlling data.
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler creates the ExportHandler.
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ControllingXLSX downloads the compliance dashboard as Excel.
// GET /api/v1/export/controlling
func (h *ExportHandler) ControllingXLSX(c *gin.Context) {
	period, ok := bindPeriod(c)
	if !ok {
		return
	}

	filter := repository.ScheduleFilter{
		MachineID:     c.Query("machine_id"),
		PlantID:       c.Query("plant_id"),
		LineID:        c.Query("line_id"),
		MachineTypeID: c.Query("machine_type_id"),
	}

	buf, filename, err := h.exportSvc.ControllingXLSX(c.Request.Context(), period, time.Now(), filter)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	writeDownload(c, filename, xlsxContentType, buf.Bytes())
}

// MachineCalendarICS downloads one machine's maintenance calendar.
// GET /api/v1/export/machines/:id/calendar
func (h *ExportHandler) MachineCalendarICS(c *gin.Context) {
	period, ok := bindPeriod(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.MachineCalendarICS(c.Request.Context(), c.Param("id"), period)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	writeDownload(c, filename, icsContentType, buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMachineNotFound):
		response.NotFound(c, 12002, "machine not found")
	case errors.Is(err, service.ErrExportNoSchedules):
		response.NotFound(c, 15001, "no schedules found for the requested export")
	default:
		response.InternalError(c)
	}
}

func writeDownload(c *gin.Context, filename, contentType string, data []byte) {
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, contentType, data)
}
