package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/cmms120187/pratamair/config"
	"github.com/cmms120187/pratamair/internal/repository"
)

var (
	ErrExportNoSchedules  = errors.New("no schedules found for the requested export")
	ErrExportGenerateFail = errors.New("generating the export file failed")
)

// ExportService renders controlling data into downloadable files. Exports
// are returned as a buffer plus a suggested filename; the handler sets
// the response headers and streams the bytes.
type ExportService interface {
	// ControllingXLSX renders the compliance dashboard for a period as an
	// Excel workbook.
	ControllingXLSX(ctx context.Context, period Period, today time.Time, filter repository.ScheduleFilter) (*bytes.Buffer, string, error)
	// MachineCalendarICS renders one machine's schedule instances in a
	// period as an iCalendar feed.
	MachineCalendarICS(ctx context.Context, machineID string, period Period) (*bytes.Buffer, string, error)
}

type exportService struct {
	cfg         *config.Config
	repo        *repository.Repository
	controlling ControllingService
	logger      *zap.Logger
}

// NewExportService creates the ExportService.
func NewExportService(cfg *config.Config, repo *repository.Repository, controlling ControllingService, logger *zap.Logger) ExportService {
	return &exportService{cfg: cfg, repo: repo, controlling: controlling, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ControllingXLSX — compliance dashboard as Excel
// ═══════════════════════════════════════════════════════════
//
// Layout:
//   - title row with company name and period
//   - KPI block (pending / in progress / completed / plan / overdue)
//   - one row per machine with its compliance counters and percentage

func (s *exportService) ControllingXLSX(ctx context.Context, period Period, today time.Time, filter repository.ScheduleFilter) (*bytes.Buffer, string, error) {
	dashboard, err := s.controlling.Dashboard(ctx, period, today, filter)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Controlling"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 14)
	f.SetColWidth(sheetName, "B", "B", 28)
	f.SetColWidth(sheetName, "C", "H", 12)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	periodLabel := fmt.Sprintf("%d", dashboard.Year)
	if dashboard.PeriodType == PeriodMonth {
		periodLabel = fmt.Sprintf("%04d-%02d", dashboard.Year, dashboard.Month)
	}

	f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s — Maintenance Controlling %s", s.cfg.Export.CompanyName, periodLabel))
	f.MergeCell(sheetName, "A1", "H1")
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// KPI block
	row := 3
	kpis := []struct {
		label string
		value int
	}{
		{"Pending", dashboard.Stats.Pending},
		{"In Progress", dashboard.Stats.InProgress},
		{"Completed", dashboard.Stats.Completed},
		{"Plan", dashboard.Stats.Plan},
		{"Overdue", dashboard.Stats.Overdue},
	}
	for _, kpi := range kpis {
		f.SetCellValue(sheetName, cell("A", row), kpi.label)
		f.SetCellValue(sheetName, cell("B", row), kpi.value)
		row++
	}

	// machine compliance table
	row++
	headers := []string{"Code", "Machine", "Total", "Completed", "Pending", "Overdue", "Day Groups", "Completion %"}
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetCellValue(sheetName, cell(col, row), h)
		f.SetCellStyle(sheetName, cell(col, row), cell(col, row), headerStyle)
	}
	row++

	for _, m := range dashboard.Machines {
		f.SetCellValue(sheetName, cell("A", row), m.Machine.Code)
		f.SetCellValue(sheetName, cell("B", row), m.Machine.Name)
		f.SetCellValue(sheetName, cell("C", row), m.TotalSchedules)
		f.SetCellValue(sheetName, cell("D", row), m.CompletedSchedules)
		f.SetCellValue(sheetName, cell("E", row), m.PendingSchedules)
		f.SetCellValue(sheetName, cell("F", row), m.OverdueSchedules)
		f.SetCellValue(sheetName, cell("G", row), fmt.Sprintf("%d/%d", m.CompletedDayGroups, m.TotalDayGroups))
		f.SetCellValue(sheetName, cell("H", row), m.CompletionPercentage)
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("write excel failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("controlling_%s.xlsx", periodLabel)
	return buf, filename, nil
}

// MachineCalendarICS emits one VEVENT per schedule instance. Instances
// with a preferred time become timed events sized by their estimated
// duration; the rest are all-day events.
func (s *exportService) MachineCalendarICS(ctx context.Context, machineID string, period Period) (*bytes.Buffer, string, error) {
	machine, err := s.repo.Machine.GetByID(ctx, machineID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrMachineNotFound
		}
		return nil, "", err
	}

	schedules, err := s.repo.Schedule.List(ctx, repository.ScheduleFilter{
		MachineID:   machineID,
		PeriodStart: period.Start,
		PeriodEnd:   period.End,
	})
	if err != nil {
		s.logger.Error("list schedules for calendar failed", zap.Error(err), zap.String("machine_id", machineID))
		return nil, "", err
	}
	if len(schedules) == 0 {
		return nil, "", ErrExportNoSchedules
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//" + s.cfg.Export.CompanyName + "//pratamair//EN")
	cal.SetName(fmt.Sprintf("%s maintenance", machine.Name))

	for i := range schedules {
		sch := &schedules[i]

		event := cal.AddEvent(sch.ScheduleID + "@pratamair")
		event.SetCreatedTime(sch.CreatedAt)
		event.SetSummary(fmt.Sprintf("[%s] %s — %s", sch.Category, machine.Code, sch.Title))
		if sch.Description != "" {
			event.SetDescription(sch.Description)
		}

		if sch.PreferredTime != nil {
			start, tErr := time.Parse("15:04", *sch.PreferredTime)
			if tErr == nil {
				d := sch.StartDate
				startAt := time.Date(d.Year(), d.Month(), d.Day(), start.Hour(), start.Minute(), 0, 0, d.Location())
				duration := 60
				if sch.EstimatedDuration != nil {
					duration = *sch.EstimatedDuration
				}
				event.SetStartAt(startAt)
				event.SetEndAt(startAt.Add(time.Duration(duration) * time.Minute))
				continue
			}
		}
		event.SetAllDayStartAt(sch.StartDate)
		event.SetAllDayEndAt(sch.StartDate.AddDate(0, 0, 1))
	}

	buf := bytes.NewBufferString(cal.Serialize())
	filename := fmt.Sprintf("%s_maintenance.ics", machine.Code)
	return buf, filename, nil
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
