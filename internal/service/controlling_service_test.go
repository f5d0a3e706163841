package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/cmms120187/pratamair/internal/dto"
	"github.com/cmms120187/pratamair/internal/model"
	"github.com/cmms120187/pratamair/internal/repository"
)

// ── test helpers ──

func setupTestControllingService() (ControllingService, *repository.Repository) {
	repo := newMockRepository()
	svc := NewControllingService(repo, zap.NewNop())
	return svc, repo
}

func seedDashboardSchedule(repo *repository.Repository, id, machineID, code string, start time.Time, executions ...model.MaintenanceExecution) {
	scheduleRepo := repo.Schedule.(*mockScheduleRepo)
	scheduleRepo.schedules[id] = &model.MaintenanceSchedule{
		ScheduleID: id,
		MachineID:  machineID,
		Title:      "check " + id,
		Category:   model.CategoryPreventive,
		StartDate:  start,
		Status:     model.ScheduleActive,
		Version:    1,
		Machine: &model.Machine{
			MachineID: machineID,
			Code:      code,
			Name:      "Machine " + code,
		},
		Executions: executions,
	}
}

// ── Dashboard ──

func TestControllingService_Dashboard_MachineCompliance(t *testing.T) {
	svc, repo := setupTestControllingService()
	day1 := date(2025, time.June, 2)
	day2 := date(2025, time.June, 9)
	done := execAt(model.ExecutionCompleted, day1)

	// m1: two days, one fully completed
	seedDashboardSchedule(repo, "s1", "m1", "PRESS-01", day1, done)
	seedDashboardSchedule(repo, "s2", "m1", "PRESS-01", day2)
	// m2: one untouched past day
	seedDashboardSchedule(repo, "s3", "m2", "PRESS-02", day1)

	resp, err := svc.Dashboard(context.Background(), MonthPeriod(2025, time.June), date(2025, time.June, 15), repository.ScheduleFilter{})
	if err != nil {
		t.Fatalf("Dashboard should succeed: %v", err)
	}

	if len(resp.Machines) != 2 {
		t.Fatalf("expected 2 machines, got %d", len(resp.Machines))
	}

	m1 := resp.Machines[0]
	if m1.Machine.Code != "PRESS-01" {
		t.Fatalf("expected machines sorted by code, first is %s", m1.Machine.Code)
	}
	if m1.TotalSchedules != 2 || m1.CompletedSchedules != 1 {
		t.Errorf("m1: expected 2 total / 1 completed, got %d/%d", m1.TotalSchedules, m1.CompletedSchedules)
	}
	if m1.OverdueSchedules != 1 {
		t.Errorf("m1: expected the untouched past instance overdue, got %d", m1.OverdueSchedules)
	}
	if m1.TotalDayGroups != 2 || m1.CompletedDayGroups != 1 {
		t.Errorf("m1: expected 2 day groups / 1 completed, got %d/%d", m1.TotalDayGroups, m1.CompletedDayGroups)
	}
	if m1.CompletionPercentage != 50 {
		t.Errorf("m1: expected 50%%, got %.1f", m1.CompletionPercentage)
	}
	if len(m1.ScheduleDates) != 2 || m1.ScheduleDates[0] != "2025-06-02" {
		t.Errorf("m1: expected sorted schedule dates, got %v", m1.ScheduleDates)
	}
}

func TestControllingService_Dashboard_Stats(t *testing.T) {
	svc, repo := setupTestControllingService()
	today := date(2025, time.June, 15)
	past := date(2025, time.June, 10)

	seedDashboardSchedule(repo, "s1", "m1", "A", past, execAt(model.ExecutionCompleted, past))
	seedDashboardSchedule(repo, "s2", "m2", "B", past, execAt(model.ExecutionPending, past))
	seedDashboardSchedule(repo, "s3", "m3", "C", past)

	resp, err := svc.Dashboard(context.Background(), MonthPeriod(2025, time.June), today, repository.ScheduleFilter{})
	if err != nil {
		t.Fatalf("Dashboard should succeed: %v", err)
	}

	if resp.Stats.Pending != 1 {
		t.Errorf("expected 1 pending execution row, got %d", resp.Stats.Pending)
	}
	if resp.Stats.Completed != 1 {
		t.Errorf("expected 1 fully completed machine, got %d", resp.Stats.Completed)
	}
	// m2's latest is pending and m3 is untouched: both count as plan.
	if resp.Stats.Plan != 2 {
		t.Errorf("expected 2 plan machines, got %d", resp.Stats.Plan)
	}
	// Overdue is instance-level: any past instance whose latest execution
	// is not completed counts, so s2 and s3 both do.
	if resp.Stats.Overdue != 2 {
		t.Errorf("expected 2 overdue instances, got %d", resp.Stats.Overdue)
	}
	if resp.PeriodType != PeriodMonth || resp.Month != 6 || resp.Year != 2025 {
		t.Errorf("expected period echoed back, got %s %d-%d", resp.PeriodType, resp.Year, resp.Month)
	}
}

// ── BatchUpsertExecutions ──

func seedScheduleWithStandard(repo *repository.Repository, id string) {
	minV, maxV := 2.0, 8.0
	scheduleRepo := repo.Schedule.(*mockScheduleRepo)
	scheduleRepo.schedules[id] = &model.MaintenanceSchedule{
		ScheduleID: id,
		MachineID:  "mac-001",
		StandardID: "std-001",
		StartDate:  date(2025, time.June, 2),
		Status:     model.ScheduleActive,
		Version:    1,
		Standard: &model.Standard{
			StandardID: "std-001",
			Name:       "Oil pressure",
			Unit:       "bar",
			MinValue:   &minV,
			MaxValue:   &maxV,
		},
	}
}

func TestControllingService_BatchUpsert_CreatesAndClassifies(t *testing.T) {
	svc, repo := setupTestControllingService()
	seedScheduleWithStandard(repo, "sch-1")
	seedScheduleWithStandard(repo, "sch-2")

	performer := "usr-1"
	low, mid := 1.5, 5.0
	req := &dto.BatchExecutionRequest{
		MachineID:     "mac-001",
		ScheduledDate: "2025-06-02",
		PerformedBy:   &performer,
		Executions: []dto.BatchExecutionItem{
			{ScheduleID: "sch-1", Status: model.ExecutionCompleted, MeasuredValue: &low},
			{ScheduleID: "sch-2", Status: model.ExecutionCompleted, MeasuredValue: &mid},
		},
	}

	resp, err := svc.BatchUpsertExecutions(context.Background(), req)
	if err != nil {
		t.Fatalf("BatchUpsertExecutions should succeed: %v", err)
	}
	if resp.ExecutionsWritten != 2 {
		t.Errorf("expected 2 rows written, got %d", resp.ExecutionsWritten)
	}

	executionRepo := repo.Execution.(*mockExecutionRepo)
	statuses := make(map[string]string)
	for _, e := range executionRepo.executions {
		if e.MeasurementStatus != nil {
			statuses[e.ScheduleID] = *e.MeasurementStatus
		}
		if e.PerformedBy == nil || *e.PerformedBy != "usr-1" {
			t.Errorf("expected performer usr-1 on execution for %s", e.ScheduleID)
		}
	}
	if statuses["sch-1"] != model.MeasurementBelowStandard {
		t.Errorf("expected 1.5 below standard, got %s", statuses["sch-1"])
	}
	if statuses["sch-2"] != model.MeasurementWithinStandard {
		t.Errorf("expected 5.0 within standard, got %s", statuses["sch-2"])
	}
}

func TestControllingService_BatchUpsert_UpdateKeepsPerformer(t *testing.T) {
	svc, repo := setupTestControllingService()
	seedScheduleWithStandard(repo, "sch-1")

	original := "usr-original"
	executionRepo := repo.Execution.(*mockExecutionRepo)
	executionRepo.executions["exe-1"] = &model.MaintenanceExecution{
		ExecutionID: "exe-1",
		ScheduleID:  "sch-1",
		Status:      model.ExecutionPending,
		PerformedBy: &original,
	}

	executionID := "exe-1"
	req := &dto.BatchExecutionRequest{
		MachineID:     "mac-001",
		ScheduledDate: "2025-06-02",
		Executions: []dto.BatchExecutionItem{
			{ScheduleID: "sch-1", ExecutionID: &executionID, Status: model.ExecutionCompleted},
		},
	}

	if _, err := svc.BatchUpsertExecutions(context.Background(), req); err != nil {
		t.Fatalf("BatchUpsertExecutions should succeed: %v", err)
	}

	updated := executionRepo.executions["exe-1"]
	if updated.Status != model.ExecutionCompleted {
		t.Errorf("expected status updated, got %s", updated.Status)
	}
	if updated.PerformedBy == nil || *updated.PerformedBy != "usr-original" {
		t.Error("expected the existing performer kept when the request names none")
	}
}

func TestControllingService_BatchUpsert_ScheduleMismatch(t *testing.T) {
	svc, repo := setupTestControllingService()
	seedScheduleWithStandard(repo, "sch-1")
	seedScheduleWithStandard(repo, "sch-2")

	executionRepo := repo.Execution.(*mockExecutionRepo)
	executionRepo.executions["exe-1"] = &model.MaintenanceExecution{
		ExecutionID: "exe-1",
		ScheduleID:  "sch-2",
		Status:      model.ExecutionPending,
	}

	executionID := "exe-1"
	req := &dto.BatchExecutionRequest{
		MachineID:     "mac-001",
		ScheduledDate: "2025-06-02",
		Executions: []dto.BatchExecutionItem{
			{ScheduleID: "sch-1", ExecutionID: &executionID, Status: model.ExecutionCompleted},
		},
	}

	_, err := svc.BatchUpsertExecutions(context.Background(), req)
	if !errors.Is(err, ErrExecutionScheduleMismatch) {
		t.Errorf("expected ErrExecutionScheduleMismatch, got: %v", err)
	}
}

func TestControllingService_BatchUpsert_UnknownSchedule(t *testing.T) {
	svc, _ := setupTestControllingService()

	req := &dto.BatchExecutionRequest{
		MachineID:     "mac-001",
		ScheduledDate: "2025-06-02",
		Executions: []dto.BatchExecutionItem{
			{ScheduleID: "missing", Status: model.ExecutionCompleted},
		},
	}

	_, err := svc.BatchUpsertExecutions(context.Background(), req)
	if !errors.Is(err, ErrScheduleNotFound) {
		t.Errorf("expected ErrScheduleNotFound, got: %v", err)
	}
}

// ── UpdateExecution / DeleteExecution ──

func TestControllingService_UpdateExecution_NotFound(t *testing.T) {
	svc, _ := setupTestControllingService()

	status := model.ExecutionCompleted
	_, err := svc.UpdateExecution(context.Background(), "missing", &dto.UpdateExecutionRequest{Status: &status})
	if !errors.Is(err, ErrExecutionNotFound) {
		t.Errorf("expected ErrExecutionNotFound, got: %v", err)
	}
}

func TestControllingService_DeleteExecution(t *testing.T) {
	svc, repo := setupTestControllingService()

	executionRepo := repo.Execution.(*mockExecutionRepo)
	executionRepo.executions["exe-1"] = &model.MaintenanceExecution{
		ExecutionID: "exe-1",
		ScheduleID:  "sch-1",
		Status:      model.ExecutionPending,
	}

	if err := svc.DeleteExecution(context.Background(), "exe-1"); err != nil {
		t.Fatalf("DeleteExecution should succeed: %v", err)
	}
	if err := svc.DeleteExecution(context.Background(), "exe-1"); !errors.Is(err, ErrExecutionNotFound) {
		t.Errorf("expected ErrExecutionNotFound after deletion, got: %v", err)
	}
}
