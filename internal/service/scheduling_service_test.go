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
	pkgerrors "github.com/cmms120187/pratamair/pkg/errors"
)

// ── test helpers ──

func setupTestSchedulingService() (SchedulingService, *repository.Repository) {
	repo := newMockRepository()
	svc := NewSchedulingService(repo, zap.NewNop())
	return svc, repo
}

func seedMachineCatalog(repo *repository.Repository) {
	machineRepo := repo.Machine.(*mockMachineRepo)
	machineRepo.machines["mac-001"] = &model.Machine{
		MachineID:     "mac-001",
		Code:          "PRESS-01",
		Name:          "Hydraulic Press 01",
		MachineTypeID: "mt-press",
		Status:        model.MachineActive,
	}

	standardRepo := repo.Standard.(*mockStandardRepo)
	standardRepo.standards["std-001"] = &model.Standard{
		StandardID: "std-001",
		Name:       "Oil pressure",
		Unit:       "bar",
		Status:     "active",
	}
}

func seedPoints(repo *repository.Repository, points ...model.MaintenancePoint) {
	pointRepo := repo.MaintenancePoint.(*mockPointRepo)
	for i := range points {
		pointRepo.points[points[i].MaintenancePointID] = &points[i]
	}
}

func pressPoint(name string, sequence int, frequencyType string) model.MaintenancePoint {
	return model.MaintenancePoint{
		MaintenancePointID: "pt-" + name,
		MachineTypeID:      "mt-press",
		Category:           model.CategoryPreventive,
		Name:               name,
		Sequence:           sequence,
		FrequencyType:      frequencyType,
		FrequencyValue:     1,
	}
}

func generateRequest() *dto.GenerateScheduleRequest {
	return &dto.GenerateScheduleRequest{
		MachineID:  "mac-001",
		Category:   model.CategoryPreventive,
		StandardID: "std-001",
		StartDate:  "2025-01-15",
		Status:     model.ScheduleActive,
	}
}

// ── Generate ──

func TestSchedulingService_Generate_MonthlyDefaultHorizon(t *testing.T) {
	svc, repo := setupTestSchedulingService()
	seedMachineCatalog(repo)
	seedPoints(repo, pressPoint("check oil", 1, model.FrequencyMonthly))

	resp, err := svc.Generate(context.Background(), generateRequest())
	if err != nil {
		t.Fatalf("Generate should succeed: %v", err)
	}
	if resp.PointsProcessed != 1 {
		t.Errorf("expected 1 point processed, got %d", resp.PointsProcessed)
	}
	if resp.InstancesCreated != 12 {
		t.Errorf("expected 12 instances through December, got %d", resp.InstancesCreated)
	}
	if resp.Capped {
		t.Error("expected no cap")
	}

	scheduleRepo := repo.Schedule.(*mockScheduleRepo)
	if len(scheduleRepo.schedules) != 12 {
		t.Errorf("expected 12 persisted instances, got %d", len(scheduleRepo.schedules))
	}
}

func TestSchedulingService_Generate_NoPoints(t *testing.T) {
	svc, repo := setupTestSchedulingService()
	seedMachineCatalog(repo)

	_, err := svc.Generate(context.Background(), generateRequest())
	if !errors.Is(err, ErrNoMaintenancePoints) {
		t.Fatalf("expected ErrNoMaintenancePoints, got: %v", err)
	}

	scheduleRepo := repo.Schedule.(*mockScheduleRepo)
	if len(scheduleRepo.schedules) != 0 {
		t.Errorf("expected no partial writes, got %d instances", len(scheduleRepo.schedules))
	}
}

func TestSchedulingService_Generate_MachineNotFound(t *testing.T) {
	svc, _ := setupTestSchedulingService()

	_, err := svc.Generate(context.Background(), generateRequest())
	if !errors.Is(err, ErrMachineNotFound) {
		t.Errorf("expected ErrMachineNotFound, got: %v", err)
	}
}

func TestSchedulingService_Generate_InvalidDate(t *testing.T) {
	svc, repo := setupTestSchedulingService()
	seedMachineCatalog(repo)

	req := generateRequest()
	req.StartDate = "15-01-2025"
	_, err := svc.Generate(context.Background(), req)
	if !errors.Is(err, ErrInvalidDate) {
		t.Errorf("expected ErrInvalidDate, got: %v", err)
	}
}

func TestSchedulingService_Generate_RegenerationGuard(t *testing.T) {
	svc, repo := setupTestSchedulingService()
	seedMachineCatalog(repo)
	seedPoints(repo, pressPoint("check oil", 1, model.FrequencyMonthly))

	if _, err := svc.Generate(context.Background(), generateRequest()); err != nil {
		t.Fatalf("first Generate should succeed: %v", err)
	}

	_, err := svc.Generate(context.Background(), generateRequest())
	if !errors.Is(err, ErrSchedulesExist) {
		t.Fatalf("expected ErrSchedulesExist on regeneration, got: %v", err)
	}

	forced := generateRequest()
	forced.Force = true
	resp, err := svc.Generate(context.Background(), forced)
	if err != nil {
		t.Fatalf("forced Generate should succeed: %v", err)
	}
	if resp.InstancesCreated != 12 {
		t.Errorf("expected 12 more instances when forced, got %d", resp.InstancesCreated)
	}
}

func TestSchedulingService_Generate_CappedCarriesWarning(t *testing.T) {
	svc, repo := setupTestSchedulingService()
	seedMachineCatalog(repo)

	stuck := pressPoint("stuck", 1, model.FrequencyMonthly)
	stuck.FrequencyValue = 0
	seedPoints(repo, stuck)

	resp, err := svc.Generate(context.Background(), generateRequest())
	if err != nil {
		t.Fatalf("Generate should succeed even when capped: %v", err)
	}
	if !resp.Capped {
		t.Fatal("expected the cap to trip")
	}
	if resp.InstancesCreated != GenerationCap {
		t.Errorf("expected %d instances at the cap, got %d", GenerationCap, resp.InstancesCreated)
	}
	if resp.Warning == "" {
		t.Error("expected a warning message when capped")
	}
}

// ── Update / Delete ──

func seedSchedule(repo *repository.Repository, id string, start time.Time) *model.MaintenanceSchedule {
	scheduleRepo := repo.Schedule.(*mockScheduleRepo)
	sch := &model.MaintenanceSchedule{
		ScheduleID: id,
		MachineID:  "mac-001",
		StandardID: "std-001",
		Title:      "check oil",
		Category:   model.CategoryPreventive,
		StartDate:  start,
		EndDate:    date(2025, time.December, 31),
		Status:     model.ScheduleActive,
		Version:    1,
		Machine: &model.Machine{
			MachineID: "mac-001",
			Code:      "PRESS-01",
			Name:      "Hydraulic Press 01",
		},
	}
	scheduleRepo.schedules[id] = sch
	return sch
}

func TestSchedulingService_Update_StaleVersion(t *testing.T) {
	svc, repo := setupTestSchedulingService()
	seedMachineCatalog(repo)
	seedSchedule(repo, "sch-1", date(2025, time.March, 1))

	status := model.ScheduleInactive
	req := &dto.UpdateScheduleRequest{Status: &status, Version: 1}
	if _, err := svc.Update(context.Background(), "sch-1", req); err != nil {
		t.Fatalf("first update should succeed: %v", err)
	}

	// Same stale version again: the row moved on to version 2.
	_, err := svc.Update(context.Background(), "sch-1", req)
	if !errors.Is(err, pkgerrors.ErrOptimisticLock) {
		t.Errorf("expected ErrOptimisticLock on a stale version, got: %v", err)
	}
}

func TestSchedulingService_Update_NotFound(t *testing.T) {
	svc, _ := setupTestSchedulingService()

	req := &dto.UpdateScheduleRequest{Version: 1}
	_, err := svc.Update(context.Background(), "missing", req)
	if !errors.Is(err, ErrScheduleNotFound) {
		t.Errorf("expected ErrScheduleNotFound, got: %v", err)
	}
}

func TestSchedulingService_Delete(t *testing.T) {
	svc, repo := setupTestSchedulingService()
	seedSchedule(repo, "sch-1", date(2025, time.March, 1))

	if err := svc.Delete(context.Background(), "sch-1"); err != nil {
		t.Fatalf("Delete should succeed: %v", err)
	}
	if err := svc.Delete(context.Background(), "sch-1"); !errors.Is(err, ErrScheduleNotFound) {
		t.Errorf("expected ErrScheduleNotFound for a deleted schedule, got: %v", err)
	}
}

// ── Board ──

func TestSchedulingService_Board_GroupsByMachineDay(t *testing.T) {
	svc, repo := setupTestSchedulingService()
	day := date(2025, time.March, 1)
	seedSchedule(repo, "sch-1", day)
	seedSchedule(repo, "sch-2", day)
	seedSchedule(repo, "sch-3", date(2025, time.March, 2))

	resp, err := svc.Board(context.Background(), MonthPeriod(2025, time.March), repository.ScheduleFilter{})
	if err != nil {
		t.Fatalf("Board should succeed: %v", err)
	}
	if len(resp.Groups) != 2 {
		t.Fatalf("expected 2 machine-day groups, got %d", len(resp.Groups))
	}
	if resp.Groups[0].Date != "2025-03-01" || len(resp.Groups[0].Entries) != 2 {
		t.Errorf("expected the first group 2025-03-01 with 2 entries, got %s with %d",
			resp.Groups[0].Date, len(resp.Groups[0].Entries))
	}
	for _, entry := range resp.Groups[0].Entries {
		if entry.ExecutionStatus != string(DispositionPending) {
			t.Errorf("expected untouched entries to render as pending, got %s", entry.ExecutionStatus)
		}
	}
}

func TestSchedulingService_Board_PeriodFilter(t *testing.T) {
	svc, repo := setupTestSchedulingService()
	seedSchedule(repo, "sch-1", date(2025, time.March, 1))
	seedSchedule(repo, "sch-2", date(2025, time.April, 1))

	resp, err := svc.Board(context.Background(), MonthPeriod(2025, time.March), repository.ScheduleFilter{})
	if err != nil {
		t.Fatalf("Board should succeed: %v", err)
	}
	if len(resp.Groups) != 1 {
		t.Errorf("expected only March instances, got %d groups", len(resp.Groups))
	}
}
