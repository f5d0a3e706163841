package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/cmms120187/pratamair/internal/model"
	"github.com/cmms120187/pratamair/internal/repository"
	pkgerrors "github.com/cmms120187/pratamair/pkg/errors"
)

// ── Mock PlantRepository ──

type mockPlantRepo struct {
	plants map[string]*model.Plant
}

func newMockPlantRepo() *mockPlantRepo {
	return &mockPlantRepo{plants: make(map[string]*model.Plant)}
}

func (m *mockPlantRepo) List(_ context.Context) ([]model.Plant, error) {
	var result []model.Plant
	for _, p := range m.plants {
		result = append(result, *p)
	}
	return result, nil
}

func (m *mockPlantRepo) GetByID(_ context.Context, id string) (*model.Plant, error) {
	if p, ok := m.plants[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock LineRepository ──

type mockLineRepo struct {
	lines map[string]*model.Line
}

func newMockLineRepo() *mockLineRepo {
	return &mockLineRepo{lines: make(map[string]*model.Line)}
}

func (m *mockLineRepo) List(_ context.Context) ([]model.Line, error) {
	var result []model.Line
	for _, l := range m.lines {
		result = append(result, *l)
	}
	return result, nil
}

func (m *mockLineRepo) GetByID(_ context.Context, id string) (*model.Line, error) {
	if l, ok := m.lines[id]; ok {
		return l, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock MachineTypeRepository ──

type mockMachineTypeRepo struct {
	types map[string]*model.MachineType
}

func newMockMachineTypeRepo() *mockMachineTypeRepo {
	return &mockMachineTypeRepo{types: make(map[string]*model.MachineType)}
}

func (m *mockMachineTypeRepo) List(_ context.Context) ([]model.MachineType, error) {
	var result []model.MachineType
	for _, t := range m.types {
		result = append(result, *t)
	}
	return result, nil
}

func (m *mockMachineTypeRepo) GetByID(_ context.Context, id string) (*model.MachineType, error) {
	if t, ok := m.types[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock MachineRepository ──

type mockMachineRepo struct {
	machines map[string]*model.Machine
}

func newMockMachineRepo() *mockMachineRepo {
	return &mockMachineRepo{machines: make(map[string]*model.Machine)}
}

func (m *mockMachineRepo) Create(_ context.Context, machine *model.Machine) error {
	if machine.MachineID == "" {
		machine.MachineID = "mac-" + machine.Code
	}
	m.machines[machine.MachineID] = machine
	return nil
}

func (m *mockMachineRepo) GetByID(_ context.Context, id string) (*model.Machine, error) {
	if mc, ok := m.machines[id]; ok {
		return mc, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMachineRepo) List(_ context.Context, filter repository.MachineFilter) ([]model.Machine, error) {
	var result []model.Machine
	for _, mc := range m.machines {
		if filter.PlantID != "" && mc.PlantID != filter.PlantID {
			continue
		}
		if filter.LineID != "" && mc.LineID != filter.LineID {
			continue
		}
		if filter.MachineTypeID != "" && mc.MachineTypeID != filter.MachineTypeID {
			continue
		}
		if filter.Code != "" && !strings.Contains(strings.ToLower(mc.Code), strings.ToLower(filter.Code)) {
			continue
		}
		result = append(result, *mc)
	}
	return result, nil
}

func (m *mockMachineRepo) Update(_ context.Context, machine *model.Machine) error {
	m.machines[machine.MachineID] = machine
	return nil
}

func (m *mockMachineRepo) Delete(_ context.Context, id string) error {
	delete(m.machines, id)
	return nil
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = "usr-" + user.Email
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) ListByRoles(_ context.Context, roles []string) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		for _, role := range roles {
			if u.Role == role {
				result = append(result, *u)
				break
			}
		}
	}
	return result, nil
}

// ── Mock StandardRepository ──

type mockStandardRepo struct {
	standards map[string]*model.Standard
}

func newMockStandardRepo() *mockStandardRepo {
	return &mockStandardRepo{standards: make(map[string]*model.Standard)}
}

func (m *mockStandardRepo) Create(_ context.Context, standard *model.Standard) error {
	if standard.StandardID == "" {
		standard.StandardID = "std-" + standard.Name
	}
	m.standards[standard.StandardID] = standard
	return nil
}

func (m *mockStandardRepo) GetByID(_ context.Context, id string) (*model.Standard, error) {
	if s, ok := m.standards[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStandardRepo) ListActive(_ context.Context) ([]model.Standard, error) {
	var result []model.Standard
	for _, s := range m.standards {
		if s.Status == "active" {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockStandardRepo) Update(_ context.Context, standard *model.Standard) error {
	m.standards[standard.StandardID] = standard
	return nil
}

// ── Mock MaintenancePointRepository ──

type mockPointRepo struct {
	points map[string]*model.MaintenancePoint
}

func newMockPointRepo() *mockPointRepo {
	return &mockPointRepo{points: make(map[string]*model.MaintenancePoint)}
}

func (m *mockPointRepo) Create(_ context.Context, point *model.MaintenancePoint) error {
	if point.MaintenancePointID == "" {
		point.MaintenancePointID = "pt-" + point.Name
	}
	m.points[point.MaintenancePointID] = point
	return nil
}

func (m *mockPointRepo) GetByID(_ context.Context, id string) (*model.MaintenancePoint, error) {
	if p, ok := m.points[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPointRepo) ListByTypeAndCategory(_ context.Context, machineTypeID, category string) ([]model.MaintenancePoint, error) {
	var result []model.MaintenancePoint
	for _, p := range m.points {
		if p.MachineTypeID == machineTypeID && p.Category == category {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (m *mockPointRepo) Update(_ context.Context, point *model.MaintenancePoint) error {
	m.points[point.MaintenancePointID] = point
	return nil
}

func (m *mockPointRepo) Delete(_ context.Context, id string) error {
	delete(m.points, id)
	return nil
}

// ── Mock ScheduleRepository ──

type mockScheduleRepo struct {
	schedules map[string]*model.MaintenanceSchedule
	seq       int
}

func newMockScheduleRepo() *mockScheduleRepo {
	return &mockScheduleRepo{schedules: make(map[string]*model.MaintenanceSchedule)}
}

func (m *mockScheduleRepo) BatchCreate(_ context.Context, schedules []model.MaintenanceSchedule) error {
	for i := range schedules {
		m.seq++
		sch := schedules[i]
		if sch.ScheduleID == "" {
			sch.ScheduleID = fmt.Sprintf("sch-%04d", m.seq)
		}
		if sch.Version == 0 {
			sch.Version = 1
		}
		m.schedules[sch.ScheduleID] = &sch
	}
	return nil
}

// GetByID returns a copy, as a real query would; version checks in
// Update compare against the stored row, not the caller's copy.
func (m *mockScheduleRepo) GetByID(_ context.Context, id string) (*model.MaintenanceSchedule, error) {
	if s, ok := m.schedules[id]; ok {
		c := *s
		return &c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScheduleRepo) List(_ context.Context, filter repository.ScheduleFilter) ([]model.MaintenanceSchedule, error) {
	var result []model.MaintenanceSchedule
	for _, s := range m.schedules {
		if !filter.PeriodStart.IsZero() && dateKey(s.StartDate) < dateKey(filter.PeriodStart) {
			continue
		}
		if !filter.PeriodEnd.IsZero() && dateKey(s.StartDate) > dateKey(filter.PeriodEnd) {
			continue
		}
		if filter.Status != "" && s.Status != filter.Status {
			continue
		}
		if filter.MachineID != "" && s.MachineID != filter.MachineID {
			continue
		}
		result = append(result, *s)
	}
	return result, nil
}

func (m *mockScheduleRepo) CountByMachineAndRange(_ context.Context, machineID, category string, from, to time.Time) (int64, error) {
	var count int64
	for _, s := range m.schedules {
		if s.MachineID != machineID || s.Category != category {
			continue
		}
		if dateKey(s.StartDate) < dateKey(from) || dateKey(s.StartDate) > dateKey(to) {
			continue
		}
		count++
	}
	return count, nil
}

func (m *mockScheduleRepo) Update(_ context.Context, schedule *model.MaintenanceSchedule) error {
	existing, ok := m.schedules[schedule.ScheduleID]
	if !ok || existing.Version != schedule.Version {
		return pkgerrors.ErrOptimisticLock
	}
	schedule.Version++
	m.schedules[schedule.ScheduleID] = schedule
	return nil
}

func (m *mockScheduleRepo) Delete(_ context.Context, id string) error {
	delete(m.schedules, id)
	return nil
}

// ── Mock ExecutionRepository ──

type mockExecutionRepo struct {
	executions map[string]*model.MaintenanceExecution
	seq        int
}

func newMockExecutionRepo() *mockExecutionRepo {
	return &mockExecutionRepo{executions: make(map[string]*model.MaintenanceExecution)}
}

func (m *mockExecutionRepo) Create(_ context.Context, execution *model.MaintenanceExecution) error {
	m.seq++
	if execution.ExecutionID == "" {
		execution.ExecutionID = fmt.Sprintf("exe-%04d", m.seq)
	}
	if execution.CreatedAt.IsZero() {
		execution.CreatedAt = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(m.seq) * time.Minute)
	}
	m.executions[execution.ExecutionID] = execution
	return nil
}

func (m *mockExecutionRepo) GetByID(_ context.Context, id string) (*model.MaintenanceExecution, error) {
	if e, ok := m.executions[id]; ok {
		c := *e
		return &c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockExecutionRepo) ListBySchedule(_ context.Context, scheduleID string) ([]model.MaintenanceExecution, error) {
	var result []model.MaintenanceExecution
	for _, e := range m.executions {
		if e.ScheduleID == scheduleID {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (m *mockExecutionRepo) Update(_ context.Context, execution *model.MaintenanceExecution) error {
	m.executions[execution.ExecutionID] = execution
	return nil
}

func (m *mockExecutionRepo) Delete(_ context.Context, id string) error {
	delete(m.executions, id)
	return nil
}

// newMockRepository bundles fresh mocks into a Repository for service tests.
func newMockRepository() *repository.Repository {
	return &repository.Repository{
		Plant:            newMockPlantRepo(),
		Line:             newMockLineRepo(),
		MachineType:      newMockMachineTypeRepo(),
		Machine:          newMockMachineRepo(),
		User:             newMockUserRepo(),
		Standard:         newMockStandardRepo(),
		MaintenancePoint: newMockPointRepo(),
		Schedule:         newMockScheduleRepo(),
		Execution:        newMockExecutionRepo(),
	}
}
