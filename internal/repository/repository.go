package repository

import "gorm.io/gorm"

// Repository aggregates all data-access interfaces.
type Repository struct {
	Plant            PlantRepository
	Line             LineRepository
	MachineType      MachineTypeRepository
	Machine          MachineRepository
	User             UserRepository
	Standard         StandardRepository
	MaintenancePoint MaintenancePointRepository
	Schedule         ScheduleRepository
	Execution        ExecutionRepository
}

// NewRepository wires the GORM-backed implementations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Plant:            NewPlantRepo(db),
		Line:             NewLineRepo(db),
		MachineType:      NewMachineTypeRepo(db),
		Machine:          NewMachineRepo(db),
		User:             NewUserRepo(db),
		Standard:         NewStandardRepo(db),
		MaintenancePoint: NewMaintenancePointRepo(db),
		Schedule:         NewScheduleRepo(db),
		Execution:        NewExecutionRepo(db),
	}
}
