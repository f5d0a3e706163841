package model

// Plant is a production site.
type Plant struct {
	PlantID  string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"plant_id"`
	Name     string `gorm:"type:varchar(100);not null"                     json:"name"`
	Location string `gorm:"type:varchar(255)"                              json:"location"`
	BaseModel
}

func (Plant) TableName() string { return "plants" }

// Line is a production line within a plant.
type Line struct {
	LineID  string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"line_id"`
	PlantID string `gorm:"type:uuid;not null"                             json:"plant_id"`
	Name    string `gorm:"type:varchar(100);not null"                     json:"name"`
	BaseModel

	Plant *Plant `gorm:"foreignKey:PlantID;references:PlantID" json:"plant,omitempty"`
}

func (Line) TableName() string { return "lines" }

// MachineType groups machines that share a maintenance-point catalog.
type MachineType struct {
	MachineTypeID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"machine_type_id"`
	Name          string `gorm:"type:varchar(100);not null"                     json:"name"`
	Description   string `gorm:"type:text"                                      json:"description"`
	BaseModel
}

func (MachineType) TableName() string { return "machine_types" }

// Machine statuses.
const (
	MachineActive   = "active"
	MachineInactive = "inactive"
)

// Machine is a single maintainable asset.
type Machine struct {
	MachineID     string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"machine_id"`
	Code          string `gorm:"type:varchar(50);not null;uniqueIndex"          json:"code"`
	Name          string `gorm:"type:varchar(100);not null"                     json:"name"`
	MachineTypeID string `gorm:"type:uuid;not null"                             json:"machine_type_id"`
	PlantID       string `gorm:"type:uuid;not null"                             json:"plant_id"`
	LineID        string `gorm:"type:uuid;not null"                             json:"line_id"`
	Status        string `gorm:"type:varchar(20);not null;default:'active'"     json:"status"`
	BaseModel

	MachineType *MachineType `gorm:"foreignKey:MachineTypeID;references:MachineTypeID" json:"machine_type,omitempty"`
	Plant       *Plant       `gorm:"foreignKey:PlantID;references:PlantID"             json:"plant,omitempty"`
	Line        *Line        `gorm:"foreignKey:LineID;references:LineID"               json:"line,omitempty"`
}

func (Machine) TableName() string { return "machines" }
