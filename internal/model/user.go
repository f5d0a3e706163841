package model

// User roles. Mechanic-side roles are eligible as schedule assignees
// and execution performers.
const (
	RoleAdmin       = "admin"
	RoleMekanik     = "mekanik"
	RoleTeamLeader  = "team_leader"
	RoleGroupLeader = "group_leader"
	RoleCoordinator = "coordinator"
)

// MechanicRoles lists the roles shown in assignee/performer pickers.
var MechanicRoles = []string{RoleMekanik, RoleTeamLeader, RoleGroupLeader, RoleCoordinator}

// User is an application account.
type User struct {
	UserID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Name         string `gorm:"type:varchar(100);not null"                     json:"name"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null"                     json:"-"`
	Role         string `gorm:"type:varchar(20);not null;default:'mekanik'"    json:"role"`
	BaseModel
}

func (User) TableName() string { return "users" }
