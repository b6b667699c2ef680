package employee

import (
	"time"

	employeeDatamodel "github.com/frahmantamala/workforce-timekeeping/internal/core/datamodel/employee"
)

const (
	RoleWorker      = "Worker"
	RoleSiteForeman = "Site Foreman"
	RoleEngineer    = "Engineer"
	RoleManager     = "Manager"
)

var Roles = []string{RoleWorker, RoleSiteForeman, RoleEngineer, RoleManager}

type Employee struct {
	ID        string     `json:"id"`
	FullName  string     `json:"full_name"`
	Role      string     `json:"role"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	Active    bool       `json:"active"`
	CreatedAt time.Time  `json:"created_at"`
	CreatedBy string     `json:"created_by"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func (e *Employee) ToggleActive(now time.Time) {
	e.Active = !e.Active
	e.UpdatedAt = &now
}

func ToDataModel(e *Employee) *employeeDatamodel.Employee {
	return &employeeDatamodel.Employee{
		ID:        e.ID,
		FullName:  e.FullName,
		Role:      e.Role,
		Email:     e.Email,
		Phone:     e.Phone,
		Active:    e.Active,
		CreatedAt: e.CreatedAt,
		CreatedBy: e.CreatedBy,
		UpdatedAt: e.UpdatedAt,
	}
}

func FromDataModel(e *employeeDatamodel.Employee) *Employee {
	return &Employee{
		ID:        e.ID,
		FullName:  e.FullName,
		Role:      e.Role,
		Email:     e.Email,
		Phone:     e.Phone,
		Active:    e.Active,
		CreatedAt: e.CreatedAt,
		CreatedBy: e.CreatedBy,
		UpdatedAt: e.UpdatedAt,
	}
}
