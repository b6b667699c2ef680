package employee

import (
	"strings"

	errors "github.com/frahmantamala/workforce-timekeeping/internal"
	"github.com/frahmantamala/workforce-timekeeping/internal/core/common/validation"
)

type CreateEmployeeDTO struct {
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Active   *bool  `json:"active,omitempty"`
}

func (dto *CreateEmployeeDTO) Normalize() {
	dto.FullName = strings.TrimSpace(dto.FullName)
	dto.Email = strings.TrimSpace(dto.Email)
	dto.Phone = strings.TrimSpace(dto.Phone)
}

func (dto CreateEmployeeDTO) Validate() error {
	return validateFields(dto.FullName, dto.Role, dto.Email, dto.Phone)
}

type UpdateEmployeeDTO struct {
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Active   bool   `json:"active"`
}

func (dto *UpdateEmployeeDTO) Normalize() {
	dto.FullName = strings.TrimSpace(dto.FullName)
	dto.Email = strings.TrimSpace(dto.Email)
	dto.Phone = strings.TrimSpace(dto.Phone)
}

func (dto UpdateEmployeeDTO) Validate() error {
	return validateFields(dto.FullName, dto.Role, dto.Email, dto.Phone)
}

func validateFields(fullName, role, email, phone string) error {
	v := validation.NewValidator()
	v.Field("full_name", fullName).Required().MaxLength(200)
	v.Field("role", role).Required().OneOf(errors.ErrCodeInvalidRole, Roles...)
	v.Field("email", email).MaxLength(200).Email()
	v.Field("phone", phone).MaxLength(50)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type ListFilter struct {
	Role   string
	Active *bool
	Search string
}

type Stats struct {
	Total    int            `json:"total"`
	Active   int            `json:"active"`
	Inactive int            `json:"inactive"`
	ByRole   map[string]int `json:"by_role"`
}

type ListResponse struct {
	Employees []*Employee `json:"employees"`
	Count     int         `json:"count"`
}
