package site

import (
	"strings"

	"github.com/frahmantamala/workforce-timekeeping/internal/core/common/validation"
)

type CreateSiteDTO struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Active   *bool  `json:"active,omitempty"`
}

func (dto *CreateSiteDTO) Normalize() {
	dto.Name = strings.TrimSpace(dto.Name)
	dto.Location = strings.TrimSpace(dto.Location)
}

func (dto CreateSiteDTO) Validate() error {
	return validateFields(dto.Name, dto.Location)
}

type UpdateSiteDTO struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Active   bool   `json:"active"`
}

func (dto *UpdateSiteDTO) Normalize() {
	dto.Name = strings.TrimSpace(dto.Name)
	dto.Location = strings.TrimSpace(dto.Location)
}

func (dto UpdateSiteDTO) Validate() error {
	return validateFields(dto.Name, dto.Location)
}

func validateFields(name, location string) error {
	v := validation.NewValidator()
	v.Field("name", name).Required().MaxLength(200)
	v.Field("location", location).MaxLength(300)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type ListFilter struct {
	Active *bool
	Search string
}

type Stats struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
}

type ListResponse struct {
	Sites []*Site `json:"sites"`
	Count int     `json:"count"`
}
