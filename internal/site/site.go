package site

import (
	"time"

	siteDatamodel "github.com/frahmantamala/workforce-timekeeping/internal/core/datamodel/site"
	"github.com/shopspring/decimal"
)

type Site struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Location  string     `json:"location"`
	Active    bool       `json:"active"`
	CreatedAt time.Time  `json:"created_at"`
	CreatedBy string     `json:"created_by"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func (s *Site) ToggleActive(now time.Time) {
	s.Active = !s.Active
	s.UpdatedAt = &now
}

// SiteHours is one row of the hours leaderboard.
type SiteHours struct {
	SiteName   string          `json:"site_name"`
	TotalHours decimal.Decimal `json:"total_hours"`
}

// MonthHours is the total logged at one site during one YYYY-MM month.
type MonthHours struct {
	Month      string          `json:"month"`
	TotalHours decimal.Decimal `json:"total_hours"`
}

// DatedHours is the raw (date, hours) pair the monthly breakdown is built from.
type DatedHours struct {
	Date  time.Time
	Hours decimal.Decimal
}

func ToDataModel(s *Site) *siteDatamodel.Site {
	return &siteDatamodel.Site{
		ID:        s.ID,
		Name:      s.Name,
		Location:  s.Location,
		Active:    s.Active,
		CreatedAt: s.CreatedAt,
		CreatedBy: s.CreatedBy,
		UpdatedAt: s.UpdatedAt,
	}
}

func FromDataModel(s *siteDatamodel.Site) *Site {
	return &Site{
		ID:        s.ID,
		Name:      s.Name,
		Location:  s.Location,
		Active:    s.Active,
		CreatedAt: s.CreatedAt,
		CreatedBy: s.CreatedBy,
		UpdatedAt: s.UpdatedAt,
	}
}
