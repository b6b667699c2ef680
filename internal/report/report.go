// Package report builds weekly, monthly and custom-range timesheet reports and their workbook export.
package report

import (
	"fmt"
	"sort"
	"time"

	errors "github.com/frahmantamala/workforce-timekeeping/internal"
	"github.com/frahmantamala/workforce-timekeeping/internal/core/calendar"
	"github.com/frahmantamala/workforce-timekeeping/internal/timesheet"
	"github.com/shopspring/decimal"
)

const (
	PeriodWeek   = "week"
	PeriodMonth  = "month"
	PeriodCustom = "custom"
)

// customDefaultSpan is how far back a custom report reaches when no start date is given.
const customDefaultSpan = 30

// Query carries the raw period inputs. Which fields matter depends on the period kind.
type Query struct {
	Date       *time.Time
	Year       int
	Month      int
	From       *time.Time
	To         *time.Time
	EmployeeID string
	SiteID     string
}

type Period struct {
	Kind string        `json:"kind"`
	From calendar.Date `json:"from"`
	To   calendar.Date `json:"to"`
}

func (p Period) Title() string {
	switch p.Kind {
	case PeriodWeek:
		return fmt.Sprintf("Weekly report %s - %s", p.From, p.To)
	case PeriodMonth:
		return fmt.Sprintf("Monthly report %s", p.From.Format("January 2006"))
	default:
		return fmt.Sprintf("Custom report %s - %s", p.From, p.To)
	}
}

func (p Period) FileName(ext string) string {
	switch p.Kind {
	case PeriodMonth:
		return fmt.Sprintf("report_month_%s.%s", p.From.Format("2006_01"), ext)
	default:
		return fmt.Sprintf("report_%s_%s_%s.%s", p.Kind, p.From.Format("20060102"), p.To.Format("20060102"), ext)
	}
}

// ResolvePeriod turns a kind and its inputs into an inclusive date range. now fills missing inputs.
func ResolvePeriod(kind string, q Query, now time.Time) (Period, error) {
	switch kind {
	case PeriodWeek:
		ref := now
		if q.Date != nil {
			ref = *q.Date
		}
		from, to := calendar.WeekBounds(ref)
		return Period{Kind: kind, From: calendar.NewDate(from), To: calendar.NewDate(to)}, nil

	case PeriodMonth:
		year, month := q.Year, q.Month
		if year == 0 {
			year = now.Year()
		}
		if month == 0 {
			month = int(now.Month())
		}
		if month < 1 || month > 12 {
			return Period{}, errors.NewValidationFieldError("month", "month must be between 1 and 12", errors.ErrCodeInvalidDate)
		}
		if year < 1 || year > 9999 {
			return Period{}, errors.NewValidationFieldError("year", "year is out of range", errors.ErrCodeInvalidDate)
		}
		from, to := calendar.MonthBounds(year, time.Month(month))
		return Period{Kind: kind, From: calendar.NewDate(from), To: calendar.NewDate(to)}, nil

	case PeriodCustom:
		to := calendar.Day(now)
		if q.To != nil {
			to = calendar.Day(*q.To)
		}
		from := to.AddDate(0, 0, -customDefaultSpan)
		if q.From != nil {
			from = calendar.Day(*q.From)
		}
		if to.Before(from) {
			return Period{}, errors.NewValidationFieldError("to", "to must be on or after from", errors.ErrCodeInvalidDateRange)
		}
		return Period{Kind: kind, From: calendar.NewDate(from), To: calendar.NewDate(to)}, nil
	}

	return Period{}, errors.NewValidationFieldError("period",
		fmt.Sprintf("unknown period %q, expected week, month or custom", kind), errors.ErrCodeValidationFailed)
}

// Aggregate sums one (employee, site, status) group.
type Aggregate struct {
	EmployeeName string          `json:"employee_name"`
	SiteName     string          `json:"site_name"`
	Status       string          `json:"status"`
	Days         int             `json:"days"`
	Hours        decimal.Decimal `json:"hours"`
}

type Absence struct {
	EmployeeName string `json:"employee_name"`
	Status       string `json:"status"`
	Days         int    `json:"days"`
}

type DailyHours struct {
	Date  calendar.Date   `json:"date"`
	Hours decimal.Decimal `json:"hours"`
}

type Summary struct {
	Timesheets      int             `json:"timesheets"`
	TotalHours      decimal.Decimal `json:"total_hours"`
	PresentDays     int             `json:"present_days"`
	Absences        int             `json:"absences"`
	UniqueEmployees int             `json:"unique_employees"`
	WorkingDays     int             `json:"working_days"`
}

type Report struct {
	Title      string                        `json:"title"`
	Period     Period                        `json:"period"`
	Summary    Summary                       `json:"summary"`
	Timesheets []timesheet.TimesheetResponse `json:"timesheets"`
	Aggregates []Aggregate                   `json:"aggregates"`
	Absences   []Absence                     `json:"absences"`
	Daily      []DailyHours                  `json:"daily"`
}

// Build derives every report section from the period's timesheets. Timesheets keep the given order.
func Build(period Period, timesheets []*timesheet.Timesheet) *Report {
	r := &Report{
		Title:      period.Title(),
		Period:     period,
		Summary:    Summary{Timesheets: len(timesheets), TotalHours: decimal.Zero},
		Timesheets: make([]timesheet.TimesheetResponse, 0, len(timesheets)),
	}

	type aggKey struct{ employee, site, status string }
	type absKey struct{ employee, status string }
	aggregates := make(map[aggKey]*Aggregate)
	absences := make(map[absKey]*Absence)
	daily := make(map[time.Time]decimal.Decimal)
	employees := make(map[string]struct{})

	for _, t := range timesheets {
		r.Timesheets = append(r.Timesheets, t.ToResponse())

		r.Summary.TotalHours = r.Summary.TotalHours.Add(t.Hours)
		switch {
		case t.Status == timesheet.StatusPresent:
			r.Summary.PresentDays++
		case timesheet.IsAbsence(t.Status):
			r.Summary.Absences++
		}
		employees[t.EmployeeID] = struct{}{}

		day := calendar.Day(t.Date)
		daily[day] = daily[day].Add(t.Hours)

		ak := aggKey{t.EmployeeName, t.SiteName, t.Status}
		agg, ok := aggregates[ak]
		if !ok {
			agg = &Aggregate{EmployeeName: t.EmployeeName, SiteName: t.SiteName, Status: t.Status, Hours: decimal.Zero}
			aggregates[ak] = agg
		}
		agg.Days++
		agg.Hours = agg.Hours.Add(t.Hours)

		if timesheet.IsAbsence(t.Status) {
			bk := absKey{t.EmployeeName, t.Status}
			abs, ok := absences[bk]
			if !ok {
				abs = &Absence{EmployeeName: t.EmployeeName, Status: t.Status}
				absences[bk] = abs
			}
			abs.Days++
		}
	}

	r.Summary.UniqueEmployees = len(employees)
	r.Summary.WorkingDays = len(daily)

	r.Aggregates = make([]Aggregate, 0, len(aggregates))
	for _, agg := range aggregates {
		r.Aggregates = append(r.Aggregates, *agg)
	}
	sort.Slice(r.Aggregates, func(i, j int) bool {
		a, b := r.Aggregates[i], r.Aggregates[j]
		if a.EmployeeName != b.EmployeeName {
			return a.EmployeeName < b.EmployeeName
		}
		if a.SiteName != b.SiteName {
			return a.SiteName < b.SiteName
		}
		return a.Status < b.Status
	})

	r.Absences = make([]Absence, 0, len(absences))
	for _, abs := range absences {
		r.Absences = append(r.Absences, *abs)
	}
	sort.Slice(r.Absences, func(i, j int) bool {
		a, b := r.Absences[i], r.Absences[j]
		if a.EmployeeName != b.EmployeeName {
			return a.EmployeeName < b.EmployeeName
		}
		return a.Status < b.Status
	})

	r.Daily = make([]DailyHours, 0, len(daily))
	for day, hours := range daily {
		r.Daily = append(r.Daily, DailyHours{Date: calendar.NewDate(day), Hours: hours})
	}
	sort.Slice(r.Daily, func(i, j int) bool { return r.Daily[i].Date.Before(r.Daily[j].Date.Time) })

	return r
}
