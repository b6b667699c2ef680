// Package calendar holds the whole-day date model shared by assignments, timesheets and reports.
// Every date is normalized to midnight UTC so equality means "same calendar day".
package calendar

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const Layout = "2006-01-02"

// Day drops the time-of-day component, keeping the calendar date as written in t's location.
func Day(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func Parse(s string) (time.Time, error) {
	t, err := time.Parse(Layout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

func Format(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return Day(t).Format(Layout)
}

// WeekBounds returns Monday and Sunday of the week containing t.
func WeekBounds(t time.Time) (time.Time, time.Time) {
	day := Day(t)
	offset := (int(day.Weekday()) + 6) % 7
	monday := day.AddDate(0, 0, -offset)
	return monday, monday.AddDate(0, 0, 6)
}

// MonthBounds returns the first and last day of the given month.
func MonthBounds(year int, month time.Month) (time.Time, time.Time) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return first, first.AddDate(0, 1, -1)
}

// Days lists every date from start to end inclusive.
func Days(start, end time.Time) []time.Time {
	start, end = Day(start), Day(end)
	var out []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		out = append(out, d)
	}
	return out
}

// Date is a calendar day that travels as "YYYY-MM-DD" in JSON.
type Date struct {
	time.Time
}

func NewDate(t time.Time) Date {
	return Date{Time: Day(t)}
}

func (d Date) String() string {
	return Format(d.Time)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	t, err := Parse(s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// Ptr converts an optional date into an optional normalized time.
func (d *Date) Ptr() *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := Day(d.Time)
	return &t
}
