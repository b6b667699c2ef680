package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const (
	SheetTimesheets = "Timesheets"
	SheetAggregates = "Aggregates"
	SheetAbsences   = "Absences"

	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var absenceLabels = map[string]string{
	"absent":  "Absent",
	"medical": "Medical leave",
	"leave":   "Leave",
}

// WriteWorkbook renders the report as an xlsx workbook with one sheet per section.
func WriteWorkbook(w io.Writer, r *Report) error {
	f := excelize.NewFile()
	defer f.Close()

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4F46E5"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	if err := f.SetSheetName("Sheet1", SheetTimesheets); err != nil {
		return fmt.Errorf("rename default sheet: %w", err)
	}
	for _, name := range []string{SheetAggregates, SheetAbsences} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	timesheetRows := make([][]interface{}, 0, len(r.Timesheets))
	for _, t := range r.Timesheets {
		timesheetRows = append(timesheetRows, []interface{}{
			t.Date.String(), t.EmployeeName, t.SiteName, t.Hours.InexactFloat64(), t.Status, t.Note,
		})
	}
	if err := writeSheet(f, SheetTimesheets, header,
		[]interface{}{"Date", "Employee", "Site", "Hours", "Status", "Note"}, timesheetRows); err != nil {
		return err
	}

	aggregateRows := make([][]interface{}, 0, len(r.Aggregates))
	for _, a := range r.Aggregates {
		aggregateRows = append(aggregateRows, []interface{}{
			a.EmployeeName, a.SiteName, a.Status, a.Days, a.Hours.InexactFloat64(),
		})
	}
	if err := writeSheet(f, SheetAggregates, header,
		[]interface{}{"Employee", "Site", "Status", "Days", "Total Hours"}, aggregateRows); err != nil {
		return err
	}

	absenceRows := make([][]interface{}, 0, len(r.Absences))
	for _, a := range r.Absences {
		label := absenceLabels[a.Status]
		if label == "" {
			label = a.Status
		}
		absenceRows = append(absenceRows, []interface{}{a.EmployeeName, label, a.Days})
	}
	if err := writeSheet(f, SheetAbsences, header,
		[]interface{}{"Employee", "Absence Type", "Days"}, absenceRows); err != nil {
		return err
	}

	f.SetActiveSheet(0)
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, headerStyle int, headers []interface{}, rows [][]interface{}) error {
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return fmt.Errorf("write %s header: %w", sheet, err)
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("style %s header: %w", sheet, err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := row
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
