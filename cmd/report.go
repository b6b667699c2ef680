package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/frahmantamala/workforce-timekeeping/internal"
	"github.com/frahmantamala/workforce-timekeeping/internal/core/calendar"
	"github.com/frahmantamala/workforce-timekeeping/internal/report"
	"github.com/frahmantamala/workforce-timekeeping/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	reportDate       string
	reportFrom       string
	reportTo         string
	reportYear       int
	reportMonth      int
	reportEmployeeID string
	reportSiteID     string
	reportOutDir     string
)

var reportCmd = &cobra.Command{
	Use:       "report [week|month|custom]",
	Short:     "Export a timesheet report workbook",
	Long:      `Build a weekly, monthly or custom-range timesheet report and write it as an .xlsx file.`,
	Args:      cobra.ExactValidArgs(1),
	ValidArgs: []string{report.PeriodWeek, report.PeriodMonth, report.PeriodCustom},
	RunE:      runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportDate, "date", "", "any day of the week to report (YYYY-MM-DD)")
	reportCmd.Flags().StringVar(&reportFrom, "from", "", "custom range start (YYYY-MM-DD)")
	reportCmd.Flags().StringVar(&reportTo, "to", "", "custom range end (YYYY-MM-DD)")
	reportCmd.Flags().IntVar(&reportYear, "year", 0, "report year for monthly reports")
	reportCmd.Flags().IntVar(&reportMonth, "month", 0, "report month (1-12) for monthly reports")
	reportCmd.Flags().StringVar(&reportEmployeeID, "employee-id", "", "only include this employee")
	reportCmd.Flags().StringVar(&reportSiteID, "site-id", "", "only include this site")
	reportCmd.Flags().StringVarP(&reportOutDir, "out", "o", ".", "output directory")
}

func parseDateFlag(name, value string) (*calendar.Date, error) {
	if value == "" {
		return nil, nil
	}
	t, err := calendar.Parse(value)
	if err != nil {
		return nil, fmt.Errorf("--%s: %w", name, err)
	}
	d := calendar.NewDate(t)
	return &d, nil
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	q := report.Query{
		Year:       reportYear,
		Month:      reportMonth,
		EmployeeID: reportEmployeeID,
		SiteID:     reportSiteID,
	}
	dates := map[string]**time.Time{"date": &q.Date, "from": &q.From, "to": &q.To}
	for name, value := range map[string]string{"date": reportDate, "from": reportFrom, "to": reportTo} {
		d, err := parseDateFlag(name, value)
		if err != nil {
			return err
		}
		*dates[name] = d.Ptr()
	}

	db, err := initDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to init db: %w", err)
	}
	defer db.Close()

	gormDB, err := initGorm(db, cfg.Observability.Logging.Env)
	if err != nil {
		return fmt.Errorf("failed to init gorm: %w", err)
	}

	lg := logger.LoggerWrapper()
	svc := buildServices(cfg, gormDB, lg)

	ctx, cancel := internal.WithTimeout(context.Background(), cfg.Server.RequestTimeout)
	defer cancel()

	r, data, err := svc.Report.ExportXLSX(ctx, args[0], q)
	if err != nil {
		return err
	}

	path := filepath.Join(reportOutDir, r.Period.FileName("xlsx"))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	lg.Info("report exported", "path", path, "timesheets", r.Summary.Timesheets, "title", r.Title)
	return nil
}
