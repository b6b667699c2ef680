package report

import (
	"bytes"
	"context"
	"log/slog"

	"github.com/frahmantamala/workforce-timekeeping/internal"
	"github.com/frahmantamala/workforce-timekeeping/internal/core/clock"
	"github.com/frahmantamala/workforce-timekeeping/internal/timesheet"
)

type TimesheetSource interface {
	List(ctx context.Context, filter timesheet.ListFilter) ([]*timesheet.Timesheet, error)
}

type Service struct {
	timesheets TimesheetSource
	clock      clock.Clock
	logger     *slog.Logger
}

func NewService(timesheets TimesheetSource, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		timesheets: timesheets,
		clock:      clk,
		logger:     logger,
	}
}

func (s *Service) Generate(ctx context.Context, kind string, q Query) (*Report, error) {
	period, err := ResolvePeriod(kind, q, s.clock.Now())
	if err != nil {
		return nil, err
	}

	from, to := period.From.Time, period.To.Time
	timesheets, err := s.timesheets.List(ctx, timesheet.ListFilter{
		EmployeeID: q.EmployeeID,
		SiteID:     q.SiteID,
		DateFrom:   &from,
		DateTo:     &to,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("report generated", "period", kind, "from", period.From.String(), "to", period.To.String(), "timesheets", len(timesheets))
	return Build(period, timesheets), nil
}

// ExportXLSX returns the report together with its encoded workbook.
func (s *Service) ExportXLSX(ctx context.Context, kind string, q Query) (*Report, []byte, error) {
	r, err := s.Generate(ctx, kind, q)
	if err != nil {
		return nil, nil, err
	}

	var buf bytes.Buffer
	if err := WriteWorkbook(&buf, r); err != nil {
		s.logger.Error("failed to render workbook", "error", err, "period", kind)
		return nil, nil, internal.NewInternalError("failed to render report workbook", err)
	}
	return r, buf.Bytes(), nil
}
