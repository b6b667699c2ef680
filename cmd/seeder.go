package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/frahmantamala/workforce-timekeeping/internal"
	"github.com/frahmantamala/workforce-timekeeping/internal/assignment"
	"github.com/frahmantamala/workforce-timekeeping/internal/core/calendar"
	userDatamodel "github.com/frahmantamala/workforce-timekeeping/internal/core/datamodel/user"
	"github.com/frahmantamala/workforce-timekeeping/internal/employee"
	"github.com/frahmantamala/workforce-timekeeping/internal/site"
	"github.com/frahmantamala/workforce-timekeeping/internal/timesheet"
	"github.com/frahmantamala/workforce-timekeeping/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

const seedActor = "seeder"

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		gormDB, err := initGorm(db, cfg.Observability.Logging.Env)
		if err != nil {
			log.Fatalf("failed to init gorm: %v", err)
		}

		lg := logger.LoggerWrapper()
		svc := buildServices(cfg, gormDB, lg)
		ctx := internal.ContextWithActor(context.Background(), seedActor)

		if clearData {
			// dependents first, the audit trail is never cleared
			for _, table := range []string{"timesheets", "assignments", "employees", "sites"} {
				if err := gormDB.WithContext(ctx).Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
				fmt.Println("Cleared table:", table)
			}
		}

		seedUsers(ctx, svc)
		employeeIDs := seedEmployees(ctx, svc)
		siteIDs := seedSites(ctx, svc)
		seedAssignments(ctx, svc, employeeIDs, siteIDs)
		seedTimesheets(ctx, svc, employeeIDs, siteIDs)

		fmt.Println("Seeding finished")
	},
}

// conflictingID returns the id of the stored record a create collided with.
func conflictingID(err error) (string, bool) {
	appErr, ok := internal.IsAppError(err)
	if !ok || appErr.Type != internal.ErrorTypeConflict {
		return "", false
	}
	details, ok := appErr.Details.(internal.ConflictDetails)
	if !ok {
		return "", false
	}
	return details.ConflictingID, true
}

func seedUsers(ctx context.Context, svc *Services) {
	users := []struct {
		Email string
		Name  string
	}{
		{"admin@mail.com", "Dashboard Admin"},
		{"foreman@mail.com", "Site Office"},
	}

	for _, u := range users {
		hash, err := svc.Auth.HashPassword("password")
		if err != nil {
			log.Fatalf("failed to hash password: %v", err)
		}
		row := &userDatamodel.User{
			Email:        u.Email,
			Name:         u.Name,
			PasswordHash: hash,
			IsActive:     true,
		}
		if err := svc.Users.Upsert(ctx, row); err != nil {
			log.Fatalf("failed to upsert user %s: %v", u.Email, err)
		}
		fmt.Println("Seeded user:", u.Email)
	}
}

func seedEmployees(ctx context.Context, svc *Services) []string {
	employees := []employee.CreateEmployeeDTO{
		{FullName: "Budi Santoso", Role: employee.RoleSiteForeman, Email: "budi@mail.com", Phone: "+62 812 0000 0001"},
		{FullName: "Siti Rahma", Role: employee.RoleEngineer, Email: "siti@mail.com"},
		{FullName: "Agus Pratama", Role: employee.RoleWorker},
		{FullName: "Dewi Lestari", Role: employee.RoleManager, Email: "dewi@mail.com"},
	}

	ids := make([]string, 0, len(employees))
	for _, dto := range employees {
		e, err := svc.Employee.Create(ctx, dto)
		if err != nil {
			if id, ok := conflictingID(err); ok {
				ids = append(ids, id)
				continue
			}
			log.Fatalf("failed to seed employee %s: %v", dto.FullName, err)
		}
		ids = append(ids, e.ID)
		fmt.Println("Seeded employee:", e.FullName)
	}
	return ids
}

func seedSites(ctx context.Context, svc *Services) []string {
	sites := []site.CreateSiteDTO{
		{Name: "Harbour Warehouse", Location: "North Jakarta"},
		{Name: "Riverside Tower", Location: "Surabaya"},
	}

	ids := make([]string, 0, len(sites))
	for _, dto := range sites {
		st, err := svc.Site.Create(ctx, dto)
		if err != nil {
			if id, ok := conflictingID(err); ok {
				ids = append(ids, id)
				continue
			}
			log.Fatalf("failed to seed site %s: %v", dto.Name, err)
		}
		ids = append(ids, st.ID)
		fmt.Println("Seeded site:", st.Name)
	}
	return ids
}

// seedAssignments opens one assignment per employee starting on the first of the current month.
func seedAssignments(ctx context.Context, svc *Services, employeeIDs, siteIDs []string) {
	now := calendar.Day(svc.Clock.Now())
	start := calendar.NewDate(now.AddDate(0, 0, 1-now.Day()))

	for i, employeeID := range employeeIDs {
		dto := assignment.CreateAssignmentDTO{
			EmployeeID: employeeID,
			SiteID:     siteIDs[i%len(siteIDs)],
			StartDate:  start,
		}
		a, err := svc.Assignment.Create(ctx, dto)
		if err != nil {
			if _, ok := conflictingID(err); ok {
				continue
			}
			log.Fatalf("failed to seed assignment for %s: %v", employeeID, err)
		}
		fmt.Println("Seeded assignment:", a.ID)
	}
}

// seedTimesheets fills the last five days for every employee, one absence included.
func seedTimesheets(ctx context.Context, svc *Services, employeeIDs, siteIDs []string) {
	today := calendar.Day(svc.Clock.Now())

	for i, employeeID := range employeeIDs {
		for back := 1; back <= 5; back++ {
			dto := timesheet.CreateTimesheetDTO{
				EmployeeID: employeeID,
				SiteID:     siteIDs[i%len(siteIDs)],
				Date:       calendar.NewDate(today.AddDate(0, 0, -back)),
				Hours:      decimal.NewFromInt(8),
				Status:     timesheet.StatusPresent,
			}
			if back == 3 && i == 0 {
				dto.Status = timesheet.StatusMedical
			}
			if _, err := svc.Timesheet.Create(ctx, dto); err != nil {
				if _, ok := conflictingID(err); ok {
					continue
				}
				log.Fatalf("failed to seed timesheet for %s: %v", employeeID, err)
			}
		}
	}
	fmt.Println("Seeded timesheets for the last five days")
}
