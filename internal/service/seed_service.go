package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/campus-helpdesk/internal/auth"
	"github.com/spec-kit/campus-helpdesk/internal/domain"
	"github.com/spec-kit/campus-helpdesk/internal/repository"
)

// SeedDependencies bundles the stores the demo seeder writes to.
type SeedDependencies struct {
	StudentRepo     repository.StudentRepository
	TechnicianRepo  repository.TechnicianRepository
	MaintenanceRepo repository.MaintenanceMapRepository
}

type seedStudent struct {
	id       string
	name     string
	password string
}

type seedTechnician struct {
	name     string
	role     domain.Trade
	start    int
	end      int
	password string
}

type seedIssue struct {
	issue      string
	technician string
}

var demoStudents = []seedStudent{
	{"101", "Shashwat Dubey", "1234"},
	{"102", "Ravi Kumar", "1234"},
	{"103", "Aman Singh", "1234"},
}

var demoTechnicians = []seedTechnician{
	{"Ramesh", domain.TradeElectrician, 9, 18, "1234"},
	{"Suresh", domain.TradePlumber, 10, 19, "1234"},
	{"Mahesh", domain.TradeCarpenter, 9, 17, "1234"},
}

// demoIssues map issue phrases to technician names from the roster above;
// the classifier resolves the name to a trade through the roster.
var demoIssues = []seedIssue{
	{"fan not working", "Ramesh"},
	{"tube light flickering", "Ramesh"},
	{"geyser heating", "Ramesh"},
	{"water leakage", "Suresh"},
	{"tap broken", "Suresh"},
	{"door hinge loose", "Mahesh"},
	{"bed frame broken", "Mahesh"},
}

// SeedDemoData inserts the demo students, technicians and issue lookup
// rows. Inserts are idempotent; rows that already exist are skipped.
func SeedDemoData(ctx context.Context, deps SeedDependencies, bcryptCost int, logger *zap.Logger) error {
	for _, s := range demoStudents {
		hash, err := auth.HashPassword(s.password, bcryptCost)
		if err != nil {
			return err
		}
		if err := deps.StudentRepo.Create(ctx, &domain.Student{
			StudentID:    s.id,
			Name:         s.name,
			PasswordHash: hash,
		}); err != nil {
			return err
		}
	}

	for _, t := range demoTechnicians {
		if _, err := deps.TechnicianRepo.GetByName(ctx, t.name); err == nil {
			continue
		}
		hash, err := auth.HashPassword(t.password, bcryptCost)
		if err != nil {
			return err
		}
		if err := deps.TechnicianRepo.Create(ctx, &domain.Technician{
			Name:         t.name,
			Role:         t.role,
			StartTime:    t.start,
			EndTime:      t.end,
			CurrentLoad:  0,
			Status:       domain.TechnicianStatusFree,
			PasswordHash: hash,
		}); err != nil {
			return err
		}
	}

	for _, entry := range demoIssues {
		if err := deps.MaintenanceRepo.Add(ctx, entry.issue, entry.technician); err != nil {
			return err
		}
	}

	logger.Info("demo data seeded",
		zap.Int("students", len(demoStudents)),
		zap.Int("technicians", len(demoTechnicians)),
		zap.Int("issue_mappings", len(demoIssues)))
	return nil
}
