package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/campus-helpdesk/internal/auth"
	"github.com/spec-kit/campus-helpdesk/internal/domain"
	"github.com/spec-kit/campus-helpdesk/internal/intake"
	"github.com/spec-kit/campus-helpdesk/internal/repository"
)

func seededFixture(t *testing.T) (SeedDependencies, *RosterService) {
	t.Helper()
	deps := SeedDependencies{
		StudentRepo:     repository.NewMemoryStudentRepository(),
		TechnicianRepo:  repository.NewMemoryTechnicianRepository(),
		MaintenanceRepo: repository.NewMemoryMaintenanceMap(),
	}
	require.NoError(t, SeedDemoData(context.Background(), deps, 4, zap.NewNop()))
	return deps, NewRosterService(deps.TechnicianRepo, 4)
}

func TestSeedDemoData(t *testing.T) {
	deps, _ := seededFixture(t)
	ctx := context.Background()

	student, err := deps.StudentRepo.GetByID(ctx, "101")
	require.NoError(t, err)
	require.NoError(t, auth.ComparePassword(student.PasswordHash, "1234"))

	ramesh, err := deps.TechnicianRepo.GetByName(ctx, "Ramesh")
	require.NoError(t, err)
	assert.Equal(t, domain.TradeElectrician, ramesh.Role)
	assert.Equal(t, 0, ramesh.CurrentLoad)
	assert.Equal(t, domain.TechnicianStatusFree, ramesh.Status)
}

func TestSeededIssueMappingsResolveThroughRoster(t *testing.T) {
	deps, roster := seededFixture(t)
	ctx := context.Background()

	// Every seeded mapping names a seeded technician, so the lookup tier
	// can always resolve a trade from a hit.
	name, err := deps.MaintenanceRepo.Lookup(ctx, "geyser stopped working")
	require.NoError(t, err)
	assert.Equal(t, "Ramesh", name)
	role, ok := roster.RoleOf(ctx, name)
	require.True(t, ok)
	assert.Equal(t, domain.TradeElectrician, role)

	// End to end through the classifier: "geyser" is no keyword trigger,
	// so only the mapping table can route it.
	classifier := intake.NewClassifier(nil, deps.MaintenanceRepo, roster)
	category, trade := classifier.Classify(ctx, "geyser broken in my room")
	assert.Equal(t, domain.CategoryHostel, category)
	require.NotNil(t, trade)
	assert.Equal(t, domain.TradeElectrician, *trade)
}
