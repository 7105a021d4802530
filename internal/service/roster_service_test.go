package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/campus-helpdesk/internal/auth"
	"github.com/spec-kit/campus-helpdesk/internal/domain"
	"github.com/spec-kit/campus-helpdesk/internal/repository"
)

func TestOnboardTechnician(t *testing.T) {
	svc := NewRosterService(repository.NewMemoryTechnicianRepository(), 4)

	technician, err := svc.OnboardTechnician(context.Background(), OnboardInput{
		Name:      "Ramesh",
		Role:      domain.TradeElectrician,
		StartTime: 9,
		EndTime:   18,
		Password:  "1234",
	})
	require.NoError(t, err)

	assert.Equal(t, 0, technician.CurrentLoad)
	assert.Equal(t, domain.TechnicianStatusFree, technician.Status)
	require.NoError(t, auth.ComparePassword(technician.PasswordHash, "1234"))

	role, ok := svc.RoleOf(context.Background(), "Ramesh")
	require.True(t, ok)
	assert.Equal(t, domain.TradeElectrician, role)
}

func TestOnboardRejectsInvalidWindow(t *testing.T) {
	svc := NewRosterService(repository.NewMemoryTechnicianRepository(), 4)

	_, err := svc.OnboardTechnician(context.Background(), OnboardInput{
		Name:      "Ramesh",
		Role:      domain.TradeElectrician,
		StartTime: 18,
		EndTime:   9,
		Password:  "1234",
	})
	require.Error(t, err)
}

func TestOnboardRejectsUnknownTrade(t *testing.T) {
	svc := NewRosterService(repository.NewMemoryTechnicianRepository(), 4)

	_, err := svc.OnboardTechnician(context.Background(), OnboardInput{
		Name:      "Ramesh",
		Role:      domain.Trade("gardener"),
		StartTime: 9,
		EndTime:   18,
		Password:  "1234",
	})
	require.Error(t, err)
}

func TestRoleOfUnknownTechnician(t *testing.T) {
	svc := NewRosterService(repository.NewMemoryTechnicianRepository(), 4)

	_, ok := svc.RoleOf(context.Background(), "nobody")
	assert.False(t, ok)
}
