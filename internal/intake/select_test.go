package intake

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/campus-helpdesk/internal/domain"
)

func plumber(name string, load, start, end int, status domain.TechnicianStatus) domain.Technician {
	return domain.Technician{
		Name:        name,
		Role:        domain.TradePlumber,
		StartTime:   start,
		EndTime:     end,
		CurrentLoad: load,
		Status:      status,
	}
}

func intPtr(v int) *int { return &v }

func TestSelectLowestLoadWithinWindow(t *testing.T) {
	techs := []domain.Technician{
		plumber("A", 2, 9, 17, domain.TechnicianStatusFree),
		plumber("B", 0, 9, 17, domain.TechnicianStatusFree),
	}

	sel := SelectTechnician(domain.TradePlumber, intPtr(11), techs)
	require.NotNil(t, sel.Technician)
	assert.Equal(t, "B", sel.Technician.Name)
	assert.Equal(t, domain.RequestStatusMatched, sel.Outcome)
	assert.Equal(t, 11, sel.AssignedHour)
	assert.Equal(t, 9, sel.StartTime)
	assert.Equal(t, 17, sel.EndTime)
}

func TestSelectStableTieBreak(t *testing.T) {
	techs := []domain.Technician{
		plumber("A", 1, 9, 17, domain.TechnicianStatusFree),
		plumber("B", 1, 9, 17, domain.TechnicianStatusFree),
	}

	sel := SelectTechnician(domain.TradePlumber, intPtr(11), techs)
	require.NotNil(t, sel.Technician)
	assert.Equal(t, "A", sel.Technician.Name)
}

func TestSelectHourOutsideEveryWindow(t *testing.T) {
	techs := []domain.Technician{
		plumber("A", 2, 9, 17, domain.TechnicianStatusFree),
		plumber("B", 0, 9, 17, domain.TechnicianStatusFree),
	}

	sel := SelectTechnician(domain.TradePlumber, intPtr(20), techs)
	require.NotNil(t, sel.Technician)
	assert.Equal(t, "B", sel.Technician.Name)
	assert.Equal(t, domain.RequestStatusNoTimeMatch, sel.Outcome)
	assert.Equal(t, 9, sel.AssignedHour)
}

func TestSelectNoDesiredHourFallsBack(t *testing.T) {
	techs := []domain.Technician{
		plumber("A", 1, 10, 19, domain.TechnicianStatusFree),
		plumber("B", 0, 9, 17, domain.TechnicianStatusFree),
	}

	sel := SelectTechnician(domain.TradePlumber, nil, techs)
	require.NotNil(t, sel.Technician)
	assert.Equal(t, "B", sel.Technician.Name)
	assert.Equal(t, domain.RequestStatusNoTimeMatch, sel.Outcome)
	assert.Equal(t, 9, sel.AssignedHour)
}

func TestSelectSkipsBusyTechnicians(t *testing.T) {
	techs := []domain.Technician{
		plumber("A", 1, 9, 17, domain.TechnicianStatusBusy),
		plumber("B", 3, 9, 17, domain.TechnicianStatusFree),
	}

	sel := SelectTechnician(domain.TradePlumber, intPtr(11), techs)
	require.NotNil(t, sel.Technician)
	assert.Equal(t, "B", sel.Technician.Name)
}

func TestSelectSkipsMalformedWindows(t *testing.T) {
	techs := []domain.Technician{
		plumber("A", 0, 18, 9, domain.TechnicianStatusFree), // start after end
		plumber("B", 2, 9, 17, domain.TechnicianStatusFree),
	}

	sel := SelectTechnician(domain.TradePlumber, intPtr(11), techs)
	require.NotNil(t, sel.Technician)
	assert.Equal(t, "B", sel.Technician.Name)
	assert.Equal(t, domain.RequestStatusMatched, sel.Outcome)
}

func TestSelectNoFreeTechnician(t *testing.T) {
	techs := []domain.Technician{
		plumber("A", 2, 9, 17, domain.TechnicianStatusBusy),
	}

	sel := SelectTechnician(domain.TradePlumber, intPtr(11), techs)
	assert.Nil(t, sel.Technician)
	assert.Equal(t, domain.RequestStatusNoTechnician, sel.Outcome)
}

func TestSelectWrongTrade(t *testing.T) {
	techs := []domain.Technician{
		plumber("A", 0, 9, 17, domain.TechnicianStatusFree),
	}

	sel := SelectTechnician(domain.TradeElectrician, intPtr(11), techs)
	assert.Nil(t, sel.Technician)
	assert.Equal(t, domain.RequestStatusNoTechnician, sel.Outcome)
}

func TestSelectEmptySnapshot(t *testing.T) {
	sel := SelectTechnician(domain.TradePlumber, intPtr(11), nil)
	assert.Nil(t, sel.Technician)
	assert.Equal(t, domain.RequestStatusNoTechnician, sel.Outcome)
}
