package dto

import "github.com/spec-kit/campus-helpdesk/internal/domain"

// TechnicianRecord is the roster view of a technician. The credential is
// opaque material the API never echoes back.
type TechnicianRecord struct {
	Name        string                  `json:"name"`
	Role        domain.Trade            `json:"role"`
	StartTime   int                     `json:"start_time"`
	EndTime     int                     `json:"end_time"`
	CurrentLoad int                     `json:"current_load"`
	Status      domain.TechnicianStatus `json:"status"`
}

// NewTechnicianRecord maps a domain technician onto the wire record.
func NewTechnicianRecord(technician *domain.Technician) TechnicianRecord {
	return TechnicianRecord{
		Name:        technician.Name,
		Role:        technician.Role,
		StartTime:   technician.StartTime,
		EndTime:     technician.EndTime,
		CurrentLoad: technician.CurrentLoad,
		Status:      technician.Status,
	}
}

// NewTechnicianRecords maps a roster slice.
func NewTechnicianRecords(technicians []domain.Technician) []TechnicianRecord {
	records := make([]TechnicianRecord, 0, len(technicians))
	for i := range technicians {
		records = append(records, NewTechnicianRecord(&technicians[i]))
	}
	return records
}

// OnboardTechnicianRequest payload for administrative onboarding.
type OnboardTechnicianRequest struct {
	Name      string       `json:"name"`
	Role      domain.Trade `json:"role"`
	StartTime int          `json:"start_time"`
	EndTime   int          `json:"end_time"`
	Password  string       `json:"password"`
}
