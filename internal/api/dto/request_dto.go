package dto

import "github.com/spec-kit/campus-helpdesk/internal/domain"

// SubmitRequest payload.
type SubmitRequest struct {
	Query string `json:"query"`
}

// SubmitResponse mirrors the submission outcome, including the advisory
// duplicate flag.
type SubmitResponse struct {
	RequestID       string               `json:"request_id"`
	Category        domain.Category      `json:"category"`
	Reply           string               `json:"reply"`
	Technician      *string              `json:"technician"`
	StartTime       *int                 `json:"start_time"`
	EndTime         *int                 `json:"end_time"`
	AssignedTime    *int                 `json:"assigned_time"`
	StudentFreeTime *int                 `json:"student_free_time"`
	Status          domain.RequestStatus `json:"status"`
	IsDuplicate     bool                 `json:"is_duplicate"`
	DuplicateID     string               `json:"duplicate_id,omitempty"`
}

// RequestRecord is the persisted record shape in its public field order:
// request_id, student_id, query, category, technician, start_time,
// end_time, assigned_time, student_free_time, status.
type RequestRecord struct {
	RequestID       string               `json:"request_id"`
	StudentID       string               `json:"student_id"`
	Query           string               `json:"query"`
	Category        domain.Category      `json:"category"`
	Technician      *string              `json:"technician"`
	StartTime       *int                 `json:"start_time"`
	EndTime         *int                 `json:"end_time"`
	AssignedTime    *int                 `json:"assigned_time"`
	StudentFreeTime *int                 `json:"student_free_time"`
	Status          domain.RequestStatus `json:"status"`
}

// NewRequestRecord maps a domain request onto the wire record.
func NewRequestRecord(request *domain.Request) RequestRecord {
	return RequestRecord{
		RequestID:       request.RequestID,
		StudentID:       request.StudentID,
		Query:           request.Query,
		Category:        request.Category,
		Technician:      request.Technician,
		StartTime:       request.StartTime,
		EndTime:         request.EndTime,
		AssignedTime:    request.AssignedTime,
		StudentFreeTime: request.StudentFreeTime,
		Status:          request.Status,
	}
}

// NewRequestRecords maps a slice of domain requests.
func NewRequestRecords(requests []domain.Request) []RequestRecord {
	records := make([]RequestRecord, 0, len(requests))
	for i := range requests {
		records = append(records, NewRequestRecord(&requests[i]))
	}
	return records
}

// UpdateStatusRequest payload for admin and technician status updates.
type UpdateStatusRequest struct {
	RequestID string               `json:"request_id"`
	Status    domain.RequestStatus `json:"status"`
}

// AnalyticsResponse reports request counts per category.
type AnalyticsResponse struct {
	ByCategory map[domain.Category]int `json:"by_category"`
}
