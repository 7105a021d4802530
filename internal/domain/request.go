package domain

// RequestStatus enumerates lifecycle states for maintenance requests.
type RequestStatus string

const (
	RequestStatusPending      RequestStatus = "pending"
	RequestStatusMatched      RequestStatus = "matched"
	RequestStatusNoTimeMatch  RequestStatus = "no_time_match"
	RequestStatusNoTechnician RequestStatus = "no_technician"
	RequestStatusWorking      RequestStatus = "working"
	RequestStatusResolved     RequestStatus = "resolved"
	RequestStatusCompleted    RequestStatus = "completed"
)

// IsTerminal reports whether no further load changes may occur for a
// request in this status.
func (s RequestStatus) IsTerminal() bool {
	return s == RequestStatusResolved || s == RequestStatusCompleted
}

// Request is the aggregate for a submitted maintenance request. Field order
// mirrors the persisted record shape, which downstream tooling depends on:
// request_id, student_id, query, category, technician, start_time, end_time,
// assigned_time, student_free_time, status.
type Request struct {
	RequestID       string
	StudentID       string
	Query           string
	Category        Category
	Technician      *string
	StartTime       *int
	EndTime         *int
	AssignedTime    *int
	StudentFreeTime *int
	Status          RequestStatus
}
