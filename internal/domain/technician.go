package domain

// Trade enumerates technician specialties.
type Trade string

const (
	TradeElectrician Trade = "electrician"
	TradePlumber     Trade = "plumber"
	TradeCarpenter   Trade = "carpenter"
	TradePainter     Trade = "painter"
)

// TechnicianStatus is derived from current load: free iff zero active jobs.
type TechnicianStatus string

const (
	TechnicianStatusFree TechnicianStatus = "free"
	TechnicianStatusBusy TechnicianStatus = "busy"
)

// Technician models a trade-person with a daily availability window.
// StartTime and EndTime are hours of day; CurrentLoad counts active
// assigned requests and must never go negative.
type Technician struct {
	Name         string
	Role         Trade
	StartTime    int
	EndTime      int
	CurrentLoad  int
	Status       TechnicianStatus
	PasswordHash string
}

// WindowValid reports whether the availability window is usable for
// matching. Malformed rows are skipped during selection, never fatal.
func (t Technician) WindowValid() bool {
	return t.StartTime >= 0 && t.EndTime <= 23 && t.StartTime <= t.EndTime
}
