package observability

import (
	"strconv"
	"sync"
	"time"
)

// Metrics provides basic in-memory counters for the HTTP surface and the
// intake pipeline.
type Metrics struct {
	mu              sync.Mutex
	requestCount    map[string]int64
	errorCount      map[string]int64
	intakeOutcomes  map[string]int64
	duplicatesFound int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requestCount:   make(map[string]int64),
		errorCount:     make(map[string]int64),
		intakeOutcomes: make(map[string]int64),
	}
}

// RecordRequest increments counters for HTTP requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := pathKey(path, method, status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + code
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

// RecordIntakeOutcome tallies a submission by its selection outcome.
func (m *Metrics) RecordIntakeOutcome(outcome string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.intakeOutcomes[outcome]++
}

// RecordDuplicate tallies an advisory duplicate hit.
func (m *Metrics) RecordDuplicate() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.duplicatesFound++
}

// Snapshot returns a copy of the intake counters for reporting endpoints.
func (m *Metrics) Snapshot() (outcomes map[string]int64, duplicates int64) {
	if m == nil {
		return map[string]int64{}, 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	outcomes = make(map[string]int64, len(m.intakeOutcomes))
	for k, v := range m.intakeOutcomes {
		outcomes[k] = v
	}
	return outcomes, m.duplicatesFound
}

func pathKey(path, method string, status int) string {
	return path + "|" + method + "|" + strconv.Itoa(status)
}
