package domain

// HealthStatus indicates doctor check outcomes.
type HealthStatus string

const (
	HealthOK    HealthStatus = "ok"
	HealthWarn  HealthStatus = "warn"
	HealthError HealthStatus = "error"
)

// HealthCheck captures a single diagnostic result. Hint, when set, tells the
// user how to fix a non-ok status.
type HealthCheck struct {
	Name    string
	Status  HealthStatus
	Details string
	Hint    string
}

// HealthReport aggregates checks.
type HealthReport struct {
	Checks []HealthCheck
}

// HasFailures reports whether any check came back in error state.
func (r HealthReport) HasFailures() bool {
	for _, check := range r.Checks {
		if check.Status == HealthError {
			return true
		}
	}
	return false
}
