package domain

// HealthStatus indicates doctor check outcomes.
type HealthStatus string

const (
	HealthOK    HealthStatus = "ok"
	HealthWarn  HealthStatus = "warn"
	HealthError HealthStatus = "error"
)

// HealthCheck captures a single diagnostic result.
type HealthCheck struct {
	Name    string
	Status  HealthStatus
	Details string
}

// HealthReport aggregates checks.
type HealthReport struct {
	Checks []HealthCheck
}

// Healthy reports whether no check ended in an error.
func (r HealthReport) Healthy() bool {
	for _, check := range r.Checks {
		if check.Status == HealthError {
			return false
		}
	}
	return true
}

// Counts tallies checks by status.
func (r HealthReport) Counts() (ok, warn, failed int) {
	for _, check := range r.Checks {
		switch check.Status {
		case HealthOK:
			ok++
		case HealthWarn:
			warn++
		case HealthError:
			failed++
		}
	}
	return ok, warn, failed
}
