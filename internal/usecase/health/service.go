package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// SourcePinger checks that the index source is reachable.
type SourcePinger interface {
	Ping(ctx context.Context) error
	Loaded() bool
}

// Report aggregates health check results.
type Report struct {
	Status      Status
	Checks      map[string]CheckResult
	IndexLoaded bool
}

// Service coordinates health checks.
type Service struct {
	catalog SourcePinger
}

// New creates a Service.
func New(catalog SourcePinger) *Service {
	return &Service{catalog: catalog}
}

// Check probes the index source. A catalog that has not loaded yet is not
// a failure; loading is lazy by contract.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if err := s.catalog.Ping(ctx); err != nil {
		checks["index_source"] = CheckError
	} else {
		checks["index_source"] = CheckOK
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}

	return Report{Status: status, Checks: checks, IndexLoaded: s.catalog.Loaded()}
}
