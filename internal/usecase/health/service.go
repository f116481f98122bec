package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
	// Unhealthy indicates the key-value store is down: nothing works without it.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	db       DBPinger
	catalog  CatalogPinger
	analyzer AnalyzerChecker
}

// New creates a Service. catalog and analyzer can be nil.
func New(db DBPinger, catalog CatalogPinger, analyzer AnalyzerChecker) *Service {
	return &Service{db: db, catalog: catalog, analyzer: analyzer}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	checks["database"] = result(s.db.Ping(ctx))
	if s.catalog != nil {
		checks["catalog"] = result(s.catalog.Ping(ctx))
	}
	if s.analyzer != nil {
		checks["analyzer"] = result(s.analyzer.HealthCheck(ctx))
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}
	if checks["database"] == CheckError {
		status = Unhealthy
	}

	return Report{Status: status, Checks: checks}
}

func result(err error) CheckResult {
	if err != nil {
		return CheckError
	}
	return CheckOK
}
