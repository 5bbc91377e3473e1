package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
	// Unhealthy indicates total failure.
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
	db        DBPinger
	index     IndexChecker
	indexName string
	embedding EmbeddingChecker
}

// New creates a Service. index and embedding can be nil.
func New(db DBPinger, index IndexChecker, indexName string, embedding EmbeddingChecker) *Service {
	return &Service{db: db, index: index, indexName: indexName, embedding: embedding}
}

// Check runs health checks against all components. The database being down
// makes the report Unhealthy; a missing index or an unreachable embedding
// provider only degrades it, since lexical reads can still partially serve.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	dbDown := false
	if err := s.db.Ping(ctx); err != nil {
		checks["database"] = CheckError
		dbDown = true
	} else {
		checks["database"] = CheckOK
	}

	if s.index != nil && !dbDown {
		if ok, err := s.index.IndexExists(ctx, s.indexName); err != nil || !ok {
			checks["index"] = CheckError
		} else {
			checks["index"] = CheckOK
		}
	}

	if s.embedding != nil {
		if err := s.embedding.HealthCheck(ctx); err != nil {
			checks["embedding"] = CheckError
		} else {
			checks["embedding"] = CheckOK
		}
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}
	if dbDown {
		status = Unhealthy
	}

	return Report{Status: status, Checks: checks}
}
