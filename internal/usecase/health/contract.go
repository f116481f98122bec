package health

import "context"

// DBPinger checks key-value store availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// CatalogPinger checks the relational catalog, when one is configured.
type CatalogPinger interface {
	Ping(ctx context.Context) error
}

// AnalyzerChecker checks CV analyzer availability.
type AnalyzerChecker interface {
	HealthCheck(ctx context.Context) error
}
