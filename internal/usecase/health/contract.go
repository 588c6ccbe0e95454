package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// SummarizerChecker checks summary provider availability.
type SummarizerChecker interface {
	HealthCheck(ctx context.Context) error
}
