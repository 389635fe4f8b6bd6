package sensors

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/UnknownOlympus/hermes/internal/models"
	"github.com/UnknownOlympus/hermes/internal/repository"
)

// PostgresProvider builds snapshots from the latest reading of every sensor stored in Postgres.
type PostgresProvider struct {
	repo repository.Interface
	now  func() time.Time
	log  *slog.Logger
}

// NewPostgresProvider creates a provider reading from the given repository.
func NewPostgresProvider(repo repository.Interface, log *slog.Logger) *PostgresProvider {
	return &PostgresProvider{repo: repo, now: time.Now, log: log}
}

// Snapshot fetches the latest readings and converts them to regions.
// The snapshot timestamp is the most recent reading time, or now when there are none.
func (pp *PostgresProvider) Snapshot(ctx context.Context) (*models.TrafficSnapshot, error) {
	readings, err := pp.repo.FetchLatestReadings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sensor readings: %w", err)
	}

	var latest time.Time
	for _, reading := range readings {
		if reading.RecordedAt.After(latest) {
			latest = reading.RecordedAt
		}
	}
	if latest.IsZero() {
		latest = pp.now()
	}

	pp.log.DebugContext(ctx, "Snapshot built from stored readings", "readings", len(readings))

	return &models.TrafficSnapshot{Timestamp: latest, Regions: RegionsFromReadings(readings)}, nil
}
