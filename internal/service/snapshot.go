package service

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/UnknownOlympus/hermes/internal/metrics"
	"github.com/UnknownOlympus/hermes/internal/models"
	"github.com/UnknownOlympus/hermes/internal/sensors"
)

// SnapshotService keeps the most recent traffic snapshot obtained from a provider.
// Readers get an immutable copy through Latest, so estimations never observe a
// snapshot while it is being replaced.
type SnapshotService struct {
	log          *slog.Logger                           // Logger for logging service activities
	provider     sensors.Provider                       // Provider of traffic snapshots
	metrics      *metrics.Metrics                       // Metrics for tracking refreshes
	pollInterval time.Duration                          // Interval between snapshot refreshes
	latest       atomic.Pointer[models.TrafficSnapshot] // latest successfully fetched snapshot
}

// NewSnapshotService creates a new instance of SnapshotService.
// It takes a logger, a snapshot provider, metrics for monitoring and the refresh interval.
func NewSnapshotService(
	log *slog.Logger,
	provider sensors.Provider,
	metrics *metrics.Metrics,
	pollInterval time.Duration,
) *SnapshotService {
	return &SnapshotService{
		log:          log,
		provider:     provider,
		metrics:      metrics,
		pollInterval: pollInterval,
	}
}

// Run refreshes the snapshot immediately and then on every tick of the poll interval.
// It listens for a cancellation signal from the context to gracefully stop the service.
func (ss *SnapshotService) Run(ctx context.Context) {
	ticker := time.NewTicker(ss.pollInterval)
	defer ticker.Stop()

	ss.log.InfoContext(ctx, "Snapshot service started...", "interval", ss.pollInterval)
	_ = ss.Refresh(ctx)

	for {
		select {
		case <-ctx.Done():
			ss.log.InfoContext(ctx, "Snapshot service stopped.")
			return
		case <-ticker.C:
			_ = ss.Refresh(ctx)
		}
	}
}

// Refresh fetches a new snapshot from the provider. On failure the previous
// snapshot is kept and the error is returned.
func (ss *SnapshotService) Refresh(ctx context.Context) error {
	snapshot, err := ss.provider.Snapshot(ctx)
	if err != nil {
		ss.log.ErrorContext(ctx, "Failed to refresh traffic snapshot", "error", err)
		ss.metrics.SnapshotRefreshes.WithLabelValues("failure").Inc()
		return err
	}

	ss.latest.Store(snapshot)
	ss.metrics.SnapshotRefreshes.WithLabelValues("success").Inc()
	ss.metrics.SnapshotRegions.Set(float64(len(snapshot.Regions)))
	ss.log.DebugContext(ctx, "Traffic snapshot refreshed", "regions", len(snapshot.Regions), "timestamp", snapshot.Timestamp)

	return nil
}

// Latest returns a copy of the current snapshot. Before the first successful
// refresh it returns an empty snapshot.
func (ss *SnapshotService) Latest() models.TrafficSnapshot {
	snapshot := ss.latest.Load()
	if snapshot == nil {
		return models.TrafficSnapshot{}
	}

	regions := make([]models.Region, len(snapshot.Regions))
	copy(regions, snapshot.Regions)

	return models.TrafficSnapshot{Timestamp: snapshot.Timestamp, Regions: regions}
}

// Interval returns the refresh cadence.
func (ss *SnapshotService) Interval() time.Duration {
	return ss.pollInterval
}
