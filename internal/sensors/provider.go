package sensors

import (
	"context"

	"github.com/UnknownOlympus/hermes/internal/models"
)

// Provider is an interface that defines a method for obtaining a traffic snapshot.
// Each call returns a fresh snapshot that the caller owns.
type Provider interface {
	Snapshot(ctx context.Context) (*models.TrafficSnapshot, error)
}
