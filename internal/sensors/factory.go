package sensors

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/UnknownOlympus/hermes/internal/models"
	"github.com/UnknownOlympus/hermes/internal/repository"
)

// ProviderType represents the source of traffic snapshots.
type ProviderType string

const (
	// ProviderTypeSimulated fabricates readings for a fixed sensor layout.
	ProviderTypeSimulated ProviderType = "simulated"
	// ProviderTypeFeed fetches snapshots from a remote JSON feed.
	ProviderTypeFeed ProviderType = "feed"
	// ProviderTypeFile reads snapshots from a YAML or JSON file.
	ProviderTypeFile ProviderType = "file"
	// ProviderTypePostgres builds snapshots from readings stored in Postgres.
	ProviderTypePostgres ProviderType = "postgres"
)

// defaultFeedRateLimit is applied when a feed provider has no rate limit configured.
const defaultFeedRateLimit = 5

// ProviderConfig holds configuration for creating a snapshot provider.
type ProviderConfig struct {
	Type      ProviderType         // Type of provider to create
	Sensors   []models.Sensor      // Sensors layout (used by simulated provider)
	Seed      int64                // Seed for the simulated readings, 0 for time-based
	FeedURL   string               // FeedURL of the remote snapshot endpoint (used by feed provider)
	RateLimit int                  // RateLimit in requests per second (used by feed provider)
	FilePath  string               // FilePath of the snapshot fixture (used by file provider)
	Repo      repository.Interface // Repo with stored readings (used by postgres provider)
	Logger    *slog.Logger         // Logger for the provider
}

// NewProvider creates a snapshot provider based on the provided configuration.
//
// Supported provider types:
// - "simulated": random readings for the configured sensors
// - "feed": remote JSON feed (requires FeedURL)
// - "file": local snapshot fixture (requires FilePath)
// - "postgres": stored sensor readings (requires Repo)
//
// Returns an error if the provider type is unsupported or if provider creation fails.
func NewProvider(config ProviderConfig) (Provider, error) {
	switch config.Type {
	case ProviderTypeSimulated:
		return NewSimulatedProvider(config.Sensors, config.Seed, config.Logger), nil
	case ProviderTypeFeed:
		return newFeedProvider(config)
	case ProviderTypeFile:
		if config.FilePath == "" {
			return nil, errors.New("file path is required for file provider")
		}
		return NewFileProvider(config.FilePath, config.Logger), nil
	case ProviderTypePostgres:
		if config.Repo == nil {
			return nil, errors.New("repository is required for postgres provider")
		}
		return NewPostgresProvider(config.Repo, config.Logger), nil
	default:
		return nil, fmt.Errorf("unsupported provider type: %s", config.Type)
	}
}

// newFeedProvider creates a feed provider.
func newFeedProvider(config ProviderConfig) (Provider, error) {
	if config.FeedURL == "" {
		return nil, errors.New("feed URL is required for feed provider")
	}

	if config.RateLimit <= 0 {
		config.RateLimit = defaultFeedRateLimit
		config.Logger.Warn("Rate limit for sensor feed not set, set a default value", "value", config.RateLimit)
	}

	return NewFeedProvider(config.FeedURL, config.RateLimit, config.Logger), nil
}
