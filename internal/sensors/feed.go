package sensors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/UnknownOlympus/hermes/internal/models"
	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"golang.org/x/time/rate"
)

var feedTracer = otel.Tracer("hermes-sensor-feed")

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Common errors for the feed provider.
var (
	ErrFeedInvalidSnapshot = errors.New("sensor feed returned an invalid snapshot")
	ErrFeedUnauthorized    = errors.New("sensor feed unauthorized")
	ErrFeedTooLarge        = errors.New("sensor feed response too large")
)

// maxFeedBodyBytes caps the feed response. A snapshot of a few hundred regions
// is well under 100 KiB.
const maxFeedBodyBytes = 4 << 20

// maxErrorBodyBytes caps how much of an error response is logged.
const maxErrorBodyBytes = 1 << 10

// FeedProvider fetches snapshots from a remote JSON sensor feed.
type FeedProvider struct {
	client   HTTPClient          // HTTP client for making requests
	url      string              // url of the snapshot endpoint
	limiter  *rate.Limiter       // limiter caps the request rate against the feed
	validate *validator.Validate // validate checks regions received from the feed
	log      *slog.Logger        // Logger for logging operations
}

// NewFeedProvider creates a feed provider with a traced HTTP client.
func NewFeedProvider(url string, rateLimit int, log *slog.Logger) *FeedProvider {
	const timeout = 10

	return NewFeedProviderWithClient(
		&http.Client{
			Timeout:   timeout * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		url,
		rate.NewLimiter(rate.Limit(rateLimit), rateLimit),
		log,
	)
}

// NewFeedProviderWithClient allows injecting a custom HTTP client and limiter.
func NewFeedProviderWithClient(client HTTPClient, url string, limiter *rate.Limiter, log *slog.Logger) *FeedProvider {
	return &FeedProvider{
		client:   client,
		url:      url,
		limiter:  limiter,
		validate: validator.New(),
		log:      log,
	}
}

// Snapshot fetches and validates the current snapshot from the feed.
// An empty response body yields an empty snapshot.
func (fp *FeedProvider) Snapshot(ctx context.Context) (snapshot *models.TrafficSnapshot, err error) {
	ctx, span := feedTracer.Start(ctx, "fetch-sensor-feed")
	defer func() {
		if err != nil {
			span.RecordError(err)
		}
		span.End()
	}()

	if err = fp.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit exceeded: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fp.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := fp.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute feed request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// continue
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, ErrFeedUnauthorized
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		fp.log.ErrorContext(ctx, "Sensor feed error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("sensor feed returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if len(body) > maxFeedBodyBytes {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrFeedTooLarge, maxFeedBodyBytes)
	}

	snapshot = &models.TrafficSnapshot{}
	if len(body) == 0 {
		fp.log.WarnContext(ctx, "Sensor feed returned an empty body")
		snapshot.Timestamp = time.Now()
		return snapshot, nil
	}

	if err = json.Unmarshal(body, snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode sensor feed response: %w", err)
	}

	if err = fp.validate.Struct(snapshot); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFeedInvalidSnapshot, err)
	}

	if snapshot.Timestamp.IsZero() {
		snapshot.Timestamp = time.Now()
	}

	fp.log.DebugContext(ctx, "Sensor feed snapshot received", "regions", len(snapshot.Regions))

	return snapshot, nil
}
