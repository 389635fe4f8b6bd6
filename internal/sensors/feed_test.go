package sensors_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/UnknownOlympus/hermes/internal/sensors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

// mockHTTPClient is a mock implementation of HTTPClient for testing.
type mockHTTPClient struct {
	doFunc func(req *http.Request) (*http.Response, error)
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return m.doFunc(req)
}

func respondWith(status int, body string) *mockHTTPClient {
	return &mockHTTPClient{
		doFunc: func(_ *http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode: status,
				Body:       io.NopCloser(bytes.NewBufferString(body)),
			}, nil
		},
	}
}

const feedURL = "http://feed.local/api/snapshot"

const validFeed = `{
	"timestamp": "2026-10-19T08:30:00Z",
	"regions": [
		{"id": "sensor_1", "location": {"lat": 8.7642, "lng": 78.1348}, "density": 0.25, "averageSpeed": 42},
		{"id": "sensor_2", "location": {"lat": 8.7680, "lng": 78.1375}, "density": 0.75, "averageSpeed": 18}
	]
}`

func TestFeedProvider_Snapshot(t *testing.T) {
	ctx := t.Context()
	logger := slog.Default()
	defaultRL := rate.NewLimiter(rate.Inf, 0)

	t.Run("successful fetch", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				assert.Equal(t, http.MethodGet, req.Method)
				assert.Equal(t, feedURL, req.URL.String())
				assert.Equal(t, "application/json", req.Header.Get("Accept"))

				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewBufferString(validFeed)),
				}, nil
			},
		}

		provider := sensors.NewFeedProviderWithClient(mockClient, feedURL, defaultRL, logger)
		snapshot, err := provider.Snapshot(ctx)

		require.NoError(t, err)
		require.Len(t, snapshot.Regions, 2)
		assert.Equal(t, time.Date(2026, 10, 19, 8, 30, 0, 0, time.UTC), snapshot.Timestamp.UTC())
		assert.Equal(t, "sensor_1", snapshot.Regions[0].ID)
		assert.InEpsilon(t, 8.7642, snapshot.Regions[0].Location.Latitude, 0.0001)
		assert.InEpsilon(t, 18, snapshot.Regions[1].AverageSpeed, 0.0001)
	})

	t.Run("empty body gives empty snapshot", func(t *testing.T) {
		provider := sensors.NewFeedProviderWithClient(respondWith(http.StatusOK, ""), feedURL, defaultRL, logger)
		snapshot, err := provider.Snapshot(ctx)

		require.NoError(t, err)
		assert.Empty(t, snapshot.Regions)
		assert.False(t, snapshot.Timestamp.IsZero())
	})

	t.Run("missing timestamp is filled in", func(t *testing.T) {
		provider := sensors.NewFeedProviderWithClient(respondWith(http.StatusOK, `{"regions": []}`), feedURL, defaultRL, logger)
		snapshot, err := provider.Snapshot(ctx)

		require.NoError(t, err)
		assert.False(t, snapshot.Timestamp.IsZero())
	})

	t.Run("unauthorized", func(t *testing.T) {
		provider := sensors.NewFeedProviderWithClient(respondWith(http.StatusForbidden, ""), feedURL, defaultRL, logger)
		snapshot, err := provider.Snapshot(ctx)

		require.Nil(t, snapshot)
		require.ErrorIs(t, err, sensors.ErrFeedUnauthorized)
	})

	t.Run("HTTP error status", func(t *testing.T) {
		provider := sensors.NewFeedProviderWithClient(
			respondWith(http.StatusServiceUnavailable, "maintenance"), feedURL, defaultRL, logger,
		)
		snapshot, err := provider.Snapshot(ctx)

		require.Nil(t, snapshot)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sensor feed returned status 503: maintenance")
	})

	t.Run("oversized response", func(t *testing.T) {
		huge := `{"regions": [], "padding": "` + strings.Repeat("x", 5<<20) + `"}`
		provider := sensors.NewFeedProviderWithClient(respondWith(http.StatusOK, huge), feedURL, defaultRL, logger)
		snapshot, err := provider.Snapshot(ctx)

		require.Nil(t, snapshot)
		require.ErrorIs(t, err, sensors.ErrFeedTooLarge)
	})

	t.Run("error body is truncated", func(t *testing.T) {
		provider := sensors.NewFeedProviderWithClient(
			respondWith(http.StatusBadGateway, strings.Repeat("e", 4096)), feedURL, defaultRL, logger,
		)
		snapshot, err := provider.Snapshot(ctx)

		require.Nil(t, snapshot)
		require.Error(t, err)
		assert.Less(t, len(err.Error()), 2048)
	})

	t.Run("invalid JSON response", func(t *testing.T) {
		provider := sensors.NewFeedProviderWithClient(respondWith(http.StatusOK, "invalid json"), feedURL, defaultRL, logger)
		snapshot, err := provider.Snapshot(ctx)

		require.Nil(t, snapshot)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decode sensor feed response")
	})

	t.Run("client error", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return nil, assert.AnError
			},
		}

		provider := sensors.NewFeedProviderWithClient(mockClient, feedURL, defaultRL, logger)
		snapshot, err := provider.Snapshot(ctx)

		require.Nil(t, snapshot)
		require.ErrorIs(t, err, assert.AnError)
	})

	t.Run("rejects invalid regions", func(t *testing.T) {
		cases := map[string]string{
			"density out of range":  `{"regions": [{"id": "a", "location": {"lat": 1, "lng": 1}, "density": 1.5, "averageSpeed": 30}]}`,
			"latitude out of range": `{"regions": [{"id": "a", "location": {"lat": 91, "lng": 1}, "density": 0.5, "averageSpeed": 30}]}`,
			"zero speed":            `{"regions": [{"id": "a", "location": {"lat": 1, "lng": 1}, "density": 0.5, "averageSpeed": 0}]}`,
			"missing id":            `{"regions": [{"location": {"lat": 1, "lng": 1}, "density": 0.5, "averageSpeed": 30}]}`,
			"duplicate ids": `{"regions": [
				{"id": "a", "location": {"lat": 1, "lng": 1}, "density": 0.5, "averageSpeed": 30},
				{"id": "a", "location": {"lat": 2, "lng": 2}, "density": 0.1, "averageSpeed": 40}
			]}`,
		}

		for name, body := range cases {
			t.Run(name, func(t *testing.T) {
				provider := sensors.NewFeedProviderWithClient(respondWith(http.StatusOK, body), feedURL, defaultRL, logger)
				snapshot, err := provider.Snapshot(ctx)

				require.Nil(t, snapshot)
				require.ErrorIs(t, err, sensors.ErrFeedInvalidSnapshot)
			})
		}
	})

	t.Run("rate limiter honours context", func(t *testing.T) {
		limiter := rate.NewLimiter(rate.Every(time.Hour), 1)
		require.True(t, limiter.Allow())

		cctx, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
		defer cancel()

		provider := sensors.NewFeedProviderWithClient(respondWith(http.StatusOK, validFeed), feedURL, limiter, logger)
		snapshot, err := provider.Snapshot(cctx)

		require.Nil(t, snapshot)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "rate limit exceeded")
	})
}

func TestFeedProvider_RealClient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(validFeed))
	}))
	defer server.Close()

	provider := sensors.NewFeedProvider(server.URL, 10, slog.Default())
	snapshot, err := provider.Snapshot(t.Context())

	require.NoError(t, err)
	assert.Len(t, snapshot.Regions, 2)
}
