package usgs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/raulserranomena/QuakeReport/internal/domain"
	"github.com/raulserranomena/QuakeReport/internal/observability"
)

// maxBodyBytes bounds the feed body read into memory.
const maxBodyBytes = 16 << 20

// ErrCircuitOpen is returned while the breaker rejects requests after
// repeated feed failures.
var ErrCircuitOpen = errors.New("usgs feed circuit breaker open")

// Client fetches and parses the USGS GeoJSON feed. Each Fetch issues exactly
// one GET; there are no retries.
type Client struct {
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a feed client whose requests time out after timeout.
func NewClient(timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		breaker:    newBreaker(),
		metrics:    metrics,
		logger:     logger,
	}
}

func newBreaker() *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "usgs",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
}

// Fetch performs one GET against url and parses the body. Transport errors,
// non-200 statuses and undecodable bodies are logged and returned.
func (c *Client) Fetch(ctx context.Context, url string) ([]domain.Earthquake, error) {
	start := time.Now()
	defer func() { c.metrics.FetchDuration.Observe(time.Since(start).Seconds()) }()

	body, err := c.get(ctx, url)
	if err != nil {
		outcome := "error"
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			outcome = "circuit_open"
			err = fmt.Errorf("%w: %v", ErrCircuitOpen, err)
		}
		c.metrics.FetchRequests.WithLabelValues(outcome).Inc()
		c.logger.Error("usgs fetch failed", "url", url, "error", err)
		return nil, err
	}

	res, err := ParseFeed(body, c.logger)
	if err != nil {
		c.metrics.FetchRequests.WithLabelValues("error").Inc()
		c.logger.Error("usgs feed parse failed", "url", url, "error", err)
		return nil, err
	}

	c.metrics.FetchRequests.WithLabelValues("success").Inc()
	c.metrics.RecordsParsed.Add(float64(len(res.Earthquakes)))
	c.metrics.RecordsSkipped.Add(float64(res.Skipped))
	c.logger.Info("usgs fetch finished", "records", len(res.Earthquakes), "skipped", res.Skipped)
	return res.Earthquakes, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	result, err := c.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Accept", "application/geo+json, application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("usgs request: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			return nil, fmt.Errorf("usgs API error: status %d: %s", resp.StatusCode, snippet)
		}

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		if err != nil {
			return nil, fmt.Errorf("read response: %w", err)
		}
		return body, nil
	})
	if err != nil {
		return nil, err
	}

	body, ok := result.([]byte)
	if !ok {
		return nil, errors.New("unexpected result type from circuit breaker")
	}
	return body, nil
}
