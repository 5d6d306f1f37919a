package epistat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/belcovid/internal/domain"
	"github.com/couchcryptid/belcovid/internal/observability"
	"golang.org/x/text/encoding/charmap"
)

// ErrStatus is returned when the feed answers with a non-200 status.
var ErrStatus = errors.New("unexpected status")

// Client downloads epistat feeds. Every call hits the network; nothing is
// cached and failed requests are not retried.
type Client struct {
	httpClient *http.Client
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a feed client with the given request timeout.
func NewClient(timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		metrics: metrics,
		logger:  logger,
	}
}

// Fetch downloads feed, decodes its ISO-8859-1 body and parses the JSON
// array of records.
func (c *Client) Fetch(ctx context.Context, feed domain.Feed) ([]domain.Record, error) {
	start := time.Now()
	records, err := c.fetch(ctx, feed)
	c.metrics.FetchDuration.WithLabelValues(feed.Name).Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.FetchRequests.WithLabelValues(feed.Name, "error").Inc()
		return nil, err
	}

	c.metrics.FetchRequests.WithLabelValues(feed.Name, "success").Inc()
	c.metrics.RecordsFetched.WithLabelValues(feed.Name).Add(float64(len(records)))
	c.logger.Debug("feed fetched",
		"feed", feed.Name,
		"records", len(records),
		"duration", time.Since(start),
	)
	return records, nil
}

func (c *Client) fetch(ctx context.Context, feed domain.Feed) ([]domain.Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feed.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s feed request: %w", feed.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%s feed: %w %d: %s", feed.Name, ErrStatus, resp.StatusCode, body)
	}

	var records []domain.Record
	body := charmap.ISO8859_1.NewDecoder().Reader(resp.Body)
	if err := json.NewDecoder(body).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode %s feed: %w", feed.Name, err)
	}
	return records, nil
}
