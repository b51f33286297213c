// Package overpass fetches OpenStreetMap nodes matching a tag filter from an
// Overpass API endpoint, scoped to one administrative area.
package overpass

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"osm-linker/core/osmtags"
	"osm-linker/core/spatial"

	"github.com/serjvanilla/go-overpass"
	"go.uber.org/zap"
)

// ErrTooManyRequests is returned when the Overpass server rate limits us.
var ErrTooManyRequests = errors.New("overpass: too many requests")

// Fetcher returns all nodes matching a tag filter.
type Fetcher interface {
	Fetch(ctx context.Context, filter string) ([]spatial.Candidate, error)
}

// Client is a Fetcher backed by an Overpass interpreter.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *zap.Logger
	sleep      func(ctx context.Context, d time.Duration) error
}

// NewClient creates an Overpass client.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.httpTimeout()},
		logger:     logger,
		sleep:      sleepContext,
	}
}

// BuildQuery renders the node query for filter, scoped to the configured area.
func (c *Client) BuildQuery(filter string) string {
	timeout := c.cfg.QueryTimeoutSeconds
	if timeout <= 0 {
		timeout = 25
	}
	return fmt.Sprintf("[out:json][timeout:%d];\nnode[%s](area:%d)->.nodes;\n.nodes out;", timeout, filter, c.cfg.AreaID)
}

// Fetch runs the node query for filter. A rate-limited request is retried
// once after the configured cool-down; any other failure is returned as is.
// No matches is an empty slice and a nil error.
func (c *Client) Fetch(ctx context.Context, filter string) ([]spatial.Candidate, error) {
	query := c.BuildQuery(filter)

	result, err := c.query(ctx, query)
	if errors.Is(err, ErrTooManyRequests) {
		c.logger.Warn("Overpass rate limit hit, retrying once",
			zap.String("filter", filter),
			zap.Duration("delay", c.cfg.RetryDelay()),
		)
		if err := c.sleep(ctx, c.cfg.RetryDelay()); err != nil {
			return nil, err
		}
		result, err = c.query(ctx, query)
	}
	if err != nil {
		return nil, fmt.Errorf("overpass query for %s failed: %w", filter, err)
	}

	return nodesToCandidates(result), nil
}

func (c *Client) query(ctx context.Context, query string) (overpass.Result, error) {
	maxParallel := c.cfg.MaxParallel
	if maxParallel <= 0 {
		maxParallel = 1
	}
	transport := &statusClient{ctx: ctx, client: c.httpClient}
	client := overpass.NewWithSettings(c.cfg.Endpoint, maxParallel, transport)

	result, err := client.Query(query)
	if transport.rateLimited {
		return result, ErrTooManyRequests
	}
	if err != nil && ctx.Err() != nil {
		return result, ctx.Err()
	}
	return result, err
}

// statusClient binds requests to the fetch context and turns 429 responses
// into ErrTooManyRequests before the overpass package reads the body.
type statusClient struct {
	ctx         context.Context
	client      *http.Client
	rateLimited bool
}

var _ overpass.HTTPClient = (*statusClient)(nil)

// PostForm implements overpass.HTTPClient.
func (s *statusClient) PostForm(u string, data url.Values) (*http.Response, error) {
	req, err := http.NewRequestWithContext(s.ctx, http.MethodPost, u, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		resp.Body.Close()
		s.rateLimited = true
		return nil, ErrTooManyRequests
	}
	return resp, nil
}

// nodesToCandidates flattens the result's node map into id order.
func nodesToCandidates(result overpass.Result) []spatial.Candidate {
	candidates := make([]spatial.Candidate, 0, len(result.Nodes))
	for _, node := range result.Nodes {
		candidates = append(candidates, spatial.Candidate{
			ID:   node.ID,
			Lat:  node.Lat,
			Lon:  node.Lon,
			Tags: osmtags.Tags(node.Tags),
		})
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].ID < candidates[j].ID
	})
	return candidates
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
