package overpass

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const twoNodes = `{
  "version": 0.6,
  "elements": [
    {"type": "node", "id": 42, "lat": 60.1700, "lon": 24.9400, "tags": {"entrance": "main", "addr:street": "Unioninkatu"}},
    {"type": "node", "id": 7, "lat": 60.1701, "lon": 24.9401, "tags": {"entrance": "service"}}
  ]
}`

const noNodes = `{"version": 0.6, "elements": []}`

// newTestClient points a client at srv and replaces the retry sleep with a recorder.
func newTestClient(srv *httptest.Server) (*Client, *[]time.Duration) {
	c := NewClient(Config{
		Endpoint:            srv.URL,
		AreaID:              3600034914,
		QueryTimeoutSeconds: 25,
		RetryDelaySeconds:   30,
		MaxParallel:         1,
	}, zap.NewNop())

	var slept []time.Duration
	c.sleep = func(ctx context.Context, d time.Duration) error {
		slept = append(slept, d)
		return ctx.Err()
	}
	return c, &slept
}

// queryOf extracts the submitted Overpass QL from a request.
func queryOf(t *testing.T, r *http.Request) string {
	body, err := io.ReadAll(r.Body)
	require.NoError(t, err)
	if values, err := url.ParseQuery(string(body)); err == nil && values.Get("data") != "" {
		return values.Get("data")
	}
	return string(body)
}

func TestBuildQuery(t *testing.T) {
	c := NewClient(Config{AreaID: 3600034914, QueryTimeoutSeconds: 25}, zap.NewNop())

	assert.Equal(t,
		"[out:json][timeout:25];\nnode[barrier~\"^(gate|lift_gate)$\"](area:3600034914)->.nodes;\n.nodes out;",
		c.BuildQuery(`barrier~"^(gate|lift_gate)$"`),
	)
}

func TestFetch_SortsNodesByID(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = queryOf(t, r)
		_, _ = io.WriteString(w, twoNodes)
	}))
	defer srv.Close()

	c, slept := newTestClient(srv)
	got, err := c.Fetch(context.Background(), "entrance")

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(7), got[0].ID)
	assert.Equal(t, int64(42), got[1].ID)
	assert.InDelta(t, 60.17, got[1].Lat, 1e-9)
	assert.InDelta(t, 24.94, got[1].Lon, 1e-9)
	assert.Equal(t, "Unioninkatu", got[1].Tags["addr:street"])
	assert.Contains(t, gotQuery, "node[entrance](area:3600034914)")
	assert.Empty(t, *slept)
}

func TestFetch_PostsFormEncodedQuery(t *testing.T) {
	var method, contentType, data string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		contentType = r.Header.Get("Content-Type")
		require.NoError(t, r.ParseForm())
		data = r.PostForm.Get("data")
		_, _ = io.WriteString(w, noNodes)
	}))
	defer srv.Close()

	c, _ := newTestClient(srv)
	_, err := c.Fetch(context.Background(), "name")

	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, method)
	assert.Equal(t, "application/x-www-form-urlencoded", contentType)
	assert.Equal(t, c.BuildQuery("name"), data)
}

func TestFetch_CancelledContextStopsRequest(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		_, _ = io.WriteString(w, twoNodes)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c, slept := newTestClient(srv)
	_, err := c.Fetch(ctx, "entrance")

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
	assert.Empty(t, *slept)
}

func TestFetch_EmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, noNodes)
	}))
	defer srv.Close()

	c, _ := newTestClient(srv)
	got, err := c.Fetch(context.Background(), "name")

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFetch_RetriesOnceAfterRateLimit(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = io.WriteString(w, twoNodes)
	}))
	defer srv.Close()

	c, slept := newTestClient(srv)
	got, err := c.Fetch(context.Background(), "entrance")

	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	assert.Equal(t, []time.Duration{30 * time.Second}, *slept)
}

func TestFetch_SecondRateLimitFails(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c, slept := newTestClient(srv)
	_, err := c.Fetch(context.Background(), "entrance")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTooManyRequests))
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	assert.Len(t, *slept, 1)
}

func TestFetch_ServerErrorNotRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, "runtime error")
	}))
	defer srv.Close()

	c, slept := newTestClient(srv)
	_, err := c.Fetch(context.Background(), "entrance")

	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrTooManyRequests))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Empty(t, *slept)
}

func TestFetch_CancelledDuringCoolDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(Config{Endpoint: srv.URL, RetryDelaySeconds: 30}, zap.NewNop())
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := c.Fetch(ctx, "entrance")

	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Less(t, time.Since(start), 5*time.Second)
}
