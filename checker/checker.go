package checker

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/host"
	"golang.org/x/sync/singleflight"

	"relman/api"
	"relman/logger"
)

// DefaultTTL is how long a status is served from cache.
const DefaultTTL = 10 * time.Second

type SystemStatus struct {
	Uptime       uint64    `json:"uptime_seconds"`
	UptimeString string    `json:"uptime_string"`
	APIBaseURL   string    `json:"api_base_url"`
	APIReachable bool      `json:"api_reachable"`
	CheckedAt    time.Time `json:"checked_at"`
}

// UptimeFunc reports the host uptime in seconds.
type UptimeFunc func(ctx context.Context) (uint64, error)

// Checker probes the host and the directory backend. Results are cached
// for TTL, and callers arriving while a probe runs share its result, so
// every open client polling /api/status costs one probe.
type Checker struct {
	API    *api.Client
	TTL    time.Duration
	Uptime UptimeFunc

	flight singleflight.Group

	mu       sync.Mutex
	cached   SystemStatus
	cachedAt time.Time
}

func New(apiBaseURL string, timeout time.Duration) *Checker {
	return &Checker{
		API:    api.NewClient(apiBaseURL, api.WithHTTPClient(&http.Client{Timeout: timeout})),
		TTL:    DefaultTTL,
		Uptime: host.UptimeWithContext,
	}
}

// CheckSystem returns the cached status or probes again once it is stale.
// The cache lock is never held while probing.
func (c *Checker) CheckSystem(ctx context.Context) (SystemStatus, error) {
	if status, ok := c.fresh(); ok {
		return status, nil
	}

	v, err, _ := c.flight.Do("status", func() (interface{}, error) {
		if status, ok := c.fresh(); ok {
			return status, nil
		}
		status, err := c.check(ctx)
		if err != nil {
			return status, err
		}
		c.mu.Lock()
		c.cached = status
		c.cachedAt = status.CheckedAt
		c.mu.Unlock()
		return status, nil
	})
	return v.(SystemStatus), err
}

func (c *Checker) fresh() (SystemStatus, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cachedAt.IsZero() || time.Since(c.cachedAt) >= c.TTL {
		return SystemStatus{}, false
	}
	return c.cached, true
}

func (c *Checker) check(ctx context.Context) (SystemStatus, error) {
	status := SystemStatus{APIBaseURL: c.API.BaseURL()}

	uptime, err := c.Uptime(ctx)
	if err != nil {
		return status, err
	}
	status.Uptime = uptime
	status.UptimeString = FormatUptime(uptime)

	status.APIReachable = c.probe(ctx)
	status.CheckedAt = time.Now()
	return status, nil
}

// probe reports whether the backend answers its statistics endpoint.
func (c *Checker) probe(ctx context.Context) bool {
	if _, err := c.API.Stats(ctx); err != nil {
		logger.Warn("CheckSystem: backend %s unreachable: %v", c.API.BaseURL(), err)
		return false
	}
	return true
}

// FormatUptime renders seconds as a duration truncated to the minute.
func FormatUptime(seconds uint64) string {
	d := time.Duration(seconds) * time.Second
	if d < time.Minute {
		return d.String()
	}
	return strings.TrimSuffix(d.Truncate(time.Minute).String(), "0s")
}
