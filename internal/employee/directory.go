package employee

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/harshit001122/Tracking-system/internal/metrics"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"
)

// Directory lists the company's users. Implementations never fail: an
// unreachable directory reads as an empty one.
type Directory interface {
	Users(ctx context.Context) []ExternalUser
}

const defaultTimeout = 15 * time.Second

type HTTPDirectory struct {
	url     string
	timeout time.Duration
	limiter *rate.Limiter
}

// NewHTTPDirectory calls url at most rps times per second, each call bounded
// by timeout. rps <= 0 disables the limit.
func NewHTTPDirectory(url string, timeout time.Duration, rps float64) *HTTPDirectory {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	limit, burst := rate.Limit(rps), int(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	if burst < 1 {
		burst = 1
	}
	return &HTTPDirectory{
		url:     url,
		timeout: timeout,
		limiter: rate.NewLimiter(limit, burst),
	}
}

func (d *HTTPDirectory) Users(ctx context.Context) []ExternalUser {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	if err := d.limiter.Wait(ctx); err != nil {
		metrics.DirectoryFetches.WithLabelValues("throttled").Inc()
		slog.Warn("directory fetch throttled", "error", err)
		return []ExternalUser{}
	}

	users, err := d.fetch()
	if err != nil {
		metrics.DirectoryFetches.WithLabelValues("error").Inc()
		slog.Error("directory fetch failed", "url", d.url, "error", err)
		return []ExternalUser{}
	}
	metrics.DirectoryFetches.WithLabelValues("ok").Inc()
	slog.Debug("directory fetched", "count", len(users))
	return users
}

func (d *HTTPDirectory) fetch() ([]ExternalUser, error) {
	agent := fiber.Get(d.url).
		Timeout(d.timeout).
		Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON).
		UserAgent("Employee-Tracker/1.0")
	if err := agent.Parse(); err != nil {
		return nil, fmt.Errorf("parse directory url: %w", err)
	}

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return nil, fmt.Errorf("request directory: %w", errs[0])
	}
	if code < 200 || code > 299 {
		return nil, fmt.Errorf("directory returned status %d", code)
	}

	var users []ExternalUser
	if err := json.Unmarshal(body, &users); err != nil {
		return nil, fmt.Errorf("decode directory response: %w", err)
	}
	if users == nil {
		users = []ExternalUser{}
	}
	return users, nil
}
