package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/temoto/robotstxt"

	"scholarship-scraper/internal/observability"
)

type RobotsCache struct {
	cache  map[string]*RobotsTxt
	ttl    time.Duration
	mu     sync.RWMutex
	logger *observability.Logger
}

type RobotsTxt struct {
	data      *robotstxt.RobotsData
	expiresAt time.Time
}

func NewRobotsCache(ttl time.Duration, logger *observability.Logger) *RobotsCache {
	return &RobotsCache{
		cache:  make(map[string]*RobotsTxt),
		ttl:    ttl,
		logger: logger,
	}
}

// IsAllowed проверяет URL по robots.txt хоста.
// Если robots.txt недоступен по сети, считаем, что можно.
func (rc *RobotsCache) IsAllowed(ctx context.Context, target *url.URL, userAgent string, client *http.Client) (bool, error) {
	host := target.Scheme + "://" + target.Host

	rc.mu.RLock()
	cached, exists := rc.cache[host]
	rc.mu.RUnlock()

	if exists && time.Now().Before(cached.expiresAt) {
		// Cache hit
		return cached.data.TestAgent(robotsPath(target), userAgent), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, host+"/robots.txt", nil)
	if err != nil {
		return false, fmt.Errorf("failed to build robots.txt request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		rc.logger.Warn("robots.txt unavailable, assuming allowed", "host", host, "error", err.Error())
		return true, nil
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			rc.logger.Warn("Failed to close robots.txt body", "host", host, "error", err.Error())
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		rc.logger.Warn("Failed to read robots.txt, assuming allowed", "host", host, "error", err.Error())
		return true, nil
	}

	// 4xx: разрешено всё, 5xx: запрещено всё
	data, err := robotstxt.FromStatusAndBytes(resp.StatusCode, body)
	if err != nil {
		rc.logger.Warn("Failed to parse robots.txt, assuming allowed", "host", host, "error", err.Error())
		return true, nil
	}

	rc.mu.Lock()
	rc.cache[host] = &RobotsTxt{
		data:      data,
		expiresAt: time.Now().Add(rc.ttl),
	}
	rc.mu.Unlock()

	return data.TestAgent(robotsPath(target), userAgent), nil
}

func robotsPath(u *url.URL) string {
	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}
	return path
}
