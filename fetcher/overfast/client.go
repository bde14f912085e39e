package overfast

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"owqueue/fetcher/requests"
	"owqueue/pkg/battletag"
	"owqueue/pkg/clock"
	"owqueue/pkg/messages"
	"owqueue/pkg/ranks"
)

const (
	// DefaultBaseURL is the public OverFast API instance.
	DefaultBaseURL = "https://overfast-api.tekrop.fr"

	// DefaultRequestDelay is the pause between requests on batch fetches,
	// to respect the API rate budget.
	DefaultRequestDelay = 100 * time.Millisecond

	// How long a fetched rank stays on the cache.
	rankCacheTTL = 5 * time.Minute
)

// CacheClient is the optional cache in front of the rank lookups.
type CacheClient interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// Client is the OverFast API client.
// The underlying HTTP client is reused across calls and released on Close.
type Client struct {
	baseURL      string
	http         *http.Client
	cache        CacheClient
	clock        clock.Clock
	requestDelay time.Duration
}

// ClientConfig is the dependency list for the client.
// Every field is optional except when testing.
type ClientConfig struct {
	BaseURL      string
	HTTPClient   *http.Client
	Cache        CacheClient
	Clock        clock.Clock
	RequestDelay time.Duration
}

// NewClient creates a OverFast client.
func NewClient(cfg ClientConfig) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = requests.NewClient()
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}
	if cfg.RequestDelay <= 0 {
		cfg.RequestDelay = DefaultRequestDelay
	}

	return &Client{
		baseURL:      strings.TrimSuffix(cfg.BaseURL, "/"),
		http:         cfg.HTTPClient,
		cache:        cfg.Cache,
		clock:        cfg.Clock,
		requestDelay: cfg.RequestDelay,
	}
}

// Close releases the idle connections held by the HTTP client.
func (c *Client) Close() {
	c.http.CloseIdleConnections()
}

// GetPlayerSummary fetches a player summary, including the competitive ranks.
// The battletag must already be in the API format (Name-1234).
func (c *Client) GetPlayerSummary(ctx context.Context, apiBattletag string) (*PlayerSummary, error) {
	url := fmt.Sprintf("%s/players/%s/summary", c.baseURL, apiBattletag)

	resp, err := requests.Get(ctx, c.http, url)
	if err != nil {
		return nil, fmt.Errorf(messages.RequestFailedMsg+": %w", url, err)
	}

	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var summary PlayerSummary
		if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
			return nil, fmt.Errorf(messages.FailedToParseMsg+": %w", err)
		}
		return &summary, nil

	case http.StatusNotFound:
		return nil, fmt.Errorf(messages.PlayerNotFoundMsg+": %w", apiBattletag, ErrPlayerNotFound)

	case http.StatusTooManyRequests:
		return nil, &RateLimitError{RetryAfter: parseRetryAfter(resp.Header)}

	case http.StatusInternalServerError:
		// The API returns 500 for private profiles sometimes.
		body, _ := io.ReadAll(resp.Body)
		if strings.Contains(strings.ToLower(string(body)), "private") {
			return nil, fmt.Errorf(messages.PrivateProfileMsg+": %w", apiBattletag, ErrPrivateProfile)
		}
		return nil, fmt.Errorf(messages.BadStatusCodeMsg, resp.StatusCode, url)

	default:
		return nil, fmt.Errorf(messages.BadStatusCodeMsg, resp.StatusCode, url)
	}
}

// FetchPlayerRank fetches the highest competitive rank of a player.
// Accepts both battletag formats. Lookup failures never surface to the
// caller: any fault degrades to the unknown rank.
func (c *Client) FetchPlayerRank(ctx context.Context, tag string) string {
	apiBattletag, err := battletag.Normalize(tag)
	if err != nil {
		log.Printf("Invalid battletag format: %s", tag)
		return ranks.Unknown
	}

	// Serve from the cache when available.
	if cached, ok := c.cachedRank(ctx, apiBattletag); ok {
		return cached
	}

	summary, err := c.GetPlayerSummary(ctx, apiBattletag)
	if err == nil {
		return c.classifyAndCache(ctx, apiBattletag, summary)
	}

	var rateLimit *RateLimitError
	switch {
	case errors.Is(err, ErrPlayerNotFound):
		log.Printf("Player not found: %s", tag)

	case errors.Is(err, ErrPrivateProfile):
		log.Printf("Private profile: %s", tag)

	case errors.As(err, &rateLimit):
		// Wait the hinted duration and retry exactly once.
		log.Printf("Rate limited, waiting %s", rateLimit.RetryAfter)
		c.clock.Sleep(rateLimit.RetryAfter)

		summary, retryErr := c.GetPlayerSummary(ctx, apiBattletag)
		if retryErr == nil {
			return c.classifyAndCache(ctx, apiBattletag, summary)
		}

	default:
		log.Printf("API error for %s: %v", tag, err)
	}

	return ranks.Unknown
}

// FetchManyRanks fetches the ranks of multiple players sequentially, sleeping
// between requests. The requests are never issued concurrently, to avoid
// bursting the API.
func (c *Client) FetchManyRanks(ctx context.Context, tags []string, delay time.Duration) map[string]string {
	if delay <= 0 {
		delay = c.requestDelay
	}

	results := make(map[string]string, len(tags))
	for i, tag := range tags {
		if i > 0 {
			c.clock.Sleep(delay)
		}
		results[tag] = c.FetchPlayerRank(ctx, tag)
	}

	return results
}

// classifyAndCache extracts the highest rank from the summary and stores it
// on the cache.
func (c *Client) classifyAndCache(ctx context.Context, apiBattletag string, summary *PlayerSummary) string {
	rank := ranks.Highest(summary.Competitive)

	if c.cache != nil {
		if err := c.cache.Set(ctx, rankCacheKey(apiBattletag), rank, rankCacheTTL); err != nil {
			log.Printf("Couldn't cache the rank for %s: %v", apiBattletag, err)
		}
	}

	return rank
}

// cachedRank returns the cached rank of a player, if present.
func (c *Client) cachedRank(ctx context.Context, apiBattletag string) (string, bool) {
	if c.cache == nil {
		return "", false
	}

	cached, err := c.cache.Get(ctx, rankCacheKey(apiBattletag))
	if err != nil || cached == "" {
		return "", false
	}
	return cached, true
}

// rankCacheKey generates the cache key for a battletag.
func rankCacheKey(apiBattletag string) string {
	return "rank:" + apiBattletag
}

// parseRetryAfter reads the Retry-After header, defaulting to one second.
func parseRetryAfter(header http.Header) time.Duration {
	seconds, err := strconv.Atoi(header.Get("Retry-After"))
	if err != nil || seconds < 0 {
		seconds = 1
	}
	return time.Duration(seconds) * time.Second
}
