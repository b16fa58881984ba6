// Package riot is a rate-limited client for the Riot match and league APIs.
package riot

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	// Development keys allow 20 requests per second with a tighter
	// two-minute window; the limiter stays under the per-second cap and
	// 429 handling covers the rest.
	rateLimitDelay = 60 * time.Millisecond
	requestTimeout = 30 * time.Second
	initialBackoff = 1 * time.Second
	maxBackoff     = 60 * time.Second

	rankedSoloQueueID = 420
)

// NotFoundError reports a 404 from the API, e.g. an expired match.
type NotFoundError struct {
	URL string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("not found: %s", e.URL)
}

// Client talks to the Riot API for one platform/region pair.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	logger      *zap.SugaredLogger

	apiKey     string
	platform   string // e.g. "kr", league endpoints
	region     string // e.g. "asia", match endpoints
	maxRetries int
}

func NewClient(apiKey, platform, region string, maxRetries int, logger *zap.SugaredLogger) *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: requestTimeout},
		rateLimiter: rate.NewLimiter(rate.Every(rateLimitDelay), 1),
		logger:      logger,
		apiKey:      apiKey,
		platform:    platform,
		region:      region,
		maxRetries:  maxRetries,
	}
}

func (c *Client) platformURL(path string) string {
	return fmt.Sprintf("https://%s.api.riotgames.com%s", c.platform, path)
}

func (c *Client) regionURL(path string) string {
	return fmt.Sprintf("https://%s.api.riotgames.com%s", c.region, path)
}

// LeagueEntries fetches one page of a ranked ladder division.
func (c *Client) LeagueEntries(ctx context.Context, queue, tier, division string, page int) ([]LeagueEntry, error) {
	u := c.platformURL(fmt.Sprintf("/lol/league-exp/v4/entries/%s/%s/%s", queue, tier, division))
	u += "?page=" + strconv.Itoa(page)

	var entries []LeagueEntry
	if err := c.doRequest(ctx, u, &entries); err != nil {
		return nil, fmt.Errorf("failed to get league entries %s/%s/%s page %d: %w", queue, tier, division, page, err)
	}
	return entries, nil
}

// MatchIDs fetches a player's recent ranked solo-queue match IDs.
func (c *Client) MatchIDs(ctx context.Context, puuid string, count int) ([]string, error) {
	q := url.Values{}
	q.Set("queue", strconv.Itoa(rankedSoloQueueID))
	q.Set("type", "ranked")
	q.Set("start", "0")
	q.Set("count", strconv.Itoa(count))
	u := c.regionURL(fmt.Sprintf("/lol/match/v5/matches/by-puuid/%s/ids", puuid)) + "?" + q.Encode()

	var ids []string
	if err := c.doRequest(ctx, u, &ids); err != nil {
		return nil, fmt.Errorf("failed to get match ids for %s: %w", puuid, err)
	}
	return ids, nil
}

// Match fetches one full match payload.
func (c *Client) Match(ctx context.Context, matchID string) (*Match, error) {
	u := c.regionURL("/lol/match/v5/matches/" + matchID)

	var m Match
	if err := c.doRequest(ctx, u, &m); err != nil {
		return nil, fmt.Errorf("failed to get match %s: %w", matchID, err)
	}
	return &m, nil
}

// doRequest performs a GET with rate limiting, retry on transient failures
// and Retry-After handling on 429.
func (c *Client) doRequest(ctx context.Context, u string, result any) error {
	var lastErr error
	backoff := initialBackoff

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter error: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("X-Riot-Token", c.apiKey)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("request failed: %w", err)
			if attempt < c.maxRetries {
				c.sleep(ctx, backoff)
				backoff = minDuration(backoff*2, maxBackoff)
				continue
			}
			return lastErr
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return fmt.Errorf("failed to read response body: %w", readErr)
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			if err := json.Unmarshal(body, result); err != nil {
				return fmt.Errorf("failed to parse response: %w", err)
			}
			return nil

		case resp.StatusCode == http.StatusTooManyRequests:
			lastErr = fmt.Errorf("rate limited (HTTP 429)")
			wait := backoff
			if ra := resp.Header.Get("Retry-After"); ra != "" {
				if secs, err := strconv.Atoi(ra); err == nil {
					wait = time.Duration(secs) * time.Second
				}
			}
			if attempt < c.maxRetries {
				c.logger.Warnw("Rate limited, backing off", "url", u, "wait", wait)
				c.sleep(ctx, wait)
				backoff = minDuration(backoff*2, maxBackoff)
				continue
			}
			return lastErr

		case resp.StatusCode == http.StatusNotFound:
			return &NotFoundError{URL: u}

		case resp.StatusCode >= 500:
			lastErr = fmt.Errorf("server error (HTTP %d)", resp.StatusCode)
			if attempt < c.maxRetries {
				c.logger.Warnw("Server error, retrying", "url", u, "status", resp.StatusCode)
				c.sleep(ctx, backoff)
				backoff = minDuration(backoff*2, maxBackoff)
				continue
			}
			return lastErr

		default:
			return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(body))
		}
	}

	return fmt.Errorf("max retries exceeded: %w", lastErr)
}

func (c *Client) sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

func minDuration(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}
