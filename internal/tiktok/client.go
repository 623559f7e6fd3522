// Package tiktok discovers a creator's newest video by scraping their
// public profile page. TikTok has no official structured API for this,
// so extraction is pattern matching over raw markup and is expected to
// fail quietly when the upstream page changes.
package tiktok

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"sync"
	"time"
)

const profileBaseURL = "https://www.tiktok.com"

// ErrNoVideo means the profile page contained no recognizable video id.
// Callers treat it as "no update", not as a failure to report.
var ErrNoVideo = errors.New("no video id found on profile page")

var videoIDPattern = regexp.MustCompile(`"id":"(\d+)"`)

// Client fetches TikTok profile pages with basic request spacing
type Client struct {
	httpClient *http.Client
	baseURL    string

	mu          sync.Mutex
	lastRequest time.Time
	minInterval time.Duration
}

// NewClient creates a new TikTok profile client
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL:     profileBaseURL,
		minInterval: 500 * time.Millisecond,
	}
}

// LatestVideoID extracts the first embedded numeric video id from a
// creator's profile page
func (c *Client) LatestVideoID(ctx context.Context, username string) (string, error) {
	c.mu.Lock()
	if elapsed := time.Since(c.lastRequest); elapsed < c.minInterval {
		time.Sleep(c.minInterval - elapsed)
	}
	c.lastRequest = time.Now()
	c.mu.Unlock()

	url := fmt.Sprintf("%s/@%s?lang=en", c.baseURL, username)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; StreamNotify/1.0)")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("profile fetch for %s failed: status %d", username, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read profile page: %w", err)
	}

	match := videoIDPattern.FindSubmatch(body)
	if match == nil {
		return "", fmt.Errorf("%w: %s", ErrNoVideo, username)
	}
	return string(match[1]), nil
}

// VideoURL returns the public link for a creator's video
func VideoURL(username, videoID string) string {
	return fmt.Sprintf("%s/@%s/video/%s", profileBaseURL, username, videoID)
}
