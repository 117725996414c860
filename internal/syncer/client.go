package syncer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/lizardsystem/geodin/internal/platform/timeouts"
)

// Fetcher retrieves JSON documents from the Geodin API.
type Fetcher interface {
	FetchJSON(ctx context.Context, sourceURL string, target any) error
}

// Client is the retrying HTTP client for the Geodin API.
type Client struct {
	http *retryablehttp.Client
}

// NewClient creates a Geodin API client with retry defaults.
func NewClient() *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 3
	rc.RetryWaitMin = 500 * time.Millisecond
	rc.RetryWaitMax = 5 * time.Second
	rc.Logger = nil
	rc.HTTPClient.Timeout = timeouts.Fetch
	return &Client{http: rc}
}

// FetchJSON retrieves the JSON document at sourceURL into target.
func (c *Client) FetchJSON(ctx context.Context, sourceURL string, target any) error {
	if c == nil || c.http == nil {
		return fmt.Errorf("client is not configured")
	}
	if strings.TrimSpace(sourceURL) == "" {
		return fmt.Errorf("source url is required")
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return fmt.Errorf("build request for %s: %w", sourceURL, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", sourceURL, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("no json found at %s: http status code was %d, text was %q",
			sourceURL, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("decode json from %s: %w", sourceURL, err)
	}
	return nil
}

var _ Fetcher = (*Client)(nil)
