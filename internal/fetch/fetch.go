package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	// UserAgent identifies the pipeline to venue sites.
	UserAgent = "discovr-pipeline/1.0 (github.com/hann12-34/discovr-pipeline)"

	defaultTimeout = 30 * time.Second
	retryCount     = 3
	retryWait      = 2 * time.Second
)

// Fetcher downloads listing pages for the HTML intake adapter. Transient
// failures are retried with a fixed backoff.
type Fetcher struct {
	client *resty.Client
}

// New creates a Fetcher with sane timeouts and retries.
func New() *Fetcher {
	client := resty.New().
		SetTimeout(defaultTimeout).
		SetRetryCount(retryCount).
		SetRetryWaitTime(retryWait).
		SetHeader("User-Agent", UserAgent).
		SetHeader("Accept", "text/html")
	return &Fetcher{client: client}
}

// Fetch retrieves the page body at url.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	resp, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetching %s: unexpected status %d", url, resp.StatusCode())
	}
	return resp.Body(), nil
}
