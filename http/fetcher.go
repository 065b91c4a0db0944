// Package http provides an HTTP-based implementation of llmstxt.Fetcher
// for remote documentation targets.
package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/llmstxt"
)

// Ensure Fetcher implements llmstxt.Fetcher at compile time.
var _ llmstxt.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves remote targets with plain GET requests. No headers are
// added and redirects follow the http.Client defaults.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Zero, the default, means requests only end with their context.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithClient sets the underlying HTTP client. The timeout option is applied
// to a copy of it.
func WithClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{}
	for _, opt := range opts {
		opt(f)
	}

	client := http.Client{}
	if f.client != nil {
		client = *f.client
	}
	if f.timeout > 0 {
		client.Timeout = f.timeout
	}
	f.client = &client

	return f
}

// Fetch retrieves the body of a remote target.
// A non-2xx response is an EHTTP error carrying the status code; transport
// failures (DNS, TLS, resets, timeouts) are ENETWORK errors.
func (f *Fetcher) Fetch(ctx context.Context, target *llmstxt.Target) (*llmstxt.Content, error) {
	if target.Kind != llmstxt.TargetRemote {
		return nil, llmstxt.Errorf(llmstxt.EINTERNAL, "http fetcher cannot fetch %s target %q", target.Kind, target.Input)
	}
	url := target.URL.String()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, llmstxt.WrapError(err, llmstxt.EINVALID, "invalid request for %s: %v", url, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, llmstxt.WrapError(err, llmstxt.ENETWORK, "network error fetching %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &llmstxt.Error{
			Code:    llmstxt.EHTTP,
			Message: "HTTP error " + resp.Status + " for " + url,
			Status:  resp.StatusCode,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, llmstxt.WrapError(err, llmstxt.ENETWORK, "network error reading %s: %v", url, err)
	}

	return &llmstxt.Content{
		Location:    url,
		Text:        string(body),
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}
