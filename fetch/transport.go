package fetch

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// Transport is one way of getting bytes from a URL. Transports are tried in
// order; each failure carries the transport's name so the log shows which
// path gave up.
type Transport interface {
	Name() string
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// httpTransport downloads with a plain http.Client and the client's own
// notion of acceptable responses.
type httpTransport struct {
	name   string
	client *http.Client
}

// NewPrimaryTransport is the default download path.
func NewPrimaryTransport() Transport {
	return &httpTransport{
		name: "primary",
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// NewFallbackTransport is a more permissive client used when the primary
// path fails: longer dial budget, no connection reuse assumptions.
func NewFallbackTransport() Transport {
	return &httpTransport{
		name: "fallback",
		client: &http.Client{
			Timeout: 60 * time.Second,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 30 * time.Second,
				}).DialContext,
				ResponseHeaderTimeout: 60 * time.Second,
				DisableKeepAlives:     true,
			},
		},
	}
}

func (t *httpTransport) Name() string {
	return t.name
}

func (t *httpTransport) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%s transport build request: %w", t.name, err)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s transport: %w", t.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%s transport: unexpected status %d", t.name, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s transport read body: %w", t.name, err)
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("%s transport: empty response body", t.name)
	}
	return body, nil
}
