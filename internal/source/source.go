// Package source supplies the payload for getData requests.
//
// The default source answers with a static greeting. When an upstream URL
// is configured the payload is fetched over HTTP with retries; any upstream
// failure falls back to the static payload so a getData round trip always
// completes.
package source

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/bytedance/sonic"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
)

// DefaultMessage is the static demo payload.
const DefaultMessage = "Hello from extension!"

// maxPayloadBytes caps how much upstream body is read.
const maxPayloadBytes = 1 << 20

// Source produces the data for a dataResponse.
type Source interface {
	Fetch(ctx context.Context) (map[string]interface{}, error)
}

// Static always answers with the built-in greeting.
type Static struct{}

// Fetch returns the static payload.
func (Static) Fetch(context.Context) (map[string]interface{}, error) {
	return map[string]interface{}{"message": DefaultMessage}, nil
}

// Upstream fetches the payload from a configured HTTP endpoint.
type Upstream struct {
	client   *retryablehttp.Client
	url      string
	fallback Source
	logger   *zap.Logger
}

// NewUpstream creates an upstream source with retrying transport.
func NewUpstream(url string, timeout time.Duration, logger *zap.Logger) *Upstream {
	client := retryablehttp.NewClient()
	client.RetryMax = 2
	client.HTTPClient.Timeout = timeout
	client.Logger = nil // zap below, not retryablehttp's own logger

	return &Upstream{
		client:   client,
		url:      url,
		fallback: Static{},
		logger:   logger,
	}
}

// Fetch returns the upstream payload, or the static fallback when the
// upstream is unreachable or answers garbage. Never returns an error for
// upstream trouble; getData must always produce a reply.
func (u *Upstream) Fetch(ctx context.Context) (map[string]interface{}, error) {
	payload, err := u.fetch(ctx)
	if err != nil {
		u.logger.Warn("Upstream data fetch failed, using static payload",
			zap.String("url", u.url),
			zap.Error(err),
		)
		return u.fallback.Fetch(ctx)
	}
	return payload, nil
}

func (u *Upstream) fetch(ctx context.Context) (map[string]interface{}, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, "GET", u.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build upstream request: %w", err)
	}

	resp, err := u.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("upstream returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read upstream body: %w", err)
	}

	var payload map[string]interface{}
	if err := sonic.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("upstream payload is not a JSON object: %w", err)
	}
	return payload, nil
}

// New selects a source: upstream when a URL is configured, static otherwise.
func New(upstreamURL string, timeout time.Duration, logger *zap.Logger) Source {
	if upstreamURL == "" {
		return Static{}
	}
	return NewUpstream(upstreamURL, timeout, logger)
}
