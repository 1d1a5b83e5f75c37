package ratesource

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/api-sage/statutory-interest-service/src/internal/domain"
	"github.com/api-sage/statutory-interest-service/src/internal/logger"
)

// maxBodySize caps how much of the rates document we are willing to read.
// Real key-rate tables are a few kilobytes.
const maxBodySize = 4 << 20

// HTTPSource fetches the published key-rate table from a single configured
// URL. Redirects are followed by the default client; the timeout bounds the
// whole fetch so a stuck source can never hang a calculation request.
type HTTPSource struct {
	url    string
	client *http.Client
}

func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

func (s *HTTPSource) Fetch(ctx context.Context) ([]domain.RateStep, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build rates request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch rates from %s: %w", s.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("rates source %s returned status %d", s.url, resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read rates body: %w", err)
	}

	steps, err := ParseSteps(raw)
	if err != nil {
		return nil, err
	}

	logger.Info("rates source fetch success", logger.Fields{
		"url":   s.url,
		"steps": len(steps),
	})
	return steps, nil
}
