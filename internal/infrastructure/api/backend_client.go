package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/damon-houk/fxrate-lookup/internal/domain/entity"
	"github.com/damon-houk/fxrate-lookup/internal/infrastructure/logger"
)

const (
	currenciesPath = "/currencies"

	// maxBodyBytes caps how much of a backend response is read
	maxBodyBytes = 4 << 20
)

// BackendClient implements the RateBackend interface over HTTP
type BackendClient struct {
	baseURL    string
	httpClient *http.Client
	logger     logger.Logger
}

// NewBackendClient creates a new rate backend client
func NewBackendClient(baseURL string, httpClient *http.Client, log logger.Logger) *BackendClient {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: 10 * time.Second,
		}
	}

	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &BackendClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     log,
	}
}

// FetchCurrencies retrieves the supported currency codes in backend order
func (c *BackendClient) FetchCurrencies(ctx context.Context) ([]string, error) {
	reqURL := c.baseURL + currenciesPath

	status, body, err := c.get(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	if status != http.StatusOK {
		return nil, fmt.Errorf("backend returned error status: %d, body: %s", status, truncate(body))
	}

	currencies, err := parseCurrencies(body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode currencies: %w", err)
	}

	c.logger.Debug("Currencies fetched", map[string]interface{}{
		"count": len(currencies),
	})

	return currencies, nil
}

// FetchRates retrieves the rate payload for a request. Error statuses that carry a
// JSON body are returned as payloads; the backend reports logical errors that way.
func (c *BackendClient) FetchRates(ctx context.Context, req entity.RateRequest) (*entity.RatePayload, error) {
	reqURL := req.URL(c.baseURL)

	status, body, err := c.get(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	payload, err := ParseRatePayload(body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode rates (status %d): %w", status, err)
	}

	c.logger.Debug("Rates fetched", map[string]interface{}{
		"url":     reqURL,
		"status":  status,
		"kind":    payload.Kind.String(),
		"entries": len(payload.Rates),
	})

	return payload, nil
}

// get performs a single GET and returns the status and body
func (c *BackendClient) get(ctx context.Context, reqURL string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Add Accept header to ensure JSON response
	req.Header.Add("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to execute request: %w", err)
	}

	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Warn("Error closing response body", map[string]interface{}{
				"url":   reqURL,
				"error": closeErr.Error(),
			})
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return resp.StatusCode, body, nil
}

func truncate(body []byte) string {
	const limit = 256
	if len(body) > limit {
		return string(body[:limit]) + "..."
	}
	return string(body)
}
