package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"propcore/internal/model"
)

// PropertyClient talks to the property data source. The response body is
// returned decoded but untyped: the provider is known to switch between
// several envelope shapes, and classifying them is the normalizer's job,
// not the transport's.
type PropertyClient struct {
	baseURL    string
	apiKey     string
	apiHost    string
	httpClient *http.Client
}

// NewPropertyClient creates a property data source client with a bounded
// request timeout.
func NewPropertyClient(baseURL, apiKey, apiHost string, timeout time.Duration) *PropertyClient {
	return &PropertyClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		apiHost: apiHost,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Search fetches one page of raw property records for a structured query.
// Unset query fields are omitted from the request entirely.
func (c *PropertyClient) Search(ctx context.Context, query *model.UpstreamQuery) (interface{}, error) {
	u, err := url.Parse(c.baseURL + "/properties/list")
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	q := u.Query()
	if query.LocationExternalID != "" {
		q.Set("locationExternalIDs", query.LocationExternalID)
	}
	if query.Purpose != "" {
		q.Set("purpose", query.Purpose)
	}
	if query.CategoryID != "" {
		q.Set("categoryExternalID", query.CategoryID)
	}
	if query.MinPrice != nil {
		q.Set("priceMin", strconv.FormatFloat(*query.MinPrice, 'f', -1, 64))
	}
	if query.MaxPrice != nil {
		q.Set("priceMax", strconv.FormatFloat(*query.MaxPrice, 'f', -1, 64))
	}
	if query.RoomsMin != nil {
		q.Set("roomsMin", strconv.Itoa(*query.RoomsMin))
	}
	if query.Sort != "" {
		q.Set("sort", query.Sort)
	}
	q.Set("page", strconv.Itoa(query.Page))
	q.Set("hitsPerPage", strconv.Itoa(query.HitsPerPage))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setAuthHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("property source returned status %d", resp.StatusCode)
	}

	var raw interface{}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return raw, nil
}

func (c *PropertyClient) setAuthHeaders(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("X-RapidAPI-Key", c.apiKey)
	}
	if c.apiHost != "" {
		req.Header.Set("X-RapidAPI-Host", c.apiHost)
	}
}
