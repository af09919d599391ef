package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"propcore/internal/model"
	"propcore/internal/utils"
)

// LocationClient talks to the location-resolution collaborator, an
// autocomplete-style lookup that turns free text into ranked place
// candidates with opaque identifiers.
type LocationClient struct {
	baseURL    string
	apiKey     string
	apiHost    string
	httpClient *http.Client
}

// NewLocationClient creates a location resolver client with a bounded
// request timeout.
func NewLocationClient(baseURL, apiKey, apiHost string, timeout time.Duration) *LocationClient {
	return &LocationClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		apiHost: apiHost,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Resolve looks up a place name and returns the provider's ranked
// candidates. Callers use only the top candidate and treat any error as
// "no location found".
func (c *LocationClient) Resolve(ctx context.Context, query string) ([]model.LocationCandidate, error) {
	u, err := url.Parse(c.baseURL + "/auto-complete")
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	q := u.Query()
	q.Set("query", query)
	q.Set("hitsPerPage", "5")
	q.Set("page", "0")
	q.Set("lang", "en")
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
		return nil, fmt.Errorf("location resolver returned status %d", resp.StatusCode)
	}

	var payload struct {
		Hits []struct {
			Name       string      `json:"name"`
			ExternalID interface{} `json:"externalID"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	candidates := make([]model.LocationCandidate, 0, len(payload.Hits))
	for _, hit := range payload.Hits {
		if hit.Name == "" {
			continue
		}
		candidates = append(candidates, model.LocationCandidate{
			Name:       hit.Name,
			ExternalID: utils.AsString(hit.ExternalID),
		})
	}
	return candidates, nil
}

func (c *LocationClient) setAuthHeaders(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("X-RapidAPI-Key", c.apiKey)
	}
	if c.apiHost != "" {
		req.Header.Set("X-RapidAPI-Host", c.apiHost)
	}
}
