// Package geocode resolves coordinates to place names. It is a collaborator
// of the HTTP shell only; the trip simulator never calls it.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/openfleet/eldsim/internal/domain/shared"
)

const (
	defaultBaseURL     = "https://geocode.maps.co"
	defaultFallbackURL = "https://nominatim.openstreetmap.org"
	defaultTimeout     = 10 * time.Second
)

// Place is a best-effort reverse-geocoding result.
type Place struct {
	Name    string            `json:"name"`
	Lat     float64           `json:"lat"`
	Lon     float64           `json:"lon"`
	Address map[string]string `json:"address,omitempty"`
}

// Client queries a primary geocoding service and falls back to Nominatim
// when the primary is unavailable.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	fallbackURL string
	apiKey      string
}

// ClientOptions configures a geocoding client; zero values use defaults.
type ClientOptions struct {
	BaseURL     string
	FallbackURL string
	APIKey      string
	Timeout     time.Duration
}

// NewClient creates a geocoding client.
func NewClient(opts ClientOptions) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.FallbackURL == "" {
		opts.FallbackURL = defaultFallbackURL
	}
	if opts.Timeout == 0 {
		opts.Timeout = defaultTimeout
	}
	return &Client{
		httpClient:  &http.Client{Timeout: opts.Timeout},
		baseURL:     opts.BaseURL,
		fallbackURL: opts.FallbackURL,
		apiKey:      opts.APIKey,
	}
}

type reverseResponse struct {
	Address map[string]string `json:"address"`
}

// ReverseLookup maps coordinates to a named place. When both services fail,
// the error from the fallback is returned.
func (c *Client) ReverseLookup(ctx context.Context, lat, lon float64) (*Place, error) {
	primary := fmt.Sprintf("%s/reverse?lat=%f&lon=%f&api_key=%s",
		c.baseURL, lat, lon, url.QueryEscape(c.apiKey))

	place, err := c.lookup(ctx, primary, lat, lon)
	if err == nil {
		return place, nil
	}

	fallback := fmt.Sprintf("%s/reverse?format=json&lat=%f&lon=%f&zoom=18&addressdetails=1",
		c.fallbackURL, lat, lon)

	place, fallbackErr := c.lookup(ctx, fallback, lat, lon)
	if fallbackErr != nil {
		return nil, fmt.Errorf("reverse geocoding failed: %w", fallbackErr)
	}
	return place, nil
}

func (c *Client) lookup(ctx context.Context, requestURL string, lat, lon float64) (*Place, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "eldsim/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocoding request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoding request failed with status code %d", resp.StatusCode)
	}

	var parsed reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to parse geocoding response: %w", err)
	}

	return &Place{
		Name:    pickName(parsed.Address, lat, lon),
		Lat:     lat,
		Lon:     lon,
		Address: parsed.Address,
	}, nil
}

// pickName prefers the most specific settlement name available, falling back
// to the synthesized coordinate name.
func pickName(address map[string]string, lat, lon float64) string {
	for _, key := range []string{"city", "village", "town", "hamlet", "suburb", "neighbourhood", "county"} {
		if name := address[key]; name != "" {
			return name
		}
	}
	return shared.SynthesizeName(lat, lon)
}
