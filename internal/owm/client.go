// Package owm is the OpenWeatherMap collaborator: it fetches current weather
// payloads and geocodes city names. The rest of the program treats its
// results as opaque.
package owm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-cli/internal/geo"
)

// ErrCityNotFound is returned when geocoding yields no results.
var ErrCityNotFound = errors.New("city not found")

// Client talks to the OpenWeatherMap API: One Call 3.0 for weather data and
// the direct geocoding endpoint for city lookups.
type Client struct {
	apiKey     string
	weatherURL string
	geocodeURL string
	httpCfg    HTTPClientConfig
	circuit    *gobreaker.CircuitBreaker
}

// NewClient creates a Client over the shared HTTP client.
func NewClient(client *http.Client, apiKey string) *Client {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweathermap",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Client{
		apiKey:     apiKey,
		weatherURL: "https://api.openweathermap.org/data/3.0/onecall",
		geocodeURL: "https://api.openweathermap.org/geo/1.0/direct",
		httpCfg: HTTPClientConfig{
			Client: client,
			Backoff: BackoffConfig{
				MaxRetries:      3,
				InitialInterval: 500 * time.Millisecond,
				MaxInterval:     5 * time.Second,
			},
		},
		circuit: cb,
	}
}

// FetchCurrent retrieves the weather payload for coord. The payload is
// returned as raw JSON; callers cache and print it without interpreting
// provider-specific fields.
func (c *Client) FetchCurrent(ctx context.Context, coord geo.Coordinate, units string) (json.RawMessage, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("openweathermap api key is not configured")
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("lat", formatCoord(coord.Latitude))
		values.Set("lon", formatCoord(coord.Longitude))
		values.Set("appid", c.apiKey)
		values.Set("units", units)
		return http.NewRequest(http.MethodGet, c.weatherURL+"?"+values.Encode(), nil)
	}

	resp, err := doRequestWithResilience(ctx, c.httpCfg, c.circuit, buildRequest)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve weather data: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve weather data: %w", err)
	}
	if !json.Valid(payload) {
		return nil, fmt.Errorf("invalid weather payload from provider")
	}
	return json.RawMessage(payload), nil
}

// Geocode resolves a city name to coordinates using the first match from the
// direct geocoding endpoint, rounded to 4 decimal places.
func (c *Client) Geocode(ctx context.Context, city string) (geo.Coordinate, error) {
	if c.apiKey == "" {
		return geo.Coordinate{}, fmt.Errorf("openweathermap api key is not configured")
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("q", city)
		values.Set("limit", "1")
		values.Set("appid", c.apiKey)
		return http.NewRequest(http.MethodGet, c.geocodeURL+"?"+values.Encode(), nil)
	}

	resp, err := doRequestWithResilience(ctx, c.httpCfg, c.circuit, buildRequest)
	if err != nil {
		return geo.Coordinate{}, fmt.Errorf("failed to resolve city name: %w", err)
	}
	defer resp.Body.Close()

	var results []struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return geo.Coordinate{}, fmt.Errorf("failed to resolve city name: %w", err)
	}
	if len(results) == 0 {
		return geo.Coordinate{}, ErrCityNotFound
	}
	return geo.Coordinate{
		Latitude:  math.Round(results[0].Lat*1e4) / 1e4,
		Longitude: math.Round(results[0].Lon*1e4) / 1e4,
	}, nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
