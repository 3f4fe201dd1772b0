package owm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-cli/internal/geo"
)

func testClient(srv *httptest.Server) *Client {
	c := NewClient(srv.Client(), "test-key")
	c.weatherURL = srv.URL + "/data/3.0/onecall"
	c.geocodeURL = srv.URL + "/geo/1.0/direct"
	c.httpCfg.Backoff = BackoffConfig{
		MaxRetries:      1,
		InitialInterval: time.Millisecond,
		MaxInterval:     5 * time.Millisecond,
	}
	return c
}

// TestFetchCurrent verifies the One Call request shape and that the payload
// is passed through untouched.
func TestFetchCurrent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "39.75", q.Get("lat"))
		assert.Equal(t, "-105", q.Get("lon"))
		assert.Equal(t, "test-key", q.Get("appid"))
		assert.Equal(t, "metric", q.Get("units"))
		w.Write([]byte(`{"current":{"dt":1756200000,"temp":21.4}}`))
	}))
	defer srv.Close()

	payload, err := testClient(srv).FetchCurrent(context.Background(), geo.Coordinate{Latitude: 39.75, Longitude: -105}, "metric")
	require.NoError(t, err)
	assert.JSONEq(t, `{"current":{"dt":1756200000,"temp":21.4}}`, string(payload))
}

// TestFetchCurrentServerError verifies provider failures surface as errors
// and never as partial payloads.
func TestFetchCurrentServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := testClient(srv).FetchCurrent(context.Background(), geo.Coordinate{}, "metric")
	assert.Error(t, err)
}

// TestFetchCurrentInvalidPayload verifies a non-JSON body is rejected rather
// than cached.
func TestFetchCurrentInvalidPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>maintenance</html>"))
	}))
	defer srv.Close()

	_, err := testClient(srv).FetchCurrent(context.Background(), geo.Coordinate{}, "metric")
	assert.Error(t, err)
}

// TestGeocode verifies the first result is used, rounded to 4 decimals.
func TestGeocode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "Denver", q.Get("q"))
		assert.Equal(t, "1", q.Get("limit"))
		w.Write([]byte(`[{"name":"Denver","lat":39.739236,"lon":-104.984862},{"name":"Denver","lat":1,"lon":1}]`))
	}))
	defer srv.Close()

	coord, err := testClient(srv).Geocode(context.Background(), "Denver")
	require.NoError(t, err)
	assert.Equal(t, geo.Coordinate{Latitude: 39.7392, Longitude: -104.9849}, coord)
}

// TestGeocodeNotFound verifies an empty result set maps to ErrCityNotFound.
func TestGeocodeNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	_, err := testClient(srv).Geocode(context.Background(), "Atlantis")
	assert.ErrorIs(t, err, ErrCityNotFound)
}
