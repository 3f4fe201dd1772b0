package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/i474232898/weather-cli/internal/cache"
	"github.com/i474232898/weather-cli/internal/config"
	"github.com/i474232898/weather-cli/internal/geo"
	"github.com/i474232898/weather-cli/internal/location"
	"github.com/i474232898/weather-cli/internal/owm"
)

// EnvToken names the environment variable holding the OpenWeatherMap token.
const EnvToken = "OWM_TOKEN"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logrus.New().Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "weather",
		Usage: "retrieve and display weather data from OpenWeatherMap",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "units",
				Aliases: []string{"u"},
				Usage:   "measurement units: metric, imperial or standard",
			},
			&cli.BoolFlag{
				Name:    "force",
				Aliases: []string{"f"},
				Usage:   "force update by bypassing the cache validity check",
			},
			&cli.Float64Flag{
				Name:    "lat",
				Aliases: []string{"latitude"},
				Usage:   "latitude of the target location",
			},
			&cli.Float64Flag{
				Name:    "lon",
				Aliases: []string{"longitude"},
				Usage:   "longitude of the target location",
			},
			&cli.StringFlag{
				Name:    "city",
				Aliases: []string{"c"},
				Usage:   "city name for the target location",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "enable verbose output",
			},
			&cli.BoolFlag{
				Name:    "silent",
				Aliases: []string{"s"},
				Usage:   "suppress normal output",
			},
		},
		Action: run,
	}
}

// run is the application composition root: it wires the location cascade, the
// cache store and the OpenWeatherMap client, then executes one
// resolve -> validate -> fetch -> persist -> print pass.
func run(c *cli.Context) error {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	if c.Bool("verbose") {
		log.SetLevel(logrus.DebugLevel)
	}

	// Process environment always wins over .env contents.
	if err := godotenv.Load(); err != nil {
		log.Debugf("no .env file loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	token := pickToken(os.Getenv(EnvToken), cfg.Token)
	if token == "" {
		return fmt.Errorf("no OpenWeatherMap token found: set %s or add %s=... to .env or weather.conf", EnvToken, EnvToken)
	}

	units, err := pickUnits(c.String("units"), cfg.Units)
	if err != nil {
		return err
	}

	httpClient := &http.Client{Timeout: 10 * time.Second}
	client := owm.NewClient(httpClient, token)

	var lat, lon *float64
	if c.IsSet("lat") {
		v := c.Float64("lat")
		lat = &v
	}
	if c.IsSet("lon") {
		v := c.Float64("lon")
		lon = &v
	}

	sources := []location.Source{
		location.ArgsSource{Latitude: lat, Longitude: lon},
		location.CitySource{City: c.String("city"), Geocoder: client},
		location.EnvSource{},
		location.NewConfigSource(),
		location.NewTermuxSource(log),
	}

	ctx := c.Context
	target, err := location.NewResolver(log, sources...).Resolve(ctx)
	if err != nil {
		return err
	}

	path, err := cache.DefaultPath()
	if err != nil {
		return err
	}
	store := cache.NewFileStore(path, log)

	policy := cache.DefaultPolicy
	if cfg.CacheMaxRange != nil {
		policy.MaxRangeMeters = *cfg.CacheMaxRange
	}
	if cfg.CacheMaxAge != nil {
		policy.MaxAgeSeconds = *cfg.CacheMaxAge
	}

	fetch := func(ctx context.Context, coord geo.Coordinate) (json.RawMessage, error) {
		return client.FetchCurrent(ctx, coord, units)
	}
	payload, err := loadOrRefresh(ctx, log, store, policy, target, time.Now(), c.Bool("force"), fetch)
	if err != nil {
		return err
	}

	if !c.Bool("silent") {
		return printPayload(c.App.Writer, payload)
	}
	return nil
}

// fetchFunc obtains a fresh weather payload for a coordinate.
type fetchFunc func(ctx context.Context, coord geo.Coordinate) (json.RawMessage, error)

// loadOrRefresh serves the cached payload when the record is still valid for
// target under policy, and otherwise fetches a replacement and persists it.
// force skips the validity check entirely; the prior record stays on disk
// until the new fetch has succeeded, so a failed fetch never loses data.
func loadOrRefresh(
	ctx context.Context,
	log *logrus.Logger,
	store *cache.FileStore,
	policy cache.Policy,
	target geo.Coordinate,
	now time.Time,
	force bool,
	fetch fetchFunc,
) (json.RawMessage, error) {
	rec, err := store.Load()
	if err != nil {
		return nil, err
	}

	if !force && cache.Valid(rec, target, policy, now) {
		log.Debugf("serving cached weather data from %s", store.Path())
		return rec.Payload, nil
	}

	log.Debug("requesting data from OpenWeatherMap")
	payload, err := fetch(ctx, target)
	if err != nil {
		return nil, err
	}
	newRec := &cache.Record{Coordinate: target, ObservedAt: now.Unix(), Payload: payload}
	if err := store.Save(newRec); err != nil {
		return nil, err
	}
	return payload, nil
}

// printPayload writes the payload as a single compact JSON line, whatever
// formatting the provider used.
func printPayload(w io.Writer, payload json.RawMessage) error {
	var buf bytes.Buffer
	if err := json.Compact(&buf, payload); err != nil {
		return fmt.Errorf("format weather payload: %w", err)
	}
	buf.WriteByte('\n')
	_, err := w.Write(buf.Bytes())
	return err
}

// pickToken applies token precedence: process environment (which godotenv
// already merged .env into) over the configuration file.
func pickToken(envToken, cfgToken string) string {
	if envToken != "" {
		return envToken
	}
	return cfgToken
}

// pickUnits applies units precedence: flag over config file over the metric
// default.
func pickUnits(flagUnits, cfgUnits string) (string, error) {
	units := flagUnits
	if units == "" {
		units = cfgUnits
	}
	if units == "" {
		units = "metric"
	}
	switch units {
	case "metric", "imperial", "standard":
		return units, nil
	}
	return "", fmt.Errorf("invalid units %q: expected metric, imperial or standard", units)
}
