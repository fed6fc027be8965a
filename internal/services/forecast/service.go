package forecast

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shuv1824/packlist/internal/outfit"
	"github.com/shuv1824/packlist/internal/types"
	"github.com/shuv1824/packlist/internal/utils/geodata"
	"github.com/sony/gobreaker"
)

const (
	DefaultForecastURL  = "https://api.open-meteo.com/v1/forecast"
	DefaultGeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"

	// MaxDays is the longest daily forecast Open-Meteo serves.
	MaxDays = 16
)

var (
	ErrDestinationNotFound = errors.New("destination not found")
	ErrInvalidDays         = errors.New("days must be between 1 and 16")
	ErrNoForecast          = errors.New("no forecast data available")
)

type Config struct {
	HTTPClient   *http.Client
	ForecastURL  string
	GeocodingURL string
	Backoff      BackoffConfig
}

type Service struct {
	httpClient   *http.Client
	places       *geodata.Gazetteer
	forecastURL  string
	geocodingURL string
	backoff      BackoffConfig
	circuit      *gobreaker.CircuitBreaker
}

func NewService(places *geodata.Gazetteer, cfg Config) *Service {
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 100,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}
	if places == nil {
		places = geodata.NewGazetteer(nil)
	}
	if cfg.ForecastURL == "" {
		cfg.ForecastURL = DefaultForecastURL
	}
	if cfg.GeocodingURL == "" {
		cfg.GeocodingURL = DefaultGeocodingURL
	}
	if cfg.Backoff.InitialInterval <= 0 {
		cfg.Backoff = DefaultBackoff(3)
	}

	return &Service{
		httpClient:   client,
		places:       places,
		forecastURL:  cfg.ForecastURL,
		geocodingURL: cfg.GeocodingURL,
		backoff:      cfg.Backoff,
		circuit:      newBreaker("open-meteo"),
	}
}

// Forecast returns one record per day, starting today, for the destination.
func (s *Service) Forecast(ctx context.Context, destination string, days int) ([]types.DayForecast, error) {
	if days < 1 || days > MaxDays {
		return nil, ErrInvalidDays
	}

	place, err := s.resolve(ctx, destination)
	if err != nil {
		return nil, err
	}

	forecast, err := s.fetchDaily(ctx, place, days)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch forecast for %s: %w", place.Name, err)
	}

	slog.Info("forecast fetched", "destination", place.Name, "days", len(forecast))
	return forecast, nil
}

// resolve maps a destination name to coordinates, trying the local gazetteer
// before the geocoding API. Remote hits are remembered.
func (s *Service) resolve(ctx context.Context, destination string) (types.Place, error) {
	if strings.TrimSpace(destination) == "" {
		return types.Place{}, ErrDestinationNotFound
	}

	if p, ok := s.places.Lookup(destination); ok {
		return p, nil
	}

	buildRequest := func(ctx context.Context) (*http.Request, error) {
		values := url.Values{}
		values.Set("name", strings.TrimSpace(destination))
		values.Set("count", "1")
		values.Set("format", "json")

		return http.NewRequestWithContext(ctx, http.MethodGet, s.geocodingURL+"?"+values.Encode(), nil)
	}

	resp, err := doRequest(ctx, s.httpClient, s.backoff, s.circuit, buildRequest)
	if err != nil {
		return types.Place{}, fmt.Errorf("geocoding %q: %w", destination, err)
	}
	defer resp.Body.Close()

	var data types.OpenMeteoGeocodingResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return types.Place{}, fmt.Errorf("decoding geocoding response: %w", err)
	}

	if len(data.Results) == 0 {
		return types.Place{}, fmt.Errorf("%w: %s", ErrDestinationNotFound, destination)
	}

	r := data.Results[0]
	place := types.Place{
		Name:    r.Name,
		Country: r.Country,
		Lat:     r.Latitude,
		Long:    r.Longitude,
	}
	s.places.Remember(destination, place)

	slog.Debug("destination geocoded", "query", destination, "name", place.Name, "country", place.Country)
	return place, nil
}

// fetchDaily fetches the daily min/max temperature (°F) and weather code.
func (s *Service) fetchDaily(ctx context.Context, place types.Place, days int) ([]types.DayForecast, error) {
	buildRequest := func(ctx context.Context) (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", fmt.Sprintf("%.4f", place.Lat))
		values.Set("longitude", fmt.Sprintf("%.4f", place.Long))
		values.Set("daily", "temperature_2m_max,temperature_2m_min,weather_code")
		values.Set("temperature_unit", "fahrenheit")
		values.Set("forecast_days", fmt.Sprint(days))
		values.Set("timezone", "auto")

		return http.NewRequestWithContext(ctx, http.MethodGet, s.forecastURL+"?"+values.Encode(), nil)
	}

	resp, err := doRequest(ctx, s.httpClient, s.backoff, s.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var data types.OpenMeteoForecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decoding forecast response: %w", err)
	}

	return parseDaily(data, days)
}

func parseDaily(data types.OpenMeteoForecastResponse, days int) ([]types.DayForecast, error) {
	d := data.Daily
	n := min(len(d.Time), len(d.TempMin), len(d.TempMax), len(d.WeatherCode), days)
	if n == 0 {
		return nil, ErrNoForecast
	}

	out := make([]types.DayForecast, 0, n)
	for i := 0; i < n; i++ {
		if d.TempMin[i] == nil || d.TempMax[i] == nil || d.WeatherCode[i] == nil {
			return nil, fmt.Errorf("day %s: %w: missing temperature or weather code", d.Time[i], outfit.ErrInvalidRecord)
		}

		record, err := outfit.NewForecastRecord(
			int(math.Round(*d.TempMin[i])),
			int(math.Round(*d.TempMax[i])),
			conditionForCode(*d.WeatherCode[i]),
		)
		if err != nil {
			return nil, fmt.Errorf("day %s: %w", d.Time[i], err)
		}

		out = append(out, types.DayForecast{Date: d.Time[i], ForecastRecord: record})
	}

	if n < days {
		slog.Warn("forecast shorter than requested", "requested", days, "received", n)
	}

	return out, nil
}
