package forecast

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shuv1824/packlist/internal/outfit"
	"github.com/shuv1824/packlist/internal/types"
	"github.com/shuv1824/packlist/internal/utils/geodata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockTransport is a mock HTTP transport for testing
type mockTransport struct {
	responses map[string]mockResponse
	requests  []string
}

type mockResponse struct {
	status int
	body   string
}

func (m *mockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	url := req.URL.String()
	m.requests = append(m.requests, url)

	var resp mockResponse
	switch {
	case strings.Contains(url, "geo.test"):
		resp = m.responses["geocode"]
	case strings.Contains(url, "wx.test"):
		resp = m.responses["forecast"]
	}
	if resp.status == 0 {
		resp.status = http.StatusOK
	}

	return &http.Response{
		StatusCode: resp.status,
		Body:       io.NopCloser(strings.NewReader(resp.body)),
		Header:     make(http.Header),
	}, nil
}

func newTestService(transport http.RoundTripper, places *geodata.Gazetteer) *Service {
	return NewService(places, Config{
		HTTPClient:   &http.Client{Transport: transport},
		ForecastURL:  "http://wx.test/v1/forecast",
		GeocodingURL: "http://geo.test/v1/search",
		Backoff: BackoffConfig{
			MaxRetries:      2,
			InitialInterval: time.Millisecond,
			MaxInterval:     2 * time.Millisecond,
		},
	})
}

const threeDayForecast = `{"daily":{
	"time":["2026-01-10","2026-01-11","2026-01-12"],
	"temperature_2m_max":[-2.4,35.6,-0.2],
	"temperature_2m_min":[-10.3,20.1,-8.9],
	"weather_code":[63,0,71]}}`

func TestForecast(t *testing.T) {
	places := geodata.NewGazetteer([]types.Place{
		{Name: "Yellowknife", Country: "Canada", Lat: 62.454, Long: -114.3718},
	})
	transport := &mockTransport{responses: map[string]mockResponse{
		"forecast": {body: threeDayForecast},
	}}
	s := newTestService(transport, places)

	days, err := s.Forecast(context.Background(), "yellowknife", 3)
	require.NoError(t, err)

	want := []types.DayForecast{
		{Date: "2026-01-10", ForecastRecord: outfit.ForecastRecord{MinTemp: -10, MaxTemp: -2, Condition: "Rainy"}},
		{Date: "2026-01-11", ForecastRecord: outfit.ForecastRecord{MinTemp: 20, MaxTemp: 36, Condition: "Sunny"}},
		{Date: "2026-01-12", ForecastRecord: outfit.ForecastRecord{MinTemp: -9, MaxTemp: 0, Condition: "Snowy"}},
	}
	assert.Equal(t, want, days)

	require.Len(t, transport.requests, 1, "gazetteer hit skips geocoding")
	assert.Contains(t, transport.requests[0], "forecast_days=3")
	assert.Contains(t, transport.requests[0], "temperature_unit=fahrenheit")
	assert.Contains(t, transport.requests[0], "latitude=62.4540")
}

func TestForecastGeocodes(t *testing.T) {
	places := geodata.NewGazetteer(nil)
	transport := &mockTransport{responses: map[string]mockResponse{
		"geocode":  {body: `{"results":[{"name":"Oslo","country":"Norway","latitude":59.9127,"longitude":10.7461}]}`},
		"forecast": {body: threeDayForecast},
	}}
	s := newTestService(transport, places)

	days, err := s.Forecast(context.Background(), "Oslo", 2)
	require.NoError(t, err)
	assert.Len(t, days, 2)

	p, ok := places.Lookup("oslo")
	require.True(t, ok, "remote result is remembered")
	assert.Equal(t, "Norway", p.Country)

	_, err = s.Forecast(context.Background(), "Oslo", 2)
	require.NoError(t, err)
	assert.Len(t, transport.requests, 3, "second call skips geocoding")
}

func TestForecastErrors(t *testing.T) {
	tests := []struct {
		name        string
		destination string
		days        int
		responses   map[string]mockResponse
		wantErr     error
		errContains string
	}{
		{
			name:        "zero days",
			destination: "Oslo",
			days:        0,
			wantErr:     ErrInvalidDays,
		},
		{
			name:        "too many days",
			destination: "Oslo",
			days:        17,
			wantErr:     ErrInvalidDays,
		},
		{
			name:        "blank destination",
			destination: "  ",
			days:        3,
			wantErr:     ErrDestinationNotFound,
		},
		{
			name:        "unknown destination",
			destination: "Atlantis",
			days:        3,
			responses:   map[string]mockResponse{"geocode": {body: `{}`}},
			wantErr:     ErrDestinationNotFound,
		},
		{
			name:        "inverted temperatures",
			destination: "Oslo",
			days:        1,
			responses: map[string]mockResponse{
				"geocode":  {body: `{"results":[{"name":"Oslo","latitude":59.9,"longitude":10.7}]}`},
				"forecast": {body: `{"daily":{"time":["2026-01-10"],"temperature_2m_max":[10],"temperature_2m_min":[20],"weather_code":[0]}}`},
			},
			wantErr: outfit.ErrInvalidRecord,
		},
		{
			name:        "null values past model range",
			destination: "Oslo",
			days:        2,
			responses: map[string]mockResponse{
				"geocode": {body: `{"results":[{"name":"Oslo","latitude":59.9,"longitude":10.7}]}`},
				"forecast": {body: `{"daily":{"time":["2026-01-01","2026-01-02"],` +
					`"temperature_2m_max":[70.2,null],"temperature_2m_min":[55.1,null],"weather_code":[0,null]}}`},
			},
			wantErr:     outfit.ErrInvalidRecord,
			errContains: "2026-01-02",
		},
		{
			name:        "empty forecast",
			destination: "Oslo",
			days:        1,
			responses: map[string]mockResponse{
				"geocode":  {body: `{"results":[{"name":"Oslo","latitude":59.9,"longitude":10.7}]}`},
				"forecast": {body: `{"daily":{}}`},
			},
			wantErr: ErrNoForecast,
		},
		{
			name:        "client error is not retried",
			destination: "Oslo",
			days:        1,
			responses: map[string]mockResponse{
				"geocode": {status: http.StatusBadRequest, body: `{"error":true}`},
			},
			errContains: "unexpected status code: 400",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport := &mockTransport{responses: tt.responses}
			s := newTestService(transport, nil)

			_, err := s.Forecast(context.Background(), tt.destination, tt.days)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.errContains != "" {
				assert.Contains(t, err.Error(), tt.errContains)
			}
		})
	}
}

type flakyTransport struct {
	failures int32
	calls    atomic.Int32
}

func (f *flakyTransport) RoundTrip(_ *http.Request) (*http.Response, error) {
	n := f.calls.Add(1)
	if n <= f.failures {
		return &http.Response{
			StatusCode: http.StatusServiceUnavailable,
			Body:       io.NopCloser(strings.NewReader("")),
			Header:     make(http.Header),
		}, nil
	}
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(threeDayForecast)),
		Header:     make(http.Header),
	}, nil
}

func TestForecastRetriesServerErrors(t *testing.T) {
	places := geodata.NewGazetteer([]types.Place{{Name: "Oslo", Lat: 59.9, Long: 10.7}})

	t.Run("recovers within retry budget", func(t *testing.T) {
		transport := &flakyTransport{failures: 2}
		s := newTestService(transport, places)

		days, err := s.Forecast(context.Background(), "Oslo", 3)
		require.NoError(t, err)
		assert.Len(t, days, 3)
		assert.Equal(t, int32(3), transport.calls.Load())
	})

	t.Run("gives up after retry budget", func(t *testing.T) {
		transport := &flakyTransport{failures: 10}
		s := newTestService(transport, places)

		_, err := s.Forecast(context.Background(), "Oslo", 3)
		require.Error(t, err)
		assert.ErrorIs(t, err, errServerError)
		assert.Equal(t, int32(3), transport.calls.Load())
	})
}

func TestConditionForCode(t *testing.T) {
	tests := map[int]string{
		0:  ConditionSunny,
		1:  ConditionSunny,
		3:  ConditionCloudy,
		45: ConditionFoggy,
		61: ConditionRainy,
		81: ConditionRainy,
		73: ConditionSnowy,
		86: ConditionSnowy,
		95: ConditionStormy,
		42: ConditionUnknown,
	}

	for code, want := range tests {
		assert.Equal(t, want, conditionForCode(code), "code %d", code)
	}
}

func TestParseDailyRejectsNulls(t *testing.T) {
	tests := map[string]string{
		"max": `{"daily":{"time":["2026-01-01"],"temperature_2m_max":[null],"temperature_2m_min":[55.1],"weather_code":[0]}}`,
		"min": `{"daily":{"time":["2026-01-01"],"temperature_2m_max":[70.2],"temperature_2m_min":[null],"weather_code":[0]}}`,
		"code": `{"daily":{"time":["2026-01-01"],"temperature_2m_max":[70.2],"temperature_2m_min":[55.1],"weather_code":[null]}}`,
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			var data types.OpenMeteoForecastResponse
			require.NoError(t, json.Unmarshal([]byte(body), &data))

			days, err := parseDaily(data, 1)
			assert.ErrorIs(t, err, outfit.ErrInvalidRecord)
			assert.Nil(t, days)
		})
	}
}

func TestCircuitBreakerOpens(t *testing.T) {
	places := geodata.NewGazetteer([]types.Place{{Name: "Oslo", Lat: 59.9, Long: 10.7}})
	transport := &flakyTransport{failures: 1000}
	s := newTestService(transport, places)

	var err error
	for i := 0; i < 5; i++ {
		_, err = s.Forecast(context.Background(), "Oslo", 3)
		if errors.Is(err, ErrCircuitOpen) {
			break
		}
		assert.ErrorIs(t, err, errServerError)
	}
	require.ErrorIs(t, err, ErrCircuitOpen)

	calls := transport.calls.Load()
	_, err = s.Forecast(context.Background(), "Oslo", 3)
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, calls, transport.calls.Load(), "open breaker does not reach the network")
}

func TestCircuitBreakerIgnoresClientErrors(t *testing.T) {
	places := geodata.NewGazetteer([]types.Place{{Name: "Oslo", Lat: 59.9, Long: 10.7}})
	transport := &mockTransport{responses: map[string]mockResponse{
		"forecast": {status: http.StatusBadRequest, body: `{"error":true}`},
	}}
	s := newTestService(transport, places)

	for i := 0; i < 20; i++ {
		_, err := s.Forecast(context.Background(), "Oslo", 3)
		require.Error(t, err)
		require.NotErrorIs(t, err, ErrCircuitOpen, "attempt %d", i)
		assert.ErrorIs(t, err, errUnexpected)
	}
	assert.Len(t, transport.requests, 20)
}

func TestCircuitBreakerIgnoresCancellation(t *testing.T) {
	assert.True(t, countsAsSuccess(nil))
	assert.True(t, countsAsSuccess(fmt.Errorf("%w: 404", errUnexpected)))
	assert.True(t, countsAsSuccess(fmt.Errorf("Get \"http://wx.test\": %w", context.Canceled)))
	assert.False(t, countsAsSuccess(errRateLimited))
	assert.False(t, countsAsSuccess(fmt.Errorf("%w: 503", errServerError)))
	assert.False(t, countsAsSuccess(context.DeadlineExceeded))
}
