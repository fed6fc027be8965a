package types

import (
	"time"

	"github.com/shuv1824/packlist/internal/outfit"
)

type RawPlace struct {
	Name    string `json:"name"`
	Country string `json:"country"`
	Lat     string `json:"lat"`
	Long    string `json:"long"`
}

type Place struct {
	Name    string  `json:"name"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Long    float64 `json:"long"`
}

type GeoData struct {
	Places []RawPlace `json:"places"`
}

// DayForecast is one forecast record tagged with its calendar date.
type DayForecast struct {
	Date string `json:"date"`
	outfit.ForecastRecord
}

// Plan is a finished trip recommendation.
type Plan struct {
	ID             string                `json:"id"`
	Name           string                `json:"name"`
	Destination    string                `json:"destination"`
	Duration       int                   `json:"duration"`
	Forecast       []DayForecast         `json:"forecast"`
	Recommendation outfit.Recommendation `json:"recommendation"`
	CreatedAt      time.Time             `json:"created_at"`
}

// Records strips the dates off the forecast.
func (p Plan) Records() []outfit.ForecastRecord {
	out := make([]outfit.ForecastRecord, 0, len(p.Forecast))
	for _, d := range p.Forecast {
		out = append(out, d.ForecastRecord)
	}
	return out
}

// PlanSummary is the list view of a saved plan.
type PlanSummary struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Destination string    `json:"destination"`
	Duration    int       `json:"duration"`
	CreatedAt   time.Time `json:"created_at"`
}

type TripRequestBody struct {
	Name        string `json:"name"`
	Destination string `json:"destination"`
	Duration    int    `json:"duration"`
	Save        bool   `json:"save"`
}

type RecommendationRequestBody struct {
	Forecast []outfit.ForecastRecord `json:"forecast"`
}

type RecommendationResponse struct {
	Days           int                   `json:"days"`
	Recommendation outfit.Recommendation `json:"recommendation"`
}

type PlansResponse struct {
	Count int           `json:"count"`
	Plans []PlanSummary `json:"plans"`
}

// OpenMeteoForecastResponse represents the daily forecast API response.
// Values are pointers because Open-Meteo sends null past a model's range.
type OpenMeteoForecastResponse struct {
	Daily struct {
		Time        []string   `json:"time"`
		TempMax     []*float64 `json:"temperature_2m_max"`
		TempMin     []*float64 `json:"temperature_2m_min"`
		WeatherCode []*int     `json:"weather_code"`
	} `json:"daily"`
}

// OpenMeteoGeocodingResponse represents the geocoding API response
type OpenMeteoGeocodingResponse struct {
	Results []struct {
		Name      string  `json:"name"`
		Country   string  `json:"country"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"results"`
}
