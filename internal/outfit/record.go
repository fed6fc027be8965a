package outfit

import (
	"errors"
	"fmt"
)

// ErrInvalidRecord is returned when a forecast record breaks the min <= max contract.
var ErrInvalidRecord = errors.New("invalid forecast record")

// ForecastRecord is one day of normalized weather.
// Temperatures share whatever unit the rule tables are written in (°F for the built-in tables).
type ForecastRecord struct {
	MinTemp   int    `json:"min_temp"`
	MaxTemp   int    `json:"max_temp"`
	Condition string `json:"condition"`
}

// NewForecastRecord builds a record, rejecting inverted temperature bounds.
func NewForecastRecord(minTemp, maxTemp int, condition string) (ForecastRecord, error) {
	r := ForecastRecord{MinTemp: minTemp, MaxTemp: maxTemp, Condition: condition}
	if err := r.Validate(); err != nil {
		return ForecastRecord{}, err
	}
	return r, nil
}

// Validate reports ErrInvalidRecord when MinTemp > MaxTemp.
// Bounds are never swapped: an inverted record means the producer is broken.
func (r ForecastRecord) Validate() error {
	if r.MinTemp > r.MaxTemp {
		return fmt.Errorf("%w: min_temp %d is above max_temp %d", ErrInvalidRecord, r.MinTemp, r.MaxTemp)
	}
	return nil
}
