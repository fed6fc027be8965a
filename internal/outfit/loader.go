package outfit

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidRules is returned when a rule file describes an impossible table.
var ErrInvalidRules = errors.New("invalid rule tables")

// LoadTables reads rule tables from a YAML file. An empty path means DefaultTables.
//
//	clothing:
//	  - {min_temp: -50, max_temp: 0, items: [insulated parka]}
//	accessories:
//	  - {condition: Rainy, items: [umbrella]}
func LoadTables(path string) (Tables, error) {
	if path == "" {
		return DefaultTables(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Tables{}, fmt.Errorf("failed to read rule file: %w", err)
	}

	return ParseTables(data)
}

// ParseTables decodes and validates YAML rule tables.
func ParseTables(data []byte) (Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Tables{}, fmt.Errorf("failed to parse rule file: %w", err)
	}

	if err := t.Validate(); err != nil {
		return Tables{}, err
	}

	return t, nil
}

// Validate checks each rule on its own. Overlapping bands are allowed.
func (t Tables) Validate() error {
	if len(t.Clothing) == 0 && len(t.Accessories) == 0 {
		return fmt.Errorf("%w: no rules defined", ErrInvalidRules)
	}

	for i, r := range t.Clothing {
		if r.MinTemp > r.MaxTemp {
			return fmt.Errorf("%w: clothing rule %d has min_temp %d above max_temp %d",
				ErrInvalidRules, i, r.MinTemp, r.MaxTemp)
		}
		if len(r.Items) == 0 {
			return fmt.Errorf("%w: clothing rule %d has no items", ErrInvalidRules, i)
		}
	}

	for i, r := range t.Accessories {
		if strings.TrimSpace(r.Condition) == "" {
			return fmt.Errorf("%w: accessory rule %d has no condition", ErrInvalidRules, i)
		}
		if len(r.Items) == 0 {
			return fmt.Errorf("%w: accessory rule %d has no items", ErrInvalidRules, i)
		}
	}

	return nil
}
