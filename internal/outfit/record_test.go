package outfit

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewForecastRecord(t *testing.T) {
	r, err := NewForecastRecord(-10, -2, "Rainy")
	require.NoError(t, err)
	assert.Equal(t, ForecastRecord{MinTemp: -10, MaxTemp: -2, Condition: "Rainy"}, r)

	r, err = NewForecastRecord(5, 5, "Sunny")
	require.NoError(t, err)
	assert.Equal(t, 5, r.MinTemp)

	_, err = NewForecastRecord(10, 3, "Sunny")
	assert.ErrorIs(t, err, ErrInvalidRecord)
}

func TestRecommendationJSONIsSorted(t *testing.T) {
	rec := Recommendation{
		Clothing:    NewItemSet("mittens", "chunky scarf", "knit hat"),
		Accessories: NewItemSet(),
	}

	data, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.JSONEq(t, `{"clothing":["chunky scarf","knit hat","mittens"],"accessories":[]}`, string(data))

	var decoded Recommendation
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, rec, decoded)
}
