package outfit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var parkaSet = []string{
	"insulated parka", "long underwear", "fleece-lined jeans",
	"mittens", "knit hat", "chunky scarf",
}

func TestClothingFor(t *testing.T) {
	tests := []struct {
		name string
		temp int
		want []string
	}{
		{name: "lower bound is inclusive", temp: -50, want: parkaSet},
		{name: "upper bound is inclusive", temp: 0, want: parkaSet},
		{name: "inside band", temp: -17, want: parkaSet},
		{name: "just above band", temp: 1, want: []string{}},
		{name: "just below band", temp: -51, want: []string{}},
		{name: "warm day", temp: 75, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClothingFor(tt.temp))
		})
	}
}

func TestAccessoriesFor(t *testing.T) {
	assert.Equal(t, []string{"galoshes", "umbrella"}, AccessoriesFor("Rainy"))
	assert.Empty(t, AccessoriesFor("rainy"), "match is case-sensitive")
	assert.Empty(t, AccessoriesFor("Sunny"))
	assert.Empty(t, AccessoriesFor(""))
}

func TestLookupsReturnCopies(t *testing.T) {
	items := ClothingFor(-10)
	require.NotEmpty(t, items)
	items[0] = "flip-flops"

	assert.Equal(t, "insulated parka", ClothingFor(-10)[0])
}

func TestFirstMatchWins(t *testing.T) {
	c := NewClassifier(Tables{
		Clothing: []ClothingRule{
			{MinTemp: 0, MaxTemp: 50, Items: []string{"sweater"}},
			{MinTemp: 40, MaxTemp: 80, Items: []string{"t-shirt"}},
		},
		Accessories: []AccessoryRule{
			{Condition: "Sunny", Items: []string{"sunglasses"}},
			{Condition: "Sunny", Items: []string{"sun hat"}},
		},
	})

	assert.Equal(t, []string{"sweater"}, c.ClothingFor(45))
	assert.Equal(t, []string{"t-shirt"}, c.ClothingFor(51))
	assert.Equal(t, []string{"sunglasses"}, c.AccessoriesFor("Sunny"))
}

func TestNewClassifierCopiesTables(t *testing.T) {
	tables := Tables{
		Clothing: []ClothingRule{{MinTemp: 60, MaxTemp: 90, Items: []string{"shorts"}}},
	}
	c := NewClassifier(tables)
	tables.Clothing[0].Items[0] = "parka"

	assert.Equal(t, []string{"shorts"}, c.ClothingFor(70))
}

func TestClassify(t *testing.T) {
	t.Run("cold rainy day", func(t *testing.T) {
		got := Classify(ForecastRecord{MinTemp: -10, MaxTemp: -2, Condition: "Rainy"})

		assert.ElementsMatch(t, parkaSet, got.Clothing.Sorted())
		assert.ElementsMatch(t, []string{"galoshes", "umbrella"}, got.Accessories.Sorted())
	})

	t.Run("both lookups in one band count once", func(t *testing.T) {
		got := Classify(ForecastRecord{MinTemp: -30, MaxTemp: -30, Condition: "Snowy"})

		assert.Equal(t, len(parkaSet), got.Clothing.Len())
		assert.Equal(t, 0, got.Accessories.Len())
	})

	t.Run("no rule matches", func(t *testing.T) {
		got := Classify(ForecastRecord{MinTemp: 40, MaxTemp: 60, Condition: "Sunny"})

		assert.Equal(t, 0, got.Clothing.Len())
		assert.Equal(t, 0, got.Accessories.Len())
	})

	t.Run("swing across two bands", func(t *testing.T) {
		c := NewClassifier(Tables{
			Clothing: []ClothingRule{
				{MinTemp: 0, MaxTemp: 49, Items: []string{"coat", "scarf"}},
				{MinTemp: 50, MaxTemp: 90, Items: []string{"t-shirt", "scarf"}},
			},
		})

		got := c.Classify(ForecastRecord{MinTemp: 35, MaxTemp: 70, Condition: "Sunny"})
		assert.Equal(t, []string{"coat", "scarf", "t-shirt"}, got.Clothing.Sorted())
	})

	t.Run("only the ends of the range are consulted", func(t *testing.T) {
		c := NewClassifier(Tables{
			Clothing: []ClothingRule{
				{MinTemp: 40, MaxTemp: 60, Items: []string{"light jacket"}},
			},
		})

		got := c.Classify(ForecastRecord{MinTemp: 20, MaxTemp: 80})
		assert.Equal(t, 0, got.Clothing.Len())
	})
}
