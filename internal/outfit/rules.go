package outfit

// ClothingRule maps an inclusive temperature band to clothing items.
type ClothingRule struct {
	MinTemp int      `json:"min_temp" yaml:"min_temp"`
	MaxTemp int      `json:"max_temp" yaml:"max_temp"`
	Items   []string `json:"items" yaml:"items"`
}

// Contains reports whether temp falls inside the band, bounds included.
func (r ClothingRule) Contains(temp int) bool {
	return r.MinTemp <= temp && temp <= r.MaxTemp
}

// AccessoryRule maps a weather condition label to accessory items.
// Conditions compare exactly, case included.
type AccessoryRule struct {
	Condition string   `json:"condition" yaml:"condition"`
	Items     []string `json:"items" yaml:"items"`
}

// Tables holds the ordered rule tables. Order matters: the first matching rule wins.
type Tables struct {
	Clothing    []ClothingRule  `json:"clothing" yaml:"clothing"`
	Accessories []AccessoryRule `json:"accessories" yaml:"accessories"`
}

// DefaultTables returns a fresh copy of the built-in rules.
func DefaultTables() Tables {
	return Tables{
		Clothing: []ClothingRule{
			{
				MinTemp: -50,
				MaxTemp: 0,
				Items: []string{
					"insulated parka", "long underwear", "fleece-lined jeans",
					"mittens", "knit hat", "chunky scarf",
				},
			},
		},
		Accessories: []AccessoryRule{
			{
				Condition: "Rainy",
				Items:     []string{"galoshes", "umbrella"},
			},
		},
	}
}

// clone deep-copies the tables so a Classifier never shares slices with its caller.
func (t Tables) clone() Tables {
	out := Tables{
		Clothing:    make([]ClothingRule, len(t.Clothing)),
		Accessories: make([]AccessoryRule, len(t.Accessories)),
	}
	for i, r := range t.Clothing {
		r.Items = append([]string(nil), r.Items...)
		out.Clothing[i] = r
	}
	for i, r := range t.Accessories {
		r.Items = append([]string(nil), r.Items...)
		out.Accessories[i] = r
	}
	return out
}
