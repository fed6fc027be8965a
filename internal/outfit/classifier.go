// Package outfit turns daily forecast records into clothing and accessory suggestions.
//
// Lookups scan ordered rule tables and take the first match. A temperature or
// condition with no matching rule contributes nothing; it is never an error.
// Everything here is pure and safe for concurrent use.
package outfit

// Classification is the suggestion set for a single forecast day.
type Classification struct {
	Clothing    ItemSet `json:"clothing"`
	Accessories ItemSet `json:"accessories"`
}

// Classifier answers lookups against one immutable set of rule tables.
type Classifier struct {
	tables Tables
}

// NewClassifier copies tables into a new Classifier.
func NewClassifier(tables Tables) *Classifier {
	return &Classifier{tables: tables.clone()}
}

var defaultClassifier = NewClassifier(DefaultTables())

// Default returns the classifier backed by DefaultTables.
func Default() *Classifier {
	return defaultClassifier
}

// Tables returns a copy of the rule tables in use.
func (c *Classifier) Tables() Tables {
	return c.tables.clone()
}

// ClothingFor returns the items of the first band containing temp, or an empty slice.
func (c *Classifier) ClothingFor(temp int) []string {
	for _, rule := range c.tables.Clothing {
		if rule.Contains(temp) {
			return append([]string{}, rule.Items...)
		}
	}
	return []string{}
}

// AccessoriesFor returns the items of the first rule whose condition equals condition.
func (c *Classifier) AccessoriesFor(condition string) []string {
	for _, rule := range c.tables.Accessories {
		if rule.Condition == condition {
			return append([]string{}, rule.Items...)
		}
	}
	return []string{}
}

// Classify looks up clothing for both ends of the day's range, since a cold
// morning and a warm afternoon can fall into different bands.
func (c *Classifier) Classify(record ForecastRecord) Classification {
	clothing := NewItemSet(c.ClothingFor(record.MinTemp)...)
	clothing.Add(c.ClothingFor(record.MaxTemp)...)

	return Classification{
		Clothing:    clothing,
		Accessories: NewItemSet(c.AccessoriesFor(record.Condition)...),
	}
}

// ClothingFor looks temp up in the default tables.
func ClothingFor(temp int) []string {
	return defaultClassifier.ClothingFor(temp)
}

// AccessoriesFor looks condition up in the default tables.
func AccessoriesFor(condition string) []string {
	return defaultClassifier.AccessoriesFor(condition)
}

// Classify classifies record against the default tables.
func Classify(record ForecastRecord) Classification {
	return defaultClassifier.Classify(record)
}
