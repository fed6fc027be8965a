package outfit

// Recommendation is the deduplicated suggestion set for a whole trip.
type Recommendation struct {
	Clothing    ItemSet `json:"clothing"`
	Accessories ItemSet `json:"accessories"`
}

// Empty reports whether the recommendation suggests nothing at all.
func (r Recommendation) Empty() bool {
	return r.Clothing.Len() == 0 && r.Accessories.Len() == 0
}

// Aggregate classifies every record and unions the results.
// Record order has no effect on the result; no records yields two empty sets.
func (c *Classifier) Aggregate(records []ForecastRecord) Recommendation {
	rec := Recommendation{
		Clothing:    NewItemSet(),
		Accessories: NewItemSet(),
	}

	for _, record := range records {
		day := c.Classify(record)
		rec.Clothing.Union(day.Clothing)
		rec.Accessories.Union(day.Accessories)
	}

	return rec
}

// Aggregate folds records against the default tables.
func Aggregate(records []ForecastRecord) Recommendation {
	return defaultClassifier.Aggregate(records)
}
