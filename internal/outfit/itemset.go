package outfit

import (
	"encoding/json"
	"sort"
)

// ItemSet is an unordered collection of suggestion names; each name appears once.
type ItemSet map[string]struct{}

// NewItemSet returns a set holding the given items.
func NewItemSet(items ...string) ItemSet {
	s := make(ItemSet, len(items))
	s.Add(items...)
	return s
}

// Add inserts items, ignoring ones already present.
func (s ItemSet) Add(items ...string) {
	for _, item := range items {
		s[item] = struct{}{}
	}
}

// Union adds every member of other to s.
func (s ItemSet) Union(other ItemSet) {
	for item := range other {
		s[item] = struct{}{}
	}
}

func (s ItemSet) Has(item string) bool {
	_, ok := s[item]
	return ok
}

func (s ItemSet) Len() int {
	return len(s)
}

// Sorted returns the members in alphabetical order, for display and stable output.
func (s ItemSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for item := range s {
		out = append(out, item)
	}
	sort.Strings(out)
	return out
}

func (s ItemSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

func (s *ItemSet) UnmarshalJSON(data []byte) error {
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*s = NewItemSet(items...)
	return nil
}
