package geodata

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/shuv1824/packlist/internal/types"
)

// Gazetteer is a local lookup table of known places, consulted before remote geocoding.
type Gazetteer struct {
	mu     sync.RWMutex
	places map[string]types.Place
}

func NewGazetteer(places []types.Place) *Gazetteer {
	g := &Gazetteer{places: make(map[string]types.Place, len(places))}
	for _, p := range places {
		g.places[normalize(p.Name)] = p
	}
	return g
}

// Load reads a places JSON file. A missing file yields an empty gazetteer.
func Load(filepath string) (*Gazetteer, error) {
	file, err := os.Open(filepath)
	if err != nil {
		if os.IsNotExist(err) {
			return NewGazetteer(nil), nil
		}
		return nil, err
	}
	defer file.Close()

	var raw types.GeoData
	if err := json.NewDecoder(file).Decode(&raw); err != nil {
		return nil, err
	}

	// Entries with unparseable coordinates are skipped
	places := make([]types.Place, 0, len(raw.Places))
	for _, p := range raw.Places {
		lat, err := strconv.ParseFloat(p.Lat, 64)
		if err != nil {
			continue
		}
		long, err := strconv.ParseFloat(p.Long, 64)
		if err != nil {
			continue
		}

		places = append(places, types.Place{
			Name:    p.Name,
			Country: p.Country,
			Lat:     lat,
			Long:    long,
		})
	}

	return NewGazetteer(places), nil
}

// Lookup finds a place by name, ignoring case and surrounding spaces.
func (g *Gazetteer) Lookup(name string) (types.Place, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	p, ok := g.places[normalize(name)]
	return p, ok
}

// Remember stores a place under alias, typically one resolved remotely.
func (g *Gazetteer) Remember(alias string, p types.Place) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.places[normalize(alias)] = p
}

func (g *Gazetteer) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.places)
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
