package geo

import (
	"sort"

	"github.com/sovdevs/weirdFlights/internal/models"
)

// Table is the static airport reference loaded once at startup. Lookups
// only; nothing mutates it after construction.
type Table struct {
	airports map[string]models.Airport
}

func NewTable(airports []models.Airport) *Table {
	m := make(map[string]models.Airport, len(airports))
	for _, a := range airports {
		m[a.Code] = a
	}
	return &Table{airports: m}
}

func (t *Table) Lookup(code string) (models.Airport, bool) {
	a, ok := t.airports[code]
	return a, ok
}

func (t *Table) Region(code string) string {
	if a, ok := t.airports[code]; ok {
		return a.Region
	}
	return ""
}

// All returns every airport sorted by code.
func (t *Table) All() []models.Airport {
	out := make([]models.Airport, 0, len(t.airports))
	for _, a := range t.airports {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

func (t *Table) Regions() []string {
	seen := make(map[string]bool)
	for _, a := range t.airports {
		if a.Region != "" {
			seen[a.Region] = true
		}
	}
	out := make([]string, 0, len(seen))
	for r := range seen {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}

// DefaultAirports covers the network the scrapers know about.
func DefaultAirports() []models.Airport {
	return []models.Airport{
		{Code: "LGW", Name: "London Gatwick", Latitude: 51.1537, Longitude: -0.1821, Region: "europe"},
		{Code: "MAN", Name: "Manchester", Latitude: 53.3537, Longitude: -2.2750, Region: "europe"},
		{Code: "OSL", Name: "Oslo Gardermoen", Latitude: 60.1939, Longitude: 11.1004, Region: "europe"},
		{Code: "BER", Name: "Berlin Brandenburg", Latitude: 52.3667, Longitude: 13.5033, Region: "europe"},
		{Code: "JFK", Name: "New York JFK", Latitude: 40.6413, Longitude: -73.7781, Region: "north_america"},
		{Code: "LAX", Name: "Los Angeles", Latitude: 33.9416, Longitude: -118.4085, Region: "north_america"},
		{Code: "MIA", Name: "Miami", Latitude: 25.7959, Longitude: -80.2870, Region: "north_america"},
		{Code: "OAK", Name: "Oakland", Latitude: 37.7126, Longitude: -122.2197, Region: "north_america"},
		{Code: "FLL", Name: "Fort Lauderdale", Latitude: 26.0742, Longitude: -80.1506, Region: "north_america"},
		{Code: "BKK", Name: "Bangkok Suvarnabhumi", Latitude: 13.6900, Longitude: 100.7501, Region: "se_asia"},
		{Code: "SIN", Name: "Singapore Changi", Latitude: 1.3644, Longitude: 103.9915, Region: "se_asia"},
		{Code: "KUL", Name: "Kuala Lumpur", Latitude: 2.7456, Longitude: 101.7072, Region: "se_asia"},
		{Code: "CGK", Name: "Jakarta Soekarno-Hatta", Latitude: -6.1256, Longitude: 106.6559, Region: "se_asia"},
		{Code: "DPS", Name: "Denpasar Bali", Latitude: -8.7482, Longitude: 115.1672, Region: "se_asia"},
		{Code: "HAN", Name: "Hanoi Noi Bai", Latitude: 21.2212, Longitude: 105.8072, Region: "se_asia"},
		{Code: "SGN", Name: "Ho Chi Minh City", Latitude: 10.8188, Longitude: 106.6520, Region: "se_asia"},
	}
}
