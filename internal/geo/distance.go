package geo

import (
	"math"

	"github.com/sovdevs/weirdFlights/internal/models"
)

const earthRadiusKm = 6371.0

// Distance returns the great-circle distance in kilometers between two
// airports (haversine, spherical earth). Pure: identical inputs always
// yield identical output.
func Distance(a, b models.Airport) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}

// PricePerKm computes price/distance for a route, or nil when either
// airport is unknown or the distance is zero. A zero distance between
// distinct airports is a data-integrity anomaly, not a valid metric.
func (t *Table) PricePerKm(origin, destination string, price float64) *float64 {
	from, ok := t.Lookup(origin)
	if !ok {
		return nil
	}
	to, ok := t.Lookup(destination)
	if !ok {
		return nil
	}

	dist := Distance(from, to)
	if dist == 0 {
		return nil
	}

	ppk := math.Round(price/dist*10000) / 10000
	return &ppk
}
