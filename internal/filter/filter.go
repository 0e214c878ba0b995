package filter

import (
	"sort"
	"strings"

	"github.com/sovdevs/weirdFlights/internal/geo"
	"github.com/sovdevs/weirdFlights/internal/models"
)

// Flights applies the API's flight query against the stored dataset and
// returns matches sorted cheapest-first, capped at the query limit.
func Flights(flights []models.Flight, q models.FlightQuery) []models.Flight {
	result := make([]models.Flight, 0, len(flights))

	for _, f := range flights {
		if matchesFlight(f, q) {
			result = append(result, f)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Price.Amount < result[j].Price.Amount
	})

	if q.Limit > 0 && len(result) > q.Limit {
		result = result[:q.Limit]
	}
	return result
}

func matchesFlight(f models.Flight, q models.FlightQuery) bool {
	if q.Origin != "" && !strings.EqualFold(f.Origin, q.Origin) {
		return false
	}
	if q.Destination != "" && !strings.EqualFold(f.Destination, q.Destination) {
		return false
	}
	if q.MaxPrice != nil && f.Price.Amount > *q.MaxPrice {
		return false
	}
	if q.StartDate != "" && f.Date < q.StartDate {
		return false
	}
	if q.EndDate != "" && f.Date > q.EndDate {
		return false
	}
	return true
}

// Routes filters route summaries by endpoint region and price ceiling.
// Region comes from the airport table; an unknown airport has no region
// and never matches a region filter.
func Routes(routes []models.RouteSummary, table *geo.Table, q models.RouteQuery) []models.RouteSummary {
	result := make([]models.RouteSummary, 0, len(routes))

	for _, r := range routes {
		if q.OriginRegion != "" && table.Region(r.Origin) != q.OriginRegion {
			continue
		}
		if q.DestRegion != "" && table.Region(r.Destination) != q.DestRegion {
			continue
		}
		if q.MaxPrice != nil && minPrice(r) > *q.MaxPrice {
			continue
		}
		result = append(result, r)
	}

	return result
}

func minPrice(r models.RouteSummary) float64 {
	min := 0.0
	first := true
	for _, p := range r.MinPriceByMix {
		if first || p.Amount < min {
			min = p.Amount
			first = false
		}
	}
	return min
}
