package ranking

import (
	"math"
	"sort"

	"github.com/sovdevs/weirdFlights/internal/models"
)

const (
	PriceWeight = 0.4
	PerKmWeight = 0.6

	// Routes without a distance metric score worse than any measured one.
	missingPerKmScore = 150.0
)

// CheapestRoutes orders route summaries cheapest-first by their overall
// minimum price and truncates to limit.
func CheapestRoutes(routes []models.RouteSummary, limit int) []models.RouteSummary {
	out := make([]models.RouteSummary, len(routes))
	copy(out, routes)

	sort.SliceStable(out, func(i, j int) bool {
		return overallMin(out[i]) < overallMin(out[j])
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// ValueRoutes orders routes by a blended score so long cheap routes can
// outrank short ones: absolute price and price-per-km, each normalized
// against the batch maximum. Lower score = better value.
func ValueRoutes(routes []models.RouteSummary, limit int) []models.RouteSummary {
	out := make([]models.RouteSummary, len(routes))
	copy(out, routes)

	maxPrice := 0.0
	maxPerKm := 0.0
	for _, r := range out {
		if p := overallMin(r); p > maxPrice {
			maxPrice = p
		}
		if r.MinPricePerKm != nil && *r.MinPricePerKm > maxPerKm {
			maxPerKm = *r.MinPricePerKm
		}
	}

	scores := make(map[models.Route]float64, len(out))
	for _, r := range out {
		scores[models.Route{Origin: r.Origin, Destination: r.Destination}] = valueScore(r, maxPrice, maxPerKm)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a := scores[models.Route{Origin: out[i].Origin, Destination: out[i].Destination}]
		b := scores[models.Route{Origin: out[j].Origin, Destination: out[j].Destination}]
		return a < b
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func valueScore(r models.RouteSummary, maxPrice, maxPerKm float64) float64 {
	priceScore := 0.0
	if maxPrice > 0 {
		priceScore = overallMin(r) / maxPrice * 100
	}

	perKmScore := missingPerKmScore
	if r.MinPricePerKm != nil && maxPerKm > 0 {
		perKmScore = *r.MinPricePerKm / maxPerKm * 100
	}

	score := priceScore*PriceWeight + perKmScore*PerKmWeight
	return math.Round(score*100) / 100
}

func overallMin(r models.RouteSummary) float64 {
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
