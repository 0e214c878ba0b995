package pipeline

import (
	"sort"

	"github.com/sovdevs/weirdFlights/internal/models"
)

// TieBreak selects the representative fare when several flights share a
// route's minimum price. The cheapest-fare rule when dates differ is a
// policy choice, so it is configured rather than hardcoded.
type TieBreak string

const (
	// TieBreakEarliestDate prefers the earliest date among equal prices,
	// then a sale fare, then stable input order.
	TieBreakEarliestDate TieBreak = "earliest_date"
	// TieBreakScrapeOrder keeps the first equal-priced flight seen.
	TieBreakScrapeOrder TieBreak = "scrape_order"
)

func ParseTieBreak(s string) TieBreak {
	if s == string(TieBreakScrapeOrder) {
		return TieBreakScrapeOrder
	}
	return TieBreakEarliestDate
}

type routeGroup struct {
	bestByMix map[string]models.Flight
	best      models.Flight
	hasBest   bool
	hasSale   bool
	minPpk    *float64
}

// Reduce groups flights by route and emits one summary per route with the
// minimum price per passenger mix. The selection is total and
// deterministic: identical input always yields identical output.
func Reduce(flights []models.Flight, policy TieBreak) []models.RouteSummary {
	groups := make(map[models.Route]*routeGroup)
	var order []models.Route

	for _, f := range flights {
		route := f.Route()
		g, ok := groups[route]
		if !ok {
			g = &routeGroup{bestByMix: make(map[string]models.Flight)}
			groups[route] = g
			order = append(order, route)
		}

		if incumbent, ok := g.bestByMix[f.PassengerMix]; !ok || cheaper(f, incumbent, policy) {
			g.bestByMix[f.PassengerMix] = f
		}
		if !g.hasBest || cheaper(f, g.best, policy) {
			g.best = f
			g.hasBest = true
		}
		if f.IsSale {
			g.hasSale = true
		}
		if f.PricePerKm != nil && (g.minPpk == nil || *f.PricePerKm < *g.minPpk) {
			v := *f.PricePerKm
			g.minPpk = &v
		}
	}

	sort.Slice(order, func(i, j int) bool {
		if order[i].Origin != order[j].Origin {
			return order[i].Origin < order[j].Origin
		}
		return order[i].Destination < order[j].Destination
	})

	summaries := make([]models.RouteSummary, 0, len(order))
	for _, route := range order {
		g := groups[route]

		byMix := make(map[string]models.Price, len(g.bestByMix))
		for mix, f := range g.bestByMix {
			byMix[mix] = f.Price
		}

		summaries = append(summaries, models.RouteSummary{
			Origin:        route.Origin,
			Destination:   route.Destination,
			MinPriceByMix: byMix,
			MinPricePerKm: g.minPpk,
			HasSale:       g.hasSale,
			SampleDate:    g.best.Date,
		})
	}

	return summaries
}

// cheaper reports whether candidate should replace incumbent. Strictly
// lower price always wins; ties fall to the configured policy.
func cheaper(candidate, incumbent models.Flight, policy TieBreak) bool {
	if candidate.Price.Amount != incumbent.Price.Amount {
		return candidate.Price.Amount < incumbent.Price.Amount
	}

	if policy == TieBreakScrapeOrder {
		return false
	}

	if candidate.Date != incumbent.Date {
		return candidate.Date < incumbent.Date
	}
	if candidate.IsSale != incumbent.IsSale {
		return candidate.IsSale
	}
	return false
}
