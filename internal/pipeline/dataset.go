package pipeline

import (
	"time"

	"github.com/sovdevs/weirdFlights/internal/geo"
	"github.com/sovdevs/weirdFlights/internal/models"
)

// BuildDataset assembles the output artifact. All filtering decisions were
// made upstream by Merge and Reduce; this only stamps and counts.
func BuildDataset(flights []models.Flight, routes []models.RouteSummary, airports []models.Airport, generatedAt time.Time) *models.Dataset {
	return &models.Dataset{
		GeneratedAt: generatedAt,
		FlightCount: len(flights),
		RouteCount:  len(routes),
		Airports:    airports,
		Flights:     flights,
		Routes:      routes,
	}
}

// Annotate fills in price-per-km for every flight that resolves to known
// airports. Unknown codes leave the metric nil; the flight stays.
func Annotate(flights []models.Flight, table *geo.Table) {
	for i := range flights {
		flights[i].PricePerKm = table.PricePerKm(flights[i].Origin, flights[i].Destination, flights[i].Price.Amount)
	}
}
