package pipeline

import (
	"sort"
	"time"

	"github.com/sovdevs/weirdFlights/internal/models"
)

// Merge reconciles a fresh batch with the previously stored flight set.
// Incoming flights replace stored ones with the same identity key; stored
// flights not refreshed this run are retained unchanged, so a partial
// fetch failure never erases unrelated history. Flights dated strictly
// before the run day are pruned to keep the dataset forward-looking.
func Merge(previous, incoming []models.Flight, runTime time.Time) []models.Flight {
	byKey := make(map[string]models.Flight, len(previous)+len(incoming))
	for _, f := range previous {
		byKey[f.Key()] = f
	}
	for _, f := range incoming {
		byKey[f.Key()] = f
	}

	runDay := time.Date(runTime.Year(), runTime.Month(), runTime.Day(), 0, 0, 0, 0, time.UTC)

	merged := make([]models.Flight, 0, len(byKey))
	for _, f := range byKey {
		date, err := time.Parse("2006-01-02", f.Date)
		if err != nil || date.Before(runDay) {
			continue
		}
		merged = append(merged, f)
	}

	sortFlights(merged)
	return merged
}

// sortFlights fixes the dataset order: route, then date, then mix, then
// airline. Repeated runs over identical input serialize byte-identically.
func sortFlights(flights []models.Flight) {
	sort.Slice(flights, func(i, j int) bool {
		a, b := flights[i], flights[j]
		if a.Origin != b.Origin {
			return a.Origin < b.Origin
		}
		if a.Destination != b.Destination {
			return a.Destination < b.Destination
		}
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		if a.PassengerMix != b.PassengerMix {
			return a.PassengerMix < b.PassengerMix
		}
		return a.Airline < b.Airline
	})
}
