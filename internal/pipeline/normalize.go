package pipeline

import (
	"strings"
	"time"

	"github.com/sovdevs/weirdFlights/internal/models"
	"github.com/sovdevs/weirdFlights/internal/sources"
)

// NormalizeResult carries the flights produced from one raw record plus
// the per-record bookkeeping the run report needs.
type NormalizeResult struct {
	Flights      []models.Flight
	Skipped      int
	OutOfWindow  int
	UnknownMixes []string
}

// Normalizer turns raw fare records into canonical Flights. It is a pure
// transform: a malformed entry is counted and skipped, never an error, so
// one bad record cannot block its siblings.
type Normalizer struct {
	earliest time.Time
	horizon  time.Time
}

// NewNormalizer bounds accepted departure dates to [today, today+months).
func NewNormalizer(now time.Time, monthsAhead int) *Normalizer {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return &Normalizer{
		earliest: day,
		horizon:  day.AddDate(0, monthsAhead, 0),
	}
}

func (n *Normalizer) Normalize(rec sources.RawFareRecord, airline string, scrapedAt time.Time) NormalizeResult {
	var res NormalizeResult

	if rec.Origin == "" || rec.Destination == "" {
		res.Skipped += len(rec.Entries)
		return res
	}

	for _, e := range rec.Entries {
		if e.Price <= 0 {
			res.Skipped++
			continue
		}

		date, err := time.Parse("2006-01-02", e.Date)
		if err != nil {
			res.Skipped++
			continue
		}
		if date.Before(n.earliest) || !date.Before(n.horizon) {
			res.OutOfWindow++
			continue
		}

		mix, known := CanonicalMix(e.PassengerMix)
		if !known {
			res.UnknownMixes = append(res.UnknownMixes, e.PassengerMix)
		}

		res.Flights = append(res.Flights, models.Flight{
			Airline:      airline,
			Origin:       rec.Origin,
			Destination:  rec.Destination,
			Date:         e.Date,
			Price:        models.Price{Amount: e.Price, Currency: e.Currency},
			PassengerMix: mix,
			IsSale:       e.IsSale,
			BookingURL:   e.BookingURL,
			ScrapedAt:    scrapedAt,
		})
	}

	return res
}

// CanonicalMix maps a source's passenger-mix label onto the fixed set the
// reducer groups by. Unrecognized labels come back verbatim with ok=false
// so they can be flagged for triage instead of dropped.
func CanonicalMix(label string) (mix string, ok bool) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "1 adult", "adult", "1adult", "adt", "adt1":
		return sources.MixOneAdult, true
	case "2 adults", "2 adult", "2adults", "adt2":
		return sources.MixTwoAdults, true
	case "adult+child", "adult + child", "1 adult 1 child", "adult_child":
		return sources.MixAdultChild, true
	default:
		return label, false
	}
}
