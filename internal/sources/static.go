package sources

import (
	"context"
	"time"

	"github.com/sovdevs/weirdFlights/internal/models"
)

// StaticSource serves pre-loaded records filtered by route and window.
// Used in tests and for offline runs against captured responses.
type StaticSource struct {
	name    string
	records []RawFareRecord
}

func NewStaticSource(name string, records []RawFareRecord) *StaticSource {
	return &StaticSource{name: name, records: records}
}

func (s *StaticSource) Name() string {
	return s.name
}

func (s *StaticSource) Fetch(ctx context.Context, route models.Route, window DateRange, mix string) ([]RawFareRecord, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	var out []RawFareRecord
	for _, rec := range s.records {
		if rec.Origin != route.Origin || rec.Destination != route.Destination {
			continue
		}

		filtered := RawFareRecord{Origin: rec.Origin, Destination: rec.Destination}
		for _, e := range rec.Entries {
			if e.PassengerMix != "" && e.PassengerMix != mix {
				continue
			}
			if !inWindow(e.Date, window) {
				continue
			}
			if e.PassengerMix == "" {
				e.PassengerMix = mix
			}
			filtered.Entries = append(filtered.Entries, e)
		}

		if len(filtered.Entries) > 0 {
			out = append(out, filtered)
		}
	}

	return out, nil
}

func inWindow(date string, window DateRange) bool {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return true // let the normalizer report it as skipped
	}
	return !d.Before(window.Start) && !d.After(window.End)
}
