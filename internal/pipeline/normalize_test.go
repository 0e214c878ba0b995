package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sovdevs/weirdFlights/internal/sources"
)

var testNow = time.Date(2025, 12, 1, 12, 0, 0, 0, time.UTC)

func TestNormalizeSkipsBadPrices(t *testing.T) {
	n := NewNormalizer(testNow, 6)

	rec := sources.RawFareRecord{
		Origin:      "OSL",
		Destination: "JFK",
		Entries: []sources.FareEntry{
			{Date: "2026-01-10", Price: -1, Currency: "GBP", PassengerMix: "1 adult"},
			{Date: "2026-01-10", Price: 450, Currency: "GBP", PassengerMix: "1 adult"},
		},
	}

	res := n.Normalize(rec, "norse", testNow)

	require.Len(t, res.Flights, 1)
	assert.Equal(t, 450.0, res.Flights[0].Price.Amount)
	assert.Equal(t, 1, res.Skipped)
}

func TestNormalizeNonPositivePricesNeverProduceFlights(t *testing.T) {
	n := NewNormalizer(testNow, 6)

	for _, price := range []float64{0, -0.01, -100} {
		rec := sources.RawFareRecord{
			Origin:      "LGW",
			Destination: "BKK",
			Entries:     []sources.FareEntry{{Date: "2026-01-10", Price: price, PassengerMix: "1 adult"}},
		}
		res := n.Normalize(rec, "norse", testNow)
		assert.Empty(t, res.Flights, "price %v", price)
		assert.Equal(t, 1, res.Skipped, "price %v", price)
	}
}

func TestNormalizeSkipsMalformedDates(t *testing.T) {
	n := NewNormalizer(testNow, 6)

	rec := sources.RawFareRecord{
		Origin:      "LGW",
		Destination: "BKK",
		Entries: []sources.FareEntry{
			{Date: "", Price: 100, PassengerMix: "1 adult"},
			{Date: "not-a-date", Price: 100, PassengerMix: "1 adult"},
		},
	}

	res := n.Normalize(rec, "norse", testNow)
	assert.Empty(t, res.Flights)
	assert.Equal(t, 2, res.Skipped)
}

func TestNormalizeDateWindow(t *testing.T) {
	n := NewNormalizer(testNow, 6)

	tests := []struct {
		name string
		date string
		kept bool
	}{
		{"today", "2025-12-01", true},
		{"yesterday", "2025-11-30", false},
		{"inside window", "2026-03-15", true},
		{"last day inside", "2026-05-31", true},
		{"horizon boundary", "2026-06-01", false},
		{"far future", "2027-01-01", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := sources.RawFareRecord{
				Origin:      "LGW",
				Destination: "BKK",
				Entries:     []sources.FareEntry{{Date: tt.date, Price: 100, PassengerMix: "1 adult"}},
			}
			res := n.Normalize(rec, "norse", testNow)
			if tt.kept {
				assert.Len(t, res.Flights, 1)
			} else {
				assert.Empty(t, res.Flights)
				assert.Equal(t, 1, res.OutOfWindow)
				assert.Zero(t, res.Skipped)
			}
		})
	}
}

func TestNormalizeUnknownMixPreservedAndFlagged(t *testing.T) {
	n := NewNormalizer(testNow, 6)

	rec := sources.RawFareRecord{
		Origin:      "SIN",
		Destination: "BKK",
		Entries:     []sources.FareEntry{{Date: "2026-01-10", Price: 60, PassengerMix: "3 adults 2 infants"}},
	}

	res := n.Normalize(rec, "scoot", testNow)

	require.Len(t, res.Flights, 1)
	assert.Equal(t, "3 adults 2 infants", res.Flights[0].PassengerMix)
	assert.Equal(t, []string{"3 adults 2 infants"}, res.UnknownMixes)
}

func TestNormalizeMissingEndpoints(t *testing.T) {
	n := NewNormalizer(testNow, 6)

	rec := sources.RawFareRecord{
		Origin:  "",
		Entries: []sources.FareEntry{{Date: "2026-01-10", Price: 100}},
	}

	res := n.Normalize(rec, "norse", testNow)
	assert.Empty(t, res.Flights)
	assert.Equal(t, 1, res.Skipped)
}

func TestNormalizeCarriesFields(t *testing.T) {
	n := NewNormalizer(testNow, 6)
	scrapedAt := time.Date(2025, 12, 1, 6, 30, 0, 0, time.UTC)

	rec := sources.RawFareRecord{
		Origin:      "BER",
		Destination: "JFK",
		Entries: []sources.FareEntry{{
			Date:         "2026-02-14",
			Price:        420,
			Currency:     "GBP",
			PassengerMix: "ADT1",
			IsSale:       true,
			BookingURL:   "https://example.com/book",
		}},
	}

	res := n.Normalize(rec, "norse", scrapedAt)

	require.Len(t, res.Flights, 1)
	f := res.Flights[0]
	assert.Equal(t, "norse", f.Airline)
	assert.Equal(t, "BER", f.Origin)
	assert.Equal(t, "JFK", f.Destination)
	assert.Equal(t, "1 adult", f.PassengerMix) // ADT1 normalizes
	assert.True(t, f.IsSale)
	assert.Equal(t, "https://example.com/book", f.BookingURL)
	assert.Equal(t, scrapedAt, f.ScrapedAt)
	assert.Empty(t, res.UnknownMixes)
}

func TestCanonicalMix(t *testing.T) {
	tests := []struct {
		label string
		want  string
		known bool
	}{
		{"1 adult", "1 adult", true},
		{"Adult", "1 adult", true},
		{"ADT1", "1 adult", true},
		{"2 Adults", "2 adults", true},
		{"adult+child", "adult+child", true},
		{"1 Adult 1 Child", "adult+child", true},
		{"business group", "business group", false},
	}

	for _, tt := range tests {
		mix, known := CanonicalMix(tt.label)
		assert.Equal(t, tt.want, mix, tt.label)
		assert.Equal(t, tt.known, known, tt.label)
	}
}
