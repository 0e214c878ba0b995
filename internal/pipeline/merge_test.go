package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sovdevs/weirdFlights/internal/models"
)

var mergeNow = time.Date(2025, 12, 1, 12, 0, 0, 0, time.UTC)

func TestMergeReplacesSameKey(t *testing.T) {
	old := flight("BER", "JFK", "2026-01-10", 500, "1 adult")
	fresh := flight("BER", "JFK", "2026-01-10", 420, "1 adult")
	fresh.IsSale = true
	fresh.ScrapedAt = mergeNow

	merged := Merge([]models.Flight{old}, []models.Flight{fresh}, mergeNow)

	require.Len(t, merged, 1)
	assert.Equal(t, 420.0, merged[0].Price.Amount)
	assert.True(t, merged[0].IsSale)
	assert.Equal(t, mergeNow, merged[0].ScrapedAt)

	summaries := Reduce(merged, TieBreakEarliestDate)
	require.Len(t, summaries, 1)
	assert.True(t, summaries[0].HasSale)
	assert.Equal(t, 420.0, summaries[0].MinPriceByMix["1 adult"].Amount)
}

func TestMergeRetainsUnrefreshedHistory(t *testing.T) {
	old := []models.Flight{
		flight("LGW", "BKK", "2026-01-05", 320, "1 adult"),
		flight("LGW", "BKK", "2026-01-12", 280, "1 adult"),
		flight("LGW", "BKK", "2026-02-03", 350, "1 adult"),
	}
	fresh := []models.Flight{
		flight("OSL", "JFK", "2026-01-06", 450, "1 adult"),
	}

	merged := Merge(old, fresh, mergeNow)

	assert.Len(t, merged, 4)
	for _, f := range old {
		assert.Contains(t, merged, f)
	}
}

func TestMergeDistinctMixesAreDistinctKeys(t *testing.T) {
	old := flight("OSL", "JFK", "2026-01-10", 450, "1 adult")
	fresh := flight("OSL", "JFK", "2026-01-10", 900, "2 adults")

	merged := Merge([]models.Flight{old}, []models.Flight{fresh}, mergeNow)

	assert.Len(t, merged, 2)
}

func TestMergePrunesPastDates(t *testing.T) {
	old := []models.Flight{
		flight("LGW", "BKK", "2025-11-20", 250, "1 adult"), // already departed
		flight("LGW", "BKK", "2025-12-01", 260, "1 adult"), // run day, kept
		flight("LGW", "BKK", "2026-01-10", 280, "1 adult"),
	}

	merged := Merge(old, nil, mergeNow)

	require.Len(t, merged, 2)
	assert.Equal(t, "2025-12-01", merged[0].Date)
	assert.Equal(t, "2026-01-10", merged[1].Date)
}

func TestMergeNoDuplicateKeys(t *testing.T) {
	fresh := []models.Flight{
		flight("LGW", "BKK", "2026-01-10", 300, "1 adult"),
		flight("LGW", "BKK", "2026-01-10", 290, "1 adult"), // same key, later wins
	}

	merged := Merge(nil, fresh, mergeNow)

	require.Len(t, merged, 1)
	assert.Equal(t, 290.0, merged[0].Price.Amount)
}

func TestMergeIdempotent(t *testing.T) {
	old := []models.Flight{
		flight("LGW", "BKK", "2026-01-05", 320, "1 adult"),
		flight("OSL", "JFK", "2026-01-06", 450, "1 adult"),
	}
	fresh := []models.Flight{
		flight("LGW", "BKK", "2026-01-05", 300, "1 adult"),
		flight("BER", "JFK", "2026-01-10", 420, "1 adult"),
	}

	once := Merge(old, fresh, mergeNow)
	twice := Merge(once, fresh, mergeNow)

	assert.Equal(t, once, twice)
}

func TestMergeOutputOrderDeterministic(t *testing.T) {
	fresh := []models.Flight{
		flight("SIN", "BKK", "2026-01-10", 60, "1 adult"),
		flight("BER", "JFK", "2026-01-10", 420, "1 adult"),
		flight("BER", "JFK", "2026-01-05", 500, "1 adult"),
		flight("BER", "JFK", "2026-01-05", 900, "2 adults"),
	}

	merged := Merge(nil, fresh, mergeNow)

	require.Len(t, merged, 4)
	assert.Equal(t, "2026-01-05", merged[0].Date)
	assert.Equal(t, "1 adult", merged[0].PassengerMix)
	assert.Equal(t, "2 adults", merged[1].PassengerMix)
	assert.Equal(t, "2026-01-10", merged[2].Date)
	assert.Equal(t, "SIN", merged[3].Origin)
}
