package sources

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sovdevs/weirdFlights/internal/models"
)

type doerFunc func(req *http.Request) (*http.Response, error)

func (f doerFunc) Do(req *http.Request) (*http.Response, error) {
	return f(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func testWindow() DateRange {
	return DateRange{
		Start: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
	}
}

const norseBody = `{
  "data": [
    {
      "cityPair": {"origin": "LGW", "destination": "BKK"},
      "cabins": [
        {
          "cabinName": "Economy",
          "lowFareAmounts": [
            {"departureDate": "2026-01-09T00:00:00", "fareTotal": 493.57, "roundedFareTotal": 494, "isSaleFare": false},
            {"departureDate": "2026-01-12T00:00:00", "fareTotal": 279.99, "roundedFareTotal": 280, "isSaleFare": true},
            {"departureDate": "2026-01-15T00:00:00", "fareTotal": null}
          ]
        }
      ]
    }
  ]
}`

func TestNorseFetchParsesLowFares(t *testing.T) {
	var captured *http.Request
	client := doerFunc(func(req *http.Request) (*http.Response, error) {
		captured = req
		return jsonResponse(http.StatusOK, norseBody), nil
	})

	src := NewNorseSource(DefaultNorseConfig(), client, func() string { return "test-token" })
	records, err := src.Fetch(context.Background(),
		models.Route{Origin: "LGW", Destination: "BKK"}, testWindow(), MixOneAdult)
	require.NoError(t, err)

	require.NotNil(t, captured)
	assert.Equal(t, http.MethodPost, captured.Method)
	assert.Equal(t, "Bearer test-token", captured.Header.Get("Authorization"))
	assert.Contains(t, captured.URL.String(), "/availability/lowfare")

	require.Len(t, records, 1)
	rec := records[0]
	assert.Equal(t, "LGW", rec.Origin)
	assert.Equal(t, "BKK", rec.Destination)
	require.Len(t, rec.Entries, 2, "null fareTotal entry is dropped")

	first := rec.Entries[0]
	assert.Equal(t, "2026-01-09", first.Date)
	assert.Equal(t, 494.0, first.Price, "rounded fare preferred")
	assert.Equal(t, "GBP", first.Currency)
	assert.Equal(t, MixOneAdult, first.PassengerMix)
	assert.False(t, first.IsSale)
	assert.Contains(t, first.BookingURL, "origin=LGW")
	assert.Contains(t, first.BookingURL, "date=2026-01-09")

	assert.True(t, rec.Entries[1].IsSale)
	assert.Equal(t, 280.0, rec.Entries[1].Price)
}

func TestNorseFetchFallsBackToFareTotal(t *testing.T) {
	body := `{"data":[{"cityPair":{"origin":"OSL","destination":"JFK"},"cabins":[{"cabinName":"Economy","lowFareAmounts":[{"departureDate":"2026-01-20T00:00:00","fareTotal":451.25}]}]}]}`
	client := doerFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, body), nil
	})

	src := NewNorseSource(DefaultNorseConfig(), client, func() string { return "t" })
	records, err := src.Fetch(context.Background(),
		models.Route{Origin: "OSL", Destination: "JFK"}, testWindow(), MixOneAdult)
	require.NoError(t, err)

	require.Len(t, records, 1)
	require.Len(t, records[0].Entries, 1)
	assert.Equal(t, 451.25, records[0].Entries[0].Price)
}

func TestNorseFetchNonOKStatus(t *testing.T) {
	client := doerFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusForbidden, `{}`), nil
	})

	src := NewNorseSource(DefaultNorseConfig(), client, func() string { return "expired" })
	_, err := src.Fetch(context.Background(),
		models.Route{Origin: "LGW", Destination: "BKK"}, testWindow(), MixOneAdult)

	require.Error(t, err)
	var srcErr *SourceError
	require.ErrorAs(t, err, &srcErr)
	assert.Equal(t, "norse", srcErr.Source)
}

func TestNorseFetchEmptyCityPairSkipped(t *testing.T) {
	body := `{"data":[{"cityPair":{"origin":"","destination":""},"cabins":[{"cabinName":"Economy","lowFareAmounts":[{"departureDate":"2026-01-09T00:00:00","fareTotal":100}]}]}]}`
	client := doerFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, body), nil
	})

	src := NewNorseSource(DefaultNorseConfig(), client, func() string { return "t" })
	records, err := src.Fetch(context.Background(),
		models.Route{Origin: "LGW", Destination: "BKK"}, testWindow(), MixOneAdult)
	require.NoError(t, err)
	assert.Empty(t, records)
}
