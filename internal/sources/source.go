package sources

import (
	"context"
	"net/http"
	"time"

	"github.com/sovdevs/weirdFlights/internal/models"
)

// FareEntry is one per-date quote inside a raw source response.
type FareEntry struct {
	Date         string
	Price        float64
	Currency     string
	PassengerMix string
	IsSale       bool
	BookingURL   string
}

// RawFareRecord is a source response mapped to a neutral shape, before
// normalization. It has no identity of its own and is discarded once the
// normalizer has produced Flights from it.
type RawFareRecord struct {
	Origin      string
	Destination string
	Entries     []FareEntry
}

// DateRange is a closed [Start, End] calendar window.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Source fetches raw fares for one route, one passenger mix at a time.
// Implementations receive an already-authenticated HTTP capability;
// credential handling never lives here.
type Source interface {
	Name() string
	Fetch(ctx context.Context, route models.Route, window DateRange, mix string) ([]RawFareRecord, error)
}

// Doer is the authenticated fetch capability injected into sources.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type SourceError struct {
	Source string
	Err    error
}

func (e *SourceError) Error() string {
	return e.Source + ": " + e.Err.Error()
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

func NewSourceError(source string, err error) *SourceError {
	return &SourceError{
		Source: source,
		Err:    err,
	}
}
