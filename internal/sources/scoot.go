package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sovdevs/weirdFlights/internal/models"
)

type scootFlightFare struct {
	FareType     []string `json:"fareType"`
	ProductClass []string `json:"productClass"`
}

type scootCriteria struct {
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departureDate"`
}

type scootPassengers struct {
	Adult  int `json:"adult"`
	Child  int `json:"child"`
	Infant int `json:"infant"`
}

type scootRequest struct {
	CurrencyCode      string          `json:"currencyCode"`
	PromoCode         string          `json:"promoCode"`
	DaysForward       int             `json:"daysForward"`
	DaysBackward      int             `json:"daysBackward"`
	FlightFare        scootFlightFare `json:"flightFare"`
	FlightCriteria    []scootCriteria `json:"flightCriteria"`
	PassengerCriteria scootPassengers `json:"passengerCriteria"`
}

type scootResponse struct {
	CurrencyCode         string        `json:"currencyCode"`
	LowFareSearchMarkets []scootMarket `json:"lowFareSearchMarkets"`
}

type scootMarket struct {
	Origin      string         `json:"origin"`
	Destination string         `json:"destination"`
	LowFares    []scootLowFare `json:"lowFares"`
}

type scootLowFare struct {
	TotalAmount   *float64 `json:"totalAmount"`
	DepartureDate string   `json:"departureDate"`
	Available     int      `json:"available"`
	NoFlights     bool     `json:"noFlights"`
	SoldOut       bool     `json:"soldOut"`
}

type ScootConfig struct {
	BaseURL    string
	BookingURL string
	Currency   string
}

func DefaultScootConfig() ScootConfig {
	return ScootConfig{
		BaseURL:    "https://booking.flyscoot.com/api/flights",
		BookingURL: "https://booking.flyscoot.com",
		Currency:   "SGD",
	}
}

// ScootSource queries the Scoot lowfare endpoint. One call covers the
// requested window by centering on its midpoint with day spans either side.
type ScootSource struct {
	cfg    ScootConfig
	client Doer
	token  func() string
}

func NewScootSource(cfg ScootConfig, client Doer, token func() string) *ScootSource {
	if cfg.BaseURL == "" {
		cfg = DefaultScootConfig()
	}
	return &ScootSource{cfg: cfg, client: client, token: token}
}

func (s *ScootSource) Name() string {
	return "scoot"
}

func (s *ScootSource) Fetch(ctx context.Context, route models.Route, window DateRange, mix string) ([]RawFareRecord, error) {
	adults, children := mixCounts(mix)

	span := int(window.End.Sub(window.Start).Hours() / 48)
	mid := window.Start.AddDate(0, 0, span)

	payload := scootRequest{
		CurrencyCode: s.cfg.Currency,
		DaysForward:  span,
		DaysBackward: span,
		FlightFare:   scootFlightFare{FareType: []string{}, ProductClass: []string{}},
		FlightCriteria: []scootCriteria{{
			Origin:        route.Origin,
			Destination:   route.Destination,
			DepartureDate: mid.Format("2006-01-02"),
		}},
		PassengerCriteria: scootPassengers{Adult: adults, Child: children},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, NewSourceError(s.Name(), err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.BaseURL+"/lowfare", bytes.NewReader(body))
	if err != nil {
		return nil, NewSourceError(s.Name(), err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Authorization", s.token())

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, NewSourceError(s.Name(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, NewSourceError(s.Name(), fmt.Errorf("lowfare request returned %d", resp.StatusCode))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewSourceError(s.Name(), err)
	}

	var parsed scootResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, NewSourceError(s.Name(), err)
	}

	return s.parse(parsed, route, mix), nil
}

func (s *ScootSource) parse(resp scootResponse, route models.Route, mix string) []RawFareRecord {
	var records []RawFareRecord

	for _, market := range resp.LowFareSearchMarkets {
		origin := market.Origin
		destination := market.Destination
		if origin == "" {
			origin = route.Origin
		}
		if destination == "" {
			destination = route.Destination
		}

		rec := RawFareRecord{Origin: origin, Destination: destination}

		for _, fare := range market.LowFares {
			if fare.TotalAmount == nil || fare.NoFlights || fare.SoldOut {
				continue
			}

			date := fare.DepartureDate
			if idx := strings.Index(date, "T"); idx >= 0 {
				date = date[:idx]
			}
			if date == "" {
				continue
			}

			// The Scoot response carries no sale indicator.
			rec.Entries = append(rec.Entries, FareEntry{
				Date:         date,
				Price:        *fare.TotalAmount,
				Currency:     s.cfg.Currency,
				PassengerMix: mix,
				BookingURL: fmt.Sprintf("%s?origin=%s&destination=%s&departure=%s",
					s.cfg.BookingURL, origin, destination, date),
			})
		}

		if len(rec.Entries) > 0 {
			records = append(records, rec)
		}
	}

	return records
}
