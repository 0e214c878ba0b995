package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/sovdevs/weirdFlights/internal/models"
)

type norseCriteria struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	BeginDate   string `json:"beginDate"`
	EndDate     string `json:"endDate"`
}

type norsePassenger struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

type norseRequest struct {
	Criteria      []norseCriteria  `json:"criteria"`
	Passengers    []norsePassenger `json:"passengers"`
	CurrencyCode  string           `json:"currencyCode"`
	PromotionCode string           `json:"promotionCode"`
	ClearBooking  bool             `json:"clearBooking"`
	ChildDobs     []string         `json:"childDobs"`
	InfantDobs    []string         `json:"infantDobs"`
}

type norseResponse struct {
	Data []norseCityPairData `json:"data"`
}

type norseCityPairData struct {
	CityPair norseCityPair `json:"cityPair"`
	Cabins   []norseCabin  `json:"cabins"`
}

type norseCityPair struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
}

type norseCabin struct {
	CabinName      string         `json:"cabinName"`
	LowFareAmounts []norseLowFare `json:"lowFareAmounts"`
}

type norseLowFare struct {
	DepartureDate    string   `json:"departureDate"`
	FareTotal        *float64 `json:"fareTotal"`
	RoundedFareTotal *float64 `json:"roundedFareTotal"`
	IsSaleFare       bool     `json:"isSaleFare"`
}

type NorseConfig struct {
	BaseURL    string
	BookingURL string
	Currency   string
}

func DefaultNorseConfig() NorseConfig {
	return NorseConfig{
		BaseURL:    "https://services.flynorse.com/api/v1",
		BookingURL: "https://flynorse.com/en-GB/booking/select",
		Currency:   "GBP",
	}
}

// NorseSource queries the Norse Atlantic lowfare availability endpoint.
type NorseSource struct {
	cfg    NorseConfig
	client Doer
	token  func() string
}

func NewNorseSource(cfg NorseConfig, client Doer, token func() string) *NorseSource {
	if cfg.BaseURL == "" {
		cfg = DefaultNorseConfig()
	}
	return &NorseSource{cfg: cfg, client: client, token: token}
}

func (s *NorseSource) Name() string {
	return "norse"
}

func (s *NorseSource) Fetch(ctx context.Context, route models.Route, window DateRange, mix string) ([]RawFareRecord, error) {
	adults, children := mixCounts(mix)

	payload := norseRequest{
		Criteria: []norseCriteria{{
			Origin:      route.Origin,
			Destination: route.Destination,
			BeginDate:   window.Start.Format("2006-01-02"),
			EndDate:     window.End.Format("2006-01-02"),
		}},
		Passengers:   []norsePassenger{{Type: "ADT", Count: adults}},
		CurrencyCode: s.cfg.Currency,
		ClearBooking: true,
		ChildDobs:    []string{},
		InfantDobs:   []string{},
	}
	if children > 0 {
		payload.ChildDobs = make([]string, children)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, NewSourceError(s.Name(), err)
	}

	url := s.cfg.BaseURL + "/availability/lowfare?includePremium=false"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, NewSourceError(s.Name(), err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Authorization", "Bearer "+s.token())

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

	var parsed norseResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, NewSourceError(s.Name(), err)
	}

	return s.parse(parsed, mix), nil
}

func (s *NorseSource) parse(resp norseResponse, mix string) []RawFareRecord {
	var records []RawFareRecord

	for _, pair := range resp.Data {
		origin := pair.CityPair.Origin
		destination := pair.CityPair.Destination
		if origin == "" || destination == "" {
			continue
		}

		rec := RawFareRecord{Origin: origin, Destination: destination}

		for _, cabin := range pair.Cabins {
			for _, fare := range cabin.LowFareAmounts {
				if fare.FareTotal == nil {
					continue
				}
				price := *fare.FareTotal
				if fare.RoundedFareTotal != nil && *fare.RoundedFareTotal > 0 {
					price = *fare.RoundedFareTotal
				}

				if len(fare.DepartureDate) < 10 {
					continue
				}
				date := fare.DepartureDate[:10]

				rec.Entries = append(rec.Entries, FareEntry{
					Date:         date,
					Price:        price,
					Currency:     s.cfg.Currency,
					PassengerMix: mix,
					IsSale:       fare.IsSaleFare,
					BookingURL: fmt.Sprintf("%s?origin=%s&destination=%s&date=%s&cabin=%s",
						s.cfg.BookingURL, origin, destination, date, cabin.CabinName),
				})
			}
		}

		if len(rec.Entries) > 0 {
			records = append(records, rec)
		}
	}

	return records
}
