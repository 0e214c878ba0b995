package models

import (
	"strings"
	"time"
)

type Airport struct {
	Code      string  `json:"code"`
	Name      string  `json:"name,omitempty"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
	Region    string  `json:"region,omitempty"`
}

type Price struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

type Route struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
}

func (r Route) String() string {
	return r.Origin + "-" + r.Destination
}

// Flight is one fare quote for a route on a calendar date, priced for one
// passenger mix. Date is YYYY-MM-DD.
type Flight struct {
	Airline      string    `json:"airline"`
	Origin       string    `json:"origin"`
	Destination  string    `json:"destination"`
	Date         string    `json:"date"`
	Price        Price     `json:"price"`
	PassengerMix string    `json:"passenger_mix"`
	IsSale       bool      `json:"is_sale"`
	PricePerKm   *float64  `json:"price_per_km,omitempty"`
	BookingURL   string    `json:"booking_url,omitempty"`
	ScrapedAt    time.Time `json:"scraped_at"`
}

// Key is the flight's identity for merge and dedup. Two quotes with the
// same key describe the same fare; the fresher one wins.
func (f Flight) Key() string {
	return strings.Join([]string{f.Origin, f.Destination, f.Date, f.PassengerMix}, "|")
}

func (f Flight) Route() Route {
	return Route{Origin: f.Origin, Destination: f.Destination}
}

type RouteSummary struct {
	Origin        string           `json:"origin"`
	Destination   string           `json:"destination"`
	MinPriceByMix map[string]Price `json:"min_price_by_mix"`
	MinPricePerKm *float64         `json:"min_price_per_km,omitempty"`
	HasSale       bool             `json:"has_sale"`
	SampleDate    string           `json:"sample_date"`
}

// Dataset is the artifact handed to storage and served to the map UI.
type Dataset struct {
	GeneratedAt time.Time      `json:"generated_at"`
	FlightCount int            `json:"flight_count"`
	RouteCount  int            `json:"route_count"`
	Airports    []Airport      `json:"airports"`
	Flights     []Flight       `json:"flights"`
	Routes      []RouteSummary `json:"routes"`
}
