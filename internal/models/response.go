package models

import "time"

type FlightsResponse struct {
	Count       int       `json:"count"`
	GeneratedAt time.Time `json:"generated_at"`
	Flights     []Flight  `json:"flights"`
}

type RoutesResponse struct {
	Count       int            `json:"count"`
	GeneratedAt time.Time      `json:"generated_at"`
	Routes      []RouteSummary `json:"routes"`
}

type AirportsResponse struct {
	Count    int       `json:"count"`
	Airports []Airport `json:"airports"`
}

type RegionsResponse struct {
	Regions []string `json:"regions"`
}

type PriceRange struct {
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	Avg          float64 `json:"avg"`
	MinFormatted string  `json:"min_formatted,omitempty"`
	MaxFormatted string  `json:"max_formatted,omitempty"`
}

type StatsResponse struct {
	TotalFlights  int         `json:"total_flights"`
	TotalRoutes   int         `json:"total_routes"`
	PriceRange    *PriceRange `json:"price_range,omitempty"`
	LastUpdated   time.Time   `json:"last_updated"`
	AirportsKnown int         `json:"airports_known"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
