package models

import "time"

type FailedRoute struct {
	Source      string `json:"source"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Reason      string `json:"reason"`
}

// RunReport describes one pipeline invocation: what was attempted, what
// succeeded, and what was skipped, with enough detail to diagnose a bad
// run without repeating it.
type RunReport struct {
	RunID           string        `json:"run_id"`
	StartedAt       time.Time     `json:"started_at"`
	FinishedAt      time.Time     `json:"finished_at"`
	RoutesAttempted int           `json:"routes_attempted"`
	RoutesSucceeded int           `json:"routes_succeeded"`
	RoutesFailed    int           `json:"routes_failed"`
	FailedRoutes    []FailedRoute `json:"failed_routes,omitempty"`
	RecordsSkipped  int           `json:"records_skipped"`
	UnknownMixes    []string      `json:"unknown_mixes,omitempty"`
	FlightCount     int           `json:"flight_count"`
	RouteCount      int           `json:"route_count"`
}
