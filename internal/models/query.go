package models

import "time"

type FlightQuery struct {
	Origin      string   `query:"origin"`
	Destination string   `query:"destination"`
	MaxPrice    *float64 `query:"max_price"`
	StartDate   string   `query:"start_date"`
	EndDate     string   `query:"end_date"`
	Limit       int      `query:"limit"`
}

func (q *FlightQuery) Validate() error {
	if q.StartDate != "" {
		if _, err := time.Parse("2006-01-02", q.StartDate); err != nil {
			return ErrBadStartDate
		}
	}
	if q.EndDate != "" {
		if _, err := time.Parse("2006-01-02", q.EndDate); err != nil {
			return ErrBadEndDate
		}
	}
	if q.Limit <= 0 {
		q.Limit = 100
	}
	if q.Limit > 500 {
		q.Limit = 500
	}
	return nil
}

type RouteQuery struct {
	OriginRegion string   `query:"origin_region"`
	DestRegion   string   `query:"dest_region"`
	MaxPrice     *float64 `query:"max_price"`
}

type ValidationError string

func (e ValidationError) Error() string {
	return string(e)
}

const (
	ErrBadStartDate ValidationError = "start_date must be YYYY-MM-DD"
	ErrBadEndDate   ValidationError = "end_date must be YYYY-MM-DD"
)
