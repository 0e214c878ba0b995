package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/sovdevs/weirdFlights/internal/filter"
	"github.com/sovdevs/weirdFlights/internal/geo"
	"github.com/sovdevs/weirdFlights/internal/models"
	"github.com/sovdevs/weirdFlights/internal/ranking"
	"github.com/sovdevs/weirdFlights/internal/store"
	"github.com/sovdevs/weirdFlights/pkg/currency"
)

// DatasetHandler serves the stored dataset to the map UI.
type DatasetHandler struct {
	store store.Store
	geo   *geo.Table
	log   *logrus.Logger
}

func NewDatasetHandler(st store.Store, table *geo.Table, log *logrus.Logger) *DatasetHandler {
	return &DatasetHandler{
		store: st,
		geo:   table,
		log:   log,
	}
}

func (h *DatasetHandler) Register(e *echo.Echo) {
	api := e.Group("/api")
	api.GET("/flights", h.Flights)
	api.GET("/routes", h.Routes)
	api.GET("/cheapest", h.Cheapest)
	api.GET("/airports", h.Airports)
	api.GET("/regions", h.Regions)
	api.GET("/stats", h.Stats)
	e.GET("/health", HealthHandler)
}

func (h *DatasetHandler) Flights(c echo.Context) error {
	var q models.FlightQuery
	if err := c.Bind(&q); err != nil {
		return badRequest(c, "invalid_request", err.Error())
	}
	if err := q.Validate(); err != nil {
		return badRequest(c, "validation_error", err.Error())
	}

	ds, err := h.store.Load(c.Request().Context())
	if err != nil {
		return h.storageError(c, err)
	}

	flights := filter.Flights(ds.Flights, q)
	return c.JSON(http.StatusOK, models.FlightsResponse{
		Count:       len(flights),
		GeneratedAt: ds.GeneratedAt,
		Flights:     flights,
	})
}

func (h *DatasetHandler) Routes(c echo.Context) error {
	var q models.RouteQuery
	if err := c.Bind(&q); err != nil {
		return badRequest(c, "invalid_request", err.Error())
	}

	ds, err := h.store.Load(c.Request().Context())
	if err != nil {
		return h.storageError(c, err)
	}

	routes := filter.Routes(ds.Routes, h.geo, q)
	return c.JSON(http.StatusOK, models.RoutesResponse{
		Count:       len(routes),
		GeneratedAt: ds.GeneratedAt,
		Routes:      routes,
	})
}

func (h *DatasetHandler) Cheapest(c echo.Context) error {
	limit := intQuery(c, "limit", 20)
	if limit > 100 {
		limit = 100
	}

	ds, err := h.store.Load(c.Request().Context())
	if err != nil {
		return h.storageError(c, err)
	}

	var routes []models.RouteSummary
	if strings.EqualFold(c.QueryParam("sort"), "value") {
		routes = ranking.ValueRoutes(ds.Routes, limit)
	} else {
		routes = ranking.CheapestRoutes(ds.Routes, limit)
	}

	return c.JSON(http.StatusOK, models.RoutesResponse{
		Count:       len(routes),
		GeneratedAt: ds.GeneratedAt,
		Routes:      routes,
	})
}

func (h *DatasetHandler) Airports(c echo.Context) error {
	region := c.QueryParam("region")

	airports := h.geo.All()
	if region != "" {
		kept := make([]models.Airport, 0, len(airports))
		for _, a := range airports {
			if a.Region == region {
				kept = append(kept, a)
			}
		}
		airports = kept
	}

	return c.JSON(http.StatusOK, models.AirportsResponse{
		Count:    len(airports),
		Airports: airports,
	})
}

func (h *DatasetHandler) Regions(c echo.Context) error {
	return c.JSON(http.StatusOK, models.RegionsResponse{
		Regions: h.geo.Regions(),
	})
}

func (h *DatasetHandler) Stats(c echo.Context) error {
	ds, err := h.store.Load(c.Request().Context())
	if err != nil {
		return h.storageError(c, err)
	}

	resp := models.StatsResponse{
		TotalFlights:  ds.FlightCount,
		TotalRoutes:   ds.RouteCount,
		LastUpdated:   ds.GeneratedAt,
		AirportsKnown: len(h.geo.All()),
	}

	if len(ds.Flights) > 0 {
		pr := models.PriceRange{Min: ds.Flights[0].Price.Amount, Max: ds.Flights[0].Price.Amount}
		code := ds.Flights[0].Price.Currency
		sum := 0.0
		for _, f := range ds.Flights {
			if f.Price.Amount < pr.Min {
				pr.Min = f.Price.Amount
				code = f.Price.Currency
			}
			if f.Price.Amount > pr.Max {
				pr.Max = f.Price.Amount
			}
			sum += f.Price.Amount
		}
		pr.Avg = sum / float64(len(ds.Flights))
		pr.MinFormatted = currency.Format(pr.Min, code)
		pr.MaxFormatted = currency.Format(pr.Max, code)
		resp.PriceRange = &pr
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *DatasetHandler) storageError(c echo.Context, err error) error {
	h.log.WithError(err).Error("dataset load failed")
	return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error:   "storage_error",
		Message: "Failed to load dataset: " + err.Error(),
		Code:    http.StatusInternalServerError,
	})
}

func badRequest(c echo.Context, kind, msg string) error {
	return c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:   kind,
		Message: msg,
		Code:    http.StatusBadRequest,
	})
}

func intQuery(c echo.Context, name string, def int) int {
	v := c.QueryParam(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
