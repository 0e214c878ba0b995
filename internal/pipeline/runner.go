package pipeline

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/sovdevs/weirdFlights/internal/geo"
	"github.com/sovdevs/weirdFlights/internal/models"
	"github.com/sovdevs/weirdFlights/internal/ratelimit"
	"github.com/sovdevs/weirdFlights/internal/sources"
	"github.com/sovdevs/weirdFlights/internal/store"
)

type RunConfig struct {
	RoutesBySource map[string][]models.Route
	Mixes          []string
	MonthsAhead    int
	TieBreak       TieBreak
	Timeout        time.Duration
	MaxRetries     int
	RetryDelays    []time.Duration
}

// Runner drives one batch invocation: fetch every configured route from
// every source, normalize, merge with the previous dataset, reduce, save.
// The core stages are pure; all I/O sits at the store and source edges.
type Runner struct {
	sources []sources.Source
	store   store.Store
	geo     *geo.Table
	limiter *ratelimit.SourceLimiter
	cfg     RunConfig
	log     *logrus.Logger
	now     func() time.Time
}

func NewRunner(srcs []sources.Source, st store.Store, table *geo.Table, limiter *ratelimit.SourceLimiter, cfg RunConfig, log *logrus.Logger) *Runner {
	if cfg.MonthsAhead <= 0 {
		cfg.MonthsAhead = 6
	}
	if len(cfg.Mixes) == 0 {
		cfg.Mixes = []string{sources.MixOneAdult}
	}
	return &Runner{
		sources: srcs,
		store:   st,
		geo:     table,
		limiter: limiter,
		cfg:     cfg,
		log:     log,
		now:     time.Now,
	}
}

// Run executes one pipeline pass. Only persistence failures are fatal: a
// source or route failing leaves its stored history untouched and is
// reported, never aborts the run.
func (r *Runner) Run(ctx context.Context) (*models.Dataset, *models.RunReport, error) {
	if r.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.Timeout)
		defer cancel()
	}

	started := r.now().UTC()
	report := &models.RunReport{
		RunID:     uuid.NewString(),
		StartedAt: started,
	}

	previous, err := r.store.Load(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load previous dataset: %w", err)
	}
	r.log.WithFields(logrus.Fields{
		"run_id":           report.RunID,
		"previous_flights": len(previous.Flights),
	}).Info("run started")

	normalizer := NewNormalizer(started, r.cfg.MonthsAhead)
	windows := monthWindows(started, r.cfg.MonthsAhead)

	var batch []models.Flight
	unknownMixes := make(map[string]bool)

	for _, src := range r.sources {
		routes := r.cfg.RoutesBySource[src.Name()]
		for _, route := range routes {
			report.RoutesAttempted++

			flights, skipped, failure := r.fetchRoute(ctx, src, route, windows, normalizer, started, unknownMixes)
			report.RecordsSkipped += skipped

			if failure != nil {
				report.RoutesFailed++
				report.FailedRoutes = append(report.FailedRoutes, models.FailedRoute{
					Source:      src.Name(),
					Origin:      route.Origin,
					Destination: route.Destination,
					Reason:      failure.Error(),
				})
				r.log.WithFields(logrus.Fields{
					"source": src.Name(),
					"route":  route.String(),
				}).WithError(failure).Warn("route fetch failed, keeping stored history")
				continue
			}

			report.RoutesSucceeded++
			batch = append(batch, flights...)
		}
	}

	Annotate(batch, r.geo)

	merged := Merge(previous.Flights, batch, started)
	summaries := Reduce(merged, r.cfg.TieBreak)
	dataset := BuildDataset(merged, summaries, r.geo.All(), started)

	if err := r.store.Save(ctx, dataset); err != nil {
		return nil, nil, fmt.Errorf("save dataset: %w", err)
	}

	report.FinishedAt = r.now().UTC()
	report.FlightCount = dataset.FlightCount
	report.RouteCount = dataset.RouteCount
	for mix := range unknownMixes {
		report.UnknownMixes = append(report.UnknownMixes, mix)
	}
	sort.Strings(report.UnknownMixes)

	r.log.WithFields(logrus.Fields{
		"run_id":           report.RunID,
		"routes_attempted": report.RoutesAttempted,
		"routes_failed":    report.RoutesFailed,
		"records_skipped":  report.RecordsSkipped,
		"flights":          report.FlightCount,
		"routes":           report.RouteCount,
	}).Info("run finished")

	return dataset, report, nil
}

// fetchRoute pulls one route across all mixes and month windows. The
// first fetch error marks the whole route failed; flights gathered before
// the failure are discarded so the stored quotes stay authoritative.
func (r *Runner) fetchRoute(
	ctx context.Context,
	src sources.Source,
	route models.Route,
	windows []sources.DateRange,
	normalizer *Normalizer,
	scrapedAt time.Time,
	unknownMixes map[string]bool,
) ([]models.Flight, int, error) {
	var flights []models.Flight
	var skipped int

	for _, mix := range r.cfg.Mixes {
		for _, window := range windows {
			if r.limiter != nil {
				if err := r.limiter.Wait(ctx, src.Name()); err != nil {
					return nil, skipped, err
				}
			}

			records, err := r.fetchWithRetry(ctx, src, route, window, mix)
			if err != nil {
				return nil, skipped, err
			}

			for _, rec := range records {
				res := normalizer.Normalize(rec, src.Name(), scrapedAt)
				skipped += res.Skipped
				for _, m := range res.UnknownMixes {
					unknownMixes[m] = true
				}
				flights = append(flights, res.Flights...)
			}
		}
	}

	return flights, skipped, nil
}

func (r *Runner) fetchWithRetry(ctx context.Context, src sources.Source, route models.Route, window sources.DateRange, mix string) ([]sources.RawFareRecord, error) {
	var lastErr error

	for attempt := 0; attempt <= r.cfg.MaxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if attempt > 0 && len(r.cfg.RetryDelays) > 0 {
			delayIdx := attempt - 1
			if delayIdx >= len(r.cfg.RetryDelays) {
				delayIdx = len(r.cfg.RetryDelays) - 1
			}
			select {
			case <-time.After(r.cfg.RetryDelays[delayIdx]):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		records, err := src.Fetch(ctx, route, window, mix)
		if err == nil {
			return records, nil
		}

		lastErr = err
		r.log.WithFields(logrus.Fields{
			"source":  src.Name(),
			"route":   route.String(),
			"attempt": attempt + 1,
		}).WithError(err).Debug("fetch attempt failed")
	}

	return nil, lastErr
}

// monthWindows splits the forward-looking horizon into calendar months,
// clamping the first window to today.
func monthWindows(now time.Time, monthsAhead int) []sources.DateRange {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	windows := make([]sources.DateRange, 0, monthsAhead)

	for offset := 0; offset < monthsAhead; offset++ {
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, offset, 0)
		last := first.AddDate(0, 1, -1)

		if offset == 0 && today.After(first) {
			first = today
		}

		windows = append(windows, sources.DateRange{Start: first, End: last})
	}

	return windows
}
