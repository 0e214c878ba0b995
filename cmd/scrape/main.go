package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sovdevs/weirdFlights/internal/config"
	"github.com/sovdevs/weirdFlights/internal/geo"
	"github.com/sovdevs/weirdFlights/internal/models"
	"github.com/sovdevs/weirdFlights/internal/pipeline"
	"github.com/sovdevs/weirdFlights/internal/ratelimit"
	"github.com/sovdevs/weirdFlights/internal/sources"
	"github.com/sovdevs/weirdFlights/internal/store"
	"github.com/sovdevs/weirdFlights/pkg/currency"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml (optional)")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	st, err := buildStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	table := geo.NewTable(geo.DefaultAirports())
	limiter := ratelimit.NewSourceLimiter(ratelimit.DefaultConfig())

	srcs, routesBySource, err := buildSources(cfg, limiter, log)
	if err != nil {
		log.Fatalf("Failed to initialize sources: %v", err)
	}
	if len(srcs) == 0 {
		log.Fatal("No sources enabled")
	}
	log.Infof("Initialized %d fare sources", len(srcs))

	runner := pipeline.NewRunner(srcs, st, table, limiter, pipeline.RunConfig{
		RoutesBySource: routesBySource,
		Mixes:          cfg.Scrape.Mixes,
		MonthsAhead:    cfg.Scrape.MonthsAhead,
		TieBreak:       pipeline.ParseTieBreak(cfg.Scrape.TieBreak),
		Timeout:        cfg.Scrape.Timeout,
		MaxRetries:     cfg.Scrape.MaxRetries,
		RetryDelays:    cfg.Scrape.RetryDelays(),
	}, log)

	dataset, report, err := runner.Run(context.Background())
	if err != nil {
		log.Fatalf("Run failed: %v", err)
	}

	printSummary(log, dataset, report)

	if report.RoutesFailed > 0 {
		os.Exit(1)
	}
}

func buildStore(cfg *config.Config) (store.Store, error) {
	if cfg.Store.Backend == "redis" {
		return store.NewRedisStore(store.RedisConfig{
			Host:     cfg.Store.RedisHost,
			Port:     cfg.Store.RedisPort,
			Password: cfg.Store.RedisPassword,
			DB:       cfg.Store.RedisDB,
			Key:      cfg.Store.RedisKey,
		})
	}
	return store.NewFileStore(cfg.Store.Path), nil
}

func buildSources(cfg *config.Config, limiter *ratelimit.SourceLimiter, log *logrus.Logger) ([]sources.Source, map[string][]models.Route, error) {
	client := &http.Client{Timeout: 30 * time.Second}

	var srcs []sources.Source
	routesBySource := make(map[string][]models.Route)

	for name, sc := range cfg.Sources {
		if !sc.Enabled {
			continue
		}

		routes, err := sc.ParseRoutes()
		if err != nil {
			return nil, nil, err
		}

		switch name {
		case "norse":
			nc := sources.DefaultNorseConfig()
			if sc.Currency != "" {
				nc.Currency = sc.Currency
			}
			srcs = append(srcs, sources.NewNorseSource(nc, client, tokenFromEnv(sc.TokenEnv, "NORSE_TOKEN")))
		case "scoot":
			scc := sources.DefaultScootConfig()
			if sc.Currency != "" {
				scc.Currency = sc.Currency
			}
			srcs = append(srcs, sources.NewScootSource(scc, client, tokenFromEnv(sc.TokenEnv, "SCOOT_TOKEN")))
		default:
			log.Warnf("Unknown source %q in config, skipping", name)
			continue
		}

		routesBySource[name] = routes
		if sc.Rps > 0 {
			limiter.SetSourceLimit(name, sc.Rps, sc.Burst)
		}
	}

	return srcs, routesBySource, nil
}

func tokenFromEnv(envName, fallback string) func() string {
	if envName == "" {
		envName = fallback
	}
	return func() string {
		return os.Getenv(envName)
	}
}

func printSummary(log *logrus.Logger, dataset *models.Dataset, report *models.RunReport) {
	log.Infof("Routes: %d attempted, %d succeeded, %d failed",
		report.RoutesAttempted, report.RoutesSucceeded, report.RoutesFailed)
	for _, fr := range report.FailedRoutes {
		log.Warnf("  failed: %s %s-%s (%s)", fr.Source, fr.Origin, fr.Destination, fr.Reason)
	}
	if report.RecordsSkipped > 0 {
		log.Infof("Skipped %d malformed fare records", report.RecordsSkipped)
	}
	for _, mix := range report.UnknownMixes {
		log.Warnf("Unrecognized passenger mix %q needs triage", mix)
	}

	if len(dataset.Flights) > 0 {
		cheapest := dataset.Flights[0]
		for _, f := range dataset.Flights {
			if f.Price.Amount < cheapest.Price.Amount {
				cheapest = f
			}
		}
		log.Infof("Dataset: %d flights across %d routes, cheapest %s %s-%s on %s",
			dataset.FlightCount, dataset.RouteCount,
			currency.Format(cheapest.Price.Amount, cheapest.Price.Currency),
			cheapest.Origin, cheapest.Destination, cheapest.Date)
	} else {
		log.Warn("Dataset is empty")
	}
}
