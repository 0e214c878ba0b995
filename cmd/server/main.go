package main

import (
	"flag"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"github.com/sovdevs/weirdFlights/internal/config"
	"github.com/sovdevs/weirdFlights/internal/geo"
	"github.com/sovdevs/weirdFlights/internal/handler"
	"github.com/sovdevs/weirdFlights/internal/store"
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

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())

	table := geo.NewTable(geo.DefaultAirports())
	handler.NewDatasetHandler(st, table, log).Register(e)

	log.Infof("Starting dataset server on port %s", cfg.Server.Port)
	if err := e.Start(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
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
