package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/sovdevs/weirdFlights/internal/models"
)

type Config struct {
	Server  ServerConfig            `mapstructure:"server"`
	Store   StoreConfig             `mapstructure:"store"`
	Scrape  ScrapeConfig            `mapstructure:"scrape"`
	Sources map[string]SourceConfig `mapstructure:"sources"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type StoreConfig struct {
	Backend       string `mapstructure:"backend"` // file or redis
	Path          string `mapstructure:"path"`
	RedisHost     string `mapstructure:"redis_host"`
	RedisPort     string `mapstructure:"redis_port"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`
	RedisKey      string `mapstructure:"redis_key"`
}

type ScrapeConfig struct {
	MonthsAhead   int           `mapstructure:"months_ahead"`
	Mixes         []string      `mapstructure:"passenger_mixes"`
	TieBreak      string        `mapstructure:"tie_break"`
	Timeout       time.Duration `mapstructure:"timeout"`
	MaxRetries    int           `mapstructure:"max_retries"`
	RetryDelaysMs []int         `mapstructure:"retry_delays_ms"`
}

type SourceConfig struct {
	Enabled  bool     `mapstructure:"enabled"`
	Routes   []string `mapstructure:"routes"` // "LGW-JFK"
	Rps      float64  `mapstructure:"rps"`
	Burst    int      `mapstructure:"burst"`
	TokenEnv string   `mapstructure:"token_env"`
	Currency string   `mapstructure:"currency"`
}

// Load reads config.yaml (path optional) with env overrides. A missing
// file falls back to defaults so the binaries run out of the box.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	setDefaults(v)

	v.SetEnvPrefix("WF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("store.backend", "file")
	v.SetDefault("store.path", "flights.json")
	v.SetDefault("store.redis_host", "localhost")
	v.SetDefault("store.redis_port", "6379")
	v.SetDefault("scrape.months_ahead", 6)
	v.SetDefault("scrape.passenger_mixes", []string{"1 adult"})
	v.SetDefault("scrape.tie_break", "earliest_date")
	v.SetDefault("scrape.timeout", "10m")
	v.SetDefault("scrape.max_retries", 3)
	v.SetDefault("scrape.retry_delays_ms", []int{100, 200, 400})
}

func (s ScrapeConfig) RetryDelays() []time.Duration {
	delays := make([]time.Duration, 0, len(s.RetryDelaysMs))
	for _, ms := range s.RetryDelaysMs {
		delays = append(delays, time.Duration(ms)*time.Millisecond)
	}
	return delays
}

// ParseRoutes expands "LGW-JFK" pairs into routes.
func (s SourceConfig) ParseRoutes() ([]models.Route, error) {
	routes := make([]models.Route, 0, len(s.Routes))
	for _, r := range s.Routes {
		parts := strings.Split(strings.TrimSpace(r), "-")
		if len(parts) != 2 || len(parts[0]) != 3 || len(parts[1]) != 3 {
			return nil, fmt.Errorf("bad route %q, want ORG-DST", r)
		}
		routes = append(routes, models.Route{
			Origin:      strings.ToUpper(parts[0]),
			Destination: strings.ToUpper(parts[1]),
		})
	}
	return routes, nil
}
