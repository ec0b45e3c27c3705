package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer `yaml:"http_server"`
	Printify   `yaml:"printify"`
	News       `yaml:"news"`
	Redis      `yaml:"redis"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env-default:"localhost:8080"`
	Timeout     time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

type Printify struct {
	BaseURL       string        `yaml:"base_url" env:"PRINTIFY_BASE_URL" env-default:"https://api.printify.com"`
	APIToken      string        `yaml:"api_token" env:"PRINTIFY_API_TOKEN"`
	ShopID        string        `yaml:"shop_id" env:"PRINTIFY_SHOP_ID" env-default:"22732326"`
	WebhookSecret string        `yaml:"webhook_secret" env:"PRINTIFY_WEBHOOK_SECRET"`
	FetchTimeout  time.Duration `yaml:"fetch_timeout" env-default:"10s"`
	// RPS bounds outgoing Printify calls; the vendor limits 600 req/min.
	RPS int `yaml:"rps" env-default:"10"`
	// MockOnEmptyCatalog controls whether a shop with zero published
	// products falls back to the sample catalog.
	MockOnEmptyCatalog bool `yaml:"mock_on_empty_catalog" env-default:"true"`
}

type News struct {
	BaseURL      string        `yaml:"base_url" env:"NEWS_BASE_URL" env-default:"https://newsapi.org"`
	APIKey       string        `yaml:"api_key" env:"NEWS_API_KEY"`
	FetchTimeout time.Duration `yaml:"fetch_timeout" env-default:"8s"`
	CacheTTL     time.Duration `yaml:"cache_ttl" env-default:"5m"`
}

type Redis struct {
	// Addr empty means the news cache stays in process memory.
	Addr       string        `yaml:"addr" env:"REDIS_ADDR"`
	Db         int           `yaml:"db" env-default:"1"`
	DefaultTTL time.Duration `yaml:"default_ttl" env-default:"5m"`
}

func MustLoad(configPath string) *Config {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", configPath)
	}

	return &cfg
}
