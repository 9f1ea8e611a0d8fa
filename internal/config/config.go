package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Addr             string        `env:"ADDR"               envDefault:":3000"`
	DBPath           string        `env:"DB_PATH"            envDefault:"db.sqlite"`
	NewsAPIKey       string        `env:"NEWS_API_KEY"`
	OpenAIAPIKey     string        `env:"OPENAI_API_KEY"`
	Categories       []string      `env:"CATEGORIES"         envDefault:"technology,business,science,health,entertainment,sports"`
	SessionTTL       time.Duration `env:"SESSION_TTL"        envDefault:"720h"`
	HeadlineCacheTTL time.Duration `env:"HEADLINE_CACHE_TTL" envDefault:"15m"`
}

func LoadConfig() Config {
	var cfg Config
	env.Must(cfg, env.Parse(&cfg))
	return cfg
}
