package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env"
)

type config struct {
	Production    bool          `env:"PRODUCTION" envDefault:"false"`
	Port          string        `env:"PORT" envDefault:"80"`
	PostgresUrl   string        `env:"POSTGRES_URL,required"`
	RedisUrl      string        `env:"REDIS_URL" envDefault:"redis:6379"`
	ItemsCacheTTL time.Duration `env:"ITEMS_CACHE_TTL" envDefault:"60s"`
}

var conf config

func init() {
	if err := env.Parse(&conf); err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
}

func Production() bool {
	return conf.Production
}

func Port() string {
	return conf.Port
}

func PostgresURL() string {
	return conf.PostgresUrl
}

func RedisURL() string {
	return conf.RedisUrl
}

func ItemsCacheTTL() time.Duration {
	return conf.ItemsCacheTTL
}
