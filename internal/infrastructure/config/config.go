package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	Mongo    MongoConfig
	Redis    RedisConfig
	Fare     FareConfig
	Facility FacilityConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=parking_system"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// FareConfig holds the per-category hourly rates. The defaults are the
// facility's list prices; the core never hardcodes them.
type FareConfig struct {
	CarRatePerHour  float64 `env:"FARE_CAR_RATE_PER_HOUR,  default=1.5"`
	BikeRatePerHour float64 `env:"FARE_BIKE_RATE_PER_HOUR, default=1.0"`
}

// FacilityConfig sizes the facility. Spots are seeded at startup: car spots
// first (ids 1..CarSpots), then bike spots.
type FacilityConfig struct {
	CarSpots  int `env:"FACILITY_CAR_SPOTS,  default=3"`
	BikeSpots int `env:"FACILITY_BIKE_SPOTS, default=2"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
