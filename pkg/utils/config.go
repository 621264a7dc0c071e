package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

// Booking capacity policies.
const (
	CapacityPolicyLegacy       = "legacy"
	CapacityPolicyMaxOccupancy = "max_occupancy"
)

// Hotel listing filter modes.
const (
	HotelFilterLegacy = "legacy"
	HotelFilterStrict = "strict"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	RateLimit RateLimitConfig
	Booking   BookingConfig
	Hotel     HotelConfig
}

type AppConfig struct {
	Name            string
	Port            string
	Debug           bool
	LogPath         string
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Host         string
	Port         string
	Name         string
	User         string
	Password     string
	SSLMode      string
	MaxConns     int32
	TxMaxRetries int
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

type BookingConfig struct {
	CapacityPolicy string
}

type HotelConfig struct {
	FilterMode string
}

func LoadConfig() (*Config, error) {
	return LoadConfigFrom(".env")
}

// LoadConfigFrom reads an env-style file; a missing file falls back to
// defaults and the process environment.
func LoadConfigFrom(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")

	v.SetDefault("APP_NAME", "hotel-booking")
	v.SetDefault("PORT", "3000")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("SHUTDOWN_TIMEOUT", "15s")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_TX_MAX_RETRIES", 3)
	v.SetDefault("JWT_EXPIRY_HOURS", 24)
	v.SetDefault("RATE_LIMIT_REQUESTS", 100)
	v.SetDefault("RATE_LIMIT_WINDOW", "15m")
	v.SetDefault("BOOKING_CAPACITY_POLICY", CapacityPolicyLegacy)
	v.SetDefault("HOTEL_FILTER_MODE", HotelFilterLegacy)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	v.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:            v.GetString("APP_NAME"),
			Port:            v.GetString("PORT"),
			Debug:           v.GetBool("DEBUG"),
			LogPath:         v.GetString("LOG_PATH"),
			ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
		},
		Database: DatabaseConfig{
			Host:         v.GetString("DB_HOST"),
			Port:         v.GetString("DB_PORT"),
			Name:         v.GetString("DB_NAME"),
			User:         v.GetString("DB_USER"),
			Password:     v.GetString("DB_PASS"),
			SSLMode:      v.GetString("DB_SSLMODE"),
			MaxConns:     v.GetInt32("DB_MAX_CONNS"),
			TxMaxRetries: v.GetInt("DB_TX_MAX_RETRIES"),
		},
		JWT: JWTConfig{
			Secret:      v.GetString("JWT_SECRET"),
			ExpiryHours: v.GetInt("JWT_EXPIRY_HOURS"),
		},
		RateLimit: RateLimitConfig{
			Requests: v.GetInt("RATE_LIMIT_REQUESTS"),
			Window:   v.GetDuration("RATE_LIMIT_WINDOW"),
		},
		Booking: BookingConfig{
			CapacityPolicy: v.GetString("BOOKING_CAPACITY_POLICY"),
		},
		Hotel: HotelConfig{
			FilterMode: v.GetString("HOTEL_FILTER_MODE"),
		},
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) validate() error {
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET is not defined")
	}

	switch c.Booking.CapacityPolicy {
	case CapacityPolicyLegacy, CapacityPolicyMaxOccupancy:
	default:
		return fmt.Errorf("unknown BOOKING_CAPACITY_POLICY %q", c.Booking.CapacityPolicy)
	}

	switch c.Hotel.FilterMode {
	case HotelFilterLegacy, HotelFilterStrict:
	default:
		return fmt.Errorf("unknown HOTEL_FILTER_MODE %q", c.Hotel.FilterMode)
	}

	if c.RateLimit.Requests < 1 || c.RateLimit.Window <= 0 {
		return fmt.Errorf("rate limit must allow at least one request per positive window")
	}

	return nil
}
