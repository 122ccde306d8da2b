// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/text/currency"
)

type Config struct {
	APIBaseURL     string
	MinAmount      float64
	KeyID          string
	KeySecret      string
	Currency       string
	Brand          string
	Description    string
	ThemeColor     string
	ReloadDelay    time.Duration
	RequestTimeout time.Duration
	MaxInFlight    int
	LogLevel       string
}

// Default returns the settings used when nothing is set.
func Default() Config {
	return Config{
		MinAmount:   100,
		Currency:    "INR",
		Brand:       "Alumni Network",
		Description: "Donation",
		ThemeColor:  "#667eea",
		ReloadDelay: 2 * time.Second,
		MaxInFlight: 4,
		LogLevel:    "info",
	}
}

// Load reads .env when present, then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv, applying defaults for unset keys.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Default()
	get := func(k string) string { return strings.TrimSpace(getenv(k)) }

	cfg.APIBaseURL = strings.TrimRight(get("DONATION_API_BASE_URL"), "/")
	cfg.KeyID = get("RAZORPAY_KEY_ID")
	cfg.KeySecret = get("RAZORPAY_KEY_SECRET")

	if v := get("DONATION_CURRENCY"); v != "" {
		cfg.Currency = strings.ToUpper(v)
	}
	if v := get("DONATION_BRAND"); v != "" {
		cfg.Brand = v
	}
	if v := get("DONATION_DESCRIPTION"); v != "" {
		cfg.Description = v
	}
	if v := get("DONATION_THEME_COLOR"); v != "" {
		cfg.ThemeColor = v
	}
	if v := get("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	if v := get("DONATION_MIN_AMOUNT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 {
			return Config{}, fmt.Errorf("DONATION_MIN_AMOUNT: invalid value %q", v)
		}
		cfg.MinAmount = f
	}
	if v := get("DONATION_RELOAD_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("DONATION_RELOAD_DELAY: %w", err)
		}
		cfg.ReloadDelay = d
	}
	if v := get("DONATION_REQUEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("DONATION_REQUEST_TIMEOUT: %w", err)
		}
		cfg.RequestTimeout = d
	}
	if v := get("DONATION_MAX_IN_FLIGHT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("DONATION_MAX_IN_FLIGHT: invalid value %q", v)
		}
		cfg.MaxInFlight = n
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that cannot be defaulted.
func (c Config) Validate() error {
	if _, err := currency.ParseISO(c.Currency); err != nil {
		return fmt.Errorf("DONATION_CURRENCY: unknown currency %q", c.Currency)
	}
	if c.ReloadDelay < 0 || c.RequestTimeout < 0 {
		return errors.New("durations must not be negative")
	}
	return nil
}

// Unit returns the parsed currency. Validate must have passed.
func (c Config) Unit() currency.Unit {
	u, err := currency.ParseISO(c.Currency)
	if err != nil {
		return currency.INR
	}
	return u
}
