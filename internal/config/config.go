package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

type Config struct {
	Port              string
	AccountServiceURL string
	RequestTimeout    time.Duration
	DisplayTimezone   string
	DisplayLocale     string
	LogLevel          string
}

func ProcessEnvironmentVariables() (*Config, error) {
	// In all cases the default behavior should be for the docker compose setup
	env := Config{
		Port:              "8080",
		AccountServiceURL: "http://127.0.0.1:8000",
		RequestTimeout:    10 * time.Second,
		DisplayTimezone:   "Local",
		DisplayLocale:     "en-US",
		LogLevel:          "info",
	}

	envPort := os.Getenv("CONSOLE_PORT")
	envAccountServiceURL := os.Getenv("ACCOUNT_SERVICE_URL")
	envRequestTimeout := os.Getenv("ACCOUNT_SERVICE_TIMEOUT")
	envDisplayTimezone := os.Getenv("DISPLAY_TIMEZONE")
	envDisplayLocale := os.Getenv("DISPLAY_LOCALE")
	envLogLevel := os.Getenv("LOG_LEVEL")

	if len(envPort) != 0 {
		env.Port = envPort
	}

	if len(envAccountServiceURL) != 0 {
		env.AccountServiceURL = envAccountServiceURL
	}

	if len(envRequestTimeout) != 0 {
		timeout, err := time.ParseDuration(envRequestTimeout)
		if err != nil {
			return nil, fmt.Errorf("ACCOUNT_SERVICE_TIMEOUT: %w", err)
		}
		env.RequestTimeout = timeout
	}

	if len(envDisplayTimezone) != 0 {
		env.DisplayTimezone = envDisplayTimezone
	}

	if len(envDisplayLocale) != 0 {
		env.DisplayLocale = envDisplayLocale
	}

	if len(envLogLevel) != 0 {
		env.LogLevel = strings.ToLower(envLogLevel)
	}

	if _, err := env.Location(); err != nil {
		return nil, err
	}

	return &env, nil
}

// Location resolves DisplayTimezone, treating "Local" and "" as the host zone.
func (c *Config) Location() (*time.Location, error) {
	if c.DisplayTimezone == "" || c.DisplayTimezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.DisplayTimezone)
	if err != nil {
		return nil, fmt.Errorf("DISPLAY_TIMEZONE: %w", err)
	}
	return loc, nil
}
