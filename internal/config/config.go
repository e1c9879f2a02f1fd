package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"arbeitszeit/internal/core"
)

type Config struct {
	// HTTP server
	Port string

	// Persistence
	DataBackend  string
	SQLiteDBPath string
	SeedURL      string
	SeedFile     string

	// Tracker
	TrackedYear        int
	MonthlyTargetHours float64
	MonthlySalary      float64
}

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8081"),

		DataBackend:  getEnv("DATA_BACKEND", "sqlite"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/arbeitszeit.db"),
		SeedURL:      getEnv("SEED_URL", ""),
		SeedFile:     getEnv("SEED_FILE", ""),

		TrackedYear:        getEnvInt("TRACKED_YEAR", core.DefaultYear),
		MonthlyTargetHours: getEnvFloat("MONTHLY_TARGET_HOURS", 32),
		MonthlySalary:      getEnvFloat("MONTHLY_SALARY", 444.30),
	}
}

// Targets builds the aggregation constants from the configured values.
func (c *Config) Targets() core.Targets {
	return core.Targets{
		MonthlyTargetHours: c.MonthlyTargetHours,
		MonthlySalary:      c.MonthlySalary,
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	validBackends := []string{"memory", "sqlite"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	if c.DataBackend == "sqlite" {
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else {
			dir := filepath.Dir(c.SQLiteDBPath)
			if dir != "." && dir != "" {
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					if err := os.MkdirAll(dir, 0755); err != nil {
						errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
					}
				}
			}
		}
	}

	if c.SeedURL != "" {
		if parsedURL, err := url.Parse(c.SeedURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid seed URL '%s': %v", c.SeedURL, err))
		} else if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
			errors = append(errors, fmt.Sprintf("invalid seed URL scheme '%s': must be 'http' or 'https'", parsedURL.Scheme))
		}
	}

	if c.TrackedYear < 1 || c.TrackedYear > 9999 {
		errors = append(errors, fmt.Sprintf("invalid tracked year %d", c.TrackedYear))
	}

	if c.MonthlyTargetHours <= 0 {
		errors = append(errors, fmt.Sprintf("invalid monthly target hours %v: must be positive", c.MonthlyTargetHours))
	}
	if c.MonthlySalary < 0 {
		errors = append(errors, fmt.Sprintf("invalid monthly salary %v: must not be negative", c.MonthlySalary))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errors, "; "))
	}

	return nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if value, exists := os.LookupEnv(key); exists {
		if v, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return v
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if v, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
			return v
		}
	}
	return defaultVal
}
