package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	App        AppConfig
	Attendance AttendanceConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	StoreDriver string // "postgres" or "memory"
}

// AttendanceConfig holds the engine's classification thresholds and the work
// calendar. Thresholds are wall-clock "HH:MM" values; WeekendDays names the
// non-working days of week as defined by the external work calendar.
type AttendanceConfig struct {
	LateThreshold    string
	StandardEnd      string
	StandardDayHours int
	WeekendDays      []time.Weekday
}

func Load() (*Config, error) {
	// .env is optional; environment variables win either way.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "attendance-engine"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		StoreDriver: getEnv("STORE_DRIVER", "postgres"),
	}

	// Attendance engine configuration
	standardDayHours, err := strconv.Atoi(getEnv("STANDARD_DAY_HOURS", "8"))
	if err != nil {
		return nil, fmt.Errorf("invalid STANDARD_DAY_HOURS: %w", err)
	}

	weekendDays, err := parseWeekendDays(getEnv("WEEKEND_DAYS", "Saturday,Sunday"))
	if err != nil {
		return nil, fmt.Errorf("invalid WEEKEND_DAYS: %w", err)
	}

	config.Attendance = AttendanceConfig{
		LateThreshold:    getEnv("LATE_THRESHOLD", "09:00"),
		StandardEnd:      getEnv("STANDARD_END", "17:00"),
		StandardDayHours: standardDayHours,
		WeekendDays:      weekendDays,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.App.StoreDriver != "postgres" && c.App.StoreDriver != "memory" {
		return fmt.Errorf("unsupported STORE_DRIVER: %s", c.App.StoreDriver)
	}
	if c.App.StoreDriver == "postgres" && c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.Attendance.StandardDayHours < 1 || c.Attendance.StandardDayHours > 24 {
		return fmt.Errorf("STANDARD_DAY_HOURS must be between 1 and 24")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func parseWeekendDays(value string) ([]time.Weekday, error) {
	var days []time.Weekday
	for _, name := range strings.Split(value, ",") {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		day, ok := weekdayNames[name]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", name)
		}
		days = append(days, day)
	}
	return days, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
