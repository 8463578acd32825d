package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Workday  WorkdayConfig
	Policy   PolicyConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT verification configuration. Tokens are issued by the
// external identity service; this backend only verifies them.
type JWTConfig struct {
	Secret string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// WorkdayConfig anchors the time metrics to a reference working day. Clock
// values are "HH:MM". Injected into the metrics calculator so tests can vary
// them without globals.
type WorkdayConfig struct {
	StandardCheckIn  string // default 08:00
	StandardCheckOut string // default 17:00
	ShiftBoundary    string // default 12:00, splits morning from afternoon
	WindowStart      string // default 06:00, earliest correctable punch
	WindowEnd        string // default 22:00, latest correctable punch
	WorkdayMinutes   int    // default 540, full-credit reference interval
}

// PolicyConfig holds the request-rule knobs consumed by the type-specific
// handlers.
type PolicyConfig struct {
	LeaveAdvanceNoticeDays int             // working days of notice before leave starts
	MaxLeaveBalance        decimal.Decimal // ceiling applied to the directory balance
	WFHHorizonDays         int             // how far ahead WFH may be requested
	CorrectionWindowDays   int             // how far back a timesheet may be corrected
	FinalizeAfterDays      int             // age at which the finalizer locks entries
	FinalizeInterval       time.Duration   // how often the finalizer job runs
}

func Load() (*Config, error) {
	// A missing .env file is fine in production; env vars win either way.
	_ = godotenv.Load()

	config := &Config{}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "hr_workflow"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	config.JWT = JWTConfig{
		Secret: getEnv("JWT_SECRET_KEY", ""),
	}

	workdayMinutes, err := strconv.Atoi(getEnv("WORKDAY_MINUTES", "540"))
	if err != nil {
		return nil, fmt.Errorf("invalid WORKDAY_MINUTES: %w", err)
	}

	config.Workday = WorkdayConfig{
		StandardCheckIn:  getEnv("WORKDAY_STANDARD_CHECK_IN", "08:00"),
		StandardCheckOut: getEnv("WORKDAY_STANDARD_CHECK_OUT", "17:00"),
		ShiftBoundary:    getEnv("WORKDAY_SHIFT_BOUNDARY", "12:00"),
		WindowStart:      getEnv("WORKDAY_WINDOW_START", "06:00"),
		WindowEnd:        getEnv("WORKDAY_WINDOW_END", "22:00"),
		WorkdayMinutes:   workdayMinutes,
	}

	policy, err := loadPolicy()
	if err != nil {
		return nil, err
	}
	config.Policy = policy

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func loadPolicy() (PolicyConfig, error) {
	noticeDays, err := strconv.Atoi(getEnv("LEAVE_ADVANCE_NOTICE_DAYS", "3"))
	if err != nil {
		return PolicyConfig{}, fmt.Errorf("invalid LEAVE_ADVANCE_NOTICE_DAYS: %w", err)
	}
	maxBalance, err := decimal.NewFromString(getEnv("MAX_LEAVE_BALANCE", "12"))
	if err != nil {
		return PolicyConfig{}, fmt.Errorf("invalid MAX_LEAVE_BALANCE: %w", err)
	}
	wfhHorizon, err := strconv.Atoi(getEnv("WFH_HORIZON_DAYS", "30"))
	if err != nil {
		return PolicyConfig{}, fmt.Errorf("invalid WFH_HORIZON_DAYS: %w", err)
	}
	correctionWindow, err := strconv.Atoi(getEnv("TIMESHEET_CORRECTION_WINDOW_DAYS", "7"))
	if err != nil {
		return PolicyConfig{}, fmt.Errorf("invalid TIMESHEET_CORRECTION_WINDOW_DAYS: %w", err)
	}
	finalizeAfter, err := strconv.Atoi(getEnv("TIMESHEET_FINALIZE_AFTER_DAYS", "30"))
	if err != nil {
		return PolicyConfig{}, fmt.Errorf("invalid TIMESHEET_FINALIZE_AFTER_DAYS: %w", err)
	}
	finalizeInterval, err := time.ParseDuration(getEnv("TIMESHEET_FINALIZE_INTERVAL", "24h"))
	if err != nil {
		return PolicyConfig{}, fmt.Errorf("invalid TIMESHEET_FINALIZE_INTERVAL: %w", err)
	}

	return PolicyConfig{
		LeaveAdvanceNoticeDays: noticeDays,
		MaxLeaveBalance:        maxBalance,
		WFHHorizonDays:         wfhHorizon,
		CorrectionWindowDays:   correctionWindow,
		FinalizeAfterDays:      finalizeAfter,
		FinalizeInterval:       finalizeInterval,
	}, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	for _, clock := range []struct{ name, value string }{
		{"WORKDAY_STANDARD_CHECK_IN", c.Workday.StandardCheckIn},
		{"WORKDAY_STANDARD_CHECK_OUT", c.Workday.StandardCheckOut},
		{"WORKDAY_SHIFT_BOUNDARY", c.Workday.ShiftBoundary},
		{"WORKDAY_WINDOW_START", c.Workday.WindowStart},
		{"WORKDAY_WINDOW_END", c.Workday.WindowEnd},
	} {
		if _, err := time.Parse("15:04", clock.value); err != nil {
			return fmt.Errorf("%s must be HH:MM: %w", clock.name, err)
		}
	}
	if c.Workday.WorkdayMinutes <= 0 {
		return fmt.Errorf("WORKDAY_MINUTES must be positive")
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

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
