package config

import (
	"fmt"
	"os"
	"time"

	"github.com/arnavshah/sandwich-orders-api/pkg/dates"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort  string `mapstructure:"APP_PORT"`
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	DatabaseURL string `mapstructure:"DATABASE_URL"`
	DataPath    string `mapstructure:"DATA_PATH"`

	JWTSecret       string `mapstructure:"JWT_SECRET"`
	APIMasterSecret string `mapstructure:"API_MASTER_SECRET"`
	AdminUsername   string `mapstructure:"ADMIN_USERNAME"`
	AdminPassword   string `mapstructure:"ADMIN_PASSWORD"`

	// Redis caches the current order form schema. Empty address disables it.
	RedisAddr     string        `mapstructure:"REDIS_ADDR"`
	RedisPassword string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int           `mapstructure:"REDIS_DB"`
	MenuCacheTTL  time.Duration `mapstructure:"MENU_CACHE_TTL"`

	// OrderStore is "sql" or "firestore"
	OrderStore          string `mapstructure:"ORDER_STORE"`
	FirebaseProjectID   string `mapstructure:"FIREBASE_PROJECT_ID"`
	FirebaseCredentials string `mapstructure:"FIREBASE_CREDENTIALS"`

	CutoffTime    string `mapstructure:"CUTOFF_TIME"`
	Timezone      string `mapstructure:"TIMEZONE"`
	ScheduleStart string `mapstructure:"SCHEDULE_START"`
	ScheduleDays  string `mapstructure:"SCHEDULE_DAYS"`
	DateWindow    int    `mapstructure:"DATE_WINDOW"`
	DateFormat    string `mapstructure:"DATE_FORMAT"`

	RequestsPerMinute int `mapstructure:"REQUESTS_PER_MINUTE"`
}

var defaults = map[string]any{
	"APP_PORT":             "8000",
	"ENV":                  "development",
	"LOG_LEVEL":            "info",
	"DATABASE_URL":         "",
	"DATA_PATH":            "orders.db",
	"JWT_SECRET":           "",
	"API_MASTER_SECRET":    "",
	"ADMIN_USERNAME":       "admin",
	"ADMIN_PASSWORD":       "admin123",
	"REDIS_ADDR":           "",
	"REDIS_PASSWORD":       "",
	"REDIS_DB":             0,
	"MENU_CACHE_TTL":       "10m",
	"ORDER_STORE":          "sql",
	"FIREBASE_PROJECT_ID":  "",
	"FIREBASE_CREDENTIALS": "",
	"CUTOFF_TIME":          "09:00",
	"TIMEZONE":             "Local",
	"SCHEDULE_START":       "2024-09-02",
	"SCHEDULE_DAYS":        "1111100",
	"DATE_WINDOW":          dates.DefaultWindow,
	"DATE_FORMAT":          dates.DefaultDisplayLayout,
	"REQUESTS_PER_MINUTE":  120,
}

// LoadDotEnv loads the first .env found in the working directory or its parents
func LoadDotEnv() {
	for _, p := range []string{".env", "../.env", "../../.env"} {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			return
		}
	}
}

// Load reads config.yaml (from . or ./config) and the environment, env winning
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()

	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.OrderStore != "sql" && c.OrderStore != "firestore" {
		return fmt.Errorf("ORDER_STORE must be sql or firestore, got %q", c.OrderStore)
	}
	if c.OrderStore == "firestore" && c.FirebaseProjectID == "" {
		return fmt.Errorf("FIREBASE_PROJECT_ID is required when ORDER_STORE=firestore")
	}
	// build once so a bad schedule or cutoff fails at startup
	if _, err := c.Calculator(); err != nil {
		return err
	}
	return nil
}

// IsProduction checks if the environment is production
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Location resolves TIMEZONE
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Calculator builds the order-date calculator from the schedule settings
func (c *Config) Calculator() (*dates.Calculator, error) {
	loc, err := c.Location()
	if err != nil {
		return nil, err
	}

	start, err := time.ParseInLocation(dates.ISOLayout, c.ScheduleStart, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid SCHEDULE_START %q: %w", c.ScheduleStart, err)
	}

	days, err := dates.ParseScheduleDays(c.ScheduleDays)
	if err != nil {
		return nil, fmt.Errorf("invalid SCHEDULE_DAYS: %w", err)
	}
	schedule, err := dates.NewSchedule(start, days)
	if err != nil {
		return nil, err
	}

	cutoff, err := dates.ParseCutoff(c.CutoffTime)
	if err != nil {
		return nil, err
	}

	calc := dates.NewCalculator(schedule, cutoff, loc)
	if c.DateWindow > 0 {
		calc.Window = c.DateWindow
	}
	if c.DateFormat != "" {
		calc.Format = dates.DisplayFormatter(c.DateFormat)
	}
	return calc, nil
}
