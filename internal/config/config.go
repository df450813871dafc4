package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/bossofclean/cleaner-scheduler/internal/timezone"
)

type Config struct {
	ServerPort     string   `mapstructure:"SERVER_PORT"`
	Env            string   `mapstructure:"ENV"`
	DBUrl          string   `mapstructure:"DATABASE_URL"`
	DBMaxOpenConns int      `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBMaxIdleConns int      `mapstructure:"DB_MAX_IDLE_CONNS"`
	JWTSecret      string   `mapstructure:"JWT_SECRET"`
	Timezone       string   `mapstructure:"APP_TIMEZONE"`
	RedisURL       string   `mapstructure:"REDIS_URL"`
	CORSOrigins    []string `mapstructure:"-"`
	RateLimitRPS   float64  `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst int      `mapstructure:"RATE_LIMIT_BURST"`
	PurgeCron      string   `mapstructure:"PURGE_BLOCKED_DATES_CRON"`
}

var keys = []string{
	"SERVER_PORT",
	"ENV",
	"DATABASE_URL",
	"DB_MAX_OPEN_CONNS",
	"DB_MAX_IDLE_CONNS",
	"JWT_SECRET",
	"APP_TIMEZONE",
	"REDIS_URL",
	"CORS_ORIGINS",
	"RATE_LIMIT_RPS",
	"RATE_LIMIT_BURST",
	"PURGE_BLOCKED_DATES_CRON",
}

func Load() (*Config, error) {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("APP_TIMEZONE", "America/New_York")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT_RPS", 5)
	v.SetDefault("RATE_LIMIT_BURST", 20)
	v.SetDefault("PURGE_BLOCKED_DATES_CRON", "0 3 * * *")

	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.CORSOrigins = splitList(v.GetString("CORS_ORIGINS"))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.DBUrl == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if !timezone.IsValid(c.Timezone) {
		return fmt.Errorf("APP_TIMEZONE %q is not a valid location", c.Timezone)
	}
	if c.IsProduction() && c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required in production")
	}
	return nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.ServerPort)
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
