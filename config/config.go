package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type DatabaseConfig struct {
	Driver       string // sqlite|postgres
	Path         string
	DSN          string
	MaxOpenConns int
}

type LogConfig struct {
	Level  string
	Format string // console|json
}

type ReferenceConfig struct {
	AllowedDomains []string
	MaxBytes       int64
}

type AppConfig struct {
	Port               string
	DB                 DatabaseConfig
	Log                LogConfig
	CORSAllowedOrigins []string
	CatalogCacheTTL    time.Duration
	Reference          ReferenceConfig
	SeedFixture        string
	// APIBaseURL is where the landing page sends its health check.
	APIBaseURL         string
}

// Load reads .env when present, then the process environment.
func Load() (AppConfig, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "3001")
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DB_PATH", "swc.db")
	v.SetDefault("DB_DSN", "")
	v.SetDefault("DB_MAX_OPEN_CONNS", 0)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("CATALOG_CACHE_TTL", "5m")
	v.SetDefault("REFERENCE_ALLOWED_DOMAINS", "")
	v.SetDefault("REFERENCE_MAX_BYTES", 1500000)
	v.SetDefault("SEED_FIXTURE", "")
	v.SetDefault("API_BASE_URL", "")

	cfg := AppConfig{
		Port: v.GetString("PORT"),
		DB: DatabaseConfig{
			Driver:       strings.ToLower(v.GetString("DB_DRIVER")),
			Path:         v.GetString("DB_PATH"),
			DSN:          v.GetString("DB_DSN"),
			MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		CatalogCacheTTL:    v.GetDuration("CATALOG_CACHE_TTL"),
		Reference: ReferenceConfig{
			AllowedDomains: splitList(strings.ToLower(v.GetString("REFERENCE_ALLOWED_DOMAINS"))),
			MaxBytes:       v.GetInt64("REFERENCE_MAX_BYTES"),
		},
		SeedFixture: v.GetString("SEED_FIXTURE"),
		APIBaseURL:  v.GetString("API_BASE_URL"),
	}

	switch cfg.DB.Driver {
	case "sqlite":
	case "postgres":
		if cfg.DB.DSN == "" {
			return cfg, fmt.Errorf("config: DB_DSN is required for the postgres driver")
		}
	default:
		return cfg, fmt.Errorf("config: unknown DB_DRIVER %q", cfg.DB.Driver)
	}
	if cfg.CatalogCacheTTL <= 0 {
		cfg.CatalogCacheTTL = 5 * time.Minute
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
