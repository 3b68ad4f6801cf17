package config

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const (
	StoreMongo  = "mongo"
	StoreSQLite = "sqlite"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// StoreDriver selects the credential/catalog store: mongo or sqlite.
	StoreDriver string `env:"STORE_DRIVER, default=mongo"`

	JWT       JWTConfig
	Mongo     MongoConfig
	SQLite    SQLiteConfig
	Redis     RedisConfig
	HTTP      HTTPConfig
	Analytics AnalyticsConfig
}

type JWTConfig struct {
	Secret     string        `env:"JWT_SECRET, required"`
	Issuer     string        `env:"JWT_ISSUER,      default=dashboard-api"`
	AccessTTL  time.Duration `env:"JWT_ACCESS_TTL,  default=15m"`
	RefreshTTL time.Duration `env:"JWT_REFRESH_TTL, default=168h"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017/?replicaSet=rs0"`
	Database string `env:"MONGO_DB,  default=storefront"`
}

type SQLiteConfig struct {
	Path string `env:"SQLITE_PATH, default=storefront.db"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

type HTTPConfig struct {
	// AuthRateLimit is the sustained requests/second allowed per client IP
	// on the credential endpoints.
	AuthRateLimit float64  `env:"AUTH_RATE_LIMIT, default=5"`
	AuthRateBurst int      `env:"AUTH_RATE_BURST, default=10"`
	CORSOrigins   []string `env:"CORS_ORIGINS,    default=*"`
}

type AnalyticsConfig struct {
	TopProductsTTL time.Duration `env:"TOP_PRODUCTS_TTL, default=5m"`
	OrderWorkers   int           `env:"ORDER_WORKERS,    default=4"`
}

// Load reads an optional .env file, then configuration from environment
// variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET must not be empty")
	}
	if cfg.StoreDriver != StoreMongo && cfg.StoreDriver != StoreSQLite {
		return nil, fmt.Errorf("config: unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
	return &cfg, nil
}

// IsDevelopment reports whether the service runs in the development env.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
