package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Stats        StatsConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"INVENTARIO_APP_ENV" required:"true"`
	Port         string `envconfig:"INVENTARIO_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"INVENTARIO_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"INVENTARIO_LOG_WARN_STACK" default:"false"`

	CORSOrigins []string `envconfig:"INVENTARIO_CORS_ORIGINS" default:"http://localhost:3000"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"INVENTARIO_DB_DSN"`

	LegacyHost     string `envconfig:"POSTGRES_HOST"`
	LegacyPort     int    `envconfig:"POSTGRES_PORT" default:"5432"`
	LegacyUser     string `envconfig:"POSTGRES_USER"`
	LegacyPassword string `envconfig:"POSTGRES_PASSWORD"`
	LegacyName     string `envconfig:"POSTGRES_DB"`
	LegacySSLMode  string `envconfig:"POSTGRES_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"INVENTARIO_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"INVENTARIO_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"INVENTARIO_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"INVENTARIO_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"INVENTARIO_REDIS_URL"`
	Address      string        `envconfig:"INVENTARIO_REDIS_ADDR"`
	Password     string        `envconfig:"INVENTARIO_REDIS_PASSWORD"`
	DB           int           `envconfig:"INVENTARIO_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"INVENTARIO_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"INVENTARIO_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"INVENTARIO_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"INVENTARIO_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"INVENTARIO_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a Redis endpoint was configured at all. The
// statistics cache is skipped entirely when it is not.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type StatsConfig struct {
	CacheTTL time.Duration `envconfig:"INVENTARIO_STATS_CACHE_TTL" default:"30s"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"INVENTARIO_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
