package config

import (
	"strconv"
	"time"
)

// DBConfig contains PostgreSQL database configuration.
type DBConfig struct {
	Host     string `env:"HOST"                    envDefault:"localhost"`
	Port     int    `env:"PORT"                    envDefault:"5432"`
	User     string `env:"USER"                    envDefault:"notebooker"`
	Password string `env:"PASSWORD"                envDefault:"notebooker"`
	Name     string `env:"NAME"                    envDefault:"notebooker"`
	SSLMode  string `env:"SSL_MODE"                envDefault:"disable"` // Use 'disable' for local dev, 'require' for production
	// RunMigrationsOnStart controls whether the application automatically applies migrations during startup.
	RunMigrationsOnStart bool `env:"RUN_MIGRATIONS_ON_START" envDefault:"true"`
}

// CommandLineArgs encodes the database connection for the execution CLI so
// the subprocess writes its results to the same store the server reads.
func (d DBConfig) CommandLineArgs() []string {
	return []string{
		"--serializer-cls", "postgres",
		"--pg-host", d.Host,
		"--pg-port", strconv.Itoa(d.Port),
		"--pg-user", d.User,
		"--pg-password", d.Password,
		"--pg-dbname", d.Name,
	}
}

// RedisConfig contains Redis configuration.
type RedisConfig struct {
	URI      string `env:"URI"      envDefault:"localhost:6379"`
	Password string `env:"PASSWORD" envDefault:""`
	DB       int    `env:"DB"       envDefault:"0"`
}

// CacheConfig contains render cache configuration (Redis-based).
type CacheConfig struct {
	// RenderTTL is the TTL for cached rendered report HTML.
	// Zero means entries never expire.
	RenderTTL time.Duration `env:"CACHE_RENDER_TTL" envDefault:"1h"`
}

// StoreConfig selects the result store engine.
type StoreConfig struct {
	Kind string `env:"RESULT_STORE" envDefault:"postgres"`
}
