package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App      AppConfig
	DB       DBConfig
	JWT      JWTConfig
	Password PasswordConfig
	Flags    FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"EASEMART_APP_ENV" default:"dev"`
	Port         string `envconfig:"EASEMART_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"EASEMART_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"EASEMART_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	// The default DSN exists for local development only; deployments must
	// override it through the environment.
	DSN    string `envconfig:"EASEMART_DB_DSN" default:"postgres://localhost:5432/ease_mart?sslmode=disable"`
	Driver string `envconfig:"EASEMART_DB_DRIVER" default:"postgres"`

	MaxOpenConns    int           `envconfig:"EASEMART_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"EASEMART_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"EASEMART_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"EASEMART_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type JWTConfig struct {
	// "secretTest" is a local-development placeholder carried over from the
	// first deployment; production sets EASEMART_JWT_SECRET.
	Secret string `envconfig:"EASEMART_JWT_SECRET" default:"secretTest"`
	Issuer string `envconfig:"EASEMART_JWT_ISSUER" default:"easemart"`
	// Access tokens live for five days.
	ExpirationMinutes int `envconfig:"EASEMART_JWT_EXPIRATION_MINUTES" default:"7200"`
}

// AccessTokenTTL returns the configured access token lifetime.
func (j JWTConfig) AccessTokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"EASEMART_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"EASEMART_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"EASEMART_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"EASEMART_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"EASEMART_ARGON_KEY_LEN" default:"32"`

	// MinLogonKeyLength applies to the plaintext before hashing.
	MinLogonKeyLength int `envconfig:"EASEMART_MIN_LOGON_KEY_LENGTH" default:"6"`

	// RehashOnEveryUpdate preserves the legacy persistence behavior: every
	// user save recomputes the hash from whatever is currently in the secret
	// field, even when the update did not touch it. Turning it off restricts
	// rehashing to explicit logon-key changes.
	RehashOnEveryUpdate bool `envconfig:"EASEMART_REHASH_ON_EVERY_UPDATE" default:"true"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"EASEMART_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"EASEMART_AUTO_MIGRATE" default:"false"`
}
