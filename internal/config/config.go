package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	Audit    AuditConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	ProbePort             string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	MigrationsDir  string
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	JWTSecret             string
	AccessTokenTTLMinutes int
	BcryptCost            int
	ExemptPrefix          string
	AdminPrefix           string
	PolicyFile            string
}

// AuditConfig controls where admin API audit records go besides the log.
type AuditConfig struct {
	RedisEnabled bool
	Stream       string
	StreamMaxLen int64
}

// routePolicyFile is the YAML layout accepted by AUTH_POLICY_FILE.
type routePolicyFile struct {
	ExemptPrefix string `yaml:"exempt_prefix"`
	AdminPrefix  string `yaml:"admin_prefix"`
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "todo-service"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			ProbePort:             getEnv("APP_PROBE_PORT", "8081"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			MigrationsDir:  getEnv("POSTGRES_MIGRATIONS_DIR", "migrations"),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:             os.Getenv("AUTH_JWT_SECRET"),
			AccessTokenTTLMinutes: getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 60),
			BcryptCost:            getEnvAsInt("AUTH_BCRYPT_COST", 12),
			ExemptPrefix:          getEnv("AUTH_EXEMPT_PREFIX", "/auth"),
			AdminPrefix:           getEnv("AUTH_ADMIN_PREFIX", "/admin"),
			PolicyFile:            os.Getenv("AUTH_POLICY_FILE"),
		},
		Audit: AuditConfig{
			RedisEnabled: getEnvAsBool("AUDIT_REDIS_ENABLED", true),
			Stream:       getEnv("AUDIT_REDIS_STREAM", "audit:admin-api"),
			StreamMaxLen: int64(getEnvAsInt("AUDIT_REDIS_STREAM_MAXLEN", 10000)),
		},
	}

	if cfg.Auth.PolicyFile != "" {
		if err := cfg.Auth.applyPolicyFile(cfg.Auth.PolicyFile); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the auth gate cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("AUTH_JWT_SECRET is required"))
	}
	if !strings.HasPrefix(c.Auth.ExemptPrefix, "/") {
		errs = append(errs, fmt.Errorf("exempt prefix %q must start with /", c.Auth.ExemptPrefix))
	}
	if !strings.HasPrefix(c.Auth.AdminPrefix, "/") {
		errs = append(errs, fmt.Errorf("admin prefix %q must start with /", c.Auth.AdminPrefix))
	}
	if c.Auth.AccessTokenTTLMinutes <= 0 {
		errs = append(errs, fmt.Errorf("access token ttl must be positive, got %d", c.Auth.AccessTokenTTLMinutes))
	}
	return errors.Join(errs...)
}

func (a *AuthConfig) applyPolicyFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read policy file: %w", err)
	}
	var file routePolicyFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("parse policy file %s: %w", path, err)
	}
	if file.ExemptPrefix != "" {
		a.ExemptPrefix = file.ExemptPrefix
	}
	if file.AdminPrefix != "" {
		a.AdminPrefix = file.AdminPrefix
	}
	return nil
}

// AccessTokenTTL returns the credential lifetime.
func (a AuthConfig) AccessTokenTTL() time.Duration {
	return time.Duration(a.AccessTokenTTLMinutes) * time.Minute
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// ProbeAddr returns the bind address for health probes.
func (a AppConfig) ProbeAddr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.ProbePort)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
