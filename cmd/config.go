package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"transportconnect/internal/adapters/out/jwttoken"
	"transportconnect/internal/adapters/out/postgres"
	"transportconnect/internal/core/application/usecases/commands"
	"transportconnect/internal/jobs"

	"github.com/joho/godotenv"
)

var ErrJWTSecretRequired = errors.New("JWT_SECRET is required")

type Config struct {
	HTTPPort   string
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	SQLitePath string

	JWTSecret string
	JWTIssuer string
	TokenTTL  time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	OutboxRelaySchedule string
	OutboxBatchSize     int

	LogLevel  string
	LogFormat string

	AdminEmail    string
	AdminPassword string
	AdminPhone    string
}

// LoadConfig reads the environment, after loading .env when one exists.
// Variables already set in the environment win over .env.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	tokenTTL, err := durationVariable("TOKEN_TTL", jwttoken.DefaultTTL)
	if err != nil {
		return Config{}, err
	}
	redisDB, err := intVariable("REDIS_DB", 0)
	if err != nil {
		return Config{}, err
	}
	batchSize, err := intVariable("OUTBOX_BATCH_SIZE", commands.DefaultRelayBatchSize)
	if err != nil {
		return Config{}, err
	}

	config := Config{
		HTTPPort:   variable("HTTP_PORT", "8080"),
		DBDriver:   strings.ToLower(variable("DB_DRIVER", postgres.DriverPostgres)),
		DBHost:     variable("DB_HOST", "localhost"),
		DBPort:     variable("DB_PORT", "5432"),
		DBUser:     variable("DB_USER", "postgres"),
		DBPassword: variable("DB_PASSWORD", ""),
		DBName:     variable("DB_NAME", "transportconnect"),
		DBSslMode:  variable("DB_SSLMODE", "disable"),
		SQLitePath: variable("SQLITE_PATH", "transportconnect.db"),

		JWTSecret: variable("JWT_SECRET", ""),
		JWTIssuer: variable("JWT_ISSUER", jwttoken.DefaultIssuer),
		TokenTTL:  tokenTTL,

		RedisAddr:     variable("REDIS_ADDR", ""),
		RedisPassword: variable("REDIS_PASSWORD", ""),
		RedisDB:       redisDB,

		OutboxRelaySchedule: variable("OUTBOX_RELAY_SCHEDULE", jobs.DefaultRelaySchedule),
		OutboxBatchSize:     batchSize,

		LogLevel:  variable("LOG_LEVEL", "info"),
		LogFormat: variable("LOG_FORMAT", "json"),

		AdminEmail:    variable("ADMIN_EMAIL", ""),
		AdminPassword: variable("ADMIN_PASSWORD", ""),
		AdminPhone:    variable("ADMIN_PHONE", ""),
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func (c Config) Validate() error {
	var errList []error
	if c.JWTSecret == "" {
		errList = append(errList, ErrJWTSecretRequired)
	}
	switch c.DBDriver {
	case postgres.DriverPostgres, postgres.DriverSQLite:
	default:
		errList = append(errList, fmt.Errorf("DB_DRIVER must be %q or %q, got %q", postgres.DriverPostgres, postgres.DriverSQLite, c.DBDriver))
	}
	if c.OutboxBatchSize <= 0 {
		errList = append(errList, fmt.Errorf("OUTBOX_BATCH_SIZE must be positive, got %d", c.OutboxBatchSize))
	}
	return errors.Join(errList...)
}

func (c Config) Database() postgres.DatabaseConfig {
	return postgres.DatabaseConfig{
		Driver:     c.DBDriver,
		Host:       c.DBHost,
		Port:       c.DBPort,
		User:       c.DBUser,
		Password:   c.DBPassword,
		Name:       c.DBName,
		SSLMode:    c.DBSslMode,
		SQLitePath: c.SQLitePath,
	}
}

func (c Config) Token() jwttoken.Config {
	return jwttoken.Config{Secret: c.JWTSecret, Issuer: c.JWTIssuer, TTL: c.TokenTTL}
}

func variable(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func durationVariable(key string, fallback time.Duration) (time.Duration, error) {
	raw := variable(key, "")
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func intVariable(key string, fallback int) (int, error) {
	raw := variable(key, "")
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
