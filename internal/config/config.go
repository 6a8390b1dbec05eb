package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DatabasePostgres = "postgres"
	DatabaseSQLite   = "sqlite"
)

// Config 启动配置，只在 main 中构建一次并注入到各组件
type Config struct {
	Port           int
	DatabaseType   string
	DatabaseURL    string
	JWTSecretKey   string
	TokenIssuer    string
	TokenTTL       time.Duration
	SessionSecret  string
	RequestTimeout time.Duration
	MaxPageSize    int
	CORSOrigins    []string
	GinMode        string
}

// Load builds the config from flags, falling back to environment variables.
func Load(args []string) (Config, error) {
	var cfg Config
	var corsOrigins string

	fs := flag.NewFlagSet("newsroom", flag.ContinueOnError)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (postgres or sqlite)")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&corsOrigins, "cors", "", "Comma separated list of allowed origins")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 8080
		}
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = getenv("DATABASE_TYPE", DatabasePostgres)
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	cfg.JWTSecretKey = os.Getenv("JWT_SECRET_KEY")
	cfg.SessionSecret = os.Getenv("SESSION_SECRET")
	cfg.TokenIssuer = getenv("TOKEN_ISSUER", "newsroom")
	cfg.GinMode = os.Getenv("GIN_MODE")

	var err error
	if cfg.TokenTTL, err = durationEnv("TOKEN_TTL", 30*24*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.RequestTimeout, err = durationEnv("REQUEST_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}

	cfg.MaxPageSize = 100
	if v := os.Getenv("MAX_PAGE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, errors.New("invalid MAX_PAGE_SIZE env variable")
		}
		cfg.MaxPageSize = n
	}

	if corsOrigins == "" {
		corsOrigins = os.Getenv("CORS_ORIGINS")
	}
	cfg.CORSOrigins = splitList(corsOrigins)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate 检查必填项，缺失时启动直接失败
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.DatabaseType != DatabasePostgres && c.DatabaseType != DatabaseSQLite {
		return fmt.Errorf("unsupported database type %q", c.DatabaseType)
	}
	if c.DatabaseURL == "" {
		return errors.New("database URL required (use -d or DATABASE_URL env)")
	}
	if c.JWTSecretKey == "" {
		return errors.New("JWT_SECRET_KEY required")
	}
	if c.SessionSecret == "" {
		return errors.New("SESSION_SECRET required")
	}
	if c.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL must be positive")
	}
	if c.RequestTimeout <= 0 {
		return errors.New("REQUEST_TIMEOUT must be positive")
	}
	if c.MaxPageSize < 1 {
		return errors.New("MAX_PAGE_SIZE must be at least 1")
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s env variable: %w", key, err)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
