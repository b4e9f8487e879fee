// Package config loads server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/netip"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// MinSecretLen минимальная длина JWT_SECRET в байтах
const MinSecretLen = 32

// Config holds all server settings
type Config struct {
	HTTPAddr       string
	DatabaseDriver string
	DatabaseURL    string
	JWTSecret      string
	JWTIssuer      string
	FrontendURL    string
	SMTPHost       string
	SMTPUser       string
	SMTPPass       string
	SMTPFrom       string
	RedisAddr      string
	RedisPassword  string
	AdminEmail     string
	AdminPassword  string
	AdminName      string
	LogLevel       string
	LogFormat      string
	CORSOrigins    []string
	TrustedProxies []string
	JWTExpiresIn   time.Duration
	ResetTokenTTL  time.Duration
	AuthRateWindow time.Duration
	BcryptCost     int
	SMTPPort       int
	RedisDB        int
	AuthRateLimit  int
}

// Load reads an optional .env file and then the process environment
func Load() Config {
	// .env может отсутствовать в production
	_ = godotenv.Load()

	return Config{
		HTTPAddr:       getenv("HTTP_ADDR", ":5000"),
		DatabaseDriver: getenv("DATABASE_DRIVER", "sqlite"),
		DatabaseURL:    getenv("DATABASE_URL", "capsort.db"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		JWTIssuer:      getenv("JWT_ISSUER", "capsort"),
		JWTExpiresIn:   getenvDuration("JWT_EXPIRES_IN", 7*24*time.Hour),
		ResetTokenTTL:  getenvDuration("RESET_TOKEN_TTL", time.Hour),
		BcryptCost:     getenvInt("BCRYPT_COST", 12),
		FrontendURL:    strings.TrimRight(getenv("FRONTEND_URL", "http://localhost:3000"), "/"),
		SMTPHost:       os.Getenv("SMTP_HOST"),
		SMTPPort:       getenvInt("SMTP_PORT", 587),
		SMTPUser:       os.Getenv("SMTP_USER"),
		SMTPPass:       os.Getenv("SMTP_PASS"),
		SMTPFrom:       getenv("SMTP_FROM", "no-reply@capsort.local"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        getenvInt("REDIS_DB", 0),
		CORSOrigins:    getenvList("CORS_ORIGINS", []string{"http://localhost:3000"}),
		TrustedProxies: getenvList("TRUSTED_PROXIES", nil),
		AuthRateLimit:  getenvInt("AUTH_RATE_LIMIT", 20),
		AuthRateWindow: getenvDuration("AUTH_RATE_WINDOW", 15*time.Minute),
		AdminEmail:     os.Getenv("ADMIN_EMAIL"),
		AdminPassword:  os.Getenv("ADMIN_PASSWORD"),
		AdminName:      getenv("ADMIN_NAME", "Capsort Administrator"),
		LogLevel:       getenv("LOG_LEVEL", "info"),
		LogFormat:      getenv("LOG_FORMAT", "text"),
	}
}

// Validate checks settings that must be correct before the server starts
func (c Config) Validate() error {
	var errs []error

	switch {
	case c.JWTSecret == "":
		errs = append(errs, errors.New("JWT_SECRET is required"))
	case len(c.JWTSecret) < MinSecretLen:
		errs = append(errs, fmt.Errorf("JWT_SECRET must be at least %d bytes", MinSecretLen))
	}

	if c.JWTExpiresIn <= 0 {
		errs = append(errs, errors.New("JWT_EXPIRES_IN must be positive"))
	}
	if c.ResetTokenTTL <= 0 {
		errs = append(errs, errors.New("RESET_TOKEN_TTL must be positive"))
	}
	if c.AuthRateLimit <= 0 || c.AuthRateWindow <= 0 {
		errs = append(errs, errors.New("AUTH_RATE_LIMIT and AUTH_RATE_WINDOW must be positive"))
	}
	if (c.AdminEmail == "") != (c.AdminPassword == "") {
		errs = append(errs, errors.New("ADMIN_EMAIL and ADMIN_PASSWORD must be set together"))
	}
	if _, err := c.TrustedProxyPrefixes(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// TrustedProxyPrefixes parses TRUSTED_PROXIES.
// Each entry is a CIDR or a single address; an empty list trusts no proxy.
func (c Config) TrustedProxyPrefixes() ([]netip.Prefix, error) {
	prefixes := make([]netip.Prefix, 0, len(c.TrustedProxies))
	for _, entry := range c.TrustedProxies {
		if prefix, err := netip.ParsePrefix(entry); err == nil {
			prefixes = append(prefixes, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(entry)
		if err != nil {
			return nil, fmt.Errorf("TRUSTED_PROXIES: invalid entry %q", entry)
		}
		prefixes = append(prefixes, netip.PrefixFrom(addr.Unmap(), addr.Unmap().BitLen()))
	}
	return prefixes, nil
}

// SMTPEnabled reports whether a mail relay is configured
func (c Config) SMTPEnabled() bool {
	return c.SMTPHost != ""
}

// SlogLevel converts LOG_LEVEL to slog.Level, defaulting to info
func (c Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getenvList(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}

	var out []string
	for _, item := range strings.Split(val, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := ParseDuration(val); err == nil {
			return parsed
		}
	}
	if val := os.Getenv(key + "_SECONDS"); val != "" {
		if seconds, err := strconv.Atoi(val); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}

// ParseDuration extends time.ParseDuration with a day suffix ("7d")
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if days, ok := strings.CutSuffix(s, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil {
			return 0, fmt.Errorf("invalid day duration %q: %w", s, err)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	return time.ParseDuration(s)
}
