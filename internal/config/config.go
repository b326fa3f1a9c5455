package config

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port           string        `envconfig:"PORT" default:"8585"`
	BackendURL     string        `envconfig:"BACKEND_URL" default:"http://localhost:5000"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"7s"`
	TemplateDir    string        `envconfig:"TEMPLATE_DIR" default:"templates"`
	StaticDir      string        `envconfig:"STATIC_DIR" default:"static"`
	LogLevel       string        `envconfig:"LOG_LEVEL" default:"debug"`
	ImageMaxWidth  uint          `envconfig:"IMAGE_MAX_WIDTH" default:"800"`
	CookieDomain   string        `envconfig:"COOKIE_DOMAIN"`
	CookieSecure   bool          `envconfig:"COOKIE_SECURE" default:"false"`

	CSRFKeyB64    string `envconfig:"CSRF_KEY"`
	SessionKeyB64 string `envconfig:"SESSION_KEY"`

	CSRFKey    []byte `ignored:"true"`
	SessionKey []byte `ignored:"true"`
}

// LoadConfig reads an optional .env file and then the process environment.
func LoadConfig(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		slog.Debug(".env file not loaded, using environment only", "error", err)
	}

	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if _, err := strconv.Atoi(cfg.Port); err != nil {
		slog.Error("Invalid PORT environment variable. Falling back to default.", "PORT", cfg.Port)
		cfg.Port = "8585"
	}

	u, err := url.Parse(cfg.BackendURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid BACKEND_URL %q", cfg.BackendURL)
	}
	cfg.BackendURL = strings.TrimRight(cfg.BackendURL, "/")

	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 7 * time.Second
	}

	cfg.CSRFKey = decodeKey("CSRF_KEY", cfg.CSRFKeyB64)
	cfg.SessionKey = decodeKey("SESSION_KEY", cfg.SessionKeyB64)
	return cfg, nil
}

// SlogLevel maps LOG_LEVEL onto a slog level, debug when unrecognised.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelDebug
	}
	return level
}

func decodeKey(name, encoded string) []byte {
	if encoded == "" {
		slog.Warn(name + " environment variable not set. Generating a random key for development. PLEASE SET " + name + " IN PRODUCTION!")
		return GenerateRandomBytes(32)
	}
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil || len(decoded) < 32 {
		slog.Warn(name + " is invalid or too short (min 32 bytes). Generating a random key for development.")
		return GenerateRandomBytes(32)
	}
	return decoded
}

// GenerateRandomBytes returns n bytes from crypto/rand.
func GenerateRandomBytes(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand only fails when the OS entropy source is gone
		panic(fmt.Sprintf("crypto/rand unavailable: %v", err))
	}
	return b
}
