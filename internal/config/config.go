package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	DBPath    string `envconfig:"ESSENCE_DB_PATH" default:"./data/essence.sqlite"`
	Port      int    `envconfig:"ESSENCE_PORT" default:"8080"`
	LogLevel  string `envconfig:"ESSENCE_LOG_LEVEL" default:"info"`
	LogDir    string `envconfig:"ESSENCE_LOG_DIR" default:"./logs"`
	TiersFile string `envconfig:"ESSENCE_TIERS_FILE" default:"./tiers.json"`

	SeedPoints int  `envconfig:"ESSENCE_SEED_POINTS" default:"0"`
	SeedDemo   bool `envconfig:"ESSENCE_SEED_DEMO" default:"true"`

	QRActivationMs    int `envconfig:"ESSENCE_QR_ACTIVATION_MS" default:"1500"`
	QRScanSettleMs    int `envconfig:"ESSENCE_QR_SCAN_SETTLE_MS" default:"2000"`
	QRTTLSec          int `envconfig:"ESSENCE_QR_TTL_SEC" default:"300"`
	MaxActiveCheckIns int `envconfig:"ESSENCE_MAX_ACTIVE_CHECKINS" default:"100"`

	RateLimitRPS  int      `envconfig:"ESSENCE_RATE_LIMIT_RPS" default:"10"`
	AdminAllowIPs []string `envconfig:"ESSENCE_ADMIN_ALLOW_IPS"`
}

// Load reads configuration from .env file (if present) then from environment variables.
// Environment variables override .env values.
func Load() (*Config, error) {
	// godotenv does NOT override already-set env vars.
	envFiles := []string{".env"}
	for _, f := range envFiles {
		if _, err := os.Stat(f); err == nil {
			if err := godotenv.Load(f); err != nil {
				slog.Warn("failed to load .env file", "file", f, "error", err)
			} else {
				slog.Info("loaded .env file", "file", f)
			}
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env config: %w", err)
	}

	for i, ip := range cfg.AdminAllowIPs {
		cfg.AdminAllowIPs[i] = strings.TrimSpace(ip)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks configuration values for correctness.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("%w: port must be 1-65535, got %d", ErrInvalidConfig, c.Port)
	}
	if c.SeedPoints < 0 {
		return fmt.Errorf("%w: ESSENCE_SEED_POINTS must be >= 0, got %d", ErrInvalidConfig, c.SeedPoints)
	}
	if c.QRActivationMs < 0 {
		return fmt.Errorf("%w: ESSENCE_QR_ACTIVATION_MS must be >= 0, got %d", ErrInvalidConfig, c.QRActivationMs)
	}
	if c.QRScanSettleMs < 0 {
		return fmt.Errorf("%w: ESSENCE_QR_SCAN_SETTLE_MS must be >= 0, got %d", ErrInvalidConfig, c.QRScanSettleMs)
	}
	if c.QRTTLSec < 1 || c.QRTTLSec > MaxQRTTLSeconds {
		return fmt.Errorf("%w: ESSENCE_QR_TTL_SEC must be 1-%d, got %d", ErrInvalidConfig, MaxQRTTLSeconds, c.QRTTLSec)
	}
	if c.MaxActiveCheckIns < 1 {
		return fmt.Errorf("%w: ESSENCE_MAX_ACTIVE_CHECKINS must be >= 1, got %d", ErrInvalidConfig, c.MaxActiveCheckIns)
	}
	if c.RateLimitRPS < 1 {
		return fmt.Errorf("%w: ESSENCE_RATE_LIMIT_RPS must be >= 1, got %d", ErrInvalidConfig, c.RateLimitRPS)
	}
	return nil
}

// QRActivation returns the delay before a freshly issued QR code becomes scannable.
func (c *Config) QRActivation() time.Duration {
	return time.Duration(c.QRActivationMs) * time.Millisecond
}

// QRScanSettle returns the delay between a simulated scan and the points award.
func (c *Config) QRScanSettle() time.Duration {
	return time.Duration(c.QRScanSettleMs) * time.Millisecond
}

// QRTTL returns how long an active QR code stays scannable.
func (c *Config) QRTTL() time.Duration {
	return time.Duration(c.QRTTLSec) * time.Second
}
