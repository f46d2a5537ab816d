package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/shopspring/decimal"

	"github.com/juristack/lawoffice-backend/internal/domain/appointment"
	"github.com/juristack/lawoffice-backend/internal/domain/document"
	"github.com/juristack/lawoffice-backend/internal/domain/ledger"
)

type Config struct {
	Version     string `koanf:"version"`
	Environment string `koanf:"environment"`
	LogLevel    string `koanf:"log_level"`

	Server     ServerConfig     `koanf:"server"`
	Database   DatabaseConfig   `koanf:"database"`
	Security   SecurityConfig   `koanf:"security"`
	Validation ValidationConfig `koanf:"validation"`
}

type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// Address returns the host:port the HTTP server binds to.
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	URL             string        `koanf:"url"`
	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
}

type SecurityConfig struct {
	JWTSecret   string          `koanf:"jwt_secret"`
	TokenExpiry time.Duration   `koanf:"token_expiry"`
	RateLimit   RateLimitConfig `koanf:"rate_limit"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `koanf:"requests_per_second"`
	BurstSize         int     `koanf:"burst_size"`
}

// ValidationConfig carries the domain policy limits. The defaults reproduce
// the office's historical rules; none of them is hard-coded in the domain.
type ValidationConfig struct {
	MaxAmount             string        `koanf:"max_amount"`
	LedgerPastTolerance   time.Duration `koanf:"ledger_past_tolerance"`
	LedgerFutureTolerance time.Duration `koanf:"ledger_future_tolerance"`

	AppointmentHorizon time.Duration `koanf:"appointment_horizon"`
	MaxDuration        time.Duration `koanf:"max_duration"`
	MaxReminderLead    time.Duration `koanf:"max_reminder_lead"`

	MaxFileSizeBytes int64    `koanf:"max_file_size_bytes"`
	AllowedFileTypes []string `koanf:"allowed_file_types"`
}

// LedgerPolicy converts the config section into the ledger domain policy.
func (v ValidationConfig) LedgerPolicy() (ledger.Policy, error) {
	max, err := decimal.NewFromString(v.MaxAmount)
	if err != nil {
		return ledger.Policy{}, fmt.Errorf("invalid max_amount %q: %w", v.MaxAmount, err)
	}
	return ledger.Policy{
		MaxAmount:       max,
		PastTolerance:   v.LedgerPastTolerance,
		FutureTolerance: v.LedgerFutureTolerance,
	}, nil
}

// AppointmentPolicy converts the config section into the scheduling policy.
func (v ValidationConfig) AppointmentPolicy() appointment.Policy {
	return appointment.Policy{
		FutureHorizon:   v.AppointmentHorizon,
		MaxDuration:     v.MaxDuration,
		MaxReminderLead: v.MaxReminderLead,
	}
}

// FilePolicy converts the config section into the upload policy.
func (v ValidationConfig) FilePolicy() document.FilePolicy {
	return document.FilePolicy{
		MaxSizeBytes: v.MaxFileSizeBytes,
		AllowedTypes: v.AllowedFileTypes,
	}
}

// Load reads configuration from defaults, an optional YAML file, and LOB_*
// environment variables, in that precedence order.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	defaults := &Config{
		Version:     "dev",
		Environment: "development",
		LogLevel:    "info",
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Database: DatabaseConfig{
			URL:             "postgres://localhost:5432/lawoffice?sslmode=disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 5 * time.Minute,
		},
		Security: SecurityConfig{
			TokenExpiry: 24 * time.Hour,
			RateLimit: RateLimitConfig{
				RequestsPerSecond: 50,
				BurstSize:         100,
			},
		},
		Validation: ValidationConfig{
			MaxAmount:             "999999999.99",
			LedgerPastTolerance:   5 * 365 * 24 * time.Hour,
			LedgerFutureTolerance: 10 * 365 * 24 * time.Hour,
			AppointmentHorizon:    2 * 365 * 24 * time.Hour,
			MaxDuration:           24 * time.Hour,
			MaxReminderLead:       7 * 24 * time.Hour,
			MaxFileSizeBytes:      10 << 20,
			AllowedFileTypes: []string{
				"application/pdf",
				"application/msword",
				"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
				"text/plain",
				"image/jpeg",
				"image/png",
			},
		},
	}

	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if path == "" {
		path = "configs/config.yaml"
	}
	// Config file is optional.
	_ = k.Load(file.Provider(path), yaml.Parser())

	if err := k.Load(env.Provider("LOB_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(
			strings.TrimPrefix(s, "LOB_")), "_", ".", -1)
	}), nil); err != nil {
		return nil, fmt.Errorf("loading environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}
