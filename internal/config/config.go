// Package config reads the service settings from the environment and an optional .env file.
package config

import (
	"os"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/joho/godotenv"
	"github.com/spf13/cast"

	"projectorcare/internal/handlers"
	"projectorcare/services/report"
)

const (
	defaultBaseURL      = "http://localhost:8090"
	defaultAssetTimeout = 10 * time.Second
)

// Config holds every environment-driven setting.
type Config struct {
	BaseURL      string
	LogLevel     string
	LogoLeft     string
	LogoRight    string
	AssetTimeout time.Duration
	Letterhead   report.Letterhead
}

// Load reads .env when present, then the process environment.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil {
		handlers.LogInfo(".env not found. Using default environment")
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from any key lookup, applying defaults for missing keys.
func FromLookup(lookup func(string) (string, bool)) (*Config, error) {
	get := func(key, def string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return def
	}

	timeout, err := cast.ToDurationE(get("REPORT_ASSET_TIMEOUT", defaultAssetTimeout.String()))
	if err != nil {
		return nil, validation.Errors{"REPORT_ASSET_TIMEOUT": validation.NewError("invalid_duration", "must be a duration such as 10s")}
	}

	cfg := &Config{
		BaseURL:      strings.TrimRight(get("APP_BASE_URL", defaultBaseURL), "/"),
		LogLevel:     get("LOG_LEVEL", "info"),
		LogoLeft:     get("REPORT_LOGO_LEFT", ""),
		LogoRight:    get("REPORT_LOGO_RIGHT", ""),
		AssetTimeout: timeout,
		Letterhead: report.Letterhead{
			Name:    get("REPORT_COMPANY_NAME", report.DefaultLetterhead.Name),
			Address: get("REPORT_COMPANY_ADDRESS", report.DefaultLetterhead.Address),
			Phone:   get("REPORT_COMPANY_PHONE", report.DefaultLetterhead.Phone),
			Email:   get("REPORT_COMPANY_EMAIL", report.DefaultLetterhead.Email),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values that would otherwise fail late, at request time.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.BaseURL, validation.Required, is.URL),
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "warning", "error")),
		validation.Field(&c.AssetTimeout, validation.Required, validation.Min(100*time.Millisecond)),
	); err != nil {
		return err
	}
	return validation.ValidateStruct(&c.Letterhead,
		validation.Field(&c.Letterhead.Name, validation.Required),
		validation.Field(&c.Letterhead.Email, is.EmailFormat),
	)
}

// Logos returns the header logos. Each falls back to a text label.
func (c *Config) Logos() (left, right report.Logo) {
	return report.Logo{Source: c.LogoLeft, FallbackLabel: c.Letterhead.Name},
		report.Logo{Source: c.LogoRight, FallbackLabel: report.DefaultRightLogoLabel}
}

// ReportOptions are the generator options this configuration implies.
func (c *Config) ReportOptions() []report.Option {
	return []report.Option{
		report.WithLoader(report.NewSourceLoader(c.AssetTimeout)),
		report.WithLetterhead(c.Letterhead),
		report.WithLogos(c.Logos()),
	}
}
