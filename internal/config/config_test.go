package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"projectorcare/services/report"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestFromLookupDefaults(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(nil))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8090", cfg.BaseURL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 10*time.Second, cfg.AssetTimeout)
	assert.Equal(t, report.DefaultLetterhead, cfg.Letterhead)
	assert.Empty(t, cfg.LogoLeft)
}

func TestFromLookupOverrides(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(map[string]string{
		"APP_BASE_URL":         "https://reports.example.com/",
		"LOG_LEVEL":            "debug",
		"REPORT_LOGO_LEFT":     "/srv/logos/left.png",
		"REPORT_ASSET_TIMEOUT": "3s",
		"REPORT_COMPANY_NAME":  "Acme Projection",
		"REPORT_COMPANY_EMAIL": "ops@acme.example",
	}))
	require.NoError(t, err)

	assert.Equal(t, "https://reports.example.com", cfg.BaseURL)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/srv/logos/left.png", cfg.LogoLeft)
	assert.Equal(t, 3*time.Second, cfg.AssetTimeout)
	assert.Equal(t, "Acme Projection", cfg.Letterhead.Name)
	assert.Equal(t, "ops@acme.example", cfg.Letterhead.Email)
	assert.Equal(t, report.DefaultLetterhead.Phone, cfg.Letterhead.Phone)
	assert.Len(t, cfg.ReportOptions(), 3)
}

func TestFromLookupRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		field string
	}{
		{"bad url", map[string]string{"APP_BASE_URL": "not a url"}, "BaseURL"},
		{"bad level", map[string]string{"LOG_LEVEL": "verbose"}, "LogLevel"},
		{"bad duration", map[string]string{"REPORT_ASSET_TIMEOUT": "soon"}, "REPORT_ASSET_TIMEOUT"},
		{"tiny timeout", map[string]string{"REPORT_ASSET_TIMEOUT": "1ms"}, "AssetTimeout"},
		{"bad email", map[string]string{"REPORT_COMPANY_EMAIL": "nobody"}, "Email"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromLookup(lookupFrom(tt.env))
			var errs validation.Errors
			require.ErrorAs(t, err, &errs)
			assert.Contains(t, errs, tt.field)
		})
	}
}

func TestLoadReadsDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("REPORT_COMPANY_PHONE=+61 2 5550 0000\n"), 0o600))
	t.Setenv("REPORT_COMPANY_PHONE", "")
	require.NoError(t, os.Unsetenv("REPORT_COMPANY_PHONE"))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "+61 2 5550 0000", cfg.Letterhead.Phone)
}

func TestLogosAlwaysCarryFallbackLabels(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(map[string]string{"REPORT_COMPANY_NAME": "Acme Projection"}))
	require.NoError(t, err)

	left, right := cfg.Logos()
	assert.Equal(t, report.Logo{FallbackLabel: "Acme Projection"}, left)
	assert.Equal(t, report.Logo{FallbackLabel: report.DefaultRightLogoLabel}, right)

	cfg.LogoRight = "https://cdn.example.com/right.png"
	_, right = cfg.Logos()
	assert.Equal(t, "https://cdn.example.com/right.png", right.Source)
	assert.NotEmpty(t, right.FallbackLabel)
}
