package main

import (
	"strings"
	"testing"

	"github.com/goliatone/go-print"
	"github.com/stretchr/testify/assert"
)

func TestConfigSanitized(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()
	cfg.SigningKey = "super-secret-key"

	safe := cfg.Sanitized()

	assert.Equal(t, "[REDACTED]", safe.SigningKey)
	assert.Equal(t, cfg.HTTPAddr, safe.HTTPAddr)
	assert.Equal(t, cfg.Issuer, safe.Issuer)

	dump := print.MaybePrettyJSON(safe)
	assert.NotContains(t, dump, "super-secret-key")

	assert.Equal(t, "super-secret-key", cfg.SigningKey)
}

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Equal(t, ":8572", cfg.HTTPAddr)
	assert.Equal(t, 10, cfg.TokenExpiration)
	assert.Equal(t, "Bearer", cfg.AuthScheme)
	assert.True(t, strings.HasPrefix(cfg.DatabaseDSN, "file:"))
}
