package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PUREBITE_ADDR", "")
	t.Setenv("PUREBITE_BACKEND_URL", "")
	t.Setenv("PUREBITE_ALLOWED_ORIGINS", "")

	cfg := loadConfig()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "http://localhost:8001", cfg.BackendURL)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PUREBITE_ADDR", ":9000")
	t.Setenv("PUREBITE_BACKEND_URL", "http://api.internal:8001")
	t.Setenv("PUREBITE_ALLOWED_ORIGINS", "https://purebite.in, https://www.purebite.in")

	cfg := loadConfig()

	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, "http://api.internal:8001", cfg.BackendURL)
	assert.Equal(t, []string{"https://purebite.in", "https://www.purebite.in"}, cfg.AllowedOrigins)
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Equal(t, []string{"a"}, splitList("a"))
	assert.Equal(t, []string{"a", "b"}, splitList(" a ,, b "))
}
