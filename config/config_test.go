package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, name := range []string{"SITE_ENV", "SITE_PORT", "SITE_BASE_URL", "SITE_ALLOW_FROM"} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}

	cfg := Load()
	assert.Equal(t, "production", cfg.Mode)
	assert.Equal(t, 5099, cfg.Port)
	assert.Equal(t, "https://www.invoiceflow.co.uk", cfg.BaseURL)
	assert.Equal(t, "TEXT", cfg.LogMode)
	assert.Equal(t, 10, cfg.Timeout)
	assert.True(t, filepath.IsAbs(cfg.Root))
	assert.True(t, filepath.IsAbs(cfg.ExportDir))
}

func TestLoadFrom(t *testing.T) {
	dir := t.TempDir()
	envfile := filepath.Join(dir, ".env")
	content := "SITE_ENV=development\n" +
		"SITE_PORT=8088\n" +
		"SITE_BASE_URL=https://staging.invoiceflow.co.uk/\n" +
		"SITE_ALLOW_FROM=https://a.example.com|https://b.example.com\n" +
		"SITE_ROOT=" + dir + "\n"
	require.NoError(t, os.WriteFile(envfile, []byte(content), 0644))

	// godotenv.Overload writes into the process environment
	for _, name := range []string{"SITE_ENV", "SITE_PORT", "SITE_BASE_URL", "SITE_ALLOW_FROM", "SITE_ROOT"} {
		t.Setenv(name, os.Getenv(name))
	}

	cfg := LoadFrom(envfile)
	assert.Equal(t, "development", cfg.Mode)
	assert.Equal(t, 8088, cfg.Port)
	assert.Equal(t, "https://staging.invoiceflow.co.uk", cfg.BaseURL)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.AllowFrom)
	assert.Equal(t, filepath.Join(dir, "dist"), cfg.ExportDir)
}

func TestOpenLogWithoutLogDir(t *testing.T) {
	CloseLog()
	Conf = Config{Root: t.TempDir()}
	OpenLog()
	assert.Nil(t, LogOutput)
	assert.Equal(t, filepath.Join(Conf.Root, "logs", "site.log"), Conf.Log)
}

func TestOpenLogRotates(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "logs"), 0755))
	Conf = Config{Root: root, LogMaxSize: 1, LogMaxBackups: 1, LogMaxAge: 1}
	OpenLog()
	defer CloseLog()
	assert.NotNil(t, LogOutput)
}

func TestCheck(t *testing.T) {
	cfg := Config{Mode: "production", Port: 5099, BaseURL: "https://www.invoiceflow.co.uk"}
	assert.NoError(t, cfg.Check())

	tests := []struct {
		name   string
		change func(cfg *Config)
	}{
		{"relative base url", func(cfg *Config) { cfg.BaseURL = "www.invoiceflow.co.uk" }},
		{"base url with path", func(cfg *Config) { cfg.BaseURL = "https://www.invoiceflow.co.uk/site" }},
		{"port", func(cfg *Config) { cfg.Port = 70000 }},
		{"cert without key", func(cfg *Config) { cfg.Cert = "site.crt" }},
		{"mode", func(cfg *Config) { cfg.Mode = "debug" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bad := cfg
			tt.change(&bad)
			assert.Error(t, bad.Check())
		})
	}
}
