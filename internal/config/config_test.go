package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "nocfg"))

	v := viper.New()
	v.SetConfigFile(filepath.Join(dir, "missing.toml"))
	require.NoError(t, Load(context.Background(), v))

	assert.Equal(t, ":8080", v.GetString("http_addr"))
	assert.Equal(t, filepath.Join(dir, "rogsite"), v.GetString("data_dir"))
	assert.Equal(t, "sqlite://"+filepath.Join(dir, "rogsite", "rogsite.db"), v.GetString("db_url"))
	assert.True(t, v.GetBool("preview.sanitize"))
	require.NoError(t, CheckConfigValidity(v))
}

func TestLoadFileAndEnvPrecedence(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("http_addr = \":9000\"\n[log]\nlevel = \"debug\"\n"), 0o600))
	t.Setenv("ROGSITE_LOG_LEVEL", "warn")

	v := viper.New()
	v.SetConfigFile(cfgPath)
	require.NoError(t, Load(context.Background(), v))

	assert.Equal(t, ":9000", v.GetString("http_addr"))
	assert.Equal(t, "warn", v.GetString("log.level"))
}

func TestLoadRejectsBrokenFile(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("http_addr = [unterminated\n"), 0o600))

	v := viper.New()
	v.SetConfigFile(cfgPath)
	assert.Error(t, Load(context.Background(), v))
}

func TestCheckConfigValidityInvalid(t *testing.T) {
	v := viper.New()
	v.Set("data_dir", "")
	v.Set("db_url", "postgres://x")
	v.Set("http_addr", "")
	v.Set("log.level", "loud")
	v.Set("log.format", "xml")
	v.Set("server.max_body_bytes", 0)
	v.Set("server.read_timeout", "0s")
	v.Set("server.write_timeout", "30s")
	v.Set("server.shutdown_timeout", "nope")
	v.Set("tls.mode", "auto")

	err := CheckConfigValidity(v)
	require.Error(t, err)

	msg := err.Error()
	for _, want := range []string{
		"data_dir is required",
		"db_url must start with sqlite:// or mem://",
		"http_addr is required",
		"log.level must be one of",
		"log.format must be json or console",
		"server.max_body_bytes must be greater than 0",
		"server.read_timeout must be a positive duration",
		"server.shutdown_timeout must be a positive duration",
		"tls.mode=auto requires tls.domain",
	} {
		assert.Contains(t, msg, want)
	}
	assert.NotContains(t, msg, "server.write_timeout")
}

func TestRenderDefaultTOMLRoundTrips(t *testing.T) {
	out := RenderDefaultTOML()
	assert.True(t, strings.HasPrefix(out, "# rogsite configuration"))
	assert.Contains(t, out, "[preview]\n")
	assert.Contains(t, out, "sanitize = true")

	v := viper.New()
	v.SetConfigType("toml")
	require.NoError(t, v.ReadConfig(strings.NewReader(out)))
	assert.Equal(t, "off", v.GetString("tls.mode"))
	assert.Equal(t, 80, v.GetInt("render.word_wrap"))
}

func TestUpdateTOML(t *testing.T) {
	existing := "http_addr = \":9000\"\nlegacy = 1\n[log]\nlevel = \"debug\"\n"
	out, changed := UpdateTOML(existing)
	require.True(t, changed)
	assert.Contains(t, out, "http_addr = \":9000\"")
	assert.Contains(t, out, "# OUTDATED: option removed from config schema\n# legacy = 1")
	assert.Contains(t, out, "# Added by config update")
	assert.Contains(t, out, "format = \"json\"")
	assert.Equal(t, 1, strings.Count(out, "level = "))

	again, changed := UpdateTOML(RenderDefaultTOML())
	assert.False(t, changed)
	assert.Equal(t, RenderDefaultTOML(), again)
}
