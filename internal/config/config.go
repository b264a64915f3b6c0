package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const appName = "rogsite"

// applyDefaults seeds Viper with defaults defined in GetConfigOptions.
func applyDefaults(v *viper.Viper) {
	for _, o := range GetConfigOptions() {
		v.SetDefault(o.Key, o.Default)
	}
}

// Load resolves configuration with precedence: defaults < file < env.
// The provided Viper instance is mutated with defaults, file contents, and env.
func Load(ctx context.Context, v *viper.Viper) error {
	// An explicit SetConfigFile upstream takes precedence over these paths.
	if v.ConfigFileUsed() == "" {
		v.SetConfigName("config")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, appName))
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", appName))
		}
		v.AddConfigPath(".")
	}

	applyDefaults(v)

	// A missing file is fine; a broken one is not.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	// Environment variables: ROGSITE_* (highest among these sources)
	v.SetEnvPrefix(appName)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if strings.TrimSpace(v.GetString("data_dir")) == "" {
		v.Set("data_dir", defaultDataDir())
	}
	if strings.TrimSpace(v.GetString("db_url")) == "" {
		v.Set("db_url", "sqlite://"+ResolveDBPath(v))
	}
	return nil
}

// defaultDataDir resolves default data dir: $XDG_DATA_HOME/rogsite or ~/.local/share/rogsite
func defaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", appName)
}

// DefaultConfigPath resolves the standard config.toml location.
func DefaultConfigPath() string {
	xdg := os.Getenv("XDG_CONFIG_HOME")
	if xdg == "" {
		home, _ := os.UserHomeDir()
		xdg = filepath.Join(home, ".config")
	}
	return filepath.Join(xdg, appName, "config.toml")
}

type ConfigOption struct {
	Key     string
	Default any
	Comment string
}

// GetConfigOptions returns the default configuration options and their meanings.
// This is the single source of truth for default values and generator output.
func GetConfigOptions() []ConfigOption {
	return []ConfigOption{
		{Key: "data_dir", Default: defaultDataDir(), Comment: "Directory for local state; DB is data_dir/rogsite.db"},
		{Key: "db_url", Default: "", Comment: "Section store URL (sqlite://path or mem://); empty uses data_dir"},
		{Key: "http_addr", Default: ":8080", Comment: "HTTP listen address for the content API"},

		{Key: "log.level", Default: "info", Comment: "Log level: debug|info|warn|error"},
		{Key: "log.format", Default: "json", Comment: "Log encoding: json|console"},

		{Key: "server.max_body_bytes", Default: 1 << 20, Comment: "Maximum accepted request body size in bytes"},
		{Key: "server.read_timeout", Default: "15s", Comment: "HTTP read timeout"},
		{Key: "server.write_timeout", Default: "30s", Comment: "HTTP write timeout"},
		{Key: "server.shutdown_timeout", Default: "10s", Comment: "Grace period for in-flight requests on shutdown"},

		{Key: "preview.sanitize", Default: true, Comment: "Strip all markup except <br> from markup previews"},

		{Key: "render.style", Default: "dracula", Comment: "glamour style for `section show --pretty`"},
		{Key: "render.word_wrap", Default: 80, Comment: "Word wrap column for pretty output"},

		{Key: "tls.mode", Default: "off", Comment: "TLS mode: off|file|auto"},
		{Key: "tls.cert_file", Default: "", Comment: "PEM certificate for tls.mode=file"},
		{Key: "tls.key_file", Default: "", Comment: "PEM key for tls.mode=file"},
		{Key: "tls.domain", Default: "", Comment: "Domain managed by certmagic for tls.mode=auto"},
		{Key: "tls.email", Default: "", Comment: "ACME account email for tls.mode=auto"},
		{Key: "tls.storage_dir", Default: "", Comment: "certmagic storage; empty uses the user cache dir"},
		{Key: "tls.http_addr", Default: "", Comment: "Address for the ACME HTTP-01 challenge listener; empty disables it"},
	}
}

// ResolveDBPath returns the sqlite DB file path under data_dir.
func ResolveDBPath(v *viper.Viper) string {
	dir := v.GetString("data_dir")
	if dir == "" {
		dir = defaultDataDir()
	}
	// Expand ~ for convenience
	if len(dir) > 0 && dir[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, dir[1:])
		}
	}
	return filepath.Join(dir, appName+".db")
}
