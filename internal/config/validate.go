package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// CheckConfigValidity reports every problem found in v at once.
func CheckConfigValidity(v *viper.Viper) error {
	var errs []error
	add := func(format string, args ...any) { errs = append(errs, fmt.Errorf(format, args...)) }

	if strings.TrimSpace(v.GetString("data_dir")) == "" {
		add("data_dir is required")
	}
	if u := strings.TrimSpace(v.GetString("db_url")); u != "" &&
		!strings.HasPrefix(u, "sqlite://") && !strings.HasPrefix(u, "mem://") {
		add("db_url must start with sqlite:// or mem://")
	}
	if strings.TrimSpace(v.GetString("http_addr")) == "" {
		add("http_addr is required")
	}
	switch strings.ToLower(v.GetString("log.level")) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		add("log.level must be one of debug|info|warn|error")
	}
	switch strings.ToLower(v.GetString("log.format")) {
	case "", "json", "console":
	default:
		add("log.format must be json or console")
	}
	if v.GetInt64("server.max_body_bytes") <= 0 {
		add("server.max_body_bytes must be greater than 0")
	}
	for _, k := range []string{"server.read_timeout", "server.write_timeout", "server.shutdown_timeout"} {
		if v.GetDuration(k) <= 0 {
			add("%s must be a positive duration", k)
		}
	}
	if v.GetInt("render.word_wrap") < 0 {
		add("render.word_wrap must not be negative")
	}
	switch strings.ToLower(v.GetString("tls.mode")) {
	case "", "off":
	case "file":
		if v.GetString("tls.cert_file") == "" || v.GetString("tls.key_file") == "" {
			add("tls.mode=file requires tls.cert_file and tls.key_file")
		}
	case "auto":
		if v.GetString("tls.domain") == "" {
			add("tls.mode=auto requires tls.domain")
		}
	default:
		add("tls.mode must be off, file or auto")
	}
	return errors.Join(errs...)
}
