package server

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caddyserver/certmagic"
	"github.com/spf13/viper"
)

// CertMagicConfig configures automatic certificate management with CertMagic.
type CertMagicConfig struct {
	Domain     string
	Email      string
	StorageDir string // optional; defaults to XDG or ~/.cache/rogsite/certmagic
	CA         string // optional; defaults to Let's Encrypt prod
	// EnableHTTP01 returns a handler for the HTTP-01 challenge that the
	// caller must serve on port 80.
	EnableHTTP01 bool
}

// BuildCertMagicTLS provisions or loads certificates via CertMagic and returns
// a TLS config plus an HTTP handler for HTTP-01 challenges when enabled.
func BuildCertMagicTLS(ctx context.Context, cfg CertMagicConfig) (*tls.Config, http.Handler, error) {
	if cfg.Domain == "" {
		return nil, nil, errors.New("domain is required")
	}

	cm := certmagic.NewDefault()
	if cfg.StorageDir == "" {
		if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
			cfg.StorageDir = filepath.Join(xdg, "rogsite", "certmagic")
		} else {
			home, _ := os.UserHomeDir()
			cfg.StorageDir = filepath.Join(home, ".cache", "rogsite", "certmagic")
		}
	}
	if err := os.MkdirAll(cfg.StorageDir, 0o700); err != nil {
		return nil, nil, fmt.Errorf("cert storage: %w", err)
	}
	cm.Storage = &certmagic.FileStorage{Path: cfg.StorageDir}

	ai := certmagic.NewACMEIssuer(cm, certmagic.ACMEIssuer{
		CA:                   ifEmpty(cfg.CA, certmagic.LetsEncryptProductionCA),
		Email:                cfg.Email,
		Agreed:               true,
		DisableHTTPChallenge: !cfg.EnableHTTP01,
	})
	cm.Issuers = []certmagic.Issuer{ai}

	if err := cm.ManageSync(ctx, []string{cfg.Domain}); err != nil {
		return nil, nil, err
	}

	tlsConf := cm.TLSConfig()
	tlsConf.NextProtos = append([]string{"h2", "http/1.1"}, tlsConf.NextProtos...)
	tlsConf.MinVersion = tls.VersionTLS12

	if cfg.EnableHTTP01 {
		return tlsConf, ai.HTTPChallengeHandler(http.NotFoundHandler()), nil
	}
	return tlsConf, nil, nil
}

func ifEmpty(s, d string) string {
	if s == "" {
		return d
	}
	return s
}

// BuildFileTLS loads a certificate from PEM files for BYO certs.
func BuildFileTLS(certFile, keyFile string) (*tls.Config, error) {
	if certFile == "" || keyFile == "" {
		return nil, errors.New("both certFile and keyFile are required")
	}

	c, err := tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		return nil, fmt.Errorf("load keypair: %w", err)
	}

	now := time.Now()
	for i, b := range c.Certificate {
		cert, err := x509.ParseCertificate(b)
		if err != nil {
			return nil, fmt.Errorf("invalid certificate at index %d: %w", i, err)
		}
		if now.Before(cert.NotBefore) {
			return nil, fmt.Errorf("certificate not yet valid (starts %s)", cert.NotBefore)
		}
		if now.After(cert.NotAfter) {
			return nil, fmt.Errorf("certificate expired on %s", cert.NotAfter)
		}
	}

	return &tls.Config{Certificates: []tls.Certificate{c}, MinVersion: tls.VersionTLS12}, nil
}

// TLSFromConfig resolves the tls.* keys. It returns a nil config when TLS is
// off, and a non-nil handler only when an HTTP-01 listener is configured.
func TLSFromConfig(ctx context.Context, v *viper.Viper) (*tls.Config, http.Handler, error) {
	switch strings.ToLower(strings.TrimSpace(v.GetString("tls.mode"))) {
	case "", "off":
		return nil, nil, nil
	case "file":
		conf, err := BuildFileTLS(v.GetString("tls.cert_file"), v.GetString("tls.key_file"))
		return conf, nil, err
	case "auto":
		return BuildCertMagicTLS(ctx, CertMagicConfig{
			Domain:       v.GetString("tls.domain"),
			Email:        v.GetString("tls.email"),
			StorageDir:   v.GetString("tls.storage_dir"),
			EnableHTTP01: v.GetString("tls.http_addr") != "",
		})
	default:
		return nil, nil, fmt.Errorf("unknown tls.mode %q", v.GetString("tls.mode"))
	}
}
