package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rccgrog/rogsite/internal/db"
)

func TestServeStopsOnCancel(t *testing.T) {
	store, closer, err := db.Open(context.Background(), "mem://")
	require.NoError(t, err)
	defer closer.Close()

	cfg := viper.New()
	cfg.Set("server.shutdown_timeout", "2s")
	s := New(cfg, store, nil)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}, Timeout: 5 * time.Second}
	resp, err := client.Get("http://" + ln.Addr().String() + "/healthz")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, "ok", string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestTLSFromConfig(t *testing.T) {
	v := viper.New()
	conf, h, err := TLSFromConfig(context.Background(), v)
	require.NoError(t, err)
	assert.Nil(t, conf)
	assert.Nil(t, h)

	v.Set("tls.mode", "file")
	_, _, err = TLSFromConfig(context.Background(), v)
	assert.Error(t, err)

	v.Set("tls.mode", "auto")
	_, _, err = TLSFromConfig(context.Background(), v)
	assert.EqualError(t, err, "domain is required")

	v.Set("tls.mode", "quic")
	_, _, err = TLSFromConfig(context.Background(), v)
	assert.Error(t, err)
}
