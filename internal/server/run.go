package server

import (
	"context"
	"crypto/tls"
	"errors"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Run listens on http_addr and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	addr := s.cfg.GetString("http_addr")
	if addr == "" {
		addr = ":8080"
	}
	tlsConf, challenge, err := TLSFromConfig(ctx, s.cfg)
	if err != nil {
		return err
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	if tlsConf != nil {
		ln = tls.NewListener(ln, tlsConf)
	}

	g, ctx := errgroup.WithContext(ctx)
	if challenge != nil {
		acme := &http.Server{Addr: s.cfg.GetString("tls.http_addr"), Handler: challenge, ReadHeaderTimeout: 10 * time.Second}
		g.Go(func() error { return s.serveUntilDone(ctx, acme, nil) })
	}
	g.Go(func() error { return s.Serve(ctx, ln) })
	return g.Wait()
}

// Serve serves the API on ln until ctx is cancelled, then shuts down
// gracefully within server.shutdown_timeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       s.duration("server.read_timeout", 15*time.Second),
		WriteTimeout:      s.duration("server.write_timeout", 30*time.Second),
	}
	return s.serveUntilDone(ctx, srv, ln)
}

func (s *Server) serveUntilDone(ctx context.Context, srv *http.Server, ln net.Listener) error {
	errc := make(chan error, 1)
	go func() {
		var err error
		if ln != nil {
			s.log.Info("listening", zap.String("addr", ln.Addr().String()))
			err = srv.Serve(ln)
		} else {
			s.log.Info("listening", zap.String("addr", srv.Addr))
			err = srv.ListenAndServe()
		}
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		errc <- err
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.duration("server.shutdown_timeout", 10*time.Second))
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errc
}

func (s *Server) duration(key string, def time.Duration) time.Duration {
	if s.cfg == nil {
		return def
	}
	if d := s.cfg.GetDuration(key); d > 0 {
		return d
	}
	return def
}
