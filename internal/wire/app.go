package wire

import (
	"context"
	"io"
	"sync"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/rccgrog/rogsite/internal/db"
	"github.com/rccgrog/rogsite/internal/logging"
)

// App aggregates the major services for easy injection.
type App struct {
	Cfg   *viper.Viper
	Log   *zap.Logger
	Store *db.Store

	closer    io.Closer
	closeOnce sync.Once
	closeErr  error
}

// BuildApp wires dependencies with the provided config.
func BuildApp(ctx context.Context, cfg *viper.Viper) (*App, error) {
	logger, err := logging.New(cfg.GetString("log.level"), cfg.GetString("log.format"))
	if err != nil {
		return nil, err
	}
	store, closer, err := db.Open(ctx, cfg.GetString("db_url"))
	if err != nil {
		return nil, err
	}
	logger.Debug("store opened", zap.String("db_url", cfg.GetString("db_url")))
	return &App{
		Cfg:    cfg,
		Log:    logger,
		Store:  store,
		closer: closer,
	}, nil
}

// Close releases the store and flushes the logger. Calls after the first
// return the first result.
func (a *App) Close() error {
	a.closeOnce.Do(func() {
		_ = a.Log.Sync()
		if a.closer != nil {
			a.closeErr = a.closer.Close()
		}
	})
	return a.closeErr
}
