package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"openday/internal/config"
	"openday/internal/enroll"
	"openday/internal/lock"
	"openday/internal/logging"
	"openday/internal/memstore"
	"openday/internal/metrics"
	"openday/internal/notify"
	"openday/internal/sheets"
)

const writeLockTTL = 15 * time.Second

// app is everything a command needs, built once from the environment.
type app struct {
	cfg     config.Config
	logger  *zap.Logger
	metrics *metrics.Metrics
	svc     *enroll.Service

	closers []func() error
}

func loadConfig() (config.Config, error) {
	if envFile {
		config.LoadDotEnv()
	}
	cfg, err := config.FromEnv()
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func newApp(ctx context.Context, cfg config.Config) (*app, error) {
	logger, err := logging.New(cfg.LogLevel, cfg.IsDev())
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, logger: logger, metrics: metrics.New()}

	store, err := a.openStore(ctx)
	if err != nil {
		return nil, err
	}

	registrant, err := notify.NewRegistrantNotifier(cfg, logger)
	if err != nil {
		return nil, err
	}
	organizers, err := notify.NewOrganizerNotifiers(cfg)
	if err != nil {
		return nil, err
	}
	dispatcher := notify.NewDispatcher(registrant, cfg.AppURL, logger, a.metrics, organizers...)

	opts := []enroll.Option{
		enroll.WithTeamCapacity(cfg.TeamCapacity),
		enroll.WithMetrics(a.metrics),
	}
	if cfg.RedisURL != "" {
		rl, err := lock.NewRedisFromURL(ctx, cfg.RedisURL, writeLockTTL)
		if err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}
		a.closers = append(a.closers, rl.Close)
		opts = append(opts, enroll.WithLocker(rl))
		logger.Info("write lock backed by redis")
	}

	a.svc = enroll.NewService(store, dispatcher, logger, opts...)
	logger.Info("app ready",
		zap.String("store", cfg.StoreBackend),
		zap.String("notify", registrant.Name()),
		zap.Int("organizer_channels", len(organizers)),
		zap.Int("team_capacity", cfg.TeamCapacity),
	)
	return a, nil
}

func (a *app) openStore(ctx context.Context) (enroll.Store, error) {
	switch a.cfg.StoreBackend {
	case config.StoreMemory:
		a.logger.Warn("using in-memory store, registrations are lost on exit")
		return memstore.New(), nil
	case config.StoreSheets:
		sh, err := sheets.New(ctx, a.cfg.GoogleServiceAccountJSON, a.cfg.SpreadsheetID, a.cfg.SheetName)
		if err != nil {
			return nil, fmt.Errorf("sheets: %w", err)
		}
		if err := sh.EnsureHeader(ctx); err != nil {
			return nil, err
		}
		return sh, nil
	default:
		return nil, fmt.Errorf("unknown store backend: %s", a.cfg.StoreBackend)
	}
}

func (a *app) Close() {
	for _, c := range a.closers {
		if err := c(); err != nil {
			a.logger.Warn("close failed", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}
