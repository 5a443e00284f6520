package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Yunis-rgbdev/crmmonitoring/internal/config"
	"github.com/Yunis-rgbdev/crmmonitoring/internal/dashboard"
	"github.com/Yunis-rgbdev/crmmonitoring/internal/logging"
	"github.com/Yunis-rgbdev/crmmonitoring/internal/monitor"
	"github.com/Yunis-rgbdev/crmmonitoring/internal/notify"
	"github.com/Yunis-rgbdev/crmmonitoring/internal/probe"
	"github.com/Yunis-rgbdev/crmmonitoring/internal/repo"
	"github.com/Yunis-rgbdev/crmmonitoring/internal/repo/memory"
	"github.com/Yunis-rgbdev/crmmonitoring/internal/repo/sqlite"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger, err := logging.NewLogger(cfg.Log.Dir)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var results repo.ResultStore
	if cfg.Storage.Path != "" {
		db, err := sqlite.New(cfg.Storage.Path)
		if err != nil {
			logger.Fatal("sqlite_open_failed", zap.String("path", cfg.Storage.Path), zap.Error(err))
		}
		defer db.Close()
		go retentionLoop(ctx, logger, db, cfg.Storage.Retention)
		results = db
	} else {
		results = memory.New()
	}

	resultLog, err := logging.NewResultWriter(cfg.Log.ResultsFile)
	if err != nil {
		logger.Fatal("result_log_open_failed", zap.String("path", cfg.Log.ResultsFile), zap.Error(err))
	}
	defer resultLog.Close()

	var notifiers notify.Multi
	if cfg.Notify.Desktop {
		notifiers = append(notifiers, notify.NewDesktop("CRM Ping Monitor"))
	}
	if s := notify.NewSlack(cfg.Notify.SlackWebhook); s != nil {
		notifiers = append(notifiers, s)
	}

	display := dashboard.NewServer(logger)
	srv := &http.Server{Addr: cfg.Dashboard.Addr, Handler: display.Router()}
	go func() {
		logger.Info("dashboard_listen", zap.String("addr", cfg.Dashboard.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("dashboard_failed", zap.Error(err))
			stop()
		}
	}()

	mon := monitor.New(
		logger,
		cfg.DomainHosts(),
		&probe.Selector{
			ICMP: probe.NewICMPProber(cfg.Poll.Timeout, !cfg.Probe.Unprivileged),
			TCP:  probe.NewTCPProber(cfg.Poll.Timeout),
		},
		results,
		[]monitor.ResultSink{resultLog},
		display,
		notifiers,
		monitor.Config{
			Interval:    cfg.Poll.Interval,
			Timeout:     cfg.Poll.Timeout,
			Concurrency: cfg.Poll.Concurrency,
			FastMS:      cfg.Thresholds.FastMS,
			RepeatEvery: cfg.Alerts.RepeatEvery,
			OnRecovery:  cfg.Alerts.OnRecovery,
		},
	)

	logger.Info("monitor_start",
		zap.Int("hosts", len(cfg.Hosts)),
		zap.Duration("interval", cfg.Poll.Interval),
		zap.Float64("fast_ms", cfg.Thresholds.FastMS),
	)
	mon.Run(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

func retentionLoop(ctx context.Context, logger *zap.Logger, db *sqlite.Store, retention time.Duration) {
	if retention <= 0 {
		return
	}
	t := time.NewTicker(time.Hour)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if err := db.Cleanup(ctx, time.Now().Add(-retention)); err != nil {
				logger.Warn("history_cleanup_failed", zap.Error(err))
			}
		}
	}
}
