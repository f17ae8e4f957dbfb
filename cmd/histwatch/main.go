// Package main implements histwatch, a reference deployment of the
// heapless history buffer: it feeds NATS telemetry samples into
// per-subject rolling windows and exposes the resulting aggregates
// over Prometheus.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"golang.org/x/sync/errgroup"

	"github.com/YuhanLiin/heapless/errors"
	"github.com/YuhanLiin/heapless/metric"
)

// Build information constants
const (
	Version = "0.1.0"
	appName = "histwatch"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := run(); err != nil {
		slog.Error("Application failed", "error", err, "exit_code", 1)
		os.Exit(1)
	}
}

func run() error {
	cliCfg := parseFlags()
	if err := validateFlags(cliCfg); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	if cliCfg.ShowVersion {
		fmt.Printf("%s version %s\n", appName, Version)
		return nil
	}

	logger := setupLogger(cliCfg.LogLevel, cliCfg.LogFormat).With(
		"instance", uuid.NewString(),
	)
	slog.SetDefault(logger)

	cfg, err := LoadConfig(cliCfg.ConfigPath)
	if err != nil {
		return err
	}

	if cliCfg.Validate {
		slog.Info("Configuration is valid", "config_path", cliCfg.ConfigPath)
		return nil
	}

	slog.Info("Starting histwatch",
		"version", Version,
		"config_path", cliCfg.ConfigPath,
		"subjects", cfg.NATS.Subjects,
		"window_size", cfg.Window.Size)

	registry := metric.NewMetricsRegistry()

	watcher, err := NewWatcher(cfg, registry, logger)
	if err != nil {
		return err
	}

	conn, err := nats.Connect(cfg.NATS.URL,
		nats.Name(appName),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return errors.WrapTransient(err, "histwatch", "run", "connect to NATS at "+cfg.NATS.URL)
	}
	defer conn.Close()

	subs, err := subscribe(conn, cfg.NATS.Subjects, watcher, logger)
	if err != nil {
		return err
	}
	defer func() {
		for _, sub := range subs {
			_ = sub.Unsubscribe()
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := metric.NewServer(cfg.Metrics.Port, cfg.Metrics.Path, registry)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("Metrics server listening", "address", server.Address())
		return server.Start()
	})

	g.Go(func() error {
		return watcher.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down")
		return server.Stop()
	})

	return g.Wait()
}

// subscribe attaches a decoding handler to every configured subject.
// Handlers only decode and hand off; the watcher goroutine owns the
// windows.
func subscribe(conn *nats.Conn, subjects []string, watcher *Watcher, logger *slog.Logger) ([]*nats.Subscription, error) {
	subs := make([]*nats.Subscription, 0, len(subjects))

	for _, subject := range subjects {
		subject := subject
		sub, err := conn.Subscribe(subject, func(msg *nats.Msg) {
			sample, err := Decode(msg.Data)
			if err != nil {
				logger.Warn("Discarding undecodable sample", "subject", subject, "error", err)
				return
			}
			watcher.Offer(subject, sample)
		})
		if err != nil {
			for _, s := range subs {
				_ = s.Unsubscribe()
			}
			return nil, errors.WrapTransient(
				fmt.Errorf("%w: %w", errors.ErrSubscriptionFailed, err),
				"histwatch", "subscribe", subject)
		}
		subs = append(subs, sub)
	}

	return subs, nil
}
