package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-gin-event-ticketing/config"
	"go-gin-event-ticketing/internal/app"
	"go-gin-event-ticketing/internal/worker"
	"go-gin-event-ticketing/pkg/logger"
	"go-gin-event-ticketing/pkg/telemetry"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.LoadConfig()
	logger.SetLevel(cfg.Server.LogLevel)
	log := logger.WithComponent("server")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := telemetry.Init(ctx, telemetry.Config{
		Enabled:       cfg.Telemetry.Enabled,
		ServiceName:   cfg.Telemetry.ServiceName,
		CollectorAddr: cfg.Telemetry.CollectorAddr,
	}); err != nil {
		log.Error("Failed to initialize telemetry", zap.Error(err))
		return 1
	}

	if cfg.Server.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	a, err := app.New(ctx, cfg, cfg.Reminder.UseStream)
	if err != nil {
		log.Error("Failed to initialize application", zap.Error(err))
		return 1
	}
	defer a.Close()

	workerCtx, cancelWorker := context.WithCancel(ctx)
	defer cancelWorker()

	w := worker.NewReminderWorker(a.Reminders, a.ReminderQueue)
	if err := w.Start(workerCtx); err != nil {
		log.Error("Failed to start reminder worker", zap.Error(err))
		return 1
	}

	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:           a.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	code := 0
	select {
	case <-ctx.Done():
		log.Info("Shutting down")
	case err := <-serveErr:
		log.Error("HTTP server failed", zap.Error(err))
		code = 1
	}
	cancelWorker()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown failed", zap.Error(err))
	}

	select {
	case <-w.Done():
	case <-shutdownCtx.Done():
		log.Warn("Reminder worker did not stop in time")
	}

	if err := telemetry.Shutdown(shutdownCtx); err != nil {
		log.Warn("Telemetry shutdown failed", zap.Error(err))
	}
	return code
}
