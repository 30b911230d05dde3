// Command reminder runs one reminder pass. It is meant to be scheduled daily.
package main

import (
	"context"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"go-gin-event-ticketing/config"
	"go-gin-event-ticketing/internal/app"
	"go-gin-event-ticketing/internal/model"
	"go-gin-event-ticketing/internal/worker"
	"go-gin-event-ticketing/pkg/logger"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// countingDeliverer counts finished attempts so the in-process run knows when to stop.
type countingDeliverer struct {
	next worker.ReminderDeliverer
	done atomic.Int64
}

func (d *countingDeliverer) Deliver(ctx context.Context, msg *model.ReminderMessage) error {
	err := d.next.Deliver(ctx, msg)
	if err == nil {
		d.done.Add(1)
	}
	return err
}

func main() {
	os.Exit(run(os.Args[1:]))
}

// run returns the process exit code so deferred cleanup always happens.
func run(args []string) int {
	cfg := config.LoadConfig()

	flags := pflag.NewFlagSet("reminder", pflag.ContinueOnError)
	stream := flags.Bool("stream", cfg.Reminder.UseStream, "publish to the Redis stream and leave delivery to the server workers")
	lookahead := flags.Int("lookahead-days", cfg.Reminder.LookaheadDays, "days ahead to look for events")
	wait := flags.Duration("wait", 2*time.Minute, "how long to wait for in-process deliveries")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	cfg.Reminder.LookaheadDays = *lookahead
	logger.SetLevel(cfg.Server.LogLevel)
	log := logger.WithComponent("reminder")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, *stream)
	if err != nil {
		log.Error("Failed to initialize application", zap.Error(err))
		return 1
	}
	defer a.Close()

	if *stream {
		result, err := a.Reminders.Run(ctx)
		if err != nil {
			log.Error("Reminder run failed", zap.Error(err))
			return 1
		}
		log.Info("Reminders published",
			zap.Int("targets", result.Targets),
			zap.Int("published", result.Published),
			zap.Int("skipped", result.Skipped))
		return 0
	}

	workerCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	counter := &countingDeliverer{next: a.Reminders}
	w := worker.NewReminderWorker(counter, a.ReminderQueue)
	if err := w.Start(workerCtx); err != nil {
		log.Error("Failed to start reminder worker", zap.Error(err))
		return 1
	}

	result, err := a.Reminders.Run(ctx)
	if err != nil {
		cancel()
		<-w.Done()
		log.Error("Reminder run failed", zap.Error(err))
		return 1
	}

	deadline := time.After(*wait)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	finished := func() bool {
		return counter.done.Load()+a.DiscardedReminders() >= int64(result.Published)
	}

loop:
	for !finished() {
		select {
		case <-ticker.C:
		case <-deadline:
			log.Warn("Gave up waiting for deliveries",
				zap.Int64("delivered", counter.done.Load()),
				zap.Int("published", result.Published))
			break loop
		case <-ctx.Done():
			break loop
		}
	}

	cancel()
	<-w.Done()

	log.Info("Reminder run finished",
		zap.Int("targets", result.Targets),
		zap.Int("published", result.Published),
		zap.Int("skipped", result.Skipped),
		zap.Int64("delivered", counter.done.Load()),
		zap.Int64("discarded", a.DiscardedReminders()))

	if a.DiscardedReminders() > 0 {
		return 1
	}
	return 0
}
