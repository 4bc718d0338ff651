package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.temporal.io/sdk/worker"

	"github.com/ghuser/beanbridge/pkg/app"
	"github.com/ghuser/beanbridge/pkg/cache"
	"github.com/ghuser/beanbridge/pkg/config"
	"github.com/ghuser/beanbridge/pkg/database"
	"github.com/ghuser/beanbridge/pkg/events"
	"github.com/ghuser/beanbridge/pkg/logger"
	"github.com/ghuser/beanbridge/pkg/telemetry"
	"github.com/ghuser/beanbridge/pkg/workflows"
	appsvcs "github.com/ghuser/beanbridge/services/rfq/application/services"
	rfqEvents "github.com/ghuser/beanbridge/services/rfq/domain/events"
)

// expirySweepInterval is how often the fallback sweep looks for stale RFQs.
// The Temporal workflow is the primary expiry mechanism; the sweep catches
// RFQs whose workflow never started (Temporal down at submission time).
const expirySweepInterval = time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	ctx := context.Background()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer pool.Close()
	log.Info("database pool connected")

	eventBus, err := events.NewEventBus(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	temporalClient, err := workflows.NewTemporalClient(ctx, cfg.TemporalHostPort, cfg.TemporalNamespace, log)
	if err != nil {
		log.Warn("temporal unavailable, running with sweep-only expiry", "error", err)
		temporalClient = nil
	} else {
		defer temporalClient.Close()
	}

	appConfig := &app.Application{
		Cfg:            cfg,
		Db:             pool,
		Logger:         log,
		EventBus:       eventBus,
		Redis:          redisClient,
		TemporalClient: temporalClient,
	}

	svcs := appsvcs.New(appConfig)

	if err := registerSubscribers(ctx, appConfig, svcs); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	if temporalClient != nil {
		w := worker.New(temporalClient.Client, workflows.RFQExpiryTaskQueue, worker.Options{})
		w.RegisterWorkflow(workflows.RFQExpiryWorkflow)
		w.RegisterActivity(&workflows.ExpiryActivities{Expirer: svcs.RFQ})
		if err := w.Start(); err != nil {
			log.Error("failed to start temporal worker", "error", err)
			os.Exit(1) //nolint:gocritic
		}
		defer w.Stop()
		log.Info("temporal worker started", "task_queue", workflows.RFQExpiryTaskQueue)
	}

	sweepCtx, cancelSweep := context.WithCancel(ctx)
	go runExpirySweep(sweepCtx, appConfig, svcs)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")
	cancelSweep()

	// EventBus.Close() (via defer) waits for in-flight handlers.
	log.Info("worker stopped")
}

// registerSubscribers wires all domain event handlers.
// Add new topics here as more services publish events.
func registerSubscribers(ctx context.Context, a *app.Application, svcs *appsvcs.Services) error {
	topics := map[string]func(context.Context, *message.Message) error{
		rfqEvents.TopicRFQSubmitted:     handleRFQSubmitted(a, svcs),
		rfqEvents.TopicRFQStatusChanged: handleRFQStatusChanged(a),
	}

	for topic, handler := range topics {
		errCh, err := a.EventBus.Subscribe(ctx, topic, handler)
		if err != nil {
			return err
		}
		// Drain subscriber errors in background so the channel never blocks.
		go func(topic string) {
			for err := range errCh {
				a.Logger.ErrorContext(ctx, "subscriber error", "topic", topic, "error", err)
			}
		}(topic)
	}

	a.Logger.Info("event subscribers registered",
		"topics", []string{rfqEvents.TopicRFQSubmitted, rfqEvents.TopicRFQStatusChanged})
	return nil
}

// handleRFQSubmitted returns a handler for rfq.submitted events.
// Handlers must be idempotent — EventBus retries up to 3× on failure.
// Warms the Redis read-model cache so the admin dashboard's first GetByID
// after submission is served from cache.
func handleRFQSubmitted(a *app.Application, svcs *appsvcs.Services) func(context.Context, *message.Message) error {
	return func(ctx context.Context, msg *message.Message) error {
		var evt rfqEvents.RFQSubmittedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}

		if err := svcs.RFQ.WarmCache(ctx, evt.RFQID); err != nil {
			// Cache warming is best-effort; log but do not fail the handler.
			a.Logger.WarnContext(ctx, "cache warm failed for rfq.submitted",
				"rfq_number", evt.RFQNumber, "error", err)
		} else {
			a.Logger.InfoContext(ctx, "cache warmed",
				"rfq_number", evt.RFQNumber, "company", evt.CompanyName)
		}

		return nil
	}
}

// handleRFQStatusChanged returns a handler for rfq.status_changed events.
// Significant transitions are recorded for audit; the notification itself is
// dispatched inline by the API process.
func handleRFQStatusChanged(a *app.Application) func(context.Context, *message.Message) error {
	return func(ctx context.Context, msg *message.Message) error {
		var evt rfqEvents.RFQStatusChangedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}

		a.Logger.InfoContext(ctx, "rfq status changed",
			"rfq_number", evt.RFQNumber,
			"previous", evt.PreviousStatus,
			"new", evt.NewStatus,
			"significant", evt.Significant,
		)
		return nil
	}
}

// runExpirySweep periodically expires RFQs still awaiting review past the
// configured window. Runs until ctx is cancelled.
func runExpirySweep(ctx context.Context, a *app.Application, svcs *appsvcs.Services) {
	ticker := time.NewTicker(expirySweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.Logger.Info("expiry sweep shutting down")
			return
		case <-ticker.C:
			n, err := svcs.RFQ.ExpireStale(ctx)
			if err != nil {
				a.Logger.ErrorContext(ctx, "expiry sweep failed", "error", err)
				continue
			}
			if n > 0 {
				a.Logger.InfoContext(ctx, "expired stale rfqs", "count", n)
			}
		}
	}
}
