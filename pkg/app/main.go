package app

import (
	"github.com/gorilla/sessions"

	"github.com/ghuser/beanbridge/pkg/cache"
	"github.com/ghuser/beanbridge/pkg/config"
	"github.com/ghuser/beanbridge/pkg/database"
	"github.com/ghuser/beanbridge/pkg/events"
	"github.com/ghuser/beanbridge/pkg/logger"
	"github.com/ghuser/beanbridge/pkg/workflows"
)

// Application holds shared infrastructure dependencies for all services.
// Pass to each service's route registration during server initialization.
//
// Logging: app.Logger is backed by a trace-aware handler — use slog's context
// methods and trace_id, span_id, and request_id are injected automatically:
//
//	app.Logger.InfoContext(ctx, "processing rfq", "rfq_number", number)
//	app.Logger.ErrorContext(ctx, "failed to save", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Cfg            *config.Config
	Db             *database.Database
	Logger         logger.Logger
	EventBus       *events.EventBus
	Redis          *cache.RedisClient
	TemporalClient *workflows.TemporalClient // nil when Temporal is unreachable; expiry falls back to the worker sweep
	SessionStore   sessions.Store            // Redis-backed session store; nil in worker process
}
