package services

import (
	"time"

	"github.com/ghuser/beanbridge/pkg/app"
	pkgcache "github.com/ghuser/beanbridge/pkg/cache"
	"github.com/ghuser/beanbridge/pkg/workflows"
	"github.com/ghuser/beanbridge/services/rfq/infrastructure/notifications"
	"github.com/ghuser/beanbridge/services/rfq/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	RFQ *RFQService
}

// New wires all RFQ application services with infrastructure from the
// Application container. Mail and Temporal are optional: when SMTP is not
// configured or Temporal is down, those channels are simply skipped.
func New(a *app.Application) *Services {
	repo := postgres.NewRFQRepository(a.Db, a.EventBus)

	var rfqCache *pkgcache.RFQCache
	if a.Redis != nil {
		rfqCache = pkgcache.NewRFQCache(a.Redis)
	}

	var email EmailSender
	if sender, err := notifications.NewEmailSender(a.Cfg); err != nil {
		a.Logger.Warn("smtp not configured, email notifications disabled", "error", err)
	} else {
		email = sender
	}

	var notifier AdminNotifier
	if a.Cfg.AdminWebhookURL != "" {
		notifier = notifications.NewWebhookNotifier(a.Cfg.AdminWebhookURL)
	}

	var scheduler ExpiryScheduler
	if a.TemporalClient != nil {
		scheduler = workflows.NewExpiryScheduler(a.TemporalClient)
	}

	expiryWindow := time.Duration(a.Cfg.RFQExpiryDays) * 24 * time.Hour

	return &Services{
		RFQ: NewRFQService(repo, rfqCache, email, notifier, scheduler,
			a.Logger, a.Cfg.AdminEmail, expiryWindow),
	}
}
