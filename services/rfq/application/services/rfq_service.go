package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	pkgcache "github.com/ghuser/beanbridge/pkg/cache"
	"github.com/ghuser/beanbridge/pkg/logger"
	rfqdomain "github.com/ghuser/beanbridge/services/rfq/domain"
	"github.com/ghuser/beanbridge/services/rfq/domain/models"
	"github.com/ghuser/beanbridge/services/rfq/domain/repositories"
	domainsvcs "github.com/ghuser/beanbridge/services/rfq/domain/services"
)

// EmailSender delivers transactional mail. Failures must be returnable, not
// thrown: the service logs and swallows them.
type EmailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// AdminNotifier pings the sales team's side channel.
type AdminNotifier interface {
	NotifyNewRFQ(ctx context.Context, rfq *models.RFQ) error
	NotifyStatusChange(ctx context.Context, rfq *models.RFQ, previous, next models.Status) error
}

// ExpiryScheduler starts the deferred expiry for a fresh submission.
type ExpiryScheduler interface {
	ScheduleExpiry(ctx context.Context, id uuid.UUID, number string, deadline time.Time) error
}

// RFQService orchestrates the RFQ lifecycle: submission, reads, and status
// transitions. Event publishing happens in the repository layer (outbox
// pattern); reads are served from Redis cache when available.
//
// Side-channel dispatch (email, webhook, expiry scheduling) is best-effort:
// a failure there is logged and never rolls back or fails the primary write.
type RFQService struct {
	repo         repositories.RFQRepository
	cache        *pkgcache.RFQCache
	email        EmailSender
	notifier     AdminNotifier
	scheduler    ExpiryScheduler
	log          logger.Logger
	adminEmail   string
	expiryWindow time.Duration
	now          func() time.Time
}

// NewRFQService wires an RFQService. cache, email, notifier, and scheduler
// may each be nil; the corresponding behavior is skipped.
func NewRFQService(
	repo repositories.RFQRepository,
	cache *pkgcache.RFQCache,
	email EmailSender,
	notifier AdminNotifier,
	scheduler ExpiryScheduler,
	log logger.Logger,
	adminEmail string,
	expiryWindow time.Duration,
) *RFQService {
	return &RFQService{
		repo:         repo,
		cache:        cache,
		email:        email,
		notifier:     notifier,
		scheduler:    scheduler,
		log:          log,
		adminEmail:   adminEmail,
		expiryWindow: expiryWindow,
		now:          time.Now,
	}
}

// Submit validates and persists a buyer submission, then dispatches the
// confirmation email, admin email, and admin webhook best-effort.
//
// A second-granularity RFQ number collision is retried once with a bumped
// timestamp; any other store failure surfaces wrapped in ErrSubmitFailed.
func (s *RFQService) Submit(ctx context.Context, sub *models.Submission) (*models.RFQ, error) {
	if err := domainsvcs.ValidateSubmission(sub); err != nil {
		return nil, err
	}

	rfq := models.NewRFQ(sub, s.now())

	if err := s.repo.Create(ctx, rfq); err != nil {
		if errors.Is(err, rfqdomain.ErrDuplicateRFQNumber) {
			rfq.Number = models.NewRFQNumber(s.now().UTC().Add(time.Second))
			err = s.repo.Create(ctx, rfq)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", rfqdomain.ErrSubmitFailed, err)
		}
	}

	s.dispatchSubmissionNotices(ctx, rfq)

	if s.scheduler != nil {
		deadline := rfq.SubmittedAt.Add(s.expiryWindow)
		if err := s.scheduler.ScheduleExpiry(ctx, rfq.ID, rfq.Number.String(), deadline); err != nil {
			s.log.WarnContext(ctx, "expiry scheduling failed, sweep will catch it",
				"rfq_number", rfq.Number, "error", err)
		}
	}

	return rfq, nil
}

// GetByID retrieves an RFQ using a read-through cache pattern:
//  1. Check Redis cache first.
//  2. On cache miss (or cache error), query Postgres.
//  3. Asynchronously warm the cache with the Postgres result.
func (s *RFQService) GetByID(ctx context.Context, id uuid.UUID) (*models.RFQ, error) {
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, id); err == nil {
			var cached models.RFQ
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.log.WarnContext(ctx, "rfq cache read failed", "rfq_id", id, "error", err)
		}
	}

	rfq, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.warmCache(rfq)
	return rfq, nil
}

// List returns a filtered, sorted page of RFQs plus the total count.
// Pagination and sort parameters are validated before any store access;
// out-of-bounds values fail with ErrInvalidListQuery.
func (s *RFQService) List(ctx context.Context, filter repositories.ListFilter, opts repositories.ListOpts) ([]*models.RFQ, int, error) {
	if opts.Page < repositories.MinPage {
		return nil, 0, fmt.Errorf("%w: page must be >= %d", rfqdomain.ErrInvalidListQuery, repositories.MinPage)
	}
	if opts.Limit < repositories.MinLimit || opts.Limit > repositories.MaxLimit {
		return nil, 0, fmt.Errorf("%w: limit must be between %d and %d",
			rfqdomain.ErrInvalidListQuery, repositories.MinLimit, repositories.MaxLimit)
	}
	if opts.SortBy != "" {
		if _, ok := repositories.SortFields[opts.SortBy]; !ok {
			return nil, 0, fmt.Errorf("%w: unknown sort field %q", rfqdomain.ErrInvalidListQuery, opts.SortBy)
		}
	}
	if opts.SortOrder != "" && opts.SortOrder != "asc" && opts.SortOrder != "desc" {
		return nil, 0, fmt.Errorf("%w: sort order must be asc or desc", rfqdomain.ErrInvalidListQuery)
	}

	rfqs, total, err := s.repo.List(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list rfqs: %w", err)
	}
	return rfqs, total, nil
}

// UpdateStatus validates the new status, writes the patch, and fires the
// status-change notification if and only if the (old → new) edge is on the
// significant-transition allow-list. Notification failure never fails the
// already-persisted update.
func (s *RFQService) UpdateStatus(ctx context.Context, id uuid.UUID, newStatusRaw string, notes, updatedBy *string) (*models.RFQ, error) {
	newStatus, err := models.ParseStatus(newStatusRaw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", rfqdomain.ErrInvalidStatus, err)
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateStatus(ctx, id, repositories.StatusPatch{
		Status:         newStatus,
		PreviousStatus: existing.Status,
		InternalNotes:  notes,
		UpdatedBy:      updatedBy,
		UpdatedAt:      s.now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("update rfq status: %w", err)
	}

	if s.cache != nil {
		_ = s.cache.Delete(context.Background(), id)
	}

	if models.IsSignificantTransition(existing.Status, newStatus) && s.notifier != nil {
		if err := s.notifier.NotifyStatusChange(ctx, updated, existing.Status, newStatus); err != nil {
			s.log.WarnContext(ctx, "status change notification failed",
				"rfq_number", updated.Number,
				"previous", existing.Status,
				"new", newStatus,
				"error", err)
		}
	}

	return updated, nil
}

// ExpireIfUnattended moves an RFQ to expired when it is still awaiting a
// quote. Quoted and terminal RFQs are left alone. Used by the Temporal expiry
// activity and safe to call repeatedly.
func (s *RFQService) ExpireIfUnattended(ctx context.Context, id uuid.UUID) error {
	rfq, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, rfqdomain.ErrRFQNotFound) {
			return nil
		}
		return err
	}

	if rfq.Status != models.StatusSubmitted && rfq.Status != models.StatusUnderReview {
		return nil
	}

	notes := "expired automatically after inactivity"
	updatedBy := "system"
	_, err = s.UpdateStatus(ctx, id, string(models.StatusExpired), &notes, &updatedBy)
	return err
}

// ExpireStale expires every RFQ still awaiting a quote whose last activity
// predates the expiry window. Returns the number of RFQs expired. This is the
// worker's safety net behind the Temporal workflow.
func (s *RFQService) ExpireStale(ctx context.Context) (int, error) {
	cutoff := s.now().UTC().Add(-s.expiryWindow)
	stale, err := s.repo.ListStale(ctx, []models.Status{models.StatusSubmitted, models.StatusUnderReview}, cutoff)
	if err != nil {
		return 0, fmt.Errorf("list stale rfqs: %w", err)
	}

	expired := 0
	for _, rfq := range stale {
		if err := s.ExpireIfUnattended(ctx, rfq.ID); err != nil {
			s.log.ErrorContext(ctx, "failed to expire stale rfq",
				"rfq_number", rfq.Number, "error", err)
			continue
		}
		expired++
	}
	return expired, nil
}

// WarmCache stores the RFQ in the read cache. Called by the worker on
// rfq.submitted events.
func (s *RFQService) WarmCache(ctx context.Context, id uuid.UUID) error {
	rfq, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(rfq)
	if err != nil {
		return fmt.Errorf("marshal rfq: %w", err)
	}
	if s.cache == nil {
		return nil
	}
	return s.cache.Set(ctx, id, payload)
}

// dispatchSubmissionNotices sends the customer confirmation, the admin email,
// and the admin webhook. Each channel is isolated: a failure is logged and the
// others still run.
func (s *RFQService) dispatchSubmissionNotices(ctx context.Context, rfq *models.RFQ) {
	if s.email != nil {
		if err := s.email.Send(ctx, rfq.Company.Email,
			"We received your request for quote "+rfq.Number.String(),
			confirmationBody(rfq)); err != nil {
			s.log.WarnContext(ctx, "confirmation email failed",
				"rfq_number", rfq.Number, "to", rfq.Company.Email, "error", err)
		}

		if s.adminEmail != "" {
			if err := s.email.Send(ctx, s.adminEmail,
				"New RFQ "+rfq.Number.String()+" from "+rfq.Company.CompanyName,
				adminBody(rfq)); err != nil {
				s.log.WarnContext(ctx, "admin email failed",
					"rfq_number", rfq.Number, "error", err)
			}
		}
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyNewRFQ(ctx, rfq); err != nil {
			s.log.WarnContext(ctx, "admin webhook failed",
				"rfq_number", rfq.Number, "error", err)
		}
	}
}

func (s *RFQService) warmCache(rfq *models.RFQ) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(rfq)
	if err != nil {
		return
	}
	go func() {
		_ = s.cache.Set(context.Background(), rfq.ID, payload)
	}()
}

func confirmationBody(rfq *models.RFQ) string {
	return fmt.Sprintf(
		"Dear %s,\n\nThank you for your request for quote. Your reference number is %s.\n"+
			"Our trade desk reviews every request within two business days.\n\n"+
			"Requested: %v, %.2f %s\n",
		rfq.Company.ContactPerson, rfq.Number,
		rfq.Product.ProductTypes, rfq.Quantity.Quantity, rfq.Quantity.Unit,
	)
}

func adminBody(rfq *models.RFQ) string {
	return fmt.Sprintf(
		"RFQ %s\nCompany: %s (%s)\nContact: %s <%s>\nProducts: %v\nQuantity: %.2f %s\n"+
			"Incoterms: %s\nPriority: %s\nSample required: %t\n",
		rfq.Number, rfq.Company.CompanyName, rfq.Company.Country,
		rfq.Company.ContactPerson, rfq.Company.Email,
		rfq.Product.ProductTypes, rfq.Quantity.Quantity, rfq.Quantity.Unit,
		rfq.Delivery.Terms, rfq.Priority, rfq.SampleRequired,
	)
}
