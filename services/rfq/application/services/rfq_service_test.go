package services

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/beanbridge/pkg/logger"
	rfqdomain "github.com/ghuser/beanbridge/services/rfq/domain"
	"github.com/ghuser/beanbridge/services/rfq/domain/models"
	"github.com/ghuser/beanbridge/services/rfq/domain/repositories"
)

// fakeRepo is an in-memory RFQRepository.
type fakeRepo struct {
	mu         sync.Mutex
	byID       map[uuid.UUID]*models.RFQ
	createErrs []error // popped per Create call; nil means success
	listCalls  int
	patches    []repositories.StatusPatch
	updateErr  error
	stale      []*models.RFQ
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: map[uuid.UUID]*models.RFQ{}}
}

func (f *fakeRepo) Create(_ context.Context, rfq *models.RFQ) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.createErrs) > 0 {
		err := f.createErrs[0]
		f.createErrs = f.createErrs[1:]
		if err != nil {
			return err
		}
	}
	cp := *rfq
	f.byID[rfq.ID] = &cp
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*models.RFQ, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rfq, ok := f.byID[id]
	if !ok {
		return nil, rfqdomain.ErrRFQNotFound
	}
	cp := *rfq
	return &cp, nil
}

func (f *fakeRepo) List(_ context.Context, _ repositories.ListFilter, _ repositories.ListOpts) ([]*models.RFQ, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	out := make([]*models.RFQ, 0, len(f.byID))
	for _, rfq := range f.byID {
		cp := *rfq
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id uuid.UUID, patch repositories.StatusPatch) (*models.RFQ, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	rfq, ok := f.byID[id]
	if !ok {
		return nil, rfqdomain.ErrRFQNotFound
	}
	f.patches = append(f.patches, patch)
	rfq.Status = patch.Status
	if patch.InternalNotes != nil {
		rfq.InternalNotes = *patch.InternalNotes
	}
	if patch.UpdatedBy != nil {
		rfq.UpdatedBy = *patch.UpdatedBy
	}
	rfq.LastActivityAt = patch.UpdatedAt
	rfq.UpdatedAt = patch.UpdatedAt
	cp := *rfq
	return &cp, nil
}

func (f *fakeRepo) ListStale(_ context.Context, _ []models.Status, _ time.Time) ([]*models.RFQ, error) {
	return f.stale, nil
}

// fakeEmail records sent mail and can fail on demand.
type fakeEmail struct {
	mu   sync.Mutex
	sent []string // "to: subject"
	err  error
}

func (f *fakeEmail) Send(_ context.Context, to, subject, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, to+": "+subject)
	return nil
}

// fakeNotifier records admin notifications and can fail on demand.
type fakeNotifier struct {
	mu            sync.Mutex
	newRFQs       []string
	statusChanges []string
	err           error
}

func (f *fakeNotifier) NotifyNewRFQ(_ context.Context, rfq *models.RFQ) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.newRFQs = append(f.newRFQs, rfq.Number.String())
	return nil
}

func (f *fakeNotifier) NotifyStatusChange(_ context.Context, rfq *models.RFQ, previous, next models.Status) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.statusChanges = append(f.statusChanges, string(previous)+">"+string(next))
	return nil
}

// fakeScheduler records expiry scheduling requests.
type fakeScheduler struct {
	scheduled []time.Time
	err       error
}

func (f *fakeScheduler) ScheduleExpiry(_ context.Context, _ uuid.UUID, _ string, deadline time.Time) error {
	if f.err != nil {
		return f.err
	}
	f.scheduled = append(f.scheduled, deadline)
	return nil
}

func testLogger() logger.Logger {
	return logger.FromSlog(slog.New(slog.DiscardHandler))
}

func testService(repo *fakeRepo, email *fakeEmail, notifier *fakeNotifier, scheduler *fakeScheduler) *RFQService {
	svc := NewRFQService(repo, nil, email, notifier, scheduler, testLogger(), "sales@beanbridge.example", 30*24*time.Hour)
	svc.now = func() time.Time { return time.Date(2024, 3, 15, 14, 30, 5, 0, time.UTC) }
	return svc
}

func testSubmission() *models.Submission {
	return &models.Submission{
		ProductTypes:  []string{"green_beans"},
		Quantity:      500,
		QuantityUnit:  "kg",
		DeliveryTerms: "FOB",
		Country:       "Germany",
		CompanyName:   "Roast & Co GmbH",
		ContactPerson: "Jane Doe",
		Email:         "jane@roastco.example",
		Phone:         "+49 30 1234567",
		Urgency:       "medium",
	}
}

func TestSubmit(t *testing.T) {
	t.Run("persists and dispatches all channels", func(t *testing.T) {
		repo := newFakeRepo()
		email := &fakeEmail{}
		notifier := &fakeNotifier{}
		scheduler := &fakeScheduler{}
		svc := testService(repo, email, notifier, scheduler)

		rfq, err := svc.Submit(context.Background(), testSubmission())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rfq.Number.String() != "RFQ-20240315-143005" {
			t.Errorf("Number = %q", rfq.Number)
		}
		if rfq.Status != models.StatusSubmitted {
			t.Errorf("Status = %q", rfq.Status)
		}
		if len(repo.byID) != 1 {
			t.Errorf("stored %d rfqs, want 1", len(repo.byID))
		}
		if len(email.sent) != 2 {
			t.Errorf("sent %d emails, want customer + admin", len(email.sent))
		}
		if len(notifier.newRFQs) != 1 {
			t.Errorf("webhook fired %d times, want 1", len(notifier.newRFQs))
		}
		wantDeadline := rfq.SubmittedAt.Add(30 * 24 * time.Hour)
		if len(scheduler.scheduled) != 1 || !scheduler.scheduled[0].Equal(wantDeadline) {
			t.Errorf("scheduled = %v, want one entry at %v", scheduler.scheduled, wantDeadline)
		}
	})

	t.Run("validation failure touches nothing", func(t *testing.T) {
		repo := newFakeRepo()
		email := &fakeEmail{}
		svc := testService(repo, email, &fakeNotifier{}, &fakeScheduler{})

		sub := testSubmission()
		sub.Quantity = 0
		if _, err := svc.Submit(context.Background(), sub); !errors.Is(err, rfqdomain.ErrInvalidQuantity) {
			t.Fatalf("error = %v, want ErrInvalidQuantity", err)
		}
		if len(repo.byID) != 0 || len(email.sent) != 0 {
			t.Error("nothing may be persisted or dispatched for an invalid submission")
		}
	})

	t.Run("number collision retries once with bumped second", func(t *testing.T) {
		repo := newFakeRepo()
		repo.createErrs = []error{rfqdomain.ErrDuplicateRFQNumber, nil}
		svc := testService(repo, &fakeEmail{}, &fakeNotifier{}, &fakeScheduler{})

		rfq, err := svc.Submit(context.Background(), testSubmission())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := rfq.Number.String(); got != "RFQ-20240315-143006" {
			t.Fatalf("retried Number = %q, want bumped second", got)
		}
	})

	t.Run("persistent store failure wraps ErrSubmitFailed", func(t *testing.T) {
		repo := newFakeRepo()
		repo.createErrs = []error{rfqdomain.ErrDuplicateRFQNumber, rfqdomain.ErrDuplicateRFQNumber}
		svc := testService(repo, &fakeEmail{}, &fakeNotifier{}, &fakeScheduler{})

		if _, err := svc.Submit(context.Background(), testSubmission()); !errors.Is(err, rfqdomain.ErrSubmitFailed) {
			t.Fatalf("error = %v, want ErrSubmitFailed", err)
		}
	})

	t.Run("notification failures are swallowed", func(t *testing.T) {
		repo := newFakeRepo()
		email := &fakeEmail{err: errors.New("smtp down")}
		notifier := &fakeNotifier{err: errors.New("webhook down")}
		scheduler := &fakeScheduler{err: errors.New("temporal down")}
		svc := testService(repo, email, notifier, scheduler)

		rfq, err := svc.Submit(context.Background(), testSubmission())
		if err != nil {
			t.Fatalf("side-channel failures must not fail submission: %v", err)
		}
		if _, ok := repo.byID[rfq.ID]; !ok {
			t.Error("rfq must still be persisted")
		}
	})
}

func TestGetByID(t *testing.T) {
	repo := newFakeRepo()
	svc := testService(repo, &fakeEmail{}, &fakeNotifier{}, &fakeScheduler{})

	rfq, err := svc.Submit(context.Background(), testSubmission())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := svc.GetByID(context.Background(), rfq.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Number != rfq.Number {
		t.Errorf("Number = %q, want %q", got.Number, rfq.Number)
	}

	if _, err := svc.GetByID(context.Background(), uuid.New()); !errors.Is(err, rfqdomain.ErrRFQNotFound) {
		t.Fatalf("error = %v, want ErrRFQNotFound", err)
	}
}

func TestList(t *testing.T) {
	tests := []struct {
		name string
		opts repositories.ListOpts
		ok   bool
	}{
		{"defaults are valid", repositories.ListOpts{Page: 1, Limit: 20}, true},
		{"max limit", repositories.ListOpts{Page: 1, Limit: 100}, true},
		{"page zero", repositories.ListOpts{Page: 0, Limit: 20}, false},
		{"negative page", repositories.ListOpts{Page: -1, Limit: 20}, false},
		{"limit zero", repositories.ListOpts{Page: 1, Limit: 0}, false},
		{"limit over max", repositories.ListOpts{Page: 1, Limit: 101}, false},
		{"unknown sort field", repositories.ListOpts{Page: 1, Limit: 20, SortBy: "email"}, false},
		{"valid sort field", repositories.ListOpts{Page: 1, Limit: 20, SortBy: "priority", SortOrder: "asc"}, true},
		{"bad sort order", repositories.ListOpts{Page: 1, Limit: 20, SortOrder: "sideways"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo()
			svc := testService(repo, &fakeEmail{}, &fakeNotifier{}, &fakeScheduler{})

			_, _, err := svc.List(context.Background(), repositories.ListFilter{}, tt.opts)
			if tt.ok {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, rfqdomain.ErrInvalidListQuery) {
				t.Fatalf("error = %v, want ErrInvalidListQuery", err)
			}
			if repo.listCalls != 0 {
				t.Error("invalid query parameters must fail before the store is queried")
			}
		})
	}
}

func TestUpdateStatus(t *testing.T) {
	submit := func(t *testing.T, svc *RFQService) *models.RFQ {
		t.Helper()
		rfq, err := svc.Submit(context.Background(), testSubmission())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return rfq
	}

	t.Run("significant transition notifies", func(t *testing.T) {
		repo := newFakeRepo()
		notifier := &fakeNotifier{}
		svc := testService(repo, &fakeEmail{}, notifier, &fakeScheduler{})
		rfq := submit(t, svc)

		updated, err := svc.UpdateStatus(context.Background(), rfq.ID, "under_review", nil, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.Status != models.StatusUnderReview {
			t.Errorf("Status = %q", updated.Status)
		}
		if len(notifier.statusChanges) != 1 || notifier.statusChanges[0] != "submitted>under_review" {
			t.Errorf("statusChanges = %v", notifier.statusChanges)
		}
	})

	t.Run("non-significant transition stays silent", func(t *testing.T) {
		repo := newFakeRepo()
		notifier := &fakeNotifier{}
		svc := testService(repo, &fakeEmail{}, notifier, &fakeScheduler{})
		rfq := submit(t, svc)

		// submitted → quoted skips review and is not on the allow-list.
		if _, err := svc.UpdateStatus(context.Background(), rfq.ID, "quoted", nil, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(notifier.statusChanges) != 0 {
			t.Errorf("statusChanges = %v, want none", notifier.statusChanges)
		}
	})

	t.Run("notification failure does not fail the update", func(t *testing.T) {
		repo := newFakeRepo()
		notifier := &fakeNotifier{err: errors.New("webhook down")}
		svc := testService(repo, &fakeEmail{}, notifier, &fakeScheduler{})
		rfq := submit(t, svc)

		updated, err := svc.UpdateStatus(context.Background(), rfq.ID, "under_review", nil, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.Status != models.StatusUnderReview {
			t.Error("update must persist despite the failed notification")
		}
	})

	t.Run("invalid status", func(t *testing.T) {
		repo := newFakeRepo()
		svc := testService(repo, &fakeEmail{}, &fakeNotifier{}, &fakeScheduler{})
		rfq := submit(t, svc)

		if _, err := svc.UpdateStatus(context.Background(), rfq.ID, "PENDING", nil, nil); !errors.Is(err, rfqdomain.ErrInvalidStatus) {
			t.Fatalf("error = %v, want ErrInvalidStatus", err)
		}
		if len(repo.patches) != 0 {
			t.Error("no patch may be written for an invalid status")
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		svc := testService(newFakeRepo(), &fakeEmail{}, &fakeNotifier{}, &fakeScheduler{})
		if _, err := svc.UpdateStatus(context.Background(), uuid.New(), "under_review", nil, nil); !errors.Is(err, rfqdomain.ErrRFQNotFound) {
			t.Fatalf("error = %v, want ErrRFQNotFound", err)
		}
	})

	t.Run("records notes and updater", func(t *testing.T) {
		repo := newFakeRepo()
		svc := testService(repo, &fakeEmail{}, &fakeNotifier{}, &fakeScheduler{})
		rfq := submit(t, svc)

		notes := "asked for samples"
		by := "trade-desk"
		updated, err := svc.UpdateStatus(context.Background(), rfq.ID, "under_review", &notes, &by)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.InternalNotes != notes || updated.UpdatedBy != by {
			t.Errorf("notes/updater = %q/%q", updated.InternalNotes, updated.UpdatedBy)
		}
	})
}

func TestExpireIfUnattended(t *testing.T) {
	tests := []struct {
		status      models.Status
		wantExpired bool
	}{
		{models.StatusSubmitted, true},
		{models.StatusUnderReview, true},
		{models.StatusQuoted, false},
		{models.StatusAccepted, false},
		{models.StatusRejected, false},
		{models.StatusExpired, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			repo := newFakeRepo()
			svc := testService(repo, &fakeEmail{}, &fakeNotifier{}, &fakeScheduler{})
			rfq, err := svc.Submit(context.Background(), testSubmission())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			repo.byID[rfq.ID].Status = tt.status

			if err := svc.ExpireIfUnattended(context.Background(), rfq.ID); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			got := repo.byID[rfq.ID].Status
			if tt.wantExpired && got != models.StatusExpired {
				t.Fatalf("status = %q, want expired", got)
			}
			if !tt.wantExpired && got != tt.status {
				t.Fatalf("status = %q, want untouched %q", got, tt.status)
			}
		})
	}

	t.Run("missing rfq is a no-op", func(t *testing.T) {
		svc := testService(newFakeRepo(), &fakeEmail{}, &fakeNotifier{}, &fakeScheduler{})
		if err := svc.ExpireIfUnattended(context.Background(), uuid.New()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestExpireStale(t *testing.T) {
	repo := newFakeRepo()
	svc := testService(repo, &fakeEmail{}, &fakeNotifier{}, &fakeScheduler{})

	a, _ := svc.Submit(context.Background(), testSubmission())
	b, _ := svc.Submit(context.Background(), testSubmission())
	repo.byID[b.ID].Status = models.StatusUnderReview
	repo.stale = []*models.RFQ{repo.byID[a.ID], repo.byID[b.ID]}

	n, err := svc.ExpireStale(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Fatalf("expired count = %d, want 2", n)
	}
	if repo.byID[a.ID].Status != models.StatusExpired {
		t.Error("stale submitted rfq must expire")
	}
	if repo.byID[b.ID].Status != models.StatusExpired {
		t.Error("stale under_review rfq must expire")
	}
}
