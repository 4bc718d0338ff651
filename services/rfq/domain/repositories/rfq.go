package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/beanbridge/services/rfq/domain/models"
)

// List query bounds and defaults.
const (
	MinPage      = 1
	MinLimit     = 1
	MaxLimit     = 100
	DefaultLimit = 20
)

// SortFields is the whitelist of sortable columns for List queries.
var SortFields = map[string]struct{}{
	"submitted_at":     {},
	"last_activity_at": {},
	"company_name":     {},
	"status":           {},
	"priority":         {},
}

// ListFilter narrows a List query. Zero-valued dimensions are ignored;
// each dimension is validated independently.
type ListFilter struct {
	Statuses      []models.Status
	Priorities    []models.Priority
	CompanyName   string // case-insensitive substring match
	SubmittedFrom *time.Time
	SubmittedTo   *time.Time
}

// ListOpts carries pagination and ordering for List queries.
type ListOpts struct {
	Page      int
	Limit     int
	SortBy    string // must be in SortFields; defaults to submitted_at
	SortOrder string // "asc" or "desc"; defaults to desc
}

// StatusPatch is the set of fields writable by the status-update operation.
type StatusPatch struct {
	Status         models.Status
	PreviousStatus models.Status // for the transactional status-changed event
	InternalNotes  *string
	UpdatedBy      *string
	UpdatedAt      time.Time
}

// RFQRepository is the persistence interface for the RFQ aggregate.
// The domain layer owns this interface; infrastructure implements it.
type RFQRepository interface {
	// Create persists a new RFQ. Returns ErrDuplicateRFQNumber when the
	// generated number collides with an existing row.
	Create(ctx context.Context, rfq *models.RFQ) error

	// GetByID retrieves an RFQ. Returns ErrRFQNotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*models.RFQ, error)

	// List retrieves a filtered, sorted page of RFQs plus the total count
	// (ignoring pagination). Bounds are validated by the caller.
	List(ctx context.Context, filter ListFilter, opts ListOpts) ([]*models.RFQ, int, error)

	// UpdateStatus writes the patch and returns the updated record.
	// Returns ErrRFQNotFound if the id does not exist.
	UpdateStatus(ctx context.Context, id uuid.UUID, patch StatusPatch) (*models.RFQ, error)

	// ListStale returns RFQs in any of the given statuses whose last activity
	// predates the cutoff. Used by the expiry sweep.
	ListStale(ctx context.Context, statuses []models.Status, before time.Time) ([]*models.RFQ, error)
}
