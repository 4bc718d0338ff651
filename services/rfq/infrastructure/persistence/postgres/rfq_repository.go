package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"github.com/ghuser/beanbridge/pkg/database"
	"github.com/ghuser/beanbridge/pkg/events"
	rfqdomain "github.com/ghuser/beanbridge/services/rfq/domain"
	domainevents "github.com/ghuser/beanbridge/services/rfq/domain/events"
	"github.com/ghuser/beanbridge/services/rfq/domain/models"
	"github.com/ghuser/beanbridge/services/rfq/domain/repositories"
)

// psql builds queries with Postgres $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const rfqColumns = `id, rfq_number, status, priority,
	product_types, grades, origins, processing_methods, certifications,
	quantity, quantity_unit, is_recurring, recurring_frequency,
	delivery_terms, delivery_date, delivery_country,
	payment_terms, payment_methods, currency,
	company_name, contact_person, email, phone, company_country, business_type,
	sample_required, additional_requirements, locale,
	internal_notes, updated_by,
	submitted_at, last_activity_at, created_at, updated_at`

// RFQRepository implements repositories.RFQRepository against PostgreSQL.
// Writes run in a transaction that also publishes the domain event through
// the Watermill outbox, so record and event never diverge.
type RFQRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewRFQRepository returns an RFQRepository backed by the given pool and
// event bus. A nil bus disables event publishing (used by tests).
func NewRFQRepository(db *database.Database, bus *events.EventBus) *RFQRepository {
	return &RFQRepository{db: db, bus: bus}
}

// Create persists a new RFQ and publishes RFQSubmittedEvent within the same
// transaction. Returns ErrDuplicateRFQNumber on a unique violation of the
// rfq_number column.
func (r *RFQRepository) Create(ctx context.Context, rfq *models.RFQ) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		query, args, err := psql.Insert("rfqs").
			Columns(
				"id", "rfq_number", "status", "priority",
				"product_types", "grades", "origins", "processing_methods", "certifications",
				"quantity", "quantity_unit", "is_recurring", "recurring_frequency",
				"delivery_terms", "delivery_date", "delivery_country",
				"payment_terms", "payment_methods", "currency",
				"company_name", "contact_person", "email", "phone", "company_country", "business_type",
				"sample_required", "additional_requirements", "locale",
				"submitted_at", "last_activity_at", "created_at", "updated_at",
			).
			Values(
				rfq.ID, rfq.Number.String(), rfq.Status, rfq.Priority,
				pq.Array(rfq.Product.ProductTypes), pq.Array(rfq.Product.Grades),
				pq.Array(rfq.Product.Origins), pq.Array(rfq.Product.ProcessingMethods),
				pq.Array(rfq.Product.Certifications),
				rfq.Quantity.Quantity, rfq.Quantity.Unit, rfq.Quantity.IsRecurringOrder, rfq.Quantity.RecurringFrequency,
				rfq.Delivery.Terms, rfq.Delivery.DeliveryDate, rfq.Delivery.Country,
				rfq.Payment.Terms, pq.Array(rfq.Payment.Methods), rfq.Payment.Currency,
				rfq.Company.CompanyName, rfq.Company.ContactPerson, rfq.Company.Email,
				rfq.Company.Phone, rfq.Company.Country, rfq.Company.BusinessType,
				rfq.SampleRequired, rfq.AdditionalRequirements, rfq.Locale,
				rfq.SubmittedAt, rfq.LastActivityAt, rfq.CreatedAt, rfq.UpdatedAt,
			).
			ToSql()
		if err != nil {
			return fmt.Errorf("build insert: %w", err)
		}

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return rfqdomain.ErrDuplicateRFQNumber
			}
			return fmt.Errorf("insert rfq: %w", err)
		}

		if r.bus != nil {
			if err := r.publishSubmitted(tx, rfq); err != nil {
				return fmt.Errorf("publish rfq submitted: %w", err)
			}
		}
		return nil
	})
}

// GetByID retrieves an RFQ by id. Returns ErrRFQNotFound if absent.
func (r *RFQRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.RFQ, error) {
	query, args, err := psql.Select(rfqColumns).From("rfqs").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rfq, err := scanRFQ(r.db.DB().QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, rfqdomain.ErrRFQNotFound
		}
		return nil, fmt.Errorf("query rfq: %w", err)
	}
	return rfq, nil
}

// List retrieves a filtered, sorted page of RFQs plus the total count.
// Filter dimensions are independent; zero values are skipped.
func (r *RFQRepository) List(ctx context.Context, filter repositories.ListFilter, opts repositories.ListOpts) ([]*models.RFQ, int, error) {
	where := filterConditions(filter)

	sortBy := opts.SortBy
	if sortBy == "" {
		sortBy = "submitted_at"
	}
	order := "DESC"
	if opts.SortOrder == "asc" {
		order = "ASC"
	}

	limit := opts.Limit
	if limit == 0 {
		limit = repositories.DefaultLimit
	}
	offset := (opts.Page - 1) * limit

	query, args, err := psql.Select(rfqColumns).
		From("rfqs").
		Where(where).
		OrderBy(sortBy + " " + order).
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list query: %w", err)
	}

	rows, err := r.db.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query rfqs: %w", err)
	}
	defer rows.Close()

	var rfqs []*models.RFQ
	for rows.Next() {
		rfq, err := scanRFQ(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan rfq: %w", err)
		}
		rfqs = append(rfqs, rfq)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate rfqs: %w", err)
	}

	countQuery, countArgs, err := psql.Select("COUNT(*)").From("rfqs").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}
	var total int
	if err := r.db.DB().QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count rfqs: %w", err)
	}

	return rfqs, total, nil
}

// UpdateStatus writes the patch and publishes RFQStatusChangedEvent within the
// same transaction. Returns ErrRFQNotFound when the id does not exist.
func (r *RFQRepository) UpdateStatus(ctx context.Context, id uuid.UUID, patch repositories.StatusPatch) (*models.RFQ, error) {
	var updated *models.RFQ
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		update := psql.Update("rfqs").
			Set("status", patch.Status).
			Set("updated_at", patch.UpdatedAt).
			Set("last_activity_at", patch.UpdatedAt).
			Where(sq.Eq{"id": id})
		if patch.InternalNotes != nil {
			update = update.Set("internal_notes", *patch.InternalNotes)
		}
		if patch.UpdatedBy != nil {
			update = update.Set("updated_by", *patch.UpdatedBy)
		}

		query, args, err := update.ToSql()
		if err != nil {
			return fmt.Errorf("build update: %w", err)
		}

		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("update rfq status: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return rfqdomain.ErrRFQNotFound
		}

		selectQuery, selectArgs, err := psql.Select(rfqColumns).From("rfqs").Where(sq.Eq{"id": id}).ToSql()
		if err != nil {
			return fmt.Errorf("build select: %w", err)
		}
		updated, err = scanRFQ(tx.QueryRowContext(ctx, selectQuery, selectArgs...))
		if err != nil {
			return fmt.Errorf("reload rfq: %w", err)
		}

		if r.bus != nil {
			if err := r.publishStatusChanged(tx, updated, patch.PreviousStatus); err != nil {
				return fmt.Errorf("publish status changed: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// ListStale returns RFQs in any of the given statuses whose last activity
// predates the cutoff.
func (r *RFQRepository) ListStale(ctx context.Context, statuses []models.Status, before time.Time) ([]*models.RFQ, error) {
	vals := make([]string, len(statuses))
	for i, s := range statuses {
		vals[i] = string(s)
	}

	query, args, err := psql.Select(rfqColumns).
		From("rfqs").
		Where(sq.Eq{"status": vals}).
		Where(sq.Lt{"last_activity_at": before}).
		OrderBy("last_activity_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build stale query: %w", err)
	}

	rows, err := r.db.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query stale rfqs: %w", err)
	}
	defer rows.Close()

	var rfqs []*models.RFQ
	for rows.Next() {
		rfq, err := scanRFQ(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stale rfq: %w", err)
		}
		rfqs = append(rfqs, rfq)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stale rfqs: %w", err)
	}
	return rfqs, nil
}

// filterConditions translates the filter bag into squirrel conditions.
// Each dimension contributes one AND clause.
func filterConditions(filter repositories.ListFilter) sq.And {
	conds := sq.And{}
	if len(filter.Statuses) > 0 {
		vals := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			vals[i] = string(s)
		}
		conds = append(conds, sq.Eq{"status": vals})
	}
	if len(filter.Priorities) > 0 {
		vals := make([]string, len(filter.Priorities))
		for i, p := range filter.Priorities {
			vals[i] = string(p)
		}
		conds = append(conds, sq.Eq{"priority": vals})
	}
	if filter.CompanyName != "" {
		conds = append(conds, sq.ILike{"company_name": "%" + filter.CompanyName + "%"})
	}
	if filter.SubmittedFrom != nil {
		conds = append(conds, sq.GtOrEq{"submitted_at": *filter.SubmittedFrom})
	}
	if filter.SubmittedTo != nil {
		conds = append(conds, sq.LtOrEq{"submitted_at": *filter.SubmittedTo})
	}
	if len(conds) == 0 {
		// squirrel renders an empty And as "(1=1)" only with a member present
		conds = append(conds, sq.Expr("TRUE"))
	}
	return conds
}

func (r *RFQRepository) publishSubmitted(tx *sql.Tx, rfq *models.RFQ) error {
	event := domainevents.RFQSubmittedEvent{
		EventID:     uuid.New(),
		Version:     1,
		RFQID:       rfq.ID,
		RFQNumber:   rfq.Number.String(),
		CompanyName: rfq.Company.CompanyName,
		Email:       rfq.Company.Email,
		Priority:    string(rfq.Priority),
		OccurredAt:  rfq.CreatedAt,
	}
	return r.publish(tx, domainevents.TopicRFQSubmitted, event.EventID, event)
}

func (r *RFQRepository) publishStatusChanged(tx *sql.Tx, rfq *models.RFQ, previous models.Status) error {
	event := domainevents.RFQStatusChangedEvent{
		EventID:        uuid.New(),
		Version:        1,
		RFQID:          rfq.ID,
		RFQNumber:      rfq.Number.String(),
		PreviousStatus: string(previous),
		NewStatus:      string(rfq.Status),
		Significant:    models.IsSignificantTransition(previous, rfq.Status),
		OccurredAt:     rfq.UpdatedAt,
	}
	return r.publish(tx, domainevents.TopicRFQStatusChanged, event.EventID, event)
}

func (r *RFQRepository) publish(tx *sql.Tx, topic string, eventID uuid.UUID, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_id", eventID.String())
	msg.Metadata.Set("event_version", "1")
	p, err := r.bus.NewTxPublisher(tx)
	if err != nil {
		return fmt.Errorf("create publisher: %w", err)
	}
	return p.Publish(topic, msg)
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanRFQ maps one rfqs row to the domain aggregate.
func scanRFQ(row rowScanner) (*models.RFQ, error) {
	var (
		rfq          models.RFQ
		number       string
		status       string
		priority     string
		deliveryDate sql.NullTime
		productTypes pq.StringArray
		grades       pq.StringArray
		origins      pq.StringArray
		processing   pq.StringArray
		certs        pq.StringArray
		payMethods   pq.StringArray
	)
	err := row.Scan(
		&rfq.ID, &number, &status, &priority,
		&productTypes, &grades, &origins, &processing, &certs,
		&rfq.Quantity.Quantity, &rfq.Quantity.Unit, &rfq.Quantity.IsRecurringOrder, &rfq.Quantity.RecurringFrequency,
		&rfq.Delivery.Terms, &deliveryDate, &rfq.Delivery.Country,
		&rfq.Payment.Terms, &payMethods, &rfq.Payment.Currency,
		&rfq.Company.CompanyName, &rfq.Company.ContactPerson, &rfq.Company.Email,
		&rfq.Company.Phone, &rfq.Company.Country, &rfq.Company.BusinessType,
		&rfq.SampleRequired, &rfq.AdditionalRequirements, &rfq.Locale,
		&rfq.InternalNotes, &rfq.UpdatedBy,
		&rfq.SubmittedAt, &rfq.LastActivityAt, &rfq.CreatedAt, &rfq.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	rfq.Number = models.RFQNumber(number)
	rfq.Status = models.Status(status)
	rfq.Priority = models.Priority(priority)
	if deliveryDate.Valid {
		t := deliveryDate.Time
		rfq.Delivery.DeliveryDate = &t
	}
	rfq.Product = models.ProductRequirements{
		ProductTypes:      productTypes,
		Grades:            grades,
		Origins:           origins,
		ProcessingMethods: processing,
		Certifications:    certs,
	}
	rfq.Payment.Methods = payMethods
	return &rfq, nil
}
