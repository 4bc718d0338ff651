package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ghuser/beanbridge/pkg/errhttp"
	"github.com/ghuser/beanbridge/pkg/httpx"
	appsvcs "github.com/ghuser/beanbridge/services/rfq/application/services"
	rfqdomain "github.com/ghuser/beanbridge/services/rfq/domain"
	"github.com/ghuser/beanbridge/services/rfq/domain/models"
	"github.com/ghuser/beanbridge/services/rfq/domain/repositories"
)

// ListRFQsResponse is the paginated list payload.
type ListRFQsResponse struct {
	Data       []RFQResponse `json:"data"`
	Pagination Pagination    `json:"pagination"`
} // @name ListRFQsResponse

// Pagination describes the page window of a list response.
type Pagination struct {
	Page       int `json:"page"        example:"1"`
	Limit      int `json:"limit"       example:"20"`
	Total      int `json:"total"       example:"42"`
	TotalPages int `json:"total_pages" example:"3"`
} // @name Pagination

// ListRFQsHandler handles GET /api/admin/rfq requests.
type ListRFQsHandler struct {
	svc *appsvcs.Services
}

// NewListRFQsHandler returns a ListRFQsHandler backed by the given services.
func NewListRFQsHandler(svc *appsvcs.Services) *ListRFQsHandler {
	return &ListRFQsHandler{svc: svc}
}

// Execute lists RFQs with filtering, sorting, and pagination.
//
//	@Summary		List RFQs
//	@Description	Returns a filtered, sorted page of RFQs
//	@Tags			rfq
//	@Produce		json
//	@Param			status		query		string	false	"comma-separated statuses"
//	@Param			priority	query		string	false	"comma-separated priorities"
//	@Param			company		query		string	false	"company name substring"
//	@Param			from		query		string	false	"submitted-at lower bound (RFC 3339 or YYYY-MM-DD)"
//	@Param			to			query		string	false	"submitted-at upper bound (RFC 3339 or YYYY-MM-DD)"
//	@Param			page		query		int		false	"page number, starting at 1"
//	@Param			limit		query		int		false	"page size, 1..100 (default 20)"
//	@Param			sort_by		query		string	false	"submitted_at | last_activity_at | company_name | status | priority"
//	@Param			sort_order	query		string	false	"asc | desc (default desc)"
//	@Success		200			{object}	ListRFQsResponse
//	@Failure		400			{object}	ErrorResponse
//	@Router			/api/admin/rfq [get]
func (h *ListRFQsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	filter, opts, err := parseListQuery(r)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	rfqs, total, err := h.svc.RFQ.List(r.Context(), filter, opts)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	data := make([]RFQResponse, 0, len(rfqs))
	for _, rfq := range rfqs {
		data = append(data, toRFQResponse(rfq))
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit

	httpx.JSON(w, http.StatusOK, ListRFQsResponse{
		Data: data,
		Pagination: Pagination{
			Page:       opts.Page,
			Limit:      opts.Limit,
			Total:      total,
			TotalPages: totalPages,
		},
	})
}

func parseListQuery(r *http.Request) (repositories.ListFilter, repositories.ListOpts, error) {
	var filter repositories.ListFilter

	q := r.URL.Query()

	for _, raw := range splitCSV(q.Get("status")) {
		status, err := models.ParseStatus(raw)
		if err != nil {
			return filter, repositories.ListOpts{}, fmt.Errorf("%w: %w", rfqdomain.ErrInvalidListQuery, err)
		}
		filter.Statuses = append(filter.Statuses, status)
	}
	for _, raw := range splitCSV(q.Get("priority")) {
		priority := models.Priority(strings.ToUpper(raw))
		if !priority.Valid() {
			return filter, repositories.ListOpts{}, fmt.Errorf("%w: unknown priority %q", rfqdomain.ErrInvalidListQuery, raw)
		}
		filter.Priorities = append(filter.Priorities, priority)
	}
	filter.CompanyName = strings.TrimSpace(q.Get("company"))

	var err error
	if filter.SubmittedFrom, err = parseTimeParam(q.Get("from")); err != nil {
		return filter, repositories.ListOpts{}, err
	}
	if filter.SubmittedTo, err = parseTimeParam(q.Get("to")); err != nil {
		return filter, repositories.ListOpts{}, err
	}

	opts := repositories.ListOpts{
		Page:      1,
		Limit:     repositories.DefaultLimit,
		SortBy:    "submitted_at",
		SortOrder: "desc",
	}
	if err := parseIntParam(q.Get("page"), &opts.Page); err != nil {
		return filter, opts, err
	}
	if err := parseIntParam(q.Get("limit"), &opts.Limit); err != nil {
		return filter, opts, err
	}
	if v := q.Get("sort_by"); v != "" {
		opts.SortBy = v
	}
	if v := q.Get("sort_order"); v != "" {
		opts.SortOrder = strings.ToLower(v)
	}
	return filter, opts, nil
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseTimeParam(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%w: invalid time %q", rfqdomain.ErrInvalidListQuery, s)
}

func parseIntParam(s string, dst *int) error {
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("%w: invalid number %q", rfqdomain.ErrInvalidListQuery, s)
	}
	*dst = n
	return nil
}
