package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/ghuser/beanbridge/pkg/errhttp"
	"github.com/ghuser/beanbridge/pkg/httpx"
	appsvcs "github.com/ghuser/beanbridge/services/content/application/services"
	"github.com/ghuser/beanbridge/services/content/domain/models"
)

// RelatedContentResponse is the payload for GET /api/content/related.
type RelatedContentResponse struct {
	Data []models.Summary `json:"data"`
} // @name RelatedContentResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"slug is required"`
} // @name ContentErrorResponse

// GetRelatedHandler handles GET /api/content/related requests.
type GetRelatedHandler struct {
	svc *appsvcs.Services
}

// NewGetRelatedHandler returns a GetRelatedHandler backed by the given services.
func NewGetRelatedHandler(svc *appsvcs.Services) *GetRelatedHandler {
	return &GetRelatedHandler{svc: svc}
}

// Execute returns content related to the current page.
//
//	@Summary		Related content
//	@Description	Ranks published content against the current page's tags and category
//	@Tags			content
//	@Produce		json
//	@Param			slug		query		string	true	"current page slug"
//	@Param			locale		query		string	true	"page locale"
//	@Param			tags		query		string	false	"comma-separated tags"
//	@Param			category	query		string	false	"page category"
//	@Param			limit		query		int		false	"max results (default 3)"
//	@Success		200			{object}	RelatedContentResponse
//	@Failure		400			{object}	ErrorResponse
//	@Router			/api/content/related [get]
func (h *GetRelatedHandler) Execute(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	query := appsvcs.RelatedQuery{
		Slug:     q.Get("slug"),
		Locale:   q.Get("locale"),
		Category: q.Get("category"),
	}
	for _, t := range strings.Split(q.Get("tags"), ",") {
		if t = strings.TrimSpace(t); t != "" {
			query.Tags = append(query.Tags, t)
		}
	}
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			httpx.JSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
			return
		}
		query.Limit = n
	}

	summaries, err := h.svc.Content.GetRelated(r.Context(), query)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, RelatedContentResponse{Data: summaries})
}
