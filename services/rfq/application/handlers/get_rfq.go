package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/beanbridge/pkg/errhttp"
	"github.com/ghuser/beanbridge/pkg/httpx"
	appsvcs "github.com/ghuser/beanbridge/services/rfq/application/services"
)

// GetRFQHandler handles GET /api/admin/rfq/{id} requests.
type GetRFQHandler struct {
	svc *appsvcs.Services
}

// NewGetRFQHandler returns a GetRFQHandler backed by the given services.
func NewGetRFQHandler(svc *appsvcs.Services) *GetRFQHandler {
	return &GetRFQHandler{svc: svc}
}

// Execute fetches a single RFQ by id.
//
//	@Summary		Get RFQ
//	@Description	Returns the full RFQ record
//	@Tags			rfq
//	@Produce		json
//	@Param			id	path		string	true	"RFQ id"
//	@Success		200	{object}	RFQResponse
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/api/admin/rfq/{id} [get]
func (h *GetRFQHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.JSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid rfq id"})
		return
	}

	rfq, err := h.svc.RFQ.GetByID(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toRFQResponse(rfq))
}
