package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/beanbridge/pkg/auth"
	"github.com/ghuser/beanbridge/pkg/errhttp"
	"github.com/ghuser/beanbridge/pkg/httpx"
	pkgvalidator "github.com/ghuser/beanbridge/pkg/validator"
	appsvcs "github.com/ghuser/beanbridge/services/rfq/application/services"
)

// UpdateRFQStatusRequest is the request body for PATCH /api/admin/rfq/{id}/status.
type UpdateRFQStatusRequest struct {
	Status        string  `json:"status" validate:"required" example:"under_review"`
	InternalNotes *string `json:"internal_notes,omitempty"`
	UpdatedBy     *string `json:"updated_by,omitempty" example:"trade-desk"`
} // @name UpdateRFQStatusRequest

// PatchRFQStatusHandler handles PATCH /api/admin/rfq/{id}/status requests.
type PatchRFQStatusHandler struct {
	svc *appsvcs.Services
}

// NewPatchRFQStatusHandler returns a PatchRFQStatusHandler backed by the given services.
func NewPatchRFQStatusHandler(svc *appsvcs.Services) *PatchRFQStatusHandler {
	return &PatchRFQStatusHandler{svc: svc}
}

// Execute transitions an RFQ to a new status.
//
//	@Summary		Update RFQ status
//	@Description	Moves the RFQ to a new status and records who did it
//	@Tags			rfq
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"RFQ id"
//	@Param			request	body		UpdateRFQStatusRequest	true	"status update"
//	@Success		200		{object}	RFQResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/api/admin/rfq/{id}/status [patch]
func (h *PatchRFQStatusHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.JSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid rfq id"})
		return
	}

	req, ok := pkgvalidator.ValidateRequest[UpdateRFQStatusRequest](w, r)
	if !ok {
		return
	}

	updatedBy := req.UpdatedBy
	if admin, err := auth.AdminFromCtx(r.Context()); err == nil {
		updatedBy = &admin
	}

	rfq, err := h.svc.RFQ.UpdateStatus(r.Context(), id, req.Status, req.InternalNotes, updatedBy)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toRFQResponse(rfq))
}
