package handlers

import (
	"net/http"
	"time"

	"github.com/ghuser/beanbridge/pkg/errhttp"
	"github.com/ghuser/beanbridge/pkg/httpx"
	pkgvalidator "github.com/ghuser/beanbridge/pkg/validator"
	appsvcs "github.com/ghuser/beanbridge/services/rfq/application/services"
	"github.com/ghuser/beanbridge/services/rfq/domain/models"
)

// SubmitRFQRequest is the request body for POST /api/rfq.
//
// Required-field and business-rule checks (quantity > 0, email shape) live in
// the domain validator so the error messages stay consistent across entry
// points; only enum-shaped fields are constrained here.
type SubmitRFQRequest struct {
	ProductTypes      []string `json:"product_types"      example:"green_beans"`
	Grades            []string `json:"grades"             example:"AA"`
	Origins           []string `json:"origins"            example:"Ethiopia"`
	ProcessingMethods []string `json:"processing_methods" example:"washed"`
	Certifications    []string `json:"certifications"     example:"organic"`

	Quantity           float64 `json:"quantity"            example:"500"`
	QuantityUnit       string  `json:"quantity_unit"       example:"kg"`
	IsRecurringOrder   bool    `json:"is_recurring_order"`
	RecurringFrequency string  `json:"recurring_frequency" example:"monthly"`

	DeliveryTerms string     `json:"delivery_terms" example:"FOB"`
	DeliveryDate  *time.Time `json:"delivery_date"`
	Country       string     `json:"country"        example:"Germany"`

	PaymentTerms   string   `json:"payment_terms"   example:"net30"`
	PaymentMethods []string `json:"payment_methods" example:"wire_transfer"`
	Currency       string   `json:"currency"        validate:"omitempty,len=3" example:"USD"`

	CompanyName   string `json:"company_name"   example:"Roast & Co GmbH"`
	ContactPerson string `json:"contact_person" example:"Jane Doe"`
	Email         string `json:"email"          example:"jane@roastco.example"`
	Phone         string `json:"phone"          example:"+49 30 1234567"`
	BusinessType  string `json:"business_type"  example:"roaster"`

	SampleRequired         bool   `json:"sample_required"`
	AdditionalRequirements string `json:"additional_requirements"`
	Urgency                string `json:"urgency" validate:"omitempty,oneof=low medium high" example:"medium"`
	Locale                 string `json:"locale"  validate:"omitempty,bcp47_language_tag" example:"en"`
} // @name SubmitRFQRequest

// SubmitRFQResponse is returned on successful submission. The buyer quotes
// rfq_number in later correspondence, so it leads the payload.
type SubmitRFQResponse struct {
	RFQNumber   string    `json:"rfq_number" example:"RFQ-20240315-143005"`
	ID          string    `json:"id"         example:"123e4567-e89b-12d3-a456-426614174000"`
	Status      string    `json:"status"     example:"submitted"`
	Priority    string    `json:"priority"   example:"MEDIUM"`
	SubmittedAt time.Time `json:"submitted_at"`
} // @name SubmitRFQResponse

// PostRFQHandler handles POST /api/rfq requests.
type PostRFQHandler struct {
	svc *appsvcs.Services
}

// NewPostRFQHandler returns a PostRFQHandler backed by the given services.
func NewPostRFQHandler(svc *appsvcs.Services) *PostRFQHandler {
	return &PostRFQHandler{svc: svc}
}

// Execute submits a new request for quote.
//
//	@Summary		Submit RFQ
//	@Description	Submits a buyer request for quote and returns its reference number
//	@Tags			rfq
//	@Accept			json
//	@Produce		json
//	@Param			request	body		SubmitRFQRequest	true	"RFQ submission"
//	@Success		201		{object}	SubmitRFQResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/api/rfq [post]
func (h *PostRFQHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[SubmitRFQRequest](w, r)
	if !ok {
		return
	}

	rfq, err := h.svc.RFQ.Submit(r.Context(), &models.Submission{
		ProductTypes:           req.ProductTypes,
		Grades:                 req.Grades,
		Origins:                req.Origins,
		ProcessingMethods:      req.ProcessingMethods,
		Certifications:         req.Certifications,
		Quantity:               req.Quantity,
		QuantityUnit:           req.QuantityUnit,
		IsRecurringOrder:       req.IsRecurringOrder,
		RecurringFrequency:     req.RecurringFrequency,
		DeliveryTerms:          req.DeliveryTerms,
		DeliveryDate:           req.DeliveryDate,
		Country:                req.Country,
		PaymentTerms:           req.PaymentTerms,
		PaymentMethods:         req.PaymentMethods,
		Currency:               req.Currency,
		CompanyName:            req.CompanyName,
		ContactPerson:          req.ContactPerson,
		Email:                  req.Email,
		Phone:                  req.Phone,
		BusinessType:           req.BusinessType,
		SampleRequired:         req.SampleRequired,
		AdditionalRequirements: req.AdditionalRequirements,
		Urgency:                req.Urgency,
		Locale:                 req.Locale,
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, SubmitRFQResponse{
		RFQNumber:   rfq.Number.String(),
		ID:          rfq.ID.String(),
		Status:      string(rfq.Status),
		Priority:    string(rfq.Priority),
		SubmittedAt: rfq.SubmittedAt,
	})
}
