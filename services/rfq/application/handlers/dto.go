package handlers

import (
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/beanbridge/services/rfq/domain/models"
)

// RFQResponse is the full RFQ representation returned by the read and write
// endpoints. Field grouping mirrors the submission form sections.
type RFQResponse struct {
	ID        uuid.UUID `json:"id"         example:"123e4567-e89b-12d3-a456-426614174000"`
	RFQNumber string    `json:"rfq_number" example:"RFQ-20240315-143005"`
	Status    string    `json:"status"     example:"submitted"`
	Priority  string    `json:"priority"   example:"MEDIUM"`

	ProductTypes      []string `json:"product_types"`
	Grades            []string `json:"grades,omitempty"`
	Origins           []string `json:"origins,omitempty"`
	ProcessingMethods []string `json:"processing_methods,omitempty"`
	Certifications    []string `json:"certifications,omitempty"`

	Quantity           float64 `json:"quantity"`
	QuantityUnit       string  `json:"quantity_unit"`
	IsRecurringOrder   bool    `json:"is_recurring_order"`
	RecurringFrequency string  `json:"recurring_frequency,omitempty"`

	DeliveryTerms string     `json:"delivery_terms"`
	DeliveryDate  *time.Time `json:"delivery_date,omitempty"`
	Country       string     `json:"country"`

	PaymentTerms   string   `json:"payment_terms,omitempty"`
	PaymentMethods []string `json:"payment_methods,omitempty"`
	Currency       string   `json:"currency,omitempty"`

	CompanyName   string `json:"company_name"`
	ContactPerson string `json:"contact_person"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	BusinessType  string `json:"business_type,omitempty"`

	SampleRequired         bool   `json:"sample_required"`
	AdditionalRequirements string `json:"additional_requirements,omitempty"`
	Locale                 string `json:"locale,omitempty"`

	InternalNotes string `json:"internal_notes,omitempty"`
	UpdatedBy     string `json:"updated_by,omitempty"`

	SubmittedAt    time.Time `json:"submitted_at"`
	LastActivityAt time.Time `json:"last_activity_at"`
	UpdatedAt      time.Time `json:"updated_at"`
} // @name RFQResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"RFQ not found"`
} // @name ErrorResponse

func toRFQResponse(r *models.RFQ) RFQResponse {
	return RFQResponse{
		ID:                     r.ID,
		RFQNumber:              r.Number.String(),
		Status:                 string(r.Status),
		Priority:               string(r.Priority),
		ProductTypes:           r.Product.ProductTypes,
		Grades:                 r.Product.Grades,
		Origins:                r.Product.Origins,
		ProcessingMethods:      r.Product.ProcessingMethods,
		Certifications:         r.Product.Certifications,
		Quantity:               r.Quantity.Quantity,
		QuantityUnit:           r.Quantity.Unit,
		IsRecurringOrder:       r.Quantity.IsRecurringOrder,
		RecurringFrequency:     r.Quantity.RecurringFrequency,
		DeliveryTerms:          r.Delivery.Terms,
		DeliveryDate:           r.Delivery.DeliveryDate,
		Country:                r.Delivery.Country,
		PaymentTerms:           r.Payment.Terms,
		PaymentMethods:         r.Payment.Methods,
		Currency:               r.Payment.Currency,
		CompanyName:            r.Company.CompanyName,
		ContactPerson:          r.Company.ContactPerson,
		Email:                  r.Company.Email,
		Phone:                  r.Company.Phone,
		BusinessType:           r.Company.BusinessType,
		SampleRequired:         r.SampleRequired,
		AdditionalRequirements: r.AdditionalRequirements,
		Locale:                 r.Locale,
		InternalNotes:          r.InternalNotes,
		UpdatedBy:              r.UpdatedBy,
		SubmittedAt:            r.SubmittedAt,
		LastActivityAt:         r.LastActivityAt,
		UpdatedAt:              r.UpdatedAt,
	}
}
