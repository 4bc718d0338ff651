package models

import (
	"time"

	"github.com/google/uuid"
)

// ProductRequirements captures what the buyer wants to source.
type ProductRequirements struct {
	ProductTypes      []string
	Grades            []string
	Origins           []string
	ProcessingMethods []string
	Certifications    []string
}

// QuantityRequirements captures how much, how often.
type QuantityRequirements struct {
	Quantity           float64
	Unit               string
	IsRecurringOrder   bool
	RecurringFrequency string
}

// DeliveryRequirements captures incoterms and destination.
type DeliveryRequirements struct {
	Terms        string // incoterm, e.g. FOB, CIF
	DeliveryDate *time.Time
	Country      string
}

// PaymentTerms captures the commercial terms requested by the buyer.
type PaymentTerms struct {
	Terms    string
	Methods  []string
	Currency string
}

// CompanyInfo identifies the submitting buyer.
type CompanyInfo struct {
	CompanyName   string
	ContactPerson string
	Email         string
	Phone         string
	Country       string
	BusinessType  string
}

// RFQ is the request-for-quote aggregate. The persistent store owns the
// canonical record; instances here are request-scoped copies.
type RFQ struct {
	ID       uuid.UUID
	Number   RFQNumber // assigned once at creation, never changes
	Status   Status
	Priority Priority

	Product  ProductRequirements
	Quantity QuantityRequirements
	Delivery DeliveryRequirements
	Payment  PaymentTerms
	Company  CompanyInfo

	SampleRequired         bool
	AdditionalRequirements string
	Locale                 string

	InternalNotes string // settable only via the status-update operation
	UpdatedBy     string

	SubmittedAt    time.Time
	LastActivityAt time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Submission is the flat intake structure a buyer submits.
// Validation lives in the domain services package.
type Submission struct {
	ProductTypes      []string
	Grades            []string
	Origins           []string
	ProcessingMethods []string
	Certifications    []string

	Quantity           float64
	QuantityUnit       string
	IsRecurringOrder   bool
	RecurringFrequency string

	DeliveryTerms string
	DeliveryDate  *time.Time
	Country       string

	PaymentTerms   string
	PaymentMethods []string
	Currency       string

	CompanyName   string
	ContactPerson string
	Email         string
	Phone         string
	BusinessType  string

	SampleRequired         bool
	AdditionalRequirements string
	Urgency                string
	Locale                 string
}

// NewRFQ assembles a full RFQ record from a validated submission.
// Status starts at submitted; all timestamps are set to now (UTC).
func NewRFQ(sub *Submission, now time.Time) *RFQ {
	now = now.UTC()
	return &RFQ{
		ID:       uuid.New(),
		Number:   NewRFQNumber(now),
		Status:   StatusSubmitted,
		Priority: PriorityFromUrgency(sub.Urgency),
		Product: ProductRequirements{
			ProductTypes:      sub.ProductTypes,
			Grades:            sub.Grades,
			Origins:           sub.Origins,
			ProcessingMethods: sub.ProcessingMethods,
			Certifications:    sub.Certifications,
		},
		Quantity: QuantityRequirements{
			Quantity:           sub.Quantity,
			Unit:               sub.QuantityUnit,
			IsRecurringOrder:   sub.IsRecurringOrder,
			RecurringFrequency: sub.RecurringFrequency,
		},
		Delivery: DeliveryRequirements{
			Terms:        sub.DeliveryTerms,
			DeliveryDate: sub.DeliveryDate,
			Country:      sub.Country,
		},
		Payment: PaymentTerms{
			Terms:    sub.PaymentTerms,
			Methods:  sub.PaymentMethods,
			Currency: sub.Currency,
		},
		Company: CompanyInfo{
			CompanyName:   sub.CompanyName,
			ContactPerson: sub.ContactPerson,
			Email:         sub.Email,
			Phone:         sub.Phone,
			Country:       sub.Country,
			BusinessType:  sub.BusinessType,
		},
		SampleRequired:         sub.SampleRequired,
		AdditionalRequirements: sub.AdditionalRequirements,
		Locale:                 sub.Locale,
		SubmittedAt:            now,
		LastActivityAt:         now,
		CreatedAt:              now,
		UpdatedAt:              now,
	}
}
