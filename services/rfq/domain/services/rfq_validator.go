// Package services contains stateless domain services for the RFQ bounded context.
// Domain services enforce business rules that operate purely on domain types
// and have zero external dependencies beyond stdlib and the domain layer.
package services

import (
	"fmt"
	"regexp"

	rfqdomain "github.com/ghuser/beanbridge/services/rfq/domain"
	"github.com/ghuser/beanbridge/services/rfq/domain/models"
)

// emailShape is a basic sanity check, not RFC 5322: one @, no whitespace,
// a dot somewhere in the domain part.
var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateSubmission checks a buyer submission before any record is created.
//
// Required fields are checked in a fixed declaration order and the first
// missing one is named in the returned error. Quantity must be positive and
// the contact email must pass the basic shape check.
func ValidateSubmission(sub *models.Submission) error {
	if sub == nil {
		return fmt.Errorf("%w: submission", rfqdomain.ErrMissingField)
	}

	if len(sub.ProductTypes) == 0 {
		return fmt.Errorf("%w: productType", rfqdomain.ErrMissingField)
	}

	// An absent quantity reads as zero, so the positivity check doubles as
	// the presence check and keeps its place in the declared field order.
	if sub.Quantity <= 0 {
		return rfqdomain.ErrInvalidQuantity
	}

	checks := []struct {
		field   string
		present bool
	}{
		{"quantityUnit", sub.QuantityUnit != ""},
		{"deliveryTerms", sub.DeliveryTerms != ""},
		{"companyName", sub.CompanyName != ""},
		{"contactPerson", sub.ContactPerson != ""},
		{"email", sub.Email != ""},
		{"phone", sub.Phone != ""},
		{"country", sub.Country != ""},
	}
	for _, c := range checks {
		if !c.present {
			return fmt.Errorf("%w: %s", rfqdomain.ErrMissingField, c.field)
		}
	}

	if !emailShape.MatchString(sub.Email) {
		return fmt.Errorf("%w: %q", rfqdomain.ErrInvalidEmail, sub.Email)
	}

	return nil
}
