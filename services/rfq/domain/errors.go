package domain

import "errors"

// Sentinel errors for the RFQ domain. Use errors.Is() to check these.
var (
	// ErrRFQNotFound indicates the requested RFQ does not exist.
	ErrRFQNotFound = errors.New("RFQ not found")

	// ErrMissingField indicates a required submission field is absent.
	// The wrapped message names the first missing field in declaration order.
	ErrMissingField = errors.New("missing required field")

	// ErrInvalidEmail indicates the contact email fails the basic shape check.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrInvalidQuantity indicates a non-positive requested quantity.
	ErrInvalidQuantity = errors.New("quantity must be greater than 0")

	// ErrInvalidStatus indicates a status value outside the canonical enumeration.
	ErrInvalidStatus = errors.New("invalid RFQ status")

	// ErrInvalidListQuery indicates out-of-bounds pagination or an unknown
	// sort field on a list query. Detected before any store access.
	ErrInvalidListQuery = errors.New("invalid list query")

	// ErrDuplicateRFQNumber indicates the second-granularity RFQ number
	// collided with an existing submission.
	ErrDuplicateRFQNumber = errors.New("duplicate RFQ number")

	// ErrSubmitFailed wraps unexpected store failures during submission so
	// callers see a single generic failure class.
	ErrSubmitFailed = errors.New("failed to submit RFQ")
)
