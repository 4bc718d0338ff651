// Package domain holds sentinel errors for the content bounded context.
package domain

import "errors"

// ErrMissingSlug is returned when a related-content query omits the
// current page slug. Unsupported locales are not an error: the store's
// exact locale match yields an empty candidate set instead.
var ErrMissingSlug = errors.New("slug is required")
