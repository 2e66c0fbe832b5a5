// internal/scraper/errors.go
package scraper

import (
	"errors"
	"fmt"

	"github.com/shoplens/shoplens-backend/internal/models"
)

var (
	// ErrInvalidURL means the user-supplied store URL could not be parsed.
	ErrInvalidURL = errors.New("invalid store URL")
	// ErrProductsNotFound means the store has no public products.json endpoint.
	ErrProductsNotFound = errors.New("products.json endpoint not found")
	// ErrProductsForbidden means the store blocks access to its product feed.
	ErrProductsForbidden = errors.New("store denies access to product data")
	// ErrEmptyCatalog means the feed exists but returned no products at all.
	ErrEmptyCatalog = errors.New("no products returned by the store")
)

// PlatformNotSupportedError is returned when the target site runs a commerce
// platform other than Shopify. It carries the full detection detail so the
// API can explain the verdict to the caller.
type PlatformNotSupportedError struct {
	Detection models.DetectionResult
}

func (e *PlatformNotSupportedError) Error() string {
	return fmt.Sprintf("site runs %s, not Shopify", e.Detection.Platform.DisplayName())
}

// APIDisabledError is returned when the site is confirmed to be a Shopify
// store but its public products.json API is disabled.
type APIDisabledError struct {
	Detection models.DetectionResult
}

func (e *APIDisabledError) Error() string {
	return "store is a Shopify site but its public products.json API is disabled"
}
