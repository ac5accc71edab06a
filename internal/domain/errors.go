package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors.
var (
	ErrConfiguration       = errors.New("configuration error")
	ErrScanIO              = errors.New("source file could not be read")
	ErrNamespaceMissing    = errors.New("namespace catalog does not exist")
	ErrTranslationProvider = errors.New("translation provider failed")
	ErrSerialization       = errors.New("catalog could not be written")
	ErrCatalogFormat       = errors.New("catalog could not be parsed")
	ErrUnknownPlaceholder  = errors.New("unknown placeholder marker")
)

// CatalogFailure identifies one (locale, namespace) pair that could not be processed.
type CatalogFailure struct {
	Locale    string
	Namespace string
	Err       error
}

// PartialFailureError is returned by a run that completed but failed to update
// some catalogs.
type PartialFailureError struct {
	Failures []CatalogFailure
}

func (e *PartialFailureError) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		parts = append(parts, fmt.Sprintf("%s: %v", CatalogName(f.Locale, f.Namespace), f.Err))
	}
	return fmt.Sprintf("%d catalog(s) failed: %s", len(e.Failures), strings.Join(parts, "; "))
}

// Unwrap exposes every failure cause to errors.Is.
func (e *PartialFailureError) Unwrap() []error {
	out := make([]error, 0, len(e.Failures))
	for _, f := range e.Failures {
		out = append(out, f.Err)
	}
	return out
}

// CatalogName renders a catalog identifier for logs and reports.
func CatalogName(locale, namespace string) string {
	if namespace == "" {
		return locale + ".json"
	}
	return locale + "/" + namespace
}
