package discord

import (
	"errors"

	"localefinder/internal/domain"
)

// DescribeError maps a catalog failure to a short line for a report.
func DescribeError(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrCatalogFormat):
		return "catalog could not be parsed, left untouched"
	case errors.Is(err, domain.ErrSerialization):
		return "catalog could not be written"
	case errors.Is(err, domain.ErrNamespaceMissing):
		return "namespace catalog is missing"
	default:
		return "catalog could not be read"
	}
}
