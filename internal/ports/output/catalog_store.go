package output

import "context"

// CatalogStore persists catalogs by (locale, namespace). The default
// namespace is the empty string. Read returns nil content for a catalog that
// does not exist.
type CatalogStore interface {
	Exists(ctx context.Context, locale, namespace string) (bool, error)
	Read(ctx context.Context, locale, namespace string) ([]byte, error)
	Write(ctx context.Context, locale, namespace string, data []byte) error
	ListLocales(ctx context.Context) ([]string, error)
	// CreateIfMissing creates an empty namespace catalog. It returns
	// domain.ErrNamespaceMissing when the namespace cannot be resolved.
	CreateIfMissing(ctx context.Context, locale, namespace string) error
}
