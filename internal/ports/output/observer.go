package output

import (
	"context"

	"localefinder/internal/domain/entities"
)

// CatalogVerifier checks that an encoded default catalog is loadable.
type CatalogVerifier interface {
	Verify(locale string, data []byte) error
}

type Notifier interface {
	Notify(ctx context.Context, report *entities.Report) error
}

type Metrics interface {
	KeysDiscovered(n int)
	CatalogReconciled(locale, namespace string, added, removed int)
	CatalogFailed(locale, namespace string)
	TranslationFailed(locale string)
}

// Progress follows the translation of one catalog.
type Progress interface {
	Begin(description string, total int)
	Step()
	End()
}
