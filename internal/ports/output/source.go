package output

import (
	"context"

	"localefinder/internal/domain/entities"
)

// SourceProvider resolves the configured source tree into files to scan.
// Unreadable files are skipped, never returned as an error.
type SourceProvider interface {
	Files(ctx context.Context) ([]entities.SourceFile, error)
}
