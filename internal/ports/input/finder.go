package input

import (
	"context"

	"localefinder/internal/domain/entities"
)

// FindOptions selects what a run processes.
type FindOptions struct {
	Locales      []string
	AllLocales   bool
	SourceLocale string
	NoTranslate  bool
	Create       bool
	Only         []string
	DryRun       bool
	Concurrency  int
}

type FinderUseCase interface {
	Run(ctx context.Context, opts FindOptions) (*entities.Report, error)
}
