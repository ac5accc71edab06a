package application

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"localefinder/internal/domain"
	"localefinder/internal/domain/keytree"
	"localefinder/internal/domain/placeholder"
)

// untranslated marks a value that must be kept as is.
const untranslated = "..."

type translationJob struct {
	path  []string
	text  string
	value string
}

// translateTree returns a copy of added where every leaf holds the
// translation of its own key segment.
func (r *localeRun) translateTree(ctx context.Context, log *slog.Logger, added *keytree.Branch, locale string) *keytree.Branch {
	var jobs []*translationJob
	out := keytree.New()
	added.Walk(func(path []string, leaf keytree.Leaf) {
		p := append([]string(nil), path...)
		if leaf == untranslated {
			out.SetPath(p, leaf)
			return
		}
		jobs = append(jobs, &translationJob{path: p, text: p[len(p)-1]})
	})
	if len(jobs) == 0 {
		return out
	}

	if r.opts.NoTranslate {
		for _, j := range jobs {
			out.SetPath(j.path, keytree.Leaf(j.text))
		}
		return out
	}

	r.progress.Begin(fmt.Sprintf("translating %s", locale), len(jobs))
	var failed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(r.opts.Concurrency, 1))
	for _, j := range jobs {
		g.Go(func() error {
			value, err := r.translateText(gctx, j.text, locale)
			if err != nil {
				failed.Add(1)
				r.metrics.TranslationFailed(locale)
				log.Warn("translation failed, keeping key", "key", j.text, "error", err)
				value = j.text
			}
			j.value = value
			r.progress.Step()
			return nil
		})
	}
	_ = g.Wait()
	r.progress.End()

	for _, j := range jobs {
		out.SetPath(j.path, keytree.Leaf(j.value))
	}
	r.report.TranslationFailures += int(failed.Load())
	return out
}

// translateText hides variables from the translator and restores them in
// its answer.
func (r *localeRun) translateText(ctx context.Context, text, locale string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	masked, table := placeholder.Mask(text)
	translated, err := r.translator.Translate(ctx, masked, r.opts.SourceLocale, locale)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrTranslationProvider, err)
	}
	return placeholder.Unmask(translated, table)
}
