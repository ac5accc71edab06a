package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"localefinder/internal/domain"
	"localefinder/internal/domain/entities"
	"localefinder/internal/domain/keytree"
	"localefinder/internal/domain/scanner"
	"localefinder/internal/ports/input"
	"localefinder/internal/ports/output"
)

const defaultSourceLocale = "en"

var _ input.FinderUseCase = (*FinderService)(nil)

type FinderService struct {
	sources    output.SourceProvider
	store      output.CatalogStore
	translator output.TextTranslator
	matcher    *scanner.Matcher

	logger   *slog.Logger
	verifier output.CatalogVerifier
	metrics  output.Metrics
	progress output.Progress
	notifier output.Notifier
	newRunID func() string
	now      func() time.Time
}

// Option configures a FinderService.
type Option func(*FinderService)

func WithLogger(l *slog.Logger) Option {
	return func(s *FinderService) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithVerifier checks every encoded default catalog before it is written.
func WithVerifier(v output.CatalogVerifier) Option {
	return func(s *FinderService) { s.verifier = v }
}

func WithMetrics(m output.Metrics) Option {
	return func(s *FinderService) {
		if m != nil {
			s.metrics = m
		}
	}
}

func WithProgress(p output.Progress) Option {
	return func(s *FinderService) {
		if p != nil {
			s.progress = p
		}
	}
}

// WithNotifier sends the report of every finished run.
func WithNotifier(n output.Notifier) Option {
	return func(s *FinderService) { s.notifier = n }
}

// WithClock overrides time.Now and the run id generator.
func WithClock(now func() time.Time, newRunID func() string) Option {
	return func(s *FinderService) {
		if now != nil {
			s.now = now
		}
		if newRunID != nil {
			s.newRunID = newRunID
		}
	}
}

func NewFinderService(
	sources output.SourceProvider,
	store output.CatalogStore,
	translator output.TextTranslator,
	matcher *scanner.Matcher,
	opts ...Option,
) *FinderService {
	s := &FinderService{
		sources:    sources,
		store:      store,
		translator: translator,
		matcher:    matcher,
		logger:     slog.New(slog.DiscardHandler),
		metrics:    nopMetrics{},
		progress:   nopProgress{},
		newRunID:   uuid.NewString,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run scans the sources once and reconciles every catalog of the selected
// locales. Catalog failures do not stop the run; they are collected into a
// *domain.PartialFailureError returned together with the report.
func (s *FinderService) Run(ctx context.Context, opts input.FindOptions) (*entities.Report, error) {
	if opts.SourceLocale == "" {
		opts.SourceLocale = defaultSourceLocale
	}
	filter, err := scanner.NewFilter(opts.Only)
	if err != nil {
		return nil, fmt.Errorf("%w: only filter: %v", domain.ErrConfiguration, err)
	}

	report := &entities.Report{
		RunID:     s.newRunID(),
		DryRun:    opts.DryRun,
		StartedAt: s.now(),
	}
	log := s.logger.With("run_id", report.RunID)

	locales, err := s.locales(ctx, opts)
	if err != nil {
		return nil, err
	}
	report.Locales = locales

	files, err := s.sources.Files(ctx)
	if err != nil {
		return nil, fmt.Errorf("scan sources: %w", err)
	}
	report.Files = len(files)
	log.Info("files found", "count", len(files))

	contents := make([]string, len(files))
	for i, f := range files {
		contents[i] = f.Content
	}
	keys := filter.Apply(s.matcher.MatchAll(contents))
	report.Keys = len(keys)
	s.metrics.KeysDiscovered(len(keys))
	log.Info("keys found", "count", len(keys))

	run := &localeRun{FinderService: s, log: log, opts: opts, filtered: !filter.Empty(), report: report}
	for _, locale := range locales {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		run.process(ctx, locale, keys)
	}
	report.FinishedAt = s.now()

	if s.notifier != nil {
		if err := s.notifier.Notify(ctx, report); err != nil {
			log.Warn("report notification failed", "error", err)
		}
	}

	if failed := report.Failures(); len(failed) > 0 {
		pf := &domain.PartialFailureError{}
		for _, c := range failed {
			pf.Failures = append(pf.Failures, domain.CatalogFailure{Locale: c.Locale, Namespace: c.Namespace, Err: c.Err})
		}
		return report, pf
	}
	return report, nil
}

func (s *FinderService) locales(ctx context.Context, opts input.FindOptions) ([]string, error) {
	if opts.AllLocales {
		locales, err := s.store.ListLocales(ctx)
		if err != nil {
			return nil, fmt.Errorf("list locales: %w", err)
		}
		if len(locales) == 0 {
			return nil, fmt.Errorf("%w: no locale catalogs found", domain.ErrConfiguration)
		}
		return locales, nil
	}

	var out []string
	seen := make(map[string]bool)
	for _, l := range opts.Locales {
		if l == "" || seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: locales are required", domain.ErrConfiguration)
	}
	return out, nil
}

// localeRun carries the state shared by the catalogs of one run.
type localeRun struct {
	*FinderService
	log      *slog.Logger
	opts     input.FindOptions
	filtered bool
	report   *entities.Report
}

func (r *localeRun) process(ctx context.Context, locale string, keys []string) {
	log := r.log.With("locale", locale)
	log.Info("processing locale")

	partition := keytree.Build(keys, r.namespaceChecker(ctx, log, locale))
	for _, d := range partition.Demoted {
		log.Warn("namespace catalog missing, adding key to default catalog",
			"namespace", d.Namespace, "key", d.Key, "error", domain.ErrNamespaceMissing)
	}
	r.report.Demoted += len(partition.Demoted)

	if r.wantsDefault(ctx, log, locale, partition.Default) {
		r.record(r.reconcile(ctx, log, locale, keytree.DefaultNamespace, partition.Default))
	}
	for _, ns := range partition.Order {
		if ctx.Err() != nil {
			return
		}
		r.record(r.reconcile(ctx, log, locale, ns, partition.Namespaces[ns]))
	}
}

// wantsDefault reports whether the default catalog takes part in the run. An
// existing catalog is reconciled even without discovered keys so stale
// entries are pruned, unless an only filter restricts the run.
func (r *localeRun) wantsDefault(ctx context.Context, log *slog.Logger, locale string, discovered *keytree.Branch) bool {
	if discovered.Len() > 0 {
		return true
	}
	if r.filtered {
		return false
	}
	ok, err := r.store.Exists(ctx, locale, keytree.DefaultNamespace)
	if err != nil {
		log.Warn("could not check default catalog", "error", err)
		return false
	}
	return ok
}

func (r *localeRun) namespaceChecker(ctx context.Context, log *slog.Logger, locale string) keytree.NamespaceChecker {
	return keytree.NamespaceCheckerFunc(func(ns string) bool {
		ok, err := r.store.Exists(ctx, locale, ns)
		if err != nil {
			log.Warn("could not check namespace catalog", "namespace", ns, "error", err)
			return false
		}
		if ok || !r.opts.Create {
			return ok
		}
		if r.opts.DryRun {
			log.Info("would create namespace catalog", "namespace", ns)
			return true
		}
		if err := r.store.CreateIfMissing(ctx, locale, ns); err != nil {
			if !errors.Is(err, domain.ErrNamespaceMissing) {
				log.Warn("could not create namespace catalog", "namespace", ns, "error", err)
			}
			return false
		}
		log.Info("created namespace catalog", "namespace", ns)
		return true
	})
}

func (r *localeRun) record(res entities.CatalogResult) {
	r.report.Catalogs = append(r.report.Catalogs, res)
	if res.Failed() {
		r.metrics.CatalogFailed(res.Locale, res.Namespace)
		return
	}
	r.metrics.CatalogReconciled(res.Locale, res.Namespace, res.Added, res.Removed)
}
