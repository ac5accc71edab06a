package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"localefinder/internal/domain"
	"localefinder/internal/domain/entities"
	"localefinder/internal/ports/input"
)

type findFlags struct {
	locales     string
	source      string
	noTranslate bool
	create      bool
	only        []string
	modules     bool
	dryRun      bool
	concurrency int
	metricsFile string
	progress    bool
}

func newFindCmd(a *app) *cobra.Command {
	f := &findFlags{}
	cmd := &cobra.Command{
		Use:   "find",
		Short: "Add missing keys to the catalogs and remove unused ones",
		Example: `  localefinder find --locales=nl,de
  localefinder find --locales=all --source=en --create
  localefinder find --locales=fr --only='auth.*,Welcome' --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runFind(cmd, f)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.locales, "locales", "", `comma separated locales to update, or "all" for every locale with a catalog`)
	flags.StringVar(&f.source, "source", "en", "locale the keys are written in")
	flags.BoolVar(&f.noTranslate, "notranslate", false, "use the key itself as value instead of translating it")
	flags.BoolVar(&f.create, "create", false, "create missing namespace catalogs")
	flags.StringSliceVar(&f.only, "only", nil, `only process these keys; an entry ending in "*" matches a prefix`)
	flags.BoolVar(&f.modules, "modules", false, `resolve "vendor::file" namespaces through the [modules] hint paths`)
	flags.BoolVar(&f.dryRun, "dry-run", false, "print a JSON merge patch per catalog instead of writing")
	flags.IntVar(&f.concurrency, "concurrency", 1, "number of translation requests in flight")
	flags.StringVar(&f.metricsFile, "metrics-file", "", "write Prometheus metrics in textfile format to this path")
	flags.BoolVar(&f.progress, "progress", false, "show a progress bar while translating")
	_ = cmd.MarkFlagRequired("locales")

	return cmd
}

func (a *app) runFind(cmd *cobra.Command, f *findFlags) error {
	opts, err := f.options()
	if err != nil {
		return err
	}
	cfg, err := a.config()
	if err != nil {
		return err
	}
	log := a.logger()

	deps, err := a.buildFinder(cmd.Context(), cfg, f, log)
	if err != nil {
		return err
	}
	defer deps.close()

	report, runErr := deps.service.Run(cmd.Context(), opts)
	if report != nil {
		printReport(a.stdout, report)
	}
	if deps.recorder != nil {
		if err := deps.recorder.WriteTextfile(f.metricsFile); err != nil {
			log.Warn("could not write metrics file", "path", f.metricsFile, "error", err)
		}
	}
	return runErr
}

func (f *findFlags) options() (input.FindOptions, error) {
	opts := input.FindOptions{
		SourceLocale: strings.TrimSpace(f.source),
		NoTranslate:  f.noTranslate,
		Create:       f.create,
		Only:         f.only,
		DryRun:       f.dryRun,
		Concurrency:  f.concurrency,
	}
	locales := strings.TrimSpace(f.locales)
	switch {
	case locales == "":
		return opts, fmt.Errorf("%w: --locales is required", domain.ErrConfiguration)
	case locales == "all":
		opts.AllLocales = true
	default:
		for _, l := range strings.Split(locales, ",") {
			if l = strings.TrimSpace(l); l != "" {
				opts.Locales = append(opts.Locales, l)
			}
		}
	}
	if opts.SourceLocale == "" {
		return opts, fmt.Errorf("%w: --source must not be empty", domain.ErrConfiguration)
	}
	if f.concurrency < 1 {
		return opts, fmt.Errorf("%w: --concurrency must be at least 1", domain.ErrConfiguration)
	}
	return opts, nil
}

func printReport(w io.Writer, r *entities.Report) {
	for _, c := range r.Catalogs {
		name := domain.CatalogName(c.Locale, c.Namespace)
		switch {
		case c.Failed():
			fmt.Fprintf(w, "%s: failed: %v\n", name, c.Err)
		case r.DryRun:
			fmt.Fprintf(w, "%s: +%d -%d\n%s\n", name, c.Added, c.Removed, c.Patch)
		case c.Written:
			fmt.Fprintf(w, "%s: +%d -%d\n", name, c.Added, c.Removed)
		default:
			fmt.Fprintf(w, "%s: unchanged\n", name)
		}
	}
	added, removed := r.Totals()
	fmt.Fprintf(w, "%d keys in %d files, %d added, %d removed", r.Keys, r.Files, added, removed)
	if n := len(r.Failures()); n > 0 {
		fmt.Fprintf(w, ", %d failed", n)
	}
	fmt.Fprintln(w)
}

// exitCode maps a run error to a process status.
func exitCode(err error) int {
	var partial *domain.PartialFailureError
	switch {
	case err == nil:
		return 0
	case errors.Is(err, domain.ErrConfiguration):
		return 2
	case errors.As(err, &partial):
		return 3
	default:
		return 1
	}
}
