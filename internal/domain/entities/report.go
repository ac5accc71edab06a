package entities

import "time"

// SourceFile is a scanned file and its content.
type SourceFile struct {
	Path    string
	Content string
}

// CatalogResult describes what a run did to one catalog.
type CatalogResult struct {
	Locale    string
	Namespace string
	Added     int
	Removed   int
	Written   bool
	Patch     []byte // RFC 7386 merge patch, only set on dry runs
	Err       error
}

// Failed reports whether the catalog could not be reconciled.
func (r CatalogResult) Failed() bool {
	return r.Err != nil
}

// Report summarizes one run.
type Report struct {
	RunID               string
	Locales             []string
	Files               int
	Keys                int
	Demoted             int
	TranslationFailures int
	Catalogs            []CatalogResult
	DryRun              bool
	StartedAt           time.Time
	FinishedAt          time.Time
}

func (r *Report) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Totals returns the number of added and removed keys across all catalogs.
func (r *Report) Totals() (added, removed int) {
	for _, c := range r.Catalogs {
		added += c.Added
		removed += c.Removed
	}
	return added, removed
}

func (r *Report) Written() int {
	n := 0
	for _, c := range r.Catalogs {
		if c.Written {
			n++
		}
	}
	return n
}

func (r *Report) Failures() []CatalogResult {
	var out []CatalogResult
	for _, c := range r.Catalogs {
		if c.Failed() {
			out = append(out, c)
		}
	}
	return out
}
