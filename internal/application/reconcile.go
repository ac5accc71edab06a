package application

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	jsonpatch "github.com/evanphx/json-patch"

	"localefinder/internal/domain"
	"localefinder/internal/domain/catalog"
	"localefinder/internal/domain/entities"
	"localefinder/internal/domain/keytree"
)

// reconcile brings one catalog in line with the discovered keys:
// stale entries are pruned, missing ones translated and merged, and the
// result is written back when it differs from what is stored.
func (r *localeRun) reconcile(ctx context.Context, log *slog.Logger, locale, namespace string, discovered *keytree.Branch) entities.CatalogResult {
	name := domain.CatalogName(locale, namespace)
	log = log.With("catalog", name)
	res := entities.CatalogResult{Locale: locale, Namespace: namespace}
	format := catalog.FormatFor(namespace)

	log.Debug("loading catalog")
	raw, err := r.store.Read(ctx, locale, namespace)
	if err != nil {
		res.Err = fmt.Errorf("read %s: %w", name, err)
		log.Error("could not read catalog", "error", err)
		return res
	}
	current, err := catalog.Decode(raw, format)
	if err != nil {
		res.Err = fmt.Errorf("%s: %w", name, err)
		log.Error("catalog left untouched", "error", err)
		return res
	}

	removed := keytree.New()
	if !r.filtered {
		removed = keytree.Diff(current, discovered)
	}
	res.Removed = removed.CountLeaves()
	log.Info(fmt.Sprintf("Removed %d old keys", res.Removed))
	if res.Removed > 0 {
		log.Debug("removed keys", "keys", removed.ToMap())
	}

	pruned := keytree.Prune(current, removed)
	added := keytree.Diff(discovered, pruned)
	translated := r.translateTree(ctx, log, added, locale)
	res.Added = translated.CountLeaves()
	log.Info(fmt.Sprintf("Found %d new keys", res.Added))
	if res.Added > 0 {
		log.Debug("added keys", "keys", translated.ToMap())
	}

	final := keytree.Merge(pruned, translated)
	enc := catalog.NewEncoder(locale)
	data, err := enc.Encode(final, format)
	if err != nil {
		res.Err = fmt.Errorf("%w: encode %s: %v", domain.ErrSerialization, name, err)
		log.Error("could not encode catalog", "error", err)
		return res
	}
	if format == catalog.FormatJSON && r.verifier != nil {
		if err := r.verifier.Verify(locale, data); err != nil {
			log.Warn("catalog does not load as a message file", "error", err)
		}
	}

	if r.opts.DryRun {
		patch, err := mergePatch(enc, current, final)
		if err != nil {
			log.Warn("could not compute merge patch", "error", err)
		}
		res.Patch = patch
		return res
	}

	if bytes.Equal(data, raw) {
		log.Debug("catalog unchanged")
		return res
	}
	if err := r.store.Write(ctx, locale, namespace, data); err != nil {
		res.Err = fmt.Errorf("%w: %s: %v", domain.ErrSerialization, name, err)
		log.Error("could not write catalog", "error", err)
		return res
	}
	res.Written = true
	return res
}

// mergePatch describes the change from before to after as an RFC 7386 merge
// patch over the JSON rendering of both trees.
func mergePatch(enc *catalog.Encoder, before, after *keytree.Branch) ([]byte, error) {
	original, err := enc.EncodeJSON(before)
	if err != nil {
		return nil, err
	}
	modified, err := enc.EncodeJSON(after)
	if err != nil {
		return nil, err
	}
	return jsonpatch.CreateMergePatch(original, modified)
}
