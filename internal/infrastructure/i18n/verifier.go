package i18n

import (
	"errors"
	"fmt"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"localefinder/internal/ports/output"
)

// Ensure Verifier implements the output.CatalogVerifier port.
var _ output.CatalogVerifier = (*Verifier)(nil)

// ErrMessageNotFound is returned by Lookup for an unknown message id.
var ErrMessageNotFound = errors.New("message not found")

// Verifier loads default JSON catalogs into a go-i18n bundle, which proves
// that a host application using the same library can read them.
type Verifier struct {
	mu              sync.Mutex
	bundle          *i18n.Bundle
	defaultLanguage language.Tag
}

// NewVerifier builds a Verifier whose bundle falls back to defaultLocale
// (e.g. "en").
func NewVerifier(defaultLocale string) *Verifier {
	tag, err := language.Parse(defaultLocale)
	if err != nil {
		tag = language.English
	}
	return &Verifier{
		bundle:          i18n.NewBundle(tag),
		defaultLanguage: tag,
	}
}

// Verify parses data as the default catalog of locale.
func (v *Verifier) Verify(locale string, data []byte) error {
	_, err := v.Load(locale, data)
	return err
}

// Load adds the catalog to the bundle and returns its number of messages.
func (v *Verifier) Load(locale string, data []byte) (int, error) {
	if _, err := language.Parse(locale); err != nil {
		return 0, fmt.Errorf("i18n: locale %q: %w", locale, err)
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	mf, err := v.bundle.ParseMessageFileBytes(data, locale+".json")
	if err != nil {
		return 0, fmt.Errorf("i18n: %s.json: %w", locale, err)
	}
	return len(mf.Messages), nil
}

// Lookup returns the message for id as a loaded locale would render it,
// falling back to the default locale. Nested catalog entries are addressed
// with dotted ids.
func (v *Verifier) Lookup(locale, id string) (string, error) {
	languages := []string{}
	if locale != "" {
		languages = append(languages, locale)
	}
	languages = append(languages, v.defaultLanguage.String())

	v.mu.Lock()
	defer v.mu.Unlock()
	localizer := i18n.NewLocalizer(v.bundle, languages...)
	msg, err := localizer.Localize(&i18n.LocalizeConfig{MessageID: id})
	if err != nil {
		var notFound *i18n.MessageNotFoundErr
		if errors.As(err, &notFound) {
			return "", fmt.Errorf("%w: %s", ErrMessageNotFound, id)
		}
		return "", fmt.Errorf("i18n: localize %s (locales=%v): %w", id, languages, err)
	}
	return msg, nil
}
