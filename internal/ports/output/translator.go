package output

import "context"

// TextTranslator translates plain text between two locales.
type TextTranslator interface {
	Translate(ctx context.Context, text, sourceLocale, targetLocale string) (string, error)
}
