// Package translate adapts the public Google Translate endpoint to the text
// translator port.
package translate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bregydoc/gtranslate"

	"localefinder/internal/ports/output"
)

var _ output.TextTranslator = (*Google)(nil)

type translateFunc func(text string, params gtranslate.TranslationParams) (string, error)

type Google struct {
	tries     int
	delay     time.Duration
	translate translateFunc
}

type Option func(*Google)

// WithRetry sets how often a call is attempted and the pause between attempts.
func WithRetry(tries int, delay time.Duration) Option {
	return func(g *Google) {
		g.tries = tries
		g.delay = delay
	}
}

func withFunc(f translateFunc) Option {
	return func(g *Google) { g.translate = f }
}

func NewGoogle(opts ...Option) *Google {
	g := &Google{tries: 1, translate: gtranslate.TranslateWithParams}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Translate blocks until the endpoint answers or ctx is done. The underlying
// request cannot be aborted, so a cancelled call keeps running in the
// background until it finishes.
func (g *Google) Translate(ctx context.Context, text, sourceLocale, targetLocale string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		text string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		out, err := g.translate(text, gtranslate.TranslationParams{
			From:  sourceLocale,
			To:    targetLocale,
			Tries: g.tries,
			Delay: g.delay,
		})
		done <- result{out, err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		if r.err != nil {
			return "", fmt.Errorf("google %s>%s: %w", sourceLocale, targetLocale, r.err)
		}
		if r.text == "" {
			return "", errors.New("google: empty translation")
		}
		return r.text, nil
	}
}
