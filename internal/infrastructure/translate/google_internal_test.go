package translate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bregydoc/gtranslate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoogleTranslate(t *testing.T) {
	t.Parallel()

	var got gtranslate.TranslationParams
	g := NewGoogle(WithRetry(3, time.Second), withFunc(func(text string, p gtranslate.TranslationParams) (string, error) {
		got = p
		return "Hallo " + text, nil
	}))

	out, err := g.Translate(context.Background(), "{{Om5hbWU}}", "en", "nl")
	require.NoError(t, err)
	assert.Equal(t, "Hallo {{Om5hbWU}}", out)
	assert.Equal(t, gtranslate.TranslationParams{From: "en", To: "nl", Tries: 3, Delay: time.Second}, got)
}

func TestGoogleTranslateErrors(t *testing.T) {
	t.Parallel()

	failing := NewGoogle(withFunc(func(string, gtranslate.TranslationParams) (string, error) {
		return "", errors.New("429 too many requests")
	}))
	_, err := failing.Translate(context.Background(), "hello", "en", "de")
	require.ErrorContains(t, err, "429")

	empty := NewGoogle(withFunc(func(string, gtranslate.TranslationParams) (string, error) {
		return "", nil
	}))
	_, err = empty.Translate(context.Background(), "hello", "en", "de")
	require.Error(t, err)
}

func TestGoogleTranslateSkipsBlankText(t *testing.T) {
	t.Parallel()

	g := NewGoogle(withFunc(func(string, gtranslate.TranslationParams) (string, error) {
		t.Fatal("translator must not be called")
		return "", nil
	}))
	out, err := g.Translate(context.Background(), "  ", "en", "de")
	require.NoError(t, err)
	assert.Equal(t, "  ", out)
}

func TestGoogleTranslateHonorsContext(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	defer close(release)
	g := NewGoogle(withFunc(func(string, gtranslate.TranslationParams) (string, error) {
		<-release
		return "late", nil
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := g.Translate(ctx, "hello", "en", "de")
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
