package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"localefinder/internal/domain"
)

func TestPartialFailureError(t *testing.T) {
	t.Parallel()

	err := &domain.PartialFailureError{Failures: []domain.CatalogFailure{
		{Locale: "nl", Namespace: "", Err: fmt.Errorf("write: %w", domain.ErrSerialization)},
		{Locale: "de", Namespace: "user", Err: domain.ErrCatalogFormat},
	}}

	assert.True(t, errors.Is(err, domain.ErrSerialization))
	assert.True(t, errors.Is(err, domain.ErrCatalogFormat))
	assert.False(t, errors.Is(err, domain.ErrConfiguration))
	assert.Contains(t, err.Error(), "2 catalog(s) failed")
	assert.Contains(t, err.Error(), "nl.json")
	assert.Contains(t, err.Error(), "de/user")
}

func TestCatalogName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "en.json", domain.CatalogName("en", ""))
	assert.Equal(t, "en/auth", domain.CatalogName("en", "auth"))
	assert.Equal(t, "en/blog::posts", domain.CatalogName("en", "blog::posts"))
}
