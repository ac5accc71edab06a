package tz_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"localefinder/pkg/tz"
)

func TestLoad(t *testing.T) {
	loc, err := tz.Load("")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)

	_, err = tz.Load("Nowhere/Special")
	require.Error(t, err)
}

func TestFormat(t *testing.T) {
	ts := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-03-01 09:30 UTC", tz.Format(ts, nil))

	plus2 := time.FixedZone("EET", 2*60*60)
	assert.Equal(t, "2024-03-01 11:30 EET", tz.Format(ts, plus2))
}
