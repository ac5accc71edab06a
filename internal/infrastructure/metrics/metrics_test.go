package metrics_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"localefinder/internal/infrastructure/metrics"
)

func TestRecorderCounts(t *testing.T) {
	t.Parallel()

	r := metrics.NewRecorder()
	r.KeysDiscovered(12)
	r.CatalogReconciled("en", "", 3, 1)
	r.CatalogReconciled("en", "auth", 2, 0)
	r.CatalogFailed("nl", "auth")
	r.TranslationFailed("nl")
	r.TranslationFailed("nl")

	n, err := testutil.GatherAndCount(r.Registry(), "localefinder_keys_added_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = testutil.GatherAndCount(r.Registry(), "localefinder_catalogs_reconciled_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = testutil.GatherAndCount(r.Registry())
	require.NoError(t, err)
	assert.Equal(t, 7, n)
}

func TestRecorderWriteTextfile(t *testing.T) {
	t.Parallel()

	r := metrics.NewRecorder()
	r.KeysDiscovered(4)
	r.CatalogReconciled("en", "", 4, 2)

	path := filepath.Join(t.TempDir(), "localefinder.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "localefinder_keys_discovered 4")
	assert.Contains(t, string(data), `localefinder_keys_added_total{locale="en"} 4`)
	assert.Contains(t, string(data), `localefinder_keys_removed_total{locale="en"} 2`)
}
