// Package metrics records run counters in a Prometheus registry that can be
// written as a node-exporter textfile.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"localefinder/internal/ports/output"
)

var _ output.Metrics = (*Recorder)(nil)

type Recorder struct {
	registry *prometheus.Registry

	keysDiscovered      prometheus.Gauge
	keysAdded           *prometheus.CounterVec
	keysRemoved         *prometheus.CounterVec
	catalogsReconciled  *prometheus.CounterVec
	catalogsFailed      *prometheus.CounterVec
	translationFailures *prometheus.CounterVec
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		keysDiscovered: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "localefinder_keys_discovered",
			Help: "Number of translation keys found in the scanned sources",
		}),
		keysAdded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "localefinder_keys_added_total",
			Help: "Keys added to catalogs",
		}, []string{"locale"}),
		keysRemoved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "localefinder_keys_removed_total",
			Help: "Stale keys pruned from catalogs",
		}, []string{"locale"}),
		catalogsReconciled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "localefinder_catalogs_reconciled_total",
			Help: "Catalogs processed without error",
		}, []string{"locale", "kind"}),
		catalogsFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "localefinder_catalogs_failed_total",
			Help: "Catalogs that could not be read, parsed or written",
		}, []string{"locale", "kind"}),
		translationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "localefinder_translation_failures_total",
			Help: "Translation calls that failed and fell back to the key",
		}, []string{"locale"}),
	}
	r.registry.MustRegister(
		r.keysDiscovered,
		r.keysAdded,
		r.keysRemoved,
		r.catalogsReconciled,
		r.catalogsFailed,
		r.translationFailures,
	)
	return r
}

// kind keeps label cardinality low: namespaces are not used as label values.
func kind(namespace string) string {
	if namespace == "" {
		return "default"
	}
	return "namespace"
}

func (r *Recorder) KeysDiscovered(n int) {
	r.keysDiscovered.Set(float64(n))
}

func (r *Recorder) CatalogReconciled(locale, namespace string, added, removed int) {
	r.catalogsReconciled.WithLabelValues(locale, kind(namespace)).Inc()
	r.keysAdded.WithLabelValues(locale).Add(float64(added))
	r.keysRemoved.WithLabelValues(locale).Add(float64(removed))
}

func (r *Recorder) CatalogFailed(locale, namespace string) {
	r.catalogsFailed.WithLabelValues(locale, kind(namespace)).Inc()
}

func (r *Recorder) TranslationFailed(locale string) {
	r.translationFailures.WithLabelValues(locale).Inc()
}

// Registry exposes the collectors, mostly for tests.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile writes the current values in the text exposition format.
// The file is replaced atomically.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
