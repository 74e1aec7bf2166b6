package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	reg *prometheus.Registry

	Stored       prometheus.Counter
	Overwritten  prometheus.Counter
	LookupHits   prometheus.Counter
	LookupMisses prometheus.Counter

	GenerateFailures prometheus.Counter
	PublishFailures  prometheus.Counter
	GenerateLatency  prometheus.Histogram
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	stored := prometheus.NewCounter(prometheus.CounterOpts{Name: "tracking_store_writes_total", Help: "Tracking numbers written to the dedup store."})
	overwritten := prometheus.NewCounter(prometheus.CounterOpts{Name: "tracking_store_overwrites_total", Help: "Dedup store writes that replaced an existing entry."})
	hits := prometheus.NewCounter(prometheus.CounterOpts{Name: "tracking_lookup_hits_total", Help: "Tracking number lookups that found an entry."})
	misses := prometheus.NewCounter(prometheus.CounterOpts{Name: "tracking_lookup_misses_total", Help: "Tracking number lookups that found nothing."})

	genFailures := prometheus.NewCounter(prometheus.CounterOpts{Name: "tracking_generate_failures_total", Help: "Tracking number generations that failed internally."})
	pubFailures := prometheus.NewCounter(prometheus.CounterOpts{Name: "tracking_publish_failures_total", Help: "Issued tracking numbers that could not be published."})
	latency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "tracking_generate_latency_seconds",
		Help:    "Time spent generating and storing a tracking number.",
		Buckets: prometheus.ExponentialBuckets(0.000_01, 4, 8),
	})

	r.MustRegister(stored, overwritten, hits, misses, genFailures, pubFailures, latency)
	return &Registry{
		reg:              r,
		Stored:           stored,
		Overwritten:      overwritten,
		LookupHits:       hits,
		LookupMisses:     misses,
		GenerateFailures: genFailures,
		PublishFailures:  pubFailures,
		GenerateLatency:  latency,
	}
}

// WatchEntries exposes the current dedup store size as a gauge.
func (r *Registry) WatchEntries(size func() int) {
	r.reg.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{Name: "tracking_store_entries", Help: "Entries currently held by the dedup store."},
		func() float64 { return float64(size()) },
	))
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
