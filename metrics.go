package mdblock

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// Recorder receives parser observability events. Implementations must be
// safe for concurrent use when a Parser is shared.
type Recorder interface {
	ObserveParse(d time.Duration, sections int)
	ObserveCache(hit bool)
	IncCacheEviction()
	IncCeiling(ceiling string)
	IncNoMatch(recognizer string)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are
// not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveParse(time.Duration, int) {}
func (NoopRecorder) ObserveCache(bool)               {}
func (NoopRecorder) IncCacheEviction()               {}
func (NoopRecorder) IncCeiling(string)               {}
func (NoopRecorder) IncNoMatch(string)               {}

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	parseDuration  prom.Histogram
	parseSections  prom.Histogram
	cacheLookups   *prom.CounterVec
	cacheEvictions prom.Counter
	ceilings       *prom.CounterVec
	noMatches      *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers the parser metrics on reg.
// A nil registry gets a private one.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.parseDuration = prom.NewHistogram(prom.HistogramOpts{
		Namespace: "mdblock",
		Name:      "parse_duration_seconds",
		Help:      "Duration of whole-document block parses",
		Buckets:   prom.ExponentialBuckets(0.0001, 4, 8),
	})
	pr.parseSections = prom.NewHistogram(prom.HistogramOpts{
		Namespace: "mdblock",
		Name:      "parse_sections",
		Help:      "Independently parseable sections per document",
		Buckets:   prom.ExponentialBuckets(1, 2, 10),
	})
	pr.cacheLookups = prom.NewCounterVec(prom.CounterOpts{
		Namespace: "mdblock",
		Name:      "section_cache_lookups_total",
		Help:      "Section cache lookups by result",
	}, []string{"result"})
	pr.cacheEvictions = prom.NewCounter(prom.CounterOpts{
		Namespace: "mdblock",
		Name:      "section_cache_evictions_total",
		Help:      "Sections evicted from the cache",
	})
	pr.ceilings = prom.NewCounterVec(prom.CounterOpts{
		Namespace: "mdblock",
		Name:      "ceiling_hits_total",
		Help:      "Constructs cut short by a parse ceiling",
	}, []string{"ceiling"})
	pr.noMatches = prom.NewCounterVec(prom.CounterOpts{
		Namespace: "mdblock",
		Name:      "recognizer_no_match_total",
		Help:      "Recoverable recognizer declines",
	}, []string{"recognizer"})
	reg.MustRegister(pr.parseDuration, pr.parseSections, pr.cacheLookups, pr.cacheEvictions, pr.ceilings, pr.noMatches)
	return pr
}

func (p *PrometheusRecorder) ObserveParse(d time.Duration, sections int) {
	if p == nil || p.parseDuration == nil {
		return
	}
	p.parseDuration.Observe(d.Seconds())
	p.parseSections.Observe(float64(sections))
}

func (p *PrometheusRecorder) ObserveCache(hit bool) {
	if p == nil || p.cacheLookups == nil {
		return
	}
	res := "miss"
	if hit {
		res = "hit"
	}
	p.cacheLookups.WithLabelValues(res).Inc()
}

func (p *PrometheusRecorder) IncCacheEviction() {
	if p == nil || p.cacheEvictions == nil {
		return
	}
	p.cacheEvictions.Inc()
}

func (p *PrometheusRecorder) IncCeiling(ceiling string) {
	if p == nil || p.ceilings == nil {
		return
	}
	p.ceilings.WithLabelValues(ceiling).Inc()
}

// IncNoMatch counts declines by recognizer family. Probe-specific suffixes
// ("list-item-continuation:fence-open") are kept as separate label values.
func (p *PrometheusRecorder) IncNoMatch(recognizer string) {
	if p == nil || p.noMatches == nil {
		return
	}
	p.noMatches.WithLabelValues(recognizer).Inc()
}
