package providers

import (
	"shoutd/internal/structures"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type MetricsProviderInterface interface {
	IncSubmissions(outcome string)
	IncRotations()
	ObserveAppendDuration(duration time.Duration)
	ObservePersistenceDuration(duration time.Duration)
	AddMalformedLines(count int)
	IncCacheHits()
	IncCacheMisses()
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
}

// StatsSource feeds the gauge functions.
type StatsSource interface {
	TotalCount() int
	ActorCount() int
}

type MetricsProvider struct {
	submissions         *prometheus.CounterVec
	rotations           prometheus.Counter
	appendDuration      prometheus.Histogram
	persistenceDuration prometheus.Histogram
	malformedLines      prometheus.Counter
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
}

func (m *MetricsProvider) IncSubmissions(outcome string) {
	m.submissions.WithLabelValues(outcome).Inc()
}

func (m *MetricsProvider) IncRotations() {
	m.rotations.Inc()
}

func (m *MetricsProvider) ObserveAppendDuration(duration time.Duration) {
	m.appendDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) AddMalformedLines(count int) {
	if count > 0 {
		m.malformedLines.Add(float64(count))
	}
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func NewMetricsProvider(conf *structures.Config, stats StatsSource) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	m := &MetricsProvider{
		submissions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "shoutd_submissions_total",
			Help: "Total number of shoutout submissions by outcome",
		}, []string{"outcome"}),

		rotations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "shoutd_log_rotations_total",
			Help: "Total number of shoutout log rotations",
		}),

		appendDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "shoutd_log_append_duration_seconds",
			Help:    "Duration of shoutout log appends in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "shoutd_persistence_duration_seconds",
			Help:    "Duration of stats snapshot saves in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		malformedLines: promauto.NewCounter(prometheus.CounterOpts{
			Name: "shoutd_log_malformed_lines_total",
			Help: "Total number of log lines skipped on read-back",
		}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "shoutd_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "shoutd_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "shoutd_http_requests_total",
			Help: "Total number of read view requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "shoutd_http_request_duration_seconds",
			Help:    "Duration of read view requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
	}

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "shoutd_shoutouts_total",
		Help: "Total number of recorded shoutouts",
	}, func() float64 {
		return float64(stats.TotalCount())
	})

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "shoutd_actors_total",
		Help: "Number of actors with recorded shoutouts",
	}, func() float64 {
		return float64(stats.ActorCount())
	})

	return m
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncSubmissions(_ string)                          {}
func (n *noopMetrics) IncRotations()                                    {}
func (n *noopMetrics) ObserveAppendDuration(_ time.Duration)            {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)       {}
func (n *noopMetrics) AddMalformedLines(_ int)                          {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
