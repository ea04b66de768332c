// Package metrics provides Prometheus metrics for the docs hub
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Copy event results.
const (
	CopySuccess = "success"
	CopyFailure = "failure"
)

// HubMetrics contains Prometheus metrics for the web hub
type HubMetrics struct {
	registry *prometheus.Registry

	// HTTP request metrics
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Hub interaction metrics
	sectionViews     *prometheus.CounterVec
	tileActivations  *prometheus.CounterVec
	copyEvents       *prometheus.CounterVec
	tileUpdates      *prometheus.CounterVec
	liveClients      prometheus.Gauge
	templateFailures *prometheus.CounterVec

	// collectors is a slice of all collectors for easier iteration
	collectors []prometheus.Collector
}

// NewHubMetrics creates and registers new hub metrics
func NewHubMetrics(registry *prometheus.Registry) (*HubMetrics, error) {
	m := &HubMetrics{registry: registry}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

// initMetrics initializes all Prometheus metrics
func (m *HubMetrics) initMetrics() {
	m.httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "meshdocs_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"}, // path is the chi route pattern, e.g. /docs/{section}
	)

	m.httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "meshdocs_http_request_duration_seconds",
			Help:    "Time taken for HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	m.sectionViews = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "meshdocs_section_views_total",
			Help: "Total number of documentation section views",
		},
		[]string{"section", "found"},
	)

	m.tileActivations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "meshdocs_tile_activations_total",
			Help: "Total number of landing tile activations",
		},
		[]string{"section"},
	)

	m.copyEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "meshdocs_copy_events_total",
			Help: "Total number of copy-to-clipboard attempts reported by clients",
		},
		[]string{"section", "result"}, // result: success, failure
	)

	m.tileUpdates = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "meshdocs_tile_updates_total",
			Help: "Total number of live tile parameter updates",
		},
		[]string{"param"},
	)

	m.liveClients = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "meshdocs_live_clients",
			Help: "Number of connected live-control websocket clients",
		},
	)

	m.templateFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "meshdocs_template_render_errors_total",
			Help: "Total number of page template render errors",
		},
		[]string{"template"},
	)

	m.collectors = []prometheus.Collector{
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.sectionViews,
		m.tileActivations,
		m.copyEvents,
		m.tileUpdates,
		m.liveClients,
		m.templateFailures,
	}
}

// Describe implements the Collector interface
func (m *HubMetrics) Describe(ch chan<- *prometheus.Desc) {
	for _, collector := range m.collectors {
		collector.Describe(ch)
	}
}

// Collect implements the Collector interface
func (m *HubMetrics) Collect(ch chan<- prometheus.Metric) {
	for _, collector := range m.collectors {
		collector.Collect(ch)
	}
}

// Registry returns the registry the metrics were registered with.
func (m *HubMetrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// RecordHTTPRequest records a served request.
func (m *HubMetrics) RecordHTTPRequest(method, path string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(d.Seconds())
}

// RecordSectionView records a viewer page render.
func (m *HubMetrics) RecordSectionView(section string, found bool) {
	if m == nil {
		return
	}
	m.sectionViews.WithLabelValues(section, strconv.FormatBool(found)).Inc()
}

// RecordTileActivation records a click on a landing tile.
func (m *HubMetrics) RecordTileActivation(section string) {
	if m == nil {
		return
	}
	m.tileActivations.WithLabelValues(section).Inc()
}

// RecordCopy records a copy attempt with result CopySuccess or CopyFailure.
func (m *HubMetrics) RecordCopy(section, result string) {
	if m == nil {
		return
	}
	m.copyEvents.WithLabelValues(section, result).Inc()
}

// RecordTileUpdate records a live tile parameter change.
func (m *HubMetrics) RecordTileUpdate(param string) {
	if m == nil {
		return
	}
	m.tileUpdates.WithLabelValues(param).Inc()
}

// LiveClientConnected increments the live client gauge.
func (m *HubMetrics) LiveClientConnected() {
	if m == nil {
		return
	}
	m.liveClients.Inc()
}

// LiveClientDisconnected decrements the live client gauge.
func (m *HubMetrics) LiveClientDisconnected() {
	if m == nil {
		return
	}
	m.liveClients.Dec()
}

// RecordTemplateError records a failed template render.
func (m *HubMetrics) RecordTemplateError(name string) {
	if m == nil {
		return
	}
	m.templateFailures.WithLabelValues(name).Inc()
}
