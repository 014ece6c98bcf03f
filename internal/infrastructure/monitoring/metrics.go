package monitoring

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Panel metrics
	PanelsOpen        prometheus.Gauge
	PanelsOpenedTotal prometheus.Counter
	PanelReveals      prometheus.Counter

	// Message metrics
	Messages        *prometheus.CounterVec
	UnknownCommands prometheus.Counter
	Notifications   prometheus.Counter

	// WebSocket metrics
	WSConnections prometheus.Gauge

	// System metrics
	Uptime    prometheus.Gauge
	startTime time.Time

	registry  *prometheus.Registry
	done      chan struct{}
	closeOnce sync.Once
}

// NewMetrics creates a new metrics collector with its own registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	m := &Metrics{
		startTime: time.Now(),
		registry:  reg,
		done:      make(chan struct{}),

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "panelhost_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "panelhost_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"method", "path"},
		),

		PanelsOpen: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "panelhost_panels_open",
				Help: "Number of live panel instances",
			},
		),
		PanelsOpenedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "panelhost_panels_opened_total",
				Help: "Total number of panel instances created",
			},
		),
		PanelReveals: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "panelhost_panel_reveals_total",
				Help: "Total number of repeat opens resolved by reveal",
			},
		),

		Messages: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "panelhost_messages_total",
				Help: "Total number of panel messages",
			},
			[]string{"direction", "command"},
		),
		UnknownCommands: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "panelhost_unknown_commands_total",
				Help: "Total number of inbound messages with unrecognized commands",
			},
		),
		Notifications: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "panelhost_notifications_total",
				Help: "Total number of user-facing notifications shown",
			},
		),

		WSConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "panelhost_ws_connections",
				Help: "Number of active surface channels",
			},
		),

		Uptime: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "panelhost_uptime_seconds",
				Help: "Host uptime in seconds",
			},
		),
	}

	go m.updateUptime()

	return m
}

// Handler exposes the metrics in Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Close stops the uptime goroutine. Safe to call more than once.
func (m *Metrics) Close() {
	m.closeOnce.Do(func() {
		close(m.done)
	})
}

// updateUptime continuously updates the uptime metric until Close.
func (m *Metrics) updateUptime() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.Uptime.Set(time.Since(m.startTime).Seconds())
		case <-m.done:
			return
		}
	}
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// PanelOpened implements panel.Observer
func (m *Metrics) PanelOpened(kind string) {
	m.PanelsOpen.Inc()
	m.PanelsOpenedTotal.Inc()
}

// PanelRevealed implements panel.Observer
func (m *Metrics) PanelRevealed(kind string) {
	m.PanelReveals.Inc()
}

// PanelClosed implements panel.Observer
func (m *Metrics) PanelClosed(kind string) {
	m.PanelsOpen.Dec()
}

// MessageReceived implements router.Observer
func (m *Metrics) MessageReceived(command string) {
	m.Messages.WithLabelValues("inbound", command).Inc()
}

// MessageSent implements router.Observer
func (m *Metrics) MessageSent(command string) {
	m.Messages.WithLabelValues("outbound", command).Inc()
}

// UnknownCommand implements router.Observer
func (m *Metrics) UnknownCommand() {
	m.UnknownCommands.Inc()
}

// NotificationShown counts a user-facing notification
func (m *Metrics) NotificationShown() {
	m.Notifications.Inc()
}

// IncWSConnections increments active surface channels
func (m *Metrics) IncWSConnections() {
	m.WSConnections.Inc()
}

// DecWSConnections decrements active surface channels
func (m *Metrics) DecWSConnections() {
	m.WSConnections.Dec()
}
