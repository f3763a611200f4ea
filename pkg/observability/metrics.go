package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/aretw0/logicx/pkg/domain"
)

// Metrics holds the editor collectors.
type Metrics struct {
	SessionsTotal   *prometheus.CounterVec
	SessionsActive  prometheus.Gauge
	ConnectsTotal   prometheus.Counter
	DropsTotal      *prometheus.CounterVec
	ChangesTotal    *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// NewMetrics registers the editor collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		SessionsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "logicx_sessions_total",
				Help: "Total number of pointer sessions started",
			},
			[]string{"kind"},
		),
		SessionsActive: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "logicx_sessions_active",
				Help: "Whether a pointer session is in progress",
			},
		),
		ConnectsTotal: f.NewCounter(
			prometheus.CounterOpts{
				Name: "logicx_connections_total",
				Help: "Total number of wire gestures that produced a connection",
			},
		),
		DropsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "logicx_wire_drops_total",
				Help: "Total number of wire gestures discarded",
			},
			[]string{"reason"},
		),
		ChangesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "logicx_project_changes_total",
				Help: "Total number of project mutations",
			},
			[]string{"cause"},
		),
		RequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "logicx_http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
	}
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.Hooks {
	return domain.Hooks{
		OnSessionBegin: func(e *domain.SessionEvent) {
			m.SessionsTotal.WithLabelValues(e.Kind).Inc()
			m.SessionsActive.Set(1)
		},
		OnSessionEnd: func(e *domain.SessionEvent) {
			m.SessionsActive.Set(0)
		},
		OnConnect: func(e *domain.ConnectEvent) {
			m.ConnectsTotal.Inc()
		},
		OnDrop: func(e *domain.DropEvent) {
			m.DropsTotal.WithLabelValues(e.Reason).Inc()
		},
		OnProjectChanged: func(e *domain.ChangeEvent) {
			m.ChangesTotal.WithLabelValues(e.Cause).Inc()
		},
	}
}
