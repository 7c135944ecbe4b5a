package observability

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/arbor/pkg/domain"
)

// Metrics counts tree events as Prometheus collectors.
type Metrics struct {
	expands     *prometheus.CounterVec
	selects     *prometheus.CounterVec
	checks      *prometheus.CounterVec
	loads       *prometheus.CounterVec
	drags       *prometheus.CounterVec
	drops       *prometheus.CounterVec
	diagnostics *prometheus.CounterVec
	recompute   prometheus.Histogram
	visible     prometheus.Gauge
	entities    prometheus.Gauge
}

// MetricsOption configures NewMetrics.
type MetricsOption func(*metricsConfig)

type metricsConfig struct {
	namespace   string
	constLabels prometheus.Labels
}

// WithNamespace prefixes every metric name. The default is "arbor".
func WithNamespace(ns string) MetricsOption {
	return func(c *metricsConfig) {
		c.namespace = ns
	}
}

// WithConstLabels attaches fixed labels, such as a tree name, to every metric.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *metricsConfig) {
		c.constLabels = labels
	}
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer, opts ...MetricsOption) (*Metrics, error) {
	cfg := metricsConfig{namespace: "arbor"}
	for _, opt := range opts {
		opt(&cfg)
	}

	counter := func(name, help string, labels ...string) *prometheus.CounterVec {
		return prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.namespace,
			Name:        name,
			Help:        help,
			ConstLabels: cfg.constLabels,
		}, labels)
	}
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   cfg.namespace,
			Name:        name,
			Help:        help,
			ConstLabels: cfg.constLabels,
		})
	}

	m := &Metrics{
		expands:     counter("expand_total", "Expand and collapse events.", "expanded"),
		selects:     counter("select_total", "Select and deselect events.", "selected"),
		checks:      counter("check_total", "Check and uncheck events.", "checked"),
		loads:       counter("load_total", "Completed subtree loads by outcome.", "result"),
		drags:       counter("drag_events_total", "Drag gesture events by phase.", "phase"),
		drops:       counter("drop_total", "Completed drops by placement.", "placement"),
		diagnostics: counter("diagnostics_total", "Non-fatal diagnostics by code.", "code"),
		recompute: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   cfg.namespace,
			Name:        "recompute_duration_seconds",
			Help:        "Duration of derived state recomputation.",
			ConstLabels: cfg.constLabels,
			Buckets:     prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
		visible:  gauge("visible_rows", "Rows in the visible list after the last recomputation."),
		entities: gauge("entities", "Indexed nodes after the last recomputation."),
	}

	for _, c := range []prometheus.Collector{
		m.expands, m.selects, m.checks, m.loads, m.drags, m.drops, m.diagnostics,
		m.recompute, m.visible, m.entities,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks returns callbacks that record every event into the collectors.
func (m *Metrics) Hooks() domain.Hooks {
	phase := func(name string) func(domain.DragInfo) {
		c := m.drags.WithLabelValues(name)
		return func(domain.DragInfo) { c.Inc() }
	}

	return domain.Hooks{
		OnExpand: func(_ []domain.Key, info domain.ExpandInfo) {
			m.expands.WithLabelValues(boolLabel(info.Expanded)).Inc()
		},
		OnSelect: func(_ []domain.Key, info domain.SelectInfo) {
			m.selects.WithLabelValues(boolLabel(info.Selected)).Inc()
		},
		OnCheck: func(_ domain.CheckState, info domain.CheckInfo) {
			m.checks.WithLabelValues(boolLabel(info.Checked)).Inc()
		},
		OnLoad: func([]domain.Key, domain.LoadInfo) {
			m.loads.WithLabelValues("ok").Inc()
		},
		OnLoadError: func(error, domain.LoadInfo) {
			m.loads.WithLabelValues("error").Inc()
		},
		OnDragStart: phase("start"),
		OnDragEnter: phase("enter"),
		OnDragOver:  phase("over"),
		OnDragLeave: phase("leave"),
		OnDragEnd:   phase("end"),
		OnDrop: func(info domain.DropInfo) {
			placement := "inside"
			if info.DropToGap {
				placement = "gap"
			}
			m.drops.WithLabelValues(placement).Inc()
		},
		OnDiagnostic: func(d domain.Diagnostic) {
			m.diagnostics.WithLabelValues(string(d.Code)).Inc()
		},
		OnRecompute: func(info domain.RecomputeInfo) {
			m.recompute.Observe(info.Duration.Seconds())
			m.visible.Set(float64(info.Visible))
			m.entities.Set(float64(info.Entities))
		},
	}
}

func boolLabel(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
