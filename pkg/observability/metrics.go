package observability

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aretw0/tableau/internal/logging"
	"github.com/aretw0/tableau/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors fed by the scene hooks.
type Metrics struct {
	registry *prometheus.Registry
	logger   *slog.Logger

	Propagations      *prometheus.CounterVec
	PropagatedActions *prometheus.CounterVec
	Layouts           prometheus.Counter
	LayoutChildren    prometheus.Histogram
	ResourceTeardowns prometheus.Counter
	OrphanedClones    prometheus.Counter
}

// Option configures Metrics.
type Option func(*Metrics)

// WithLogger logs every hook event at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Metrics) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithRegistry registers the collectors on reg instead of a private registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(m *Metrics) {
		if reg != nil {
			m.registry = reg
		}
	}
}

// NewMetrics creates and registers the collectors.
func NewMetrics(opts ...Option) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		logger:   logging.NewNop(),
		Propagations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tableau_group_propagations_total",
				Help: "Structural action edits fanned out by synced groups",
			},
			[]string{"op", "channel", "replayed"},
		),
		PropagatedActions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tableau_propagated_actions_total",
				Help: "Sibling children touched by group propagation",
			},
			[]string{"op"},
		),
		Layouts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tableau_group_layouts_total",
			Help: "Completed group alignment passes",
		}),
		LayoutChildren: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "tableau_group_layout_children",
			Help:    "Children per aligned group",
			Buckets: prometheus.LinearBuckets(0, 4, 8),
		}),
		ResourceTeardowns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tableau_resource_teardowns_total",
			Help: "Library resources destroyed while clones still referenced them",
		}),
		OrphanedClones: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tableau_orphaned_clones_total",
			Help: "Clones whose resource link was cleared",
		}),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.registry.MustRegister(
		m.Propagations,
		m.PropagatedActions,
		m.Layouts,
		m.LayoutChildren,
		m.ResourceTeardowns,
		m.OrphanedClones,
	)
	return m
}

// Registry returns the registry the collectors live in.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Hooks returns scene hooks that record into m.
func (m *Metrics) Hooks() domain.Hooks {
	return domain.Hooks{
		OnPropagate: func(e *domain.PropagationEvent) {
			m.Propagations.WithLabelValues(string(e.Op), e.Channel.String(), strconv.FormatBool(e.Replayed)).Inc()
			m.PropagatedActions.WithLabelValues(string(e.Op)).Add(float64(e.Affected))
			m.logger.Debug("propagate",
				"group", e.Group,
				"op", e.Op,
				"channel", e.Channel.String(),
				"child_index", e.ChildIndex,
				"affected", e.Affected,
				"replayed", e.Replayed,
			)
		},
		OnLayout: func(e *domain.LayoutEvent) {
			m.Layouts.Inc()
			m.LayoutChildren.Observe(float64(e.Children))
			m.logger.Debug("layout",
				"group", e.Group,
				"children", e.Children,
				"spacing", e.Spacing,
				"bounds", e.Bounds.Values(),
			)
		},
		OnResourceDestroyed: func(e *domain.ResourceEvent) {
			m.ResourceTeardowns.Inc()
			m.OrphanedClones.Add(float64(e.Clones))
			m.logger.Debug("resource destroyed", "resource", e.Resource, "clones", e.Clones)
		},
	}
}
