package server

import (
	"net/http"
	"strings"
	"sync"

	"github.com/axiomhq/hyperloglog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type metricsRegistry struct {
	registry       *prometheus.Registry
	actionsTotal   *prometheus.CounterVec
	requestSeconds *prometheus.HistogramVec

	// Unique interactor wallets, estimated; exact counts would mean keeping
	// every address in memory for the process lifetime.
	interactorsMu sync.Mutex
	interactors   *hyperloglog.Sketch
}

func newMetricsRegistry() *metricsRegistry {
	actions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mintframe_actions_total",
		Help: "Frame actions handled, by route and outcome",
	}, []string{"route", "outcome"})

	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "mintframe_request_seconds",
		Help:    "Frame action handling latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	r := prometheus.NewRegistry()
	r.MustRegister(actions, latency)

	return &metricsRegistry{
		registry:       r,
		actionsTotal:   actions,
		requestSeconds: latency,
		interactors:    hyperloglog.New14(),
	}
}

func (m *metricsRegistry) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *metricsRegistry) incAction(route, outcome string) {
	m.actionsTotal.WithLabelValues(route, outcome).Inc()
}

func (m *metricsRegistry) observe(route string, seconds float64) {
	m.requestSeconds.WithLabelValues(route).Observe(seconds)
}

func (m *metricsRegistry) seenInteractor(address string) {
	if address == "" {
		return
	}
	m.interactorsMu.Lock()
	m.interactors.Insert([]byte(strings.ToLower(address)))
	m.interactorsMu.Unlock()
}

func (m *metricsRegistry) uniqueInteractors() uint64 {
	m.interactorsMu.Lock()
	defer m.interactorsMu.Unlock()
	return m.interactors.Estimate()
}
