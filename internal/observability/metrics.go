package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is the diagnostics surface: per-command outcomes and the size of
// every persisted collection.
type Metrics struct {
	registry *prometheus.Registry

	Commands          *prometheus.CounterVec
	CollectionRecords *prometheus.GaugeVec
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	commands := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "backoffice_commands_total",
		Help: "Mutating commands processed, by command name and outcome.",
	}, []string{"command", "outcome"})

	records := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "backoffice_collection_records",
		Help: "Records currently held per entity collection.",
	}, []string{"collection"})

	registry.MustRegister(commands, records)

	return &Metrics{
		registry:          registry,
		Commands:          commands,
		CollectionRecords: records,
	}
}

// ObserveCommand records one command outcome.
func (m *Metrics) ObserveCommand(command string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.Commands.WithLabelValues(command, outcome).Inc()
}

// SetCollectionSize publishes the current record count of one collection.
func (m *Metrics) SetCollectionSize(collection string, n int) {
	m.CollectionRecords.WithLabelValues(collection).Set(float64(n))
}

// Handler serves the registry in Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
