// Package metrics exposes prometheus counters for categorization provenance,
// chat intents and external model calls. A nil *Recorder is a valid no-op, so
// components never need to guard their calls.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "finassist"

// Categorization sources.
const (
	SourceModel    = "model"
	SourceFallback = "fallback"
	SourceError    = "error"
)

// Model request outcomes.
const (
	OutcomeSuccess = "success"
)

// Recorder holds the counters. Create it once per registry.
type Recorder struct {
	categorizations *prometheus.CounterVec
	queries         *prometheus.CounterVec
	modelRequests   *prometheus.CounterVec
}

// NewRecorder creates the counters and registers them on reg.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		categorizations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "categorizations_total",
			Help:      "Categorization results by provenance.",
		}, []string{"source"}),
		queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chat_queries_total",
			Help:      "Chat queries by resolved intent.",
		}, []string{"intent"}),
		modelRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "model_requests_total",
			Help:      "External model requests by operation and outcome.",
		}, []string{"operation", "outcome"}),
	}

	for _, c := range []prometheus.Collector{r.categorizations, r.queries, r.modelRequests} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// ObserveCategorization counts one result from source.
func (r *Recorder) ObserveCategorization(source string) {
	if r == nil {
		return
	}
	r.categorizations.WithLabelValues(source).Inc()
}

// ObserveQuery counts one chat query resolved to intent.
func (r *Recorder) ObserveQuery(intent string) {
	if r == nil {
		return
	}
	r.queries.WithLabelValues(intent).Inc()
}

// ObserveModelRequest counts one external call.
func (r *Recorder) ObserveModelRequest(operation, outcome string) {
	if r == nil {
		return
	}
	r.modelRequests.WithLabelValues(operation, outcome).Inc()
}

// CategorizationCounts reads the categorization counters back from a gatherer,
// keyed by source. Used for end-of-run summaries.
func CategorizationCounts(g prometheus.Gatherer) (map[string]float64, error) {
	families, err := g.Gather()
	if err != nil {
		return nil, err
	}
	out := map[string]float64{}
	for _, mf := range families {
		if mf.GetName() != namespace+"_categorizations_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "source" {
					out[lp.GetValue()] += m.GetCounter().GetValue()
				}
			}
		}
	}
	return out, nil
}
