// FilePath: internal/monitoring/monitoring.go
package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	nuts "github.com/vaudience/go-nuts"
)

const namespace = "terrahub"

var (
	readingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "readings_total",
			Help:      "Ingested readings by entity kind and outcome.",
		},
		[]string{"kind", "outcome"},
	)

	cleanupEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cleanup_events_total",
			Help:      "Cleanup events by event name.",
		},
		[]string{"event"},
	)
)

// Service provides monitoring functionality
type Service struct{}

// NewService creates a new monitoring service
func NewService() *Service {
	return &Service{}
}

// RecordIngest counts one ingested reading with its outcome.
func (s *Service) RecordIngest(kind, outcome string) {
	readingsTotal.WithLabelValues(kind, outcome).Inc()
}

// RecordEvent records a monitored event with labels
func (s *Service) RecordEvent(eventName string, labels map[string]string) {
	cleanupEventsTotal.WithLabelValues(eventName).Inc()
	nuts.L.Infof("[Monitoring] Event %s recorded with labels: %v", eventName, labels)
}

// Handler exposes the metrics endpoint.
func (s *Service) Handler() http.Handler {
	return promhttp.Handler()
}
