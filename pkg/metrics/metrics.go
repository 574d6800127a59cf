package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	DecisionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cardauth",
			Name:      "decisions_total",
			Help:      "Authorization decisions by outcome",
		},
		[]string{"decision"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "cardauth",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration",
			Buckets: []float64{
				0.005, 0.01, 0.02, 0.05, 0.1,
				0.2, 0.5, 1, 2, 5,
			},
		},
		[]string{"method", "status"},
	)
)

func init() {
	prometheus.MustRegister(DecisionsTotal, RequestDuration)
}

func IncDecision(decision string) {
	DecisionsTotal.WithLabelValues(decision).Inc()
}

func ObserveRequest(method, status string, seconds float64) {
	RequestDuration.WithLabelValues(method, status).Observe(seconds)
}
