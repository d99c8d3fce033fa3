// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "socrates"

var (
	providerRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "provider_requests_total",
		Help:      "Generation calls per provider, by outcome.",
	}, []string{"provider", "outcome"})

	providerLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "provider_request_duration_seconds",
		Help:      "Latency of upstream generation calls.",
		Buckets:   prometheus.ExponentialBuckets(0.25, 2, 8),
	}, []string{"provider"})

	recoveryOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "question_recovery_total",
		Help:      "Structured-output recovery attempts by outcome.",
	}, []string{"outcome"})

	quizScores = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "quiz_score_percentage",
		Help:      "Distribution of submitted quiz scores.",
		Buckets:   prometheus.LinearBuckets(0, 10, 11),
	})
)

// Provider call outcomes.
const (
	OutcomeSuccess     = "success"
	OutcomeConfigError = "config_error"
	OutcomeUpstream    = "upstream_error"
	OutcomeTransport   = "transport_error"
)

// Recovery outcomes.
const (
	RecoveryStrict    = "strict"
	RecoveryExtracted = "extracted"
	RecoveryFailed    = "failed"
)

func ObserveProviderCall(provider, outcome string, elapsed time.Duration) {
	providerRequests.WithLabelValues(provider, outcome).Inc()
	if outcome != OutcomeConfigError {
		providerLatency.WithLabelValues(provider).Observe(elapsed.Seconds())
	}
}

func ObserveRecovery(outcome string) {
	recoveryOutcomes.WithLabelValues(outcome).Inc()
}

func ObserveQuizScore(percentage int) {
	quizScores.Observe(float64(percentage))
}

func Handler() http.Handler {
	return promhttp.Handler()
}
