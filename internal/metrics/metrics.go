package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Web server metrics.
var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tutor_http_requests_total",
		Help: "Total HTTP requests by route, method, and status code",
	}, []string{"route", "method", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tutor_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
	}, []string{"route", "method"})

	RateLimitHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tutor_rate_limit_hits_total",
		Help: "Total rate limit rejections",
	})

	ProviderSwaps = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tutor_llm_provider_swaps_total",
		Help: "LLM provider swaps by target provider",
	}, []string{"provider"})
)

// LLM metrics.
var (
	LLMCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tutor_llm_calls_total",
		Help: "LLM completion calls by provider and result",
	}, []string{"provider", "result"})

	LLMCallDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tutor_llm_call_duration_seconds",
		Help:    "LLM completion call duration in seconds",
		Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
	}, []string{"provider"})

	ExtractionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tutor_extractions_total",
		Help: "Structured response extractions by response kind and result",
	}, []string{"kind", "result"})
)
