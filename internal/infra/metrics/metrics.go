package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

var (
	NetworkRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "network_request_duration_seconds",
		Help:    "Duration of outbound network requests",
		Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 15, 20, 30, 45, 60, 90, 120},
	}, []string{"component", "operation", "target", "status"})

	NetworkRequestTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "network_request_total",
		Help: "Count of outbound network requests",
	}, []string{"component", "operation", "target", "status"})

	LLMGenerationDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "llm_generation_duration_seconds",
		Help:    "Duration of LLM completion calls",
		Buckets: prometheus.DefBuckets,
	}, []string{"model"})

	LLMTokensTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "llm_tokens_total",
		Help: "Tokens consumed by LLM completion calls",
	}, []string{"model", "type"})

	GenerateRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "generate_requests_total",
		Help: "Draft generation requests by platform",
	}, []string{"platform"})

	GenerateFallbackTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "generate_fallback_total",
		Help: "Generations that degraded to the deterministic template",
	}, []string{"reason"})

	GenerateDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "generate_duration_seconds",
		Help:    "End-to-end draft generation time",
		Buckets: prometheus.DefBuckets,
	})

	IngestedPostsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ingested_posts_total",
		Help: "Posts kept by the ingestion pipeline, by source",
	}, []string{"source"})
)

// MustRegister registers all metric families.
func MustRegister(registerer prometheus.Registerer) {
	registerer.MustRegister(
		NetworkRequestDuration,
		NetworkRequestTotal,
		LLMGenerationDuration,
		LLMTokensTotal,
		GenerateRequestsTotal,
		GenerateFallbackTotal,
		GenerateDuration,
		IngestedPostsTotal,
	)
}

// StartServer runs the standalone HTTP server with the /metrics endpoint.
func StartServer(ctx context.Context, logger zerolog.Logger, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("metrics: graceful shutdown failed")
		}
	}()

	go func() {
		logger.Info().Str("addr", addr).Msg("metrics: server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("metrics: server stopped")
		}
	}()
}

// ObserveNetworkRequest records the duration and status of one outbound call.
func ObserveNetworkRequest(component, operation, target string, start time.Time, err error) {
	if component == "" {
		component = "unknown"
	}
	if operation == "" {
		operation = "unknown"
	}
	if target == "" {
		target = "unknown"
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	duration := time.Since(start).Seconds()
	NetworkRequestDuration.WithLabelValues(component, operation, target, status).Observe(duration)
	NetworkRequestTotal.WithLabelValues(component, operation, target, status).Inc()
}

// ObserveLLMGeneration records the duration and token usage of one completion.
func ObserveLLMGeneration(model string, duration time.Duration, promptTokens, completionTokens, totalTokens int) {
	if model == "" {
		model = "unknown"
	}
	LLMGenerationDuration.WithLabelValues(model).Observe(duration.Seconds())
	if promptTokens > 0 {
		LLMTokensTotal.WithLabelValues(model, "prompt").Add(float64(promptTokens))
	}
	if completionTokens > 0 {
		LLMTokensTotal.WithLabelValues(model, "completion").Add(float64(completionTokens))
	}
	if totalTokens <= 0 {
		totalTokens = promptTokens + completionTokens
	}
	if totalTokens > 0 {
		LLMTokensTotal.WithLabelValues(model, "total").Add(float64(totalTokens))
	}
}

// IncGenerateRequest counts one generation request.
func IncGenerateRequest(platform string) {
	GenerateRequestsTotal.WithLabelValues(platform).Inc()
}

// IncGenerateFallback counts one degradation to the template path.
func IncGenerateFallback(reason string) {
	GenerateFallbackTotal.WithLabelValues(reason).Inc()
}

// AddIngestedPosts counts kept posts for a given extraction source.
func AddIngestedPosts(source string, count int) {
	if count <= 0 {
		return
	}
	IngestedPostsTotal.WithLabelValues(source).Add(float64(count))
}
