package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"voice-ghostwriter/internal/adapters/model"
	"voice-ghostwriter/internal/adapters/research"
	"voice-ghostwriter/internal/domain"
	"voice-ghostwriter/internal/infra/config"
	httpinfra "voice-ghostwriter/internal/infra/http"
	applog "voice-ghostwriter/internal/infra/log"
	"voice-ghostwriter/internal/infra/metrics"
	"voice-ghostwriter/internal/styleguide"
	"voice-ghostwriter/internal/usecase/generate"
)

func main() {
	cfg := config.Load()
	logger := applog.NewLogger(cfg.AppEnv)

	metrics.MustRegister(prometheus.DefaultRegisterer)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	profile, err := styleguide.LoadProfile(cfg.StyleProfilePath())
	if err != nil {
		logger.Fatal().Err(err).Msg("api: failed to load style profile")
	}

	modelProvider, err := model.New(model.Config{
		Provider:     cfg.Model.Provider,
		Model:        cfg.Model.Name,
		Timeout:      cfg.Model.Timeout,
		AnthropicKey: cfg.Model.AnthropicKey,
		AnthropicURL: cfg.Model.AnthropicURL,
		OpenAIKey:    cfg.Model.OpenAIKey,
		OpenAIURL:    cfg.Model.OpenAIURL,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("api: invalid model configuration")
	}
	if modelProvider == nil {
		logger.Warn().Msg("api: no model key configured, serving fallback drafts only")
	}

	searchProvider, err := research.New(research.Config{
		Provider: cfg.Research.Provider,
		APIKey:   cfg.ResearchKey(),
		Timeout:  cfg.Research.Timeout,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("api: invalid research configuration")
	}

	svc := generate.NewService(profile, modelProvider, searchProvider, nil, logger)

	server := httpinfra.NewServer(logger)
	server.Router.Post("/api/v1/posts/generate", handleGenerate(svc))
	server.Router.Get("/api/v1/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"available": svc.Available()})
	})

	metrics.StartServer(ctx, logger.With().Str("component", "metrics").Logger(), cfg.MetricsAddr)

	go func() {
		if err := server.Start(fmt.Sprintf(":%d", cfg.Port)); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("api: server stopped")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("api: shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = server.Shutdown(shutdownCtx)
}

type generateRequest struct {
	Platform      string   `json:"platform"`
	Context       string   `json:"context"`
	Facts         []string `json:"facts"`
	Angle         string   `json:"angle"`
	CTA           string   `json:"cta"`
	Thread        bool     `json:"thread"`
	Variants      int      `json:"variants"`
	MaxChars      int      `json:"max_chars"`
	AllowResearch *bool    `json:"allow_research"`
	ResearchQuery string   `json:"research_query"`
	AutoResearch  *bool    `json:"auto_research"`
	Proofread     *bool    `json:"proofread"`
}

func handleGenerate(svc *generate.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		req.Platform = strings.ToLower(strings.TrimSpace(req.Platform))
		if !domain.KnownPlatform(req.Platform) {
			writeError(w, http.StatusBadRequest, "platform must be 'x' or 'linkedin'")
			return
		}
		if strings.TrimSpace(req.Context) == "" {
			writeError(w, http.StatusBadRequest, "context is required")
			return
		}

		result := svc.Generate(r.Context(), domain.GenerateRequest{
			Platform:      req.Platform,
			Context:       req.Context,
			Facts:         req.Facts,
			Angle:         req.Angle,
			CTA:           req.CTA,
			Thread:        req.Thread,
			Variants:      req.Variants,
			MaxChars:      req.MaxChars,
			AllowResearch: boolDefault(req.AllowResearch, true),
			ResearchQuery: req.ResearchQuery,
			AutoResearch:  boolDefault(req.AutoResearch, true),
			Proofread:     boolDefault(req.Proofread, true),
		})
		if result.Warnings == nil {
			result.Warnings = []string{}
		}
		writeJSON(w, result)
	}
}

func boolDefault(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"error": msg})
}
