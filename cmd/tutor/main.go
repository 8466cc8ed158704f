package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/instructo/tutor/internal/llm"
	"github.com/instructo/tutor/internal/logger"
	"github.com/instructo/tutor/internal/provider"
	"github.com/instructo/tutor/internal/tutor"
	"github.com/instructo/tutor/internal/web"
	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/samber/lo"
)

func main() {
	if err := mainE(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
	slog.Info("exiting without error")
}

func mainE() error {
	_ = godotenv.Load()

	fs := ff.NewFlagSet("tutor")

	var (
		port            = fs.Int64Long("port", 5000, "HTTP server port")
		llmProvider     = fs.StringEnumLong("llm-provider", "LLM provider used at startup", "gemini", "google", "anthropic")
		llmModel        = fs.StringLong("llm-model", "", "LLM model name (provider default when empty)")
		googleAPIKey    = fs.StringLong("google-api-key", "", "Google API key")
		anthropicAPIKey = fs.StringLong("anthropic-api-key", "", "Anthropic API key")
		llmAttempts     = fs.Int64Long("llm-attempts", tutor.DefaultAttempts, "Completions requested before an unusable response is reported")
		allowedOrigins  = fs.StringLong("allowed-origins", "", "Comma-separated list of allowed CORS origins")
		rateLimitRPS    = fs.Int64Long("rate-limit-rps", 2, "Sustained requests per second allowed per client IP")
		rateLimitBurst  = fs.Int64Long("rate-limit-burst", 10, "Request burst allowed per client IP")
	)

	if err := ff.Parse(fs, os.Args[1:], ff.WithEnvVars()); err != nil {
		fmt.Printf("%s\n", ffhelp.Flags(fs))
		return fmt.Errorf("parsing flags: %w", err)
	}

	log := logger.New()

	ctx, cancel := context.WithCancelCause(context.Background())
	defer cancel(nil)

	factory := provider.NewFactory(provider.Keys{
		Google:    *googleAPIKey,
		Anthropic: *anthropicAPIKey,
	})
	client, info, err := factory.Create(ctx, *llmProvider, provider.Options{ModelName: *llmModel})
	if err != nil {
		return fmt.Errorf("configuring llm: %w", err)
	}
	sw := llm.NewSwitch(client, info)
	log.InfoContext(ctx, "llm configured", "provider", info.Provider, "model", info.Model)

	svc := tutor.NewService(sw, log, tutor.WithAttempts(int(*llmAttempts)))

	origins := lo.Compact(lo.Map(strings.Split(*allowedOrigins, ","), func(o string, _ int) string {
		return strings.TrimSpace(o)
	}))

	router := web.NewRouter(log, sw, svc, factory, origins, web.RateLimit{
		RPS:   float64(*rateLimitRPS),
		Burst: int(*rateLimitBurst),
	})

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", router.Handler(ctx))

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", *port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// Quiz generation can take most of a minute.
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.InfoContext(ctx, "received signal, shutting down gracefully", "signal", sig)
		cancel(errors.New("signal received"))

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.ErrorContext(shutdownCtx, "server shutdown error", "error", err)
		}
	}()

	log.InfoContext(ctx, "starting web server", "port", *port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}
