package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"codereview-backend/internal/config"
	"codereview-backend/internal/handlers"
	"codereview-backend/internal/observability"
	"codereview-backend/internal/router"
	"codereview-backend/internal/services"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var agentVariant, provider string

	cmd := &cobra.Command{
		Use:           "codereviewd",
		Short:         "Code review and weather agent HTTP backend",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			applyFlags(cmd, cfg, agentVariant, provider)
			if err := cfg.Validate(); err != nil {
				return err
			}
			cfg.RequireCredentials()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, cfg)
		},
	}

	cmd.Flags().StringVar(&agentVariant, "agent", "", "Agents to serve: review, weather or all (overrides AGENT_VARIANT)")
	cmd.Flags().StringVar(&provider, "provider", "", "Model backend: gemini, openai or fake (overrides AGENT_PROVIDER)")

	return cmd
}

// applyFlags lets explicitly set flags win over the environment.
func applyFlags(cmd *cobra.Command, cfg *config.Config, agentVariant, provider string) {
	if cmd.Flags().Changed("agent") {
		cfg.AgentVariant = agentVariant
	}
	if cmd.Flags().Changed("provider") {
		cfg.AgentProvider = provider
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	// ──── Step 1: Logger ────
	logger, err := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck // best-effort

	metrics := observability.NewMetrics()

	// ──── Step 2: Model provider ────
	provider, err := newProvider(ctx, cfg)
	if err != nil {
		return err
	}
	defer provider.Close()
	logger.Info("agent provider ready", zap.String("provider", cfg.AgentProvider), zap.String("variant", cfg.AgentVariant))

	// ──── Step 3: Handlers + router ────
	reviewHandler, weatherHandler := newHandlers(cfg, provider, metrics, logger)
	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           router.New(logger, metrics, reviewHandler, weatherHandler),
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	servers := []*http.Server{server}
	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{}))
		servers = append(servers, &http.Server{Addr: cfg.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second})
	}

	// ──── Step 4: Serve until signalled ────
	errCh := make(chan error, len(servers))
	for _, srv := range servers {
		go func(srv *http.Server) {
			logger.Info("listening", zap.String("addr", srv.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}(srv)
	}

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeout)*time.Second)
	defer cancel()
	for _, srv := range servers {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}
	return nil
}

func newProvider(ctx context.Context, cfg *config.Config) (services.Provider, error) {
	switch cfg.AgentProvider {
	case config.ProviderGemini:
		p, err := services.NewGeminiProvider(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, err
		}
		return p, nil
	case config.ProviderOpenAI:
		return services.NewOpenAIProvider(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIModel), nil
	case config.ProviderFake:
		return services.FakeProvider{}, nil
	default:
		return nil, fmt.Errorf("unknown agent provider %q", cfg.AgentProvider)
	}
}

func newHandlers(cfg *config.Config, provider services.Provider, metrics *observability.Metrics, logger *zap.Logger) (*handlers.ReviewHandler, *handlers.WeatherHandler) {
	var rh *handlers.ReviewHandler
	var wh *handlers.WeatherHandler
	if cfg.ServesReview() {
		rh = handlers.NewReviewHandler(provider.Agent(services.ReviewAgent), metrics, logger)
	}
	if cfg.ServesWeather() {
		wh = handlers.NewWeatherHandler(provider.Agent(services.WeatherAgent), metrics, logger)
	}
	return rh, wh
}
