// Command homepland serves house construction plans over HTTP. Plans come
// from a chain of generation backends when one is reachable and from a
// deterministic local template when none is; the server starts and answers
// either way.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/planforge/homeplan/backend"
	"github.com/planforge/homeplan/core"
	"github.com/planforge/homeplan/crew"
	"github.com/planforge/homeplan/internal/config"
	"github.com/planforge/homeplan/internal/httpapi"
	"github.com/planforge/homeplan/internal/logging"
	"github.com/planforge/homeplan/telemetry"

	// Register generation providers
	_ "github.com/planforge/homeplan/backend/providers/gemini"
	_ "github.com/planforge/homeplan/backend/providers/palm"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "homepland: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format)

	var tel core.Telemetry = &core.NoOpTelemetry{}
	otelProvider, err := telemetry.NewOTelProvider("homepland")
	if err != nil {
		logger.Warn("Telemetry initialization failed, continuing without tracing", map[string]interface{}{
			"operation": "startup",
			"error":     err.Error(),
		})
	} else {
		tel = otelProvider
		defer func() {
			_ = otelProvider.Shutdown(context.Background())
		}()
	}

	invoker := buildInvoker(cfg, logger, tel)
	planCrew := crew.New(invoker, crew.WithLogger(logger), crew.WithTelemetry(tel))

	router := httpapi.NewRouter(planCrew, logger)
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server listening", map[string]interface{}{
			"operation":         "startup",
			"addr":              cfg.Server.Addr,
			"version":           Version,
			"commit":            GitCommit,
			"backend_available": planCrew.Available(),
		})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		logger.Info("Shutting down", map[string]interface{}{
			"operation": "shutdown",
			"signal":    sig.String(),
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}

// buildInvoker constructs the backend invoker, degrading to nil when no
// provider is usable. A nil invoker routes every request to the local
// fallback; it is never a startup failure.
func buildInvoker(cfg *config.Config, logger core.Logger, tel core.Telemetry) *backend.Invoker {
	chain := backend.DefaultChain()
	if cfg.Backend.ChainFile != "" {
		loaded, err := backend.LoadChainFile(cfg.Backend.ChainFile)
		if err != nil {
			logger.Warn("Chain file unusable, using default chain", map[string]interface{}{
				"operation":  "startup",
				"chain_file": cfg.Backend.ChainFile,
				"error":      err.Error(),
			})
		} else {
			chain = loaded
		}
	}

	// A forced provider narrows the chain to that family's backends
	if p := cfg.Backend.Provider; p != "" && p != backend.ProviderAuto {
		var narrowed []backend.Backend
		for _, b := range chain {
			if b.Provider == p {
				narrowed = append(narrowed, b)
			}
		}
		if len(narrowed) == 0 {
			logger.Warn("Forced provider has no backends in chain, keeping full chain", map[string]interface{}{
				"operation": "startup",
				"provider":  p,
			})
		} else {
			chain = narrowed
		}
	}

	opts := []backend.Option{
		backend.WithTimeout(cfg.Backend.Timeout),
		backend.WithTemperature(cfg.Backend.Temperature),
		backend.WithMaxTokens(cfg.Backend.MaxTokens),
		backend.WithLogger(logger),
		backend.WithTelemetry(tel),
	}

	invoker, err := backend.NewInvoker(chain, opts...)
	if err != nil {
		logger.Warn("No generation backend available, serving local fallback plans only", map[string]interface{}{
			"operation": "startup",
			"error":     err.Error(),
		})
		return nil
	}
	return invoker
}
