package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/shubhamkumaar/socioBuy-backend/internal/auth"
	"github.com/shubhamkumaar/socioBuy-backend/internal/config"
	"github.com/shubhamkumaar/socioBuy-backend/internal/graph"
	"github.com/shubhamkumaar/socioBuy-backend/internal/logging"
	"github.com/shubhamkumaar/socioBuy-backend/internal/repository"
	"github.com/shubhamkumaar/socioBuy-backend/internal/server"
	"github.com/shubhamkumaar/socioBuy-backend/internal/service"
	"github.com/shubhamkumaar/socioBuy-backend/internal/suggest"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging)

	graphClient, err := buildGraphClient(ctx, cfg)
	if err != nil {
		logger.Error("failed to create graph client", "error", err)
		os.Exit(1)
	}
	defer func() {
		if graphClient != nil {
			if err := graphClient.Close(context.Background()); err != nil {
				logger.Warn("closing graph client failed", "error", err)
			}
		}
	}()

	tokens, err := auth.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		logger.Error("failed to initialise token manager", "error", err)
		os.Exit(1)
	}

	repo := repository.New(graphClient)

	janitorCtx, stopJanitor := context.WithCancel(ctx)
	defer stopJanitor()
	go purgeRevokedTokens(janitorCtx, logger, repo)

	accounts := service.NewAccountService(repo, tokens, logger)
	social := service.NewSocialService(repo, logger)
	catalog := service.NewCatalogService(repo)
	orders := service.NewOrderService(repo)

	suggester := suggest.NewClient(cfg.Suggest.BaseURL, cfg.Suggest.APIKey, cfg.Suggest.Timeout)
	if !suggester.Enabled() {
		logger.Info("suggestion generator disabled, cart responses carry raw proof data only")
	}

	apiHandlers := server.NewAPIHandlers(logger, accounts, social, catalog, orders, suggester)

	router := server.NewRouter(logger, server.RouterDependencies{
		Health:         server.GraphHealthService{Client: graphClient},
		API:            apiHandlers,
		Auth:           accounts,
		AllowedOrigins: parseAllowedOrigins(cfg.HTTP.AllowedOriginsCSV),
	})

	srv := server.New(logger, cfg.HTTP, router)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("received shutdown signal", "signal", sig.String())
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("server stopped unexpectedly", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}

func buildGraphClient(ctx context.Context, cfg config.Config) (graph.Querier, error) {
	if cfg.Graph.URI == "" {
		return nil, graph.ErrMissingURI
	}

	opts := graph.Options{
		URI:            cfg.Graph.URI,
		Database:       cfg.Graph.Database,
		Username:       cfg.Graph.Username,
		Password:       cfg.Graph.Password,
		MaxConnections: cfg.Graph.MaxConnections,
	}
	return graph.Connect(ctx, opts)
}

// purgeRevokedTokens drops expired revocation markers once an hour so the
// blocklist stays bounded by the token TTL.
func purgeRevokedTokens(ctx context.Context, logger *slog.Logger, repo *repository.Repository) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if err := repo.PurgeExpiredTokens(ctx, now.UTC()); err != nil {
				logger.Warn("purging revoked tokens failed", "error", err)
			}
		}
	}
}

func parseAllowedOrigins(csv string) []string {
	if csv == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	var origins []string
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin == "" {
			continue
		}
		origins = append(origins, origin)
	}
	return origins
}
