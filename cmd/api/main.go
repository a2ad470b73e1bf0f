package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"creatoriq/internal/adapter/repo"
	"creatoriq/internal/cache"
	"creatoriq/internal/http/handlers"
	"creatoriq/internal/http/httpapi"
	"creatoriq/internal/idea"
	"creatoriq/internal/infra"
	"creatoriq/internal/migrate"
	"creatoriq/internal/providers/ideagen"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer pool.Close()

	if err := migrate.Migrate(ctx, pool); err != nil {
		logger.Fatal().Err(err).Msg("failed to apply migrations")
	}

	var ideaCache idea.TerminalCache
	redisClient, err := infra.NewRedisClient(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect redis")
	}
	if redisClient != nil {
		defer func() {
			_ = redisClient.Close()
		}()
		ideaCache = cache.NewIdeaCache(redisClient, logger, cfg.IdeaCacheTTL)
		logger.Info().Msg("idea poll cache enabled")
	}

	generator, err := newGenerator(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure idea provider")
	}
	logger.Info().Str("provider", generator.Name()).Msg("idea provider configured")

	ideas := idea.NewService(idea.Options{
		Repo:            repo.NewIdeaRepository(pool),
		Generator:       generator,
		Cache:           ideaCache,
		Logger:          logger,
		ProviderTimeout: cfg.ProviderTimeout,
	})

	app := handlers.NewApp(handlers.Options{
		Ideas:      ideas,
		Users:      repo.NewUserRepository(pool),
		Analytics:  repo.NewAnalyticsRepository(pool),
		Logger:     logger,
		JWTSecret:  cfg.JWTSecret,
		BcryptCost: cfg.BcryptCost,
	})

	router := httpapi.NewRouter(httpapi.Options{
		App:             app,
		Logger:          logger,
		JWTSecret:       cfg.JWTSecret,
		AllowedOrigins:  cfg.AllowedOrigins,
		RateLimitPerMin: cfg.RateLimitPerMin,
	})

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	// Let in-flight generations finish their terminal writes.
	ideas.Wait()
	logger.Info().Msg("server stopped")
}

func newGenerator(cfg *infra.Config) (ideagen.Generator, error) {
	switch cfg.IdeaProvider {
	case "gemini":
		return ideagen.NewGeminiGenerator(ideagen.GeminiOptions{
			APIKey:  cfg.GeminiAPIKey,
			Model:   cfg.GeminiModel,
			BaseURL: cfg.GeminiBaseURL,
		})
	default:
		return ideagen.NewOpenAIGenerator(ideagen.OpenAIOptions{
			APIKey:       cfg.OpenAIAPIKey,
			Model:        cfg.OpenAIModel,
			BaseURL:      cfg.OpenAIBaseURL,
			Organization: cfg.OpenAIOrg,
		})
	}
}
