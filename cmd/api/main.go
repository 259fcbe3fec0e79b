package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"server/internal/adapter/repo"
	"server/internal/generation"
	"server/internal/http/handlers"
	"server/internal/http/httpapi"
	"server/internal/infra"
	"server/internal/infra/credentials"
	"server/internal/infra/geoip"
	"server/internal/middleware"
	"server/internal/providers/genai"
	"server/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	var lookup middleware.CountryLookup
	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip disabled")
	} else if resolver != nil {
		lookup = resolver.CountryCode
	}

	api, err := genai.NewClient(genai.Options{
		APIKey:  cfg.GeminiAPIKey,
		BaseURL: cfg.GeminiBaseURL,
		Logger:  &logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure generation provider")
	}
	if !api.HasAPIKey() {
		logger.Warn().Msg("no GEMINI_API_KEY set; generation requires a stored credential")
	}

	creds := credentials.NewStore(dbpool, cfg.GeminiAPIKey)
	gen := generation.NewClient(api, generation.ModelConfig{
		Fast:     cfg.ModelFast,
		Pro:      cfg.ModelPro,
		Image:    cfg.ModelImage,
		ImagePro: cfg.ModelImagePro,
		Video:    cfg.ModelVideo,
	}, creds, logger)

	files, err := storage.NewFileStore(cfg.StorageDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure asset storage")
	}

	app := &handlers.App{
		Cfg:      cfg,
		Logger:   logger,
		Gen:      gen,
		Profiles: repo.NewProfileRepository(dbpool),
		Plans:    repo.NewPlanRepository(dbpool),
		Jobs:     repo.NewJobRepository(dbpool),
		Assets:   repo.NewAssetRepository(dbpool),
		Orders:   repo.NewOrderRepository(dbpool),
		Chats:    repo.NewChatRepository(dbpool),
		Workouts: repo.NewWorkoutLogRepository(dbpool),
		Creds:    creds,
		Files:    files,
	}

	router := httpapi.NewRouter(app, cfg, logger, lookup)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && err != os.ErrClosed {
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
	logger.Info().Msg("server stopped")
}
