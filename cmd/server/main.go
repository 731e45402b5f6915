package main

import (
	"context"
	"fmt"

	"github.com/SACHINKATHAR2005/viralprompts/internal/cache"
	"github.com/SACHINKATHAR2005/viralprompts/internal/config"
	"github.com/SACHINKATHAR2005/viralprompts/internal/crypto"
	"github.com/SACHINKATHAR2005/viralprompts/internal/handler"
	"github.com/SACHINKATHAR2005/viralprompts/internal/kv"
	"github.com/SACHINKATHAR2005/viralprompts/internal/logger"
	"github.com/SACHINKATHAR2005/viralprompts/internal/ratelimit"
	"github.com/SACHINKATHAR2005/viralprompts/internal/server"
	"github.com/SACHINKATHAR2005/viralprompts/internal/service"
	"github.com/SACHINKATHAR2005/viralprompts/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("viralprompts-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := context.Background()

	cipher, err := crypto.NewCipher(cfg.App.EncryptionSecret, cfg.App.IsProduction(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating field cipher")
	}
	if !cipher.SelfTest() {
		log.Fatal().Msg("field cipher self-test failed")
	}

	// The rate limiter and the response cache share one Redis pool and
	// both fail open when it is unreachable, so a missing Redis address
	// never blocks startup.
	kvStore := kv.Connect(ctx, cfg.Storage.Redis, log)
	defer kvStore.Close()

	limiter := ratelimit.NewLimiter(kvStore, log)
	respCache := cache.NewCache(kvStore, cfg.Cache.TTL, log)

	storages, err := store.NewStorages(ctx, cfg.Storage, cipher, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	services := service.NewServices(storages, *cfg, limiter, respCache, log)

	handlers, err := handler.NewHandlers(services, limiter, respCache, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
