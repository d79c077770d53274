package main

import (
	"flag"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/starwave-dev/starboard/internal/config"
	"github.com/starwave-dev/starboard/internal/logger"
	"github.com/starwave-dev/starboard/internal/router"
	"github.com/starwave-dev/starboard/internal/setup"
)

func main() {
	var configFolder string
	flag.StringVar(&configFolder, "config_folder", "config", "path to folder with configs")
	flag.Parse()

	// .env is optional; real deployments set env vars directly
	_ = godotenv.Load()

	cfg := config.MustLoad(configFolder)
	logger.Initialize(cfg.Public.LogLevel, cfg.Public.LogJSON)

	deps, err := setup.SetupDependencies(cfg)
	if err != nil {
		logger.Log.Error("failed to initialize dependencies", "error", err)
		os.Exit(1)
	}
	defer deps.Storage.Cleanup()

	r := router.New(deps)

	addr := cfg.Public.Addr
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}

	logger.Log.Info("server started", "addr", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		logger.Log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
