package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Fesius1/Grand/internal/config"
	"github.com/Fesius1/Grand/internal/logger"
	"github.com/Fesius1/Grand/internal/server"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to the config file")
	flag.Parse()

	if err := logger.Init(); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Close()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.LogError("failed to load config, using defaults: %v", err)
		cfg = config.Default()
	}

	srv, err := server.NewServer(cfg)
	if err != nil {
		log.Fatalf("failed to create server: %v", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.LogInfo("shutting down server")
		srv.Shutdown()
		os.Exit(0)
	}()

	if err := srv.Start(); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
