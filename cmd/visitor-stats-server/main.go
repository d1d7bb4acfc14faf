package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iwvelando/visitor-stats/internal/config"
	"github.com/iwvelando/visitor-stats/internal/dashboard"
	"github.com/iwvelando/visitor-stats/internal/logging"
	"github.com/iwvelando/visitor-stats/internal/server"
	"github.com/iwvelando/visitor-stats/internal/sheets"
	"github.com/iwvelando/visitor-stats/pkg/constants"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	serverConfigPath := flag.String("server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	configOverride := flag.String("config", "", "path to dashboard configuration file (overrides server config)")
	addressOverride := flag.String("address", "", "listen address override")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Printf("{\"op\": \"main\", \"level\": \"warn\", \"msg\": \"failed to load .env\", \"error\": \"%v\"}\n", err)
	}

	serverConf, err := server.LoadConfig(*serverConfigPath)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load server configuration at %s\", \"error\": \"%v\"}\n", *serverConfigPath, err)
		os.Exit(1)
	}
	if *addressOverride != "" {
		serverConf.Address = *addressOverride
	}
	if *configOverride != "" {
		serverConf.ConfigFile = *configOverride
	}

	logger, err := logging.New(serverConf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	conf := config.Default()
	if _, statErr := os.Stat(serverConf.ConfigFile); statErr == nil || *configOverride != "" {
		conf, err = config.LoadConfiguration(serverConf.ConfigFile)
		if err != nil {
			logger.Fatal("failed to load dashboard configuration",
				zap.String("op", "main"),
				zap.String("path", serverConf.ConfigFile),
				zap.Error(err),
			)
		}
	}
	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := sheets.NewClient(logger, conf.Source, nil)
	store := dashboard.NewStore(dashboard.NewLoader(logger, client, conf))

	// Initial load runs in the background so the server answers health checks
	// while the ranges are read.
	go func() {
		if _, err := store.Refresh(ctx); err != nil {
			logger.Error("initial load cycle failed",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	}()

	ln, err := net.Listen("tcp", serverConf.Address)
	if err != nil {
		logger.Fatal("failed to listen",
			zap.String("op", "main"),
			zap.String("address", serverConf.Address),
			zap.Error(err),
		)
	}

	srv := &http.Server{
		Handler:           server.NewHandler(ctx, logger, store, conf, version),
		ReadHeaderTimeout: 10 * time.Second,
	}
	if err := server.Serve(ctx, logger, srv, ln, serverConf.ShutdownTimeoutDuration()); err != nil {
		logger.Error("server exited with error",
			zap.String("op", "main"),
			zap.Error(err),
		)
		_ = logger.Sync()
		os.Exit(1)
	}
}
