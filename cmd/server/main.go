package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/gliderlabs/ssh"
	"github.com/joho/godotenv"

	"github.com/qnkhuat/weetris/pkg"
	"github.com/qnkhuat/weetris/pkg/config"
)

func main() {
	// A missing .env file is fine.
	_ = godotenv.Load()

	configPath := flag.String("config", os.Getenv("WEETRIS_CONFIG"), "path to config file")
	logPath := flag.String("log", "", "path to log file (overrides the config)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "failed to start server: %s\n", err)
			os.Exit(1)
		}
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to start server: invalid config: %s\n", err)
		os.Exit(1)
	}

	if *logPath == "" {
		*logPath = cfg.Log.File
	}
	logger, err := pkg.InitLog(*logPath, "SERVER")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start server: %s\n", err)
		os.Exit(1)
	}
	if level, err := log.ParseLevel(cfg.Log.Level); err == nil {
		logger.SetLevel(level)
	}

	s, err := pkg.NewServer(cfg.Server, *configPath, logger)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("failed to serve", "err", err)
		}
	}()

	logger.Info("server started", "listen", cfg.Server.Listen, "binary", cfg.Server.Binary)
	color.New(color.FgGreen).Printf("Serving WeeTris on %s\n", cfg.Server.Listen)

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc,
		syscall.SIGINT,
		syscall.SIGTERM)
	<-sigc

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		logger.Error("failed to shut down", "err", err)
	}
	logger.Info("server stopped", "sessions", s.Sessions())
}
