package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/qnkhuat/weetris/pkg"
	"github.com/qnkhuat/weetris/pkg/config"
)

func loadConfig(path string) (*config.Config, error) {
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func main() {
	configPath := flag.String("config", os.Getenv("WEETRIS_CONFIG"), "path to config file")
	logPath := flag.String("log", "", "path to log file (overrides the config)")
	name := flag.String("name", "", "player name")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "failed to start weetris: non-interactive terminals are not supported")
		os.Exit(1)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start weetris: %s\n", err)
		os.Exit(1)
	}

	if *logPath == "" {
		*logPath = cfg.Log.File
	}
	logger, err := pkg.InitLog(*logPath, "CLIENT")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start weetris: %s\n", err)
		os.Exit(1)
	}
	if level, err := log.ParseLevel(cfg.Log.Level); err == nil {
		logger.SetLevel(level)
	}
	if *debug {
		logger.SetLevel(log.DebugLevel)
	}

	scores, err := config.LoadScores(cfg.Scores, logger)
	if err != nil {
		logger.Fatal("failed to load scores", "err", err)
	}

	cl := pkg.NewClient(pkg.Nickname(*name), cfg, scores, logger)
	logger.Info("new client", "name", cl.Player.Name)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGHUP)
	go func() {
		for sig := range sigc {
			if sig != syscall.SIGHUP {
				cancel()
				return
			}

			if *configPath == "" {
				continue
			}
			cfg, err := loadConfig(*configPath)
			if err != nil {
				logger.Error("failed to reload config", "err", err)
				continue
			}
			cl.Reload(cfg)
		}
	}()

	if err := cl.Run(ctx); err != nil {
		logger.Fatal("client stopped", "err", err)
	}

	color.New(color.FgYellow, color.Bold).Println("Thank you for playing WeeTris!")
}
