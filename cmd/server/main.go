package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/maxence-charriere/go-app/v9/pkg/app"

	"relman/checker"
	"relman/config"
	"relman/logger"
	"relman/server"
	"relman/ui"
)

func main() {
	configPath := flag.String("config", "", "path to a relman.yml config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Options{
		Level:         cfg.LogLevel,
		HumanReadable: cfg.LogHuman,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	logger.Init(log)
	if cfg.ConfigPath != "" {
		log.Info("loaded config from " + cfg.ConfigPath)
	}

	handler := &app.Handler{
		Name:        cfg.AppName,
		ShortName:   cfg.AppName,
		Description: "People relationship manager",
		RawHeaders: []string{
			`<link href="https://fonts.googleapis.com/css2?family=Roboto:wght@400;500;700&display=swap" rel="stylesheet">`,
			`<link rel="stylesheet" href="https://fonts.googleapis.com/css2?family=Material+Symbols+Rounded:opsz,wght,FILL,GRAD@24,400,0,0" />`,
		},
		Styles: []string{
			"/web/app.css",
		},
		Env: app.Environment{
			ui.APIBaseURLEnv: cfg.APIBaseURL,
			ui.AppNameEnv:    cfg.AppName,
		},
	}

	// Same routes as the wasm client so the server prerenders them.
	ui.Routes()

	status := checker.New(cfg.APIBaseURL, cfg.StatusTimeout)
	srv := server.New(cfg.Addr, handler, status, log)
	if err := srv.Start(); err != nil {
		log.Error(err, "failed to start server")
		os.Exit(1)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Info("shutting down")
	if err := srv.Stop(); err != nil {
		log.Error(err, "shutdown failed")
		os.Exit(1)
	}
}
