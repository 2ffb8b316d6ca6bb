// Package main is the entry point for the arcanvas viewer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/arcanvas/internal/app"
	"github.com/Faultbox/arcanvas/internal/config"
	"github.com/Faultbox/arcanvas/internal/logger"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== arcanvas ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	a, err := app.New(cfg)
	if err != nil {
		logger.Error("failed to create app", zap.Error(err))
		os.Exit(1)
	}
	defer a.Close()

	if err := a.Run(); err != nil {
		logger.Error("app error", zap.Error(err))
		os.Exit(1)
	}

	// Persist user preferences for the next session. Placed objects are
	// ephemeral and never saved.
	cfg.Placement.DefaultMode = a.Mode().String()
	cfg.Placement.ShowSurfaces = a.ShowSurfaces()
	if err := cfg.Save(); err != nil {
		logger.Warn("failed to save config", zap.Error(err))
	}

	logger.Info("closed normally")
}
