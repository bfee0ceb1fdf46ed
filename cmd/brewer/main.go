// Package main provides the brewing agent binary: it reads turn snapshots
// from stdin and writes one action per turn to stdout.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/brewer/internal/agent"
	"github.com/cory-johannsen/brewer/internal/config"
	"github.com/cory-johannsen/brewer/internal/feed"
	"github.com/cory-johannsen/brewer/internal/game/ai"
	"github.com/cory-johannsen/brewer/internal/observability"
	"github.com/cory-johannsen/brewer/internal/scripting"
	"github.com/cory-johannsen/brewer/internal/server"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "", "path to configuration file; empty = defaults and BREWER_* env")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	baseLogger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer baseLogger.Sync()

	sessionID := uuid.NewString()
	logger := observability.WithSession(baseLogger, sessionID)
	logger.Info("starting brewer",
		zap.String("config", *configPath),
	)

	// An untyped nil keeps the lua scorer's missing-caller check meaningful.
	var caller ai.ScriptCaller
	if cfg.Scripting.ScriptDir != "" {
		scriptMgr := scripting.NewManager(logger)
		if err := scriptMgr.Load(cfg.Scripting.ScriptDir, cfg.Scripting.InstructionLimit); err != nil {
			logger.Fatal("loading scripts", zap.Error(err))
		}
		defer scriptMgr.Close()
		caller = scriptMgr
	}

	kernel, _, err := agent.BuildKernel(cfg.Kernel, caller, logger)
	if err != nil {
		logger.Fatal("building kernel", zap.Error(err))
	}

	brewer := agent.New(
		feed.NewReader(os.Stdin, cfg.Feed.MaxRecords, logger),
		feed.NewWriter(os.Stdout),
		kernel,
		logger,
	)

	lifecycle := server.NewLifecycle(logger)
	lifecycle.Add("agent", brewer)

	logger.Info("brewer initialized",
		zap.Duration("startup", time.Since(start)),
	)

	if err := lifecycle.Run(context.Background()); err != nil {
		logger.Error("brewer stopped with error",
			zap.Error(err),
			zap.Int64("turns", brewer.Turns()),
		)
		_ = baseLogger.Sync()
		os.Exit(1)
	}
	logger.Info("brewer finished",
		zap.Int64("turns", brewer.Turns()),
	)
}
