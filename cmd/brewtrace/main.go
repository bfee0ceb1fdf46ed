// Package main provides brewtrace, an offline tool that explains the
// brewing agent's decision for scenario fixtures or captured feed turns.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cory-johannsen/brewer/internal/agent"
	"github.com/cory-johannsen/brewer/internal/config"
	"github.com/cory-johannsen/brewer/internal/feed"
	"github.com/cory-johannsen/brewer/internal/game/ai"
	"github.com/cory-johannsen/brewer/internal/game/scenario"
	"github.com/cory-johannsen/brewer/internal/observability"
	"github.com/cory-johannsen/brewer/internal/scripting"
	"github.com/cory-johannsen/brewer/internal/trace"
)

var (
	configFile string
	profile    string
	policy     string
	verbose    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "brewtrace",
		Short: "Explain brewing agent decisions",
		Long: `Replays turn snapshots through the decision kernel and prints the
potion ranking, the bridging search, and the chosen action.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to YAML config file")
	rootCmd.PersistentFlags().StringVarP(&profile, "profile", "p", "", "Kernel profile to use (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&policy, "uncastable", "u", "", "Uncastable policy: rest or cast (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log kernel debug output to stderr")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "scenarios <file-or-dir>",
		Short: "Replay YAML scenarios and check expected actions",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenarios,
	})
	rootCmd.AddCommand(&cobra.Command{
		Use:   "feed <file>",
		Short: "Replay a captured state feed, one explanation per turn",
		Args:  cobra.ExactArgs(1),
		RunE:  runFeed,
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads config, applies flag overrides, and builds the kernel.
func setup() (*ai.Kernel, config.Config, *zap.Logger, func(), error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, cfg, nil, nil, fmt.Errorf("loading config: %w", err)
	}
	if profile != "" {
		cfg.Kernel.Profile = profile
		if cfg.Kernel.ProfilesDir == "" {
			cfg.Kernel.ProfilesDir = "configs/profiles"
		}
	}
	if policy != "" {
		cfg.Kernel.UncastablePolicy = policy
	}
	if verbose {
		cfg.Logging.Level = "debug"
		cfg.Logging.Format = "console"
	}
	if err := cfg.Validate(); err != nil {
		return nil, cfg, nil, nil, err
	}

	logger := zap.NewNop()
	if verbose {
		if logger, err = observability.NewLogger(cfg.Logging); err != nil {
			return nil, cfg, nil, nil, fmt.Errorf("initializing logger: %w", err)
		}
	}

	cleanup := func() { _ = logger.Sync() }
	var caller ai.ScriptCaller
	if cfg.Scripting.ScriptDir != "" {
		scriptMgr := scripting.NewManager(logger)
		if err := scriptMgr.Load(cfg.Scripting.ScriptDir, cfg.Scripting.InstructionLimit); err != nil {
			return nil, cfg, nil, nil, err
		}
		caller = scriptMgr
		cleanup = func() {
			scriptMgr.Close()
			_ = logger.Sync()
		}
	}

	kernel, p, err := agent.BuildKernel(cfg.Kernel, caller, logger)
	if err != nil {
		cleanup()
		return nil, cfg, nil, nil, err
	}
	color.New(color.FgCyan).Printf("profile %s: scorer=%s uncastable=%s\n", p.ID, p.Scorer, p.Policy())
	return kernel, cfg, logger, cleanup, nil
}

func runScenarios(cmd *cobra.Command, args []string) error {
	kernel, _, logger, cleanup, err := setup()
	if err != nil {
		return err
	}
	defer cleanup()

	scenarios, err := loadScenarios(args[0])
	if err != nil {
		return err
	}

	explainer := trace.NewExplainer(os.Stdout, kernel)
	failed := 0
	for _, sc := range scenarios {
		title := sc.ID
		if sc.Description != "" {
			title += ": " + sc.Description
		}
		d := explainer.Explain(title, sc.ToTurn(logger))
		if !explainer.Check(d, sc.Expect) {
			failed++
		}
	}

	fmt.Println()
	if failed > 0 {
		return fmt.Errorf("%d of %d scenarios failed", failed, len(scenarios))
	}
	color.New(color.FgGreen, color.Bold).Printf("✓ %d scenarios ok\n", len(scenarios))
	return nil
}

func loadScenarios(path string) ([]*scenario.Scenario, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return scenario.LoadDir(path)
	}
	return scenario.LoadFile(path)
}

func runFeed(cmd *cobra.Command, args []string) error {
	kernel, cfg, logger, cleanup, err := setup()
	if err != nil {
		return err
	}
	defer cleanup()

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	reader := feed.NewReader(f, cfg.Feed.MaxRecords, logger)
	explainer := trace.NewExplainer(os.Stdout, kernel)
	for n := 1; ; n++ {
		turn, err := reader.ReadTurn()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("turn %d: %w", n, err)
		}
		explainer.Explain(fmt.Sprintf("turn %d", n), turn)
	}
}
