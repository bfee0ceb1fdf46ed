// Package config provides Viper-based configuration loading for the brewing agent.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// KernelConfig selects how the decision kernel ranks potions and handles
// spells on cooldown.
type KernelConfig struct {
	// Profile names a profile loaded from ProfilesDir; empty uses the inline settings below.
	Profile string `mapstructure:"profile"`
	// ProfilesDir is the directory of profile YAML files.
	ProfilesDir string `mapstructure:"profiles_dir"`
	// PotionScorer is "price", "surplus", or "lua".
	PotionScorer string `mapstructure:"potion_scorer"`
	// SurplusWeight scales the surplus bonus of the "surplus" scorer.
	SurplusWeight int `mapstructure:"surplus_weight"`
	// UncastablePolicy is "rest" or "cast".
	UncastablePolicy string `mapstructure:"uncastable_policy"`
}

// ScriptingConfig holds Lua scoring hook settings.
type ScriptingConfig struct {
	// ScriptDir holds *.lua files defining score_potion; empty = scripting disabled.
	ScriptDir string `mapstructure:"script_dir"`
	// InstructionLimit caps opcodes per hook call; 0 uses the scripting default.
	InstructionLimit int `mapstructure:"instruction_limit"`
}

// FeedConfig holds state-feed settings.
type FeedConfig struct {
	// MaxRecords bounds the record count one turn may announce.
	MaxRecords int `mapstructure:"max_records"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging   LoggingConfig   `mapstructure:"logging"`
	Kernel    KernelConfig    `mapstructure:"kernel"`
	Scripting ScriptingConfig `mapstructure:"scripting"`
	Feed      FeedConfig      `mapstructure:"feed"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateKernel(c.Kernel, c.Scripting); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Scripting.InstructionLimit < 0 {
		errs = append(errs, fmt.Sprintf("scripting.instruction_limit must be >= 0, got %d", c.Scripting.InstructionLimit))
	}
	if c.Feed.MaxRecords < 1 {
		errs = append(errs, fmt.Sprintf("feed.max_records must be >= 1, got %d", c.Feed.MaxRecords))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateKernel(k KernelConfig, s ScriptingConfig) error {
	var errs []string
	if k.Profile != "" && k.ProfilesDir == "" {
		errs = append(errs, "kernel.profiles_dir must be set when kernel.profile is set")
	}
	validScorers := map[string]bool{"price": true, "surplus": true, "lua": true}
	if !validScorers[k.PotionScorer] {
		errs = append(errs, fmt.Sprintf("kernel.potion_scorer must be one of [price, surplus, lua], got %q", k.PotionScorer))
	}
	if k.PotionScorer == "lua" && s.ScriptDir == "" {
		errs = append(errs, "scripting.script_dir must be set when kernel.potion_scorer is lua")
	}
	if k.SurplusWeight < 0 {
		errs = append(errs, fmt.Sprintf("kernel.surplus_weight must be >= 0, got %d", k.SurplusWeight))
	}
	validPolicies := map[string]bool{"rest": true, "cast": true}
	if !validPolicies[k.UncastablePolicy] {
		errs = append(errs, fmt.Sprintf("kernel.uncastable_policy must be one of [rest, cast], got %q", k.UncastablePolicy))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path skips the file and uses
// defaults plus environment overrides.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()

	// Environment variable overrides with BREWER_ prefix
	v.SetEnvPrefix("BREWER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Defaults returns a Viper instance holding only the default settings.
func Defaults() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("kernel.profile", "")
	v.SetDefault("kernel.profiles_dir", "")
	v.SetDefault("kernel.potion_scorer", "price")
	v.SetDefault("kernel.surplus_weight", 1)
	v.SetDefault("kernel.uncastable_policy", "rest")

	v.SetDefault("scripting.script_dir", "")
	v.SetDefault("scripting.instruction_limit", 0)

	v.SetDefault("feed.max_records", 256)
}
