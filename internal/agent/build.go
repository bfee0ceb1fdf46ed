package agent

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/brewer/internal/config"
	"github.com/cory-johannsen/brewer/internal/game/ai"
)

// ResolveProfile returns the kernel profile named by cfg.Profile, or an
// inline profile built from cfg when no name is set.
//
// Postcondition: the returned profile has passed Validate.
func ResolveProfile(cfg config.KernelConfig) (*ai.Profile, error) {
	if cfg.Profile == "" {
		p := &ai.Profile{
			ID:            "inline",
			Description:   "settings from the kernel config section",
			Scorer:        cfg.PotionScorer,
			SurplusWeight: cfg.SurplusWeight,
			Uncastable:    cfg.UncastablePolicy,
		}
		if err := p.Validate(); err != nil {
			return nil, err
		}
		return p, nil
	}

	profiles, err := ai.LoadProfiles(cfg.ProfilesDir)
	if err != nil {
		return nil, err
	}
	p, ok := ai.FindProfile(profiles, cfg.Profile)
	if !ok {
		return nil, fmt.Errorf("agent: profile %q not found in %q", cfg.Profile, cfg.ProfilesDir)
	}
	return p, nil
}

// BuildKernel resolves the configured profile and builds a kernel from the
// default scorer registry. caller may be nil when no scripts are loaded.
func BuildKernel(cfg config.KernelConfig, caller ai.ScriptCaller, logger *zap.Logger) (*ai.Kernel, *ai.Profile, error) {
	profile, err := ResolveProfile(cfg)
	if err != nil {
		return nil, nil, err
	}
	kernel, err := ai.BuildKernel(ai.DefaultRegistry(), profile, caller, logger)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("kernel ready",
		zap.String("profile", profile.ID),
		zap.String("scorer", profile.Scorer),
		zap.String("uncastable", string(profile.Policy())),
	)
	return kernel, profile, nil
}
