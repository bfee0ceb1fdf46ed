package ai

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/brewer/internal/game/recipe"
)

// Decision is the kernel's output for one turn.
type Decision struct {
	Action Action
	// Target is the best-ranked potion; nil when no potion is known.
	Target *recipe.Potion
	// Brewable reports whether Target was brewable this turn.
	Brewable bool
	// Search is the bridging search outcome; nil when no search ran.
	Search *SearchResult
}

// Kernel turns one turn snapshot into one action.
//
// Kernel holds configuration only; no state survives between Decide calls.
//
// Invariant: scorer and logger must not be nil.
type Kernel struct {
	scorer PotionScorer
	policy UncastablePolicy
	logger *zap.Logger
}

// NewKernel constructs a Kernel.
//
// Precondition: scorer and logger must not be nil; policy must be valid.
func NewKernel(scorer PotionScorer, policy UncastablePolicy, logger *zap.Logger) *Kernel {
	if scorer == nil {
		panic("ai.NewKernel: scorer must not be nil")
	}
	if logger == nil {
		panic("ai.NewKernel: logger must not be nil")
	}
	if _, err := ParseUncastablePolicy(string(policy)); err != nil {
		panic(err.Error())
	}
	return &Kernel{scorer: scorer, policy: policy, logger: logger}
}

// Scorer returns the potion scorer in use.
func (k *Kernel) Scorer() PotionScorer { return k.scorer }

// Decide selects the action for turn.
//
// Precondition: turn and turn.Catalog must not be nil.
// Postcondition: the returned Action is one of BREW, CAST, REST, WAIT.
func (k *Kernel) Decide(turn *recipe.Turn) Decision {
	inv := turn.Me.Inventory
	potion, ok := RankPotions(turn.Catalog.Potions, inv, k.scorer)
	if !ok {
		return Decision{Action: Wait()}
	}
	if Brewable(potion, inv) {
		return Decision{Action: Brew(potion.ID), Target: potion, Brewable: true}
	}

	k.logger.Debug("target potion not brewable",
		zap.Int("potion", potion.ID),
		zap.Stringer("cost", potion.Cost),
		zap.Stringer("inventory", inv),
	)
	result := Search(potion.Cost, turn.Catalog.Spells, inv)
	action := Resolve(result, len(turn.Catalog.Spells), k.policy)
	k.logger.Debug("bridging search finished",
		zap.Int("iterations", result.Iterations()),
		zap.Bool("found", result.Found()),
		zap.Stringer("action", action),
	)
	return Decision{Action: action, Target: potion, Search: &result}
}
