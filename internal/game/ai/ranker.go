package ai

import (
	"math"
	"sort"

	lua "github.com/yuin/gopher-lua"

	"github.com/cory-johannsen/brewer/internal/game/recipe"
)

// PotionScorer assigns a comparable value to a potion for the current inventory.
type PotionScorer interface {
	Score(p *recipe.Potion, inv recipe.Vector) int
}

// PriceScorer values a potion at its price.
type PriceScorer struct{}

// Score returns p.Price.
func (PriceScorer) Score(p *recipe.Potion, _ recipe.Vector) int {
	return p.Price
}

// SurplusScorer values a potion at its price plus Weight times the signed
// inventory left over after brewing it.
//
// Potions the inventory is closer to affording therefore rank higher among
// potions of similar price.
type SurplusScorer struct {
	Weight int
}

// Score returns p.Price + Weight * sum_t(inv[t] + p.Cost[t]).
func (s SurplusScorer) Score(p *recipe.Potion, inv recipe.Vector) int {
	return p.Price + s.Weight*inv.Add(p.Cost).Total()
}

// ScriptCaller is the interface required by LuaScorer to evaluate a scoring hook.
type ScriptCaller interface {
	// CallHook calls a named Lua function.
	// Returns (LNil, nil) if the function is not defined.
	CallHook(hook string, args ...lua.LValue) (lua.LValue, error)
}

// ScorePotionHook is the Lua global LuaScorer calls.
const ScorePotionHook = "score_potion"

// LuaScorer delegates scoring to the score_potion Lua hook, called as
// score_potion(id, price, d0, d1, d2, d3, i0, i1, i2, i3).
//
// A missing hook, a runtime error, or a non-numeric or non-finite result
// falls back to price.
//
// Invariant: Caller must not be nil.
type LuaScorer struct {
	Caller ScriptCaller
}

// Score evaluates the hook for p.
func (s LuaScorer) Score(p *recipe.Potion, inv recipe.Vector) int {
	args := []lua.LValue{lua.LNumber(p.ID), lua.LNumber(p.Price)}
	for _, d := range p.Cost {
		args = append(args, lua.LNumber(d))
	}
	for _, n := range inv {
		args = append(args, lua.LNumber(n))
	}
	ret, err := s.Caller.CallHook(ScorePotionHook, args...)
	if err != nil {
		return p.Price
	}
	n, ok := ret.(lua.LNumber)
	if !ok || math.IsNaN(float64(n)) || math.IsInf(float64(n), 0) {
		return p.Price
	}
	return int(n)
}

// RankPotions returns the highest-scoring potion.
//
// Ties are broken by lowest potion id.
// Postcondition: returns (nil, false) iff potions is empty.
func RankPotions(potions []*recipe.Potion, inv recipe.Vector, scorer PotionScorer) (*recipe.Potion, bool) {
	var best *recipe.Potion
	bestScore := 0
	for _, p := range potions {
		score := scorer.Score(p, inv)
		if best == nil || score > bestScore || (score == bestScore && p.ID < best.ID) {
			best, bestScore = p, score
		}
	}
	return best, best != nil
}

// RankedPotion is one row of a full ranking.
type RankedPotion struct {
	Potion   *recipe.Potion
	Score    int
	Brewable bool
}

// Ranking scores every potion and orders them best first, using the same
// ordering as RankPotions.
//
// Postcondition: Ranking(...)[0].Potion equals the RankPotions winner when potions is non-empty.
func Ranking(potions []*recipe.Potion, inv recipe.Vector, scorer PotionScorer) []RankedPotion {
	out := make([]RankedPotion, 0, len(potions))
	for _, p := range potions {
		out = append(out, RankedPotion{Potion: p, Score: scorer.Score(p, inv), Brewable: Brewable(p, inv)})
	}
	sort.Slice(out, func(i, j int) bool { return rankedBefore(out[i], out[j]) })
	return out
}

func rankedBefore(a, b RankedPotion) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.Potion.ID < b.Potion.ID
}
