// Package ai implements the per-turn decision kernel of the brewing agent.
//
// The kernel ranks potions, brews the best one when the inventory covers it,
// and otherwise runs a bridging search for the spell that most closes the
// ingredient gap. Every function here is pure with respect to its inputs.
package ai

import "github.com/cory-johannsen/brewer/internal/game/recipe"

// Brewable reports whether inv covers every tier p consumes.
//
// Postcondition: true iff inv[t] + p.Cost[t] >= 0 for every tier t.
func Brewable(p *recipe.Potion, inv recipe.Vector) bool {
	for t := range inv {
		if inv[t]+p.Cost[t] < 0 {
			return false
		}
	}
	return true
}

// Deficit returns the per-tier shortfall left after applying delta to inv.
//
// Postcondition: every tier is >= 0; tier t is 0 whenever inv[t] + delta[t] >= 0.
func Deficit(delta, inv recipe.Vector) recipe.Vector {
	var out recipe.Vector
	for t := range inv {
		if after := inv[t] + delta[t]; after < 0 {
			out[t] = -after
		}
	}
	return out
}

// Usefulness sums the production of s in tiers where deficit is positive.
//
// Postcondition: result >= 0; result == 0 when deficit is all-zero.
func Usefulness(deficit recipe.Vector, s *recipe.Spell) int {
	total := 0
	for t := range deficit {
		if deficit[t] > 0 && s.Change[t] > 0 {
			total += s.Change[t]
		}
	}
	return total
}

// Affordable reports whether inv holds every ingredient s consumes.
// Tiers s produces never block.
func Affordable(s *recipe.Spell, inv recipe.Vector) bool {
	for t := range inv {
		if d := s.Change[t]; d < 0 && inv[t] < -d {
			return false
		}
	}
	return true
}

// Usable reports whether s can be cast this turn.
func Usable(s *recipe.Spell, inv recipe.Vector) bool {
	return s.Castable && Affordable(s, inv)
}
