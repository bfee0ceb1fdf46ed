// Package recipe holds the per-turn data model: ingredient vectors, potions,
// spells, party inventories, and the catalog built from the state feed.
package recipe

import "fmt"

// Tiers is the number of ingredient tiers.
const Tiers = 4

// Vector is a signed per-tier ingredient count.
//
// A Vector is either a delta applied by a recipe (sign-bearing) or an
// absolute inventory (non-negative).
type Vector [Tiers]int

// Add returns the tier-wise sum of v and o.
func (v Vector) Add(o Vector) Vector {
	var out Vector
	for t := range v {
		out[t] = v[t] + o[t]
	}
	return out
}

// Total returns the sum over all tiers.
func (v Vector) Total() int {
	total := 0
	for _, n := range v {
		total += n
	}
	return total
}

// IsZero reports whether every tier is zero.
func (v Vector) IsZero() bool {
	return v == Vector{}
}

// String renders v as "[a b c d]".
func (v Vector) String() string {
	return fmt.Sprintf("[%d %d %d %d]", v[0], v[1], v[2], v[3])
}
