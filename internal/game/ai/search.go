package ai

import "github.com/cory-johannsen/brewer/internal/game/recipe"

// Verdict classifies one spell considered by the bridging search.
type Verdict string

const (
	// VerdictUsable ends the search: the spell is castable, affordable, and useful.
	VerdictUsable Verdict = "usable"
	// VerdictStalled marks an affordable, useful spell that is on cooldown.
	// Like a bridge, its own cost becomes the next deficit.
	VerdictStalled Verdict = "stalled"
	// VerdictBridge marks a spell that cannot serve now; its own shortfall
	// becomes the next deficit.
	VerdictBridge Verdict = "bridge"
)

// SearchStep records one iteration of the bridging search.
type SearchStep struct {
	SpellID    int
	Usefulness int
	Deficit    recipe.Vector // deficit the spell was scored against
	Verdict    Verdict
}

// SearchResult is the outcome of a bridging search.
//
// Invariant: at most one of Spell and Stalled drives the action; Spell wins.
type SearchResult struct {
	// Spell is the usable bridging spell, or nil when the search exhausted.
	Spell *recipe.Spell
	// Stalled is the first affordable, useful spell found on cooldown.
	Stalled *recipe.Spell
	Steps   []SearchStep
}

// Found reports whether a usable spell was found.
func (r SearchResult) Found() bool { return r.Spell != nil }

// Iterations returns the number of spells the search considered.
func (r SearchResult) Iterations() int { return len(r.Steps) }

// Search finds the spell that best closes the gap between inv and target.
//
// Each iteration picks the remaining spell with the highest Usefulness
// against the current deficit (ties: lowest id) and excludes it unless it is
// usable. Every other pick becomes the next bridging target: the deficit is
// recomputed against the pick's own cost. The first pick that is affordable
// and useful but not castable is also remembered as Stalled.
//
// Postcondition: Iterations() <= len(spells); Spell, when non-nil, is Usable
// against inv with positive Usefulness against the deficit it was picked for.
func Search(target recipe.Vector, spells []*recipe.Spell, inv recipe.Vector) SearchResult {
	var result SearchResult
	excluded := make([]bool, len(spells))
	deficit := Deficit(target, inv)

	for range spells {
		idx, score := pickSpell(spells, excluded, deficit)
		if idx < 0 {
			break
		}
		spell := spells[idx]
		step := SearchStep{SpellID: spell.ID, Usefulness: score, Deficit: deficit}

		switch {
		case score > 0 && Usable(spell, inv):
			step.Verdict = VerdictUsable
			result.Steps = append(result.Steps, step)
			result.Spell = spell
			return result
		case score > 0 && Affordable(spell, inv):
			step.Verdict = VerdictStalled
			if result.Stalled == nil {
				result.Stalled = spell
			}
		default:
			step.Verdict = VerdictBridge
		}
		deficit = Deficit(spell.Change, inv)
		excluded[idx] = true
		result.Steps = append(result.Steps, step)
	}
	return result
}

// pickSpell returns the index and usefulness of the best non-excluded spell,
// or -1 when every spell is excluded.
func pickSpell(spells []*recipe.Spell, excluded []bool, deficit recipe.Vector) (int, int) {
	best, bestScore := -1, 0
	for i, s := range spells {
		if excluded[i] {
			continue
		}
		score := Usefulness(deficit, s)
		if best < 0 || score > bestScore || (score == bestScore && s.ID < spells[best].ID) {
			best, bestScore = i, score
		}
	}
	return best, bestScore
}
