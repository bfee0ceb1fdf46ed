package ai

import (
	"fmt"
	"strconv"
)

// Verb is the action keyword written to the output channel.
type Verb string

const (
	VerbBrew Verb = "BREW"
	VerbCast Verb = "CAST"
	VerbRest Verb = "REST"
	VerbWait Verb = "WAIT"
)

// Action is the single decision emitted for a turn.
//
// ID is meaningful for BREW and CAST only. Times is the CAST repeat count;
// values <= 1 are not written.
type Action struct {
	Verb  Verb
	ID    int
	Times int
}

// Brew returns a BREW action for potion id.
func Brew(id int) Action { return Action{Verb: VerbBrew, ID: id} }

// Cast returns a CAST action for spell id.
func Cast(id int) Action { return Action{Verb: VerbCast, ID: id} }

// Rest returns a REST action.
func Rest() Action { return Action{Verb: VerbRest} }

// Wait returns a WAIT action.
func Wait() Action { return Action{Verb: VerbWait} }

// String renders the action in wire form, e.g. "BREW 44" or "REST".
func (a Action) String() string {
	switch a.Verb {
	case VerbBrew:
		return "BREW " + strconv.Itoa(a.ID)
	case VerbCast:
		if a.Times > 1 {
			return fmt.Sprintf("CAST %d %d", a.ID, a.Times)
		}
		return "CAST " + strconv.Itoa(a.ID)
	default:
		return string(a.Verb)
	}
}

// UncastablePolicy decides the action when the search only found a spell on cooldown.
type UncastablePolicy string

const (
	// PolicyRest is the conservative REST-on-uncastable strategy: rest to
	// refresh every spell.
	PolicyRest UncastablePolicy = "rest"
	// PolicyCast is the eager CAST-on-uncastable strategy: cast the spell anyway.
	PolicyCast UncastablePolicy = "cast"
)

// ParseUncastablePolicy maps a config token to a policy.
func ParseUncastablePolicy(s string) (UncastablePolicy, error) {
	switch p := UncastablePolicy(s); p {
	case PolicyRest, PolicyCast:
		return p, nil
	default:
		return "", fmt.Errorf("ai.ParseUncastablePolicy: unknown policy %q (want rest or cast)", s)
	}
}

// Resolve maps a bridging search outcome to an action.
//
// Postcondition: a found spell yields CAST; a stalled spell yields REST or
// CAST per policy; otherwise REST when spellCount > 0 and WAIT when it is 0.
func Resolve(result SearchResult, spellCount int, policy UncastablePolicy) Action {
	switch {
	case result.Spell != nil:
		return Cast(result.Spell.ID)
	case result.Stalled != nil && policy == PolicyCast:
		return Cast(result.Stalled.ID)
	case spellCount > 0:
		return Rest()
	default:
		return Wait()
	}
}
