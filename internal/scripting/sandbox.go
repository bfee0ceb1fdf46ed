// Package scripting runs potion scoring hooks in a sandboxed GopherLua VM.
// The decision kernel reaches it only through the ai.ScriptCaller interface.
package scripting

import (
	"context"
	"sync/atomic"

	lua "github.com/yuin/gopher-lua"
)

// DefaultInstructionLimit caps the Lua opcodes one score_potion call, or one
// script load, may execute when no limit is configured.
const DefaultInstructionLimit = 100_000

// blockedGlobals are base-library functions that reach the filesystem or
// load code at runtime. Scoring scripts get neither.
var blockedGlobals = []string{"dofile", "loadfile", "load", "collectgarbage", "require"}

// opcodeBudget is a context that cancels itself once Done has been polled
// more times than the budget allows. GopherLua polls Done once per opcode, so
// the budget is an exact instruction count and a runaway hook stops at the
// same point on every run.
type opcodeBudget struct {
	context.Context
	cancel context.CancelFunc
	left   atomic.Int64
}

func (b *opcodeBudget) Done() <-chan struct{} {
	if b.left.Add(-1) <= 0 {
		b.cancel()
	}
	return b.Context.Done()
}

// newOpcodeBudget returns a budget of limit opcodes; limit <= 0 uses
// DefaultInstructionLimit.
func newOpcodeBudget(limit int) *opcodeBudget {
	if limit <= 0 {
		limit = DefaultInstructionLimit
	}
	ctx, cancel := context.WithCancel(context.Background())
	b := &opcodeBudget{Context: ctx, cancel: cancel}
	b.left.Store(int64(limit))
	return b
}

// NewSandboxedState returns a scoring VM with only the base, table, string
// and math libraries, the blocked globals removed, and a budget of instLimit
// opcodes armed for loading scripts.
//
// Precondition: instLimit >= 0; 0 uses DefaultInstructionLimit.
// The caller owns the LState and must Close it.
func NewSandboxedState(instLimit int) *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, open := range []lua.LGFunction{lua.OpenBase, lua.OpenTable, lua.OpenString, lua.OpenMath} {
		open(L)
	}
	for _, name := range blockedGlobals {
		L.SetGlobal(name, lua.LNil)
	}
	withBudget(L, instLimit)
	return L
}

// withBudget arms a fresh opcode budget on L, so each hook call starts from
// the full limit regardless of what earlier calls spent.
func withBudget(L *lua.LState, instLimit int) context.CancelFunc {
	b := newOpcodeBudget(instLimit)
	L.SetContext(b)
	return b.cancel
}
