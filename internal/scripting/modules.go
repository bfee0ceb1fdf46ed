package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// tiers is the ingredient vector width the brew helpers expect.
const tiers = 4

// RegisterModules registers all engine.* Lua tables into L:
//
//	engine.log.debug/info/warn/error(msg)
//	engine.brew.surplus(d0..d3, i0..i3)  -> sum of inventory after the delta
//	engine.brew.deficit(d0..d3, i0..i3)  -> total shortfall after the delta
//
// Precondition: L must be from NewSandboxedState.
// Postcondition: engine global is defined in L.
func (m *Manager) RegisterModules(L *lua.LState) {
	engine := L.NewTable()
	L.SetField(engine, "log", m.newLogModule(L))
	L.SetField(engine, "brew", newBrewModule(L))
	L.SetGlobal("engine", engine)
}

func (m *Manager) newLogModule(L *lua.LState) *lua.LTable {
	mod := L.NewTable()
	levels := map[string]func(string, ...zap.Field){
		"debug": m.logger.Debug,
		"info":  m.logger.Info,
		"warn":  m.logger.Warn,
		"error": m.logger.Error,
	}
	for name, logFn := range levels {
		logFn := logFn
		L.SetField(mod, name, L.NewFunction(func(L *lua.LState) int {
			logFn(L.CheckString(1), zap.String("source", "lua"))
			return 0
		}))
	}
	return mod
}

func newBrewModule(L *lua.LState) *lua.LTable {
	mod := L.NewTable()
	L.SetField(mod, "surplus", L.NewFunction(func(L *lua.LState) int {
		total := 0
		for t := 0; t < tiers; t++ {
			total += L.CheckInt(t+1) + L.CheckInt(t+1+tiers)
		}
		L.Push(lua.LNumber(total))
		return 1
	}))
	L.SetField(mod, "deficit", L.NewFunction(func(L *lua.LState) int {
		total := 0
		for t := 0; t < tiers; t++ {
			if after := L.CheckInt(t+1) + L.CheckInt(t+1+tiers); after < 0 {
				total -= after
			}
		}
		L.Push(lua.LNumber(total))
		return 1
	}))
	return mod
}
