package scripting_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/brewer/internal/scripting"
)

func runScript(t testing.TB, mgr *scripting.Manager, luaSrc, hook string, args ...lua.LValue) lua.LValue {
	t.Helper()
	dir := writeTempLua(t, "test.lua", luaSrc)
	require.NoError(t, mgr.Load(dir, 0))
	ret, err := mgr.CallHook(hook, args...)
	require.NoError(t, err)
	return ret
}

func numbers(vals ...int) []lua.LValue {
	out := make([]lua.LValue, len(vals))
	for i, v := range vals {
		out[i] = lua.LNumber(v)
	}
	return out
}

func TestEngineLog_WritesToLogger(t *testing.T) {
	mgr, logs := newTestManager(t)

	runScript(t, mgr, `
		function do_log()
			engine.log.info("hello from lua")
		end
	`, "do_log")

	entries := logs.FilterMessage("hello from lua").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "lua", entries[0].ContextMap()["source"])
}

func TestEngineLog_AllLevels(t *testing.T) {
	mgr, logs := newTestManager(t)

	runScript(t, mgr, `
		function log_all()
			engine.log.debug("d")
			engine.log.info("i")
			engine.log.warn("w")
			engine.log.error("e")
		end
	`, "log_all")

	for msg, level := range map[string]zapcore.Level{
		"d": zap.DebugLevel,
		"i": zap.InfoLevel,
		"w": zap.WarnLevel,
		"e": zap.ErrorLevel,
	} {
		entries := logs.FilterMessage(msg).All()
		require.Len(t, entries, 1, "message %q", msg)
		assert.Equal(t, level, entries[0].Level, "message %q", msg)
	}
}

func TestEngineBrew_Surplus(t *testing.T) {
	mgr, _ := newTestManager(t)
	ret := runScript(t, mgr, `
		function surplus(d0, d1, d2, d3, i0, i1, i2, i3)
			return engine.brew.surplus(d0, d1, d2, d3, i0, i1, i2, i3)
		end
	`, "surplus", numbers(-2, 0, -1, 0, 3, 1, 1, 0)...)
	assert.Equal(t, lua.LNumber(2), ret)
}

func TestEngineBrew_Deficit(t *testing.T) {
	mgr, _ := newTestManager(t)
	ret := runScript(t, mgr, `
		function deficit(d0, d1, d2, d3, i0, i1, i2, i3)
			return engine.brew.deficit(d0, d1, d2, d3, i0, i1, i2, i3)
		end
	`, "deficit", numbers(-2, -3, 0, -1, 1, 1, 0, 1)...)
	assert.Equal(t, lua.LNumber(3), ret)
}

func TestEngineBrew_MissingArgument_WarnsAndReturnsNil(t *testing.T) {
	mgr, logs := newTestManager(t)
	ret := runScript(t, mgr, `
		function broken()
			return engine.brew.surplus(1, 2)
		end
	`, "broken")
	assert.Equal(t, lua.LNil, ret)
	assert.Equal(t, 1, logs.FilterLevelExact(zap.WarnLevel).Len())
}

func TestProperty_BrewDeficitNeverNegative(t *testing.T) {
	core, _ := observer.New(zap.DebugLevel)
	mgr := scripting.NewManager(zap.New(core))
	t.Cleanup(mgr.Close)
	dir := writeTempLua(t, "deficit.lua", `
		function deficit(d0, d1, d2, d3, i0, i1, i2, i3)
			return engine.brew.deficit(d0, d1, d2, d3, i0, i1, i2, i3)
		end
	`)
	require.NoError(t, mgr.Load(dir, 0))

	rapid.Check(t, func(rt *rapid.T) {
		args := make([]int, 8)
		want := 0
		for i := range args {
			args[i] = rapid.IntRange(-10, 10).Draw(rt, fmt.Sprintf("arg%d", i))
		}
		for tier := 0; tier < 4; tier++ {
			if after := args[tier] + args[tier+4]; after < 0 {
				want -= after
			}
		}
		ret, err := mgr.CallHook("deficit", numbers(args...)...)
		if err != nil {
			rt.Fatalf("unexpected error: %v", err)
		}
		if ret != lua.LNumber(want) {
			rt.Fatalf("deficit(%v) = %v, want %d", args, ret, want)
		}
	})
}
