package scripting_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/brewer/internal/game/ai"
	"github.com/cory-johannsen/brewer/internal/game/recipe"
)

func TestLuaScorer_WithShippedScript(t *testing.T) {
	mgr, _ := newTestManager(t)
	require.NoError(t, mgr.Load("../../content/scripts", 0))
	scorer := ai.LuaScorer{Caller: mgr}

	inv := recipe.Vector{1, 0, 0, 0}
	reachable := &recipe.Potion{ID: 1, Cost: recipe.Vector{-1, 0, 0, 0}, Price: 5}
	distant := &recipe.Potion{ID: 2, Cost: recipe.Vector{0, 0, -3, -2}, Price: 6}

	assert.Equal(t, 20, scorer.Score(reachable, inv))
	assert.Equal(t, 19, scorer.Score(distant, inv))

	best, ok := ai.RankPotions([]*recipe.Potion{distant, reachable}, inv, scorer)
	require.True(t, ok)
	assert.Equal(t, 1, best.ID)
}

func TestLuaScorer_MissingHookFallsBackToPrice(t *testing.T) {
	mgr, _ := newTestManager(t)
	require.NoError(t, mgr.Load(writeTempLua(t, "other.lua", `function unrelated() return 1 end`), 0))
	scorer := ai.LuaScorer{Caller: mgr}
	assert.Equal(t, 7, scorer.Score(&recipe.Potion{ID: 3, Price: 7}, recipe.Vector{}))
}

func TestLuaScorer_NonFiniteResultFallsBackToPrice(t *testing.T) {
	mgr, _ := newTestManager(t)
	require.NoError(t, mgr.Load(writeTempLua(t, "score.lua", `
		function score_potion(id, price)
			if id == 1 then return 0/0 end
			if id == 2 then return 1/0 end
			return -1/0
		end
	`), 0))
	scorer := ai.LuaScorer{Caller: mgr}
	for id := 1; id <= 3; id++ {
		p := &recipe.Potion{ID: id, Price: 10 + id}
		assert.Equal(t, p.Price, scorer.Score(p, recipe.Vector{}), "potion %d", id)
	}
}
