package ai_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/brewer/internal/game/ai"
	"github.com/cory-johannsen/brewer/internal/game/recipe"
)

// mockScriptCaller returns a fixed value (or error) and records the last call.
type mockScriptCaller struct {
	returnVal lua.LValue
	err       error
	lastHook  string
	lastArgs  []lua.LValue
}

func (m *mockScriptCaller) CallHook(hook string, args ...lua.LValue) (lua.LValue, error) {
	m.lastHook, m.lastArgs = hook, args
	if m.err != nil {
		return lua.LNil, m.err
	}
	if m.returnVal == nil {
		return lua.LNil, nil
	}
	return m.returnVal, nil
}

func TestRankPotions_EmptyCatalog(t *testing.T) {
	_, ok := ai.RankPotions(nil, recipe.Vector{}, ai.PriceScorer{})
	assert.False(t, ok)
}

func TestRankPotions_HighestPriceWins(t *testing.T) {
	potions := []*recipe.Potion{
		{ID: 1, Price: 8},
		{ID: 2, Price: 14},
		{ID: 3, Price: 11},
	}
	best, ok := ai.RankPotions(potions, recipe.Vector{}, ai.PriceScorer{})
	require.True(t, ok)
	assert.Equal(t, 2, best.ID)
}

func TestRankPotions_TieBreaksOnLowestID(t *testing.T) {
	potions := []*recipe.Potion{{ID: 9, Price: 10}, {ID: 4, Price: 10}}
	best, _ := ai.RankPotions(potions, recipe.Vector{}, ai.PriceScorer{})
	assert.Equal(t, 4, best.ID)
}

func TestSurplusScorer_PrefersCloserPotion(t *testing.T) {
	inv := recipe.Vector{2, 0, 0, 0}
	potions := []*recipe.Potion{
		{ID: 1, Cost: recipe.Vector{-2, 0, 0, 0}, Price: 10},
		{ID: 2, Cost: recipe.Vector{0, -3, 0, 0}, Price: 11},
	}
	byPrice, _ := ai.RankPotions(potions, inv, ai.PriceScorer{})
	assert.Equal(t, 2, byPrice.ID)

	scorer := ai.SurplusScorer{Weight: 1}
	assert.Equal(t, 10, scorer.Score(potions[0], inv))
	assert.Equal(t, 10, scorer.Score(potions[1], inv))
	bySurplus, _ := ai.RankPotions(potions, inv, scorer)
	assert.Equal(t, 1, bySurplus.ID)
}

func TestSurplusScorer_ZeroWeightIsPrice(t *testing.T) {
	p := &recipe.Potion{ID: 1, Cost: recipe.Vector{-4, 0, 0, 0}, Price: 7}
	assert.Equal(t, 7, ai.SurplusScorer{}.Score(p, recipe.Vector{}))
}

func TestLuaScorer_UsesHookResult(t *testing.T) {
	caller := &mockScriptCaller{returnVal: lua.LNumber(42)}
	p := &recipe.Potion{ID: 5, Cost: recipe.Vector{-1, -2, 0, 0}, Price: 9}
	got := ai.LuaScorer{Caller: caller}.Score(p, recipe.Vector{3, 1, 0, 2})
	assert.Equal(t, 42, got)
	assert.Equal(t, ai.ScorePotionHook, caller.lastHook)
	require.Len(t, caller.lastArgs, 10)
	assert.Equal(t, lua.LNumber(5), caller.lastArgs[0])
	assert.Equal(t, lua.LNumber(9), caller.lastArgs[1])
	assert.Equal(t, lua.LNumber(-2), caller.lastArgs[3])
	assert.Equal(t, lua.LNumber(2), caller.lastArgs[9])
}

func TestLuaScorer_FallsBackToPrice(t *testing.T) {
	p := &recipe.Potion{ID: 5, Price: 9}
	assert.Equal(t, 9, ai.LuaScorer{Caller: &mockScriptCaller{}}.Score(p, recipe.Vector{}))
	assert.Equal(t, 9, ai.LuaScorer{Caller: &mockScriptCaller{returnVal: lua.LString("high")}}.Score(p, recipe.Vector{}))
	assert.Equal(t, 9, ai.LuaScorer{Caller: &mockScriptCaller{err: errors.New("boom")}}.Score(p, recipe.Vector{}))
}

func TestLuaScorer_NonFiniteFallsBackToPrice(t *testing.T) {
	p := &recipe.Potion{ID: 5, Price: 9}
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		caller := &mockScriptCaller{returnVal: lua.LNumber(v)}
		assert.Equal(t, 9, ai.LuaScorer{Caller: caller}.Score(p, recipe.Vector{}), "hook returned %v", v)
	}
}

func TestRanking_OrdersBestFirst(t *testing.T) {
	potions := []*recipe.Potion{
		{ID: 3, Cost: recipe.Vector{-1, 0, 0, 0}, Price: 5},
		{ID: 1, Cost: recipe.Vector{0, -1, 0, 0}, Price: 12},
		{ID: 2, Cost: recipe.Vector{-1, 0, 0, 0}, Price: 12},
	}
	rows := ai.Ranking(potions, recipe.Vector{1, 0, 0, 0}, ai.PriceScorer{})
	require.Len(t, rows, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{rows[0].Potion.ID, rows[1].Potion.ID, rows[2].Potion.ID})
	assert.False(t, rows[0].Brewable)
	assert.True(t, rows[1].Brewable)
}

func TestProperty_Ranking_HeadMatchesRankPotions(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 8).Draw(rt, "n")
		potions := make([]*recipe.Potion, n)
		for i := range potions {
			potions[i] = &recipe.Potion{
				ID:    rapid.IntRange(0, 50).Draw(rt, "id"),
				Cost:  drawVector(rt, "cost", -4, 0),
				Price: rapid.IntRange(1, 20).Draw(rt, "price"),
			}
		}
		inv := drawVector(rt, "inv", 0, 5)
		scorer := ai.SurplusScorer{Weight: rapid.IntRange(0, 3).Draw(rt, "weight")}
		best, ok := ai.RankPotions(potions, inv, scorer)
		if !ok {
			rt.Fatal("expected a winner for a non-empty catalog")
		}
		rows := ai.Ranking(potions, inv, scorer)
		if rows[0].Score != scorer.Score(best, inv) || rows[0].Potion.ID != best.ID {
			rt.Fatalf("ranking head %d differs from winner %d", rows[0].Potion.ID, best.ID)
		}
	})
}
