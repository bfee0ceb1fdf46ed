package ai_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/brewer/internal/game/ai"
)

func TestProfile_Validate_RejectsEmpty(t *testing.T) {
	assert.Error(t, (&ai.Profile{}).Validate())
	assert.Error(t, (&ai.Profile{ID: "x"}).Validate())
}

func TestProfile_Validate_RejectsBadPolicy(t *testing.T) {
	p := &ai.Profile{ID: "x", Scorer: "price", Uncastable: "learn"}
	assert.Error(t, p.Validate())
}

func TestProfile_Policy_DefaultsToRest(t *testing.T) {
	p := &ai.Profile{ID: "x", Scorer: "price"}
	require.NoError(t, p.Validate())
	assert.Equal(t, ai.PolicyRest, p.Policy())
}

func writeProfile(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0600))
}

func TestLoadProfiles_LoadsYAML(t *testing.T) {
	dir := t.TempDir()
	writeProfile(t, dir, "eager.yaml", `
profile:
  id: eager
  description: cast through cooldowns
  scorer: surplus
  surplus_weight: 2
  uncastable: cast
`)
	writeProfile(t, dir, "notes.txt", "ignored")
	profiles, err := ai.LoadProfiles(dir)
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	p, ok := ai.FindProfile(profiles, "eager")
	require.True(t, ok)
	assert.Equal(t, 2, p.SurplusWeight)
	assert.Equal(t, ai.PolicyCast, p.Policy())
	_, ok = ai.FindProfile(profiles, "missing")
	assert.False(t, ok)
}

func TestLoadProfiles_MissingTopLevelKey(t *testing.T) {
	dir := t.TempDir()
	writeProfile(t, dir, "bad.yaml", "id: nope\n")
	_, err := ai.LoadProfiles(dir)
	assert.Error(t, err)
}

func TestLoadProfiles_DuplicateID(t *testing.T) {
	dir := t.TempDir()
	body := "profile:\n  id: same\n  scorer: price\n"
	writeProfile(t, dir, "a.yaml", body)
	writeProfile(t, dir, "b.yaml", body)
	_, err := ai.LoadProfiles(dir)
	assert.Error(t, err)
}

func TestLoadProfiles_UnreadableDir(t *testing.T) {
	_, err := ai.LoadProfiles(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}

func TestBuildKernel_UnknownScorer(t *testing.T) {
	_, err := ai.BuildKernel(ai.DefaultRegistry(), &ai.Profile{ID: "x", Scorer: "oracle"}, nil, zap.NewNop())
	assert.Error(t, err)
}

func TestBuildKernel_Surplus(t *testing.T) {
	k, err := ai.BuildKernel(ai.DefaultRegistry(), &ai.Profile{ID: "x", Scorer: "surplus", SurplusWeight: 1}, nil, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, ai.SurplusScorer{Weight: 1}, k.Scorer())
}

func TestProperty_Profile_NonNegativeWeightValidates(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		p := &ai.Profile{
			ID:            rapid.StringMatching(`[a-z]{1,8}`).Draw(rt, "id"),
			Scorer:        rapid.SampledFrom([]string{"price", "surplus", "lua"}).Draw(rt, "scorer"),
			SurplusWeight: rapid.IntRange(0, 100).Draw(rt, "weight"),
			Uncastable:    rapid.SampledFrom([]string{"", "rest", "cast"}).Draw(rt, "policy"),
		}
		if err := p.Validate(); err != nil {
			rt.Fatalf("valid profile rejected: %v", err)
		}
	})
}
