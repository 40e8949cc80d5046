// internal/services/alias_cache_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/jibtech/boardbase/internal/schema"
)

func testCache() *AliasCache {
	cache := newAliasCache()
	cache.shapes["Directional Twin"] = uuid.New()
	cache.profiles["Camber"] = uuid.New()
	cache.responseTypes["Stiff"] = uuid.New()
	cache.abilityLevels["Intermediate"] = uuid.New()
	cache.abilityLevels["Advanced"] = uuid.New()
	cache.terrainTypes["All-Mountain"] = uuid.New()
	return cache
}

func TestAliasCacheResolve(t *testing.T) {
	cache := testCache()

	id, ok := cache.ResolveShape("Directional Twin")
	assert.True(t, ok)
	assert.NotEqual(t, uuid.Nil, id)

	_, ok = cache.ResolveShape("Volume Twin")
	assert.False(t, ok)

	_, ok = cache.ResolveProfile("Camber")
	assert.True(t, ok)
	_, ok = cache.ResolveResponseType("Stiff")
	assert.True(t, ok)
	_, ok = cache.ResolveAbilityLevel("Intermediate")
	assert.True(t, ok)
	_, ok = cache.ResolveTerrainType("All-Mountain")
	assert.True(t, ok)
}

func TestMissingAliasesReportsEveryMiss(t *testing.T) {
	cache := testCache()

	board := &schema.Board{
		Name:          "Custom",
		URL:           "u",
		ShapeType:     "Volume Twin",
		ProfileType:   "Camber",
		Response:      "Playful",
		AbilityLevels: []string{"Intermediate", "Pro"},
		TerrainTypes:  []string{"All-Mountain", "Powder"},
	}

	missing := cache.MissingAliases(board)
	assert.ElementsMatch(t, []string{
		"shape:Volume Twin",
		"response:Playful",
		"ability:Pro",
		"terrain:Powder",
	}, missing)
}

func TestMissingAliasesSkipsUnpopulatedFields(t *testing.T) {
	cache := testCache()

	// Empty taxonomy fields never count as missing.
	board := &schema.Board{Name: "Custom", URL: "u"}
	assert.Empty(t, cache.MissingAliases(board))

	board = &schema.Board{
		Name:          "Custom",
		URL:           "u",
		ShapeType:     "Directional Twin",
		ProfileType:   "Camber",
		Response:      "Stiff",
		AbilityLevels: []string{"Advanced"},
		TerrainTypes:  []string{"All-Mountain"},
	}
	assert.Empty(t, cache.MissingAliases(board))
}
