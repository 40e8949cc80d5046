// internal/services/alias_cache.go
package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/jibtech/boardbase/internal/models"
	"github.com/jibtech/boardbase/internal/schema"
)

// AliasCache maps a brand's free-text taxonomy labels to canonical taxonomy
// IDs. It is loaded once per import run, read-only afterwards, and discarded
// with the run. Ability levels are brand-independent: the scraped value must
// match the canonical name exactly.
type AliasCache struct {
	shapes        map[string]uuid.UUID
	profiles      map[string]uuid.UUID
	responseTypes map[string]uuid.UUID
	abilityLevels map[string]uuid.UUID
	terrainTypes  map[string]uuid.UUID
}

func newAliasCache() *AliasCache {
	return &AliasCache{
		shapes:        make(map[string]uuid.UUID),
		profiles:      make(map[string]uuid.UUID),
		responseTypes: make(map[string]uuid.UUID),
		abilityLevels: make(map[string]uuid.UUID),
		terrainTypes:  make(map[string]uuid.UUID),
	}
}

// LoadAliasCache loads every alias pair for the brand, one query per
// category. Last-loaded wins if the store holds duplicate alias names.
func LoadAliasCache(db *gorm.DB, brandID uuid.UUID) (*AliasCache, error) {
	cache := newAliasCache()

	var shapeAliases []models.ShapeAlias
	if err := db.Where("brand_id = ?", brandID).Find(&shapeAliases).Error; err != nil {
		return nil, fmt.Errorf("failed to load shape aliases: %w", err)
	}
	for _, a := range shapeAliases {
		cache.shapes[a.AliasName] = a.ShapeID
	}

	var profileAliases []models.ProfileAlias
	if err := db.Where("brand_id = ?", brandID).Find(&profileAliases).Error; err != nil {
		return nil, fmt.Errorf("failed to load profile aliases: %w", err)
	}
	for _, a := range profileAliases {
		cache.profiles[a.AliasName] = a.ProfileID
	}

	var responseAliases []models.ResponseTypeAlias
	if err := db.Where("brand_id = ?", brandID).Find(&responseAliases).Error; err != nil {
		return nil, fmt.Errorf("failed to load response type aliases: %w", err)
	}
	for _, a := range responseAliases {
		cache.responseTypes[a.AliasName] = a.ResponseTypeID
	}

	var abilityLevels []models.AbilityLevel
	if err := db.Find(&abilityLevels).Error; err != nil {
		return nil, fmt.Errorf("failed to load ability levels: %w", err)
	}
	for _, a := range abilityLevels {
		cache.abilityLevels[a.Name] = a.ID
	}

	var terrainAliases []models.TerrainTypeAlias
	if err := db.Where("brand_id = ?", brandID).Find(&terrainAliases).Error; err != nil {
		return nil, fmt.Errorf("failed to load terrain type aliases: %w", err)
	}
	for _, a := range terrainAliases {
		cache.terrainTypes[a.AliasName] = a.TerrainTypeID
	}

	logrus.WithFields(logrus.Fields{
		"shapes":         len(cache.shapes),
		"profiles":       len(cache.profiles),
		"response_types": len(cache.responseTypes),
		"ability_levels": len(cache.abilityLevels),
		"terrain_types":  len(cache.terrainTypes),
	}).Info("Alias cache loaded")

	return cache, nil
}

func (c *AliasCache) ResolveShape(alias string) (uuid.UUID, bool) {
	id, ok := c.shapes[alias]
	return id, ok
}

func (c *AliasCache) ResolveProfile(alias string) (uuid.UUID, bool) {
	id, ok := c.profiles[alias]
	return id, ok
}

func (c *AliasCache) ResolveResponseType(alias string) (uuid.UUID, bool) {
	id, ok := c.responseTypes[alias]
	return id, ok
}

func (c *AliasCache) ResolveAbilityLevel(name string) (uuid.UUID, bool) {
	id, ok := c.abilityLevels[name]
	return id, ok
}

func (c *AliasCache) ResolveTerrainType(alias string) (uuid.UUID, bool) {
	id, ok := c.terrainTypes[alias]
	return id, ok
}

// MissingAliases returns every populated taxonomy field on the board that
// does not resolve through the cache, formatted as "category:term". An empty
// result means the board is safe to import.
func (c *AliasCache) MissingAliases(board *schema.Board) []string {
	var missing []string

	if board.ShapeType != "" {
		if _, ok := c.shapes[board.ShapeType]; !ok {
			missing = append(missing, "shape:"+board.ShapeType)
		}
	}
	if board.ProfileType != "" {
		if _, ok := c.profiles[board.ProfileType]; !ok {
			missing = append(missing, "profile:"+board.ProfileType)
		}
	}
	if board.Response != "" {
		if _, ok := c.responseTypes[board.Response]; !ok {
			missing = append(missing, "response:"+board.Response)
		}
	}
	for _, level := range board.AbilityLevels {
		if _, ok := c.abilityLevels[level]; !ok {
			missing = append(missing, "ability:"+level)
		}
	}
	for _, terrain := range board.TerrainTypes {
		if _, ok := c.terrainTypes[terrain]; !ok {
			missing = append(missing, "terrain:"+terrain)
		}
	}

	return missing
}
