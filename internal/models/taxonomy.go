// internal/models/taxonomy.go
package models

import (
	"github.com/google/uuid"
)

// Canonical taxonomy rows. Shapes, profiles and response types carry a
// standard_name that brand-specific aliases resolve to; ability levels and
// terrain types are shared label sets.

type Shape struct {
	BaseModel
	StandardName string `json:"standard_name" gorm:"size:100;uniqueIndex;not null"`
	Description  string `json:"description" gorm:"type:text"`
}

type Profile struct {
	BaseModel
	StandardName string `json:"standard_name" gorm:"size:100;uniqueIndex;not null"`
	Description  string `json:"description" gorm:"type:text"`
}

type ResponseType struct {
	BaseModel
	StandardName string `json:"standard_name" gorm:"size:100;uniqueIndex;not null"`
	Description  string `json:"description" gorm:"type:text"`
}

// AbilityLevel has no alias table: scraped free text must match Name exactly.
type AbilityLevel struct {
	BaseModel
	Name      string `json:"name" gorm:"size:50;uniqueIndex;not null"`
	SortOrder int    `json:"sort_order" gorm:"default:0"`
}

type TerrainType struct {
	BaseModel
	Name string `json:"name" gorm:"size:50;uniqueIndex;not null"`
}

// Per-brand alias tables. (brand_id, alias_name) is unique within each
// category; a lookup maps a brand's free-text label to one taxonomy row.

type ShapeAlias struct {
	BaseModel
	ShapeID   uuid.UUID `json:"shape_id" gorm:"type:uuid;not null;index"`
	BrandID   uuid.UUID `json:"brand_id" gorm:"type:uuid;not null;uniqueIndex:idx_shape_aliases_brand_alias"`
	AliasName string    `json:"alias_name" gorm:"size:100;not null;uniqueIndex:idx_shape_aliases_brand_alias"`

	Shape Shape `json:"shape,omitempty" gorm:"foreignKey:ShapeID"`
}

type ProfileAlias struct {
	BaseModel
	ProfileID uuid.UUID `json:"profile_id" gorm:"type:uuid;not null;index"`
	BrandID   uuid.UUID `json:"brand_id" gorm:"type:uuid;not null;uniqueIndex:idx_profile_aliases_brand_alias"`
	AliasName string    `json:"alias_name" gorm:"size:100;not null;uniqueIndex:idx_profile_aliases_brand_alias"`

	Profile Profile `json:"profile,omitempty" gorm:"foreignKey:ProfileID"`
}

type ResponseTypeAlias struct {
	BaseModel
	ResponseTypeID uuid.UUID `json:"response_type_id" gorm:"type:uuid;not null;index"`
	BrandID        uuid.UUID `json:"brand_id" gorm:"type:uuid;not null;uniqueIndex:idx_response_type_aliases_brand_alias"`
	AliasName      string    `json:"alias_name" gorm:"size:100;not null;uniqueIndex:idx_response_type_aliases_brand_alias"`

	ResponseType ResponseType `json:"response_type,omitempty" gorm:"foreignKey:ResponseTypeID"`
}

type TerrainTypeAlias struct {
	BaseModel
	TerrainTypeID uuid.UUID `json:"terrain_type_id" gorm:"type:uuid;not null;index"`
	BrandID       uuid.UUID `json:"brand_id" gorm:"type:uuid;not null;uniqueIndex:idx_terrain_type_aliases_brand_alias"`
	AliasName     string    `json:"alias_name" gorm:"size:100;not null;uniqueIndex:idx_terrain_type_aliases_brand_alias"`

	TerrainType TerrainType `json:"terrain_type,omitempty" gorm:"foreignKey:TerrainTypeID"`
}
