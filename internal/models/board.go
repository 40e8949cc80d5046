// internal/models/board.go
package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// BoardModel is one product line/year. Its natural identity is
// (brand_id, model_name, model_year); partial unique indexes in the
// migration layer cover both the NULL and non-NULL year cases.
type BoardModel struct {
	BaseModel
	BrandID            uuid.UUID      `json:"brand_id" gorm:"type:uuid;not null;index"`
	ModelName          string         `json:"model_name" gorm:"size:255;not null;index"`
	ModelYear          *int           `json:"model_year"`
	Gender             string         `json:"gender" gorm:"size:10;index"`
	ProfileID          *uuid.UUID     `json:"profile_id" gorm:"type:uuid"`
	ShapeID            *uuid.UUID     `json:"shape_id" gorm:"type:uuid"`
	ResponseTypeID     *uuid.UUID     `json:"response_type_id" gorm:"type:uuid"`
	ProfileDescription string         `json:"profile_description" gorm:"type:text"`
	ShapeDescription   string         `json:"shape_description" gorm:"type:text"`
	FlexRating         *float64       `json:"flex_rating" gorm:"type:decimal(3,1)"`
	MSRP               *float64       `json:"msrp" gorm:"type:decimal(10,2)"`
	SourceURL          string         `json:"source_url" gorm:"size:500"`
	ImageURL           string         `json:"image_url" gorm:"size:500"`
	Description        string         `json:"description" gorm:"type:text"`
	FullDescription    string         `json:"full_description" gorm:"type:text"`
	Technologies       pq.StringArray `json:"technologies" gorm:"type:text[]"`
	RawData            JSONB          `json:"raw_data" gorm:"type:jsonb"`

	// Relationships
	Brand        Brand         `json:"brand,omitempty" gorm:"foreignKey:BrandID"`
	Profile      *Profile      `json:"profile,omitempty" gorm:"foreignKey:ProfileID"`
	Shape        *Shape        `json:"shape,omitempty" gorm:"foreignKey:ShapeID"`
	ResponseType *ResponseType `json:"response_type,omitempty" gorm:"foreignKey:ResponseTypeID"`
	Sizes        []BoardSize   `json:"sizes,omitempty" gorm:"foreignKey:BoardModelID"`
}

// Junction rows for the many-to-many taxonomy links. Ability links are
// written once at model creation; terrain links are fully replaced on every
// import run.

type BoardModelAbilityLevel struct {
	BoardModelID   uuid.UUID `json:"board_model_id" gorm:"type:uuid;primaryKey"`
	AbilityLevelID uuid.UUID `json:"ability_level_id" gorm:"type:uuid;primaryKey"`
}

type BoardModelTerrainType struct {
	BoardModelID  uuid.UUID `json:"board_model_id" gorm:"type:uuid;primaryKey"`
	TerrainTypeID uuid.UUID `json:"terrain_type_id" gorm:"type:uuid;primaryKey"`
}
