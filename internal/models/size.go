// internal/models/size.go
package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// BoardSize is one purchasable size of a board model. The composite unique
// index on (board_model_id, size_cm, wide) backs the natural-key upsert;
// size rows are overwritten on re-import but never pruned.
type BoardSize struct {
	BaseModel
	BoardModelID            uuid.UUID      `json:"board_model_id" gorm:"type:uuid;not null;uniqueIndex:idx_board_sizes_natural"`
	SizeCM                  float64        `json:"size_cm" gorm:"type:decimal(5,1);not null;uniqueIndex:idx_board_sizes_natural"`
	Wide                    bool           `json:"wide" gorm:"not null;default:false;uniqueIndex:idx_board_sizes_natural"`
	EffectiveEdgeMM         *float64       `json:"effective_edge_mm" gorm:"type:decimal(6,1)"`
	WaistWidthMM            *float64       `json:"waist_width_mm" gorm:"type:decimal(6,1)"`
	TipWidthMM              *float64       `json:"tip_width_mm" gorm:"type:decimal(6,1)"`
	TailWidthMM             *float64       `json:"tail_width_mm" gorm:"type:decimal(6,1)"`
	RunningLengthMM         *float64       `json:"running_length_mm" gorm:"type:decimal(6,1)"`
	SidecutRadiusM          *float64       `json:"sidecut_radius_m" gorm:"type:decimal(4,1)"`
	SidecutEntryRadiusM     *float64       `json:"sidecut_entry_radius_m" gorm:"type:decimal(4,1)"`
	SidecutFocusRadiusM     *float64       `json:"sidecut_focus_radius_m" gorm:"type:decimal(4,1)"`
	SidecutExitRadiusM      *float64       `json:"sidecut_exit_radius_m" gorm:"type:decimal(4,1)"`
	SidecutDepthMM          *float64       `json:"sidecut_depth_mm" gorm:"type:decimal(5,1)"`
	ReferenceStanceIN       *float64       `json:"reference_stance_in" gorm:"type:decimal(4,2)"`
	MinStanceIN             *float64       `json:"min_stance_in" gorm:"type:decimal(4,2)"`
	MaxStanceIN             *float64       `json:"max_stance_in" gorm:"type:decimal(4,2)"`
	SetbackIN               *float64       `json:"setback_in" gorm:"type:decimal(4,2)"`
	InsertCount             *int           `json:"insert_count"`
	RiderWeightMinLBS       *float64       `json:"rider_weight_min_lbs" gorm:"type:decimal(5,1)"`
	RiderWeightMaxLBS       *float64       `json:"rider_weight_max_lbs" gorm:"type:decimal(5,1)"`
	RecommendedBootSizes    pq.StringArray `json:"recommended_boot_sizes" gorm:"type:text[]"`
	RecommendedBindingSizes pq.StringArray `json:"recommended_binding_sizes" gorm:"type:text[]"`
}
