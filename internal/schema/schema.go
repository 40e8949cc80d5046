// internal/schema/schema.go
package schema

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jibtech/boardbase/internal/utils"
)

const DefaultScraperVersion = "1.0.0"

// Gender is normalized to uppercase on JSON unmarshal, so mixed-case
// scraper output passes the enum check.
type Gender string

const (
	GenderMens   Gender = "MENS"
	GenderWomens Gender = "WOMENS"
	GenderUnisex Gender = "UNISEX"
	GenderKids   Gender = "KIDS"
)

func (g *Gender) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*g = Gender(strings.ToUpper(s))
	return nil
}

// SizeChart is one purchasable size of a board model. Sizes are keyed by
// (size_cm, wide) within a model; duplicates collapse, last write wins.
type SizeChart struct {
	SizeCM                  float64  `json:"size_cm" validate:"required,gt=0"`
	Wide                    bool     `json:"wide"`
	EffectiveEdgeMM         *float64 `json:"effective_edge_mm,omitempty"`
	WaistWidthMM            *float64 `json:"waist_width_mm,omitempty"`
	TipWidthMM              *float64 `json:"tip_width_mm,omitempty"`
	TailWidthMM             *float64 `json:"tail_width_mm,omitempty"`
	RunningLengthMM         *float64 `json:"running_length_mm,omitempty"`
	SidecutRadiusM          *float64 `json:"sidecut_radius_m,omitempty"`
	SidecutEntryRadiusM     *float64 `json:"sidecut_entry_radius_m,omitempty"`
	SidecutFocusRadiusM     *float64 `json:"sidecut_focus_radius_m,omitempty"`
	SidecutExitRadiusM      *float64 `json:"sidecut_exit_radius_m,omitempty"`
	SidecutDepthMM          *float64 `json:"sidecut_depth_mm,omitempty"`
	ReferenceStanceIN       *float64 `json:"reference_stance_in,omitempty"`
	MinStanceIN             *float64 `json:"min_stance_in,omitempty"`
	MaxStanceIN             *float64 `json:"max_stance_in,omitempty"`
	SetbackIN               *float64 `json:"setback_in,omitempty"`
	InsertCount             *int     `json:"insert_count,omitempty"`
	RiderWeightMinLBS       *float64 `json:"rider_weight_min_lbs,omitempty"`
	RiderWeightMaxLBS       *float64 `json:"rider_weight_max_lbs,omitempty"`
	RecommendedBootSizes    []string `json:"recommended_boot_sizes,omitempty"`
	RecommendedBindingSizes []string `json:"recommended_binding_sizes,omitempty"`
}

func (s *SizeChart) Validate() error {
	return utils.ValidateStruct(s)
}

// Board is one product line/year. Its persistence identity is
// (brand, name, model_year).
type Board struct {
	Name               string                 `json:"name" validate:"required"`
	ModelYear          *int                   `json:"model_year,omitempty"`
	URL                string                 `json:"url" validate:"required"`
	ImageURL           string                 `json:"image_url,omitempty"`
	Price              *float64               `json:"price,omitempty"`
	Gender             Gender                 `json:"gender,omitempty" validate:"omitempty,oneof=MENS WOMENS UNISEX KIDS"`
	ProfileType        string                 `json:"profile_type,omitempty"`
	ProfileDescription string                 `json:"profile_description,omitempty"`
	ShapeType          string                 `json:"shape_type,omitempty"`
	ShapeDescription   string                 `json:"shape_description,omitempty"`
	FlexRating         *float64               `json:"flex_rating,omitempty" validate:"omitempty,min=1,max=10"`
	Response           string                 `json:"response,omitempty"`
	AbilityLevels      []string               `json:"ability_levels,omitempty"`
	TerrainTypes       []string               `json:"terrain_types,omitempty"`
	Technologies       []string               `json:"technologies,omitempty"`
	Description        string                 `json:"description,omitempty"`
	FullDescription    string                 `json:"full_description,omitempty"`
	SizeChart          []SizeChart            `json:"size_chart,omitempty" validate:"omitempty,dive"`
	RawData            map[string]interface{} `json:"raw_data,omitempty"`
}

func (b *Board) Validate() error {
	return utils.ValidateStruct(b)
}

// ScrapeEnvelope is the batch document a scrape run hands to the importer.
// TotalBoards is always recomputed from the board list, never trusted.
type ScrapeEnvelope struct {
	Brand          string    `json:"brand" validate:"required"`
	BrandURL       string    `json:"brand_url" validate:"required"`
	ScrapedAt      time.Time `json:"scraped_at"`
	ScraperVersion string    `json:"scraper_version"`
	Boards         []Board   `json:"boards"`
	TotalBoards    int       `json:"total_boards"`
}

func NewScrapeEnvelope(brand, brandURL, scraperVersion string, boards []Board) *ScrapeEnvelope {
	env := &ScrapeEnvelope{
		Brand:          brand,
		BrandURL:       brandURL,
		ScraperVersion: scraperVersion,
		Boards:         boards,
	}
	env.applyDefaults()
	return env
}

func (e *ScrapeEnvelope) applyDefaults() {
	if e.ScraperVersion == "" {
		e.ScraperVersion = DefaultScraperVersion
	}
	if e.ScrapedAt.IsZero() {
		e.ScrapedAt = time.Now().UTC()
	}
	e.TotalBoards = len(e.Boards)
}

// Validate covers envelope-level fields only. Boards are validated
// individually at the import loop so one bad record cannot reject a batch.
func (e *ScrapeEnvelope) Validate() error {
	return utils.ValidateStruct(e)
}

// LoadFile reads and parses an envelope document, recomputing the board
// count and filling defaults before validation.
func LoadFile(path string) (*ScrapeEnvelope, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read envelope file: %w", err)
	}

	var env ScrapeEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to parse envelope file: %w", err)
	}
	env.applyDefaults()

	if err := env.Validate(); err != nil {
		return nil, fmt.Errorf("invalid envelope: %w", err)
	}
	return &env, nil
}
