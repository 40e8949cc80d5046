// internal/normalize/raw.go
package normalize

import (
	"strconv"
	"strings"

	"github.com/jibtech/boardbase/internal/schema"
)

// RawBoard is the string bundle an external page scraper hands over for one
// product: free text, markup fragments and a size table, all untrusted.
type RawBoard struct {
	Name      string
	URL       string
	ImageURL  string
	PriceText string

	// FlexStyle is the inline style string of the flex slider bar fill.
	FlexStyle string

	// TerrainScores maps terrain label to tick score (0-7).
	TerrainScores map[string]int

	ProfileType        string
	ProfileDescription string
	ShapeType          string
	ShapeDescription   string
	AbilityLevels      []string
	Technologies       []string
	Description        string
	FullDescription    string

	// SizeHeaders are the size-chart column labels ("154", "158W", ...);
	// SizeRows maps a row label ("Waist Width", ...) to its cells, one per
	// column.
	SizeHeaders []string
	SizeRows    map[string][]string

	RawData map[string]interface{}
}

// Board assembles a canonical board record from raw scraped fields. Fields
// that fail to parse stay nil or empty; the record is still usable.
func Board(raw RawBoard) schema.Board {
	flex := ParseFlexRating(raw.FlexStyle)

	return schema.Board{
		Name:               raw.Name,
		ModelYear:          ModelYearFromURL(raw.URL),
		URL:                raw.URL,
		ImageURL:           raw.ImageURL,
		Price:              ParsePrice(raw.PriceText),
		Gender:             InferGender(raw.Name),
		ProfileType:        raw.ProfileType,
		ProfileDescription: raw.ProfileDescription,
		ShapeType:          raw.ShapeType,
		ShapeDescription:   raw.ShapeDescription,
		FlexRating:         flex,
		Response:           FlexToResponse(flex),
		AbilityLevels:      raw.AbilityLevels,
		TerrainTypes:       DetermineTerrainTypes(raw.TerrainScores),
		Technologies:       raw.Technologies,
		Description:        raw.Description,
		FullDescription:    raw.FullDescription,
		SizeChart:          BuildSizeVariants(raw.SizeHeaders, raw.SizeRows),
		RawData:            raw.RawData,
	}
}

// BuildSizeVariants turns a scraped size table into size variants. A header
// carrying a "W" marker sets the wide flag and is stripped before parsing
// the size in centimeters; a header that still does not parse skips that
// column. Row cells are indexed per column with bounds checks, so a ragged
// table degrades to partial data rather than failing.
func BuildSizeVariants(headers []string, rows map[string][]string) []schema.SizeChart {
	var variants []schema.SizeChart

	for idx, header := range headers {
		wide := strings.Contains(header, "W")
		sizeCM, err := strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(header, "W", "")), 64)
		if err != nil {
			continue
		}

		variant := schema.SizeChart{
			SizeCM: sizeCM,
			Wide:   wide,
		}

		if v, ok := cell(rows, "Weight Range", idx); ok {
			variant.RiderWeightMinLBS, variant.RiderWeightMaxLBS = ParseWeightRange(v)
		}
		if v, ok := cell(rows, "Waist Width", idx); ok {
			variant.WaistWidthMM = ParseMM(v)
		}
		if v, ok := cell(rows, "Running Length", idx); ok {
			variant.RunningLengthMM = ParseMM(v)
		}
		if v, ok := cell(rows, "Sidecut Radius", idx); ok {
			variant.SidecutRadiusM = ParseMeters(v)
		}
		if v, ok := cell(rows, "Sidecut Depth", idx); ok {
			variant.SidecutDepthMM = ParseMM(v)
		}
		if v, ok := cell(rows, "Stance Width", idx); ok {
			variant.ReferenceStanceIN = ParseMMToInches(v)
		}
		if v, ok := cell(rows, "Stance Location", idx); ok {
			variant.SetbackIN = ParseSetback(v)
		}
		if v, ok := cell(rows, "Nose Width", idx); ok {
			variant.TipWidthMM = ParseMM(v)
		}
		if v, ok := cell(rows, "Tail Width", idx); ok {
			variant.TailWidthMM = ParseMM(v)
		}
		if v, ok := cell(rows, "Effective Edge", idx); ok {
			variant.EffectiveEdgeMM = ParseMM(v)
		}
		if v, ok := cell(rows, "Binding Sizes", idx); ok {
			variant.RecommendedBindingSizes = []string{v}
		}

		variants = append(variants, variant)
	}

	return variants
}

func cell(rows map[string][]string, label string, idx int) (string, bool) {
	values, ok := rows[label]
	if !ok || idx >= len(values) {
		return "", false
	}
	return values[idx], true
}
