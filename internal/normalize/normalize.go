// internal/normalize/normalize.go

// Package normalize turns the loosely structured field values page scrapers
// extract into canonical record fields. Every parser fails soft: unparsable
// or absent input yields a nil field, never an error, so a record stays
// usable with partial data.
package normalize

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/jibtech/boardbase/internal/schema"
)

var (
	yearPattern        = regexp.MustCompile(`W(\d{2})-`)
	flexWidthPattern   = regexp.MustCompile(`width:\s*calc\((\d+)%`)
	flexMarginPattern  = regexp.MustCompile(`margin-left:\s*(\d+)%`)
	mmPattern          = regexp.MustCompile(`([\d.]+)\s*mm`)
	metersPattern      = regexp.MustCompile(`([\d.]+)\s*m`)
	weightOpenPattern  = regexp.MustCompile(`(\d+)-(\d+)\s*lbs\.\+`)
	weightRangePattern = regexp.MustCompile(`(\d+)-(\d+)\s*lbs`)
)

// InferGender derives the gender line from the product name prefix.
// The prefix match is case-sensitive and checked in fixed priority order.
func InferGender(name string) schema.Gender {
	switch {
	case strings.HasPrefix(name, "Men's"):
		return schema.GenderMens
	case strings.HasPrefix(name, "Women's"):
		return schema.GenderWomens
	case strings.HasPrefix(name, "Kid's"), strings.HasPrefix(name, "Kids"):
		return schema.GenderKids
	default:
		return schema.GenderUnisex
	}
}

// ModelYearFromURL extracts the model year from the season token embedded
// in a product URL (e.g. W26-106881 -> 2026).
func ModelYearFromURL(url string) *int {
	m := yearPattern.FindStringSubmatch(url)
	if m == nil {
		return nil
	}
	suffix, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	year := 2000 + suffix
	return &year
}

// ParsePrice strips the currency symbol and thousands separators.
func ParsePrice(priceStr string) *float64 {
	if priceStr == "" {
		return nil
	}
	cleaned := strings.NewReplacer("$", "", ",", "").Replace(priceStr)
	value, err := strconv.ParseFloat(strings.TrimSpace(cleaned), 64)
	if err != nil {
		return nil
	}
	return &value
}

// ParseFlexRating decodes the personality-slider bar fill. The style string
// carries a width percentage and a left-margin percentage; together they
// position the filled region on a 1-10 scale. Both must be present.
func ParseFlexRating(styleStr string) *float64 {
	widthMatch := flexWidthPattern.FindStringSubmatch(styleStr)
	marginMatch := flexMarginPattern.FindStringSubmatch(styleStr)
	if widthMatch == nil || marginMatch == nil {
		return nil
	}

	width, err := strconv.Atoi(widthMatch[1])
	if err != nil {
		return nil
	}
	marginLeft, err := strconv.Atoi(marginMatch[1])
	if err != nil {
		return nil
	}

	flex := round1(float64((width-10)+marginLeft) / 10.0)
	return &flex
}

// FlexToResponse maps a flex rating onto the response bands.
func FlexToResponse(flexRating *float64) string {
	if flexRating == nil {
		return ""
	}
	switch {
	case *flexRating <= 3:
		return "Soft"
	case *flexRating <= 6:
		return "Medium"
	default:
		return "Stiff"
	}
}

type terrainScore struct {
	label string
	score int
}

// DetermineTerrainTypes picks the terrain labels that best characterize a
// board from its tick scores, scanning thresholds from 7 down to 1. The
// first threshold with a non-empty subset decides: one or two members are
// returned as-is; with three or more, the top scores are compared and only
// genuinely indistinguishable labels survive. If no threshold matches, all
// scored labels are returned; an empty score map yields nil. Output order
// is score descending, label ascending.
func DetermineTerrainTypes(terrainScores map[string]int) []string {
	if len(terrainScores) == 0 {
		return nil
	}

	for threshold := 7; threshold >= 1; threshold-- {
		var candidates []terrainScore
		for label, score := range terrainScores {
			if score >= threshold {
				candidates = append(candidates, terrainScore{label, score})
			}
		}
		if len(candidates) == 0 {
			continue
		}

		sortTerrains(candidates)
		if len(candidates) <= 2 {
			return terrainLabels(candidates)
		}

		top := candidates[0].score
		second := candidates[1].score
		third := candidates[2].score
		if third < second {
			return terrainLabels(candidates[:2])
		}
		if second < top {
			return terrainLabels(candidates[:1])
		}
		return terrainLabels(candidates)
	}

	all := make([]terrainScore, 0, len(terrainScores))
	for label, score := range terrainScores {
		all = append(all, terrainScore{label, score})
	}
	sortTerrains(all)
	return terrainLabels(all)
}

func sortTerrains(terrains []terrainScore) {
	sort.Slice(terrains, func(i, j int) bool {
		if terrains[i].score != terrains[j].score {
			return terrains[i].score > terrains[j].score
		}
		return terrains[i].label < terrains[j].label
	})
}

func terrainLabels(terrains []terrainScore) []string {
	labels := make([]string, len(terrains))
	for i, t := range terrains {
		labels[i] = t.label
	}
	return labels
}

// ParseMM extracts a millimeter value from free text (e.g. "254 mm").
func ParseMM(mmStr string) *float64 {
	m := mmPattern.FindStringSubmatch(mmStr)
	if m == nil {
		return nil
	}
	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil
	}
	return &value
}

// ParseMeters extracts a meter value from free text (e.g. "7.8 m").
func ParseMeters(mStr string) *float64 {
	m := metersPattern.FindStringSubmatch(mStr)
	if m == nil {
		return nil
	}
	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil
	}
	return &value
}

// MMToInches converts millimeters to inches, rounded to 2 decimals.
func MMToInches(mm float64) float64 {
	return round2(mm / 25.4)
}

// ParseMMToInches extracts a millimeter value and converts it to inches.
func ParseMMToInches(mmStr string) *float64 {
	mm := ParseMM(mmStr)
	if mm == nil || *mm == 0 {
		return nil
	}
	inches := MMToInches(*mm)
	return &inches
}

// ParseWeightRange parses a rider weight range such as "120-180 lbs".
// Open-ended ranges suffixed "+" yield a nil upper bound and must be
// checked first, or the plain range pattern shadows them.
func ParseWeightRange(weightStr string) (*float64, *float64) {
	if m := weightOpenPattern.FindStringSubmatch(weightStr); m != nil {
		if minLbs, err := strconv.ParseFloat(m[1], 64); err == nil {
			return &minLbs, nil
		}
	}
	if m := weightRangePattern.FindStringSubmatch(weightStr); m != nil {
		minLbs, errMin := strconv.ParseFloat(m[1], 64)
		maxLbs, errMax := strconv.ParseFloat(m[2], 64)
		if errMin == nil && errMax == nil {
			return &minLbs, &maxLbs
		}
	}
	return nil, nil
}

// ParseSetback reads a signed millimeter offset and returns its magnitude
// in inches.
func ParseSetback(setbackStr string) *float64 {
	setbackMM, err := strconv.ParseFloat(strings.TrimSpace(setbackStr), 64)
	if err != nil {
		return nil
	}
	inches := round2(math.Abs(setbackMM) / 25.4)
	return &inches
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
