// internal/normalize/raw_test.go
package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jibtech/boardbase/internal/schema"
)

func TestBuildSizeVariants(t *testing.T) {
	headers := []string{"154", "158W", "junk"}
	rows := map[string][]string{
		"Weight Range":    {"120-180 lbs", "180-260 lbs.+", ""},
		"Waist Width":     {"248 mm", "256 mm", ""},
		"Running Length":  {"1120 mm", "1160 mm", ""},
		"Sidecut Radius":  {"7.4 m", "7.8 m", ""},
		"Stance Width":    {"546 mm", "560 mm", ""},
		"Stance Location": {"-12.5", "-12.5", ""},
		"Effective Edge":  {"1180 mm", "1220 mm", ""},
		"Binding Sizes":   {"M", "L", ""},
	}

	variants := BuildSizeVariants(headers, rows)
	require.Len(t, variants, 2, "unparsable header column must be skipped")

	first := variants[0]
	assert.Equal(t, 154.0, first.SizeCM)
	assert.False(t, first.Wide)
	require.NotNil(t, first.RiderWeightMinLBS)
	require.NotNil(t, first.RiderWeightMaxLBS)
	assert.Equal(t, 120.0, *first.RiderWeightMinLBS)
	assert.Equal(t, 180.0, *first.RiderWeightMaxLBS)
	require.NotNil(t, first.WaistWidthMM)
	assert.Equal(t, 248.0, *first.WaistWidthMM)
	require.NotNil(t, first.ReferenceStanceIN)
	assert.Equal(t, 21.5, *first.ReferenceStanceIN)
	require.NotNil(t, first.SetbackIN)
	assert.Equal(t, 0.49, *first.SetbackIN)
	assert.Equal(t, []string{"M"}, first.RecommendedBindingSizes)

	second := variants[1]
	assert.Equal(t, 158.0, second.SizeCM)
	assert.True(t, second.Wide, "W-marked header sets the wide flag")
	require.NotNil(t, second.RiderWeightMinLBS)
	assert.Equal(t, 180.0, *second.RiderWeightMinLBS)
	assert.Nil(t, second.RiderWeightMaxLBS, "open-ended range has no upper bound")
}

func TestBuildSizeVariantsRaggedRows(t *testing.T) {
	headers := []string{"150", "155"}
	rows := map[string][]string{
		"Waist Width": {"245 mm"}, // one cell short
	}

	variants := BuildSizeVariants(headers, rows)
	require.Len(t, variants, 2)
	assert.NotNil(t, variants[0].WaistWidthMM)
	assert.Nil(t, variants[1].WaistWidthMM)
}

func TestBuildSizeVariantsEmpty(t *testing.T) {
	assert.Nil(t, BuildSizeVariants(nil, nil))
	assert.Nil(t, BuildSizeVariants([]string{"not-a-size"}, map[string][]string{}))
}

func TestBoardAssembly(t *testing.T) {
	raw := RawBoard{
		Name:               "Men's Custom Snowboard",
		URL:                "https://example.com/p/custom/W26-106881.html",
		ImageURL:           "https://example.com/i/custom.jpg",
		PriceText:          "$719.95",
		FlexStyle:          "width: calc(70% - 4px); margin-left: 20%;",
		TerrainScores:      map[string]int{"All-Mountain": 7, "Freestyle": 4},
		ProfileType:        "Camber",
		ProfileDescription: "Full camber for drive and pop",
		ShapeType:          "Directional Twin",
		AbilityLevels:      []string{"Intermediate", "Advanced"},
		Technologies:       []string{"Frostbite Edges"},
		SizeHeaders:        []string{"154", "158W"},
		SizeRows: map[string][]string{
			"Waist Width": {"250 mm", "256 mm"},
		},
	}

	board := Board(raw)

	assert.Equal(t, "Men's Custom Snowboard", board.Name)
	assert.Equal(t, schema.GenderMens, board.Gender)
	require.NotNil(t, board.ModelYear)
	assert.Equal(t, 2026, *board.ModelYear)
	require.NotNil(t, board.Price)
	assert.Equal(t, 719.95, *board.Price)
	require.NotNil(t, board.FlexRating)
	assert.Equal(t, 8.0, *board.FlexRating)
	assert.Equal(t, "Stiff", board.Response)
	assert.Equal(t, []string{"All-Mountain"}, board.TerrainTypes)
	assert.Equal(t, []string{"Intermediate", "Advanced"}, board.AbilityLevels)
	require.Len(t, board.SizeChart, 2)
	assert.True(t, board.SizeChart[1].Wide)

	assert.NoError(t, board.Validate())
}

func TestBoardAssemblyPartialData(t *testing.T) {
	// A board with nothing but a name and URL still builds cleanly.
	board := Board(RawBoard{
		Name: "Free Thinker Snowboard",
		URL:  "https://example.com/p/free-thinker.html",
	})

	assert.Equal(t, schema.GenderUnisex, board.Gender)
	assert.Nil(t, board.ModelYear)
	assert.Nil(t, board.Price)
	assert.Nil(t, board.FlexRating)
	assert.Equal(t, "", board.Response)
	assert.Nil(t, board.TerrainTypes)
	assert.Nil(t, board.SizeChart)
	assert.NoError(t, board.Validate())
}
