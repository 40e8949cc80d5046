// internal/tests/import_flow_test.go
package tests

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/jibtech/boardbase/internal/config"
	"github.com/jibtech/boardbase/internal/database"
	"github.com/jibtech/boardbase/internal/models"
	"github.com/jibtech/boardbase/internal/schema"
	"github.com/jibtech/boardbase/internal/services"
)

// ImportFlowTestSuite runs live reconciliation round-trips against a real
// PostgreSQL instance and is skipped when none is reachable.
type ImportFlowTestSuite struct {
	suite.Suite
	db        *gorm.DB
	cfg       *config.Config
	brandName string
	brandID   uuid.UUID
}

func (suite *ImportFlowTestSuite) SetupSuite() {
	cfg, err := config.Load()
	if err != nil {
		suite.T().Skipf("configuration unavailable: %v", err)
	}

	db, err := database.Initialize(cfg.Database)
	if err != nil {
		suite.T().Skipf("test database unreachable: %v", err)
	}

	suite.db = db
	suite.cfg = cfg

	require.NoError(suite.T(), database.RunMigrations(db))
	require.NoError(suite.T(), database.SeedInitialData(db))

	// Unique brand per run so reruns never collide
	suite.brandName = fmt.Sprintf("TestBrand-%s", uuid.New().String()[:8])
	suite.seedBrandAndAliases()
}

func (suite *ImportFlowTestSuite) TearDownSuite() {
	if suite.db == nil {
		return
	}

	var modelIDs []uuid.UUID
	suite.db.Model(&models.BoardModel{}).Where("brand_id = ?", suite.brandID).Pluck("id", &modelIDs)

	if len(modelIDs) > 0 {
		suite.db.Where("board_model_id IN ?", modelIDs).Delete(&models.BoardModelTerrainType{})
		suite.db.Where("board_model_id IN ?", modelIDs).Delete(&models.BoardModelAbilityLevel{})
		suite.db.Unscoped().Where("board_model_id IN ?", modelIDs).Delete(&models.BoardSize{})
		suite.db.Unscoped().Where("id IN ?", modelIDs).Delete(&models.BoardModel{})
	}

	suite.db.Unscoped().Where("brand_id = ?", suite.brandID).Delete(&models.ShapeAlias{})
	suite.db.Unscoped().Where("brand_id = ?", suite.brandID).Delete(&models.ProfileAlias{})
	suite.db.Unscoped().Where("brand_id = ?", suite.brandID).Delete(&models.ResponseTypeAlias{})
	suite.db.Unscoped().Where("brand_id = ?", suite.brandID).Delete(&models.TerrainTypeAlias{})
	suite.db.Unscoped().Where("id = ?", suite.brandID).Delete(&models.Brand{})

	database.Close(suite.db)
}

// The brand row is created up front so its aliases can be mapped before the
// first import; the import itself only refreshes scrape metadata then.
func (suite *ImportFlowTestSuite) seedBrandAndAliases() {
	t := suite.T()
	now := time.Now().UTC()

	brand := models.Brand{
		Name:           suite.brandName,
		WebsiteURL:     "https://example.com",
		ScraperVersion: "0.0.1",
		LastScrapedAt:  &now,
	}
	require.NoError(t, suite.db.Create(&brand).Error)
	suite.brandID = brand.ID

	var shape models.Shape
	require.NoError(t, suite.db.Where("standard_name = ?", "directional_twin").First(&shape).Error)
	require.NoError(t, suite.db.Create(&models.ShapeAlias{
		ShapeID: shape.ID, BrandID: brand.ID, AliasName: "Directional Twin",
	}).Error)

	var profile models.Profile
	require.NoError(t, suite.db.Where("standard_name = ?", "camber").First(&profile).Error)
	require.NoError(t, suite.db.Create(&models.ProfileAlias{
		ProfileID: profile.ID, BrandID: brand.ID, AliasName: "Camber",
	}).Error)

	var response models.ResponseType
	require.NoError(t, suite.db.Where("standard_name = ?", "stiff").First(&response).Error)
	require.NoError(t, suite.db.Create(&models.ResponseTypeAlias{
		ResponseTypeID: response.ID, BrandID: brand.ID, AliasName: "Stiff",
	}).Error)

	var terrains []models.TerrainType
	require.NoError(t, suite.db.Where("name IN ?", []string{"All-Mountain", "Freeride"}).Find(&terrains).Error)
	require.Len(t, terrains, 2)
	for _, terrain := range terrains {
		require.NoError(t, suite.db.Create(&models.TerrainTypeAlias{
			TerrainTypeID: terrain.ID, BrandID: brand.ID, AliasName: terrain.Name,
		}).Error)
	}
}

func (suite *ImportFlowTestSuite) newBoard(terrains []string, waistMM float64) schema.Board {
	year := 2026
	flex := 7.5
	waist := waistMM

	return schema.Board{
		Name:          "Custom Flight Test",
		ModelYear:     &year,
		URL:           "https://example.com/p/custom-flight/W26-000001.html",
		Gender:        schema.GenderMens,
		ProfileType:   "Camber",
		ShapeType:     "Directional Twin",
		FlexRating:    &flex,
		Response:      "Stiff",
		AbilityLevels: []string{"Intermediate", "Advanced"},
		TerrainTypes:  terrains,
		SizeChart: []schema.SizeChart{
			{SizeCM: 154, Wide: false, WaistWidthMM: &waist},
			{SizeCM: 158, Wide: true},
			{SizeCM: 154, Wide: false, WaistWidthMM: &waist}, // duplicate must collapse
		},
	}
}

func (suite *ImportFlowTestSuite) runLive(boards []schema.Board) *services.ImportSummary {
	env := schema.NewScrapeEnvelope(suite.brandName, "https://example.com", "1.0.0", boards)
	importer := services.NewImportService(suite.db, suite.cfg.Import)

	summary, err := importer.Run(context.Background(), env, false)
	require.NoError(suite.T(), err)
	return summary
}

func (suite *ImportFlowTestSuite) TestReconcileTwiceIsIdempotent() {
	t := suite.T()

	first := suite.runLive([]schema.Board{suite.newBoard([]string{"All-Mountain", "Freeride"}, 250)})
	assert.Equal(t, 1, first.Success)
	assert.Equal(t, 0, first.Errors)

	second := suite.runLive([]schema.Board{suite.newBoard([]string{"All-Mountain"}, 252)})
	assert.Equal(t, 1, second.Success)

	// One model row, update path, not a duplicate insert
	var count int64
	suite.db.Model(&models.BoardModel{}).
		Where("brand_id = ? AND model_name = ?", suite.brandID, "Custom Flight Test").
		Count(&count)
	assert.Equal(t, int64(1), count)

	var model models.BoardModel
	require.NoError(t, suite.db.
		Where("brand_id = ? AND model_name = ?", suite.brandID, "Custom Flight Test").
		First(&model).Error)

	// Terrain links equal exactly the second scrape's set
	var links []models.BoardModelTerrainType
	require.NoError(t, suite.db.Where("board_model_id = ?", model.ID).Find(&links).Error)
	require.Len(t, links, 1)

	var terrain models.TerrainType
	require.NoError(t, suite.db.First(&terrain, "id = ?", links[0].TerrainTypeID).Error)
	assert.Equal(t, "All-Mountain", terrain.Name)

	// Ability links were written at creation and left alone on update
	var abilityCount int64
	suite.db.Model(&models.BoardModelAbilityLevel{}).Where("board_model_id = ?", model.ID).Count(&abilityCount)
	assert.Equal(t, int64(2), abilityCount)

	// Duplicate (size_cm, wide) collapsed; the 158W row was never pruned
	var sizes []models.BoardSize
	require.NoError(t, suite.db.Where("board_model_id = ?", model.ID).Order("size_cm, wide").Find(&sizes).Error)
	require.Len(t, sizes, 2)
	assert.Equal(t, 154.0, sizes[0].SizeCM)
	require.NotNil(t, sizes[0].WaistWidthMM)
	assert.Equal(t, 252.0, *sizes[0].WaistWidthMM, "size row overwritten by second run")
	assert.Equal(t, 158.0, sizes[1].SizeCM)
	assert.True(t, sizes[1].Wide)
}

func (suite *ImportFlowTestSuite) TestMissingAliasSkipsRecordNotBatch() {
	t := suite.T()

	blocked := schema.Board{
		Name:      "Mystery Board",
		URL:       "https://example.com/p/mystery.html",
		ShapeType: "Volume Twin", // no alias mapped
	}
	valid := schema.Board{
		Name:        "Companion Board",
		URL:         "https://example.com/p/companion.html",
		ProfileType: "Camber",
	}

	summary := suite.runLive([]schema.Board{blocked, valid})
	assert.Equal(t, 1, summary.Success)
	assert.Equal(t, 1, summary.Errors)
	assert.Contains(t, summary.MissingAliases, "shape:Volume Twin")

	var count int64
	suite.db.Model(&models.BoardModel{}).
		Where("brand_id = ? AND model_name = ?", suite.brandID, "Mystery Board").
		Count(&count)
	assert.Equal(t, int64(0), count, "blocked record must never be partially imported")

	suite.db.Model(&models.BoardModel{}).
		Where("brand_id = ? AND model_name = ?", suite.brandID, "Companion Board").
		Count(&count)
	assert.Equal(t, int64(1), count, "valid records in the same batch still import")
}

func TestImportFlowSuite(t *testing.T) {
	suite.Run(t, new(ImportFlowTestSuite))
}
