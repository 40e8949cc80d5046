// internal/services/import_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jibtech/boardbase/internal/config"
	"github.com/jibtech/boardbase/internal/database"
	"github.com/jibtech/boardbase/internal/models"
	"github.com/jibtech/boardbase/internal/schema"
)

// ImportService reconciles a scrape envelope against the store: one board at
// a time, in input order, with every failure contained at the record
// boundary. A dry run validates and reports without touching the store.
type ImportService struct {
	db      *gorm.DB
	limiter *rate.Limiter
	cache   *AliasCache
	brand   *models.Brand
}

// ImportSummary is the per-run result: counts plus the de-duplicated set of
// unmapped taxonomy terms that blocked records this run.
type ImportSummary struct {
	Success        int
	Errors         int
	MissingAliases []string
}

func NewImportService(db *gorm.DB, cfg config.ImportConfig) *ImportService {
	var limiter *rate.Limiter
	if cfg.StoreRate > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.StoreRate), cfg.StoreBurst)
	}

	return &ImportService{
		db:      db,
		limiter: limiter,
	}
}

// Run processes every board in the envelope. Setup failures (brand bootstrap,
// alias cache load) abort the run; per-board failures are logged, counted and
// skipped. Cancellation is checked between records.
func (s *ImportService) Run(ctx context.Context, env *schema.ScrapeEnvelope, dryRun bool) (*ImportSummary, error) {
	summary := &ImportSummary{}
	missingSet := make(map[string]struct{})

	if dryRun {
		logrus.WithFields(logrus.Fields{
			"brand":           env.Brand,
			"brand_url":       env.BrandURL,
			"scraper_version": env.ScraperVersion,
			"boards":          env.TotalBoards,
		}).Info("Dry run - no store writes will be performed")
	} else {
		brand, err := s.getOrCreateBrand(env)
		if err != nil {
			return nil, fmt.Errorf("failed to prepare brand: %w", err)
		}
		s.brand = brand

		cache, err := LoadAliasCache(s.db, brand.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load alias cache: %w", err)
		}
		s.cache = cache
	}

	for idx := range env.Boards {
		if err := ctx.Err(); err != nil {
			s.finishSummary(summary, missingSet)
			return summary, fmt.Errorf("import interrupted: %w", err)
		}

		board := &env.Boards[idx]
		log := logrus.WithFields(logrus.Fields{
			"index": idx + 1,
			"total": len(env.Boards),
			"board": board.Name,
		})
		log.Info("Processing board")

		if err := board.Validate(); err != nil {
			log.WithError(err).Error("Board failed validation")
			summary.Errors++
			continue
		}

		if dryRun {
			log.WithFields(logrus.Fields{
				"model_year": board.ModelYear,
				"gender":     board.Gender,
				"profile":    board.ProfileType,
				"shape":      board.ShapeType,
				"sizes":      len(board.SizeChart),
			}).Info("Would import board")
			summary.Success++
			continue
		}

		missing := s.cache.MissingAliases(board)
		if len(missing) > 0 {
			log.WithField("missing", strings.Join(missing, ", ")).Warn("Missing aliases, board skipped")
			for _, m := range missing {
				missingSet[m] = struct{}{}
			}
			summary.Errors++
			continue
		}

		if s.limiter != nil {
			if err := s.limiter.Wait(ctx); err != nil {
				s.finishSummary(summary, missingSet)
				return summary, fmt.Errorf("import interrupted: %w", err)
			}
		}

		modelID, err := s.importBoard(board)
		if err != nil {
			log.WithError(err).Error("Failed to import board")
			summary.Errors++
			continue
		}

		log.WithField("board_model_id", modelID).Info("Board imported")
		summary.Success++
	}

	s.finishSummary(summary, missingSet)
	return summary, nil
}

func (s *ImportService) finishSummary(summary *ImportSummary, missingSet map[string]struct{}) {
	for m := range missingSet {
		summary.MissingAliases = append(summary.MissingAliases, m)
	}
	sort.Strings(summary.MissingAliases)
}

// getOrCreateBrand selects the brand by name. An existing row gets its
// last_scraped_at and scraper_version refreshed; a new row is inserted.
func (s *ImportService) getOrCreateBrand(env *schema.ScrapeEnvelope) (*models.Brand, error) {
	now := time.Now().UTC()

	var brand models.Brand
	err := s.db.Where("name = ?", env.Brand).First(&brand).Error
	if err == nil {
		updates := map[string]interface{}{
			"last_scraped_at": now,
			"scraper_version": env.ScraperVersion,
		}
		if err := s.db.Model(&brand).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update brand: %w", err)
		}
		logrus.WithFields(logrus.Fields{"brand": brand.Name, "brand_id": brand.ID}).Info("Found existing brand")
		return &brand, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to query brand: %w", err)
	}

	brand = models.Brand{
		Name:           env.Brand,
		WebsiteURL:     env.BrandURL,
		ScraperVersion: env.ScraperVersion,
		LastScrapedAt:  &now,
	}
	if err := s.db.Create(&brand).Error; err != nil {
		return nil, fmt.Errorf("failed to create brand: %w", err)
	}

	logrus.WithFields(logrus.Fields{"brand": brand.Name, "brand_id": brand.ID}).Info("Created new brand")
	return &brand, nil
}

// importBoard upserts one board model, its taxonomy links and its sizes.
// The caller has already gated on missing aliases, so resolutions here
// cannot miss for populated fields.
func (s *ImportService) importBoard(board *schema.Board) (uuid.UUID, error) {
	var shapeID, profileID, responseTypeID *uuid.UUID
	if board.ShapeType != "" {
		if id, ok := s.cache.ResolveShape(board.ShapeType); ok {
			shapeID = &id
		}
	}
	if board.ProfileType != "" {
		if id, ok := s.cache.ResolveProfile(board.ProfileType); ok {
			profileID = &id
		}
	}
	if board.Response != "" {
		if id, ok := s.cache.ResolveResponseType(board.Response); ok {
			responseTypeID = &id
		}
	}

	query := s.db.Where("brand_id = ? AND model_name = ?", s.brand.ID, board.Name)
	if board.ModelYear != nil {
		query = query.Where("model_year = ?", *board.ModelYear)
	} else {
		query = query.Where("model_year IS NULL")
	}

	var modelID uuid.UUID
	var existing models.BoardModel
	err := query.First(&existing).Error

	switch {
	case err == nil:
		// Update in place, overwriting every scalar column.
		modelID = existing.ID
		updates := map[string]interface{}{
			"model_name":          board.Name,
			"model_year":          board.ModelYear,
			"gender":              string(board.Gender),
			"profile_id":          profileID,
			"shape_id":            shapeID,
			"response_type_id":    responseTypeID,
			"profile_description": board.ProfileDescription,
			"shape_description":   board.ShapeDescription,
			"flex_rating":         board.FlexRating,
			"msrp":                board.Price,
			"source_url":          board.URL,
			"image_url":           board.ImageURL,
			"description":         board.Description,
			"full_description":    board.FullDescription,
			"technologies":        pq.StringArray(board.Technologies),
			"raw_data":            models.JSONB(board.RawData),
		}
		if err := s.db.Model(&models.BoardModel{}).Where("id = ?", modelID).Updates(updates).Error; err != nil {
			return uuid.Nil, fmt.Errorf("failed to update board model: %w", err)
		}

	case errors.Is(err, gorm.ErrRecordNotFound):
		// Ability-level links are written only here, on first creation;
		// updates never resynchronize them.
		model := models.BoardModel{
			BrandID:            s.brand.ID,
			ModelName:          board.Name,
			ModelYear:          board.ModelYear,
			Gender:             string(board.Gender),
			ProfileID:          profileID,
			ShapeID:            shapeID,
			ResponseTypeID:     responseTypeID,
			ProfileDescription: board.ProfileDescription,
			ShapeDescription:   board.ShapeDescription,
			FlexRating:         board.FlexRating,
			MSRP:               board.Price,
			SourceURL:          board.URL,
			ImageURL:           board.ImageURL,
			Description:        board.Description,
			FullDescription:    board.FullDescription,
			Technologies:       pq.StringArray(board.Technologies),
			RawData:            models.JSONB(board.RawData),
		}

		txErr := database.WithTransaction(s.db, func(tx *gorm.DB) error {
			if err := tx.Create(&model).Error; err != nil {
				return fmt.Errorf("failed to create board model: %w", err)
			}
			for _, level := range board.AbilityLevels {
				levelID, ok := s.cache.ResolveAbilityLevel(level)
				if !ok {
					continue
				}
				link := models.BoardModelAbilityLevel{
					BoardModelID:   model.ID,
					AbilityLevelID: levelID,
				}
				if err := tx.Create(&link).Error; err != nil {
					return fmt.Errorf("failed to link ability level %q: %w", level, err)
				}
			}
			return nil
		})
		if txErr != nil {
			return uuid.Nil, txErr
		}
		modelID = model.ID

	default:
		return uuid.Nil, fmt.Errorf("failed to query board model: %w", err)
	}

	if err := s.syncTerrainTypes(modelID, board.TerrainTypes); err != nil {
		return uuid.Nil, err
	}

	for i := range board.SizeChart {
		if err := s.upsertBoardSize(modelID, &board.SizeChart[i]); err != nil {
			return uuid.Nil, err
		}
	}

	return modelID, nil
}

// syncTerrainTypes fully replaces the model's terrain links so the stored
// set always equals the latest scrape. The delete and the inserts are
// separate store operations; a crash between them is healed by the next
// successful run.
func (s *ImportService) syncTerrainTypes(modelID uuid.UUID, terrains []string) error {
	if err := s.db.Where("board_model_id = ?", modelID).Delete(&models.BoardModelTerrainType{}).Error; err != nil {
		return fmt.Errorf("failed to clear terrain links: %w", err)
	}

	for _, terrain := range terrains {
		terrainID, ok := s.cache.ResolveTerrainType(terrain)
		if !ok {
			continue
		}
		link := models.BoardModelTerrainType{
			BoardModelID:  modelID,
			TerrainTypeID: terrainID,
		}
		if err := s.db.Create(&link).Error; err != nil {
			return fmt.Errorf("failed to link terrain type %q: %w", terrain, err)
		}
	}

	return nil
}

// upsertBoardSize writes one size row keyed by (board_model_id, size_cm,
// wide), overwriting every field when the row already exists. Duplicate
// sizes within a batch collapse to one row, last write wins.
func (s *ImportService) upsertBoardSize(modelID uuid.UUID, size *schema.SizeChart) error {
	row := models.BoardSize{
		BoardModelID:            modelID,
		SizeCM:                  size.SizeCM,
		Wide:                    size.Wide,
		EffectiveEdgeMM:         size.EffectiveEdgeMM,
		WaistWidthMM:            size.WaistWidthMM,
		TipWidthMM:              size.TipWidthMM,
		TailWidthMM:             size.TailWidthMM,
		RunningLengthMM:         size.RunningLengthMM,
		SidecutRadiusM:          size.SidecutRadiusM,
		SidecutEntryRadiusM:     size.SidecutEntryRadiusM,
		SidecutFocusRadiusM:     size.SidecutFocusRadiusM,
		SidecutExitRadiusM:      size.SidecutExitRadiusM,
		SidecutDepthMM:          size.SidecutDepthMM,
		ReferenceStanceIN:       size.ReferenceStanceIN,
		MinStanceIN:             size.MinStanceIN,
		MaxStanceIN:             size.MaxStanceIN,
		SetbackIN:               size.SetbackIN,
		InsertCount:             size.InsertCount,
		RiderWeightMinLBS:       size.RiderWeightMinLBS,
		RiderWeightMaxLBS:       size.RiderWeightMaxLBS,
		RecommendedBootSizes:    pq.StringArray(size.RecommendedBootSizes),
		RecommendedBindingSizes: pq.StringArray(size.RecommendedBindingSizes),
	}

	err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "board_model_id"}, {Name: "size_cm"}, {Name: "wide"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"effective_edge_mm", "waist_width_mm", "tip_width_mm", "tail_width_mm",
			"running_length_mm", "sidecut_radius_m", "sidecut_entry_radius_m",
			"sidecut_focus_radius_m", "sidecut_exit_radius_m", "sidecut_depth_mm",
			"reference_stance_in", "min_stance_in", "max_stance_in", "setback_in",
			"insert_count", "rider_weight_min_lbs", "rider_weight_max_lbs",
			"recommended_boot_sizes", "recommended_binding_sizes", "updated_at",
		}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to upsert size %.1f (wide=%t): %w", size.SizeCM, size.Wide, err)
	}

	return nil
}

// Write renders the run summary in the operator-facing banner format.
func (s *ImportSummary) Write(w io.Writer) {
	line := strings.Repeat("=", 80)

	fmt.Fprintln(w, line)
	fmt.Fprintln(w, "IMPORT SUMMARY")
	fmt.Fprintln(w, line)
	fmt.Fprintf(w, "   Success: %d\n", s.Success)
	fmt.Fprintf(w, "   Errors: %d\n", s.Errors)

	if len(s.MissingAliases) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "   Missing aliases detected:")
		for _, alias := range s.MissingAliases {
			fmt.Fprintf(w, "      - %s\n", alias)
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, "   Run analyze mode to generate SQL for these aliases.")
	}

	fmt.Fprintln(w, line)
}
