// internal/database/connection.go
package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jibtech/boardbase/internal/config"
	"github.com/jibtech/boardbase/internal/models"
)

var DB *gorm.DB

func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var err error
	var gormConfig *gorm.Config

	// Configure GORM logger
	if cfg.LogLevel == "silent" {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		}
	} else {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Info),
		}
	}

	// Connect to database
	DB, err = gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB
	sqlDB, err := DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	// Test connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Database connection established successfully")
	return DB, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting underlying sql.DB: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	} else {
		log.Println("Database connection closed successfully")
	}
}

func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	// gen_random_uuid() needs pgcrypto on PostgreSQL < 13
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"pgcrypto\"").Error; err != nil {
		return fmt.Errorf("failed to create pgcrypto extension: %w", err)
	}

	// Run auto-migrations
	err := db.AutoMigrate(
		&models.Brand{},
		&models.Shape{},
		&models.Profile{},
		&models.ResponseType{},
		&models.AbilityLevel{},
		&models.TerrainType{},
		&models.ShapeAlias{},
		&models.ProfileAlias{},
		&models.ResponseTypeAlias{},
		&models.TerrainTypeAlias{},
		&models.BoardModel{},
		&models.BoardModelAbilityLevel{},
		&models.BoardModelTerrainType{},
		&models.BoardSize{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Create indexes
	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []string{
		// The (brand, name, year) identity needs two partial indexes because
		// NULL years never collide in a plain unique index
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_board_models_identity ON board_models(brand_id, model_name, model_year) WHERE model_year IS NOT NULL AND deleted_at IS NULL",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_board_models_identity_no_year ON board_models(brand_id, model_name) WHERE model_year IS NULL AND deleted_at IS NULL",

		// Board model indexes
		"CREATE INDEX IF NOT EXISTS idx_board_models_gender ON board_models(gender)",
		"CREATE INDEX IF NOT EXISTS idx_board_models_created_at ON board_models(created_at DESC)",

		// Size lookups during upsert
		"CREATE INDEX IF NOT EXISTS idx_board_sizes_model ON board_sizes(board_model_id)",

		// Junction lookups during relation sync
		"CREATE INDEX IF NOT EXISTS idx_board_model_terrain_types_model ON board_model_terrain_types(board_model_id)",
		"CREATE INDEX IF NOT EXISTS idx_board_model_ability_levels_model ON board_model_ability_levels(board_model_id)",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			log.Printf("Warning: Failed to create index: %s, Error: %v", index, err)
			// Continue with other indexes instead of failing completely
		}
	}

	return nil
}

// Seed baseline taxonomy rows
func SeedInitialData(db *gorm.DB) error {
	log.Println("Seeding initial data...")

	abilityLevels := []models.AbilityLevel{
		{Name: "Beginner", SortOrder: 1},
		{Name: "Intermediate", SortOrder: 2},
		{Name: "Advanced", SortOrder: 3},
		{Name: "Expert", SortOrder: 4},
	}
	for _, level := range abilityLevels {
		var count int64
		db.Model(&models.AbilityLevel{}).Where("name = ?", level.Name).Count(&count)
		if count == 0 {
			if err := db.Create(&level).Error; err != nil {
				return fmt.Errorf("failed to seed ability level %q: %w", level.Name, err)
			}
		}
	}

	terrainTypes := []string{"Freestyle", "Freeride", "All-Mountain"}
	for _, name := range terrainTypes {
		var count int64
		db.Model(&models.TerrainType{}).Where("name = ?", name).Count(&count)
		if count == 0 {
			if err := db.Create(&models.TerrainType{Name: name}).Error; err != nil {
				return fmt.Errorf("failed to seed terrain type %q: %w", name, err)
			}
		}
	}

	shapes := []models.Shape{
		{StandardName: "directional", Description: "Distinct nose and tail, ridden one way"},
		{StandardName: "twin", Description: "Symmetrical nose and tail"},
		{StandardName: "directional_twin", Description: "Twin shape with a directional core or stance"},
		{StandardName: "tapered_directional", Description: "Nose wider than tail"},
	}
	for _, shape := range shapes {
		var count int64
		db.Model(&models.Shape{}).Where("standard_name = ?", shape.StandardName).Count(&count)
		if count == 0 {
			if err := db.Create(&shape).Error; err != nil {
				return fmt.Errorf("failed to seed shape %q: %w", shape.StandardName, err)
			}
		}
	}

	profiles := []models.Profile{
		{StandardName: "camber", Description: "Traditional arch between the contact points"},
		{StandardName: "rocker", Description: "Reverse camber, lifted nose and tail"},
		{StandardName: "flat", Description: "Flat between the contact points"},
		{StandardName: "hybrid_camber", Description: "Camber underfoot with rockered ends"},
		{StandardName: "hybrid_rocker", Description: "Rocker between the feet with camber zones"},
	}
	for _, profile := range profiles {
		var count int64
		db.Model(&models.Profile{}).Where("standard_name = ?", profile.StandardName).Count(&count)
		if count == 0 {
			if err := db.Create(&profile).Error; err != nil {
				return fmt.Errorf("failed to seed profile %q: %w", profile.StandardName, err)
			}
		}
	}

	responseTypes := []models.ResponseType{
		{StandardName: "soft", Description: "Forgiving flex, flex rating 3 or below"},
		{StandardName: "medium", Description: "All-round flex, flex rating 4-6"},
		{StandardName: "stiff", Description: "Aggressive flex, flex rating 7 and up"},
	}
	for _, response := range responseTypes {
		var count int64
		db.Model(&models.ResponseType{}).Where("standard_name = ?", response.StandardName).Count(&count)
		if count == 0 {
			if err := db.Create(&response).Error; err != nil {
				return fmt.Errorf("failed to seed response type %q: %w", response.StandardName, err)
			}
		}
	}

	log.Println("Initial data seeding completed")
	return nil
}

// Transaction helper
func WithTransaction(db *gorm.DB, fn func(*gorm.DB) error) error {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}
