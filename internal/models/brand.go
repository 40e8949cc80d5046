// internal/models/brand.go
package models

import (
	"time"
)

// Brand is the canonical seller entity. A row is created on the first import
// of any board for the brand; last_scraped_at and scraper_version are
// refreshed on every subsequent import.
type Brand struct {
	BaseModel
	Name           string     `json:"name" gorm:"size:100;uniqueIndex;not null"`
	WebsiteURL     string     `json:"website_url" gorm:"size:500"`
	ScraperVersion string     `json:"scraper_version" gorm:"size:50"`
	LastScrapedAt  *time.Time `json:"last_scraped_at"`

	// Relationships
	BoardModels []BoardModel `json:"board_models,omitempty" gorm:"foreignKey:BrandID"`
}
