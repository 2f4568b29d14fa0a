package services

import (
	"log"

	"github.com/farmly/farm-market-api/models"
	"gorm.io/gorm"
)

// MergeCatalog unions the admin product partition with owner submissions and
// de-duplicates by id. The admin partition wins on conflict: once a product
// has been approved into the admin partition, that copy supersedes the
// owner's submitted record. Every consumer that needs "all products" must go
// through this union.
func MergeCatalog(approved []models.Product, submitted []models.SubmittedProduct) []models.Product {
	merged := make([]models.Product, 0, len(approved)+len(submitted))
	seen := make(map[string]bool, len(approved))

	for _, p := range approved {
		merged = append(merged, p)
		seen[p.ID] = true
	}
	for _, s := range submitted {
		if seen[s.ID] {
			continue
		}
		merged = append(merged, s.Product)
		seen[s.ID] = true
	}
	return merged
}

// LoadCatalog reads both product partitions and merges them. Read failures
// degrade to an empty catalog so consumers render zero states instead of
// erroring; the failure is logged, not propagated.
func LoadCatalog(db *gorm.DB) []models.Product {
	var approved []models.Product
	if err := db.Find(&approved).Error; err != nil {
		log.Printf("catalog: failed to read products partition: %v", err)
		approved = nil
	}

	var submitted []models.SubmittedProduct
	if err := db.Find(&submitted).Error; err != nil {
		log.Printf("catalog: failed to read owner_products partition: %v", err)
		submitted = nil
	}

	return MergeCatalog(approved, submitted)
}

// FarmRoster collects the product ids belonging to a farm from the merged
// catalog. The roster is the primary attribution signal for revenue rollups.
func FarmRoster(catalog []models.Product, farmID string) map[string]bool {
	roster := make(map[string]bool)
	for _, p := range catalog {
		if p.FarmID != nil && *p.FarmID == farmID {
			roster[p.ID] = true
		}
	}
	return roster
}

// FindCatalogProduct looks up a product by id in the merged catalog.
func FindCatalogProduct(catalog []models.Product, id string) (models.Product, bool) {
	for _, p := range catalog {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}
