package database

import (
	"fmt"
	"log"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"agrocredit/entities"
)

func OpenSQLite(path string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		log.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&entities.Farmer{},
		&entities.Farm{},
		&entities.Crop{},
		&entities.Machinery{},
		&entities.FarmStructure{},
		&entities.FarmGeometry{},
		&entities.MarketAccess{},
		&entities.TechnologyUsage{},
		&entities.Insurance{},
		&entities.LoanRequest{},
		&entities.ScoringResult{},
		&entities.ScoringHistory{},
		&entities.AdvisoryDoc{},
		&entities.AdvisoryChunk{},
	); err != nil {
		log.Fatalf("automigrate: %v", err)
	}

	if err := migrateSingleLatestGuard(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	return db
}

// migrateSingleLatestGuard enforces at most one current result per farmer.
// Databases written before the partial index existed may carry stray
// is_latest flags; keep the newest row per farmer and clear the rest,
// then add the index so the invariant holds at the schema level too.
func migrateSingleLatestGuard(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		fix := `
UPDATE scoring_results SET is_latest = 0
WHERE is_latest = 1 AND scoring_id NOT IN (
    SELECT MAX(scoring_id) FROM scoring_results WHERE is_latest = 1 GROUP BY farmer_id
);`
		if err := tx.Exec(fix).Error; err != nil {
			return fmt.Errorf("normalize is_latest: %w", err)
		}
		idx := `
CREATE UNIQUE INDEX IF NOT EXISTS uq_scoring_results_latest
ON scoring_results(farmer_id) WHERE is_latest = 1;`
		if err := tx.Exec(idx).Error; err != nil {
			return fmt.Errorf("create latest index: %w", err)
		}
		return nil
	})
}
