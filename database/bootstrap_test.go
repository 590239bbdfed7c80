package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrocredit/entities"
)

func TestOpenSQLiteMigrates(t *testing.T) {
	db := OpenSQLite(filepath.Join(t.TempDir(), "test.db"))

	f := entities.Farmer{FarmerKey: "boot-1"}
	require.NoError(t, db.Create(&f).Error)
	require.NoError(t, db.Create(&entities.ScoringResult{FarmerID: f.FarmerID, TotalScore: 50, IsLatest: true}).Error)
	require.NoError(t, db.Create(&entities.AdvisoryDoc{Title: "doc"}).Error)
}

func TestLatestIndexBlocksDuplicates(t *testing.T) {
	db := OpenSQLite(filepath.Join(t.TempDir(), "test.db"))

	require.NoError(t, db.Create(&entities.ScoringResult{FarmerID: 1, TotalScore: 50, IsLatest: true}).Error)
	// second current row for the same farmer violates the partial index
	err := db.Create(&entities.ScoringResult{FarmerID: 1, TotalScore: 60, IsLatest: true}).Error
	assert.Error(t, err)
	// superseded rows are unlimited
	require.NoError(t, db.Create(&entities.ScoringResult{FarmerID: 1, TotalScore: 60, IsLatest: false}).Error)
}

func TestGuardNormalizesStrayFlags(t *testing.T) {
	db := OpenSQLite(filepath.Join(t.TempDir(), "test.db"))

	// simulate a database written before the index existed
	require.NoError(t, db.Exec(`DROP INDEX uq_scoring_results_latest`).Error)
	require.NoError(t, db.Create(&entities.ScoringResult{FarmerID: 7, TotalScore: 40, IsLatest: true}).Error)
	require.NoError(t, db.Create(&entities.ScoringResult{FarmerID: 7, TotalScore: 55, IsLatest: true}).Error)
	require.NoError(t, db.Create(&entities.ScoringResult{FarmerID: 8, TotalScore: 70, IsLatest: true}).Error)

	require.NoError(t, migrateSingleLatestGuard(db))

	var latest []entities.ScoringResult
	require.NoError(t, db.Where("farmer_id = ? AND is_latest = ?", 7, true).Find(&latest).Error)
	require.Len(t, latest, 1)
	// the newest row wins
	assert.Equal(t, 55, latest[0].TotalScore)

	var other []entities.ScoringResult
	require.NoError(t, db.Where("farmer_id = ? AND is_latest = ?", 8, true).Find(&other).Error)
	assert.Len(t, other, 1)
}
