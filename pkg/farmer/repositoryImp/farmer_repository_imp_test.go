package repositoryImp

import (
	"path/filepath"
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"agrocredit/entities"
	"agrocredit/pkg/scoring/types"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	// file-backed: a pooled in-memory DB is a different DB per connection
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
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
	))
	return db
}

func TestFindByIDNotFound(t *testing.T) {
	repo := New(testDB(t))

	_, err := repo.FindByID(99)
	assert.ErrorIs(t, err, types.ErrFarmerNotFound)
	_, err = repo.FindByKey("ghost")
	assert.ErrorIs(t, err, types.ErrFarmerNotFound)
}

func TestCompleteProfileAssemblesAggregate(t *testing.T) {
	repo := New(testDB(t))

	f := &entities.Farmer{FarmerKey: "agg-1", Age: 40}
	require.NoError(t, repo.Create(f))

	farm := &entities.Farm{FarmerID: f.FarmerID, FarmSizeAcres: 250, OwnershipStatus: "owned"}
	require.NoError(t, repo.CreateFarm(farm))

	require.NoError(t, repo.CreateCrops([]entities.Crop{
		{FarmID: farm.FarmID, CropType: "wheat", YieldHistoryTonnes: []float64{100, 110}},
		{FarmID: farm.FarmID, CropType: "corn"},
	}))
	require.NoError(t, repo.CreateMachinery([]entities.Machinery{
		{FarmID: farm.FarmID, Name: "tractor", BuildYear: 2020},
	}))
	require.NoError(t, repo.CreateStructures([]entities.FarmStructure{
		{FarmID: farm.FarmID, Type: "warehouse", AreaSqm: 300, LegalStatus: "registered"},
	}))
	require.NoError(t, repo.CreateGeometry(&entities.FarmGeometry{FarmID: farm.FarmID, Vertices: 8}))
	require.NoError(t, repo.CreateInsurance(&entities.Insurance{FarmID: farm.FarmID, CropInsurance: true}))

	p, err := repo.CompleteProfile(f.FarmerID)
	require.NoError(t, err)

	assert.Equal(t, "agg-1", p.Farmer.FarmerKey)
	require.Len(t, p.Farms, 1)
	d := p.Farms[0]
	assert.Equal(t, 250.0, d.Farm.FarmSizeAcres)
	require.Len(t, d.Crops, 2)
	assert.Equal(t, []float64{100, 110}, d.Crops[0].YieldHistoryTonnes)
	assert.Len(t, d.Machinery, 1)
	assert.Len(t, d.Structures, 1)
	require.NotNil(t, d.Geometry)
	assert.Equal(t, 8, d.Geometry.Vertices)
	require.NotNil(t, d.Insurance)
	assert.True(t, d.Insurance.CropInsurance)
	// sections never written stay nil
	assert.Nil(t, d.MarketAccess)
	assert.Nil(t, d.Technology)
}

func TestCompleteProfileLoansNewestFirst(t *testing.T) {
	db := testDB(t)
	repo := New(db)

	f := &entities.Farmer{FarmerKey: "loans-1"}
	require.NoError(t, repo.Create(f))
	farm := &entities.Farm{FarmerID: f.FarmerID, FarmSizeAcres: 100}
	require.NoError(t, repo.CreateFarm(farm))

	old := entities.LoanRequest{FarmID: farm.FarmID, RequestedAmount: 5000, TermMonths: 6, Status: "rejected"}
	require.NoError(t, db.Create(&old).Error)
	newer := entities.LoanRequest{FarmID: farm.FarmID, RequestedAmount: 20000, TermMonths: 24, Status: "pending"}
	require.NoError(t, db.Create(&newer).Error)

	p, err := repo.CompleteProfile(f.FarmerID)
	require.NoError(t, err)
	require.Len(t, p.Farms, 1)
	require.Len(t, p.Farms[0].LoanRequests, 2)
	assert.Equal(t, 20000.0, p.Farms[0].LoanRequests[0].RequestedAmount)
	assert.Equal(t, 5000.0, p.Farms[0].LoanRequests[1].RequestedAmount)
}

func TestCompleteProfileNoFarms(t *testing.T) {
	repo := New(testDB(t))

	f := &entities.Farmer{FarmerKey: "bare"}
	require.NoError(t, repo.Create(f))

	p, err := repo.CompleteProfile(f.FarmerID)
	require.NoError(t, err)
	assert.Empty(t, p.Farms)
}
