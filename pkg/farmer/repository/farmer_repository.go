package repository

import "agrocredit/entities"

type FarmerRepository interface {
	Create(f *entities.Farmer) error
	FindByID(id uint) (*entities.Farmer, error)
	FindByKey(key string) (*entities.Farmer, error)
	All() ([]entities.Farmer, error)

	CreateFarm(farm *entities.Farm) error
	CreateCrops(crops []entities.Crop) error
	CreateMachinery(machines []entities.Machinery) error
	CreateStructures(structures []entities.FarmStructure) error
	CreateGeometry(g *entities.FarmGeometry) error
	CreateMarketAccess(m *entities.MarketAccess) error
	CreateTechnology(t *entities.TechnologyUsage) error
	CreateInsurance(i *entities.Insurance) error

	// CompleteProfile assembles the full aggregate the scoring workflow
	// consumes. Farms carry crops, machinery, structures, geometry, market
	// access, technology, insurance and loan requests (newest first).
	CompleteProfile(id uint) (*entities.FarmerProfile, error)
}
