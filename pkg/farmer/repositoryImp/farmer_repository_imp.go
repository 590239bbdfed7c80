package repositoryImp

import (
	"errors"

	"gorm.io/gorm"

	"agrocredit/entities"
	"agrocredit/pkg/farmer/repository"
	"agrocredit/pkg/scoring/types"
)

type farmerRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.FarmerRepository { return &farmerRepo{db} }

func (r *farmerRepo) Create(f *entities.Farmer) error { return r.db.Create(f).Error }

func (r *farmerRepo) FindByID(id uint) (*entities.Farmer, error) {
	var f entities.Farmer
	if err := r.db.First(&f, "farmer_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrFarmerNotFound
		}
		return nil, err
	}
	return &f, nil
}

func (r *farmerRepo) FindByKey(key string) (*entities.Farmer, error) {
	var f entities.Farmer
	if err := r.db.First(&f, "farmer_key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrFarmerNotFound
		}
		return nil, err
	}
	return &f, nil
}

func (r *farmerRepo) All() ([]entities.Farmer, error) {
	var fs []entities.Farmer
	return fs, r.db.Order("farmer_id ASC").Find(&fs).Error
}

func (r *farmerRepo) CreateFarm(farm *entities.Farm) error { return r.db.Create(farm).Error }

func (r *farmerRepo) CreateCrops(crops []entities.Crop) error {
	if len(crops) == 0 {
		return nil
	}
	return r.db.Create(&crops).Error
}

func (r *farmerRepo) CreateMachinery(machines []entities.Machinery) error {
	if len(machines) == 0 {
		return nil
	}
	return r.db.Create(&machines).Error
}

func (r *farmerRepo) CreateStructures(structures []entities.FarmStructure) error {
	if len(structures) == 0 {
		return nil
	}
	return r.db.Create(&structures).Error
}

func (r *farmerRepo) CreateGeometry(g *entities.FarmGeometry) error { return r.db.Create(g).Error }

func (r *farmerRepo) CreateMarketAccess(m *entities.MarketAccess) error { return r.db.Create(m).Error }

func (r *farmerRepo) CreateTechnology(t *entities.TechnologyUsage) error { return r.db.Create(t).Error }

func (r *farmerRepo) CreateInsurance(i *entities.Insurance) error { return r.db.Create(i).Error }

func (r *farmerRepo) CompleteProfile(id uint) (*entities.FarmerProfile, error) {
	f, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}

	var farms []entities.Farm
	if err := r.db.Where("farmer_id = ?", id).Order("farm_id ASC").Find(&farms).Error; err != nil {
		return nil, err
	}

	profile := &entities.FarmerProfile{Farmer: *f}
	for _, farm := range farms {
		detail := entities.FarmDetail{Farm: farm}

		if err := r.db.Where("farm_id = ?", farm.FarmID).Order("crop_id ASC").Find(&detail.Crops).Error; err != nil {
			return nil, err
		}
		if err := r.db.Where("farm_id = ?", farm.FarmID).Order("machine_id ASC").Find(&detail.Machinery).Error; err != nil {
			return nil, err
		}
		if err := r.db.Where("farm_id = ?", farm.FarmID).Order("structure_id ASC").Find(&detail.Structures).Error; err != nil {
			return nil, err
		}

		var geo entities.FarmGeometry
		if err := r.db.Where("farm_id = ?", farm.FarmID).First(&geo).Error; err == nil {
			detail.Geometry = &geo
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		var ma entities.MarketAccess
		if err := r.db.Where("farm_id = ?", farm.FarmID).First(&ma).Error; err == nil {
			detail.MarketAccess = &ma
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		var tech entities.TechnologyUsage
		if err := r.db.Where("farm_id = ?", farm.FarmID).First(&tech).Error; err == nil {
			detail.Technology = &tech
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		var ins entities.Insurance
		if err := r.db.Where("farm_id = ?", farm.FarmID).First(&ins).Error; err == nil {
			detail.Insurance = &ins
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		if err := r.db.Where("farm_id = ?", farm.FarmID).
			Order("created_at DESC, loan_id DESC").
			Find(&detail.LoanRequests).Error; err != nil {
			return nil, err
		}

		profile.Farms = append(profile.Farms, detail)
	}
	return profile, nil
}
