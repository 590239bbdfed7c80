package repositoryImp

import (
	"gorm.io/gorm"

	"agrocredit/entities"
	"agrocredit/pkg/loan/repository"
)

type sqliteRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.LoanRepository { return &sqliteRepo{db: db} }

func (r *sqliteRepo) Create(l *entities.LoanRequest) error { return r.db.Create(l).Error }

func (r *sqliteRepo) Update(l *entities.LoanRequest) error { return r.db.Save(l).Error }

func (r *sqliteRepo) FindByID(id uint) (*entities.LoanRequest, error) {
	var out entities.LoanRequest
	if err := r.db.First(&out, id).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *sqliteRepo) ListByFarm(farmID uint) ([]entities.LoanRequest, error) {
	var list []entities.LoanRequest
	return list, r.db.Where("farm_id = ?", farmID).Order("created_at DESC, loan_id DESC").Find(&list).Error
}

func (r *sqliteRepo) ListByStatus(status string) ([]entities.LoanRequest, error) {
	var list []entities.LoanRequest
	return list, r.db.Where("status = ?", status).Order("created_at ASC, loan_id ASC").Find(&list).Error
}

func (r *sqliteRepo) FarmOwner(farmID uint) (uint, error) {
	var farm entities.Farm
	if err := r.db.First(&farm, farmID).Error; err != nil {
		return 0, err
	}
	return farm.FarmerID, nil
}
