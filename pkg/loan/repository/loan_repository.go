package repository

import "agrocredit/entities"

type LoanRepository interface {
	Create(l *entities.LoanRequest) error
	Update(l *entities.LoanRequest) error
	FindByID(id uint) (*entities.LoanRequest, error)
	ListByFarm(farmID uint) ([]entities.LoanRequest, error)
	ListByStatus(status string) ([]entities.LoanRequest, error)

	// FarmOwner resolves the farmer a farm belongs to.
	FarmOwner(farmID uint) (uint, error)
}
