package service

import (
	"context"

	"agrocredit/entities"
)

type LoanPatch struct {
	Status           *string  `json:"status"`
	Purpose          *string  `json:"purpose"`
	RequestedAmount  *float64 `json:"requested_amount"`
	TermMonths       *int     `json:"term_months"`
	ExpectedCashFlow *float64 `json:"expected_cash_flow"`
}

// Preview restates a pending request against the farmer's current score
// without storing anything.
type Preview struct {
	LoanID            uint    `json:"loan_id"`
	FarmerID          uint    `json:"farmer_id"`
	TotalScore        int     `json:"total_score"`
	AnnualRate        float64 `json:"annual_rate"`
	MonthlyPayment    float64 `json:"monthly_payment"`
	DebtToIncomeRatio float64 `json:"debt_to_income_ratio"`
}

type LoanService interface {
	Create(l *entities.LoanRequest) error
	UpdatePartial(id uint, patch LoanPatch) (*entities.LoanRequest, error)
	ListByFarm(farmID uint) ([]entities.LoanRequest, error)
	ListPending() ([]entities.LoanRequest, error)
	Preview(ctx context.Context, loanID uint) (*Preview, error)
}
