package serviceImp

import (
	"context"
	"errors"
	"fmt"

	"agrocredit/entities"
	"agrocredit/pkg/loan/repository"
	svc "agrocredit/pkg/loan/service"
	"agrocredit/pkg/scoring/engine"
	scoringrepo "agrocredit/pkg/scoring/repository"
	"agrocredit/pkg/scoring/types"
)

type service struct {
	repo  repository.LoanRepository
	store scoringrepo.ScoringRepository
	eng   *engine.Engine
}

func New(r repository.LoanRepository, store scoringrepo.ScoringRepository, eng *engine.Engine) svc.LoanService {
	return &service{repo: r, store: store, eng: eng}
}

func validStatus(s string) bool {
	switch s {
	case entities.LoanStatusPending, entities.LoanStatusApproved, entities.LoanStatusRejected, entities.LoanStatusInReview:
		return true
	}
	return false
}

func (s *service) Create(l *entities.LoanRequest) error {
	if l.RequestedAmount <= 0 {
		return fmt.Errorf("%w: requested_amount must be positive", types.ErrInvalidLoanParameters)
	}
	if l.TermMonths <= 0 {
		return fmt.Errorf("%w: term_months must be positive", types.ErrInvalidLoanParameters)
	}
	if l.Status == "" {
		l.Status = entities.LoanStatusPending
	}
	if !validStatus(l.Status) {
		return fmt.Errorf("%w: unknown status %q", types.ErrInvalidLoanParameters, l.Status)
	}
	return s.repo.Create(l)
}

func (s *service) UpdatePartial(id uint, p svc.LoanPatch) (*entities.LoanRequest, error) {
	cur, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if p.Status != nil {
		if !validStatus(*p.Status) {
			return nil, fmt.Errorf("%w: unknown status %q", types.ErrInvalidLoanParameters, *p.Status)
		}
		cur.Status = *p.Status
	}
	if p.Purpose != nil {
		cur.Purpose = *p.Purpose
	}
	if p.RequestedAmount != nil {
		if *p.RequestedAmount <= 0 {
			return nil, fmt.Errorf("%w: requested_amount must be positive", types.ErrInvalidLoanParameters)
		}
		cur.RequestedAmount = *p.RequestedAmount
	}
	if p.TermMonths != nil {
		if *p.TermMonths <= 0 {
			return nil, fmt.Errorf("%w: term_months must be positive", types.ErrInvalidLoanParameters)
		}
		cur.TermMonths = *p.TermMonths
	}
	if p.ExpectedCashFlow != nil {
		cur.ExpectedCashFlow = p.ExpectedCashFlow
	}
	return cur, s.repo.Update(cur)
}

func (s *service) ListByFarm(farmID uint) ([]entities.LoanRequest, error) {
	return s.repo.ListByFarm(farmID)
}

func (s *service) ListPending() ([]entities.LoanRequest, error) {
	return s.repo.ListByStatus(entities.LoanStatusPending)
}

// Preview recomputes the annuity terms the farmer would get today, from
// the latest stored score. It never mutates the request or the score.
func (s *service) Preview(ctx context.Context, loanID uint) (*svc.Preview, error) {
	loan, err := s.repo.FindByID(loanID)
	if err != nil {
		return nil, err
	}
	farmerID, err := s.repo.FarmOwner(loan.FarmID)
	if err != nil {
		return nil, err
	}
	res, err := s.store.LatestByFarmer(ctx, farmerID)
	if err != nil {
		return nil, errors.New("no scoring result for farmer, score first")
	}

	payment, err := s.eng.MonthlyPayment(loan.RequestedAmount, res.InterestRate, loan.TermMonths)
	if err != nil {
		return nil, err
	}
	dti := 0.0
	if loan.ExpectedCashFlow != nil {
		dti = engine.DebtToIncomeRatio(payment, *loan.ExpectedCashFlow)
	}
	return &svc.Preview{
		LoanID:            loan.LoanID,
		FarmerID:          farmerID,
		TotalScore:        res.TotalScore,
		AnnualRate:        res.InterestRate,
		MonthlyPayment:    payment,
		DebtToIncomeRatio: dti,
	}, nil
}
