package serviceImp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrocredit/entities"
	svc "agrocredit/pkg/loan/service"
	"agrocredit/pkg/scoring/engine"
	"agrocredit/pkg/scoring/types"
)

type fakeLoanRepo struct {
	loans  map[uint]*entities.LoanRequest
	owners map[uint]uint // farmID -> farmerID
	nextID uint
}

func newFakeLoanRepo() *fakeLoanRepo {
	return &fakeLoanRepo{loans: map[uint]*entities.LoanRequest{}, owners: map[uint]uint{}}
}

func (r *fakeLoanRepo) Create(l *entities.LoanRequest) error {
	r.nextID++
	l.LoanID = r.nextID
	r.loans[l.LoanID] = l
	return nil
}
func (r *fakeLoanRepo) Update(l *entities.LoanRequest) error { r.loans[l.LoanID] = l; return nil }
func (r *fakeLoanRepo) FindByID(id uint) (*entities.LoanRequest, error) {
	l, ok := r.loans[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	cp := *l
	return &cp, nil
}
func (r *fakeLoanRepo) ListByFarm(farmID uint) ([]entities.LoanRequest, error) {
	var out []entities.LoanRequest
	for _, l := range r.loans {
		if l.FarmID == farmID {
			out = append(out, *l)
		}
	}
	return out, nil
}
func (r *fakeLoanRepo) ListByStatus(status string) ([]entities.LoanRequest, error) {
	var out []entities.LoanRequest
	for _, l := range r.loans {
		if l.Status == status {
			out = append(out, *l)
		}
	}
	return out, nil
}
func (r *fakeLoanRepo) FarmOwner(farmID uint) (uint, error) {
	id, ok := r.owners[farmID]
	if !ok {
		return 0, errors.New("record not found")
	}
	return id, nil
}

type fakeLatestStore struct {
	latest map[uint]*entities.ScoringResult
}

func (s *fakeLatestStore) Put(context.Context, *entities.ScoringResult, *entities.ScoringHistory) error {
	return nil
}
func (s *fakeLatestStore) AttachNarrative(context.Context, uint, string, string) error { return nil }
func (s *fakeLatestStore) ByID(context.Context, uint) (*entities.ScoringResult, error) {
	return nil, errors.New("not found")
}
func (s *fakeLatestStore) LatestByFarmer(_ context.Context, farmerID uint) (*entities.ScoringResult, error) {
	r, ok := s.latest[farmerID]
	if !ok {
		return nil, errors.New("not found")
	}
	return r, nil
}
func (s *fakeLatestStore) HistoryByFarmer(context.Context, uint) ([]entities.ScoringHistory, error) {
	return nil, nil
}
func (s *fakeLatestStore) AllLatest(context.Context) ([]entities.ScoringResult, error) {
	return nil, nil
}

func TestCreateValidation(t *testing.T) {
	s := New(newFakeLoanRepo(), &fakeLatestStore{}, engine.New(nil))

	err := s.Create(&entities.LoanRequest{FarmID: 1, RequestedAmount: 0, TermMonths: 12})
	assert.ErrorIs(t, err, types.ErrInvalidLoanParameters)

	err = s.Create(&entities.LoanRequest{FarmID: 1, RequestedAmount: 5000, TermMonths: 0})
	assert.ErrorIs(t, err, types.ErrInvalidLoanParameters)

	err = s.Create(&entities.LoanRequest{FarmID: 1, RequestedAmount: 5000, TermMonths: 12, Status: "weird"})
	assert.ErrorIs(t, err, types.ErrInvalidLoanParameters)
}

func TestCreateDefaultsToPending(t *testing.T) {
	repo := newFakeLoanRepo()
	s := New(repo, &fakeLatestStore{}, engine.New(nil))

	l := &entities.LoanRequest{FarmID: 1, RequestedAmount: 5000, TermMonths: 12}
	require.NoError(t, s.Create(l))
	assert.Equal(t, entities.LoanStatusPending, l.Status)
	assert.NotZero(t, l.LoanID)
}

func TestUpdatePartial(t *testing.T) {
	repo := newFakeLoanRepo()
	s := New(repo, &fakeLatestStore{}, engine.New(nil))

	l := &entities.LoanRequest{FarmID: 1, RequestedAmount: 5000, TermMonths: 12}
	require.NoError(t, s.Create(l))

	approved := entities.LoanStatusApproved
	out, err := s.UpdatePartial(l.LoanID, svc.LoanPatch{Status: &approved})
	require.NoError(t, err)
	assert.Equal(t, entities.LoanStatusApproved, out.Status)
	assert.Equal(t, 5000.0, out.RequestedAmount)

	bad := "weird"
	_, err = s.UpdatePartial(l.LoanID, svc.LoanPatch{Status: &bad})
	assert.ErrorIs(t, err, types.ErrInvalidLoanParameters)

	zero := 0.0
	_, err = s.UpdatePartial(l.LoanID, svc.LoanPatch{RequestedAmount: &zero})
	assert.ErrorIs(t, err, types.ErrInvalidLoanParameters)
}

func TestPreviewFromLatestScore(t *testing.T) {
	repo := newFakeLoanRepo()
	repo.owners[10] = 7
	store := &fakeLatestStore{latest: map[uint]*entities.ScoringResult{
		7: {FarmerID: 7, TotalScore: 85, InterestRate: 0.20},
	}}
	s := New(repo, store, engine.New(nil))

	cf := 120000.0
	l := &entities.LoanRequest{FarmID: 10, RequestedAmount: 100000, TermMonths: 36, ExpectedCashFlow: &cf}
	require.NoError(t, s.Create(l))

	p, err := s.Preview(context.Background(), l.LoanID)
	require.NoError(t, err)
	assert.Equal(t, uint(7), p.FarmerID)
	assert.Equal(t, 85, p.TotalScore)
	assert.Equal(t, 0.20, p.AnnualRate)
	assert.Equal(t, 3716.36, p.MonthlyPayment)
	assert.Equal(t, 0.372, p.DebtToIncomeRatio)
}

func TestPreviewWithoutScore(t *testing.T) {
	repo := newFakeLoanRepo()
	repo.owners[10] = 7
	s := New(repo, &fakeLatestStore{latest: map[uint]*entities.ScoringResult{}}, engine.New(nil))

	l := &entities.LoanRequest{FarmID: 10, RequestedAmount: 100000, TermMonths: 36}
	require.NoError(t, s.Create(l))

	_, err := s.Preview(context.Background(), l.LoanID)
	assert.Error(t, err)
}
