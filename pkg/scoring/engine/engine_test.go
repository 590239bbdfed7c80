package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrocredit/pkg/scoring/types"
)

func TestLandScoreTiers(t *testing.T) {
	e := New(nil)

	// 500 acres = 202.35 ha
	assert.Equal(t, 25, e.LandScore(500, "owned"))
	// 300 acres = 121.41 ha
	assert.Equal(t, 18, e.LandScore(300, "owned"))
	// 150 acres = 60.7 ha
	assert.Equal(t, 12, e.LandScore(150, "owned"))
	// 50 acres = 20.2 ha
	assert.Equal(t, 6, e.LandScore(50, "owned"))
	assert.Equal(t, 6, e.LandScore(0, "owned"))
}

func TestLandScoreRentalCorrection(t *testing.T) {
	e := New(nil)

	// correction is applied after the tier lookup and truncated: 25*0.85=21.25 -> 21
	assert.Equal(t, 21, e.LandScore(500, "rented"))
	assert.Equal(t, 15, e.LandScore(300, "rented")) // 18*0.85=15.3
	assert.Equal(t, 10, e.LandScore(150, "rented")) // 12*0.85=10.2
	assert.Equal(t, 5, e.LandScore(50, "rented"))   // 6*0.85=5.1

	// substring match, case-insensitive; leased is not a rental
	assert.Equal(t, 21, e.LandScore(500, "Rented"))
	assert.Equal(t, 25, e.LandScore(500, "leased"))
	assert.Equal(t, 25, e.LandScore(500, "other"))
}

func TestMachineryScore(t *testing.T) {
	e := New(nil)

	assert.Equal(t, 8, e.MachineryScore(nil))
	assert.Equal(t, 25, e.MachineryScore([]types.MachineryFeature{{AgeYears: 5}}))
	assert.Equal(t, 25, e.MachineryScore([]types.MachineryFeature{{AgeYears: 10}}))
	assert.Equal(t, 17, e.MachineryScore([]types.MachineryFeature{{AgeYears: 11}}))
	assert.Equal(t, 17, e.MachineryScore([]types.MachineryFeature{{AgeYears: 15}, {AgeYears: 22}}))
	// one new unit outranks any number of old ones
	assert.Equal(t, 25, e.MachineryScore([]types.MachineryFeature{{AgeYears: 22}, {AgeYears: 3}}))
}

func TestCropScore(t *testing.T) {
	e := New(nil)

	assert.Equal(t, 3, e.CropScore(nil, 500))

	// 500 acres = 202.35 ha, one wheat crop at coefficient 1.0 -> 202.35 income -> top tier
	assert.Equal(t, 20, e.CropScore([]types.CropFeature{{Type: "wheat"}}, 500))

	// unmatched type gets the 0.8 default: 100 acres = 40.47 ha * 0.8 = 32.4
	assert.Equal(t, 8, e.CropScore([]types.CropFeature{{Type: "soy"}}, 100))

	// 50 acres = 20.2 ha * 1.0 -> below 30
	assert.Equal(t, 3, e.CropScore([]types.CropFeature{{Type: "wheat"}}, 50))

	// even split: 500 acres over two crops, 101.2 ha each,
	// vineyard 2.0 + wheat 1.0 -> 202.4 + 101.2 = 303.5
	assert.Equal(t, 20, e.CropScore([]types.CropFeature{{Type: "vineyard"}, {Type: "wheat"}}, 500))
}

func TestEncumbranceScore(t *testing.T) {
	e := New(nil)

	assert.Equal(t, 15, e.EncumbranceScore(nil))
	assert.Equal(t, 15, e.EncumbranceScore([]types.StructureFeature{
		{LegalStatus: "registered"}, {LegalStatus: "registered"},
	}))
	assert.Equal(t, 8, e.EncumbranceScore([]types.StructureFeature{
		{LegalStatus: "registered"}, {LegalStatus: "in_process"},
	}))
	assert.Equal(t, 3, e.EncumbranceScore([]types.StructureFeature{
		{LegalStatus: "unregistered"}, {LegalStatus: "in_process"},
	}))
}

func TestEncumbranceStatusNormalization(t *testing.T) {
	e := New(nil)

	// spaces, dashes and case all normalize to the same status
	assert.Equal(t, 8, e.EncumbranceScore([]types.StructureFeature{{LegalStatus: "In Process"}}))
	assert.Equal(t, 8, e.EncumbranceScore([]types.StructureFeature{{LegalStatus: "in-process"}}))
	assert.Equal(t, 8, e.EncumbranceScore([]types.StructureFeature{{LegalStatus: "UNREGISTERED"}}))
	// "registered" must not match as a substring of "unregistered"
	assert.Equal(t, 15, e.EncumbranceScore([]types.StructureFeature{{LegalStatus: "registered"}}))
}

func TestInfrastructureScore(t *testing.T) {
	e := New(nil)

	assert.Equal(t, 0, e.InfrastructureScore(nil))
	assert.Equal(t, 15, e.InfrastructureScore([]types.StructureFeature{{AreaSqm: 450}, {AreaSqm: 180}}))
	assert.Equal(t, 10, e.InfrastructureScore([]types.StructureFeature{{AreaSqm: 200}}))
	assert.Equal(t, 5, e.InfrastructureScore([]types.StructureFeature{{AreaSqm: 120}}))
	assert.Equal(t, 0, e.InfrastructureScore([]types.StructureFeature{{AreaSqm: 0}}))
}

func TestGeometryScore(t *testing.T) {
	e := New(nil)

	assert.Equal(t, 3, e.GeometryScore(false, 20))
	assert.Equal(t, 10, e.GeometryScore(true, 14))
	assert.Equal(t, 10, e.GeometryScore(true, 12))
	assert.Equal(t, 6, e.GeometryScore(true, 9))
	assert.Equal(t, 6, e.GeometryScore(true, 6))
	assert.Equal(t, 3, e.GeometryScore(true, 4))
}

func TestDiversificationScore(t *testing.T) {
	e := New(nil)

	assert.Equal(t, 0, e.DiversificationScore(nil))
	assert.Equal(t, 3, e.DiversificationScore([]types.CropFeature{{Type: "wheat"}}))
	// distinct count is case-insensitive
	assert.Equal(t, 6, e.DiversificationScore([]types.CropFeature{
		{Type: "wheat"}, {Type: "Wheat"}, {Type: "corn"},
	}))
	assert.Equal(t, 10, e.DiversificationScore([]types.CropFeature{
		{Type: "wheat"}, {Type: "corn"}, {Type: "vineyard"},
	}))
	assert.Equal(t, 0, e.DiversificationScore([]types.CropFeature{{Type: "  "}}))
}

func TestInterestRateTiers(t *testing.T) {
	e := New(nil)

	assert.Equal(t, 0.20, e.InterestRate(100))
	assert.Equal(t, 0.20, e.InterestRate(80))
	assert.Equal(t, 0.24, e.InterestRate(79))
	assert.Equal(t, 0.24, e.InterestRate(65))
	assert.Equal(t, 0.28, e.InterestRate(64))
	assert.Equal(t, 0.28, e.InterestRate(50))
	assert.Equal(t, 0.32, e.InterestRate(49))
	assert.Equal(t, 0.32, e.InterestRate(0))
}

func TestMonthlyPayment(t *testing.T) {
	e := New(nil)

	p, err := e.MonthlyPayment(100000, 0.20, 36)
	require.NoError(t, err)
	assert.Equal(t, 3716.36, p)

	// zero rate degrades to straight division
	p, err = e.MonthlyPayment(12000, 0, 12)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, p)

	// zero term yields zero payment, not an error
	p, err = e.MonthlyPayment(1000, 0.20, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, p)

	_, err = e.MonthlyPayment(0, 0.20, 36)
	assert.ErrorIs(t, err, types.ErrInvalidLoanParameters)
	_, err = e.MonthlyPayment(-5000, 0.20, 36)
	assert.ErrorIs(t, err, types.ErrInvalidLoanParameters)
	_, err = e.MonthlyPayment(1000, 0.20, -1)
	assert.ErrorIs(t, err, types.ErrInvalidLoanParameters)
}

func TestDebtToIncomeRatio(t *testing.T) {
	assert.Equal(t, 0.372, DebtToIncomeRatio(3716.36, 120000))
	assert.Equal(t, 0.0, DebtToIncomeRatio(3716.36, 0))
	assert.Equal(t, 0.0, DebtToIncomeRatio(3716.36, -1))
}

func TestScoreTotalAndCap(t *testing.T) {
	e := New(nil)

	// every sub-score at its maximum sums to 120 and must cap at 100
	f := types.FeatureRecord{
		FarmAcres: 500,
		Ownership: "owned",
		Machinery: []types.MachineryFeature{{AgeYears: 2}},
		Crops: []types.CropFeature{
			{Type: "vegetable"}, {Type: "vineyard"}, {Type: "orchard"},
		},
		Structures: []types.StructureFeature{
			{AreaSqm: 450, LegalStatus: "registered"},
			{AreaSqm: 180, LegalStatus: "registered"},
		},
		HasGeometry:      true,
		GeometryVertices: 14,
	}
	b, err := e.Score(f)
	require.NoError(t, err)

	assert.Equal(t, 25, b.LandScore)
	assert.Equal(t, 25, b.MachineryScore)
	assert.Equal(t, 20, b.CropScore)
	assert.Equal(t, 15, b.EncumbranceScore)
	assert.Equal(t, 15, b.InfrastructureScore)
	assert.Equal(t, 10, b.GeometryScore)
	assert.Equal(t, 10, b.DiversificationScore)
	assert.Equal(t, 100, b.TotalScore)
	assert.Equal(t, 0.20, b.InterestRate)

	// no loan on the record: no payment, no ratio
	assert.Equal(t, 0.0, b.MonthlyPayment)
	assert.Equal(t, 0.0, b.DebtToIncomeRatio)
}

func TestScoreWithLoan(t *testing.T) {
	e := New(nil)

	f := types.FeatureRecord{
		FarmAcres: 500,
		Ownership: "owned",
		Machinery: []types.MachineryFeature{{AgeYears: 2}},
		Crops: []types.CropFeature{
			{Type: "vegetable"}, {Type: "vineyard"}, {Type: "orchard"},
		},
		Structures: []types.StructureFeature{
			{AreaSqm: 450, LegalStatus: "registered"},
			{AreaSqm: 180, LegalStatus: "registered"},
		},
		HasGeometry:      true,
		GeometryVertices: 14,
		Loan:             &types.LoanFeature{Amount: 100000, TermMonths: 36, ExpectedAnnualCashFlow: 120000},
	}
	b, err := e.Score(f)
	require.NoError(t, err)

	assert.Equal(t, 100, b.TotalScore)
	assert.Equal(t, 3716.36, b.MonthlyPayment)
	assert.Equal(t, 0.372, b.DebtToIncomeRatio)
}

func TestScoreInvalidLoan(t *testing.T) {
	e := New(nil)

	f := types.FeatureRecord{
		FarmAcres: 500,
		Ownership: "owned",
		Loan:      &types.LoanFeature{Amount: -1, TermMonths: 36},
	}
	_, err := e.Score(f)
	assert.ErrorIs(t, err, types.ErrInvalidLoanParameters)
}
