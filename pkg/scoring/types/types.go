package types

import "errors"

// Sentinel errors for the scoring pipeline. Engine-level errors are fatal
// to a single request; ErrStorage is transient/retryable; narrative
// failures are never surfaced as errors at all.
var (
	ErrFarmerNotFound        = errors.New("farmer not found")
	ErrNoFarm                = errors.New("farmer has no farm")
	ErrIncompleteProfile     = errors.New("incomplete farmer profile")
	ErrInvalidLoanParameters = errors.New("invalid loan parameters")
	ErrStorage               = errors.New("storage failure")
)

// FeatureRecord is the flat, engine-ready projection of a farmer/farm
// aggregate. Numeric and enumerated fields only; consumed exclusively by
// the scoring engine.
type FeatureRecord struct {
	FarmerKey string `json:"farmer_key"`
	FarmID    uint   `json:"farm_id"`

	FarmAcres float64 `json:"farm_acres"`
	Ownership string  `json:"ownership"` // owned|rented|leased|other

	Machinery  []MachineryFeature `json:"machinery"`
	Crops      []CropFeature      `json:"crops"`
	Structures []StructureFeature `json:"structures"`

	GeometryVertices int  `json:"geometry_vertices"`
	HasGeometry      bool `json:"has_geometry"`

	Loan *LoanFeature `json:"loan,omitempty"`
}

type MachineryFeature struct {
	AgeYears  int    `json:"age_years"`
	Condition string `json:"condition,omitempty"`
}

type CropFeature struct {
	Type           string  `json:"type"`
	ExpectedYield  float64 `json:"expected_yield,omitempty"`
	CertifiedSeeds bool    `json:"certified_seeds,omitempty"`
	UseFertilizers bool    `json:"use_fertilizers,omitempty"`
}

type StructureFeature struct {
	AreaSqm     float64 `json:"area_sqm"`
	LegalStatus string  `json:"legal_status"`
}

type LoanFeature struct {
	Amount                 float64 `json:"amount"`
	TermMonths             int     `json:"term_months"`
	ExpectedAnnualCashFlow float64 `json:"expected_annual_cash_flow,omitempty"`
}

// ScoreBreakdown is the engine output: seven sub-scores, the capped total
// and the derived loan terms.
type ScoreBreakdown struct {
	LandScore            int `json:"land_score"`
	MachineryScore       int `json:"machinery_score"`
	CropScore            int `json:"crop_score"`
	EncumbranceScore     int `json:"encumbrance_score"`
	InfrastructureScore  int `json:"infrastructure_score"`
	GeometryScore        int `json:"geometry_score"`
	DiversificationScore int `json:"diversification_score"`
	TotalScore           int `json:"total_score"`

	InterestRate      float64 `json:"interest_rate"`
	MonthlyPayment    float64 `json:"monthly_payment"`
	DebtToIncomeRatio float64 `json:"debt_to_income_ratio"`
}

// RecalcSummary aggregates a batch recalculation; one farmer's failure
// never aborts the batch.
type RecalcSummary struct {
	Total     int            `json:"total"`
	Succeeded int            `json:"succeeded"`
	Failed    int            `json:"failed"`
	Failures  []RecalcError  `json:"failures,omitempty"`
}

type RecalcError struct {
	FarmerID uint   `json:"farmer_id"`
	Error    string `json:"error"`
}
