package engine

import (
	"math"
	"strings"

	"agrocredit/pkg/scoring/rules"
	"agrocredit/pkg/scoring/types"
)

// AcresToHectares converts farm areas before any area-based rule.
const AcresToHectares = 0.4047

// Engine computes sub-scores, the total score and derived loan terms.
// It is pure and stateless apart from the rules table: identical inputs
// produce bit-identical outputs.
type Engine struct {
	tbl *rules.Table
}

func New(tbl *rules.Table) *Engine {
	if tbl == nil {
		tbl = rules.Default()
	}
	return &Engine{tbl: tbl}
}

// LandScore tiers on hectares, then applies the rental correction after
// the tier lookup (truncated, not rounded).
func (e *Engine) LandScore(farmAcres float64, ownership string) int {
	ha := farmAcres * AcresToHectares

	var score int
	switch {
	case ha >= 200:
		score = 25
	case ha >= 100:
		score = 18
	case ha >= 50:
		score = 12
	default:
		score = 6
	}

	if strings.Contains(strings.ToLower(ownership), "rent") {
		score = int(float64(score) * 0.85)
	}
	return score
}

// MachineryScore only checks presence of new (≤10y) vs old units; a single
// new machine outranks any number of old ones.
func (e *Engine) MachineryScore(machines []types.MachineryFeature) int {
	if len(machines) == 0 {
		return 8
	}
	hasNew := false
	hasOld := false
	for _, m := range machines {
		if m.AgeYears <= 10 {
			hasNew = true
		} else {
			hasOld = true
		}
	}
	if hasNew {
		return 25
	}
	if hasOld {
		return 17
	}
	return 8
}

// CropScore sums per-crop income over an even split of the farm area
// (documented approximation when no per-crop area is recorded).
func (e *Engine) CropScore(crops []types.CropFeature, farmAcres float64) int {
	if len(crops) == 0 {
		return 3
	}

	farmHa := farmAcres * AcresToHectares
	areaPerCrop := farmHa / float64(len(crops))

	total := 0.0
	for _, c := range crops {
		total += areaPerCrop * e.tbl.YieldFor(c.Type)
	}

	switch {
	case total >= 150:
		return 20
	case total >= 80:
		return 14
	case total >= 30:
		return 8
	default:
		return 3
	}
}

// EncumbranceScore counts structures whose legal status is not settled.
func (e *Engine) EncumbranceScore(structures []types.StructureFeature) int {
	count := 0
	for _, s := range structures {
		if isEncumbrance(s.LegalStatus) {
			count++
		}
	}
	switch {
	case count == 0:
		return 15
	case count == 1:
		return 8
	default:
		return 3
	}
}

func isEncumbrance(legalStatus string) bool {
	st := strings.ToLower(strings.TrimSpace(legalStatus))
	st = strings.ReplaceAll(st, " ", "_")
	st = strings.ReplaceAll(st, "-", "_")
	return st == "unregistered" || st == "in_process"
}

func (e *Engine) InfrastructureScore(structures []types.StructureFeature) int {
	if len(structures) == 0 {
		return 0
	}
	total := 0.0
	for _, s := range structures {
		total += s.AreaSqm
	}
	switch {
	case total >= 400:
		return 15
	case total >= 200:
		return 10
	case total > 0:
		return 5
	default:
		return 0
	}
}

func (e *Engine) GeometryScore(hasGeometry bool, vertices int) int {
	if !hasGeometry {
		return 3
	}
	switch {
	case vertices >= 12:
		return 10
	case vertices >= 6:
		return 6
	default:
		return 3
	}
}

// DiversificationScore counts distinct crop-type strings, case-insensitive.
func (e *Engine) DiversificationScore(crops []types.CropFeature) int {
	unique := map[string]struct{}{}
	for _, c := range crops {
		t := strings.ToLower(strings.TrimSpace(c.Type))
		if t != "" {
			unique[t] = struct{}{}
		}
	}
	switch n := len(unique); {
	case n >= 3:
		return 10
	case n == 2:
		return 6
	case n == 1:
		return 3
	default:
		return 0
	}
}

// InterestRate looks up the annual rate tier for a total score.
func (e *Engine) InterestRate(totalScore int) float64 {
	return e.tbl.RateFor(totalScore)
}

// MonthlyPayment is the standard amortizing annuity, rounded to 2 decimals.
// A zero term yields a zero payment (degenerate, no division); a zero rate
// degrades to straight division.
func (e *Engine) MonthlyPayment(amount, annualRate float64, termMonths int) (float64, error) {
	if amount <= 0 || termMonths < 0 {
		return 0, types.ErrInvalidLoanParameters
	}
	if termMonths == 0 {
		return 0, nil
	}

	monthlyRate := annualRate / 12
	if monthlyRate == 0 {
		return round2(amount / float64(termMonths)), nil
	}

	pow := math.Pow(1+monthlyRate, float64(termMonths))
	payment := amount * (monthlyRate * pow) / (pow - 1)
	return round2(payment), nil
}

// DebtToIncomeRatio divides the monthly payment by monthly expected cash
// flow, rounded to 3 decimals. Zero means "no ratio computed", not an error.
func DebtToIncomeRatio(monthlyPayment, annualCashFlow float64) float64 {
	if annualCashFlow <= 0 {
		return 0
	}
	return round3(monthlyPayment / (annualCashFlow / 12))
}

// Score runs the full computation over a feature record.
func (e *Engine) Score(f types.FeatureRecord) (types.ScoreBreakdown, error) {
	b := types.ScoreBreakdown{
		LandScore:            e.LandScore(f.FarmAcres, f.Ownership),
		MachineryScore:       e.MachineryScore(f.Machinery),
		CropScore:            e.CropScore(f.Crops, f.FarmAcres),
		EncumbranceScore:     e.EncumbranceScore(f.Structures),
		InfrastructureScore:  e.InfrastructureScore(f.Structures),
		GeometryScore:        e.GeometryScore(f.HasGeometry, f.GeometryVertices),
		DiversificationScore: e.DiversificationScore(f.Crops),
	}

	total := b.LandScore + b.MachineryScore + b.CropScore + b.EncumbranceScore +
		b.InfrastructureScore + b.GeometryScore + b.DiversificationScore
	if total > 100 {
		total = 100
	}
	b.TotalScore = total
	b.InterestRate = e.InterestRate(total)

	if f.Loan != nil {
		payment, err := e.MonthlyPayment(f.Loan.Amount, b.InterestRate, f.Loan.TermMonths)
		if err != nil {
			return types.ScoreBreakdown{}, err
		}
		b.MonthlyPayment = payment
		b.DebtToIncomeRatio = DebtToIncomeRatio(payment, f.Loan.ExpectedAnnualCashFlow)
	}
	return b, nil
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
