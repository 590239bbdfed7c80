package serviceImp

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"agrocredit/entities"
	"agrocredit/pkg/ai"
	farmerrepo "agrocredit/pkg/farmer/repository"
	"agrocredit/pkg/scoring/engine"
	scoringrepo "agrocredit/pkg/scoring/repository"
	"agrocredit/pkg/scoring/service"
	"agrocredit/pkg/scoring/types"
)

type advisorySearcher interface {
	Search(query string, k int) ([]entities.AdvisoryChunk, error)
}

type ScoringSvc struct {
	farmers farmerrepo.FarmerRepository
	store   scoringrepo.ScoringRepository
	eng     *engine.Engine
	llm     ai.Client
	kb      advisorySearcher

	storeTimeout time.Duration

	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func NewScoringService(fr farmerrepo.FarmerRepository, sr scoringrepo.ScoringRepository, eng *engine.Engine, llm ai.Client, kb advisorySearcher) *ScoringSvc {
	return &ScoringSvc{
		farmers:      fr,
		store:        sr,
		eng:          eng,
		llm:          llm,
		kb:           kb,
		storeTimeout: 5 * time.Second,
		locks:        map[uint]*sync.Mutex{},
	}
}

// lockFor serializes scoring per farmer; different farmers never contend.
func (s *ScoringSvc) lockFor(farmerID uint) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[farmerID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[farmerID] = l
	}
	return l
}

func (s *ScoringSvc) ComputeAndStore(ctx context.Context, farmerID uint) (*service.Outcome, error) {
	l := s.lockFor(farmerID)
	l.Lock()
	defer l.Unlock()

	profile, err := s.farmers.CompleteProfile(farmerID)
	if err != nil {
		return nil, err
	}
	if len(profile.Farms) == 0 {
		return nil, types.ErrNoFarm
	}

	feats, err := engine.BuildFeatures(profile)
	if err != nil {
		return nil, err
	}
	breakdown, err := s.eng.Score(feats)
	if err != nil {
		return nil, err
	}

	featsJSON, _ := json.Marshal(feats)
	res := &entities.ScoringResult{
		FarmerID:             farmerID,
		FarmID:               feats.FarmID,
		LandScore:            breakdown.LandScore,
		MachineryScore:       breakdown.MachineryScore,
		CropScore:            breakdown.CropScore,
		EncumbranceScore:     breakdown.EncumbranceScore,
		InfrastructureScore:  breakdown.InfrastructureScore,
		GeometryScore:        breakdown.GeometryScore,
		DiversificationScore: breakdown.DiversificationScore,
		TotalScore:           breakdown.TotalScore,
		InterestRate:         breakdown.InterestRate,
		MonthlyPayment:       breakdown.MonthlyPayment,
		DebtToIncomeRatio:    breakdown.DebtToIncomeRatio,
		FeaturesJSON:         string(featsJSON),
	}
	hist := &entities.ScoringHistory{ChangeReason: "new scoring calculation"}

	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	if err := s.store.Put(storeCtx, res, hist); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrStorage, err)
	}

	out := &service.Outcome{Result: res}
	s.attachNarrative(ctx, feats, breakdown, out)
	return out, nil
}

// attachNarrative is best-effort: the numeric result is already durable,
// so any failure here is logged and reported, never propagated.
func (s *ScoringSvc) attachNarrative(ctx context.Context, feats types.FeatureRecord, b types.ScoreBreakdown, out *service.Outcome) {
	if s.llm == nil {
		return
	}

	advisoryCtx := s.advisoryContext(feats)
	analysis, err := s.llm.AnalyzeScoring(feats, b, advisoryCtx)
	if err != nil {
		log.Printf("[scoring] narrative for farmer %d failed: %v", out.Result.FarmerID, err)
		out.NarrativeErr = err.Error()
		return
	}

	narrative, _ := json.Marshal(analysis)
	recs := strings.Join(analysis.Recommendations, "\n")

	updCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	if err := s.store.AttachNarrative(updCtx, out.Result.ScoringID, string(narrative), recs); err != nil {
		log.Printf("[scoring] narrative store for farmer %d failed: %v", out.Result.FarmerID, err)
		out.NarrativeErr = err.Error()
		return
	}
	out.Result.Narrative = string(narrative)
	out.Result.Recommendations = recs
	out.NarrativeAttached = true
}

func (s *ScoringSvc) advisoryContext(feats types.FeatureRecord) string {
	if s.kb == nil {
		return ""
	}
	terms := make([]string, 0, len(feats.Crops)+2)
	for _, c := range feats.Crops {
		terms = append(terms, c.Type)
	}
	terms = append(terms, feats.Ownership, "farm credit risk")
	chunks, _ := s.kb.Search(strings.Join(terms, " "), 6)

	var sb strings.Builder
	for _, ch := range chunks {
		if sb.Len() > 6000 {
			break
		}
		sb.WriteString("\n---\n")
		sb.WriteString(ch.Text)
	}
	return sb.String()
}

func (s *ScoringSvc) RecalculateAll(ctx context.Context) (*types.RecalcSummary, error) {
	farmers, err := s.farmers.All()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrStorage, err)
	}

	sum := &types.RecalcSummary{Total: len(farmers)}
	for _, f := range farmers {
		if _, err := s.ComputeAndStore(ctx, f.FarmerID); err != nil {
			sum.Failed++
			sum.Failures = append(sum.Failures, types.RecalcError{FarmerID: f.FarmerID, Error: err.Error()})
			log.Printf("[scoring] recalculate farmer %d (%s): %v", f.FarmerID, f.FarmerKey, err)
			continue
		}
		sum.Succeeded++
	}
	return sum, nil
}

// Report renders the latest stored result as a plain-text summary.
func (s *ScoringSvc) Report(ctx context.Context, farmerID uint) (string, error) {
	f, err := s.farmers.FindByID(farmerID)
	if err != nil {
		return "", err
	}
	res, err := s.store.LatestByFarmer(ctx, farmerID)
	if err != nil {
		return "", fmt.Errorf("%w: %v", types.ErrStorage, err)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "CREDIT SCORING REPORT\n\nFarmer: %s\nCalculated: %s\n\n", f.FarmerKey, res.CalculatedAt.Format(time.RFC3339))
	fmt.Fprintf(&sb, "Total score:      %d/100\nInterest rate:    %.1f%%\n\n", res.TotalScore, res.InterestRate*100)
	fmt.Fprintf(&sb, "Sub-scores:\n")
	fmt.Fprintf(&sb, "  Land:            %d\n", res.LandScore)
	fmt.Fprintf(&sb, "  Machinery:       %d\n", res.MachineryScore)
	fmt.Fprintf(&sb, "  Crops:           %d\n", res.CropScore)
	fmt.Fprintf(&sb, "  Encumbrances:    %d\n", res.EncumbranceScore)
	fmt.Fprintf(&sb, "  Infrastructure:  %d\n", res.InfrastructureScore)
	fmt.Fprintf(&sb, "  Geometry:        %d\n", res.GeometryScore)
	fmt.Fprintf(&sb, "  Diversification: %d\n", res.DiversificationScore)
	if res.MonthlyPayment > 0 {
		fmt.Fprintf(&sb, "\nLoan terms:\n  Monthly payment: %.2f\n", res.MonthlyPayment)
		if res.DebtToIncomeRatio > 0 {
			fmt.Fprintf(&sb, "  Debt to income:  %.3f\n", res.DebtToIncomeRatio)
		}
	}
	if res.Recommendations != "" {
		fmt.Fprintf(&sb, "\nRecommendations:\n%s\n", res.Recommendations)
	}
	return sb.String(), nil
}
