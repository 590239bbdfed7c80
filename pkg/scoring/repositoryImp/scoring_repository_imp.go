package repositoryImp

import (
	"context"
	"time"

	"gorm.io/gorm"

	"agrocredit/entities"
	"agrocredit/pkg/scoring/repository"
)

type scoringRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.ScoringRepository { return &scoringRepo{db} }

func (r *scoringRepo) Put(ctx context.Context, res *entities.ScoringResult, hist *entities.ScoringHistory) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entities.ScoringResult{}).
			Where("farmer_id = ? AND is_latest = ?", res.FarmerID, true).
			Update("is_latest", false).Error; err != nil {
			return err
		}

		res.IsLatest = true
		if res.CalculatedAt.IsZero() {
			res.CalculatedAt = time.Now().UTC()
		}
		if err := tx.Create(res).Error; err != nil {
			return err
		}

		hist.ScoringResultID = res.ScoringID
		hist.FarmerID = res.FarmerID
		hist.TotalScore = res.TotalScore
		hist.InterestRate = res.InterestRate
		if hist.CalculatedAt.IsZero() {
			hist.CalculatedAt = res.CalculatedAt
		}
		return tx.Create(hist).Error
	})
}

func (r *scoringRepo) AttachNarrative(ctx context.Context, scoringID uint, narrative, recommendations string) error {
	return r.db.WithContext(ctx).Model(&entities.ScoringResult{}).
		Where("scoring_id = ?", scoringID).
		Updates(map[string]any{"narrative": narrative, "recommendations": recommendations}).Error
}

func (r *scoringRepo) ByID(ctx context.Context, scoringID uint) (*entities.ScoringResult, error) {
	var res entities.ScoringResult
	if err := r.db.WithContext(ctx).First(&res, "scoring_id = ?", scoringID).Error; err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *scoringRepo) LatestByFarmer(ctx context.Context, farmerID uint) (*entities.ScoringResult, error) {
	var res entities.ScoringResult
	err := r.db.WithContext(ctx).
		Where("farmer_id = ? AND is_latest = ?", farmerID, true).
		Order("calculated_at DESC").
		First(&res).Error
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *scoringRepo) HistoryByFarmer(ctx context.Context, farmerID uint) ([]entities.ScoringHistory, error) {
	var out []entities.ScoringHistory
	err := r.db.WithContext(ctx).
		Where("farmer_id = ?", farmerID).
		Order("calculated_at DESC, history_id DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *scoringRepo) AllLatest(ctx context.Context) ([]entities.ScoringResult, error) {
	var out []entities.ScoringResult
	err := r.db.WithContext(ctx).
		Where("is_latest = ?", true).
		Order("total_score DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
