package entities

import "time"

// ScoringResult is never deleted, only superseded: at most one row per
// farmer carries IsLatest=true, flipped inside the same transaction that
// inserts the replacement.
type ScoringResult struct {
	ScoringID uint `gorm:"primaryKey" json:"scoring_id"`
	FarmerID  uint `gorm:"index" json:"farmer_id"`
	FarmID    uint `json:"farm_id"`

	LandScore            int `json:"land_score"`
	MachineryScore       int `json:"machinery_score"`
	CropScore            int `json:"crop_score"`
	EncumbranceScore     int `json:"encumbrance_score"`
	InfrastructureScore  int `json:"infrastructure_score"`
	GeometryScore        int `json:"geometry_score"`
	DiversificationScore int `json:"diversification_score"`
	TotalScore           int `json:"total_score"` // 0..100

	InterestRate      float64 `json:"interest_rate"` // annual fraction
	MonthlyPayment    float64 `json:"monthly_payment"`
	DebtToIncomeRatio float64 `json:"debt_to_income_ratio"`

	Narrative       string `json:"narrative,omitempty"`
	Recommendations string `json:"recommendations,omitempty"`
	FeaturesJSON    string `json:"-"` // feature record snapshot for audit

	IsLatest     bool      `gorm:"index" json:"is_latest"`
	CalculatedAt time.Time `json:"calculated_at"`
}

// ScoringHistory is append-only; rows are never updated or deleted.
type ScoringHistory struct {
	HistoryID       uint      `gorm:"primaryKey" json:"history_id"`
	ScoringResultID uint      `json:"scoring_result_id"`
	FarmerID        uint      `gorm:"index" json:"farmer_id"`
	TotalScore      int       `json:"total_score"`
	InterestRate    float64   `json:"interest_rate"`
	ChangeReason    string    `json:"change_reason"`
	CalculatedAt    time.Time `json:"calculated_at"`
}
