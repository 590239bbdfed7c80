package entities

import "time"

type Farmer struct {
	FarmerID  uint   `gorm:"primaryKey" json:"farmer_id"`
	FarmerKey string `gorm:"uniqueIndex" json:"farmer_key"` // opaque external identity token
	Age       int    `json:"age"`
	EducationLevel          string `json:"education_level"`
	FarmingExperienceYears  int    `json:"farming_experience_years"`
	NumberOfLoans           int    `json:"number_of_loans"`
	PastDefaults            int    `json:"past_defaults"`
	RepaymentScore          int    `json:"repayment_score"` // 0..100
	CreatedAt time.Time
	UpdatedAt time.Time
}
