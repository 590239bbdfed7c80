package entities

import "time"

const (
	LoanStatusPending  = "pending"
	LoanStatusApproved = "approved"
	LoanStatusRejected = "rejected"
	LoanStatusInReview = "in_review"
)

type LoanRequest struct {
	LoanID  uint   `gorm:"primaryKey" json:"loan_id"`
	FarmID  uint   `gorm:"index" json:"farm_id"`
	Purpose string `json:"purpose"`
	RequestedAmount  float64  `json:"requested_amount"`
	TermMonths       int      `json:"term_months"`
	ExpectedCashFlow *float64 `json:"expected_cash_flow,omitempty"` // annual, post-loan
	Status           string   `gorm:"index" json:"status"`          // pending|approved|rejected|in_review
	CreatedAt time.Time
	UpdatedAt time.Time
}
