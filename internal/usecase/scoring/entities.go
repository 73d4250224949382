package scoring

import (
	"time"
)

// Components are the four bounded sub-scores feeding the composite.
type Components struct {
	PaymentBehaviorScore int `json:"paymentBehaviorScore"`
	UtilizationScore     int `json:"utilizationScore"`
	ProfileScore         int `json:"profileScore"`
	LoanHistoryScore     int `json:"loanHistoryScore"`
}

type ScoreResult struct {
	CreditScore      int        `json:"creditScore"`
	Rating           string     `json:"rating"`
	BaseInterestRate float64    `json:"baseInterestRate"`
	Components       Components `json:"components"`
	MaxPossibleScore int        `json:"maxPossibleScore"`
	LastCalculated   time.Time  `json:"lastCalculated"`
	Recommendations  []string   `json:"recommendations"`
}
