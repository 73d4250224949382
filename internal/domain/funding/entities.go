package funding

import (
	"time"
)

type Status string

const (
	StatusOpen        Status = "open"
	StatusFullyFunded Status = "fully-funded"
)

// Funding is the pooling record for one loan: the goal, how much investors
// have allocated so far, and the ordered contribution list.
type Funding struct {
	ID                   uint64         `gorm:"primaryKey;column:id" json:"-"`
	FundingID            string         `gorm:"size:32;uniqueIndex:ux_fundings_funding_id" json:"funding_id"`
	LoanID               string         `gorm:"size:32;uniqueIndex:ux_fundings_loan_id" json:"loan_id"`
	TotalAmountNeeded    float64        `gorm:"type:decimal(18,2)" json:"total_amount_needed"`
	TotalAmountAllocated float64        `gorm:"type:decimal(18,2);default:0" json:"total_amount_allocated"`
	Status               Status         `gorm:"type:enum('open','fully-funded');default:'open'" json:"status"`
	Investors            []Contribution `gorm:"foreignKey:FundingNumericID" json:"investors,omitempty"`
	CreatedAt            time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Funding) TableName() string { return "loan_fundings" }

type Contribution struct {
	ID                     uint64    `gorm:"primaryKey;column:id" json:"-"`
	FundingNumericID       uint64    `gorm:"column:funding_id;index;not null" json:"-"`
	InvestorID             string    `gorm:"size:32;index:idx_contributions_investor" json:"investor_id"`
	AmountInvested         float64   `gorm:"type:decimal(18,2)" json:"amount_invested"`
	PercentageContribution float64   `gorm:"type:decimal(6,2)" json:"percentage_contribution"`
	CreatedAt              time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Contribution) TableName() string { return "funding_contributions" }

// Return is the expected payout owed to an investor once the borrower repays.
type Return struct {
	ID               uint64    `gorm:"primaryKey;column:id" json:"-"`
	FundingNumericID uint64    `gorm:"column:funding_id;index;not null" json:"-"`
	InvestorID       string    `gorm:"size:32;index:idx_returns_investor" json:"investor_id"`
	ExpectedReturn   float64   `gorm:"type:decimal(18,2)" json:"expected_return"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Return) TableName() string { return "funding_returns" }
