package funding

import (
	"context"
	"errors"
)

var (
	ErrNotFound    = errors.New("loan funding not found")
	ErrClosed      = errors.New("loan is not open for funding")
	ErrExceedsGoal = errors.New("funding amount exceeds required goal")
	ErrSelfFunding = errors.New("applicant cannot fund their own loan")
)

type Repository interface {
	Create(ctx context.Context, f *Funding) error
	GetByLoanID(ctx context.Context, loanID string) (*Funding, error)
	// GetByLoanIDForUpdate locks the funding row for the allocation re-check.
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Funding, error)
	Save(ctx context.Context, f *Funding) error
	AddContribution(ctx context.Context, c *Contribution) error

	ListOpen(ctx context.Context) ([]Funding, error)

	SumContributionsByInvestor(ctx context.Context, investorID string) (float64, error)
	SumReturnsByInvestor(ctx context.Context, investorID string) (float64, error)
	ListLoanIDsByInvestor(ctx context.Context, investorID string) ([]string, error)
}
