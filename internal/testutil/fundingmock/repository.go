package fundingmock

import (
	"context"

	domain "lendpool-backend/internal/domain/funding"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn                     func(ctx context.Context, f *domain.Funding) error
	GetByLoanIDFn                func(ctx context.Context, loanID string) (*domain.Funding, error)
	GetByLoanIDForUpdateFn       func(ctx context.Context, loanID string) (*domain.Funding, error)
	SaveFn                       func(ctx context.Context, f *domain.Funding) error
	AddContributionFn            func(ctx context.Context, c *domain.Contribution) error
	ListOpenFn                   func(ctx context.Context) ([]domain.Funding, error)
	SumContributionsByInvestorFn func(ctx context.Context, investorID string) (float64, error)
	SumReturnsByInvestorFn       func(ctx context.Context, investorID string) (float64, error)
	ListLoanIDsByInvestorFn      func(ctx context.Context, investorID string) ([]string, error)
}

func (m *Repo) Create(ctx context.Context, f *domain.Funding) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, f)
	}
	return nil
}

func (m *Repo) GetByLoanID(ctx context.Context, loanID string) (*domain.Funding, error) {
	if m.GetByLoanIDFn != nil {
		return m.GetByLoanIDFn(ctx, loanID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*domain.Funding, error) {
	if m.GetByLoanIDForUpdateFn != nil {
		return m.GetByLoanIDForUpdateFn(ctx, loanID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) Save(ctx context.Context, f *domain.Funding) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, f)
	}
	return nil
}

func (m *Repo) AddContribution(ctx context.Context, c *domain.Contribution) error {
	if m.AddContributionFn != nil {
		return m.AddContributionFn(ctx, c)
	}
	return nil
}

func (m *Repo) ListOpen(ctx context.Context) ([]domain.Funding, error) {
	if m.ListOpenFn != nil {
		return m.ListOpenFn(ctx)
	}
	return nil, nil
}

func (m *Repo) SumContributionsByInvestor(ctx context.Context, investorID string) (float64, error) {
	if m.SumContributionsByInvestorFn != nil {
		return m.SumContributionsByInvestorFn(ctx, investorID)
	}
	return 0, nil
}

func (m *Repo) SumReturnsByInvestor(ctx context.Context, investorID string) (float64, error) {
	if m.SumReturnsByInvestorFn != nil {
		return m.SumReturnsByInvestorFn(ctx, investorID)
	}
	return 0, nil
}

func (m *Repo) ListLoanIDsByInvestor(ctx context.Context, investorID string) ([]string, error) {
	if m.ListLoanIDsByInvestorFn != nil {
		return m.ListLoanIDsByInvestorFn(ctx, investorID)
	}
	return nil, nil
}
