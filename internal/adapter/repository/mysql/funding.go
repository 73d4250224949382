package mysql

import (
	"context"
	"errors"

	fundingDomain "lendpool-backend/internal/domain/funding"

	"gorm.io/gorm"
)

type FundingRepository struct{ db *gorm.DB }

func NewFundingRepository(db *gorm.DB) *FundingRepository { return &FundingRepository{db: db} }

func (r *FundingRepository) Create(ctx context.Context, f *fundingDomain.Funding) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *FundingRepository) Save(ctx context.Context, f *fundingDomain.Funding) error {
	return r.db.WithContext(ctx).Omit("Investors").Save(f).Error
}

func (r *FundingRepository) GetByLoanID(ctx context.Context, loanID string) (*fundingDomain.Funding, error) {
	var out fundingDomain.Funding
	res := r.db.WithContext(ctx).
		Preload("Investors").
		Where("loan_id = ?", loanID).
		First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, fundingDomain.ErrNotFound
	}
	return &out, res.Error
}

func (r *FundingRepository) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*fundingDomain.Funding, error) {
	var out fundingDomain.Funding
	res := lockForUpdate(r.db.WithContext(ctx)).
		Where("loan_id = ?", loanID).
		First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, fundingDomain.ErrNotFound
	}
	return &out, res.Error
}

func (r *FundingRepository) AddContribution(ctx context.Context, c *fundingDomain.Contribution) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *FundingRepository) ListOpen(ctx context.Context) ([]fundingDomain.Funding, error) {
	var out []fundingDomain.Funding
	res := r.db.WithContext(ctx).
		Preload("Investors").
		Where("status = ?", fundingDomain.StatusOpen).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}

func (r *FundingRepository) SumContributionsByInvestor(ctx context.Context, investorID string) (float64, error) {
	var sum *float64
	res := r.db.WithContext(ctx).
		Model(&fundingDomain.Contribution{}).
		Where("investor_id = ?", investorID).
		Select("SUM(amount_invested)").
		Scan(&sum)
	if res.Error != nil || sum == nil {
		return 0, res.Error
	}
	return *sum, nil
}

func (r *FundingRepository) SumReturnsByInvestor(ctx context.Context, investorID string) (float64, error) {
	var sum *float64
	res := r.db.WithContext(ctx).
		Model(&fundingDomain.Return{}).
		Where("investor_id = ?", investorID).
		Select("SUM(expected_return)").
		Scan(&sum)
	if res.Error != nil || sum == nil {
		return 0, res.Error
	}
	return *sum, nil
}

func (r *FundingRepository) ListLoanIDsByInvestor(ctx context.Context, investorID string) ([]string, error) {
	var out []string
	res := r.db.WithContext(ctx).
		Model(&fundingDomain.Contribution{}).
		Joins("JOIN loan_fundings ON loan_fundings.id = funding_contributions.funding_id").
		Where("funding_contributions.investor_id = ?", investorID).
		Distinct().
		Pluck("loan_fundings.loan_id", &out)
	return out, res.Error
}
