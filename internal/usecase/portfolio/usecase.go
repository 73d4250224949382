// Package portfolio aggregates a user's position across both sides of the
// marketplace: what they invested, what they are owed, and their own loans.
package portfolio

import (
	"context"

	fundingDomain "lendpool-backend/internal/domain/funding"
	loanDomain "lendpool-backend/internal/domain/loan"
	userDomain "lendpool-backend/internal/domain/user"
)

type Usecase struct {
	users    userDomain.Repository
	loans    loanDomain.Repository
	fundings fundingDomain.Repository
}

func NewUsecase(users userDomain.Repository, loans loanDomain.Repository, fundings fundingDomain.Repository) *Usecase {
	return &Usecase{users: users, loans: loans, fundings: fundings}
}

type LoanSummary struct {
	LoanID       string  `json:"loan_id"`
	Amount       float64 `json:"loan_amount"`
	Purpose      string  `json:"purpose"`
	InterestRate float64 `json:"interest_rate"`
	Status       string  `json:"status"`
}

type SummaryDTO struct {
	TotalInvestment float64       `json:"total_investment"`
	TotalReturns    float64       `json:"total_returns"`
	ActiveLoans     []LoanSummary `json:"active_loans"`
	AvgInterestRate float64       `json:"avg_interest_rate"`
	LoanProposals   []LoanSummary `json:"loan_proposals"`
}

func (u *Usecase) Summary(ctx context.Context, userID string) (*SummaryDTO, error) {
	if _, err := u.users.GetByUserID(ctx, userID); err != nil {
		return nil, err
	}

	invested, err := u.fundings.SumContributionsByInvestor(ctx, userID)
	if err != nil {
		return nil, err
	}
	returns, err := u.fundings.SumReturnsByInvestor(ctx, userID)
	if err != nil {
		return nil, err
	}

	own, err := u.loans.ListByApplicant(ctx, userID)
	if err != nil {
		return nil, err
	}

	avgRate, err := u.loans.AvgInterestRateByApplicant(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Loans the user funded count toward their active book too.
	fundedLoanIDs, err := u.fundings.ListLoanIDsByInvestor(ctx, userID)
	if err != nil {
		return nil, err
	}

	dto := &SummaryDTO{
		TotalInvestment: invested,
		TotalReturns:    returns,
		AvgInterestRate: avgRate,
		ActiveLoans:     []LoanSummary{},
		LoanProposals:   []LoanSummary{},
	}

	seen := map[string]struct{}{}
	addLoan := func(l *loanDomain.Loan) {
		if _, dup := seen[l.LoanID]; dup {
			return
		}
		seen[l.LoanID] = struct{}{}
		s := LoanSummary{
			LoanID:       l.LoanID,
			Amount:       l.Amount,
			Purpose:      l.Purpose,
			InterestRate: l.InterestRate,
			Status:       string(l.Status),
		}
		dto.LoanProposals = append(dto.LoanProposals, s)
		if l.Status == loanDomain.StatusPending || l.Status == loanDomain.StatusApproved {
			dto.ActiveLoans = append(dto.ActiveLoans, s)
		}
	}

	for i := range own {
		addLoan(&own[i])
	}
	for _, loanID := range fundedLoanIDs {
		l, err := u.loans.GetByLoanID(ctx, loanID)
		if err != nil {
			continue
		}
		addLoan(l)
	}

	return dto, nil
}
