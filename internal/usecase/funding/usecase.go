// Package funding implements the pooled-funding settlement: one atomic
// transaction that debits the investor, credits the borrower, records the
// contribution and, once the goal is reached, flips the funding to
// fully-funded and the loan to disbursed.
package funding

import (
	"context"
	"errors"
	"fmt"
	"time"

	fundingDomain "lendpool-backend/internal/domain/funding"
	loanDomain "lendpool-backend/internal/domain/loan"
	userDomain "lendpool-backend/internal/domain/user"
	"lendpool-backend/internal/domain/uow"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrInvalidAmount = errors.New("investment amount must be greater than zero")

type Usecase struct {
	uow      uow.UnitOfWork
	fundings fundingDomain.Repository
	loans    loanDomain.Repository
	log      *zap.Logger
	now      func() time.Time
}

func NewUsecase(tx uow.UnitOfWork, fundings fundingDomain.Repository, loans loanDomain.Repository, log *zap.Logger) *Usecase {
	return &Usecase{uow: tx, fundings: fundings, loans: loans, log: log, now: func() time.Time { return time.Now().UTC() }}
}

type PoolFundsInput struct {
	LoanID     string
	InvestorID string
	Amount     float64
}

type ContributionDTO struct {
	InvestorID             string  `json:"investor_id"`
	AmountInvested         float64 `json:"amount_invested"`
	PercentageContribution float64 `json:"percentage_contribution"`
}

type FundingDTO struct {
	FundingID            string            `json:"funding_id"`
	LoanID               string            `json:"loan_id"`
	TotalAmountNeeded    float64           `json:"total_amount_needed"`
	TotalAmountAllocated float64           `json:"total_amount_allocated"`
	Status               string            `json:"status"`
	Investors            []ContributionDTO `json:"investors"`
}

// PoolFunds moves `amount` from the investor's wallet into the borrower's
// wallet and updates the funding pool, all inside one transaction. The loan
// row is locked first, so concurrent settlements against the same loan
// serialize and the allocation invariant is re-checked on the locked funding
// row before anything is written.
func (u *Usecase) PoolFunds(ctx context.Context, in PoolFundsInput) (*FundingDTO, error) {
	if in.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if u.uow == nil {
		return nil, errors.New("funding: unit of work not configured")
	}

	var dto *FundingDTO
	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *loanDomain.Loan) error {
		// 1. loan must be approved, and the applicant cannot be the investor:
		// debiting and crediting the same wallet row would turn the two Save
		// calls into a lost update
		if l.Status != loanDomain.StatusApproved {
			return loanDomain.ErrNotApproved
		}
		if in.InvestorID == l.ApplicantID {
			return fundingDomain.ErrSelfFunding
		}

		// 2. funding must exist, be open, and have room for the contribution
		f, err := r.Fundings.GetByLoanIDForUpdate(ctx, in.LoanID)
		if err != nil {
			return err
		}
		if f.Status == fundingDomain.StatusFullyFunded {
			return fundingDomain.ErrClosed
		}
		if f.TotalAmountAllocated+in.Amount > f.TotalAmountNeeded {
			return fundingDomain.ErrExceedsGoal
		}

		// 3. investor must exist and cover the amount
		investor, err := r.Users.GetByUserIDForUpdate(ctx, in.InvestorID)
		if err != nil {
			return err
		}
		if investor.Wallet.Balance < in.Amount {
			return userDomain.ErrInsufficientFunds
		}

		// 4. borrower is the loan applicant
		borrower, err := r.Users.GetByUserIDForUpdate(ctx, l.ApplicantID)
		if err != nil {
			return fmt.Errorf("borrower lookup: %w", err)
		}

		now := u.now()

		if err := debit(ctx, r.Users, investor, in.Amount, now, userDomain.TxLoanFunding,
			"Investment in loan "+l.LoanID); err != nil {
			return err
		}
		investor.Wallet.TotalInvested += in.Amount

		if err := credit(ctx, r.Users, borrower, in.Amount, now, userDomain.TxLoanDisbursement,
			"Disbursement from loan "+l.LoanID); err != nil {
			return err
		}
		borrower.Wallet.TotalBorrowed += in.Amount

		if err := r.Users.Save(ctx, investor); err != nil {
			return err
		}
		if err := r.Users.Save(ctx, borrower); err != nil {
			return err
		}

		contribution := &fundingDomain.Contribution{
			FundingNumericID:       f.ID,
			InvestorID:             in.InvestorID,
			AmountInvested:         in.Amount,
			PercentageContribution: in.Amount / f.TotalAmountNeeded * 100,
		}
		if err := r.Fundings.AddContribution(ctx, contribution); err != nil {
			return err
		}
		f.TotalAmountAllocated += in.Amount

		if f.TotalAmountAllocated >= f.TotalAmountNeeded {
			f.Status = fundingDomain.StatusFullyFunded
			l.Status = loanDomain.StatusDisbursed
			l.Disbursement.DisbursedAt = &now
			if err := r.Loans.Save(ctx, l); err != nil {
				return err
			}
			if err := r.Loans.AppendAudit(ctx, &loanDomain.AuditEntry{
				LoanNumericID: l.ID,
				Action:        "Loan Fully Funded And Disbursed",
				PerformedBy:   in.InvestorID,
				Timestamp:     now,
			}); err != nil {
				return err
			}
		}
		if err := r.Fundings.Save(ctx, f); err != nil {
			return err
		}

		dto = toDTO(f)
		dto.Investors = append(dto.Investors, ContributionDTO{
			InvestorID:             contribution.InvestorID,
			AmountInvested:         contribution.AmountInvested,
			PercentageContribution: contribution.PercentageContribution,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.log.Info("funds pooled",
		zap.String("loan_id", in.LoanID),
		zap.String("investor_id", in.InvestorID),
		zap.Float64("amount", in.Amount),
		zap.String("funding_status", dto.Status))
	return dto, nil
}

func debit(ctx context.Context, users userDomain.Repository, usr *userDomain.User, amount float64, now time.Time, txType userDomain.TransactionType, desc string) error {
	usr.Wallet.Balance -= amount
	usr.Wallet.LastTransactionAt = &now
	return users.AppendTransaction(ctx, &userDomain.WalletTransaction{
		TransactionRef: uuid.NewString(),
		UserID:         usr.ID,
		Type:           txType,
		Amount:         amount,
		BalanceAfter:   usr.Wallet.Balance,
		Description:    desc,
		OccurredAt:     now,
	})
}

func credit(ctx context.Context, users userDomain.Repository, usr *userDomain.User, amount float64, now time.Time, txType userDomain.TransactionType, desc string) error {
	usr.Wallet.Balance += amount
	usr.Wallet.LastTransactionAt = &now
	return users.AppendTransaction(ctx, &userDomain.WalletTransaction{
		TransactionRef: uuid.NewString(),
		UserID:         usr.ID,
		Type:           txType,
		Amount:         amount,
		BalanceAfter:   usr.Wallet.Balance,
		Description:    desc,
		OccurredAt:     now,
	})
}

type OpenLoanDTO struct {
	LoanID               string  `json:"loan_id"`
	ApplicantID          string  `json:"applicant_id"`
	Amount               float64 `json:"loan_amount"`
	Purpose              string  `json:"purpose"`
	TermMonths           int     `json:"term"`
	InterestRate         float64 `json:"interest_rate"`
	TotalAmountNeeded    float64 `json:"total_amount_needed"`
	TotalAmountAllocated float64 `json:"total_amount_allocated"`
}

// OpenLoans lists fundings still open whose loan is approved, for the
// investor marketplace view.
func (u *Usecase) OpenLoans(ctx context.Context) ([]OpenLoanDTO, error) {
	open, err := u.fundings.ListOpen(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]OpenLoanDTO, 0, len(open))
	for _, f := range open {
		l, err := u.loans.GetByLoanID(ctx, f.LoanID)
		if err != nil {
			if errors.Is(err, loanDomain.ErrNotFound) {
				continue
			}
			return nil, err
		}
		if l.Status != loanDomain.StatusApproved {
			continue
		}
		out = append(out, OpenLoanDTO{
			LoanID:               l.LoanID,
			ApplicantID:          l.ApplicantID,
			Amount:               l.Amount,
			Purpose:              l.Purpose,
			TermMonths:           l.TermMonths,
			InterestRate:         l.InterestRate,
			TotalAmountNeeded:    f.TotalAmountNeeded,
			TotalAmountAllocated: f.TotalAmountAllocated,
		})
	}
	return out, nil
}

func toDTO(f *fundingDomain.Funding) *FundingDTO {
	dto := &FundingDTO{
		FundingID:            f.FundingID,
		LoanID:               f.LoanID,
		TotalAmountNeeded:    f.TotalAmountNeeded,
		TotalAmountAllocated: f.TotalAmountAllocated,
		Status:               string(f.Status),
		Investors:            make([]ContributionDTO, 0, len(f.Investors)+1),
	}
	for _, c := range f.Investors {
		dto.Investors = append(dto.Investors, ContributionDTO{
			InvestorID:             c.InvestorID,
			AmountInvested:         c.AmountInvested,
			PercentageContribution: c.PercentageContribution,
		})
	}
	return dto
}
