package funding

import (
	"context"
	"sync"
	"testing"
	"time"

	fundingDomain "lendpool-backend/internal/domain/funding"
	loanDomain "lendpool-backend/internal/domain/loan"
	"lendpool-backend/internal/domain/uow"
	userDomain "lendpool-backend/internal/domain/user"
	"lendpool-backend/internal/testutil/fundingmock"
	"lendpool-backend/internal/testutil/loanmock"
	"lendpool-backend/internal/testutil/uowmock"
	"lendpool-backend/internal/testutil/usermock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	testLoanID     = "9f2c41a07b8d4e61a3c5d9f0b1e24a57"
	testInvestorID = "1a2b3c4d5e6f70811a2b3c4d5e6f7081"
	testBorrowerID = "b0rr0werb0rr0werb0rr0werb0rr0wer"
)

// fixture bundles the mocks behind a UoW whose "transaction" is just the
// callback; state mutations happen on the fixture's entities so tests can
// assert on them afterwards.
type fixture struct {
	loan     *loanDomain.Loan
	funding  *fundingDomain.Funding
	investor *userDomain.User
	borrower *userDomain.User

	users    *usermock.Repo
	loans    *loanmock.Repo
	fundings *fundingmock.Repo

	savedUsers    []string
	transactions  []userDomain.WalletTransaction
	contributions []fundingDomain.Contribution
	audits        []loanDomain.AuditEntry
	loanSaved     bool
	fundingSaved  bool
}

func newFixture() *fixture {
	f := &fixture{
		loan: &loanDomain.Loan{
			ID:          10,
			LoanID:      testLoanID,
			ApplicantID: testBorrowerID,
			Amount:      1000,
			Status:      loanDomain.StatusApproved,
		},
		funding: &fundingDomain.Funding{
			ID:                   20,
			FundingID:            "f" + testLoanID[1:],
			LoanID:               testLoanID,
			TotalAmountNeeded:    1000,
			TotalAmountAllocated: 0,
			Status:               fundingDomain.StatusOpen,
		},
		investor: &userDomain.User{
			ID:     1,
			UserID: testInvestorID,
			Role:   userDomain.RoleInvestor,
			Wallet: userDomain.Wallet{Balance: 1500},
		},
		borrower: &userDomain.User{
			ID:     2,
			UserID: testBorrowerID,
			Role:   userDomain.RoleBorrower,
			Wallet: userDomain.Wallet{Balance: 0},
		},
	}

	f.users = &usermock.Repo{
		GetByUserIDForUpdateFn: func(ctx context.Context, userID string) (*userDomain.User, error) {
			switch userID {
			case f.investor.UserID:
				return f.investor, nil
			case f.borrower.UserID:
				return f.borrower, nil
			}
			return nil, userDomain.ErrNotFound
		},
		SaveFn: func(ctx context.Context, u *userDomain.User) error {
			f.savedUsers = append(f.savedUsers, u.UserID)
			return nil
		},
		AppendTransactionFn: func(ctx context.Context, tx *userDomain.WalletTransaction) error {
			f.transactions = append(f.transactions, *tx)
			return nil
		},
	}
	f.loans = &loanmock.Repo{
		SaveFn: func(ctx context.Context, l *loanDomain.Loan) error {
			f.loanSaved = true
			return nil
		},
		AppendAuditFn: func(ctx context.Context, e *loanDomain.AuditEntry) error {
			f.audits = append(f.audits, *e)
			return nil
		},
	}
	f.fundings = &fundingmock.Repo{
		GetByLoanIDForUpdateFn: func(ctx context.Context, loanID string) (*fundingDomain.Funding, error) {
			if loanID != f.funding.LoanID {
				return nil, fundingDomain.ErrNotFound
			}
			return f.funding, nil
		},
		AddContributionFn: func(ctx context.Context, c *fundingDomain.Contribution) error {
			f.contributions = append(f.contributions, *c)
			return nil
		},
		SaveFn: func(ctx context.Context, fd *fundingDomain.Funding) error {
			f.fundingSaved = true
			return nil
		},
	}
	return f
}

func (f *fixture) usecase() *Usecase {
	tx := &uowmock.UoW{
		WithinLoanTxFn: func(ctx context.Context, loanID string, fn func(r uow.Repos, l *loanDomain.Loan) error) error {
			if loanID != f.loan.LoanID {
				return loanDomain.ErrNotFound
			}
			return fn(uow.Repos{Users: f.users, Loans: f.loans, Fundings: f.fundings}, f.loan)
		},
	}
	u := NewUsecase(tx, f.fundings, f.loans, zap.NewNop())
	u.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return u
}

func TestPoolFunds_RejectsNonPositiveAmount(t *testing.T) {
	f := newFixture()
	for _, amount := range []float64{0, -50} {
		_, err := f.usecase().PoolFunds(context.Background(), PoolFundsInput{
			LoanID: testLoanID, InvestorID: testInvestorID, Amount: amount,
		})
		assert.ErrorIs(t, err, ErrInvalidAmount)
	}
	assert.Empty(t, f.transactions, "no wallet movement on invalid amount")
}

func TestPoolFunds_UnknownLoan(t *testing.T) {
	f := newFixture()
	_, err := f.usecase().PoolFunds(context.Background(), PoolFundsInput{
		LoanID: "0000000000000000000000000000dead", InvestorID: testInvestorID, Amount: 100,
	})
	assert.ErrorIs(t, err, loanDomain.ErrNotFound)
}

func TestPoolFunds_LoanNotApproved(t *testing.T) {
	for _, st := range []loanDomain.Status{loanDomain.StatusPending, loanDomain.StatusRejected, loanDomain.StatusDisbursed} {
		f := newFixture()
		f.loan.Status = st
		_, err := f.usecase().PoolFunds(context.Background(), PoolFundsInput{
			LoanID: testLoanID, InvestorID: testInvestorID, Amount: 100,
		})
		assert.ErrorIs(t, err, loanDomain.ErrNotApproved, "status=%s", st)
		assert.Empty(t, f.transactions)
	}
}

func TestPoolFunds_FundingClosed(t *testing.T) {
	f := newFixture()
	f.funding.Status = fundingDomain.StatusFullyFunded
	f.funding.TotalAmountAllocated = f.funding.TotalAmountNeeded

	_, err := f.usecase().PoolFunds(context.Background(), PoolFundsInput{
		LoanID: testLoanID, InvestorID: testInvestorID, Amount: 100,
	})
	assert.ErrorIs(t, err, fundingDomain.ErrClosed)
	assert.Empty(t, f.transactions)
}

func TestPoolFunds_ExceedsGoal(t *testing.T) {
	f := newFixture()
	f.funding.TotalAmountAllocated = 950

	_, err := f.usecase().PoolFunds(context.Background(), PoolFundsInput{
		LoanID: testLoanID, InvestorID: testInvestorID, Amount: 100,
	})
	assert.ErrorIs(t, err, fundingDomain.ErrExceedsGoal)
	assert.Empty(t, f.transactions, "wallets untouched when the pool would overflow")
	assert.Equal(t, float64(1500), f.investor.Wallet.Balance)
}

func TestPoolFunds_SelfFundingRejected(t *testing.T) {
	f := newFixture()
	f.borrower.Wallet.Balance = 1000

	_, err := f.usecase().PoolFunds(context.Background(), PoolFundsInput{
		LoanID: testLoanID, InvestorID: testBorrowerID, Amount: 400,
	})
	assert.ErrorIs(t, err, fundingDomain.ErrSelfFunding)
	assert.Empty(t, f.transactions)
	assert.Empty(t, f.savedUsers)
	assert.Equal(t, float64(1000), f.borrower.Wallet.Balance, "self-funding must not move money")
}

func TestPoolFunds_InsufficientFunds(t *testing.T) {
	f := newFixture()
	f.investor.Wallet.Balance = 50

	_, err := f.usecase().PoolFunds(context.Background(), PoolFundsInput{
		LoanID: testLoanID, InvestorID: testInvestorID, Amount: 100,
	})
	assert.ErrorIs(t, err, userDomain.ErrInsufficientFunds)
	assert.Empty(t, f.transactions)
}

func TestPoolFunds_PartialContribution(t *testing.T) {
	f := newFixture()
	u := f.usecase()

	dto, err := u.PoolFunds(context.Background(), PoolFundsInput{
		LoanID: testLoanID, InvestorID: testInvestorID, Amount: 400,
	})
	require.NoError(t, err)

	assert.Equal(t, float64(1100), f.investor.Wallet.Balance)
	assert.Equal(t, float64(400), f.investor.Wallet.TotalInvested)
	assert.Equal(t, float64(400), f.borrower.Wallet.Balance)
	assert.Equal(t, float64(400), f.borrower.Wallet.TotalBorrowed)

	require.Len(t, f.transactions, 2)
	assert.Equal(t, userDomain.TxLoanFunding, f.transactions[0].Type)
	assert.Equal(t, float64(1100), f.transactions[0].BalanceAfter)
	assert.Equal(t, userDomain.TxLoanDisbursement, f.transactions[1].Type)
	assert.Equal(t, float64(400), f.transactions[1].BalanceAfter)
	assert.NotEmpty(t, f.transactions[0].TransactionRef)
	assert.NotEqual(t, f.transactions[0].TransactionRef, f.transactions[1].TransactionRef)

	require.Len(t, f.contributions, 1)
	assert.Equal(t, float64(40), f.contributions[0].PercentageContribution)

	assert.Equal(t, string(fundingDomain.StatusOpen), dto.Status)
	assert.Equal(t, float64(400), dto.TotalAmountAllocated)
	assert.False(t, f.loanSaved, "loan stays approved until fully funded")
	assert.True(t, f.fundingSaved)
	assert.Equal(t, loanDomain.StatusApproved, f.loan.Status)
	assert.Empty(t, f.audits)
}

func TestPoolFunds_FullFundingDisbursesLoan(t *testing.T) {
	f := newFixture()
	f.funding.TotalAmountAllocated = 600
	f.investor.Wallet.Balance = 400

	dto, err := f.usecase().PoolFunds(context.Background(), PoolFundsInput{
		LoanID: testLoanID, InvestorID: testInvestorID, Amount: 400,
	})
	require.NoError(t, err)

	assert.Equal(t, float64(0), f.investor.Wallet.Balance)
	assert.Equal(t, float64(400), f.borrower.Wallet.Balance)

	assert.Equal(t, string(fundingDomain.StatusFullyFunded), dto.Status)
	assert.Equal(t, float64(1000), dto.TotalAmountAllocated)

	assert.Equal(t, loanDomain.StatusDisbursed, f.loan.Status)
	require.NotNil(t, f.loan.Disbursement.DisbursedAt)
	assert.True(t, f.loanSaved)

	require.Len(t, f.audits, 1)
	assert.Equal(t, "Loan Fully Funded And Disbursed", f.audits[0].Action)
	assert.Equal(t, testInvestorID, f.audits[0].PerformedBy)
}

func TestPoolFunds_ConcurrentContributionsSerialize(t *testing.T) {
	// mirror the row-lock discipline: the transaction callback runs under a
	// mutex, so the second contribution re-checks the allocation the first
	// one committed
	f := newFixture()
	f.investor.Wallet.Balance = 2000

	var mu sync.Mutex
	tx := &uowmock.UoW{
		WithinLoanTxFn: func(ctx context.Context, loanID string, fn func(r uow.Repos, l *loanDomain.Loan) error) error {
			mu.Lock()
			defer mu.Unlock()
			return fn(uow.Repos{Users: f.users, Loans: f.loans, Fundings: f.fundings}, f.loan)
		},
	}
	u := NewUsecase(tx, f.fundings, f.loans, zap.NewNop())
	u.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }

	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			_, err := u.PoolFunds(context.Background(), PoolFundsInput{
				LoanID: testLoanID, InvestorID: testInvestorID, Amount: 700,
			})
			errs <- err
		}()
	}

	var failures []error
	for i := 0; i < 2; i++ {
		if err := <-errs; err != nil {
			failures = append(failures, err)
		}
	}
	require.Len(t, failures, 1, "exactly one of the two contributions must be rejected")
	assert.ErrorIs(t, failures[0], fundingDomain.ErrExceedsGoal)

	assert.Equal(t, float64(700), f.funding.TotalAmountAllocated)
	assert.Len(t, f.contributions, 1)
	assert.Equal(t, float64(1300), f.investor.Wallet.Balance, "only the accepted contribution moves money")
}

func TestOpenLoans_FiltersUnapprovedLoans(t *testing.T) {
	fundings := &fundingmock.Repo{
		ListOpenFn: func(ctx context.Context) ([]fundingDomain.Funding, error) {
			return []fundingDomain.Funding{
				{LoanID: "loan-approved", TotalAmountNeeded: 1000, TotalAmountAllocated: 250, Status: fundingDomain.StatusOpen},
				{LoanID: "loan-pending", TotalAmountNeeded: 500, Status: fundingDomain.StatusOpen},
				{LoanID: "loan-gone", TotalAmountNeeded: 500, Status: fundingDomain.StatusOpen},
			}, nil
		},
	}
	loans := &loanmock.Repo{
		GetByLoanIDFn: func(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
			switch loanID {
			case "loan-approved":
				return &loanDomain.Loan{LoanID: loanID, ApplicantID: testBorrowerID, Amount: 1000, TermMonths: 12, InterestRate: 10, Status: loanDomain.StatusApproved}, nil
			case "loan-pending":
				return &loanDomain.Loan{LoanID: loanID, Status: loanDomain.StatusPending}, nil
			}
			return nil, loanDomain.ErrNotFound
		},
	}

	u := NewUsecase(uowmock.New(), fundings, loans, zap.NewNop())
	out, err := u.OpenLoans(context.Background())
	require.NoError(t, err)

	require.Len(t, out, 1)
	assert.Equal(t, "loan-approved", out[0].LoanID)
	assert.Equal(t, float64(250), out[0].TotalAmountAllocated)
	assert.Equal(t, 12, out[0].TermMonths)
}
