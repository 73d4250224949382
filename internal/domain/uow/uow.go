package uow

import (
	"context"

	"lendpool-backend/internal/domain/funding"
	"lendpool-backend/internal/domain/loan"
	"lendpool-backend/internal/domain/user"
)

// Repos bundles the repositories bound to one DB transaction.
type Repos struct {
	Users    user.Repository
	Loans    loan.Repository
	Fundings funding.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the loan row first, then pass it in; settlements
	// against the same loan serialize on that lock
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
}
