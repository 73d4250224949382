// Package wallet implements the deposit flow and wallet projections. Every
// balance change commits together with its appended ledger row.
package wallet

import (
	"context"
	"errors"
	"time"

	"lendpool-backend/internal/domain/uow"
	userDomain "lendpool-backend/internal/domain/user"

	"github.com/google/uuid"
)

var ErrInvalidAmount = errors.New("deposit amount must be greater than zero")

type Usecase struct {
	uow   uow.UnitOfWork
	users userDomain.Repository
	now   func() time.Time
}

func NewUsecase(tx uow.UnitOfWork, users userDomain.Repository) *Usecase {
	return &Usecase{uow: tx, users: users, now: func() time.Time { return time.Now().UTC() }}
}

type TransactionDTO struct {
	TransactionRef string    `json:"transaction_ref"`
	Type           string    `json:"type"`
	Amount         float64   `json:"amount"`
	BalanceAfter   float64   `json:"balance_after_transaction"`
	Description    string    `json:"description,omitempty"`
	OccurredAt     time.Time `json:"date"`
}

type WalletDTO struct {
	Balance             float64          `json:"balance"`
	TotalInvested       float64          `json:"total_invested"`
	TotalBorrowed       float64          `json:"total_borrowed"`
	TotalInterestEarned float64          `json:"total_interest_earned"`
	TotalInterestPaid   float64          `json:"total_interest_paid"`
	Transactions        []TransactionDTO `json:"transactions,omitempty"`
}

// Deposit credits the user's wallet and appends the ledger row in one
// transaction.
func (u *Usecase) Deposit(ctx context.Context, userID string, amount float64, description string) (*WalletDTO, *TransactionDTO, error) {
	if amount <= 0 {
		return nil, nil, ErrInvalidAmount
	}

	var (
		wdto WalletDTO
		tdto TransactionDTO
	)
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		usr, err := r.Users.GetByUserIDForUpdate(ctx, userID)
		if err != nil {
			return err
		}

		now := u.now()
		usr.Wallet.Balance += amount
		usr.Wallet.LastTransactionAt = &now

		tx := &userDomain.WalletTransaction{
			TransactionRef: uuid.NewString(),
			UserID:         usr.ID,
			Type:           userDomain.TxDeposit,
			Amount:         amount,
			BalanceAfter:   usr.Wallet.Balance,
			Description:    description,
			OccurredAt:     now,
		}
		if err := r.Users.AppendTransaction(ctx, tx); err != nil {
			return err
		}
		if err := r.Users.Save(ctx, usr); err != nil {
			return err
		}

		wdto = walletDTO(usr.Wallet, nil)
		tdto = transactionDTO(tx)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &wdto, &tdto, nil
}

// Get returns the wallet with its full transaction history.
func (u *Usecase) Get(ctx context.Context, userID string) (*WalletDTO, error) {
	usr, err := u.users.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	txs, err := u.users.ListTransactions(ctx, usr.ID)
	if err != nil {
		return nil, err
	}
	dto := walletDTO(usr.Wallet, txs)
	return &dto, nil
}

func walletDTO(w userDomain.Wallet, txs []userDomain.WalletTransaction) WalletDTO {
	dto := WalletDTO{
		Balance:             w.Balance,
		TotalInvested:       w.TotalInvested,
		TotalBorrowed:       w.TotalBorrowed,
		TotalInterestEarned: w.TotalInterestEarned,
		TotalInterestPaid:   w.TotalInterestPaid,
	}
	for i := range txs {
		dto.Transactions = append(dto.Transactions, transactionDTO(&txs[i]))
	}
	return dto
}

func transactionDTO(tx *userDomain.WalletTransaction) TransactionDTO {
	return TransactionDTO{
		TransactionRef: tx.TransactionRef,
		Type:           string(tx.Type),
		Amount:         tx.Amount,
		BalanceAfter:   tx.BalanceAfter,
		Description:    tx.Description,
		OccurredAt:     tx.OccurredAt,
	}
}
