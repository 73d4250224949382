package user

import (
	"context"
	"errors"
)

var (
	ErrNotFound          = errors.New("user not found")
	ErrInsufficientFunds = errors.New("insufficient wallet balance")
)

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByUserID(ctx context.Context, userID string) (*User, error)
	// GetByUserIDForUpdate locks the user row (SELECT ... FOR UPDATE) so
	// wallet mutations are serialized within the surrounding transaction.
	GetByUserIDForUpdate(ctx context.Context, userID string) (*User, error)
	Save(ctx context.Context, u *User) error

	AppendTransaction(ctx context.Context, tx *WalletTransaction) error
	ListTransactions(ctx context.Context, userNumericID uint64) ([]WalletTransaction, error)
}
