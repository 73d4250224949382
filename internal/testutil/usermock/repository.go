package usermock

import (
	"context"

	domain "lendpool-backend/internal/domain/user"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Fill in the function fields you need in a test.
type Repo struct {
	CreateFn               func(ctx context.Context, u *domain.User) error
	GetByUserIDFn          func(ctx context.Context, userID string) (*domain.User, error)
	GetByUserIDForUpdateFn func(ctx context.Context, userID string) (*domain.User, error)
	SaveFn                 func(ctx context.Context, u *domain.User) error
	AppendTransactionFn    func(ctx context.Context, tx *domain.WalletTransaction) error
	ListTransactionsFn     func(ctx context.Context, userNumericID uint64) ([]domain.WalletTransaction, error)
}

func (m *Repo) Create(ctx context.Context, u *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, u)
	}
	return nil
}

func (m *Repo) GetByUserID(ctx context.Context, userID string) (*domain.User, error) {
	if m.GetByUserIDFn != nil {
		return m.GetByUserIDFn(ctx, userID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) GetByUserIDForUpdate(ctx context.Context, userID string) (*domain.User, error) {
	if m.GetByUserIDForUpdateFn != nil {
		return m.GetByUserIDForUpdateFn(ctx, userID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) Save(ctx context.Context, u *domain.User) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, u)
	}
	return nil
}

func (m *Repo) AppendTransaction(ctx context.Context, tx *domain.WalletTransaction) error {
	if m.AppendTransactionFn != nil {
		return m.AppendTransactionFn(ctx, tx)
	}
	return nil
}

func (m *Repo) ListTransactions(ctx context.Context, userNumericID uint64) ([]domain.WalletTransaction, error) {
	if m.ListTransactionsFn != nil {
		return m.ListTransactionsFn(ctx, userNumericID)
	}
	return nil, nil
}
