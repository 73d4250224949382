package mysql

import (
	"context"
	"errors"

	userDomain "lendpool-backend/internal/domain/user"

	"gorm.io/gorm"
)

type UserRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{db: db} }

func (r *UserRepository) Create(ctx context.Context, u *userDomain.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *UserRepository) Save(ctx context.Context, u *userDomain.User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *UserRepository) GetByUserID(ctx context.Context, userID string) (*userDomain.User, error) {
	var out userDomain.User
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, userDomain.ErrNotFound
	}
	return &out, res.Error
}

func (r *UserRepository) GetByUserIDForUpdate(ctx context.Context, userID string) (*userDomain.User, error) {
	var out userDomain.User
	res := lockForUpdate(r.db.WithContext(ctx)).
		Where("user_id = ?", userID).
		First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, userDomain.ErrNotFound
	}
	return &out, res.Error
}

func (r *UserRepository) AppendTransaction(ctx context.Context, tx *userDomain.WalletTransaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

func (r *UserRepository) ListTransactions(ctx context.Context, userNumericID uint64) ([]userDomain.WalletTransaction, error) {
	var out []userDomain.WalletTransaction
	res := r.db.WithContext(ctx).
		Where("user_id = ?", userNumericID).
		Order("occurred_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}
