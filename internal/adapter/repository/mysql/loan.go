package mysql

import (
	"context"
	"errors"

	loanDomain "lendpool-backend/internal/domain/loan"

	"gorm.io/gorm"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LoanRepository) Save(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Omit("Schedule").Save(l).Error
}

func (r *LoanRepository) GetByLoanID(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).Where("loan_id = ?", loanID).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, loanDomain.ErrNotFound
	}
	return &out, res.Error
}

func (r *LoanRepository) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := lockForUpdate(r.db.WithContext(ctx)).
		Where("loan_id = ?", loanID).
		First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, loanDomain.ErrNotFound
	}
	return &out, res.Error
}

func (r *LoanRepository) ListByApplicant(ctx context.Context, applicantID string, statuses ...loanDomain.Status) ([]loanDomain.Loan, error) {
	q := r.db.WithContext(ctx).
		Preload("Schedule").
		Where("applicant_id = ?", applicantID)
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	var out []loanDomain.Loan
	res := q.Order("id ASC").Find(&out)
	return out, res.Error
}

func (r *LoanRepository) CountByApplicantAndStatus(ctx context.Context, applicantID string, st loanDomain.Status) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).
		Model(&loanDomain.Loan{}).
		Where("applicant_id = ? AND status = ?", applicantID, st).
		Count(&n)
	return n, res.Error
}

func (r *LoanRepository) AvgInterestRateByApplicant(ctx context.Context, applicantID string) (float64, error) {
	var avg *float64
	res := r.db.WithContext(ctx).
		Model(&loanDomain.Loan{}).
		Where("applicant_id = ?", applicantID).
		Select("AVG(interest_rate)").
		Scan(&avg)
	if res.Error != nil || avg == nil {
		return 0, res.Error
	}
	return *avg, nil
}

func (r *LoanRepository) UpdateCreditScoreByApplicant(ctx context.Context, applicantID string, score int) error {
	return r.db.WithContext(ctx).
		Model(&loanDomain.Loan{}).
		Where("applicant_id = ?", applicantID).
		Update("credit_score", score).Error
}

func (r *LoanRepository) AppendAudit(ctx context.Context, e *loanDomain.AuditEntry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *LoanRepository) AppendNotification(ctx context.Context, n *loanDomain.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *LoanRepository) AddDocuments(ctx context.Context, docs []loanDomain.Document) error {
	if len(docs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&docs).Error
}
