package loanmock

import (
	"context"

	domain "lendpool-backend/internal/domain/loan"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn                       func(ctx context.Context, l *domain.Loan) error
	GetByLoanIDFn                  func(ctx context.Context, loanID string) (*domain.Loan, error)
	GetByLoanIDForUpdateFn         func(ctx context.Context, loanID string) (*domain.Loan, error)
	SaveFn                         func(ctx context.Context, l *domain.Loan) error
	ListByApplicantFn              func(ctx context.Context, applicantID string, statuses ...domain.Status) ([]domain.Loan, error)
	CountByApplicantAndStatusFn    func(ctx context.Context, applicantID string, st domain.Status) (int64, error)
	AvgInterestRateByApplicantFn   func(ctx context.Context, applicantID string) (float64, error)
	UpdateCreditScoreByApplicantFn func(ctx context.Context, applicantID string, score int) error
	AppendAuditFn                  func(ctx context.Context, e *domain.AuditEntry) error
	AppendNotificationFn           func(ctx context.Context, n *domain.Notification) error
	AddDocumentsFn                 func(ctx context.Context, docs []domain.Document) error
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByLoanID(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDFn != nil {
		return m.GetByLoanIDFn(ctx, loanID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDForUpdateFn != nil {
		return m.GetByLoanIDForUpdateFn(ctx, loanID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) Save(ctx context.Context, l *domain.Loan) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}

func (m *Repo) ListByApplicant(ctx context.Context, applicantID string, statuses ...domain.Status) ([]domain.Loan, error) {
	if m.ListByApplicantFn != nil {
		return m.ListByApplicantFn(ctx, applicantID, statuses...)
	}
	return nil, nil
}

func (m *Repo) CountByApplicantAndStatus(ctx context.Context, applicantID string, st domain.Status) (int64, error) {
	if m.CountByApplicantAndStatusFn != nil {
		return m.CountByApplicantAndStatusFn(ctx, applicantID, st)
	}
	return 0, nil
}

func (m *Repo) AvgInterestRateByApplicant(ctx context.Context, applicantID string) (float64, error) {
	if m.AvgInterestRateByApplicantFn != nil {
		return m.AvgInterestRateByApplicantFn(ctx, applicantID)
	}
	return 0, nil
}

func (m *Repo) UpdateCreditScoreByApplicant(ctx context.Context, applicantID string, score int) error {
	if m.UpdateCreditScoreByApplicantFn != nil {
		return m.UpdateCreditScoreByApplicantFn(ctx, applicantID, score)
	}
	return nil
}

func (m *Repo) AppendAudit(ctx context.Context, e *domain.AuditEntry) error {
	if m.AppendAuditFn != nil {
		return m.AppendAuditFn(ctx, e)
	}
	return nil
}

func (m *Repo) AppendNotification(ctx context.Context, n *domain.Notification) error {
	if m.AppendNotificationFn != nil {
		return m.AppendNotificationFn(ctx, n)
	}
	return nil
}

func (m *Repo) AddDocuments(ctx context.Context, docs []domain.Document) error {
	if m.AddDocumentsFn != nil {
		return m.AddDocumentsFn(ctx, docs)
	}
	return nil
}
