package loan

import (
	"context"
	"errors"
)

var (
	ErrNotFound    = errors.New("loan not found")
	ErrNotApproved = errors.New("loan is not approved for funding")
)

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	// GetByLoanIDForUpdate locks the loan row; settlements against the same
	// loan serialize on this lock.
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Loan, error)
	Save(ctx context.Context, l *Loan) error

	// ListByApplicant returns the applicant's loans with their repayment
	// schedules preloaded, optionally filtered by status.
	ListByApplicant(ctx context.Context, applicantID string, statuses ...Status) ([]Loan, error)
	CountByApplicantAndStatus(ctx context.Context, applicantID string, st Status) (int64, error)
	AvgInterestRateByApplicant(ctx context.Context, applicantID string) (float64, error)

	// UpdateCreditScoreByApplicant bulk-overwrites credit_score on every loan
	// of the applicant (last writer wins).
	UpdateCreditScoreByApplicant(ctx context.Context, applicantID string, score int) error

	AppendAudit(ctx context.Context, e *AuditEntry) error
	AppendNotification(ctx context.Context, n *Notification) error
	AddDocuments(ctx context.Context, docs []Document) error
}
