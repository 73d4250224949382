// Package loanapp handles loan applications: validation, a best-effort
// interest rate from the scoring engine, and persisting the pending loan with
// its initial audit trail and submission notification.
package loanapp

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"lendpool-backend/internal/domain/loan"
	"lendpool-backend/internal/domain/user"
	"lendpool-backend/internal/usecase/scoring"
	"lendpool-backend/pkg/id"

	"go.uber.org/zap"
)

var ErrValidation = errors.New("invalid loan application")

var (
	reAccountNumber = regexp.MustCompile(`^[0-9]{9,18}$`)
	reIFSC          = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)
)

// Scorer is the slice of the scoring engine this service needs.
type Scorer interface {
	ComputeAndPersist(ctx context.Context, userID string) (*scoring.ScoreResult, error)
}

type Usecase struct {
	users  user.Repository
	loans  loan.Repository
	scorer Scorer
	log    *zap.Logger
}

func NewUsecase(users user.Repository, loans loan.Repository, scorer Scorer, log *zap.Logger) *Usecase {
	return &Usecase{users: users, loans: loans, scorer: scorer, log: log}
}

type BankDetails struct {
	AccountNumber string `json:"account_number"`
	BankName      string `json:"bank_name"`
	IFSCCode      string `json:"ifsc_code"`
}

type GuarantorInput struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

type ApplyInput struct {
	ApplicantID string
	Amount      float64
	Category    string
	TermMonths  int
	Purpose     string
	PANNumber   string
	Guarantor   GuarantorInput
	BankDetails BankDetails
	// Documents maps document kind -> stored file path, as produced by the
	// upload middleware.
	Documents map[string]string
}

type LoanDTO struct {
	LoanID       string    `json:"loan_id"`
	ApplicantID  string    `json:"applicant_id"`
	Amount       float64   `json:"loan_amount"`
	TermMonths   int       `json:"term"`
	Purpose      string    `json:"purpose"`
	Category     string    `json:"loan_category"`
	InterestRate float64   `json:"interest_rate"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

func validate(in ApplyInput) error {
	switch {
	case in.ApplicantID == "":
		return fmt.Errorf("%w: applicant id is required", ErrValidation)
	case in.Amount <= 0:
		return fmt.Errorf("%w: loan amount must be greater than zero", ErrValidation)
	case in.TermMonths <= 0:
		return fmt.Errorf("%w: term must be greater than zero", ErrValidation)
	case in.Purpose == "":
		return fmt.Errorf("%w: purpose is required", ErrValidation)
	case in.PANNumber == "":
		return fmt.Errorf("%w: PAN number is required", ErrValidation)
	case !reAccountNumber.MatchString(in.BankDetails.AccountNumber):
		return fmt.Errorf("%w: malformed bank account number", ErrValidation)
	case in.BankDetails.BankName == "":
		return fmt.Errorf("%w: bank name is required", ErrValidation)
	case !reIFSC.MatchString(in.BankDetails.IFSCCode):
		return fmt.Errorf("%w: malformed IFSC code", ErrValidation)
	}
	return nil
}

// Apply creates a pending loan for the applicant. Scoring failures do not
// block the application: the rate defaults to 0 and the error is logged.
// Deliberate best-effort policy inherited from the reference behavior.
func (u *Usecase) Apply(ctx context.Context, in ApplyInput) (*LoanDTO, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	if _, err := u.users.GetByUserID(ctx, in.ApplicantID); err != nil {
		return nil, err
	}

	rate := 0.0
	if res, err := u.scorer.ComputeAndPersist(ctx, in.ApplicantID); err != nil {
		u.log.Warn("scoring unavailable at application time, defaulting rate to 0",
			zap.String("applicant_id", in.ApplicantID),
			zap.Error(err))
	} else {
		rate = res.BaseInterestRate
	}

	l := &loan.Loan{
		LoanID:       id.NewID32(),
		ApplicantID:  in.ApplicantID,
		Amount:       in.Amount,
		TermMonths:   in.TermMonths,
		Purpose:      in.Purpose,
		Category:     in.Category,
		PANNumber:    in.PANNumber,
		InterestRate: rate,
		Status:       loan.StatusPending,
		Guarantor:    loan.Guarantor{Name: in.Guarantor.Name, Contact: in.Guarantor.Contact},
		Disbursement: loan.Disbursement{
			AccountNumber: in.BankDetails.AccountNumber,
			BankName:      in.BankDetails.BankName,
			IFSCCode:      in.BankDetails.IFSCCode,
		},
	}
	if err := u.loans.Create(ctx, l); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := u.loans.AppendAudit(ctx, &loan.AuditEntry{
		LoanNumericID: l.ID,
		Action:        "Loan Application Created",
		PerformedBy:   in.ApplicantID,
		Timestamp:     now,
	}); err != nil {
		return nil, err
	}
	if err := u.loans.AppendNotification(ctx, &loan.Notification{
		LoanNumericID: l.ID,
		Message:       "Loan application submitted successfully",
		SentAt:        now,
	}); err != nil {
		return nil, err
	}

	if len(in.Documents) > 0 {
		docs := make([]loan.Document, 0, len(in.Documents))
		for kind, path := range in.Documents {
			docs = append(docs, loan.Document{LoanNumericID: l.ID, Kind: kind, Path: path})
		}
		if err := u.loans.AddDocuments(ctx, docs); err != nil {
			return nil, err
		}
	}

	return &LoanDTO{
		LoanID:       l.LoanID,
		ApplicantID:  l.ApplicantID,
		Amount:       l.Amount,
		TermMonths:   l.TermMonths,
		Purpose:      l.Purpose,
		Category:     l.Category,
		InterestRate: l.InterestRate,
		Status:       string(l.Status),
		CreatedAt:    l.CreatedAt,
	}, nil
}
