// Package scoring implements the credit score pipeline: four bounded
// component scores over a user's wallet and loan history, folded into a
// 300-850 composite with a rating tier and base interest rate.
//
// The arithmetic deliberately mirrors the reference formula, including its
// floor placement and the on-time repayment check (`status=paid` and
// `dueDate >= now`, the actual payment date is never consulted). Known quirk,
// kept on purpose.
package scoring

import (
	"context"
	"fmt"
	"math"
	"time"

	"lendpool-backend/internal/domain/loan"
	"lendpool-backend/internal/domain/user"

	"go.uber.org/zap"
)

const maxComponentScore = 850

type Usecase struct {
	users user.Repository
	loans loan.Repository
	log   *zap.Logger
	now   func() time.Time
}

func NewUsecase(users user.Repository, loans loan.Repository, log *zap.Logger) *Usecase {
	return &Usecase{users: users, loans: loans, log: log, now: func() time.Time { return time.Now().UTC() }}
}

// Compute is the pure phase: it reads the user and their loans and returns
// the composite result without touching any record. Read failures surface as
// errors; no defaulting happens here.
func (u *Usecase) Compute(ctx context.Context, userID string) (*ScoreResult, error) {
	usr, err := u.users.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	active, err := u.loans.ListByApplicant(ctx, userID, loan.StatusApproved, loan.StatusDisbursed)
	if err != nil {
		return nil, fmt.Errorf("scoring: load loan history: %w", err)
	}
	disbursed, err := u.loans.CountByApplicantAndStatus(ctx, userID, loan.StatusDisbursed)
	if err != nil {
		return nil, fmt.Errorf("scoring: count disbursed loans: %w", err)
	}

	comp := Components{
		PaymentBehaviorScore: paymentBehaviorScore(active, u.now()),
		UtilizationScore:     utilizationScore(usr.Wallet),
		ProfileScore:         profileScore(usr),
		LoanHistoryScore:     loanHistoryScore(disbursed),
	}
	final := finalScore(comp)
	rating, rate := ratingAndRate(final)

	return &ScoreResult{
		CreditScore:      final,
		Rating:           rating,
		BaseInterestRate: rate,
		Components:       comp,
		MaxPossibleScore: maxComponentScore,
		LastCalculated:   u.now(),
		Recommendations:  recommendations(usr, comp.UtilizationScore),
	}, nil
}

// Persist is the write phase: it overwrites credit_score on every loan of the
// user. Bulk update, last writer wins.
func (u *Usecase) Persist(ctx context.Context, userID string, score int) error {
	return u.loans.UpdateCreditScoreByApplicant(ctx, userID, score)
}

// ComputeAndPersist runs both phases; this is what the scoring endpoint and
// the loan application path call.
func (u *Usecase) ComputeAndPersist(ctx context.Context, userID string) (*ScoreResult, error) {
	res, err := u.Compute(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := u.Persist(ctx, userID, res.CreditScore); err != nil {
		return nil, fmt.Errorf("scoring: persist score: %w", err)
	}
	u.log.Debug("credit score recalculated",
		zap.String("user_id", userID),
		zap.Int("score", res.CreditScore),
		zap.String("rating", res.Rating))
	return res, nil
}

// paymentBehaviorScore: share of schedule entries marked paid whose due date
// has not yet passed, scaled to 0-300. No loans or no scheduled payments
// defaults to 200.
func paymentBehaviorScore(loans []loan.Loan, now time.Time) int {
	if len(loans) == 0 {
		return 200
	}
	total, onTime := 0, 0
	for _, l := range loans {
		for _, inst := range l.Schedule {
			total++
			if inst.Status == loan.InstallmentPaid && !inst.DueDate.Before(now) {
				onTime++
			}
		}
	}
	if total == 0 {
		return 200
	}
	return int(math.Floor(float64(onTime) / float64(total) * 300))
}

func utilizationScore(w user.Wallet) int {
	borrowed := w.TotalBorrowed
	if borrowed == 0 {
		borrowed = 1
	}
	ratio := w.TotalInterestPaid / borrowed
	switch {
	case ratio >= 0.8:
		return 200
	case ratio >= 0.6:
		return 150
	case ratio >= 0.4:
		return 100
	case ratio >= 0.2:
		return 50
	default:
		return 0
	}
}

func profileScore(u *user.User) int {
	score := 0
	if u.KYCVerified {
		score += 100
	}
	if u.ContactNumber != "" {
		score += 20
	}
	if u.Address.Street != "" {
		score += 20
	}
	if u.Address.City != "" {
		score += 20
	}
	if u.Address.PostalCode != "" {
		score += 20
	}
	if u.ProfileStatus == user.ProfileActive {
		score += 20
	}
	return score
}

func loanHistoryScore(disbursed int64) int {
	switch {
	case disbursed >= 3:
		return 150
	case disbursed == 2:
		return 100
	case disbursed == 1:
		return 50
	default:
		return 0
	}
}

// finalScore folds the components into the 300-850 range. The inner floor on
// the component sum and the outer floor on the total must stay in this order
// to reproduce the reference values.
func finalScore(c Components) int {
	sum := float64(c.PaymentBehaviorScore + c.UtilizationScore + c.ProfileScore + c.LoanHistoryScore)
	additional := math.Floor(sum) / maxComponentScore * 550
	return int(math.Floor(300 + additional))
}

func ratingAndRate(finalScore int) (string, float64) {
	switch {
	case finalScore >= 750:
		return "Excellent", 8
	case finalScore >= 650:
		return "Good", 10
	case finalScore >= 550:
		return "Fair", 12
	default:
		return "Poor", 15
	}
}

// recommendations emits the fixed advisory strings in KYC, contact,
// repayment order.
func recommendations(u *user.User, utilizationScore int) []string {
	recs := []string{}
	if !u.KYCVerified {
		recs = append(recs, "Complete KYC verification to improve credit score")
	}
	if u.ContactNumber == "" {
		recs = append(recs, "Add contact information to improve profile strength")
	}
	if utilizationScore < 100 {
		recs = append(recs, "Improve loan repayment ratio to increase credit score")
	}
	return recs
}
