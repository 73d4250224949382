// Package kyc covers the verification status flips: submission resets the
// user to pending, an admin decision activates or suspends the profile.
package kyc

import (
	"context"
	"errors"
	"time"

	userDomain "lendpool-backend/internal/domain/user"
)

var (
	ErrMissingFields          = errors.New("missing required fields for KYC submission")
	ErrRejectionReasonNeeded  = errors.New("rejection reason is required for rejected KYC")
	ErrUnknownDecisionOutcome = errors.New("verification status must be Verified or Rejected")
)

type Usecase struct {
	users userDomain.Repository
}

func NewUsecase(users userDomain.Repository) *Usecase { return &Usecase{users: users} }

type SubmitInput struct {
	UserID      string `json:"user_id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DateOfBirth string `json:"date_of_birth"`
	Gender      string `json:"gender"`
}

type StatusDTO struct {
	UserID             string     `json:"user_id"`
	VerificationStatus string     `json:"verification_status"`
	ProfileStatus      string     `json:"profile_status"`
	RejectionReason    *string    `json:"rejection_reason,omitempty"`
	VerificationDate   *time.Time `json:"verification_date,omitempty"`
}

// Submit records a fresh KYC submission: verification restarts from Pending
// and any previous rejection reason is cleared.
func (u *Usecase) Submit(ctx context.Context, in SubmitInput) (*StatusDTO, error) {
	if in.UserID == "" || in.FirstName == "" || in.LastName == "" || in.DateOfBirth == "" || in.Gender == "" {
		return nil, ErrMissingFields
	}

	usr, err := u.users.GetByUserID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	usr.KYCVerified = false
	usr.ProfileStatus = userDomain.ProfilePending
	usr.RejectionReason = nil
	if err := u.users.Save(ctx, usr); err != nil {
		return nil, err
	}

	return &StatusDTO{
		UserID:             usr.UserID,
		VerificationStatus: "Pending",
		ProfileStatus:      string(usr.ProfileStatus),
	}, nil
}

type VerifyInput struct {
	UserID             string `json:"user_id"`
	VerificationStatus string `json:"verification_status"` // Verified | Rejected
	RejectionReason    string `json:"rejection_reason,omitempty"`
}

// Verify applies an admin decision. Verified activates the profile; Rejected
// suspends it and requires a reason.
func (u *Usecase) Verify(ctx context.Context, in VerifyInput) (*StatusDTO, error) {
	switch in.VerificationStatus {
	case "Verified":
	case "Rejected":
		if in.RejectionReason == "" {
			return nil, ErrRejectionReasonNeeded
		}
	default:
		return nil, ErrUnknownDecisionOutcome
	}

	usr, err := u.users.GetByUserID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	verified := in.VerificationStatus == "Verified"
	usr.KYCVerified = verified
	if verified {
		usr.ProfileStatus = userDomain.ProfileActive
		usr.RejectionReason = nil
	} else {
		usr.ProfileStatus = userDomain.ProfileSuspended
		usr.RejectionReason = &in.RejectionReason
	}
	if err := u.users.Save(ctx, usr); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &StatusDTO{
		UserID:             usr.UserID,
		VerificationStatus: in.VerificationStatus,
		ProfileStatus:      string(usr.ProfileStatus),
		RejectionReason:    usr.RejectionReason,
		VerificationDate:   &now,
	}, nil
}

func (u *Usecase) Status(ctx context.Context, userID string) (*StatusDTO, error) {
	usr, err := u.users.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	status := "Pending"
	if usr.KYCVerified {
		status = "Verified"
	}
	return &StatusDTO{
		UserID:             usr.UserID,
		VerificationStatus: status,
		ProfileStatus:      string(usr.ProfileStatus),
		RejectionReason:    usr.RejectionReason,
	}, nil
}
