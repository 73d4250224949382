package kyc

import (
	"context"
	"testing"

	userDomain "lendpool-backend/internal/domain/user"
	"lendpool-backend/internal/testutil/usermock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func repoWith(usr *userDomain.User) (*usermock.Repo, *bool) {
	saved := false
	return &usermock.Repo{
		GetByUserIDFn: func(ctx context.Context, userID string) (*userDomain.User, error) {
			if usr == nil || usr.UserID != userID {
				return nil, userDomain.ErrNotFound
			}
			return usr, nil
		},
		SaveFn: func(ctx context.Context, u *userDomain.User) error {
			saved = true
			return nil
		},
	}, &saved
}

func validSubmit() SubmitInput {
	return SubmitInput{
		UserID:      "u1",
		FirstName:   "Asha",
		LastName:    "Patel",
		DateOfBirth: "1992-06-15",
		Gender:      "female",
	}
}

func TestSubmit_MissingFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SubmitInput)
	}{
		{"user id", func(in *SubmitInput) { in.UserID = "" }},
		{"first name", func(in *SubmitInput) { in.FirstName = "" }},
		{"last name", func(in *SubmitInput) { in.LastName = "" }},
		{"date of birth", func(in *SubmitInput) { in.DateOfBirth = "" }},
		{"gender", func(in *SubmitInput) { in.Gender = "" }},
	}
	u := NewUsecase(&usermock.Repo{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validSubmit()
			tt.mutate(&in)
			_, err := u.Submit(context.Background(), in)
			assert.ErrorIs(t, err, ErrMissingFields)
		})
	}
}

func TestSubmit_ResetsVerificationState(t *testing.T) {
	reason := "document blurry"
	usr := &userDomain.User{
		UserID:          "u1",
		KYCVerified:     true,
		ProfileStatus:   userDomain.ProfileSuspended,
		RejectionReason: &reason,
	}
	users, saved := repoWith(usr)

	dto, err := NewUsecase(users).Submit(context.Background(), validSubmit())
	require.NoError(t, err)

	assert.False(t, usr.KYCVerified)
	assert.Equal(t, userDomain.ProfilePending, usr.ProfileStatus)
	assert.Nil(t, usr.RejectionReason)
	assert.True(t, *saved)

	assert.Equal(t, "Pending", dto.VerificationStatus)
	assert.Equal(t, string(userDomain.ProfilePending), dto.ProfileStatus)
}

func TestVerify_UnknownOutcome(t *testing.T) {
	u := NewUsecase(&usermock.Repo{})
	_, err := u.Verify(context.Background(), VerifyInput{UserID: "u1", VerificationStatus: "Maybe"})
	assert.ErrorIs(t, err, ErrUnknownDecisionOutcome)
}

func TestVerify_RejectedRequiresReason(t *testing.T) {
	u := NewUsecase(&usermock.Repo{})
	_, err := u.Verify(context.Background(), VerifyInput{UserID: "u1", VerificationStatus: "Rejected"})
	assert.ErrorIs(t, err, ErrRejectionReasonNeeded)
}

func TestVerify_VerifiedActivatesProfile(t *testing.T) {
	usr := &userDomain.User{UserID: "u1", ProfileStatus: userDomain.ProfilePending}
	users, saved := repoWith(usr)

	dto, err := NewUsecase(users).Verify(context.Background(), VerifyInput{
		UserID: "u1", VerificationStatus: "Verified",
	})
	require.NoError(t, err)

	assert.True(t, usr.KYCVerified)
	assert.Equal(t, userDomain.ProfileActive, usr.ProfileStatus)
	assert.Nil(t, usr.RejectionReason)
	assert.True(t, *saved)

	assert.Equal(t, "Verified", dto.VerificationStatus)
	require.NotNil(t, dto.VerificationDate)
}

func TestVerify_RejectedSuspendsProfile(t *testing.T) {
	usr := &userDomain.User{UserID: "u1", KYCVerified: true, ProfileStatus: userDomain.ProfileActive}
	users, _ := repoWith(usr)

	dto, err := NewUsecase(users).Verify(context.Background(), VerifyInput{
		UserID:             "u1",
		VerificationStatus: "Rejected",
		RejectionReason:    "PAN mismatch",
	})
	require.NoError(t, err)

	assert.False(t, usr.KYCVerified)
	assert.Equal(t, userDomain.ProfileSuspended, usr.ProfileStatus)
	require.NotNil(t, usr.RejectionReason)
	assert.Equal(t, "PAN mismatch", *usr.RejectionReason)
	assert.Equal(t, "Rejected", dto.VerificationStatus)
}

func TestStatus(t *testing.T) {
	usr := &userDomain.User{UserID: "u1", KYCVerified: true, ProfileStatus: userDomain.ProfileActive}
	users, _ := repoWith(usr)

	dto, err := NewUsecase(users).Status(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "Verified", dto.VerificationStatus)
	assert.Equal(t, string(userDomain.ProfileActive), dto.ProfileStatus)

	_, err = NewUsecase(users).Status(context.Background(), "missing")
	assert.ErrorIs(t, err, userDomain.ErrNotFound)
}
