package http

import (
	"net/http"

	"lendpool-backend/internal/usecase/kyc"

	"github.com/labstack/echo/v4"
)

type KYCHandler struct{ uc *kyc.Usecase }

func NewKYCHandler(uc *kyc.Usecase) *KYCHandler { return &KYCHandler{uc: uc} }

type submitKYCReq struct {
	UserID      string `json:"user_id"       validate:"required,hex32"`
	FirstName   string `json:"first_name"    validate:"required"`
	LastName    string `json:"last_name"     validate:"required"`
	DateOfBirth string `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	Gender      string `json:"gender"        validate:"required"`
}

func (h *KYCHandler) Submit(c echo.Context) error {
	var req submitKYCReq
	if err := c.Bind(&req); err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return respondFieldErrs(c, ToFieldErrors(err))
	}

	dto, err := h.uc.Submit(c.Request().Context(), kyc.SubmitInput{
		UserID:      req.UserID,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DateOfBirth: req.DateOfBirth,
		Gender:      req.Gender,
	})
	if err != nil {
		return respondDomainErr(c, err)
	}
	return respondOK(c, http.StatusCreated, "KYC submitted successfully", dto)
}

type verifyKYCReq struct {
	UserID             string `json:"user_id"             validate:"required,hex32"`
	VerificationStatus string `json:"verification_status" validate:"required,oneof=Verified Rejected"`
	RejectionReason    string `json:"rejection_reason"`
}

func (h *KYCHandler) Verify(c echo.Context) error {
	var req verifyKYCReq
	if err := c.Bind(&req); err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return respondFieldErrs(c, ToFieldErrors(err))
	}

	dto, err := h.uc.Verify(c.Request().Context(), kyc.VerifyInput{
		UserID:             req.UserID,
		VerificationStatus: req.VerificationStatus,
		RejectionReason:    req.RejectionReason,
	})
	if err != nil {
		return respondDomainErr(c, err)
	}
	return respondOK(c, http.StatusOK, "KYC verification updated successfully", dto)
}

func (h *KYCHandler) Status(c echo.Context) error {
	userID := c.Param("user_id")
	if userID == "" {
		return respondErr(c, http.StatusBadRequest, "missing user_id path param")
	}

	dto, err := h.uc.Status(c.Request().Context(), userID)
	if err != nil {
		return respondDomainErr(c, err)
	}
	return respondOK(c, http.StatusOK, "Fetched KYC status", dto)
}
