package http

import (
	"net/http"

	"lendpool-backend/internal/adapter/middleware"
	"lendpool-backend/internal/usecase/loanapp"
	"lendpool-backend/internal/usecase/scoring"

	"github.com/labstack/echo/v4"
)

type LoanHandler struct {
	apps   *loanapp.Usecase
	scorer *scoring.Usecase
}

func NewLoanHandler(apps *loanapp.Usecase, scorer *scoring.Usecase) *LoanHandler {
	return &LoanHandler{apps: apps, scorer: scorer}
}

type applyLoanReq struct {
	Amount     float64 `json:"loan_amount"   validate:"required,gt=0,dec2"`
	Category   string  `json:"loan_category"`
	TermMonths int     `json:"term"          validate:"required,gt=0"`
	Purpose    string  `json:"purpose"       validate:"required"`
	PANNumber  string  `json:"pan_number"    validate:"required"`
	Guarantor  struct {
		Name    string `json:"name"`
		Contact string `json:"contact"`
	} `json:"guarantor"`
	BankDetails struct {
		AccountNumber string `json:"account_number" validate:"required,bankacct"`
		BankName      string `json:"bank_name"      validate:"required"`
		IFSCCode      string `json:"ifsc_code"      validate:"required,ifsc"`
	} `json:"bank_details"`
	Documents map[string]string `json:"documents,omitempty"`
}

func (h *LoanHandler) Apply(c echo.Context) error {
	applicantID := middleware.UserIDFrom(c)
	if applicantID == "" {
		return respondErr(c, http.StatusUnauthorized, "missing authenticated user")
	}

	var req applyLoanReq
	if err := c.Bind(&req); err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return respondFieldErrs(c, ToFieldErrors(err))
	}

	dto, err := h.apps.Apply(c.Request().Context(), loanapp.ApplyInput{
		ApplicantID: applicantID,
		Amount:      req.Amount,
		Category:    req.Category,
		TermMonths:  req.TermMonths,
		Purpose:     req.Purpose,
		PANNumber:   req.PANNumber,
		Guarantor:   loanapp.GuarantorInput(req.Guarantor),
		BankDetails: loanapp.BankDetails(req.BankDetails),
		Documents:   req.Documents,
	})
	if err != nil {
		return respondDomainErr(c, err)
	}
	return respondOK(c, http.StatusCreated, "Loan application submitted successfully", dto)
}

func (h *LoanHandler) CalculateScore(c echo.Context) error {
	userID := c.Param("user_id")
	if userID == "" {
		return respondErr(c, http.StatusBadRequest, "missing user_id path param")
	}

	res, err := h.scorer.ComputeAndPersist(c.Request().Context(), userID)
	if err != nil {
		return respondDomainErr(c, err)
	}
	return respondOK(c, http.StatusOK, "credit score calculated", res)
}
