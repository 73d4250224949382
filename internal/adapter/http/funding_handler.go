package http

import (
	"net/http"

	"lendpool-backend/internal/adapter/middleware"
	fundingUC "lendpool-backend/internal/usecase/funding"

	"github.com/labstack/echo/v4"
)

type FundingHandler struct{ uc *fundingUC.Usecase }

func NewFundingHandler(uc *fundingUC.Usecase) *FundingHandler { return &FundingHandler{uc: uc} }

type investReq struct {
	Amount float64 `json:"amount" validate:"required,gt=0,dec2"`
}

func (h *FundingHandler) Invest(c echo.Context) error {
	loanID := c.Param("loan_id")
	if loanID == "" {
		return respondErr(c, http.StatusBadRequest, "missing loan_id path param")
	}
	investorID := middleware.UserIDFrom(c)
	if investorID == "" {
		return respondErr(c, http.StatusUnauthorized, "missing authenticated user")
	}

	var req investReq
	if err := c.Bind(&req); err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return respondFieldErrs(c, ToFieldErrors(err))
	}

	dto, err := h.uc.PoolFunds(c.Request().Context(), fundingUC.PoolFundsInput{
		LoanID:     loanID,
		InvestorID: investorID,
		Amount:     req.Amount,
	})
	if err != nil {
		return respondDomainErr(c, err)
	}
	return respondOK(c, http.StatusOK, "Investment successful", dto)
}

func (h *FundingHandler) OpenLoans(c echo.Context) error {
	out, err := h.uc.OpenLoans(c.Request().Context())
	if err != nil {
		return respondDomainErr(c, err)
	}
	return respondOK(c, http.StatusOK, "open loans fetched", out)
}
