package http

import (
	"net/http"

	"lendpool-backend/internal/adapter/middleware"
	walletUC "lendpool-backend/internal/usecase/wallet"

	"github.com/labstack/echo/v4"
)

type WalletHandler struct{ uc *walletUC.Usecase }

func NewWalletHandler(uc *walletUC.Usecase) *WalletHandler { return &WalletHandler{uc: uc} }

type depositReq struct {
	Amount      float64 `json:"amount" validate:"required,gt=0,dec2"`
	Description string  `json:"description"`
}

func (h *WalletHandler) Deposit(c echo.Context) error {
	userID := middleware.UserIDFrom(c)
	if userID == "" {
		return respondErr(c, http.StatusUnauthorized, "missing authenticated user")
	}

	var req depositReq
	if err := c.Bind(&req); err != nil {
		return respondErr(c, http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return respondFieldErrs(c, ToFieldErrors(err))
	}

	wallet, tx, err := h.uc.Deposit(c.Request().Context(), userID, req.Amount, req.Description)
	if err != nil {
		return respondDomainErr(c, err)
	}
	return respondOK(c, http.StatusOK, "Funds deposited successfully", map[string]any{
		"wallet":      wallet,
		"transaction": tx,
	})
}

func (h *WalletHandler) Get(c echo.Context) error {
	userID := middleware.UserIDFrom(c)
	if userID == "" {
		return respondErr(c, http.StatusUnauthorized, "missing authenticated user")
	}

	wallet, err := h.uc.Get(c.Request().Context(), userID)
	if err != nil {
		return respondDomainErr(c, err)
	}
	return respondOK(c, http.StatusOK, "wallet fetched", wallet)
}
