package http

import (
	"net/http"

	"lendpool-backend/internal/usecase/portfolio"

	"github.com/labstack/echo/v4"
)

type PortfolioHandler struct{ uc *portfolio.Usecase }

func NewPortfolioHandler(uc *portfolio.Usecase) *PortfolioHandler {
	return &PortfolioHandler{uc: uc}
}

func (h *PortfolioHandler) Summary(c echo.Context) error {
	userID := c.Param("user_id")
	if userID == "" {
		return respondErr(c, http.StatusBadRequest, "missing user_id path param")
	}

	dto, err := h.uc.Summary(c.Request().Context(), userID)
	if err != nil {
		return respondDomainErr(c, err)
	}
	return respondOK(c, http.StatusOK, "portfolio fetched", dto)
}
