package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	fundingDomain "lendpool-backend/internal/domain/funding"
	loanDomain "lendpool-backend/internal/domain/loan"
	userDomain "lendpool-backend/internal/domain/user"
	fundingUC "lendpool-backend/internal/usecase/funding"
	"lendpool-backend/internal/usecase/kyc"
	"lendpool-backend/internal/usecase/loanapp"
	walletUC "lendpool-backend/internal/usecase/wallet"
)

// Envelope is the uniform response shape: success flag, human message, and
// either data or error details.
type Envelope struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Data    any          `json:"data,omitempty"`
	Error   string       `json:"error,omitempty"`
	Details []FieldError `json:"details,omitempty"`
}

func respondOK(c echo.Context, code int, message string, data any) error {
	return c.JSON(code, Envelope{Success: true, Message: message, Data: data})
}

func respondErr(c echo.Context, code int, message string) error {
	return c.JSON(code, Envelope{Success: false, Message: message, Error: message})
}

func respondFieldErrs(c echo.Context, details []FieldError) error {
	return c.JSON(http.StatusUnprocessableEntity, Envelope{
		Success: false,
		Message: "validation failed",
		Error:   "validation failed",
		Details: details,
	})
}

// statusFor maps domain sentinels to HTTP codes: missing records 404,
// caller mistakes 400, business-rule aborts 409, everything else 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, userDomain.ErrNotFound),
		errors.Is(err, loanDomain.ErrNotFound),
		errors.Is(err, fundingDomain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, loanapp.ErrValidation),
		errors.Is(err, fundingUC.ErrInvalidAmount),
		errors.Is(err, walletUC.ErrInvalidAmount),
		errors.Is(err, kyc.ErrMissingFields),
		errors.Is(err, kyc.ErrRejectionReasonNeeded),
		errors.Is(err, kyc.ErrUnknownDecisionOutcome):
		return http.StatusBadRequest
	case errors.Is(err, loanDomain.ErrNotApproved),
		errors.Is(err, fundingDomain.ErrClosed),
		errors.Is(err, fundingDomain.ErrExceedsGoal),
		errors.Is(err, fundingDomain.ErrSelfFunding),
		errors.Is(err, userDomain.ErrInsufficientFunds):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func respondDomainErr(c echo.Context, err error) error {
	code := statusFor(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		msg = "internal error"
	}
	return respondErr(c, code, msg)
}

type Handler struct{}

func NewHandler() *Handler { return &Handler{} }

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339Nano),
	})
}
