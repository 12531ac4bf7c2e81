package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/zhixin-lin/finance/internal/domain"
)

// Response represents a standardized API response
type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   interface{} `json:"error,omitempty"`
}

// SuccessResponse sends a success response
func SuccessResponse(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, Response{
		Status: "success",
		Data:   data,
	})
}

// CreatedResponse sends a 201 Created response
func CreatedResponse(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, Response{
		Status: "success",
		Data:   data,
	})
}

// ErrorResponse sends an error response
func ErrorResponse(c echo.Context, statusCode int, message string) error {
	return c.JSON(statusCode, Response{
		Status:  "error",
		Message: message,
	})
}

// BadRequestResponse sends a 400 Bad Request response
func BadRequestResponse(c echo.Context, message string) error {
	return ErrorResponse(c, http.StatusBadRequest, message)
}

// UnauthorizedResponse sends a 401 Unauthorized response
func UnauthorizedResponse(c echo.Context, message string) error {
	return ErrorResponse(c, http.StatusUnauthorized, message)
}

// InternalServerErrorResponse sends a 500 with a generic message. The
// underlying error is logged, never returned to the client.
func InternalServerErrorResponse(c echo.Context, err error) error {
	log.Printf("ERROR: %s %s: %v", c.Request().Method, c.Request().URL.Path, err)
	return ErrorResponse(c, http.StatusInternalServerError, "internal server error")
}

// DomainErrorResponse maps a domain error to the right HTTP response.
// Validation and trading-rule failures are client errors; a quote outage
// is 503; everything unrecognized is treated as an internal failure.
func DomainErrorResponse(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrSymbolNotFound),
		errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrInsufficientShares),
		errors.Is(err, domain.ErrStockNotOwned),
		errors.Is(err, domain.ErrUsernameTaken):
		return BadRequestResponse(c, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		return UnauthorizedResponse(c, err.Error())
	case errors.Is(err, domain.ErrQuoteUnavailable):
		return ErrorResponse(c, http.StatusServiceUnavailable, domain.ErrQuoteUnavailable.Error())
	default:
		return InternalServerErrorResponse(c, err)
	}
}
