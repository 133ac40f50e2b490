package utils

import (
	"errors"
	"net/http"

	"github.com/SandeepaChathumina/Grocery-System/internal/models"

	"github.com/labstack/echo/v4"
)

// RespondWithJSON writes v as the JSON response body with the given status.
func RespondWithJSON(c echo.Context, status int, v interface{}) error {
	return c.JSON(status, v)
}

// RespondWithError writes a {"message": ...} error body with the given status.
func RespondWithError(c echo.Context, status int, msg string) error {
	return c.JSON(status, models.ErrorResponse{Message: msg})
}

// RespondWithValidationErrors writes a 400 with the field-keyed message map
// produced by the validation package.
func RespondWithValidationErrors(c echo.Context, fields map[string]string) error {
	return c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Message: "Validation failed",
		Errors:  fields,
	})
}

// HandleServiceError maps service-layer errors onto HTTP statuses. Unexpected
// errors surface the underlying message verbatim with a 500, matching the
// API's pass-through error contract.
func HandleServiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return RespondWithError(c, http.StatusNotFound, "Delivery not found")
	case errors.Is(err, models.ErrConflict):
		return RespondWithError(c, http.StatusConflict, "Resource already exists")
	case errors.Is(err, models.ErrInvalidCredentials):
		return RespondWithError(c, http.StatusUnauthorized, "Invalid email or password")
	default:
		return RespondWithError(c, http.StatusInternalServerError, err.Error())
	}
}
