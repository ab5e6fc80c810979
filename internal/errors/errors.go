package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Error codes carried in ErrorResponse.Code.
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeInvalidID          = "INVALID_ID"
	CodeIDMismatch         = "ID_MISMATCH"
	CodeNotFound           = "NOT_FOUND"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeRequestFailed      = "REQUEST_FAILED"
	CodeSeedDisabled       = "SEED_DISABLED"
	CodeInternal           = "INTERNAL_ERROR"
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// NewHTTPError builds an echo error whose body is an ErrorResponse.
func NewHTTPError(statusCode int, message, code string) *echo.HTTPError {
	return echo.NewHTTPError(statusCode, ErrorResponse{Error: message, Code: code})
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that renders every
// error as an ErrorResponse. Errors that are not *echo.HTTPError are logged
// and reported as a generic 500.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		if werr := c.JSON(status, body); werr != nil {
			log.Error().Err(werr).Msg("write error response")
		}
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, ErrorResponse) {
	var he *echo.HTTPError
	if stderrors.As(err, &he) {
		if he.Internal != nil {
			log.Warn().Err(he.Internal).Str("path", c.Path()).Int("status", he.Code).Msg("request rejected")
		}
		switch msg := he.Message.(type) {
		case ErrorResponse:
			return he.Code, msg
		case *ErrorResponse:
			return he.Code, *msg
		default:
			return he.Code, ErrorResponse{Error: fmt.Sprintf("%v", msg), Code: codeForStatus(he.Code)}
		}
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, ErrorResponse{Error: "internal server error", Code: CodeInternal}
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return CodeValidation
	case http.StatusUnauthorized:
		return CodeUnauthorized
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusInternalServerError:
		return CodeInternal
	default:
		return CodeRequestFailed
	}
}
