package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"esatalim/internal/common"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const serverErrorMessage = "Server error"

// NewHTTPErrorHandler renders every error as the JSON error envelope.
// Unexpected errors are logged and answered with a generic message.
func NewHTTPErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := errorResponse(err)
		if status >= http.StatusInternalServerError {
			log.Error("Request failed",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
				zap.Int("status", status),
				zap.Error(err))
		}

		var sendErr error
		if c.Request().Method == http.MethodHead {
			sendErr = c.NoContent(status)
		} else {
			sendErr = c.JSON(status, body)
		}
		if sendErr != nil {
			log.Warn("Failed to write error response", zap.Error(sendErr))
		}
	}
}

func errorResponse(err error) (int, *common.ErrorResponse) {
	var verr *common.ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest, common.NewErrorResponse("Validation failed", verr.Errors)
	}

	var pe *common.PublicError
	if errors.As(err, &pe) {
		return statusForKind(pe.Kind), common.NewErrorResponse(pe.Message, nil)
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code >= http.StatusInternalServerError {
			return he.Code, common.NewErrorResponse(serverErrorMessage, nil)
		}
		return he.Code, common.NewErrorResponse(fmt.Sprint(he.Message), nil)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusServiceUnavailable, common.NewErrorResponse("Request timed out", nil)
	}
	for _, kind := range []error{common.ErrNotFound, common.ErrForbidden, common.ErrUnauthorized,
		common.ErrConflict, common.ErrInvalidTransition, common.ErrRateLimited} {
		if errors.Is(err, kind) {
			return statusForKind(kind), common.NewErrorResponse(http.StatusText(statusForKind(kind)), nil)
		}
	}
	return http.StatusInternalServerError, common.NewErrorResponse(serverErrorMessage, nil)
}

func statusForKind(kind error) int {
	switch kind {
	case common.ErrNotFound:
		return http.StatusNotFound
	case common.ErrForbidden:
		return http.StatusForbidden
	case common.ErrUnauthorized:
		return http.StatusUnauthorized
	case common.ErrConflict:
		return http.StatusConflict
	case common.ErrInvalidTransition:
		return http.StatusBadRequest
	case common.ErrRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// callerFrom returns the authenticated caller set by the JWT middleware
func callerFrom(c echo.Context) (common.Caller, error) {
	caller, ok := common.CallerFromContext(c.Request().Context())
	if !ok {
		return common.Caller{}, common.Unauthorized("User not authenticated")
	}
	return caller, nil
}

// bindJSON decodes the request body into dst
func bindJSON(c echo.Context, dst interface{}) error {
	if err := c.Bind(dst); err != nil {
		return common.NewValidationError("body", "Invalid request body", nil)
	}
	return nil
}

// messageResponse is the body of mutations that return no resource
type messageResponse struct {
	Message string `json:"message"`
}
