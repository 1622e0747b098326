package controller

import (
	"net/http"
	"time"

	"agenda-api/core/constants"
	"agenda-api/core/errors"
	"agenda-api/core/logger"

	"github.com/labstack/echo/v4"
)

type (
	SuccessResponse struct {
		Status    int       `json:"status"`
		Message   string    `json:"message"`
		Data      any       `json:"data,omitempty"`
		Timestamp time.Time `json:"timestamp"`
	}

	ErrorResponse struct {
		Status      string           `json:"status"`
		Code        errors.ErrorCode `json:"code"`
		Message     string           `json:"message"`
		UserMessage string           `json:"user_message,omitempty"`
		Timestamp   time.Time        `json:"timestamp"`
	}
)

// BaseController centralizes the HTTP response and error-code mapping so
// module controllers stay thin.
type BaseController interface {
	Success(c echo.Context, data any, message string) error
	Error(c echo.Context, err error) error
}

type responseHandler struct{}

func NewBaseController() BaseController {
	return &responseHandler{}
}

func NewSuccessResponse(httpStatusCode int, data any, message string) *SuccessResponse {
	return &SuccessResponse{
		Status:    httpStatusCode,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	}
}

func NewErrorResponse(httpStatusCode int, appErrCode errors.ErrorCode, message string) *ErrorResponse {
	return &ErrorResponse{
		Status:      "error",
		Code:        appErrCode,
		Message:     message,
		UserMessage: constants.UserErrorMessages[httpStatusCode],
		Timestamp:   time.Now(),
	}
}

func (h *responseHandler) Success(c echo.Context, data any, message string) error {
	return c.JSON(http.StatusOK, NewSuccessResponse(http.StatusOK, data, message))
}

// Error maps an AppError to its HTTP status. Business-rule errors keep
// their message; infrastructure errors are logged in full and surfaced as
// a generic 500 so internals never leak.
func (h *responseHandler) Error(c echo.Context, err error) error {
	httpStatus := http.StatusInternalServerError
	appCode := errors.ErrInternalServer
	msg := "internal server error"

	if ae, ok := err.(*errors.AppError); ok && ae != nil {
		appCode = ae.Code
		switch appCode {
		case errors.ErrInvalidInput, errors.ErrInvalidRequestData:
			httpStatus = http.StatusBadRequest
		case errors.ErrUnauthorized, errors.ErrTokenExpired,
			errors.ErrInvalidTokenFormat, errors.ErrMissingAuthorizationHeader:
			httpStatus = http.StatusUnauthorized
		case errors.ErrForbidden:
			httpStatus = http.StatusForbidden
		case errors.ErrNotFound:
			httpStatus = http.StatusNotFound
		case errors.ErrAlreadyExists:
			httpStatus = http.StatusConflict
		}
		if ae.IsBusinessError() && ae.Message != "" {
			msg = ae.Message
		}
	}

	logger.Error("BaseController:Error",
		"status", httpStatus,
		"code", appCode,
		"error", err,
	)
	return c.JSON(httpStatus, NewErrorResponse(httpStatus, appCode, msg))
}
