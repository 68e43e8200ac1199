package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/SscSPs/vidtube_backend/internal/apperrors"
	"github.com/SscSPs/vidtube_backend/internal/dto"
)

const internalServerErrorMessage = "Internal server error"

// ErrorResponder writes the error envelope for the last error a handler
// attached with c.Error, unless the handler already wrote a response.
func ErrorResponder() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status, body := ErrorEnvelope(err)
		if status >= http.StatusInternalServerError {
			GetLoggerFromCtx(c.Request.Context()).Error("Request failed", slog.String("error", err.Error()))
		}
		c.AbortWithStatusJSON(status, body)
	}
}

// ErrorEnvelope maps err to its HTTP status and response body. Internal
// failures never leak their cause to the client.
func ErrorEnvelope(err error) (int, dto.ErrorResponse) {
	if appErr, ok := asAppError(err); ok {
		status := appErr.StatusCode
		if status == 0 {
			status = http.StatusInternalServerError
		}
		return status, dto.NewErrorResponse(status, appErr.Message, appErr.Errors)
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Invalid request payload", ValidationMessages(validationErrs))
	}

	status := apperrors.StatusCodeOf(err)
	if status >= http.StatusInternalServerError {
		return status, dto.NewErrorResponse(status, internalServerErrorMessage, nil)
	}
	return status, dto.NewErrorResponse(status, err.Error(), nil)
}

// ValidationMessages renders one message per failed field.
func ValidationMessages(errs validator.ValidationErrors) []string {
	messages := make([]string, 0, len(errs))
	for _, fe := range errs {
		switch fe.Tag() {
		case "required", "notblank":
			messages = append(messages, fmt.Sprintf("%s is required", fe.Field()))
		case "email":
			messages = append(messages, fmt.Sprintf("%s must be a valid email", fe.Field()))
		default:
			messages = append(messages, fmt.Sprintf("%s failed on the '%s' rule", fe.Field(), fe.Tag()))
		}
	}
	return messages
}

func asAppError(err error) (*apperrors.AppError, bool) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
