package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/SscSPs/vidtube_backend/internal/apperrors"
	"github.com/SscSPs/vidtube_backend/internal/core/domain"
	"github.com/SscSPs/vidtube_backend/internal/dto"
	"github.com/SscSPs/vidtube_backend/internal/middleware"
)

// handlerFunc is a route handler that reports failures by returning them.
type handlerFunc func(c *gin.Context) error

// authedHandlerFunc additionally receives the authenticated caller.
type authedHandlerFunc func(c *gin.Context, identity *domain.User) error

// handle adapts a handlerFunc to gin. Returned errors are attached to the
// context and rendered by middleware.ErrorResponder.
func handle(fn handlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := fn(c); err != nil {
			_ = c.Error(err)
		}
	}
}

// authed passes the identity resolved by the auth middleware to fn.
func authed(fn authedHandlerFunc) handlerFunc {
	return func(c *gin.Context) error {
		identity, ok := middleware.GetIdentityFromContext(c)
		if !ok {
			return apperrors.NewUnauthorizedError("Unauthorized request")
		}
		return fn(c, identity)
	}
}

func respond(c *gin.Context, status int, data any, message string) {
	c.JSON(status, dto.NewAPIResponse(status, data, message))
}

// bindError turns a binding failure into a 400. Field validation failures use
// message; malformed payloads report the decoder error.
func bindError(err error, message string) error {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return apperrors.NewValidationError(message, middleware.ValidationMessages(validationErrs)...)
	}
	return apperrors.NewValidationError("Invalid request payload", err.Error())
}
