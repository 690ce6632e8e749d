package apierrors

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"newsletter-server/internal/observability"
)

// Package-level logger that uses context for observability
var logger = observability.NewLogger()

// SetLogger replaces the package logger, used by bootstrap and tests.
func SetLogger(l *observability.Logger) {
	logger = l
}

// ErrorResponse is the JSON structure returned to API clients for errors
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// RespondWithError maps err to an APIError, logs it and writes a sanitized
// JSON response. Processors have already logged the detailed error.
//
//	if err != nil {
//	    apierrors.RespondWithError(c, err)
//	    return
//	}
func RespondWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	apiErr := MapError(err)

	ctx := observability.WithFields(c.Request.Context(),
		observability.Field{Key: "status_code", Value: apiErr.StatusCode},
		observability.Field{Key: "error_code", Value: apiErr.Code},
		observability.Field{Key: "error_message", Value: apiErr.Message},
	)
	if apiErr.StatusCode >= http.StatusInternalServerError {
		logger.Error(ctx, "API error response", apiErr.Err)
	} else {
		logger.Info(ctx, "API error response")
	}

	c.AbortWithStatusJSON(apiErr.StatusCode, ErrorResponse{
		Error: apiErr.Message,
		Code:  apiErr.Code,
	})
}

// RespondWithValidationError handles gin binding failures.
//
//	var req SomeRequest
//	if err := c.ShouldBindJSON(&req); err != nil {
//	    apierrors.RespondWithValidationError(c, err)
//	    return
//	}
func RespondWithValidationError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	ctx := c.Request.Context()

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		apiErr := ValidationError(err)
		logger.InfoWithError(ctx, "validation failed", err)
		c.AbortWithStatusJSON(apiErr.StatusCode, ErrorResponse{
			Error: apiErr.Message,
			Code:  apiErr.Code,
		})
		return
	}

	logger.InfoWithError(ctx, "request binding failed", err)
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
		Error: "Invalid request format. Please check your JSON syntax.",
		Code:  CodeInvalidInput,
	})
}
