package apierrors

import (
	"fmt"
	"net/http"
)

// APIError is an error that knows how it is presented to API clients.
// Message is safe to show; Err is logged only.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Error codes
const (
	CodeInvalidInput       = "INVALID_INPUT"
	CodeNotFound           = "NOT_FOUND"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeInternalError      = "INTERNAL_ERROR"
	CodeRateLimitExceeded  = "RATE_LIMIT_EXCEEDED"
	CodeNewsletterNotFound = "NEWSLETTER_NOT_FOUND"
	CodeTemplateNotFound   = "TEMPLATE_NOT_FOUND"
	CodeSubscriberNotFound = "SUBSCRIBER_NOT_FOUND"
	CodeAdminNotFound      = "ADMIN_NOT_FOUND"
	CodeCannotRemoveSelf   = "CANNOT_REMOVE_SELF"
	CodeLastAdmin          = "LAST_ADMIN"
	CodeSlugExists         = "SLUG_EXISTS"
	CodeInvalidSlug        = "INVALID_SLUG"
	CodeInvalidTemplate    = "INVALID_TEMPLATE"
	CodeTemplateProtected  = "TEMPLATE_PROTECTED"
	CodeInvalidStatus      = "INVALID_STATUS"
	CodeInvalidSchedule    = "INVALID_SCHEDULE"
	CodeSendInProgress     = "SEND_IN_PROGRESS"
	CodeInvalidLink        = "INVALID_LINK"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeAlreadyVerified    = "ALREADY_VERIFIED"
	CodeCaptchaFailed      = "CAPTCHA_FAILED"
	CodeInvalidURL         = "INVALID_URL"
	CodeEmailServiceError  = "EMAIL_SERVICE_ERROR"
)

func BadRequest(code, message string) *APIError {
	return &APIError{StatusCode: http.StatusBadRequest, Code: code, Message: message}
}

func NotFound(code, message string) *APIError {
	return &APIError{StatusCode: http.StatusNotFound, Code: code, Message: message}
}

func Unauthorized(message string) *APIError {
	return &APIError{StatusCode: http.StatusUnauthorized, Code: CodeUnauthorized, Message: message}
}

func Forbidden(message string) *APIError {
	return &APIError{StatusCode: http.StatusForbidden, Code: CodeForbidden, Message: message}
}

func Conflict(code, message string) *APIError {
	return &APIError{StatusCode: http.StatusConflict, Code: code, Message: message}
}

func TooManyRequests(message string) *APIError {
	return &APIError{StatusCode: http.StatusTooManyRequests, Code: CodeRateLimitExceeded, Message: message}
}

// ServiceUnavailable keeps the upstream error for logging.
func ServiceUnavailable(code, message string, err error) *APIError {
	return &APIError{StatusCode: http.StatusServiceUnavailable, Code: code, Message: message, Err: err}
}

// InternalError hides err behind a generic message.
func InternalError(err error) *APIError {
	return &APIError{
		StatusCode: http.StatusInternalServerError,
		Code:       CodeInternalError,
		Message:    "An internal error occurred. Please try again later.",
		Err:        err,
	}
}
