package apierrors

import (
	"errors"

	adminsProcessor "newsletter-server/internal/admins/processor"
	archiveProcessor "newsletter-server/internal/archive/processor"
	authProcessor "newsletter-server/internal/auth/processor"
	"newsletter-server/internal/email"
	newsletterProcessor "newsletter-server/internal/newsletter/processor"
	"newsletter-server/internal/store"
	subscribersProcessor "newsletter-server/internal/subscribers/processor"
	subscriptionProcessor "newsletter-server/internal/subscription/processor"
	templatesProcessor "newsletter-server/internal/templates/processor"
	trackingProcessor "newsletter-server/internal/tracking/processor"
)

// MapError converts domain/processor errors to APIErrors.
//
// If the error is already an APIError, it returns it as-is.
// If the error is a known domain error, it maps it to an appropriate APIError.
// If the error is unknown, it returns a sanitized InternalError (500).
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	switch {
	// Map newsletter processor errors
	case errors.Is(err, newsletterProcessor.ErrNewsletterNotFound):
		return NotFound(CodeNewsletterNotFound, "Newsletter not found")

	case errors.Is(err, newsletterProcessor.ErrTemplateNotFound):
		return NotFound(CodeTemplateNotFound, "Template not found")

	case errors.Is(err, newsletterProcessor.ErrNotEditable):
		return BadRequest(CodeInvalidStatus, "Only draft newsletters can be edited or deleted")

	case errors.Is(err, newsletterProcessor.ErrCannotSend):
		return BadRequest(CodeInvalidStatus, "Newsletter cannot be sent in its current status")

	case errors.Is(err, newsletterProcessor.ErrCannotSchedule):
		return BadRequest(CodeInvalidStatus, "Only draft newsletters can be scheduled")

	case errors.Is(err, newsletterProcessor.ErrCannotCancel):
		return BadRequest(CodeInvalidStatus, "Newsletter cannot be cancelled in its current status")

	case errors.Is(err, newsletterProcessor.ErrSendInProgress):
		return Conflict(CodeSendInProgress, "The last send is still finishing, try again in a moment")

	case errors.Is(err, newsletterProcessor.ErrInvalidScheduleTime):
		return BadRequest(CodeInvalidSchedule, "Scheduled time must be in the future")

	case errors.Is(err, newsletterProcessor.ErrSlugExists):
		return Conflict(CodeSlugExists, "A newsletter with this slug already exists")

	// Map templates processor errors
	case errors.Is(err, templatesProcessor.ErrTemplateNotFound):
		return NotFound(CodeTemplateNotFound, "Template not found")

	case errors.Is(err, templatesProcessor.ErrInvalidSlug):
		return BadRequest(CodeInvalidSlug, "Slug must be 1-100 lowercase letters, digits or hyphens")

	case errors.Is(err, templatesProcessor.ErrInvalidTemplate):
		return BadRequest(CodeInvalidTemplate, err.Error())

	case errors.Is(err, templatesProcessor.ErrSlugExists):
		return Conflict(CodeSlugExists, "A template with this slug already exists")

	case errors.Is(err, templatesProcessor.ErrDefaultTemplateProtected):
		return Conflict(CodeTemplateProtected, "The default template cannot be deleted or renamed")

	// Map subscription processor errors
	case errors.Is(err, subscriptionProcessor.ErrInvalidEmail):
		return BadRequest(CodeInvalidInput, "Please enter a valid email address")

	case errors.Is(err, subscriptionProcessor.ErrCaptchaFailed):
		return BadRequest(CodeCaptchaFailed, "Captcha verification failed, please try again")

	case errors.Is(err, subscriptionProcessor.ErrInvalidToken):
		return NotFound(CodeInvalidToken, "This verification link is invalid or has expired")

	case errors.Is(err, subscriptionProcessor.ErrInvalidLink):
		return NotFound(CodeInvalidLink, "This management link is invalid")

	// Map subscribers processor errors
	case errors.Is(err, subscribersProcessor.ErrSubscriberNotFound):
		return NotFound(CodeSubscriberNotFound, "Subscriber not found")

	case errors.Is(err, subscribersProcessor.ErrAlreadyVerified):
		return Conflict(CodeAlreadyVerified, "Subscriber is already verified")

	case errors.Is(err, subscribersProcessor.ErrEmailNotSent):
		return ServiceUnavailable(CodeEmailServiceError, "Email service is temporarily unavailable. Please try again later.", err)

	// Map admins processor errors
	case errors.Is(err, adminsProcessor.ErrInvalidEmail):
		return BadRequest(CodeInvalidInput, "A valid email is required")

	case errors.Is(err, adminsProcessor.ErrAdminNotFound):
		return NotFound(CodeAdminNotFound, "Admin not found")

	case errors.Is(err, adminsProcessor.ErrCannotRemoveSelf):
		return BadRequest(CodeCannotRemoveSelf, "You cannot remove yourself")

	case errors.Is(err, adminsProcessor.ErrLastAdmin):
		return Conflict(CodeLastAdmin, "Cannot remove the last admin")

	// Map tracking processor errors
	case errors.Is(err, trackingProcessor.ErrInvalidRedirect):
		return BadRequest(CodeInvalidURL, "Invalid redirect URL")

	// Map archive processor errors
	case errors.Is(err, archiveProcessor.ErrNewsletterNotFound):
		return NotFound(CodeNewsletterNotFound, "This newsletter does not exist or has not been sent yet")

	// Map auth processor errors
	case errors.Is(err, authProcessor.ErrInvalidMagicLink):
		return NotFound(CodeInvalidToken, "This login link is invalid or has expired")

	case errors.Is(err, authProcessor.ErrExpiredToken):
		return Unauthorized("Session expired, please sign in again")

	case errors.Is(err, authProcessor.ErrInvalidJWTToken),
		errors.Is(err, authProcessor.ErrParseJWTToken),
		errors.Is(err, authProcessor.ErrAdminRevoked):
		return Unauthorized("Authorization token is missing or invalid")

	// Map email service errors
	case errors.Is(err, email.ErrSendingEmail):
		return ServiceUnavailable(CodeEmailServiceError, "Email service is temporarily unavailable. Please try again later.", err)

	// Map store errors
	case errors.Is(err, store.ErrNotFound):
		return NotFound(CodeNotFound, "Resource not found")

	default:
		return InternalError(err)
	}
}
