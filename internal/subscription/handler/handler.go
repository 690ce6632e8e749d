package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"newsletter-server/internal/apierrors"
	"newsletter-server/internal/observability"
	"newsletter-server/internal/subscription/processor"
)

const subscribeMessage = "Please check your inbox and click the verification link."

type Handler struct {
	processor processor.SubscriptionProcessor
	logger    *observability.Logger
}

func New(processor processor.SubscriptionProcessor, logger *observability.Logger) Handler {
	return Handler{
		processor: processor,
		logger:    logger,
	}
}

// SubscribeRequest accepts JSON or the HTML form the widget posts
type SubscribeRequest struct {
	Email        string `json:"email" form:"email" binding:"required,email,max=320"`
	Name         string `json:"name" form:"name" binding:"max=200"`
	CaptchaToken string `json:"captcha_token" form:"cf-turnstile-response"`
}

type UpdateNameRequest struct {
	Name string `json:"name" form:"name" binding:"max=200"`
}

type UnsubscribeRequest struct {
	From string `json:"from" form:"from"`
}

// HandleSubscribe handles POST /api/subscribe
func (h *Handler) HandleSubscribe(c *gin.Context) {
	var req SubscribeRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	err := h.processor.Subscribe(c.Request.Context(), processor.SubscribeRequest{
		Email:        req.Email,
		Name:         req.Name,
		CaptchaToken: req.CaptchaToken,
		RemoteIP:     observability.GetRealClientIP(c),
	})
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": subscribeMessage})
}

// HandleVerify handles GET /api/verify/:token
func (h *Handler) HandleVerify(c *gin.Context) {
	manageURL, err := h.processor.Verify(c.Request.Context(), c.Param("token"))
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Your email address has been verified.",
		"manage_url": manageURL,
	})
}

// HandleGetSubscription handles GET /api/manage/:admin_link
func (h *Handler) HandleGetSubscription(c *gin.Context) {
	sub, err := h.processor.GetSubscription(c.Request.Context(), c.Param("admin_link"), c.Query("from"))
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, sub)
}

// HandleUpdateName handles POST /api/manage/:admin_link/name
func (h *Handler) HandleUpdateName(c *gin.Context) {
	var req UpdateNameRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	sub, err := h.processor.UpdateName(c.Request.Context(), c.Param("admin_link"), req.Name)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Name updated.", "subscription": sub})
}

// HandleUnsubscribe handles POST /api/manage/:admin_link/unsubscribe
func (h *Handler) HandleUnsubscribe(c *gin.Context) {
	var req UnsubscribeRequest
	// The body is optional; a missing source is not an error.
	_ = c.ShouldBind(&req)

	sub, err := h.processor.Unsubscribe(c.Request.Context(), c.Param("admin_link"), req.From)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "You have been unsubscribed.", "subscription": sub})
}

// HandleResubscribe handles POST /api/manage/:admin_link/resubscribe
func (h *Handler) HandleResubscribe(c *gin.Context) {
	sub, err := h.processor.Resubscribe(c.Request.Context(), c.Param("admin_link"))
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "You have been resubscribed.", "subscription": sub})
}

// HandleOneClickUnsubscribe handles the RFC 8058 POST /unsubscribe/:admin_link.
// Mail clients only look at the status code.
func (h *Handler) HandleOneClickUnsubscribe(c *gin.Context) {
	_, err := h.processor.Unsubscribe(c.Request.Context(), c.Param("admin_link"), c.Query("from"))
	if err != nil {
		if errors.Is(err, processor.ErrInvalidLink) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusOK)
}
