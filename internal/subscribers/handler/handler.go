package handler

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks_test.go -package=handler newsletter-server/internal/subscribers/processor SubscribersStore,VerificationSender,AuditLogger

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"newsletter-server/internal/apierrors"
	"newsletter-server/internal/observability"
	"newsletter-server/internal/subscribers/processor"
)

type Handler struct {
	processor processor.SubscribersProcessor
	logger    *observability.Logger
}

func New(processor processor.SubscribersProcessor, logger *observability.Logger) Handler {
	return Handler{
		processor: processor,
		logger:    logger,
	}
}

func actorFrom(c *gin.Context) (processor.Actor, bool) {
	email, ok := c.Get("Admin-Email")
	if !ok {
		return processor.Actor{}, false
	}
	return processor.Actor{
		Email: email.(string),
		IP:    observability.GetRealClientIP(c),
	}, true
}

func subscriberID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.RespondWithError(c, apierrors.BadRequest(apierrors.CodeInvalidInput, "invalid subscriber id"))
		return uuid.Nil, false
	}
	return id, true
}

// HandleListSubscribers handles GET /api/admin/subscribers?page=&search=
func (h *Handler) HandleListSubscribers(c *gin.Context) {
	page := 1
	if raw := c.Query("page"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil || p < 1 {
			apierrors.RespondWithError(c, apierrors.BadRequest(apierrors.CodeInvalidInput, "page must be a positive integer"))
			return
		}
		page = p
	}

	result, err := h.processor.ListSubscribers(c.Request.Context(), page, strings.TrimSpace(c.Query("search")))
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// HandleToggleStatus handles POST /api/admin/subscribers/:id/toggle
func (h *Handler) HandleToggleStatus(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		apierrors.RespondWithError(c, apierrors.Unauthorized("admin not found in context"))
		return
	}
	id, ok := subscriberID(c)
	if !ok {
		return
	}

	sub, err := h.processor.ToggleStatus(c.Request.Context(), actor, id)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, sub)
}

// HandleResendVerification handles POST /api/admin/subscribers/:id/resend-verification
func (h *Handler) HandleResendVerification(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		apierrors.RespondWithError(c, apierrors.Unauthorized("admin not found in context"))
		return
	}
	id, ok := subscriberID(c)
	if !ok {
		return
	}

	if err := h.processor.ResendVerification(c.Request.Context(), actor, id); err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Verification email sent."})
}

// HandleGetDashboard handles GET /api/admin/dashboard
func (h *Handler) HandleGetDashboard(c *gin.Context) {
	counts, err := h.processor.GetDashboard(c.Request.Context())
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, counts)
}

// HandleGetStats handles GET /api/admin/stats
func (h *Handler) HandleGetStats(c *gin.Context) {
	stats, err := h.processor.GetTopicStats(c.Request.Context())
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"topics": stats})
}
