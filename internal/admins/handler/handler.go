package handler

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks_test.go -package=handler newsletter-server/internal/admins/processor AdminsStore,AuditLogger

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"newsletter-server/internal/admins/processor"
	"newsletter-server/internal/apierrors"
	"newsletter-server/internal/observability"
)

type Handler struct {
	processor processor.AdminsProcessor
	logger    *observability.Logger
}

func New(processor processor.AdminsProcessor, logger *observability.Logger) Handler {
	return Handler{
		processor: processor,
		logger:    logger,
	}
}

// AddAdminRequest is the body of POST /api/admin/admins
type AddAdminRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func actorFrom(c *gin.Context) (processor.Actor, bool) {
	email, ok := c.Get("Admin-Email")
	if !ok {
		return processor.Actor{}, false
	}
	return processor.Actor{Email: email.(string), IP: observability.GetRealClientIP(c)}, true
}

// HandleListAdmins handles GET /api/admin/admins
func (h *Handler) HandleListAdmins(c *gin.Context) {
	admins, err := h.processor.ListAdmins(c.Request.Context())
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"admins": admins})
}

// HandleAddAdmin handles POST /api/admin/admins
func (h *Handler) HandleAddAdmin(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		apierrors.RespondWithError(c, apierrors.Unauthorized("admin not found in context"))
		return
	}

	var req AddAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	email, err := h.processor.AddAdmin(c.Request.Context(), actor, req.Email)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"email": email})
}

// HandleRemoveAdmin handles DELETE /api/admin/admins/:email
func (h *Handler) HandleRemoveAdmin(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		apierrors.RespondWithError(c, apierrors.Unauthorized("admin not found in context"))
		return
	}

	if err := h.processor.RemoveAdmin(c.Request.Context(), actor, c.Param("email")); err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Admin removed."})
}

// HandleListAuditLog handles GET /api/admin/audit?page=&action=
func (h *Handler) HandleListAuditLog(c *gin.Context) {
	page := 1
	if raw := c.Query("page"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil || p < 1 {
			apierrors.RespondWithError(c, apierrors.BadRequest(apierrors.CodeInvalidInput, "page must be a positive integer"))
			return
		}
		page = p
	}

	result, err := h.processor.ListAuditLog(c.Request.Context(), page, strings.TrimSpace(c.Query("action")))
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
