package handler

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks_test.go -package=handler newsletter-server/internal/auth/processor AuthStore,EmailService,AuditLogger

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"newsletter-server/internal/apierrors"
	"newsletter-server/internal/auth/processor"
	"newsletter-server/internal/observability"
)

const loginMessage = "If this address belongs to an admin, a login link is on its way."

type Handler struct {
	authProcessor processor.AuthProcessor
	logger        *observability.Logger
}

type MagicLinkRequest struct {
	Email string `json:"email" form:"email" binding:"required,email"`
}

func New(authProcessor processor.AuthProcessor, logger *observability.Logger) Handler {
	return Handler{authProcessor: authProcessor, logger: logger}
}

// HandleRequestMagicLink handles POST /api/auth/login
func (h *Handler) HandleRequestMagicLink(c *gin.Context) {
	var req MagicLinkRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	if err := h.authProcessor.RequestMagicLink(c.Request.Context(), req.Email); err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": loginMessage})
}

// HandleMagicLink handles GET /api/auth/magic/:token
func (h *Handler) HandleMagicLink(c *gin.Context) {
	token, err := h.authProcessor.ConsumeMagicLink(c.Request.Context(), c.Param("token"), observability.GetRealClientIP(c))
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (h *Handler) HandleJWTMiddleware(c *gin.Context) {
	ctx := c.Request.Context()
	tokenHeader := c.GetHeader("Authorization")

	if tokenHeader == "" || !strings.HasPrefix(tokenHeader, "Bearer ") {
		apierrors.RespondWithError(c, apierrors.Unauthorized("Authorization token is missing or invalid"))
		return
	}

	tokenString := strings.TrimPrefix(tokenHeader, "Bearer ")

	claims, err := h.authProcessor.ValidateJWTToken(ctx, tokenString)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}
	sub, err := claims.GetSubject()
	if err != nil {
		apierrors.RespondWithError(c, apierrors.Unauthorized("invalid token subject"))
		return
	}

	c.Set("Admin-Email", sub)
	c.Request = c.Request.WithContext(observability.WithFields(ctx, observability.Field{Key: "admin_email", Value: sub}))
	c.Next()
}

// HandleGetMe handles GET /api/admin/me
func (h *Handler) HandleGetMe(c *gin.Context) {
	email, ok := c.Get("Admin-Email")
	if !ok {
		apierrors.RespondWithError(c, apierrors.Unauthorized("admin not found in context"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"email": email})
}
