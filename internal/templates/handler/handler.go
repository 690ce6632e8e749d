package handler

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks_test.go -package=handler newsletter-server/internal/templates/processor TemplateStore,AuditLogger

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"newsletter-server/internal/apierrors"
	"newsletter-server/internal/observability"
	"newsletter-server/internal/store"
	"newsletter-server/internal/templates/processor"
)

type Handler struct {
	processor processor.TemplateProcessor
	logger    *observability.Logger
}

func New(processor processor.TemplateProcessor, logger *observability.Logger) Handler {
	return Handler{
		processor: processor,
		logger:    logger,
	}
}

// TemplateRequest is the body for creating or updating a template
type TemplateRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Slug        string `json:"slug" binding:"required,max=100"`
	Description string `json:"description" binding:"max=1000"`
	HTMLBody    string `json:"html_body" binding:"required"`
}

func (r TemplateRequest) toProcessor() processor.TemplateRequest {
	return processor.TemplateRequest{
		Name:        r.Name,
		Slug:        r.Slug,
		Description: r.Description,
		HTMLBody:    r.HTMLBody,
	}
}

func actorFrom(c *gin.Context) (processor.Actor, bool) {
	email, ok := c.Get("Admin-Email")
	if !ok {
		return processor.Actor{}, false
	}
	return processor.Actor{Email: email.(string), IP: observability.GetRealClientIP(c)}, true
}

func templateID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.RespondWithError(c, apierrors.BadRequest(apierrors.CodeInvalidInput, "invalid template id"))
		return uuid.Nil, false
	}
	return id, true
}

// HandleListTemplates handles GET /api/admin/templates
func (h *Handler) HandleListTemplates(c *gin.Context) {
	templates, err := h.processor.ListTemplates(c.Request.Context())
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}
	if templates == nil {
		templates = []store.NewsletterTemplate{}
	}
	c.JSON(http.StatusOK, gin.H{"templates": templates})
}

// HandleGetTemplate handles GET /api/admin/templates/:id
func (h *Handler) HandleGetTemplate(c *gin.Context) {
	id, ok := templateID(c)
	if !ok {
		return
	}

	t, err := h.processor.GetTemplate(c.Request.Context(), id)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, t)
}

// HandleCreateTemplate handles POST /api/admin/templates
func (h *Handler) HandleCreateTemplate(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		apierrors.RespondWithError(c, apierrors.Unauthorized("admin not found in context"))
		return
	}

	var req TemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	t, err := h.processor.CreateTemplate(c.Request.Context(), actor, req.toProcessor())
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, t)
}

// HandleUpdateTemplate handles PUT /api/admin/templates/:id
func (h *Handler) HandleUpdateTemplate(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		apierrors.RespondWithError(c, apierrors.Unauthorized("admin not found in context"))
		return
	}
	id, ok := templateID(c)
	if !ok {
		return
	}

	var req TemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	t, err := h.processor.UpdateTemplate(c.Request.Context(), actor, id, req.toProcessor())
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, t)
}

// HandleDeleteTemplate handles DELETE /api/admin/templates/:id
func (h *Handler) HandleDeleteTemplate(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		apierrors.RespondWithError(c, apierrors.Unauthorized("admin not found in context"))
		return
	}
	id, ok := templateID(c)
	if !ok {
		return
	}

	if err := h.processor.DeleteTemplate(c.Request.Context(), actor, id); err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// HandleDuplicateTemplate handles POST /api/admin/templates/:id/duplicate
func (h *Handler) HandleDuplicateTemplate(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		apierrors.RespondWithError(c, apierrors.Unauthorized("admin not found in context"))
		return
	}
	id, ok := templateID(c)
	if !ok {
		return
	}

	t, err := h.processor.DuplicateTemplate(c.Request.Context(), actor, id)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, t)
}
