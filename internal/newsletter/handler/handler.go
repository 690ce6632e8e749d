package handler

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks_test.go -package=handler newsletter-server/internal/newsletter/processor NewsletterStore,Launcher,SendTracker,ClickCounter,AuditLogger

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"newsletter-server/internal/apierrors"
	"newsletter-server/internal/newsletter/processor"
	"newsletter-server/internal/observability"
	"newsletter-server/internal/store"
)

const defaultProgressInterval = time.Second

type Handler struct {
	processor        processor.NewsletterProcessor
	logger           *observability.Logger
	upgrader         websocket.Upgrader
	progressInterval time.Duration
}

// New creates a handler. allowedOrigin is the admin web app allowed to open
// the progress websocket; empty accepts same-origin requests only.
func New(processor processor.NewsletterProcessor, allowedOrigin string, logger *observability.Logger) Handler {
	return Handler{
		processor: processor,
		logger:    logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || origin == allowedOrigin || "https://"+r.Host == origin || "http://"+r.Host == origin
			},
		},
		progressInterval: defaultProgressInterval,
	}
}

// NewsletterRequest is the body for creating or updating a draft
type NewsletterRequest struct {
	Title           string  `json:"title" binding:"required,max=500"`
	MarkdownContent string  `json:"markdown_content"`
	TemplateID      *string `json:"template_id" binding:"omitempty,uuid"`
}

func (r NewsletterRequest) templateID() *uuid.UUID {
	if r.TemplateID == nil {
		return nil
	}
	id := uuid.MustParse(*r.TemplateID)
	return &id
}

// ScheduleRequest is the body of POST /newsletters/:id/schedule
type ScheduleRequest struct {
	ScheduledAt time.Time `json:"scheduled_at" binding:"required"`
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

func newsletterID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.RespondWithError(c, apierrors.BadRequest(apierrors.CodeInvalidInput, "invalid newsletter id"))
		return uuid.Nil, false
	}
	return id, true
}

// HandleListNewsletters handles GET /api/admin/newsletters
func (h *Handler) HandleListNewsletters(c *gin.Context) {
	newsletters, err := h.processor.ListNewsletters(c.Request.Context())
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}
	if newsletters == nil {
		newsletters = []store.Newsletter{}
	}
	c.JSON(http.StatusOK, gin.H{"newsletters": newsletters})
}

// HandleCreateNewsletter handles POST /api/admin/newsletters
func (h *Handler) HandleCreateNewsletter(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		apierrors.RespondWithError(c, apierrors.Unauthorized("admin not found in context"))
		return
	}

	var req NewsletterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	n, err := h.processor.CreateNewsletter(c.Request.Context(), actor, processor.CreateNewsletterRequest{
		Title:           req.Title,
		MarkdownContent: req.MarkdownContent,
		TemplateID:      req.templateID(),
	})
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, n)
}

// HandleGetNewsletter handles GET /api/admin/newsletters/:id
func (h *Handler) HandleGetNewsletter(c *gin.Context) {
	id, ok := newsletterID(c)
	if !ok {
		return
	}

	n, err := h.processor.GetNewsletter(c.Request.Context(), id)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, n)
}

// HandleUpdateNewsletter handles PUT /api/admin/newsletters/:id
func (h *Handler) HandleUpdateNewsletter(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		apierrors.RespondWithError(c, apierrors.Unauthorized("admin not found in context"))
		return
	}
	id, ok := newsletterID(c)
	if !ok {
		return
	}

	var req NewsletterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	n, err := h.processor.UpdateNewsletter(c.Request.Context(), actor, id, processor.UpdateNewsletterRequest{
		Title:           req.Title,
		MarkdownContent: req.MarkdownContent,
		TemplateID:      req.templateID(),
	})
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, n)
}

// HandleDeleteNewsletter handles DELETE /api/admin/newsletters/:id
func (h *Handler) HandleDeleteNewsletter(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		apierrors.RespondWithError(c, apierrors.Unauthorized("admin not found in context"))
		return
	}
	id, ok := newsletterID(c)
	if !ok {
		return
	}

	if err := h.processor.DeleteNewsletter(c.Request.Context(), actor, id); err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// HandlePreviewNewsletter handles GET /api/admin/newsletters/:id/preview
func (h *Handler) HandlePreviewNewsletter(c *gin.Context) {
	id, ok := newsletterID(c)
	if !ok {
		return
	}

	html, err := h.processor.PreviewNewsletter(c.Request.Context(), id)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// HandleSendNewsletter handles POST /api/admin/newsletters/:id/send
func (h *Handler) HandleSendNewsletter(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		apierrors.RespondWithError(c, apierrors.Unauthorized("admin not found in context"))
		return
	}
	id, ok := newsletterID(c)
	if !ok {
		return
	}

	if err := h.processor.SendNewsletter(c.Request.Context(), actor, id); err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"id":      id,
		"message": "Sending started",
	})
}

// HandleScheduleNewsletter handles POST /api/admin/newsletters/:id/schedule
func (h *Handler) HandleScheduleNewsletter(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		apierrors.RespondWithError(c, apierrors.Unauthorized("admin not found in context"))
		return
	}
	id, ok := newsletterID(c)
	if !ok {
		return
	}

	var req ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	n, err := h.processor.ScheduleNewsletter(c.Request.Context(), actor, id, req.ScheduledAt)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, n)
}

// HandleCancelNewsletter handles POST /api/admin/newsletters/:id/cancel
func (h *Handler) HandleCancelNewsletter(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		apierrors.RespondWithError(c, apierrors.Unauthorized("admin not found in context"))
		return
	}
	id, ok := newsletterID(c)
	if !ok {
		return
	}

	status, err := h.processor.CancelNewsletter(c.Request.Context(), actor, id)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "status": status})
}

// HandleGetStatus handles GET /api/admin/newsletters/:id/status
func (h *Handler) HandleGetStatus(c *gin.Context) {
	id, ok := newsletterID(c)
	if !ok {
		return
	}

	progress, err := h.processor.GetProgress(c.Request.Context(), id)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, progress)
}

// HandleGetStats handles GET /api/admin/newsletters/:id/stats
func (h *Handler) HandleGetStats(c *gin.Context) {
	id, ok := newsletterID(c)
	if !ok {
		return
	}

	stats, err := h.processor.GetStats(c.Request.Context(), id)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
