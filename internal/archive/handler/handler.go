package handler

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks_test.go -package=handler newsletter-server/internal/archive/processor ArchiveStore

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"newsletter-server/internal/apierrors"
	"newsletter-server/internal/archive/processor"
	"newsletter-server/internal/observability"
)

type Handler struct {
	processor processor.ArchiveProcessor
	logger    *observability.Logger
}

func New(processor processor.ArchiveProcessor, logger *observability.Logger) Handler {
	return Handler{
		processor: processor,
		logger:    logger,
	}
}

// HandleListNewsletters handles GET /newsletters
func (h *Handler) HandleListNewsletters(c *gin.Context) {
	entries, err := h.processor.ListSent(c.Request.Context())
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"newsletters": entries})
}

// HandleViewNewsletter handles GET /newsletters/:slug
func (h *Handler) HandleViewNewsletter(c *gin.Context) {
	page, err := h.processor.Render(c.Request.Context(), c.Param("slug"))
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}
