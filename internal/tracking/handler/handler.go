package handler

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks_test.go -package=handler newsletter-server/internal/tracking/processor TrackingStore

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"newsletter-server/internal/apierrors"
	"newsletter-server/internal/observability"
	"newsletter-server/internal/tracking/processor"
)

// transparentPNG is a 1x1 fully transparent image.
var transparentPNG = []byte{
	0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00, 0x00, 0x0D, 0x49, 0x48, 0x44, 0x52,
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01, 0x08, 0x06, 0x00, 0x00, 0x00, 0x1F, 0x15, 0xC4,
	0x89, 0x00, 0x00, 0x00, 0x0B, 0x49, 0x44, 0x41, 0x54, 0x78, 0xDA, 0x63, 0x60, 0x00, 0x02, 0x00,
	0x00, 0x05, 0x00, 0x01, 0xE9, 0xFA, 0xDC, 0xD8, 0x00, 0x00, 0x00, 0x00, 0x49, 0x45, 0x4E, 0x44,
	0xAE, 0x42, 0x60, 0x82,
}

type Handler struct {
	processor processor.TrackingProcessor
	logger    *observability.Logger
}

func New(processor processor.TrackingProcessor, logger *observability.Logger) Handler {
	return Handler{
		processor: processor,
		logger:    logger,
	}
}

func hitFrom(c *gin.Context) processor.Hit {
	return processor.Hit{
		Ucode:     c.Query("ucode"),
		Topic:     c.Query("topic"),
		Hash:      c.Query("hash"),
		UserAgent: c.Request.UserAgent(),
	}
}

// HandleOpen handles GET /r/o. The pixel is served whether or not the hit
// verifies.
func (h *Handler) HandleOpen(c *gin.Context) {
	h.processor.RecordOpen(c.Request.Context(), hitFrom(c))

	c.Header("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
	c.Header("Pragma", "no-cache")
	c.Data(http.StatusOK, "image/png", transparentPNG)
}

// HandleClick handles GET /r/c. Any http(s) target is followed even when the
// hash does not verify.
func (h *Handler) HandleClick(c *gin.Context) {
	target := c.Query("url")
	if target == "" {
		apierrors.RespondWithError(c, apierrors.BadRequest(apierrors.CodeInvalidURL, "missing url parameter"))
		return
	}

	if _, err := h.processor.RecordClick(c.Request.Context(), hitFrom(c), target); err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, target)
}
