package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"newsletter-server/internal/apierrors"
	"newsletter-server/internal/observability"
	"newsletter-server/internal/store"
)

const progressWriteWait = 5 * time.Second

// HandleProgressStream handles GET /api/admin/newsletters/:id/progress.
// It pushes the send counters over a websocket until the newsletter leaves
// the sending state or the client goes away.
func (h *Handler) HandleProgressStream(c *gin.Context) {
	id, ok := newsletterID(c)
	if !ok {
		return
	}

	ctx := observability.WithFields(c.Request.Context(), observability.Field{Key: "newsletter_id", Value: id})

	// Unknown newsletters get a plain 404 before the upgrade.
	progress, err := h.processor.GetProgress(ctx, id)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.WarnWithError(ctx, "failed to upgrade progress stream", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Reads only serve to notice the client closing.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(h.progressInterval)
	defer ticker.Stop()

	for {
		_ = conn.SetWriteDeadline(time.Now().Add(progressWriteWait))
		if err := conn.WriteJSON(progress); err != nil {
			h.logger.WarnWithError(ctx, "failed to write progress", err)
			return
		}
		if progress.Status != store.NewsletterStatusSending {
			break
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		progress, err = h.processor.GetProgress(ctx, id)
		if err != nil {
			h.logger.Error(ctx, "failed to poll progress", err)
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "progress unavailable"),
				time.Now().Add(progressWriteWait))
			return
		}
	}

	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, progress.Status),
		time.Now().Add(progressWriteWait))
}
