package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	adminsHandler "newsletter-server/internal/admins/handler"
	archiveHandler "newsletter-server/internal/archive/handler"
	authHandler "newsletter-server/internal/auth/handler"
	newsletterHandler "newsletter-server/internal/newsletter/handler"
	"newsletter-server/internal/ratelimit"
	subscribersHandler "newsletter-server/internal/subscribers/handler"
	subscriptionHandler "newsletter-server/internal/subscription/handler"
	templatesHandler "newsletter-server/internal/templates/handler"
	trackingHandler "newsletter-server/internal/tracking/handler"
)

type API struct {
	router              *gin.RouterGroup
	authHandler         authHandler.Handler
	newsletterHandler   newsletterHandler.Handler
	templatesHandler    templatesHandler.Handler
	subscriptionHandler subscriptionHandler.Handler
	subscribersHandler  subscribersHandler.Handler
	trackingHandler     trackingHandler.Handler
	archiveHandler      archiveHandler.Handler
	adminsHandler       adminsHandler.Handler
	rateLimiter         *ratelimit.Service
}

func New(
	router *gin.RouterGroup,
	authHandler authHandler.Handler,
	newsletterHandler newsletterHandler.Handler,
	templatesHandler templatesHandler.Handler,
	subscriptionHandler subscriptionHandler.Handler,
	subscribersHandler subscribersHandler.Handler,
	trackingHandler trackingHandler.Handler,
	archiveHandler archiveHandler.Handler,
	adminsHandler adminsHandler.Handler,
	rateLimiter *ratelimit.Service,
) API {
	return API{
		router:              router,
		authHandler:         authHandler,
		newsletterHandler:   newsletterHandler,
		templatesHandler:    templatesHandler,
		subscriptionHandler: subscriptionHandler,
		subscribersHandler:  subscribersHandler,
		trackingHandler:     trackingHandler,
		archiveHandler:      archiveHandler,
		adminsHandler:       adminsHandler,
		rateLimiter:         rateLimiter,
	}
}

func (a *API) RegisterRoutes() {
	a.Health()

	// Tracking links embedded in sent mail
	a.router.GET("/r/o", a.trackingHandler.HandleOpen)
	a.router.GET("/r/c", a.trackingHandler.HandleClick)

	// Public archive
	a.router.GET("/newsletters", a.archiveHandler.HandleListNewsletters)
	a.router.GET("/newsletters/:slug", a.archiveHandler.HandleViewNewsletter)

	// RFC 8058 one-click unsubscribe from mail clients
	a.router.POST("/unsubscribe/:admin_link", a.subscriptionHandler.HandleOneClickUnsubscribe)

	apiGroup := a.router.Group("/api")
	{
		apiGroup.POST("/subscribe", a.rateLimiter.Middleware(), a.subscriptionHandler.HandleSubscribe)
		apiGroup.GET("/verify/:token", a.subscriptionHandler.HandleVerify)

		manageGroup := apiGroup.Group("/manage/:admin_link")
		manageGroup.GET("", a.subscriptionHandler.HandleGetSubscription)
		manageGroup.POST("/name", a.subscriptionHandler.HandleUpdateName)
		manageGroup.POST("/unsubscribe", a.subscriptionHandler.HandleUnsubscribe)
		manageGroup.POST("/resubscribe", a.subscriptionHandler.HandleResubscribe)

		authGroup := apiGroup.Group("/auth")
		authGroup.POST("/login", a.rateLimiter.Middleware(), a.authHandler.HandleRequestMagicLink)
		authGroup.GET("/magic/:token", a.authHandler.HandleMagicLink)
	}

	adminGroup := apiGroup.Group("/admin", a.authHandler.HandleJWTMiddleware)
	{
		adminGroup.GET("/me", a.authHandler.HandleGetMe)
		adminGroup.GET("/dashboard", a.subscribersHandler.HandleGetDashboard)
		adminGroup.GET("/stats", a.subscribersHandler.HandleGetStats)

		newsletters := adminGroup.Group("/newsletters")
		newsletters.GET("", a.newsletterHandler.HandleListNewsletters)
		newsletters.POST("", a.newsletterHandler.HandleCreateNewsletter)
		newsletters.GET("/:id", a.newsletterHandler.HandleGetNewsletter)
		newsletters.PUT("/:id", a.newsletterHandler.HandleUpdateNewsletter)
		newsletters.DELETE("/:id", a.newsletterHandler.HandleDeleteNewsletter)
		newsletters.GET("/:id/preview", a.newsletterHandler.HandlePreviewNewsletter)
		newsletters.POST("/:id/send", a.newsletterHandler.HandleSendNewsletter)
		newsletters.POST("/:id/schedule", a.newsletterHandler.HandleScheduleNewsletter)
		newsletters.POST("/:id/cancel", a.newsletterHandler.HandleCancelNewsletter)
		newsletters.GET("/:id/status", a.newsletterHandler.HandleGetStatus)
		newsletters.GET("/:id/progress", a.newsletterHandler.HandleProgressStream)
		newsletters.GET("/:id/stats", a.newsletterHandler.HandleGetStats)

		templates := adminGroup.Group("/templates")
		templates.GET("", a.templatesHandler.HandleListTemplates)
		templates.POST("", a.templatesHandler.HandleCreateTemplate)
		templates.GET("/:id", a.templatesHandler.HandleGetTemplate)
		templates.PUT("/:id", a.templatesHandler.HandleUpdateTemplate)
		templates.DELETE("/:id", a.templatesHandler.HandleDeleteTemplate)
		templates.POST("/:id/duplicate", a.templatesHandler.HandleDuplicateTemplate)

		subscribers := adminGroup.Group("/subscribers")
		subscribers.GET("", a.subscribersHandler.HandleListSubscribers)
		subscribers.POST("/:id/toggle", a.subscribersHandler.HandleToggleStatus)
		subscribers.POST("/:id/resend-verification", a.subscribersHandler.HandleResendVerification)

		admins := adminGroup.Group("/admins")
		admins.GET("", a.adminsHandler.HandleListAdmins)
		admins.POST("", a.adminsHandler.HandleAddAdmin)
		admins.DELETE("/:email", a.adminsHandler.HandleRemoveAdmin)

		adminGroup.GET("/audit", a.adminsHandler.HandleListAuditLog)
	}
}

func (a *API) Health() {
	a.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
}
