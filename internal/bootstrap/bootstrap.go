package bootstrap

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	adminsHandler "newsletter-server/internal/admins/handler"
	adminsProcessor "newsletter-server/internal/admins/processor"
	"newsletter-server/internal/apierrors"
	archiveHandler "newsletter-server/internal/archive/handler"
	archiveProcessor "newsletter-server/internal/archive/processor"
	"newsletter-server/internal/audit"
	"newsletter-server/internal/auth/handler"
	"newsletter-server/internal/auth/processor"
	"newsletter-server/internal/clients/mail"
	"newsletter-server/internal/clients/redis"
	"newsletter-server/internal/clients/shorturl"
	"newsletter-server/internal/clients/turnstile"
	"newsletter-server/internal/config"
	"newsletter-server/internal/email"
	newsletterHandler "newsletter-server/internal/newsletter/handler"
	newsletterProcessor "newsletter-server/internal/newsletter/processor"
	"newsletter-server/internal/observability"
	"newsletter-server/internal/ratelimit"
	"newsletter-server/internal/store"
	subscribersHandler "newsletter-server/internal/subscribers/handler"
	subscribersProcessor "newsletter-server/internal/subscribers/processor"
	subscriptionHandler "newsletter-server/internal/subscription/handler"
	subscriptionProcessor "newsletter-server/internal/subscription/processor"
	templatesHandler "newsletter-server/internal/templates/handler"
	templatesProcessor "newsletter-server/internal/templates/processor"
	trackingHandler "newsletter-server/internal/tracking/handler"
	trackingProcessor "newsletter-server/internal/tracking/processor"
	"newsletter-server/internal/workers"
	"newsletter-server/internal/workers/delivery"
)

// Dependencies holds all initialized application dependencies
type Dependencies struct {
	// Core
	Store   store.Store
	Redis   *redis.Client
	Logger  *observability.Logger
	Metrics *observability.Metrics

	// Handlers
	AuthHandler         handler.Handler
	NewsletterHandler   newsletterHandler.Handler
	TemplatesHandler    templatesHandler.Handler
	SubscriptionHandler subscriptionHandler.Handler
	SubscribersHandler  subscribersHandler.Handler
	TrackingHandler     trackingHandler.Handler
	ArchiveHandler      archiveHandler.Handler
	AdminsHandler       adminsHandler.Handler

	// Public form throttling
	RateLimiter *ratelimit.Service

	// Background workers
	SendPool  *workers.Pool
	Scheduler *delivery.Scheduler
}

// Initialize sets up all application dependencies. reg receives the
// prometheus collectors; nil leaves them unregistered.
func Initialize(ctx context.Context, cfg *config.Config, reg prometheus.Registerer, logger *observability.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Logger:  logger,
		Metrics: observability.NewMetrics(reg),
	}
	apierrors.SetLogger(logger)

	// Initialize database store
	var err error
	deps.Store, err = store.New(cfg.Database.ConnectionString(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := deps.Store.Migrate(ctx, cfg.Newsletter.DefaultTemplateSlug); err != nil {
		deps.Cleanup()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	if err := deps.Store.SeedAdmins(ctx, cfg.Auth.AdminEmails); err != nil {
		deps.Cleanup()
		return nil, fmt.Errorf("failed to seed admins: %w", err)
	}

	deps.Redis, err = redis.NewClient(cfg.Redis, logger)
	if err != nil {
		deps.Cleanup()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	// Initialize clients
	var transport mail.Transport
	switch cfg.Email.Provider {
	case config.EmailProviderResend:
		transport = mail.NewResendTransport(cfg.Email.ResendAPIKey, cfg.SMTP.FromEmail, logger)
	default:
		transport = mail.NewSMTPTransport(cfg.SMTP, logger)
	}

	var shortener shorturl.Shortener
	if cfg.Shortener.Enabled() {
		var cache shorturl.Cache = shorturl.NewMemoryCache()
		if deps.Redis.IsEnabled() {
			cache = shorturl.NewRedisCache(deps.Redis.GetClient())
		}
		shortener = shorturl.NewCachedShortener(
			shorturl.NewYourlsClient(cfg.Shortener.APIURL, cfg.Shortener.Signature, logger),
			cache,
			deps.Metrics.ShortenerResults,
			logger,
		)
	} else {
		logger.Info(ctx, "YOURLS is not configured, campaign links will not be shortened")
	}

	captcha := turnstile.NewVerifier(cfg.Captcha.TurnstileSecret, cfg.Captcha.TurnstileHostname, logger)

	// Initialize email service
	emailService := email.New(transport, cfg.Server.SiteName, logger)

	auditRecorder := audit.New(&deps.Store, logger)

	// Initialize the send pipeline
	orchestrator := delivery.NewOrchestrator(
		&deps.Store,
		transport,
		shortener,
		deps.Metrics,
		logger,
		delivery.Config{
			BaseURL:             cfg.Server.BaseURL,
			DefaultTemplateSlug: cfg.Newsletter.DefaultTemplateSlug,
			SendDelay:           cfg.Newsletter.RateLimit,
		},
	)
	poolConfig := workers.DefaultWorkerPoolConfig()
	poolConfig.NumWorkers = cfg.Newsletter.SendConcurrency
	deps.SendPool = workers.NewWorkerPool(poolConfig, orchestrator, logger)
	deps.Scheduler = delivery.NewScheduler(&deps.Store, deps.SendPool, logger, cfg.Newsletter.SchedulerInterval)

	// Initialize newsletter processor and handler
	newsletterProc := newsletterProcessor.New(
		&deps.Store,
		deps.SendPool,
		orchestrator,
		shortener,
		auditRecorder,
		newsletterProcessor.Config{
			BaseURL:             cfg.Server.BaseURL,
			DefaultTemplateSlug: cfg.Newsletter.DefaultTemplateSlug,
		},
		logger,
	)
	deps.NewsletterHandler = newsletterHandler.New(newsletterProc, cfg.Server.WebAppURI, logger)

	// Initialize template processor and handler
	templatesProc := templatesProcessor.New(&deps.Store, auditRecorder, cfg.Newsletter.DefaultTemplateSlug, logger)
	deps.TemplatesHandler = templatesHandler.New(templatesProc, logger)

	// Initialize subscription processor and handler
	subscriptionProc := subscriptionProcessor.New(&deps.Store, captcha, emailService, cfg.Server.BaseURL, logger)
	deps.SubscriptionHandler = subscriptionHandler.New(subscriptionProc, logger)

	// Initialize subscribers processor and handler
	subscribersProc := subscribersProcessor.New(&deps.Store, emailService, auditRecorder, cfg.Server.BaseURL, logger)
	deps.SubscribersHandler = subscribersHandler.New(subscribersProc, logger)

	// Initialize tracking processor and handler
	trackingProc := trackingProcessor.New(&deps.Store, deps.Metrics.TrackingEvents, logger)
	deps.TrackingHandler = trackingHandler.New(trackingProc, logger)

	// Initialize archive processor and handler
	archiveProc := archiveProcessor.New(&deps.Store, cfg.Server.BaseURL, cfg.Newsletter.DefaultTemplateSlug, logger)
	deps.ArchiveHandler = archiveHandler.New(archiveProc, logger)

	// Initialize auth processor and handler
	authProc := processor.New(&deps.Store, emailService, auditRecorder, processor.AuthConfig{
		JWTSecret: cfg.Auth.JWTSecret,
		BaseURL:   cfg.Server.BaseURL,
	}, logger)
	deps.AuthHandler = handler.New(authProc, logger)

	// Initialize admins processor and handler
	adminsProc := adminsProcessor.New(&deps.Store, auditRecorder, logger)
	deps.AdminsHandler = adminsHandler.New(adminsProc, logger)

	deps.RateLimiter = ratelimit.NewService(deps.Redis, cfg.Server.PublicRateLimitRPM, logger)

	return deps, nil
}

// Cleanup closes all resources that need cleanup
func (d *Dependencies) Cleanup() {
	ctx := context.Background()
	if err := d.Redis.Close(); err != nil {
		d.Logger.Error(ctx, "failed to close redis", err)
	}
	if err := d.Store.Close(); err != nil {
		d.Logger.Error(ctx, "failed to close database", err)
	}
}
