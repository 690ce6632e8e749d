package store

// Newsletter statuses
const (
	NewsletterStatusDraft     = "draft"
	NewsletterStatusScheduled = "scheduled"
	NewsletterStatusSending   = "sending"
	NewsletterStatusPaused    = "paused"
	NewsletterStatusSent      = "sent"
	NewsletterStatusFailed    = "failed"
)

// Send record statuses
const (
	SendStatusPending = "pending"
	SendStatusSent    = "sent"
	SendStatusFailed  = "failed"
)

// Tracking event types
const (
	EventTypeOpen  = "open"
	EventTypeClick = "click"
)

// Verification token types
const (
	TokenTypeEmailVerify = "email_verify"
	TokenTypeMagicLink   = "magic_link"
)

// Subscription sources
const (
	SubscriptionSourceWeb    = "web"
	SubscriptionSourceImport = "import"
)
