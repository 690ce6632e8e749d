package store

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// JSONB is a custom type for JSONB fields
type JSONB map[string]interface{}

// Value implements the driver.Valuer interface for JSONB
func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan implements the sql.Scanner interface for JSONB
func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("incompatible type for JSONB")
	}

	if len(bytes) == 0 || string(bytes) == "null" {
		*j = make(JSONB)
		return nil
	}

	result := make(JSONB)
	if err := json.Unmarshal(bytes, &result); err != nil {
		return err
	}
	*j = result
	return nil
}

// Subscriber is one address on the mailing list. SecretCode keys every
// tracking hash and admin link for this subscriber and never leaves the server.
type Subscriber struct {
	ID                 uuid.UUID  `db:"id" json:"id"`
	Email              string     `db:"email" json:"email"`
	Name               string     `db:"name" json:"name"`
	SecretCode         string     `db:"secret_code" json:"-"`
	Ucode              string     `db:"ucode" json:"ucode"`
	Status             bool       `db:"status" json:"status"`
	VerifiedEmail      bool       `db:"verified_email" json:"verified_email"`
	BouncedAt          *time.Time `db:"bounced_at" json:"bounced_at,omitempty"`
	LegacyAdminLink    *string    `db:"legacy_admin_link" json:"-"`
	SubscriptionSource string     `db:"subscription_source" json:"subscription_source"`
	CreatedAt          time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at" json:"updated_at"`
}

// Newsletter is one campaign and its send progress.
type Newsletter struct {
	ID                 uuid.UUID  `db:"id" json:"id"`
	Title              string     `db:"title" json:"title"`
	Slug               string     `db:"slug" json:"slug"`
	MarkdownContent    string     `db:"markdown_content" json:"markdown_content"`
	TemplateID         *uuid.UUID `db:"template_id" json:"template_id,omitempty"`
	RenderedHTML       *string    `db:"rendered_html" json:"-"`
	Status             string     `db:"status" json:"status"`
	ScheduledAt        *time.Time `db:"scheduled_at" json:"scheduled_at,omitempty"`
	SendingStartedAt   *time.Time `db:"sending_started_at" json:"sending_started_at,omitempty"`
	SendingCompletedAt *time.Time `db:"sending_completed_at" json:"sending_completed_at,omitempty"`
	SentCount          int        `db:"sent_count" json:"sent_count"`
	FailedCount        int        `db:"failed_count" json:"failed_count"`
	TotalCount         int        `db:"total_count" json:"total_count"`
	CreatedBy          string     `db:"created_by" json:"created_by"`
	CreatedAt          time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at" json:"updated_at"`
}

// NewsletterProgress is the slice of a newsletter polled while it sends.
type NewsletterProgress struct {
	Status      string `db:"status" json:"status"`
	SentCount   int    `db:"sent_count" json:"sent_count"`
	FailedCount int    `db:"failed_count" json:"failed_count"`
	TotalCount  int    `db:"total_count" json:"total_count"`
}

// NewsletterTemplate is a reusable HTML shell with liquid slots.
type NewsletterTemplate struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Slug        string    `db:"slug" json:"slug"`
	Description string    `db:"description" json:"description"`
	HTMLBody    string    `db:"html_body" json:"html_body"`
	CreatedBy   string    `db:"created_by" json:"created_by"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// NewsletterSend is the delivery record of one newsletter to one subscriber.
type NewsletterSend struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	NewsletterID uuid.UUID  `db:"newsletter_id" json:"newsletter_id"`
	SubscriberID uuid.UUID  `db:"subscriber_id" json:"subscriber_id"`
	Status       string     `db:"status" json:"status"`
	SentAt       *time.Time `db:"sent_at" json:"sent_at,omitempty"`
	ErrorMessage *string    `db:"error_message" json:"error_message,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
}

// NewsletterLink maps a long URL in a newsletter to its short form.
type NewsletterLink struct {
	ID           uuid.UUID `db:"id" json:"id"`
	NewsletterID uuid.UUID `db:"newsletter_id" json:"newsletter_id"`
	OriginalURL  string    `db:"original_url" json:"original_url"`
	ShortURL     string    `db:"short_url" json:"short_url"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// EmailEvent is one recorded open or click.
type EmailEvent struct {
	ID         int64     `db:"id" json:"id"`
	Ucode      string    `db:"ucode" json:"ucode"`
	EventType  string    `db:"event_type" json:"event_type"`
	Topic      string    `db:"topic" json:"topic"`
	UserAgent  string    `db:"user_agent" json:"user_agent"`
	ClickedURL *string   `db:"clicked_url" json:"clicked_url,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// VerificationToken is a single-use token for email verification or admin login.
type VerificationToken struct {
	ID           uuid.UUID  `db:"id"`
	SubscriberID *uuid.UUID `db:"subscriber_id"`
	AdminEmail   *string    `db:"admin_email"`
	Token        string     `db:"token"`
	TokenType    string     `db:"token_type"`
	ExpiresAt    time.Time  `db:"expires_at"`
	UsedAt       *time.Time `db:"used_at"`
	CreatedAt    time.Time  `db:"created_at"`
}

// Admin is an email allowed into the admin area.
type Admin struct {
	Email     string    `db:"email" json:"email"`
	AddedBy   string    `db:"added_by" json:"added_by"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// AuditLog records an admin action.
type AuditLog struct {
	ID         int64     `db:"id" json:"id"`
	AdminEmail string    `db:"admin_email" json:"admin_email"`
	Action     string    `db:"action" json:"action"`
	Details    JSONB     `db:"details" json:"details,omitempty"`
	IPAddress  *string   `db:"ip_address" json:"ip_address,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
