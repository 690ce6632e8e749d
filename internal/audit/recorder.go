// Package audit records admin actions. Recording never fails the action
// being audited.
package audit

//go:generate go run go.uber.org/mock/mockgen@latest -source=recorder.go -destination=mocks_test.go -package=audit

import (
	"context"

	"newsletter-server/internal/observability"
	"newsletter-server/internal/store"
)

// Actions recorded in the audit log
const (
	ActionNewsletterCreate   = "newsletter.create"
	ActionNewsletterUpdate   = "newsletter.update"
	ActionNewsletterDelete   = "newsletter.delete"
	ActionNewsletterSend     = "newsletter.send"
	ActionNewsletterSchedule = "newsletter.schedule"
	ActionNewsletterCancel   = "newsletter.cancel"
	ActionTemplateCreate     = "template.create"
	ActionTemplateUpdate     = "template.update"
	ActionTemplateDelete     = "template.delete"
	ActionTemplateDuplicate  = "template.duplicate"
	ActionSubscriberToggle   = "subscriber.toggle"
	ActionResendVerification = "subscriber.resend_verification"
	ActionAdminLogin         = "admin.login"
	ActionAdminAdd           = "admin.add"
	ActionAdminRemove        = "admin.remove"
)

// AuditStore defines the database operations required by Recorder
type AuditStore interface {
	InsertAuditLog(ctx context.Context, params store.InsertAuditLogParams) error
}

type Recorder struct {
	store  AuditStore
	logger *observability.Logger
}

func New(store AuditStore, logger *observability.Logger) *Recorder {
	return &Recorder{store: store, logger: logger}
}

// Log stores one admin action. Errors are logged and dropped.
func (r *Recorder) Log(ctx context.Context, adminEmail, action string, details map[string]any, ip string) {
	var addr *string
	if ip != "" {
		addr = &ip
	}

	err := r.store.InsertAuditLog(ctx, store.InsertAuditLogParams{
		AdminEmail: adminEmail,
		Action:     action,
		Details:    store.JSONB(details),
		IPAddress:  addr,
	})
	if err != nil {
		r.logger.Error(observability.WithFields(ctx,
			observability.Field{Key: "admin_email", Value: adminEmail},
			observability.Field{Key: "action", Value: action},
		), "failed to record audit log", err)
	}
}
