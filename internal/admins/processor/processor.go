package processor

//go:generate go run go.uber.org/mock/mockgen@latest -source=processor.go -destination=mocks_test.go -package=processor

import (
	"context"
	"errors"
	"strings"

	"newsletter-server/internal/audit"
	"newsletter-server/internal/observability"
	"newsletter-server/internal/store"
)

// AdminsStore defines the database operations required by AdminsProcessor
type AdminsStore interface {
	ListAdmins(ctx context.Context) ([]store.Admin, error)
	IsAdmin(ctx context.Context, email string) (bool, error)
	AddAdmin(ctx context.Context, email, addedBy string) error
	CountAdmins(ctx context.Context) (int, error)
	DeleteAdmin(ctx context.Context, email string) error
	ListAuditLogs(ctx context.Context, params store.ListAuditLogsParams) ([]store.AuditLog, error)
	CountAuditLogs(ctx context.Context, action string) (int, error)
}

// AuditLogger records admin actions
type AuditLogger interface {
	Log(ctx context.Context, adminEmail, action string, details map[string]any, ip string)
}

var (
	ErrInvalidEmail     = errors.New("invalid admin email")
	ErrAdminNotFound    = errors.New("admin not found")
	ErrCannotRemoveSelf = errors.New("cannot remove yourself")
	ErrLastAdmin        = errors.New("cannot remove the last admin")
)

// AuditPageSize is the number of audit entries per page.
const AuditPageSize = 50

type AdminsProcessor struct {
	store  AdminsStore
	audit  AuditLogger
	logger *observability.Logger
}

func New(store AdminsStore, audit AuditLogger, logger *observability.Logger) AdminsProcessor {
	return AdminsProcessor{
		store:  store,
		audit:  audit,
		logger: logger,
	}
}

// Actor identifies the admin performing an action
type Actor struct {
	Email string
	IP    string
}

// AuditPage is one page of the audit log
type AuditPage struct {
	Entries    []store.AuditLog `json:"entries"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	PerPage    int              `json:"per_page"`
	TotalPages int              `json:"total_pages"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ListAdmins returns every admin, oldest first.
func (p *AdminsProcessor) ListAdmins(ctx context.Context) ([]store.Admin, error) {
	admins, err := p.store.ListAdmins(ctx)
	if err != nil {
		p.logger.Error(ctx, "failed to list admins", err)
		return nil, err
	}
	if admins == nil {
		admins = []store.Admin{}
	}
	return admins, nil
}

// AddAdmin grants admin access to email. Adding an existing admin succeeds
// without changing who added them.
func (p *AdminsProcessor) AddAdmin(ctx context.Context, actor Actor, email string) (string, error) {
	email = normalizeEmail(email)
	if email == "" {
		return "", ErrInvalidEmail
	}
	ctx = observability.WithFields(ctx, observability.Field{Key: "target_email", Value: email})

	if err := p.store.AddAdmin(ctx, email, actor.Email); err != nil {
		p.logger.Error(ctx, "failed to add admin", err)
		return "", err
	}

	p.audit.Log(ctx, actor.Email, audit.ActionAdminAdd, map[string]any{"added_email": email}, actor.IP)
	p.logger.Info(ctx, "admin added")
	return email, nil
}

// RemoveAdmin revokes admin access. An admin cannot remove themselves and the
// last admin always stays.
func (p *AdminsProcessor) RemoveAdmin(ctx context.Context, actor Actor, email string) error {
	email = normalizeEmail(email)
	ctx = observability.WithFields(ctx, observability.Field{Key: "target_email", Value: email})

	exists, err := p.store.IsAdmin(ctx, email)
	if err != nil {
		p.logger.Error(ctx, "failed to check admin", err)
		return err
	}
	if !exists {
		return ErrAdminNotFound
	}
	if email == normalizeEmail(actor.Email) {
		return ErrCannotRemoveSelf
	}

	count, err := p.store.CountAdmins(ctx)
	if err != nil {
		p.logger.Error(ctx, "failed to count admins", err)
		return err
	}
	if count <= 1 {
		return ErrLastAdmin
	}

	if err := p.store.DeleteAdmin(ctx, email); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Lost a race with another removal.
			return ErrLastAdmin
		}
		p.logger.Error(ctx, "failed to delete admin", err)
		return err
	}

	p.audit.Log(ctx, actor.Email, audit.ActionAdminRemove, map[string]any{"removed_email": email}, actor.IP)
	p.logger.Info(ctx, "admin removed")
	return nil
}

// ListAuditLog returns page (1-based) of audit entries, newest first. An
// empty action matches every action.
func (p *AdminsProcessor) ListAuditLog(ctx context.Context, page int, action string) (AuditPage, error) {
	if page < 1 {
		page = 1
	}
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "page", Value: page},
		observability.Field{Key: "action", Value: action},
	)

	total, err := p.store.CountAuditLogs(ctx, action)
	if err != nil {
		p.logger.Error(ctx, "failed to count audit logs", err)
		return AuditPage{}, err
	}

	entries, err := p.store.ListAuditLogs(ctx, store.ListAuditLogsParams{
		Action: action,
		Limit:  AuditPageSize,
		Offset: (page - 1) * AuditPageSize,
	})
	if err != nil {
		p.logger.Error(ctx, "failed to list audit logs", err)
		return AuditPage{}, err
	}
	if entries == nil {
		entries = []store.AuditLog{}
	}

	return AuditPage{
		Entries:    entries,
		Total:      total,
		Page:       page,
		PerPage:    AuditPageSize,
		TotalPages: (total + AuditPageSize - 1) / AuditPageSize,
	}, nil
}
