package store

import (
	"context"
	"fmt"
)

const sqlSeedAdmin = `
INSERT INTO admins (email, added_by)
VALUES ($1, 'system')
ON CONFLICT (email) DO NOTHING
`

// SeedAdmins makes sure every configured admin exists.
func (s *Store) SeedAdmins(ctx context.Context, emails []string) error {
	for _, email := range emails {
		if _, err := s.db.ExecContext(ctx, sqlSeedAdmin, email); err != nil {
			return fmt.Errorf("failed to seed admin: %w", err)
		}
	}
	return nil
}

const sqlIsAdmin = `SELECT EXISTS(SELECT 1 FROM admins WHERE email = $1)`

func (s *Store) IsAdmin(ctx context.Context, email string) (bool, error) {
	var exists bool
	if err := s.db.GetContext(ctx, &exists, sqlIsAdmin, email); err != nil {
		return false, fmt.Errorf("failed to check admin: %w", err)
	}
	return exists, nil
}

// InsertAuditLogParams describes one admin action.
type InsertAuditLogParams struct {
	AdminEmail string
	Action     string
	Details    JSONB
	IPAddress  *string
}

const sqlInsertAuditLog = `
INSERT INTO audit_log (admin_email, action, details, ip_address)
VALUES ($1, $2, $3, $4)
`

func (s *Store) InsertAuditLog(ctx context.Context, params InsertAuditLogParams) error {
	_, err := s.db.ExecContext(ctx, sqlInsertAuditLog,
		params.AdminEmail,
		params.Action,
		params.Details,
		params.IPAddress)
	if err != nil {
		return fmt.Errorf("failed to insert audit log: %w", err)
	}
	return nil
}

const sqlListAdmins = `
SELECT email, added_by, created_at
FROM admins
ORDER BY created_at ASC
`

func (s *Store) ListAdmins(ctx context.Context) ([]Admin, error) {
	var admins []Admin
	if err := s.db.SelectContext(ctx, &admins, sqlListAdmins); err != nil {
		return nil, fmt.Errorf("failed to list admins: %w", err)
	}
	return admins, nil
}

const sqlAddAdmin = `
INSERT INTO admins (email, added_by)
VALUES ($1, $2)
ON CONFLICT (email) DO NOTHING
`

// AddAdmin grants admin access. Adding an existing admin is a no-op.
func (s *Store) AddAdmin(ctx context.Context, email, addedBy string) error {
	if _, err := s.db.ExecContext(ctx, sqlAddAdmin, email, addedBy); err != nil {
		return fmt.Errorf("failed to add admin: %w", err)
	}
	return nil
}

const sqlCountAdmins = `SELECT COUNT(*) FROM admins`

func (s *Store) CountAdmins(ctx context.Context) (int, error) {
	var count int
	if err := s.db.GetContext(ctx, &count, sqlCountAdmins); err != nil {
		return 0, fmt.Errorf("failed to count admins: %w", err)
	}
	return count, nil
}

const sqlDeleteAdmin = `
DELETE FROM admins
WHERE email = $1 AND (SELECT COUNT(*) FROM admins) > 1
`

// DeleteAdmin revokes admin access. It never removes the last admin and
// returns ErrNotFound when nothing was deleted.
func (s *Store) DeleteAdmin(ctx context.Context, email string) error {
	return s.execOne(ctx, "delete admin", sqlDeleteAdmin, email)
}

// ListAuditLogsParams selects one page of the audit log. An empty Action
// matches every action.
type ListAuditLogsParams struct {
	Action string
	Limit  int
	Offset int
}

const sqlListAuditLogs = `
SELECT id, admin_email, action, details, ip_address, created_at
FROM audit_log
WHERE $1 = '' OR action = $1
ORDER BY created_at DESC, id DESC
LIMIT $2 OFFSET $3
`

func (s *Store) ListAuditLogs(ctx context.Context, params ListAuditLogsParams) ([]AuditLog, error) {
	var logs []AuditLog
	err := s.db.SelectContext(ctx, &logs, sqlListAuditLogs, params.Action, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}
	return logs, nil
}

const sqlCountAuditLogs = `SELECT COUNT(*) FROM audit_log WHERE $1 = '' OR action = $1`

func (s *Store) CountAuditLogs(ctx context.Context, action string) (int, error) {
	var count int
	if err := s.db.GetContext(ctx, &count, sqlCountAuditLogs, action); err != nil {
		return 0, fmt.Errorf("failed to count audit logs: %w", err)
	}
	return count, nil
}
