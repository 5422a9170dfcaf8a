package postgres

import (
	"context"
	"fmt"

	"storefront-gateway/internal/core/domain"
	"storefront-gateway/internal/core/ports"
)

const auditSchema = `CREATE TABLE IF NOT EXISTS audit_logs (
	id            UUID PRIMARY KEY,
	action        TEXT NOT NULL,
	resource_type TEXT NOT NULL,
	resource_id   TEXT,
	details       JSONB,
	ip_address    TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL
)`

// AuditRepo stores audit entries in the audit_logs table.
type AuditRepo struct {
	pool Pool
}

var _ ports.AuditRepository = (*AuditRepo)(nil)

func NewAuditRepo(pool Pool) *AuditRepo {
	return &AuditRepo{pool: pool}
}

// EnsureSchema creates audit_logs when it does not exist yet.
func (r *AuditRepo) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, auditSchema); err != nil {
		return fmt.Errorf("creating audit_logs: %w", err)
	}
	return nil
}

func (r *AuditRepo) Create(ctx context.Context, log *domain.AuditLog) error {
	var details any
	if log.Details != "" {
		details = log.Details
	}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO audit_logs (id, action, resource_type, resource_id, details, ip_address, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		log.ID, string(log.Action), log.ResourceType,
		log.ResourceID, details, log.IPAddress, log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting audit log: %w", err)
	}
	return nil
}
